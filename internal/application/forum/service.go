package forum

const (
	MessageCreated = "message_created"
	MessageUpdated = "message_updated"
)

type Service struct {
	events   EventStore
	msgs     MessageRepo
	regs     RegistrationChecker
	profiles ProfileStore
	bcast    Broadcaster
	clock    Clock
}

func New(events EventStore, msgs MessageRepo, regs RegistrationChecker, profiles ProfileStore, bcast Broadcaster, clock Clock) *Service {
	if bcast == nil {
		bcast = NoopBroadcaster{}
	}
	return &Service{
		events:   events,
		msgs:     msgs,
		regs:     regs,
		profiles: profiles,
		bcast:    bcast,
		clock:    clock,
	}
}
