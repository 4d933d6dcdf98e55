package event

import (
	"strings"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type Service struct {
	repo  EventRepo
	regs  RegistrationReader
	pub   AnnouncePublisher
	cache Cache
	clock Clock

	ttlDetails time.Duration
}

func New(repo EventRepo, regs RegistrationReader, clock Clock, pub AnnouncePublisher, cache Cache, ttlDetails time.Duration) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		regs:       regs,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		ttlDetails: ttlDetails,
	}
}

func isOrganizer(role string) bool { return role == domain.RoleOrganizer }
func isAdmin(role string) bool     { return role == domain.RoleAdmin }

func canManage(actorID, actorRole, organizerID string) bool {
	if isAdmin(actorRole) {
		return true
	}
	return isOrganizer(actorRole) && strings.TrimSpace(actorID) != "" && actorID == organizerID
}
