package event

import "fmt"

func cacheKeyEventDetails(eventID string) string {
	return fmt.Sprintf("event:details:%s", eventID)
}
