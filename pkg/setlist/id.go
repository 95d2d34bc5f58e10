package setlist

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a string id built from a millisecond timestamp and a
// random suffix. Collision probability within a session is negligible; the
// value is not cryptographically secure.
func GenerateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ts + "-" + suffix
}

// NewPredictionID returns a prediction id scoped to a performance, or to
// the literal "custom" for ad-hoc events.
func NewPredictionID(performanceID string) string {
	return "pred-" + idBase(performanceID) + "-" + GenerateID()
}

// NewSetlistID returns a setlist id scoped to a performance.
func NewSetlistID(performanceID string) string {
	return "setlist-" + idBase(performanceID) + "-" + GenerateID()
}

// NewItemID returns an id for a single setlist item.
func NewItemID() string {
	return "item-" + GenerateID()
}

func idBase(performanceID string) string {
	if performanceID == "" {
		return "custom"
	}
	return performanceID
}
