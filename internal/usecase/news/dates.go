package news

import (
	"time"

	"briefcast/internal/domain/entity"
)

// Article dates arrive from the model in one of three shapes: a full UTC
// timestamp, a date-only string, or the literal token meaning "no exact date
// known".
const (
	dateTimeLayout = "2006-01-02 15:04:05 MST"
	dateOnlyLayout = "2006-01-02"
)

// parseDate resolves an article date string to a point in time. The Recent
// token resolves to now. ok is false when the string matches no known shape.
func parseDate(s string, now time.Time) (time.Time, bool) {
	if s == entity.DateRecent {
		return now, true
	}
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
