package ingest

import (
	"strings"
	"time"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

// timestampLayouts covers the ISO and US-style renderings found in the logs.
// Fractional seconds are accepted after any seconds field.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1/2/06 3:04:05 PM",
	"1/2/06 3:04 PM",
	"1/2/06",
	"1-2-06 15:04:05",
	"1-2-06 15:04",
	"1-2-06 3:04:05 PM",
	"1-2-06 3:04 PM",
	"1-2-06",
}

// ParseTimestamp converts a raw cell into a naive timestamp. It never fails
// loudly: an unparsable value reports ok=false and the row is later dropped
// by the required-field check.
func ParseTimestamp(raw string) (ts models.Timestamp, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.NewTimestamp(t), true
		}
	}
	return models.Timestamp{}, false
}
