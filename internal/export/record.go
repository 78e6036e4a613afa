package export

import (
	"strings"

	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// Record is the structured form of one event. Month and Day are zero when
// the date is less precise than that unit.
type Record struct {
	Era         string `json:"era" yaml:"era" toml:"era"`
	Date        string `json:"date" yaml:"date" toml:"date"`
	Year        int32  `json:"year" yaml:"year" toml:"year"`
	Month       uint8  `json:"month,omitempty" yaml:"month,omitempty" toml:"month,omitempty"`
	Day         uint8  `json:"day,omitempty" yaml:"day,omitempty" toml:"day,omitempty"`
	Precision   string `json:"precision" yaml:"precision" toml:"precision"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// NewRecord converts an event.
func NewRecord(e worldline.Event) Record {
	d := e.Date
	return Record{
		Era:         d.Era(),
		Date:        strings.TrimSpace(d.Format(false)),
		Year:        d.Year(),
		Month:       d.Month(),
		Day:         d.Day(),
		Precision:   d.Precision().String(),
		Description: e.Description,
	}
}

// Records converts events in order. It never returns nil, so an empty
// worldline encodes as an empty list.
func Records(events []worldline.Event) []Record {
	out := make([]Record, 0, len(events))
	for _, e := range events {
		out = append(out, NewRecord(e))
	}
	return out
}
