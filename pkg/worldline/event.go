package worldline

// Highlighter decorates the date column of a display line, for example
// with terminal colors. A nil Highlighter leaves the text unchanged.
type Highlighter func(string) string

// Event is a dated entry of the worldline.
type Event struct {
	Date        Date
	Description string
}

// NewEvent pairs a date with a description.
func NewEvent(date Date, description string) Event {
	return Event{Date: date, Description: description}
}

// ParseEvent parses one line of a worldline file. The line starts with a
// date; everything after the date and its trailing whitespace is the
// description, kept verbatim.
func ParseEvent(line string) (Event, error) {
	date, n, err := ParseDate(line)
	if err != nil {
		return Event{}, err
	}
	return Event{Date: date, Description: line[n:]}, nil
}

// FormatForFile renders the event as a worldline file line (without the
// newline). The era is always written so negative years survive a reload.
func (e Event) FormatForFile() string {
	return e.Date.Format(true) + " " + e.Description
}

// FormatForAnki renders the event as a tab-separated flashcard row.
func (e Event) FormatForAnki() string {
	return e.Date.Format(true) + "\t" + e.Description
}

// FormatForDisplay renders the event for a terminal. showEra is decided per
// printed batch by the caller.
func (e Event) FormatForDisplay(showEra bool, highlight Highlighter) string {
	date := e.Date.Format(showEra)
	if highlight != nil {
		date = highlight(date)
	}
	return date + " " + e.Description
}
