package worldline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// WorldLine is an ordered collection of events.
//
// Events are kept non-decreasing by date as long as the source they were
// loaded from was sorted; loading does not re-sort. Use IsSorted to check
// and Sort to repair. Events sharing a date have no guaranteed order.
type WorldLine struct {
	events []Event
}

// New creates a WorldLine holding events in the given order.
func New(events ...Event) *WorldLine {
	return &WorldLine{events: slices.Clone(events)}
}

// Load reads and parses the worldline file at path.
func Load(path string) (*WorldLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return parse(string(data))
}

// Read parses a worldline from r. Empty lines are skipped.
func Read(r io.Reader) (*WorldLine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileError{Op: "read", Err: err}
	}
	return parse(string(data))
}

func parse(content string) (*WorldLine, error) {
	lines := strings.Split(content, "\n")
	wl := &WorldLine{events: make([]Event, 0, len(lines))}
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseEvent(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}
		wl.events = append(wl.events, e)
	}
	return wl, nil
}

// Save overwrites the file at path with the serialized worldline.
// The write is not atomic.
func (wl *WorldLine) Save(path string) error {
	var buf bytes.Buffer
	if _, err := wl.WriteTo(&buf); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteTo writes every event in file form, one per line.
func (wl *WorldLine) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range wl.events {
		n, err := io.WriteString(w, e.FormatForFile()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// AnkiHeader is the first line of a tab-separated flashcard export.
const AnkiHeader = "#separator:Tab"

// WriteAnki writes the worldline as a tab-separated flashcard deck.
func (wl *WorldLine) WriteAnki(w io.Writer) error {
	if _, err := io.WriteString(w, AnkiHeader+"\n"); err != nil {
		return err
	}
	for _, e := range wl.events {
		if _, err := io.WriteString(w, e.FormatForAnki()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of events.
func (wl *WorldLine) Len() int {
	return len(wl.events)
}

// At returns the event at index i.
func (wl *WorldLine) At(i int) Event {
	return wl.events[i]
}

// Events returns a copy of all events in stored order.
func (wl *WorldLine) Events() []Event {
	return slices.Clone(wl.events)
}

// Slice returns a copy of the events in [lo, hi), clamped to the store.
func (wl *WorldLine) Slice(lo, hi int) []Event {
	lo, hi = wl.clamp(lo, hi)
	return slices.Clone(wl.events[lo:hi])
}

// AddEvent inserts e at its sorted position and returns that index.
// The position is found by binary search, so the store must already be
// sorted for the result to stay sorted. A new event goes before existing
// events with the same date.
func (wl *WorldLine) AddEvent(e Event) int {
	idx := wl.FirstGEQ(e.Date)
	wl.events = slices.Insert(wl.events, idx, e)
	return idx
}

// FirstGEQ returns the index of the first event whose date is not before d,
// or Len() if there is none.
func (wl *WorldLine) FirstGEQ(d Date) int {
	return sort.Search(len(wl.events), func(i int) bool {
		return !wl.events[i].Date.Before(d)
	})
}

// LastBefore returns the index one past the last event whose date is
// strictly before d. On a sorted store this is the same partition point as
// FirstGEQ, and it is the exclusive end used by DateRange.
func (wl *WorldLine) LastBefore(d Date) int {
	lo, hi := 0, len(wl.events)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if wl.events[mid].Date.Before(d) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// DateRange returns the index interval [lo, hi) of events dated within
// [start, end], where end covers its whole period (end.Next() is the
// exclusive bound). If end precedes start the interval is empty.
func (wl *WorldLine) DateRange(start, end Date) (int, int) {
	return wl.clamp(wl.FirstGEQ(start), wl.LastBefore(end.Next()))
}

// ImplicitRange returns the index interval of the period named by d:
// a whole year, a whole month, or a single day depending on d's precision.
func (wl *WorldLine) ImplicitRange(d Date) (int, int) {
	return wl.DateRange(d, d)
}

// Query returns the indices of events whose description contains
// substring, compared under Unicode case folding, in stored order.
func (wl *WorldLine) Query(substring string) []int {
	fold := cases.Fold()
	needle := fold.String(substring)

	var matches []int
	for i, e := range wl.events {
		if strings.Contains(fold.String(e.Description), needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

// IsSorted reports whether events are non-decreasing by date.
func (wl *WorldLine) IsSorted() bool {
	return len(wl.Unsorted()) == 0
}

// Unsorted returns the indices of events dated before their predecessor.
func (wl *WorldLine) Unsorted() []int {
	var out []int
	for i := 1; i < len(wl.events); i++ {
		if wl.events[i].Date.Before(wl.events[i-1].Date) {
			out = append(out, i)
		}
	}
	return out
}

// Sort orders events by date, keeping the relative order of equal dates.
func (wl *WorldLine) Sort() {
	slices.SortStableFunc(wl.events, func(a, b Event) int {
		return a.Date.Compare(b.Date)
	})
}

// PrintAll prints every event.
func (wl *WorldLine) PrintAll(p Printer) error {
	return wl.PrintRange(p, 0, len(wl.events))
}

// PrintDateRange prints events dated within [start, end] inclusive.
func (wl *WorldLine) PrintDateRange(p Printer, start, end Date) error {
	lo, hi := wl.DateRange(start, end)
	return wl.PrintRange(p, lo, hi)
}

// PrintImplicitDateRange prints every event in the period named by d, e.g.
// "1994" covers the whole year and "1994-05" the whole month.
func (wl *WorldLine) PrintImplicitDateRange(p Printer, d Date) error {
	lo, hi := wl.ImplicitRange(d)
	return wl.PrintRange(p, lo, hi)
}

// PrintRange prints the events with index in [lo, hi), clamped to the
// store. The era is shown for the whole batch only when the batch crosses
// from BCE into CE: the first printed event is BCE and the last one has a
// positive year. Events in between are not inspected.
func (wl *WorldLine) PrintRange(p Printer, lo, hi int) error {
	lo, hi = wl.clamp(lo, hi)
	if lo == hi {
		return p.PrintEmpty()
	}

	showEra := wl.events[lo].Date.IsBCE() && wl.events[hi-1].Date.Year() > 0
	for _, e := range wl.events[lo:hi] {
		if err := p.PrintEvent(e, showEra); err != nil {
			return err
		}
	}
	return nil
}

// QueryAndPrint prints every event whose description contains substring
// (case-insensitive) and returns the number of matches. Once a BCE match
// has been printed, all later matches are printed with their era.
func (wl *WorldLine) QueryAndPrint(p Printer, substring string) (int, error) {
	matches := wl.Query(substring)
	if len(matches) == 0 {
		return 0, p.PrintEmpty()
	}

	showEra := false
	for _, i := range matches {
		e := wl.events[i]
		if e.Date.IsBCE() {
			showEra = true
		}
		if err := p.PrintEvent(e, showEra); err != nil {
			return 0, err
		}
	}
	return len(matches), nil
}

func (wl *WorldLine) clamp(lo, hi int) (int, int) {
	n := len(wl.events)
	lo = max(0, min(lo, n))
	hi = max(lo, min(hi, n))
	return lo, hi
}

// IsNotExist reports whether err indicates that the worldline file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
