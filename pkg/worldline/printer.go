package worldline

import (
	"fmt"
	"io"
)

// NoEventsMessage is printed by LinePrinter when a selection is empty.
const NoEventsMessage = "No events"

// Printer receives the events selected by a WorldLine display operation.
type Printer interface {
	// PrintEvent prints one event. showEra is constant across a batch,
	// except in QueryAndPrint where it only ever switches on.
	PrintEvent(e Event, showEra bool) error

	// PrintEmpty is called instead of PrintEvent when nothing was selected.
	PrintEmpty() error
}

// LinePrinter writes one display line per event.
type LinePrinter struct {
	w         io.Writer
	highlight Highlighter
}

// NewLinePrinter creates a LinePrinter writing to w. highlight may be nil
// for plain output.
func NewLinePrinter(w io.Writer, highlight Highlighter) *LinePrinter {
	return &LinePrinter{w: w, highlight: highlight}
}

// PrintEvent implements Printer.
func (p *LinePrinter) PrintEvent(e Event, showEra bool) error {
	_, err := fmt.Fprintln(p.w, e.FormatForDisplay(showEra, p.highlight))
	return err
}

// PrintEmpty implements Printer.
func (p *LinePrinter) PrintEmpty() error {
	_, err := fmt.Fprintln(p.w, NoEventsMessage)
	return err
}
