package output

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/worldline/internal/export"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// EventPrinter is a worldline.Printer that may buffer until Flush.
type EventPrinter interface {
	worldline.Printer
	Flush() error
}

// EventPrinter returns a printer for the renderer's effective mode.
func (r *Renderer) EventPrinter() EventPrinter {
	switch r.EffectiveMode() {
	case ModeJSON:
		return &collectingPrinter{w: r.out, write: export.WriteJSON}
	case ModeMarkdown:
		return &collectingPrinter{w: r.out, write: export.WriteMarkdown, emptyMessage: true}
	case ModeTable:
		return &tablePrinter{w: r.out}
	case ModeText:
		return lineFlusher{worldline.NewLinePrinter(r.out, r.Highlighter())}
	default:
		return lineFlusher{worldline.NewLinePrinter(r.out, nil)}
	}
}

// lineFlusher adapts the streaming line printer.
type lineFlusher struct {
	*worldline.LinePrinter
}

func (lineFlusher) Flush() error { return nil }

// collectingPrinter gathers events and writes them as one document.
type collectingPrinter struct {
	w            io.Writer
	write        func(io.Writer, []worldline.Event) error
	emptyMessage bool
	events       []worldline.Event
	empty        bool
}

func (p *collectingPrinter) PrintEvent(e worldline.Event, _ bool) error {
	p.events = append(p.events, e)
	return nil
}

func (p *collectingPrinter) PrintEmpty() error {
	p.empty = true
	return nil
}

func (p *collectingPrinter) Flush() error {
	if p.empty && len(p.events) == 0 && p.emptyMessage {
		_, err := io.WriteString(p.w, "_"+worldline.NoEventsMessage+"_\n")
		return err
	}
	return p.write(p.w, p.events)
}

// tablePrinter renders events as a boxed go-pretty table.
type tablePrinter struct {
	w     io.Writer
	rows  []table.Row
	empty bool
}

func (p *tablePrinter) PrintEvent(e worldline.Event, showEra bool) error {
	era := ""
	if showEra {
		era = e.Date.Era()
	}
	p.rows = append(p.rows, table.Row{era, strings.TrimSpace(e.Date.Format(false)), e.Description})
	return nil
}

func (p *tablePrinter) PrintEmpty() error {
	p.empty = true
	return nil
}

func (p *tablePrinter) Flush() error {
	if len(p.rows) == 0 {
		if !p.empty {
			return nil
		}
		_, err := io.WriteString(p.w, worldline.NoEventsMessage+"\n")
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Era", "Date", "Description"})
	t.AppendRows(p.rows)
	_, err := io.WriteString(p.w, t.Render()+"\n")
	return err
}
