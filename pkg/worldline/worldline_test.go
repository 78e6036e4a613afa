package worldline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Printer that keeps what it was given.
type recorder struct {
	events []Event
	eras   []bool
	empty  int
}

func (r *recorder) PrintEvent(e Event, showEra bool) error {
	r.events = append(r.events, e)
	r.eras = append(r.eras, showEra)
	return nil
}

func (r *recorder) PrintEmpty() error {
	r.empty++
	return nil
}

func (r *recorder) descriptions() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Description
	}
	return out
}

type failingPrinter struct{}

func (failingPrinter) PrintEvent(Event, bool) error { return errors.New("sink closed") }
func (failingPrinter) PrintEmpty() error            { return errors.New("sink closed") }

const sample = `BCE 0044-03-15 Assassination of Julius Caesar
 CE 0476        Fall of the Western Roman Empire

 CE 1969-07-20 Moon landing
 CE 1994        A year to remember
 CE 1994-05     Moved to a new city
 CE 1994-05-15 First day at the new job
 CE 1994-12-31 New year's eve party
 CE 1995-01     Winter trip
`

func sampleWorldLine(t *testing.T) *WorldLine {
	t.Helper()
	wl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 8, wl.Len())
	return wl
}

func TestRead_SkipsEmptyLines(t *testing.T) {
	wl := sampleWorldLine(t)
	assert.Equal(t, MustDate(-44, 3, 15), wl.At(0).Date)
	assert.Equal(t, "Fall of the Western Roman Empire", wl.At(1).Description)
	assert.True(t, wl.IsSorted())
}

func TestRead_CRLF(t *testing.T) {
	wl, err := Read(strings.NewReader(" CE 2023 a\r\n CE 2024 b\r\n"))
	require.NoError(t, err)
	require.Equal(t, 2, wl.Len())
	assert.Equal(t, "a", wl.At(0).Description)
	assert.Equal(t, "b", wl.At(1).Description)
}

func TestRead_ReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader(" CE 2023 ok\n\nnot a date\n"))
	require.Error(t, err)

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 3, lineErr.Line)
	assert.Equal(t, "not a date", lineErr.Text)
	assert.ErrorIs(t, err, ErrDateFormat)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "read", fileErr.Op)
	assert.True(t, IsNotExist(err))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	wl := sampleWorldLine(t)
	path := filepath.Join(t.TempDir(), "worldline.txt")

	require.NoError(t, wl.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, wl.Events(), loaded.Events())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		// era (4) + date field (10) + separator
		require.GreaterOrEqual(t, len(line), 15)
		assert.Equal(t, byte(' '), line[14], "line %q", line)
		_, _, err := ParseDate(line[:14])
		assert.NoError(t, err)
	}
}

func TestSave_Unwritable(t *testing.T) {
	wl := New(NewEvent(MustDate(2023, 0, 0), "x"))
	err := wl.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "wl.txt"))
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "write", fileErr.Op)
}

func TestWriteTo_FixedWidth(t *testing.T) {
	wl := New(
		NewEvent(MustDate(-44, 0, 0), "a"),
		NewEvent(MustDate(2023, 5, 0), "b"),
		NewEvent(MustDate(2023, 5, 6), "c"),
	)
	var buf bytes.Buffer
	n, err := wl.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := "BCE 0044       a\n CE 2023-05    b\n CE 2023-05-06 c\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAnki(t *testing.T) {
	wl := New(NewEvent(MustDate(1969, 7, 20), "Moon landing"))
	var buf bytes.Buffer
	require.NoError(t, wl.WriteAnki(&buf))
	assert.Equal(t, "#separator:Tab\n CE 1969-07-20\tMoon landing\n", buf.String())
}

func TestAddEvent_IncreasingDates(t *testing.T) {
	wl := New()
	for i := int32(0); i < 20; i++ {
		idx := wl.AddEvent(NewEvent(MustDate(1900+i, 0, 0), "event"))
		assert.Equal(t, int(i), idx)
	}
	assert.True(t, wl.IsSorted())
}

func TestAddEvent_Positions(t *testing.T) {
	wl := sampleWorldLine(t)

	tests := []struct {
		name string
		date Date
		want int
	}{
		{"before everything", MustDate(-500, 0, 0), 0},
		{"between bce and 476", MustDate(1, 0, 0), 1},
		{"same date goes first", MustDate(1994, 0, 0), 3},
		{"inside may 1994", MustDate(1994, 5, 10), 5},
		{"after everything", MustDate(2100, 0, 0), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(wl.Events()...)
			idx := w.AddEvent(NewEvent(tt.date, tt.name))
			assert.Equal(t, tt.want, idx)
			assert.Equal(t, tt.name, w.At(idx).Description)
			assert.Equal(t, wl.Len()+1, w.Len())
			assert.True(t, w.IsSorted())
		})
	}
}

func TestFirstGEQ_LastBefore_Agree(t *testing.T) {
	wl := sampleWorldLine(t)
	probes := []Date{
		MustDate(-9999, 0, 0), MustDate(-44, 0, 0), MustDate(-44, 3, 15), MustDate(-44, 3, 16),
		MustDate(0, 0, 0), MustDate(476, 0, 0), MustDate(1994, 0, 0), MustDate(1994, 5, 0),
		MustDate(1994, 5, 15), MustDate(1995, 0, 0), MustDate(1995, 2, 0), MustDate(9999, 0, 0),
	}
	for _, d := range probes {
		assert.Equal(t, wl.FirstGEQ(d), wl.LastBefore(d), "probe %s", d)
	}

	assert.Equal(t, 0, wl.FirstGEQ(MustDate(-44, 0, 0)))
	assert.Equal(t, 1, wl.FirstGEQ(MustDate(-44, 3, 16)))
	assert.Equal(t, 3, wl.FirstGEQ(MustDate(1994, 0, 0)))
	assert.Equal(t, 8, wl.FirstGEQ(MustDate(9999, 0, 0)))
}

func TestDateRange(t *testing.T) {
	wl := sampleWorldLine(t)

	tests := []struct {
		name       string
		start, end Date
		want       []string
	}{
		{
			name:  "whole 1994",
			start: MustDate(1994, 0, 0), end: MustDate(1994, 0, 0),
			want: []string{"A year to remember", "Moved to a new city", "First day at the new job", "New year's eve party"},
		},
		{
			name:  "may 1994",
			start: MustDate(1994, 5, 0), end: MustDate(1994, 5, 0),
			want: []string{"Moved to a new city", "First day at the new job"},
		},
		{
			name:  "single day",
			start: MustDate(1994, 5, 15), end: MustDate(1994, 5, 15),
			want: []string{"First day at the new job"},
		},
		{
			name:  "explicit inclusive span",
			start: MustDate(1969, 7, 20), end: MustDate(1994, 5, 0),
			want: []string{"Moon landing", "A year to remember", "Moved to a new city", "First day at the new job"},
		},
		{
			name:  "across eras",
			start: MustDate(-100, 0, 0), end: MustDate(476, 0, 0),
			want: []string{"Assassination of Julius Caesar", "Fall of the Western Roman Empire"},
		},
		{
			name:  "reversed is empty",
			start: MustDate(1995, 0, 0), end: MustDate(1994, 0, 0),
			want: []string{},
		},
		{
			name:  "nothing in range",
			start: MustDate(1000, 0, 0), end: MustDate(1500, 0, 0),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := wl.DateRange(tt.start, tt.end)
			assert.LessOrEqual(t, lo, hi)

			got := []string{}
			for _, e := range wl.Slice(lo, hi) {
				got = append(got, e.Description)
				assert.False(t, e.Date.Before(tt.start))
				assert.True(t, e.Date.Before(tt.end.Next()))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintImplicitDateRange(t *testing.T) {
	wl := sampleWorldLine(t)
	rec := &recorder{}

	require.NoError(t, wl.PrintImplicitDateRange(rec, MustDate(1995, 0, 0)))
	assert.Equal(t, []string{"Winter trip"}, rec.descriptions())
	assert.Equal(t, []bool{false}, rec.eras)
}

func TestPrintRange_Era(t *testing.T) {
	wl := sampleWorldLine(t)

	rec := &recorder{}
	require.NoError(t, wl.PrintRange(rec, 0, 3))
	assert.Equal(t, []bool{true, true, true}, rec.eras, "batch crossing into CE shows era")

	rec = &recorder{}
	require.NoError(t, wl.PrintRange(rec, 2, 5))
	assert.Equal(t, []bool{false, false, false}, rec.eras, "all CE batch hides era")

	tests := []struct {
		name   string
		events []Event
		want   []bool
	}{
		{
			name:   "single bce event",
			events: []Event{NewEvent(MustDate(-44, 3, 15), "Ides")},
			want:   []bool{false},
		},
		{
			name:   "all bce",
			events: []Event{NewEvent(MustDate(-500, 0, 0), "a"), NewEvent(MustDate(-44, 0, 0), "b")},
			want:   []bool{false, false},
		},
		{
			name:   "bce ending at year zero",
			events: []Event{NewEvent(MustDate(-44, 0, 0), "a"), NewEvent(MustDate(0, 0, 0), "b")},
			want:   []bool{false, false},
		},
		{
			name:   "bce into year one",
			events: []Event{NewEvent(MustDate(-44, 0, 0), "a"), NewEvent(MustDate(1, 0, 0), "b")},
			want:   []bool{true, true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, New(tt.events...).PrintAll(rec))
			assert.Equal(t, tt.want, rec.eras)
		})
	}
}

func TestPrintImplicitDateRange_BCEOnlyHidesEra(t *testing.T) {
	wl := New(NewEvent(MustDate(-44, 3, 15), "Ides"))

	var buf bytes.Buffer
	require.NoError(t, wl.PrintImplicitDateRange(NewLinePrinter(&buf, nil), MustDate(-44, 0, 0)))
	assert.Equal(t, "0044-03-15 Ides\n", buf.String())
}

func TestPrintRange_Clamps(t *testing.T) {
	wl := sampleWorldLine(t)

	rec := &recorder{}
	require.NoError(t, wl.PrintRange(rec, -3, 100))
	assert.Len(t, rec.events, 8)

	rec = &recorder{}
	require.NoError(t, wl.PrintRange(rec, 5, 2))
	assert.Empty(t, rec.events)
	assert.Equal(t, 1, rec.empty)

	rec = &recorder{}
	require.NoError(t, New().PrintAll(rec))
	assert.Equal(t, 1, rec.empty)
}

func TestPrintRange_PropagatesPrinterError(t *testing.T) {
	wl := sampleWorldLine(t)
	assert.Error(t, wl.PrintAll(failingPrinter{}))
	assert.Error(t, New().PrintAll(failingPrinter{}))
}

func TestQueryAndPrint(t *testing.T) {
	wl := sampleWorldLine(t)

	var buf bytes.Buffer
	n, err := wl.QueryAndPrint(NewLinePrinter(&buf, nil), "assassinat")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "BCE 0044-03-15 Assassination of Julius Caesar\n", buf.String())
}

func TestQueryAndPrint_EraAccumulates(t *testing.T) {
	wl := New(
		NewEvent(MustDate(-100, 0, 0), "no match"),
		NewEvent(MustDate(1, 0, 0), "Roman thing one"),
		NewEvent(MustDate(-44, 0, 0), "roman thing two"),
		NewEvent(MustDate(476, 0, 0), "ROMAN thing three"),
	)
	rec := &recorder{}
	n, err := wl.QueryAndPrint(rec, "Roman")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []bool{false, true, true}, rec.eras)
}

func TestQueryAndPrint_NoMatch(t *testing.T) {
	wl := sampleWorldLine(t)
	var buf bytes.Buffer
	n, err := wl.QueryAndPrint(NewLinePrinter(&buf, nil), "zeppelin")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, NoEventsMessage+"\n", buf.String())
}

func TestQuery_UnicodeFolding(t *testing.T) {
	wl := New(
		NewEvent(MustDate(1871, 0, 0), "Gründung des Deutschen Reiches"),
		NewEvent(MustDate(1794, 0, 0), "Fondation de l'École polytechnique"),
	)
	assert.Equal(t, []int{0}, wl.Query("GRÜNDUNG"))
	assert.Equal(t, []int{1}, wl.Query("ÉCOLE"))
	assert.Empty(t, wl.Query("absent"))
}

func TestUnsortedAndSort(t *testing.T) {
	wl, err := Read(strings.NewReader(" CE 2000 b\n CE 1990 a\n CE 2000 c\n CE 1995 d\n"))
	require.NoError(t, err)

	assert.False(t, wl.IsSorted())
	assert.Equal(t, []int{1, 3}, wl.Unsorted())

	wl.Sort()
	assert.True(t, wl.IsSorted())
	got := make([]string, 0, wl.Len())
	for _, e := range wl.Events() {
		got = append(got, e.Description)
	}
	assert.Equal(t, []string{"a", "d", "b", "c"}, got, "sort keeps equal dates in order")
}

func TestLinePrinter_Highlight(t *testing.T) {
	var buf bytes.Buffer
	p := NewLinePrinter(&buf, strings.ToLower)
	require.NoError(t, p.PrintEvent(NewEvent(MustDate(-44, 0, 0), "X"), true))
	assert.Equal(t, "bce 0044       X\n", buf.String())
}
