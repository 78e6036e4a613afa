// Package worldline defines the chronological event log.
//
// This package contains:
//   - Date, a possibly partial calendar date (year, year-month, year-month-day)
//   - Event, a Date paired with a free-text description
//   - WorldLine, the sorted collection of events backed by a flat text file
//   - Printer, the sink used by the display operations
//
// Dates order lexicographically on (year, month, day) with unknown fields
// stored as 0, so "2023" sorts before "2023-01-01". Range queries rely on
// Date.Next to turn a partial date into the exclusive end of its period.
package worldline
