package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/worldline/internal/cli/output"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Fix bool
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the worldline file for problems",
		Long: `Load the worldline file and report on its health:
- number of events
- breakdown by date precision and era
- events that are out of chronological order
- events without a description

Range queries and insertion assume the file is sorted. Use --fix to sort it
(events on the same date keep their relative order) and save.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Markdown: Headings and lists
  - JSON: Machine-readable format`,
		Example: `  # Check the file
  worldline doctor

  # Sort and save
  worldline doctor --fix`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Sort events by date and save the file")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	File      string         `json:"file"`
	Events    int            `json:"events"`
	Precision map[string]int `json:"precision"`
	Era       map[string]int `json:"era"`
	Unsorted  []int          `json:"unsorted"`
	NoDesc    []int          `json:"no_description"`
	Fixed     bool           `json:"fixed"`
	Healthy   bool           `json:"healthy"`
}

// precisions is the display order of the precision breakdown.
var precisions = []worldline.Precision{
	worldline.PrecisionYear, worldline.PrecisionMonth, worldline.PrecisionDay,
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	wl := cmdCtx.WorldLine
	r := cmdCtx.Renderer

	report := buildDoctorOutput(cmdCtx.Cfg.File, wl)

	if opts.Fix && len(report.Unsorted) > 0 {
		wl.Sort()
		if err := wl.Save(cmdCtx.Cfg.File); err != nil {
			return fmt.Errorf("failed to save sorted worldline: %w", err)
		}
		report.Fixed = true
		report.Healthy = len(report.NoDesc) == 0
		cmdCtx.Logger.Info("sorted worldline", slog.String("file", cmdCtx.Cfg.File), slog.Int("unsorted", len(report.Unsorted)))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(report)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, report)
	default:
		renderDoctorText(r, report)
	}
	return nil
}

func buildDoctorOutput(file string, wl *worldline.WorldLine) *DoctorOutput {
	report := &DoctorOutput{
		File:      file,
		Events:    wl.Len(),
		Precision: map[string]int{},
		Era:       map[string]int{"BCE": 0, "CE": 0},
		Unsorted:  []int{},
		NoDesc:    []int{},
	}
	for _, p := range precisions {
		report.Precision[p.String()] = 0
	}

	for i, e := range wl.Events() {
		report.Precision[e.Date.Precision().String()]++
		report.Era[e.Date.Era()]++
		if strings.TrimSpace(e.Description) == "" {
			report.NoDesc = append(report.NoDesc, i+1)
		}
	}
	// Positions are 1-based so they read like event numbers.
	for _, i := range wl.Unsorted() {
		report.Unsorted = append(report.Unsorted, i+1)
	}

	report.Healthy = len(report.Unsorted) == 0 && len(report.NoDesc) == 0
	return report
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println(styles.Header1.Render("Worldline Health Report"))
	r.Println(styles.Muted.Render(out.File))
	r.Println("")

	r.Println(styles.Header2.Render("Summary"))
	r.Printf("   Events: %d | BCE: %d | CE: %d\n", out.Events, out.Era["BCE"], out.Era["CE"])
	parts := make([]string, 0, len(precisions))
	for _, p := range precisions {
		parts = append(parts, fmt.Sprintf("%s: %d", titleCaser.String(p.String()), out.Precision[p.String()]))
	}
	r.Println("   " + strings.Join(parts, " | "))
	r.Println("")

	r.Println(styles.Header2.Render("Checks"))
	switch {
	case out.Fixed:
		r.Println("   " + styles.Success.Render(fmt.Sprintf("✓ sorted %d out-of-order events and saved", len(out.Unsorted))))
	case len(out.Unsorted) > 0:
		r.Println("   " + styles.Error.Render(fmt.Sprintf("✗ %d events out of order: %s", len(out.Unsorted), joinInts(out.Unsorted))))
		r.Println(styles.Muted.Render("       run 'worldline doctor --fix' to sort"))
	default:
		r.Println("   " + styles.Success.Render("✓ events are in chronological order"))
	}
	if len(out.NoDesc) > 0 {
		r.Println("   " + styles.Warning.Render(fmt.Sprintf("! %d events without description: %s", len(out.NoDesc), joinInts(out.NoDesc))))
	} else {
		r.Println("   " + styles.Success.Render("✓ every event has a description"))
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# Worldline Health Report")
	r.Println("")
	r.Printf("`%s`\n\n", out.File)

	r.Header("Summary")
	r.Printf("- **Events:** %d\n", out.Events)
	r.Printf("- **BCE:** %d\n", out.Era["BCE"])
	r.Printf("- **CE:** %d\n", out.Era["CE"])
	titleCaser := cases.Title(language.English)
	for _, p := range precisions {
		r.Printf("- **%s precision:** %d\n", titleCaser.String(p.String()), out.Precision[p.String()])
	}
	r.Println("")

	r.Header("Checks")
	switch {
	case out.Fixed:
		r.Printf("- [x] Sorted %d out-of-order events\n", len(out.Unsorted))
	case len(out.Unsorted) > 0:
		r.Printf("- [ ] Out of order: %s\n", joinInts(out.Unsorted))
	default:
		r.Println("- [x] Chronological order")
	}
	if len(out.NoDesc) > 0 {
		r.Printf("- [ ] Without description: %s\n", joinInts(out.NoDesc))
	} else {
		r.Println("- [x] Descriptions")
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
