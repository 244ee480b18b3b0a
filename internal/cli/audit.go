package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/viajastore/backend/internal/audit"
)

// exitCritical is returned by `slugctl audit` when critical issues exist, so
// CI jobs and cron wrappers can alert on it.
const exitCritical = 2

func newAuditCommand(app App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit every agency and trip slug",
		Long: `Load all agencies and trips from the database and report empty,
invalid, duplicate, low-quality and out-of-sync slugs.

Exits with status 2 when critical issues (empty, invalid, duplicate) exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "text", "json", "yaml", "csv":
			default:
				return fmt.Errorf("unknown --format %q (want text, json, yaml or csv)", format)
			}
			if app.OpenAuditor == nil {
				return fmt.Errorf("audit: no database configured")
			}

			auditor, closeFn, err := app.OpenAuditor(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit: %w", err)
			}
			defer closeFn()

			result, err := auditor.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit: %w", err)
			}

			if err := writeResult(app.Out, format, result); err != nil {
				return fmt.Errorf("audit: %w", err)
			}

			if result.HasCritical() {
				return &ExitError{Code: exitCritical}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml or csv")
	return cmd
}

func writeResult(w io.Writer, format string, r audit.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return audit.WriteCSV(w, r)
	default:
		_, err := fmt.Fprintln(w, summaryBox(w, r))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, audit.Report(r))
		return err
	}
}

// summaryBox renders a one-glance status banner above the text report.
// Colors degrade to plain text when w is not a terminal.
func summaryBox(w io.Writer, r audit.Result) string {
	re := lipgloss.NewRenderer(w)

	status := re.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render("OK")
	switch {
	case r.HasCritical():
		status = re.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render("CRITICAL")
	case r.Summary.Warnings > 0:
		status = re.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render("WARNINGS")
	}

	dim := re.NewStyle().Foreground(lipgloss.Color("240"))
	body := fmt.Sprintf("%s  %s\n%s",
		re.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("slug audit"),
		status,
		dim.Render(fmt.Sprintf("%d agencies · %d trips · %d critical · %d warnings",
			r.Summary.Agencies.Records, r.Summary.Trips.Records,
			r.Summary.CriticalIssues, r.Summary.Warnings)),
	)

	return re.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(body)
}
