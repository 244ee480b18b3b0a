package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viajastore/backend/internal/slug"
)

func newMakeCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "make <name>...",
		Short: "Print the slug for each name",
		Long: `Print the slug each name slugifies to, one per line.

Names with nothing to slugify print an empty line and a note on stderr; the
server falls back to agencia-<millis> / viagem-<millis> for those.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, name := range args {
				s := slug.Make(name)
				if s == "" {
					fmt.Fprintf(app.Err, "note: %q has nothing to slugify\n", name)
				}
				fmt.Fprintln(app.Out, s)
			}
			return nil
		},
	}
}

func newValidateCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <slug>...",
		Short: "Check slugs against the slug grammar",
		Long:  "Report whether each argument is a well-formed slug. Exits with status 1 if any is not.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			invalid := 0
			for _, candidate := range args {
				verdict := "valid"
				if !slug.IsValid(candidate) {
					verdict = "invalid"
					invalid++
				}
				fmt.Fprintf(app.Out, "%-7s  %q", verdict, candidate)
				if verdict == "invalid" {
					if suggested := slug.Make(candidate); suggested != "" {
						fmt.Fprintf(app.Out, "  (try %q)", suggested)
					}
				}
				fmt.Fprintln(app.Out)
			}
			if invalid > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d slugs invalid", invalid, len(args))}
			}
			return nil
		},
	}
}
