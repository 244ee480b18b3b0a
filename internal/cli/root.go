// Package cli implements slugctl, the operator tool for ViajaStore slugs.
// Commands are built by NewRootCommand so tests can run them against
// in-memory writers and fake dependencies.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/viajastore/backend/internal/audit"
)

// AuditRunner produces an audit result. service.AuditService implements it.
type AuditRunner interface {
	Run(ctx context.Context) (audit.Result, error)
}

// App carries the I/O and dependencies the commands use.
type App struct {
	Out io.Writer
	Err io.Writer

	// OpenAuditor connects to the backing store. The returned close func is
	// called once the command finishes. Only the audit command opens it.
	OpenAuditor func(ctx context.Context) (AuditRunner, func(), error)
}

// ExitError asks Execute to exit with Code. An empty Message prints nothing.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// NewRootCommand builds the slugctl command tree.
func NewRootCommand(app App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}
	if app.Err == nil {
		app.Err = os.Stderr
	}

	root := &cobra.Command{
		Use:           "slugctl",
		Short:         "Inspect and audit ViajaStore URL slugs",
		Long:          "slugctl audits the agency and trip slugs stored in Postgres and checks names and slugs offline.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(newAuditCommand(app))
	root.AddCommand(newMakeCommand(app))
	root.AddCommand(newValidateCommand(app))
	return root
}

// Execute runs slugctl with args and returns the process exit status.
func Execute(ctx context.Context, app App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(root.ErrOrStderr(), exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	return 1
}
