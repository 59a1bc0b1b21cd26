package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Clients      service.ClientService
	Categories   service.CategoryService
	Members      service.TeamMemberService
	Requirements service.RequirementService
	Summary      service.SummaryService
	Import       service.ImportService

	// Serve runs the HTTP API until ctx is cancelled. The serve command is
	// omitted when nil.
	Serve func(ctx context.Context, addr string) error
	// Addr is the default listen address for serve.
	Addr string

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Now drives due-date coloring. Defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "reqtrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "reqtrack",
		Short:         "Track client requirements across categories and team members",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newClientCmd(app),
		newCategoryCmd(app),
		newMemberCmd(app),
		newRequirementCmd(app),
		newDashboardCmd(app),
		newImportCmd(app),
	)
	if app.Serve != nil {
		root.AddCommand(newServeCmd(app))
	}

	return root
}
