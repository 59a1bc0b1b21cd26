package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// confirmDelete asks before a delete when prompting is possible and --yes
// was not given. It returns false when the user declines.
func confirmDelete(app *App, yes bool, question string) (bool, error) {
	if yes || !app.interactive() {
		return true, nil
	}
	var ok bool
	if err := confirmForm(question, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// reportDelete prints a successful delete and turns refusals into errors
// wrapping ErrNotFound or ErrDeletionBlocked.
func reportDelete(cmd *cobra.Command, entity string, id int64, res domain.DeleteResult) error {
	switch res.Outcome {
	case domain.DeleteOK:
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s #%d\n", entity, id)
		return nil
	case domain.DeleteBlocked:
		return fmt.Errorf("%s #%d is referenced by %d requirement(s): %w", entity, id, res.References, domain.ErrDeletionBlocked)
	case domain.DeleteNotFound:
		return fmt.Errorf("%s #%d: %w", entity, id, domain.ErrNotFound)
	}
	return fmt.Errorf("deleting %s #%d: unexpected outcome %s", entity, id, res.Outcome)
}

func printRequirements(cmd *cobra.Command, app *App, views []*domain.RequirementView) error {
	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No requirements found.")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequirementList(views, app.now()))
	return nil
}
