package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridstack-labs/gridstack/internal/sandbox"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var (
		script   string
		widgetID string
		username string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a widget script in the sandbox",
		Long: `Run a stored widget's script or ad hoc script text in the sandbox.

Scripts see a single capability object "dash" with dash.query(sql) and
dash.user. Script failures are reported, never fatal.`,
		Example: `  # Run a stored widget's script
  gridstack run --widget 01a3...

  # Preview ad hoc script text
  gridstack run --script "dash.query('SELECT count(*) FROM orders')"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (script == "") == (widgetID == "") {
				return fmt.Errorf("exactly one of --script or --widget is required")
			}

			app, cleanup, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			user := sandbox.Principal{Username: username, Name: username, Role: role}

			var outcome sandbox.Outcome
			if widgetID != "" {
				outcome, err = app.Service.RunWidgetScript(cmd.Context(), widgetID, user)
				if err != nil {
					return err
				}
			} else {
				outcome = app.Service.RunScript(cmd.Context(), script, user)
			}

			return renderOutcome(cmd, outcome)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Ad hoc script text to run")
	cmd.Flags().StringVar(&widgetID, "widget", "", "Stored widget id to run")
	cmd.Flags().StringVar(&username, "user", "operator", "Username the script runs as")
	cmd.Flags().StringVar(&role, "role", "creator", "Role the script runs as")

	return cmd
}

func renderOutcome(cmd *cobra.Command, outcome sandbox.Outcome) error {
	if !outcome.OK() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Script failed: %s\n", outcome.Failure.Message)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Script:\n%s\n", outcome.Failure.Script)
		return nil
	}

	encoded, err := json.MarshalIndent(outcome.Value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
