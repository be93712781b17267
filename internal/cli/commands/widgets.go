package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gridstack-labs/gridstack/internal/widgets"
)

// NewWidgetsCommand creates the widgets command group.
func NewWidgetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Inspect and manage dashboard widgets",
	}

	cmd.AddCommand(newWidgetsListCommand())
	cmd.AddCommand(newWidgetsSeedCommand())
	cmd.AddCommand(newWidgetsRemoveCommand())

	return cmd
}

func newWidgetsListCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list [dashboard-id]",
		Short: "List a dashboard's widgets in display order",
		Long: `List a dashboard's widgets in their stored display order.

A dashboard with no stored order is seeded with default widgets from the
discovered tables on first listing.`,
		Example: `  # List the home dashboard
  gridstack widgets list

  # List a named dashboard as a specific role
  gridstack widgets list team-ops --role creator`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboardID := widgets.HomeDashboardID
			if len(args) == 1 {
				dashboardID = args[0]
			}

			app, cleanup, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := app.Service.ListWidgets(cmd.Context(), dashboardID, role)
			if err != nil {
				return err
			}

			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no widgets)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Title", "Type", "Entity", "Color", "Icon"})
			for _, w := range list {
				t.AppendRow(table.Row{w.ID, w.Title, string(w.Type), w.Entity, w.Color, w.Icon})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "creator", "Role to list as")

	return cmd
}

func newWidgetsSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [dashboard-id]",
		Short: "Seed a dashboard with default widgets",
		Long: `Seed a dashboard with default widgets generated from the discovered
tables. A dashboard that already has a stored order is left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboardID := widgets.HomeDashboardID
			if len(args) == 1 {
				dashboardID = args[0]
			}

			app, cleanup, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			// Listing populates an uninitialized dashboard as a side effect.
			list, err := app.Service.ListWidgets(cmd.Context(), dashboardID, "creator")
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dashboard %s has %d widgets\n", dashboardID, len(list))
			return nil
		},
	}

	return cmd
}

func newWidgetsRemoveCommand() *cobra.Command {
	var dashboardID string

	cmd := &cobra.Command{
		Use:   "remove <widget-id>",
		Short: "Remove a widget from a dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := app.Service.RemoveWidget(cmd.Context(), args[0], dashboardID); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed widget %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dashboardID, "dashboard", widgets.HomeDashboardID, "Dashboard the widget belongs to")

	return cmd
}
