// ABOUTME: Report, dashboard, graph and seed CLI commands
// ABOUTME: Renders the terminal dashboard and graphviz output for an activation
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/harperreed/activator/seed"
	"github.com/harperreed/activator/viz"
)

func (a *App) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and list post-event reports",
	}

	var by, notes string
	generate := &cobra.Command{
		Use:   "generate <activation-id>",
		Short: "Snapshot the activation's metrics into a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			r, err := a.svc.GenerateReport(cmd.Context(), id, by, notes)
			if err != nil {
				return err
			}
			return a.emit(cmd, r, func(w io.Writer) error {
				fmt.Fprintf(w, "Report %s\n", r.ID)
				fmt.Fprintf(w, "  Leads:        %d (%d%% of goal)\n", r.TotalLeads, r.LeadGoalPct)
				fmt.Fprintf(w, "  Samples:      %d (%d%% of goal)\n", r.TotalSamples, r.SampleGoalPct)
				fmt.Fprintf(w, "  Interactions: %d (%d%% of goal)\n", r.TotalInteractions, r.InteractionGoalPct)
				fmt.Fprintf(w, "  Spent:        %s (%d%% of budget)\n", viz.FormatCents(r.TotalBudgetSpent), r.BudgetUsedPct)
				fmt.Fprintf(w, "  Cost/lead:    %s\n", viz.FormatCents(r.CostPerLead))
				_, err := fmt.Fprintf(w, "  Cost/sample:  %s\n", viz.FormatCents(r.CostPerSample))
				return err
			})
		},
	}
	generate.Flags().StringVar(&by, "by", "", "Who generated the report")
	generate.Flags().StringVar(&notes, "notes", "", "Notes to attach")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List reports for an activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			reports, err := a.svc.ListReports(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.emit(cmd, reports, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tCREATED\tLEADS\tSAMPLES\tSPENT")
				for _, r := range reports {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
						r.ID, r.CreatedAt.Format(time.DateTime), r.TotalLeads, r.TotalSamples, viz.FormatCents(r.TotalBudgetSpent))
				}
				return tw.Flush()
			})
		},
	}

	cmd.AddCommand(generate, list)
	return cmd
}

func (a *App) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo activation with venue, budget, inventory and staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			demo, err := seed.Demo(cmd.Context(), a.svc, time.Now())
			if err != nil {
				return err
			}
			return a.emit(cmd, demo, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Seeded demo activation: %s (ID: %s)\n", demo.Name, demo.ID)
				return err
			})
		},
	}
}

func (a *App) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <activation-id>",
		Short: "Show the activation dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			d, err := a.svc.Dashboard(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.emit(cmd, d, func(w io.Writer) error {
				_, err := fmt.Fprint(w, viz.RenderDashboard(d, styled(w)))
				return err
			})
		},
	}
}

func (a *App) graphCommand() *cobra.Command {
	var graphType, format, output string

	cmd := &cobra.Command{
		Use:   "graph <activation-id>",
		Short: "Render the pipeline or stakeholder graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activation", args[0])
			if err != nil {
				return err
			}

			var gvFormat graphviz.Format
			switch format {
			case "dot":
				gvFormat = graphviz.XDOT
			case "svg":
				gvFormat = graphviz.SVG
			case "png":
				gvFormat = graphviz.PNG
			default:
				return fmt.Errorf("unknown format %q: must be dot, svg or png", format)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			generator := viz.NewGraphGenerator(a.svc)
			return generator.Render(cmd.Context(), graphType, id, gvFormat, w)
		},
	}

	f := cmd.Flags()
	f.StringVar(&graphType, "type", viz.GraphPipeline, "Graph type: pipeline or stakeholders")
	f.StringVar(&format, "format", "dot", "Output format: dot, svg or png")
	f.StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
