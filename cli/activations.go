// ABOUTME: Activation CLI commands
// ABOUTME: Create, list, update and advance activations and read their activity log
package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/viz"
)

func (a *App) activationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activation",
		Aliases: []string{"act"},
		Short:   "Manage activations",
	}
	cmd.AddCommand(
		a.activationCreateCommand(),
		a.activationListCommand(),
		a.activationUpdateCommand(),
		&cobra.Command{
			Use:   "advance <activation-id>",
			Short: "Move an activation to its next phase",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runAdvancePhase,
		},
		&cobra.Command{
			Use:   "interactions <activation-id> <count>",
			Short: "Add walk-up interactions to the counter",
			Args:  cobra.ExactArgs(2),
			RunE:  a.runRecordInteractions,
		},
		&cobra.Command{
			Use:   "reconcile-spend <activation-id>",
			Short: "Copy the paid budget total into the activation's spent field",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runReconcileSpend,
		},
		&cobra.Command{
			Use:   "delete <activation-id>",
			Short: "Delete an activation and everything under it",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runDeleteActivation,
		},
		&cobra.Command{
			Use:   "activity <activation-id>",
			Short: "Show the change log for an activation",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runActivity,
		},
	)
	return cmd
}

func (a *App) activationCreateCommand() *cobra.Command {
	var (
		name, brand, description, color, budget string
		eventDate, eventEnd, setupDate, teardown string
		leadGoal, sampleGoal, interactionGoal    int
		tags                                     []string
		createdBy                                string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new activation in the planning phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseMoney("budget", budget)
			if err != nil {
				return err
			}
			act := models.Activation{
				Name:            name,
				Brand:           brand,
				Description:     description,
				Color:           color,
				BudgetTotal:     total,
				LeadGoal:        leadGoal,
				SampleGoal:      sampleGoal,
				InteractionGoal: interactionGoal,
				Tags:            tags,
				CreatedBy:       createdBy,
			}
			dates := []struct {
				flag, value string
				dst         **time.Time
			}{
				{"event-date", eventDate, &act.EventDate},
				{"event-end", eventEnd, &act.EventEndDate},
				{"setup-date", setupDate, &act.SetupDate},
				{"teardown-date", teardown, &act.TeardownDate},
			}
			for _, d := range dates {
				if *d.dst, err = parseDate(d.flag, d.value); err != nil {
					return err
				}
			}

			created, err := a.svc.CreateActivation(cmd.Context(), act)
			if err != nil {
				return err
			}
			return a.emit(cmd, created, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Created activation: %s (ID: %s)\n", created.Name, created.ID)
				return err
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Activation name (required)")
	f.StringVar(&brand, "brand", "", "Brand running the activation (required)")
	f.StringVar(&description, "description", "", "Description")
	f.StringVar(&color, "color", "", "Display color, e.g. #2BB3A3")
	f.StringVar(&budget, "budget", "", "Total budget in dollars")
	f.StringVar(&eventDate, "event-date", "", "Event start date (YYYY-MM-DD)")
	f.StringVar(&eventEnd, "event-end", "", "Event end date (YYYY-MM-DD)")
	f.StringVar(&setupDate, "setup-date", "", "Setup date (YYYY-MM-DD)")
	f.StringVar(&teardown, "teardown-date", "", "Teardown date (YYYY-MM-DD)")
	f.IntVar(&leadGoal, "lead-goal", 0, "Lead capture goal")
	f.IntVar(&sampleGoal, "sample-goal", 0, "Samples handed out goal")
	f.IntVar(&interactionGoal, "interaction-goal", 0, "Interaction goal")
	f.StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	f.StringVar(&createdBy, "created-by", "", "Who created it")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("brand")
	return cmd
}

func (a *App) activationListCommand() *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phase != "" && !models.Phase(phase).Valid() {
				return fmt.Errorf("unknown phase %q", phase)
			}
			all, err := a.svc.ListActivations(cmd.Context())
			if err != nil {
				return err
			}
			result := make([]models.Activation, 0, len(all))
			for _, act := range all {
				if phase == "" || act.Phase == models.Phase(phase) {
					result = append(result, act)
				}
			}

			return a.emit(cmd, result, func(w io.Writer) error {
				if len(result) == 0 {
					_, err := fmt.Fprintln(w, "No activations found.")
					return err
				}
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPHASE\tSTATUS\tEVENT\tBUDGET")
				for _, act := range result {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						act.ID, act.Name, act.Brand, act.Phase, act.Status, dateString(act.EventDate), viz.FormatCents(act.BudgetTotal))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "", "Only show activations in this phase")
	return cmd
}

func (a *App) activationUpdateCommand() *cobra.Command {
	var (
		name, brand, description, status, budget, eventDate string
		leadGoal, sampleGoal, interactionGoal               int
	)

	cmd := &cobra.Command{
		Use:   "update <activation-id>",
		Short: "Change activation fields; only flags given are updated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activation", args[0])
			if err != nil {
				return err
			}

			var patch activation.ActivationPatch
			f := cmd.Flags()
			if f.Changed("name") {
				patch.Name = &name
			}
			if f.Changed("brand") {
				patch.Brand = &brand
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("status") {
				st := models.ActivationState(status)
				patch.Status = &st
			}
			if f.Changed("budget") {
				total, err := parseMoney("budget", budget)
				if err != nil {
					return err
				}
				patch.BudgetTotal = &total
			}
			if f.Changed("event-date") {
				if patch.EventDate, err = parseDate("event-date", eventDate); err != nil {
					return err
				}
			}
			if f.Changed("lead-goal") {
				patch.LeadGoal = &leadGoal
			}
			if f.Changed("sample-goal") {
				patch.SampleGoal = &sampleGoal
			}
			if f.Changed("interaction-goal") {
				patch.InteractionGoal = &interactionGoal
			}

			updated, err := a.svc.UpdateActivation(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return a.emit(cmd, updated, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Updated activation: %s\n", updated.Name)
				return err
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Activation name")
	f.StringVar(&brand, "brand", "", "Brand")
	f.StringVar(&description, "description", "", "Description")
	f.StringVar(&status, "status", "", "Status: draft, active, on_hold, completed or cancelled")
	f.StringVar(&budget, "budget", "", "Total budget in dollars")
	f.StringVar(&eventDate, "event-date", "", "Event start date (YYYY-MM-DD)")
	f.IntVar(&leadGoal, "lead-goal", 0, "Lead capture goal")
	f.IntVar(&sampleGoal, "sample-goal", 0, "Samples goal")
	f.IntVar(&interactionGoal, "interaction-goal", 0, "Interaction goal")
	return cmd
}

func (a *App) runAdvancePhase(cmd *cobra.Command, args []string) error {
	id, err := parseID("activation", args[0])
	if err != nil {
		return err
	}
	act, err := a.svc.AdvancePhase(cmd.Context(), id)
	if err != nil {
		return err
	}
	return a.emit(cmd, act, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s is now in phase %s\n", act.Name, act.Phase)
		return err
	})
}

func (a *App) runRecordInteractions(cmd *cobra.Command, args []string) error {
	id, err := parseID("activation", args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid count %q: %w", args[1], err)
	}
	act, err := a.svc.RecordInteractions(cmd.Context(), id, n)
	if err != nil {
		return err
	}
	return a.emit(cmd, act, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: %d interactions\n", act.Name, act.InteractionCount)
		return err
	})
}

func (a *App) runReconcileSpend(cmd *cobra.Command, args []string) error {
	id, err := parseID("activation", args[0])
	if err != nil {
		return err
	}
	act, err := a.svc.ReconcileBudgetSpent(cmd.Context(), id)
	if err != nil {
		return err
	}
	return a.emit(cmd, act, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: spent %s of %s\n", act.Name, viz.FormatCents(act.BudgetSpent), viz.FormatCents(act.BudgetTotal))
		return err
	})
}

func (a *App) runDeleteActivation(cmd *cobra.Command, args []string) error {
	id, err := parseID("activation", args[0])
	if err != nil {
		return err
	}
	if err := a.svc.DeleteActivation(cmd.Context(), id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted activation %s\n", id)
	return err
}

func (a *App) runActivity(cmd *cobra.Command, args []string) error {
	id, err := parseID("activation", args[0])
	if err != nil {
		return err
	}
	entries, err := a.svc.Activity(cmd.Context(), id)
	if err != nil {
		return err
	}
	return a.emit(cmd, entries, func(w io.Writer) error {
		tw := newTable(w)
		fmt.Fprintln(tw, "AT\tVERB\tKIND\tDETAIL")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.At.Format(time.DateTime), e.Verb, e.Kind, e.Detail)
		}
		return tw.Flush()
	})
}

func dateString(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}
