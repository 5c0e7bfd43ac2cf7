// ABOUTME: Venue, budget and product CLI commands
// ABOUTME: Drives the three activation pipelines from the command line
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/viz"
)

func (a *App) venueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venue",
		Short: "Manage the venue pipeline",
	}

	var (
		name, address, city, state, venueType, contactName, contactEmail, cost string
		capacity                                                              int
	)
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Add a candidate venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			cents, err := parseMoney("cost", cost)
			if err != nil {
				return err
			}
			v, err := a.svc.CreateVenue(cmd.Context(), models.Venue{
				ActivationID: activationID,
				Name:         name,
				Address:      address,
				City:         city,
				State:        state,
				VenueType:    venueType,
				ContactName:  contactName,
				ContactEmail: contactEmail,
				Capacity:     capacity,
				BookingCost:  cents,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, v, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added venue: %s (ID: %s)\n", v.Name, v.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&name, "name", "", "Venue name (required)")
	f.StringVar(&address, "address", "", "Street address")
	f.StringVar(&city, "city", "", "City")
	f.StringVar(&state, "state", "", "State")
	f.StringVar(&venueType, "type", "", "Venue type, e.g. retail or outdoor")
	f.StringVar(&contactName, "contact-name", "", "Venue contact")
	f.StringVar(&contactEmail, "contact-email", "", "Venue contact email")
	f.StringVar(&cost, "cost", "", "Booking cost in dollars")
	f.IntVar(&capacity, "capacity", 0, "Capacity")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List venues for an activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			venues, err := a.svc.ListVenues(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			return a.emit(cmd, venues, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tCITY\tSTATUS\tWALKTHROUGH\tCOST")
				for _, v := range venues {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						v.ID, v.Name, v.City, v.Status, dateString(v.WalkthroughDate), viz.FormatCents(v.BookingCost))
				}
				return tw.Flush()
			})
		},
	}

	advance := &cobra.Command{
		Use:   "advance <venue-id>",
		Short: "Move a venue to its next pipeline status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("venue", args[0])
			if err != nil {
				return err
			}
			v, err := a.svc.AdvanceVenue(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printVenue(cmd, v)
		},
	}

	var walkDate, notes string
	walkthrough := &cobra.Command{
		Use:   "walkthrough <venue-id>",
		Short: "Record a walkthrough date and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("venue", args[0])
			if err != nil {
				return err
			}
			date, err := parseDate("date", walkDate)
			if err != nil {
				return err
			}
			v, err := a.svc.ScheduleWalkthrough(cmd.Context(), id, date, notes)
			if err != nil {
				return err
			}
			return a.printVenue(cmd, v)
		},
	}
	walkthrough.Flags().StringVar(&walkDate, "date", "", "Walkthrough date (YYYY-MM-DD)")
	walkthrough.Flags().StringVar(&notes, "notes", "", "Walkthrough notes")

	cmd.AddCommand(add, list, advance, walkthrough)
	return cmd
}

func (a *App) printVenue(cmd *cobra.Command, v *models.Venue) error {
	return a.emit(cmd, v, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: %s\n", v.Name, v.Status)
		return err
	})
}

func (a *App) budgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budget line items and approvals",
	}

	var category, description, vendor, estimate, notes string
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Add an estimated budget line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			cents, err := parseMoney("estimate", estimate)
			if err != nil {
				return err
			}
			item, err := a.svc.AddBudgetItem(cmd.Context(), models.BudgetItem{
				ActivationID:    activationID,
				Category:        models.BudgetCategory(category),
				Description:     description,
				Vendor:          vendor,
				EstimatedAmount: cents,
				Notes:           notes,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, item, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added budget item: %s %s (ID: %s)\n", item.Description, viz.FormatCents(item.EstimatedAmount), item.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&category, "category", string(models.CategoryOther), "Budget category")
	f.StringVar(&description, "description", "", "What the money is for (required)")
	f.StringVar(&vendor, "vendor", "", "Vendor")
	f.StringVar(&estimate, "estimate", "", "Estimated amount in dollars (required)")
	f.StringVar(&notes, "notes", "", "Notes")
	_ = add.MarkFlagRequired("description")
	_ = add.MarkFlagRequired("estimate")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "Show the budget rollup and line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			summary, err := a.svc.BudgetSummary(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			items, err := a.svc.ListBudgetItems(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			out := struct {
				Summary *metrics.BudgetSummary `json:"summary"`
				Items   []models.BudgetItem    `json:"items"`
			}{summary, items}
			return a.emit(cmd, out, func(w io.Writer) error {
				return printBudget(w, summary, items)
			})
		},
	}

	var approver, actual, reason string
	transition := &cobra.Command{
		Use:   "transition <item-id> <status>",
		Short: "Move a line item: pending_approval, approved, rejected or paid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("budget item", args[0])
			if err != nil {
				return err
			}
			in := activation.BudgetTransition{Approver: approver, Reason: reason}
			if cmd.Flags().Changed("actual") {
				cents, err := parseMoney("actual", actual)
				if err != nil {
					return err
				}
				in.Actual = &cents
			}
			item, err := a.svc.TransitionBudgetItem(cmd.Context(), id, models.BudgetStatus(args[1]), in)
			if err != nil {
				return err
			}
			return a.emit(cmd, item, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s\n", item.Description, item.Status)
				return err
			})
		},
	}
	tf := transition.Flags()
	tf.StringVar(&approver, "approver", "", "Who approved it (for approved)")
	tf.StringVar(&actual, "actual", "", "Actual amount paid in dollars (for paid)")
	tf.StringVar(&reason, "reason", "", "Rejection reason (for rejected)")

	cmd.AddCommand(add, list, transition)
	return cmd
}

func printBudget(w io.Writer, summary *metrics.BudgetSummary, items []models.BudgetItem) error {
	fmt.Fprintf(w, "Budget:    %s\n", viz.FormatCents(summary.BudgetTotal))
	fmt.Fprintf(w, "Estimated: %s\n", viz.FormatCents(summary.TotalEstimated))
	fmt.Fprintf(w, "Spent:     %s (%d%%)\n", viz.FormatCents(summary.TotalActual), summary.BudgetPct)
	fmt.Fprintf(w, "Remaining: %s\n", viz.FormatCents(summary.Remaining))
	if summary.OverBudget {
		fmt.Fprintln(w, "OVER BUDGET")
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tITEMS\tTOTAL\tSHARE")
	for _, c := range summary.Categories {
		if c.Items == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d%%\n", c.Category, c.Items, viz.FormatCents(c.Total), c.Pct)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintln(tw, "ID\tCATEGORY\tDESCRIPTION\tESTIMATE\tACTUAL\tSTATUS")
	for _, item := range items {
		actual := "-"
		if item.ActualAmount != nil {
			actual = viz.FormatCents(*item.ActualAmount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Category, item.Description, viz.FormatCents(item.EstimatedAmount), actual, item.Status)
	}
	return tw.Flush()
}

func (a *App) productCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage product inventory",
	}

	var name, sku, unitCost, notes string
	var quantity int
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Request product for an activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			cents, err := parseMoney("unit-cost", unitCost)
			if err != nil {
				return err
			}
			p, err := a.svc.AddProduct(cmd.Context(), models.Product{
				ActivationID:      activationID,
				Name:              name,
				SKU:               sku,
				UnitCost:          cents,
				QuantityRequested: quantity,
				Notes:             notes,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Requested %d x %s (ID: %s)\n", p.QuantityRequested, p.Name, p.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&name, "name", "", "Product name (required)")
	f.StringVar(&sku, "sku", "", "SKU")
	f.StringVar(&unitCost, "unit-cost", "", "Unit cost in dollars")
	f.IntVar(&quantity, "quantity", 0, "Quantity requested (required)")
	f.StringVar(&notes, "notes", "", "Notes")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("quantity")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "Show inventory for an activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			products, err := a.svc.ListProducts(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			summary, err := a.svc.InventorySummary(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			out := struct {
				Summary  *metrics.ProductSummary `json:"summary"`
				Products []models.Product        `json:"products"`
			}{summary, products}
			return a.emit(cmd, out, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tREQ\tDELIVERED\tUSED\tRETURNED\tDAMAGED\tUNACCOUNTED")
				for _, p := range products {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
						p.ID, p.Name, p.Status, p.QuantityRequested, p.QuantityDelivered,
						p.QuantityUsed, p.QuantityReturned, p.QuantityDamaged, p.Unaccounted())
				}
				return tw.Flush()
			})
		},
	}

	advance := &cobra.Command{
		Use:   "advance <product-id>",
		Short: "Move a product to its next inventory status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			p, err := a.svc.AdvanceProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s\n", p.Name, p.Status)
				return err
			})
		},
	}

	var r activation.Reconciliation
	reconcile := &cobra.Command{
		Use:   "reconcile <product-id>",
		Short: "Account for delivered units after the event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			p, err := a.svc.ReconcileProduct(cmd.Context(), id, r)
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s reconciled: %d used, %d returned, %d damaged, %d unaccounted\n",
					p.Name, p.QuantityUsed, p.QuantityReturned, p.QuantityDamaged, p.Unaccounted())
				return err
			})
		},
	}
	rf := reconcile.Flags()
	rf.IntVar(&r.Used, "used", 0, "Units used or sampled")
	rf.IntVar(&r.Returned, "returned", 0, "Units returned")
	rf.IntVar(&r.Damaged, "damaged", 0, "Units damaged")
	rf.StringVar(&r.By, "by", "", "Who reconciled")

	cmd.AddCommand(add, list, advance, reconcile)
	return cmd
}
