// ABOUTME: Terminal dashboard rendering for a single activation
// ABOUTME: Plain text bars by default, lipgloss styling when writing to a terminal
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

const barWidth = 20

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// FormatCents renders an amount in cents as dollars with thousands separators.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// Bar draws a fixed-width progress bar for a percentage already clamped to 0..100.
func Bar(pct int) string {
	filled := pct * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// RenderDashboard renders d as text. styled adds terminal colors.
func RenderDashboard(d *activation.Dashboard, styled bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var out strings.Builder
	a := d.Activation

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(style(headerStyle, fmt.Sprintf("  %s · %s", strings.ToUpper(a.Name), a.Brand)) + "\n")
	out.WriteString(fmt.Sprintf("  phase: %s  status: %s\n", a.Phase, a.Status))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString(style(sectionStyle, "VENUE") + "\n")
	if d.Venue == nil {
		out.WriteString("  no venue yet\n\n")
	} else {
		out.WriteString(fmt.Sprintf("  %s (%s)\n", d.Venue.Name, d.Venue.Status))
		out.WriteString("  " + venueTrack(d.Venue.Status) + "\n\n")
	}

	m := d.Metrics
	out.WriteString(style(sectionStyle, "GOALS") + "\n")
	out.WriteString(fmt.Sprintf("  %-13s %s %4d%%  %d / %d\n", "leads", Bar(m.Leads.BarPct), m.Leads.Pct, m.Leads.Current, m.Leads.Goal))
	out.WriteString(fmt.Sprintf("  %-13s %s %4d%%  %d / %d\n", "samples", Bar(m.Samples.BarPct), m.Samples.Pct, m.Samples.Current, m.Samples.Goal))
	out.WriteString(fmt.Sprintf("  %-13s %s %4d%%  %d / %d\n\n", "interactions", Bar(m.Interactions.BarPct), m.Interactions.Pct, m.Interactions.Current, m.Interactions.Goal))

	b := d.Budget
	out.WriteString(style(sectionStyle, "BUDGET") + "\n")
	out.WriteString(fmt.Sprintf("  %-13s %s %4d%%  %s of %s\n", "spent", Bar(m.BudgetBarPct), b.BudgetPct, FormatCents(b.TotalActual), FormatCents(b.BudgetTotal)))
	remaining := fmt.Sprintf("  remaining %s  estimated %s\n", FormatCents(b.Remaining), FormatCents(b.TotalEstimated))
	if b.OverBudget {
		remaining = style(warnStyle, strings.TrimRight(remaining, "\n")+"  OVER BUDGET") + "\n"
	}
	out.WriteString(remaining)
	for _, ct := range b.Categories {
		if ct.Items == 0 {
			continue
		}
		out.WriteString(fmt.Sprintf("  %-15s %3d%%  %s\n", ct.Category, ct.Pct, FormatCents(ct.Total)))
	}
	out.WriteString(fmt.Sprintf("  cost per lead %s  cost per sample %s\n\n", FormatCents(m.CostPerLead), FormatCents(m.CostPerSample)))

	inv := d.Inventory
	out.WriteString(style(sectionStyle, "INVENTORY") + "\n")
	out.WriteString(fmt.Sprintf("  %d products  requested %d  delivered %d  used %d  returned %d  damaged %d\n",
		inv.Products, inv.Requested, inv.Delivered, inv.Used, inv.Returned, inv.Damaged))
	if inv.Unaccounted > 0 {
		out.WriteString(style(warnStyle, fmt.Sprintf("  %d units unaccounted", inv.Unaccounted)) + "\n")
	}
	out.WriteString("\n")

	staff := d.Staff
	out.WriteString(style(sectionStyle, "STAFF") + "\n")
	out.WriteString(fmt.Sprintf("  %d staff  %d clocked in  %d verified  %.2f hours\n\n",
		staff.Total, staff.ByStatus[models.ClockedIn]+staff.ByStatus[models.ClockOnBreak], staff.Verified, staff.HoursWorked))

	out.WriteString(style(sectionStyle, "CHECKLIST") + "\n")
	out.WriteString(fmt.Sprintf("  %-13s %s %4d%%  %d / %d\n\n", "complete", Bar(d.Checklist.Pct), d.Checklist.Pct, d.Checklist.Completed, d.Checklist.Total))

	if d.OpenIssues > 0 || d.PendingSignatures > 0 || b.PendingApproval > 0 {
		out.WriteString(style(sectionStyle, "NEEDS ATTENTION") + "\n")
		if d.OpenIssues > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d open issues\n", d.OpenIssues))
		}
		if b.PendingApproval > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d budget items awaiting approval\n", b.PendingApproval))
		}
		if d.PendingSignatures > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d documents awaiting signature\n", d.PendingSignatures))
		}
	}

	return out.String()
}

// venueTrack shows the venue pipeline with the current status bracketed.
func venueTrack(current models.VenueStatus) string {
	parts := make([]string, 0, len(models.VenueStatuses))
	for _, s := range models.VenueStatuses {
		if s == current {
			parts = append(parts, "["+string(s)+"]")
		} else {
			parts = append(parts, string(s))
		}
	}
	return strings.Join(parts, " → ")
}
