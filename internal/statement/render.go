package statement

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	overStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render writes a human readable statement: one summary table followed by
// the transactions of each category.
func Render(w io.Writer, st *MonthlyStatement) error {
	period := time.Date(st.Year, time.Month(st.Month), 1, 0, 0, 0, 0, time.UTC)
	if _, err := fmt.Fprintln(w, titleStyle.Render("Statement "+period.Format("January 2006"))); err != nil {
		return err
	}

	if len(st.Categories) == 0 {
		if _, err := fmt.Fprintln(w, "No expenses this month."); err != nil {
			return err
		}
	}

	summary := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Spent", "Limit", "Available", "Used %")
	for _, c := range st.Categories {
		row := []string{c.Category, c.TotalSpent.StringFixed(2), "-", "-", "-"}
		if c.HasLimit() {
			row[2] = c.Limit.StringFixed(2)
			row[3] = c.AvailableBalance.StringFixed(2)
			row[4] = c.PercentageUsed.StringFixed(2)
			if c.OverLimit() {
				row[0] = overStyle.Render(c.Category + " (over)")
			}
		}
		summary.Row(row...)
	}
	summary.Row("TOTAL",
		st.TotalExpenses.StringFixed(2),
		st.TotalLimits.StringFixed(2),
		st.AvailableBalance.StringFixed(2),
		st.PercentageUsed.StringFixed(2))

	if _, err := fmt.Fprintln(w, summary.Render()); err != nil {
		return err
	}

	for _, c := range st.Categories {
		details := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Date", "Description", "Establishment", "Method", "Card", "Installment", "Amount")
		for _, tx := range c.Transactions {
			details.Row(
				tx.Date.Format(time.DateOnly),
				tx.Description,
				tx.Establishment,
				tx.PaymentMethod,
				tx.Card.Label(),
				tx.Installment,
				tx.Amount.StringFixed(2),
			)
		}
		if _, err := fmt.Fprintf(w, "\n%s (%s)\n%s\n", titleStyle.Render(c.Category), c.TotalSpent.StringFixed(2), details.Render()); err != nil {
			return err
		}
	}
	return nil
}
