package dashboard

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"orderdesk/internal/invoice"
	"orderdesk/internal/model"

	"github.com/olekukonko/tablewriter"
)

// cellLimit caps the free-text columns so one long address does not wrap the table.
const cellLimit = 40

// TableRenderer draws the dashboard as a tab bar followed by a table of orders.
type TableRenderer struct {
	out io.Writer
}

// NewTableRenderer creates a renderer writing to out.
func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

// Render writes screen to the underlying writer.
func (r *TableRenderer) Render(screen Screen) error {
	tabs := make([]string, 0, len(model.Views))
	for _, v := range model.Views {
		tab := fmt.Sprintf("%s (%d)", v.Label(), screen.Counts[v])
		if v == screen.View {
			tab = "[" + tab + "]"
		}
		tabs = append(tabs, tab)
	}
	if _, err := fmt.Fprintln(r.out, strings.Join(tabs, "  ")); err != nil {
		return err
	}

	if len(screen.Orders) == 0 {
		_, err := fmt.Fprintln(r.out, "No orders in this category.")
		return err
	}

	table := tablewriter.NewWriter(r.out)
	table.Header("ID", "Date", "Customer", "Phone", "Address", "Products", "Courier", "Status")
	for _, o := range screen.Orders {
		row := []string{
			"#" + invoice.ShortID(o.ID),
			o.CreatedAt.UTC().Format(invoice.DateLayout),
			o.CustomerName,
			o.Phone,
			truncate(o.Address, cellLimit),
			truncate(o.Products, cellLimit),
			string(o.Courier),
			string(o.Status),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
