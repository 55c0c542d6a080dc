package dashboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"orderdesk/internal/invoice"
	"orderdesk/internal/model"
)

// PromptConfirmer asks on out and reads a y/N answer from in. Anything but
// "y" or "yes" is a refusal.
func PromptConfirmer(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return ConfirmFunc(func(ctx context.Context, order model.Order, to model.Status) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fmt.Fprintf(out, "Mark order #%s (%s) as %s? [y/N]: ", invoice.ShortID(order.ID), order.CustomerName, to)

		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

// AlwaysConfirm approves every transition.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, model.Order, model.Status) (bool, error) {
	return true, nil
})
