// Command ordersctl is the terminal version of the staff dashboard.
//
//	ordersctl list [-view pending]
//	ordersctl advance -id <order id> [-to Shipped] [-yes]
//	ordersctl invoice -id <order id> [-html invoice.html]
//
// The staff password is read from -password or ORDERDESK_PASSWORD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"orderdesk/internal/auth"
	"orderdesk/internal/config"
	"orderdesk/internal/dashboard"
	"orderdesk/internal/database"
	"orderdesk/internal/invoice"
	"orderdesk/internal/model"
	"orderdesk/internal/service"

	"github.com/rs/zerolog"
)

const usage = `usage: ordersctl [-password P] [-timeout 30s] <command> [flags]

commands:
  list     show one dashboard tab (-view pending|shipped|completed|returned)
  advance  move an order to its next status (-id ID, optional -to STATUS, -yes to skip the return prompt)
  invoice  print an order's invoice (-id ID, optional -html FILE)
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	global := flag.NewFlagSet("ordersctl", flag.ContinueOnError)
	password := global.String("password", os.Getenv("ORDERDESK_PASSWORD"), "staff password")
	timeout := global.Duration("timeout", 30*time.Second, "deadline for the whole command")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLoggerTo(cfg.Logger, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sessions, err := auth.NewSessionManager(cfg.Auth.AdminPasswordHash, []byte(cfg.Auth.SessionSecret), logger)
	if err != nil {
		return fmt.Errorf("failed to initialise sessions: %w", err)
	}
	token, session, err := sessions.Login(*password)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Logout(token) }()

	repo, closeStore, err := database.OpenOrderStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := service.NewOrderService(repo, logger)
	formatter := invoice.NewFormatter(invoice.Header{ShopName: cfg.Invoice.ShopName, Location: cfg.Invoice.ShopLocation})

	cmd := command{
		svc:       svc,
		session:   session,
		formatter: formatter,
		in:        in,
		out:       out,
		logger:    logger,
	}

	name, rest := global.Arg(0), global.Args()[1:]
	switch name {
	case "list":
		return cmd.list(ctx, rest)
	case "advance":
		return cmd.advance(ctx, rest)
	case "invoice":
		return cmd.invoice(ctx, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

type command struct {
	svc       service.OrderService
	session   *auth.Session
	formatter invoice.Formatter
	in        io.Reader
	out       io.Writer
	logger    zerolog.Logger
}

func (c command) controller(confirmer dashboard.Confirmer) *dashboard.Controller {
	return dashboard.NewController(c.svc, nil, confirmer, c.session, c.logger)
}

// show draws the controller's selected tab.
func (c command) show(ctrl *dashboard.Controller) error {
	return dashboard.NewTableRenderer(c.out).Render(dashboard.Screen{
		View:   ctrl.Selected(),
		Orders: ctrl.Current(),
		Counts: ctrl.Counts(),
	})
}

func (c command) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	rawView := fs.String("view", string(model.ViewPending), "tab to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, ok := model.ParseView(*rawView)
	if !ok {
		return fmt.Errorf("unknown view %q", *rawView)
	}

	ctrl := c.controller(nil)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if _, err := ctrl.Select(v); err != nil {
		return err
	}
	return c.show(ctrl)
}

func (c command) advance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("advance", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	rawTo := fs.String("to", "", "target status (defaults to the next one)")
	yes := fs.Bool("yes", false, "confirm returns without prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	confirmer := dashboard.PromptConfirmer(c.in, c.out)
	if *yes {
		confirmer = dashboard.AlwaysConfirm
	}
	ctrl := c.controller(confirmer)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	to, err := c.target(ctx, ctrl, *id, *rawTo)
	if err != nil {
		return err
	}

	updated, err := ctrl.Transition(ctx, *id, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Order #%s is now %s\n", invoice.ShortID(updated.ID), updated.Status)
	if _, err := ctrl.Select(model.ViewOf(updated.Status)); err != nil {
		return err
	}
	return c.show(ctrl)
}

// target resolves the requested status, defaulting to the order's only offered action.
func (c command) target(ctx context.Context, ctrl *dashboard.Controller, id, raw string) (model.Status, error) {
	if raw != "" {
		to, ok := model.ParseStatus(raw)
		if !ok {
			return "", fmt.Errorf("unknown status %q", raw)
		}
		return to, nil
	}

	order, err := c.svc.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	actions := ctrl.Actions(*order)
	if len(actions) == 0 {
		return "", model.ErrInvalidTransition.WithMessage(fmt.Sprintf("order is %s, nothing to advance", order.Status))
	}
	return actions[0], nil
}

func (c command) invoice(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("invoice", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	htmlPath := fs.String("html", "", "also write a printable HTML page to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	order, err := c.svc.GetByID(ctx, *id)
	if err != nil {
		return err
	}

	doc := c.formatter.Format(*order)
	if _, err := fmt.Fprint(c.out, doc.Text()); err != nil {
		return err
	}

	if *htmlPath == "" {
		return nil
	}
	page, err := doc.HTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*htmlPath, page, 0o644); err != nil {
		return fmt.Errorf("failed to write invoice page: %w", err)
	}
	c.logger.Info().Str("path", *htmlPath).Str("order_id", order.ID).Msg("invoice page written")
	return nil
}
