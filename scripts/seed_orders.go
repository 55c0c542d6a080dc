package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/database"
	"orderdesk/internal/model"
	"orderdesk/internal/service"
)

// seed_orders fills the configured order store with sample orders spread over the
// four dashboard tabs, for trying out the dashboard locally.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLoggerTo(cfg.Logger, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, closeStore, err := database.OpenOrderStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open order store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := service.NewOrderService(repo, logger)

	price := func(v float64) *float64 { return &v }

	samples := []struct {
		draft model.OrderDraft
		path  []model.Status
	}{
		{
			draft: model.OrderDraft{CustomerName: "Rafi Ahmed", Phone: "01711000001", Address: "House 12, Road 4, Dhanmondi, Dhaka", Products: "2x Cotton Shirt", Courier: model.CourierPathao, TotalPrice: price(1450)},
		},
		{
			draft: model.OrderDraft{CustomerName: "Nadia Islam", Phone: "01911000002", Address: "Zindabazar, Sylhet", Products: "1x Chocolate Cake (2 lb)", Courier: model.CourierSteadfast, TotalPrice: price(1200)},
			path:  []model.Status{model.StatusShipped},
		},
		{
			draft: model.OrderDraft{CustomerName: "Tanvir Hasan", Phone: "01811000003", Address: "GEC Circle, Chattogram", Products: "3x Panjabi", Courier: model.CourierSundarban, TotalPrice: price(5400)},
			path:  []model.Status{model.StatusShipped, model.StatusCompleted},
		},
		{
			draft: model.OrderDraft{CustomerName: "Mitu Rahman", Phone: "01611000004", Address: "Shaheb Bazar, Rajshahi", Products: "1x Jamdani Saree"},
			path:  []model.Status{model.StatusShipped, model.StatusCompleted, model.StatusReturned},
		},
	}

	for _, s := range samples {
		order, err := svc.CreateOrder(ctx, &s.draft)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create order for %s: %v\n", s.draft.CustomerName, err)
			os.Exit(1)
		}
		for _, to := range s.path {
			updated, err := svc.ApplyTransition(ctx, order.ID, to)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to move order %s to %s: %v\n", order.ID, to, err)
				os.Exit(1)
			}
			order = updated
		}
		fmt.Printf("Seeded %s (%s) as %s\n", order.ID, order.CustomerName, order.Status)
	}
}
