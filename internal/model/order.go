package model

import (
	"strings"
	"time"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusCompleted Status = "Completed"
	StatusReturned  Status = "Returned"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusShipped, StatusCompleted, StatusReturned}

// transitions is the legal-edge graph. Returned has no outgoing edges.
var transitions = map[Status]Status{
	StatusPending:   StatusShipped,
	StatusShipped:   StatusCompleted,
	StatusCompleted: StatusReturned,
}

// NormalizeStatus maps a stored status value to one of the four statuses.
// Missing, empty or unrecognised values are read as Pending.
func NormalizeStatus(raw string) Status {
	switch s := Status(raw); s {
	case StatusPending, StatusShipped, StatusCompleted, StatusReturned:
		return s
	default:
		return StatusPending
	}
}

// ParseStatus parses a requested status. Unlike NormalizeStatus it rejects unknown values.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether s -> next is an edge of the lifecycle graph.
func (s Status) CanTransitionTo(next Status) bool {
	to, ok := transitions[NormalizeStatus(string(s))]
	return ok && to == next
}

// Next returns the single legal successor of s, if any.
func (s Status) Next() (Status, bool) {
	to, ok := transitions[NormalizeStatus(string(s))]
	return to, ok
}

// RequiresConfirmation reports whether moving into s needs an explicit user confirmation.
func (s Status) RequiresConfirmation() bool {
	return s == StatusReturned
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	_, ok := s.Next()
	return !ok
}

// Courier is the delivery service chosen at intake.
type Courier string

const (
	CourierNone      Courier = ""
	CourierPathao    Courier = "Pathao"
	CourierSteadfast Courier = "Steadfast"
	CourierSundarban Courier = "Sundarban"
)

// Valid reports whether c is empty or one of the supported couriers.
func (c Courier) Valid() bool {
	switch c {
	case CourierNone, CourierPathao, CourierSteadfast, CourierSundarban:
		return true
	default:
		return false
	}
}

// Order represents a customer order.
type Order struct {
	ID           string    `json:"id" db:"id"`
	Seq          int64     `json:"-" db:"seq"`
	CustomerName string    `json:"customerName" db:"customer_name"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	Products     string    `json:"products" db:"products"`
	Courier      Courier   `json:"courier,omitempty" db:"courier"`
	TotalPrice   *float64  `json:"totalPrice,omitempty" db:"total_price"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// OrderDraft is the intake payload for a new order.
type OrderDraft struct {
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Products     string   `json:"products"`
	Courier      Courier  `json:"courier,omitempty"`
	TotalPrice   *float64 `json:"totalPrice,omitempty"`
}

// StatusUpdateRequest is the payload for changing an order's status.
type StatusUpdateRequest struct {
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed,omitempty"`
}

// OrderListResponse is returned by the order listing endpoint.
type OrderListResponse struct {
	View   View         `json:"view,omitempty"`
	Orders []Order      `json:"orders"`
	Counts map[View]int `json:"counts"`
}
