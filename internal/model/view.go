package model

import "strings"

// View is one of the status-keyed dashboard queues.
type View string

const (
	ViewPending   View = "pending"
	ViewShipped   View = "shipped"
	ViewCompleted View = "completed"
	ViewReturned  View = "returned"
)

// Views lists the queues in tab order.
var Views = []View{ViewPending, ViewShipped, ViewCompleted, ViewReturned}

// ViewOf returns the queue an order with status s belongs to.
func ViewOf(s Status) View {
	switch NormalizeStatus(string(s)) {
	case StatusShipped:
		return ViewShipped
	case StatusCompleted:
		return ViewCompleted
	case StatusReturned:
		return ViewReturned
	default:
		return ViewPending
	}
}

// ParseView parses a view key case-insensitively. Status names are accepted too.
func ParseView(raw string) (View, bool) {
	key := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range Views {
		if v == key {
			return v, true
		}
	}
	return "", false
}

// Status returns the status whose orders populate v.
func (v View) Status() Status {
	switch v {
	case ViewShipped:
		return StatusShipped
	case ViewCompleted:
		return StatusCompleted
	case ViewReturned:
		return StatusReturned
	default:
		return StatusPending
	}
}

// Label is the tab title shown for v.
func (v View) Label() string {
	return string(v.Status())
}
