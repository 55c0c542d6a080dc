// Package view projects the order set into the status-keyed dashboard queues.
package view

import (
	"sort"

	"orderdesk/internal/model"
)

// Project returns the orders that belong to v, most recent first.
// Orders created at the same instant keep insertion order. The input is not modified
// and the result is never nil.
func Project(orders []model.Order, v model.View) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if model.ViewOf(o.Status) == v {
			out = append(out, normalized(o))
		}
	}
	sortRecent(out)
	return out
}

// Partition splits orders into every view. Each order lands in exactly one queue.
func Partition(orders []model.Order) map[model.View][]model.Order {
	parts := make(map[model.View][]model.Order, len(model.Views))
	for _, v := range model.Views {
		parts[v] = []model.Order{}
	}
	for _, o := range orders {
		v := model.ViewOf(o.Status)
		parts[v] = append(parts[v], normalized(o))
	}
	for _, v := range model.Views {
		sortRecent(parts[v])
	}
	return parts
}

// Counts returns the size of every queue, for tab badges.
func Counts(orders []model.Order) map[model.View]int {
	counts := make(map[model.View]int, len(model.Views))
	for _, v := range model.Views {
		counts[v] = 0
	}
	for _, o := range orders {
		counts[model.ViewOf(o.Status)]++
	}
	return counts
}

// Recent returns all orders newest first, regardless of status.
func Recent(orders []model.Order) []model.Order {
	out := make([]model.Order, len(orders))
	for i, o := range orders {
		out[i] = normalized(o)
	}
	sortRecent(out)
	return out
}

func normalized(o model.Order) model.Order {
	o.Status = model.NormalizeStatus(string(o.Status))
	return o
}

func sortRecent(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Seq < b.Seq
	})
}
