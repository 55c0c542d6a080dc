package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
	}{
		{"", StatusPending},
		{"Pending", StatusPending},
		{"Shipped", StatusShipped},
		{"Completed", StatusCompleted},
		{"Returned", StatusReturned},
		{"Delivered", StatusPending},
		{"shipped", StatusPending},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.raw))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" shipped ")
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, s)

	_, ok = ParseStatus("Delivered")
	assert.False(t, ok)

	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	legal := map[[2]Status]bool{
		{StatusPending, StatusShipped}:    true,
		{StatusShipped, StatusCompleted}:  true,
		{StatusCompleted, StatusReturned}: true,
	}

	for _, from := range Statuses {
		for _, to := range Statuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, legal[[2]Status{from, to}], from.CanTransitionTo(to))
			})
		}
	}

	t.Run("missing status behaves as Pending", func(t *testing.T) {
		assert.True(t, Status("").CanTransitionTo(StatusShipped))
		assert.False(t, Status("").CanTransitionTo(StatusCompleted))
	})
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusCompleted.Terminal())
	assert.True(t, StatusReturned.Terminal())

	next, ok := StatusShipped.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, next)
}

func TestStatus_RequiresConfirmation(t *testing.T) {
	for _, s := range Statuses {
		assert.Equal(t, s == StatusReturned, s.RequiresConfirmation(), s)
	}
}

func TestCourier_Valid(t *testing.T) {
	assert.True(t, CourierNone.Valid())
	assert.True(t, CourierPathao.Valid())
	assert.True(t, CourierSteadfast.Valid())
	assert.True(t, CourierSundarban.Valid())
	assert.False(t, Courier("DHL").Valid())
}

func TestViewOf(t *testing.T) {
	assert.Equal(t, ViewPending, ViewOf(""))
	assert.Equal(t, ViewPending, ViewOf("garbage"))
	assert.Equal(t, ViewShipped, ViewOf(StatusShipped))
	assert.Equal(t, ViewCompleted, ViewOf(StatusCompleted))
	assert.Equal(t, ViewReturned, ViewOf(StatusReturned))

	for _, v := range Views {
		assert.Equal(t, v, ViewOf(v.Status()))
	}
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("Shipped")
	assert.True(t, ok)
	assert.Equal(t, ViewShipped, v)

	_, ok = ParseView("delivered")
	assert.False(t, ok)
}

func TestDomainError_Is(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("update: %w", ErrStoreWriteFailed.Wrap(cause))

	assert.True(t, errors.Is(err, ErrStoreWriteFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrOrderNotFound))
	assert.Contains(t, err.Error(), "connection reset")

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, ErrCodeStoreWriteFailed, de.Code)

	specific := ErrValidationFailed.WithMessage("phone is required")
	assert.True(t, errors.Is(specific, ErrValidationFailed))
	assert.Equal(t, "phone is required", specific.Error())
}
