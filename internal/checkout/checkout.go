// Package checkout abstracts the third-party payment widget behind a narrow
// capability interface. Panels initiate a checkout and, on completion, confirm
// the payment to the backend; card data never touches this client.
package checkout

import (
	"context"

	"github.com/google/uuid"
)

// Order describes one checkout. Amount is in minor currency units.
type Order struct {
	Amount      int64
	Currency    string
	Name        string
	Description string
	Reference   string
}

// NewOrder builds an order with a fresh client-generated reference.
func NewOrder(amount int64, currency, name, description string) Order {
	return Order{
		Amount:      amount,
		Currency:    currency,
		Name:        name,
		Description: description,
		Reference:   uuid.NewString(),
	}
}

// Provider runs a checkout to completion. A nil return means the payment
// widget reported success and the caller should confirm with the backend.
type Provider interface {
	Checkout(ctx context.Context, order Order) error
}
