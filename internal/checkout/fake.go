package checkout

import "context"

// Fake is a scripted Provider for tests and offline use.
type Fake struct {
	// Err is returned from every Checkout call.
	Err error
	// Orders records every order passed in.
	Orders []Order
}

// Checkout implements Provider.
func (f *Fake) Checkout(_ context.Context, order Order) error {
	f.Orders = append(f.Orders, order)
	return f.Err
}
