// Package delivery defines the contract every transport entry point satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application root.
type Delivery interface {
	// Serve blocks until the underlying server stops or the context is canceled.
	Serve(ctx context.Context) error
}
