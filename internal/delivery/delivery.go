// Package delivery defines the contract every transport surface implements.
package delivery

import "context"

// Delivery is a serving surface of the application. Implementations block in
// Serve until the surface shuts down; cleanup is handled through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
