// Package delivery defines the long-running entry points started by the binaries.
package delivery

import "context"

// Delivery is a server started by the application. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
