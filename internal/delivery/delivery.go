// Package delivery defines the contract shared by all serving transports.
package delivery

import "context"

// Delivery is a transport (e.g., an HTTP server) started by the application
// container. Serve blocks until the transport stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
