// Package restoration holds the outbound clients for image colorization
// backends and the ordered fallback chain that drives them.
package restoration

import "context"

// Result is a completed colorization.
type Result struct {
	// ResultURL points at the processed image.
	ResultURL string
	// ModelID names the model or service that produced the result.
	ModelID string
	// ElapsedMs is the processing duration. Backends that report their own
	// processing time take precedence over the locally measured wall clock.
	ElapsedMs uint64
}

// Provider submits an image to one colorization backend.
type Provider interface {
	// Name identifies the provider in logs and usage events.
	Name() string

	// Restore colorizes the image and returns where the result lives.
	// Implementations honor ctx cancellation and deadlines.
	Restore(ctx context.Context, image []byte, contentType string) (*Result, error)
}
