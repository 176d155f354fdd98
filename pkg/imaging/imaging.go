package imaging

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrImageRequired  = errors.New("image and prompt are required")
	ErrInvalidImage   = errors.New("image could not be decoded")
	ErrNotConfigured  = errors.New("image service is not configured")
)

// Messages shown when a provider fails without saying why.
const (
	GenerateFallback = "image generation failed"
	EditFallback     = "image editing failed"
)

// Picture is a decoded image payload.
type Picture struct {
	Data     []byte
	MIMEType string
}

// EditRequest asks a provider to change Image according to Prompt. Mask is optional.
type EditRequest struct {
	Prompt string
	Image  Picture
	Mask   *Picture
}

// Provider is a remote image generation/editing backend. Both calls return the URL
// of the resulting image.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Edit(ctx context.Context, req EditRequest) (string, error)
}

// ProviderError is a failure reported by the remote side. Message is the provider's own
// explanation and may be empty.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image provider returned status %d", e.Status)
	}
	return e.Message
}

// Failure is what the use case returns for provider failures. Message is safe to show
// to the user: the provider's text verbatim, or a generic fallback.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// Disabled is the provider used when no image backend is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error)  { return "", ErrNotConfigured }
func (Disabled) Edit(context.Context, EditRequest) (string, error) { return "", ErrNotConfigured }
