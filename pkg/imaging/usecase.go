package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/artem13815/win/pkg/media"
)

// UseCase validates client input and forwards it to the configured provider.
// There is no retry: a failed call is reported once and the user may try again.
type UseCase interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Edit takes base64 or data: URL encoded image and optional mask.
	Edit(ctx context.Context, prompt, image, mask string) (string, error)
}

type service struct {
	provider Provider
	log      *zap.Logger
}

func NewService(provider Provider, log *zap.Logger) UseCase {
	if provider == nil {
		provider = Disabled{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{provider: provider, log: log}
}

func (s *service) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrPromptRequired
	}
	url, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", s.fail("generate", err, GenerateFallback)
	}
	return url, nil
}

func (s *service) Edit(ctx context.Context, prompt, img, mask string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || strings.TrimSpace(img) == "" {
		return "", ErrImageRequired
	}
	pic, err := decodePicture(img)
	if err != nil {
		return "", err
	}
	req := EditRequest{Prompt: prompt, Image: pic}
	if strings.TrimSpace(mask) != "" {
		m, err := decodePicture(mask)
		if err != nil {
			return "", err
		}
		req.Mask = &m
	}
	url, err := s.provider.Edit(ctx, req)
	if err != nil {
		return "", s.fail("edit", err, EditFallback)
	}
	return url, nil
}

func (s *service) fail(op string, err error, fallback string) error {
	if errors.Is(err, ErrNotConfigured) {
		return err
	}
	s.log.Warn("image provider failed", zap.String("op", op), zap.Error(err))
	msg := fallback
	var pe *ProviderError
	if errors.As(err, &pe) && strings.TrimSpace(pe.Message) != "" {
		msg = pe.Message
	}
	return &Failure{Message: msg, Err: err}
}

func decodePicture(s string) (Picture, error) {
	data, mimeType, err := media.Decode(s)
	if err != nil {
		return Picture{}, ErrInvalidImage
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Picture{}, ErrInvalidImage
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/" + format
	}
	return Picture{Data: data, MIMEType: mimeType}, nil
}
