package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/win/pkg/imaging"
	"github.com/artem13815/win/pkg/media"
)

// Client calls the two opaque image endpoints. Both take a JSON body with a prompt
// and answer {"url": ...} on success or {"error": ...} on failure.
type Client struct {
	GenerateURL string
	EditURL     string
	httpDo      *http.Client
}

func New(generateURL, editURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		GenerateURL: strings.TrimSpace(generateURL),
		EditURL:     strings.TrimSpace(editURL),
		httpDo:      &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type editRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
	Mask   string `json:"mask,omitempty"`
}

type response struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.GenerateURL == "" {
		return "", imaging.ErrNotConfigured
	}
	return c.post(ctx, c.GenerateURL, generateRequest{Prompt: prompt})
}

func (c *Client) Edit(ctx context.Context, req imaging.EditRequest) (string, error) {
	if c.EditURL == "" {
		return "", imaging.ErrNotConfigured
	}
	body := editRequest{
		Prompt: req.Prompt,
		Image:  media.DataURL(req.Image.Data, req.Image.MIMEType),
	}
	if req.Mask != nil {
		body.Mask = media.DataURL(req.Mask.Data, req.Mask.MIMEType)
	}
	return c.post(ctx, c.EditURL, body)
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("image endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read image endpoint response: %w", err)
	}
	var out response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &imaging.ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(out.Error)}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode image endpoint response: %w", decodeErr)
	}
	if strings.TrimSpace(out.URL) == "" {
		if out.Error != "" {
			return "", &imaging.ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(out.Error)}
		}
		return "", errors.New("image endpoint returned no url")
	}
	return out.URL, nil
}
