package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/artem13815/win/pkg/imaging"
	"github.com/artem13815/win/pkg/media"
)

const (
	defaultGenerateModel = "imagen-3.0-generate-002"
	defaultEditModel     = "imagen-3.0-capability-001"
)

// imageModels is the part of genai.Models used here.
type imageModels interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	EditImage(ctx context.Context, model, prompt string, referenceImages []genai.ReferenceImage, config *genai.EditImageConfig) (*genai.EditImageResponse, error)
}

// Config selects the backend. Project and Location switch the client to Vertex AI,
// which image editing requires.
type Config struct {
	APIKey        string
	Project       string
	Location      string
	GenerateModel string
	EditModel     string
	// Timeout bounds one model call. Zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// Client generates and edits images with Imagen and stores the results in a media store.
type Client struct {
	models        imageModels
	store         media.Store
	generateModel string
	editModel     string
	timeout       time.Duration
}

func New(ctx context.Context, cfg Config, store media.Store) (*Client, error) {
	if store == nil {
		return nil, errors.New("media store is required")
	}
	cc := &genai.ClientConfig{}
	switch {
	case strings.TrimSpace(cfg.Project) != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = strings.TrimSpace(cfg.Project)
		cc.Location = strings.TrimSpace(cfg.Location)
		if cc.Location == "" {
			cc.Location = "us-central1"
		}
	case strings.TrimSpace(cfg.APIKey) != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = strings.TrimSpace(cfg.APIKey)
	default:
		return nil, errors.New("gemini api key or cloud project is required")
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c := newWithModels(client.Models, store, cfg.GenerateModel, cfg.EditModel)
	c.timeout = cfg.Timeout
	return c, nil
}

func newWithModels(models imageModels, store media.Store, generateModel, editModel string) *Client {
	if generateModel = strings.TrimSpace(generateModel); generateModel == "" {
		generateModel = defaultGenerateModel
	}
	if editModel = strings.TrimSpace(editModel); editModel == "" {
		editModel = defaultEditModel
	}
	return &Client{models: models, store: store, generateModel: generateModel, editModel: editModel}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.models.GenerateImages(ctx, c.generateModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", translate(err)
	}
	if resp == nil {
		return "", &imaging.ProviderError{Message: "model returned no image"}
	}
	return c.save(ctx, "generated", resp.GeneratedImages)
}

func (c *Client) Edit(ctx context.Context, req imaging.EditRequest) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	refs := []genai.ReferenceImage{
		genai.NewRawReferenceImage(&genai.Image{ImageBytes: req.Image.Data, MIMEType: req.Image.MIMEType}, 1),
	}
	mode := genai.EditModeDefault
	if req.Mask != nil {
		refs = append(refs, genai.NewMaskReferenceImage(
			&genai.Image{ImageBytes: req.Mask.Data, MIMEType: req.Mask.MIMEType},
			2,
			&genai.MaskReferenceConfig{MaskMode: genai.MaskReferenceModeMaskModeUserProvided},
		))
		mode = genai.EditModeInpaintInsertion
	}
	resp, err := c.models.EditImage(ctx, c.editModel, req.Prompt, refs, &genai.EditImageConfig{
		EditMode:       mode,
		NumberOfImages: 1,
	})
	if err != nil {
		return "", translate(err)
	}
	if resp == nil {
		return "", &imaging.ProviderError{Message: "model returned no image"}
	}
	return c.save(ctx, "edited", resp.GeneratedImages)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) save(ctx context.Context, prefix string, images []*genai.GeneratedImage) (string, error) {
	for _, gi := range images {
		if gi == nil {
			continue
		}
		if gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			if reason := strings.TrimSpace(gi.RAIFilteredReason); reason != "" {
				return "", &imaging.ProviderError{Message: reason}
			}
			continue
		}
		mimeType := gi.Image.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		url, err := c.store.Save(ctx, prefix, gi.Image.ImageBytes, mimeType)
		if err != nil {
			return "", fmt.Errorf("store %s image: %w", prefix, err)
		}
		return url, nil
	}
	return "", &imaging.ProviderError{Message: "model returned no image"}
}

// translate keeps API errors as provider errors so their text reaches the user.
func translate(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &imaging.ProviderError{Status: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &imaging.ProviderError{Status: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return err
}
