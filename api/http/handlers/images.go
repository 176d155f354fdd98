package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
	"github.com/artem13815/win/pkg/imaging"
)

type ImageHandler struct {
	useCase imaging.UseCase
}

func NewImageHandler(useCase imaging.UseCase) *ImageHandler {
	return &ImageHandler{useCase: useCase}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type editRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
	Mask   string `json:"mask,omitempty"`
}

type imageResponse struct {
	URL string `json:"url"`
}

// Generate creates an image from a text prompt.
// @Summary     Generate image
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       input body generateRequest true "prompt"
// @Success     200 {object} imageResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /images/generate [post]
func (h *ImageHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	url, err := h.useCase.Generate(c.UserContext(), req.Prompt)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, imageResponse{URL: url})
}

// Edit changes an uploaded image according to a prompt, optionally within a mask.
// @Summary     Edit image
// @Description image and mask are base64 or data URLs.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       input body editRequest true "prompt, image and optional mask"
// @Success     200 {object} imageResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /images/edit [post]
func (h *ImageHandler) Edit(c *fiber.Ctx) error {
	var req editRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	url, err := h.useCase.Edit(c.UserContext(), req.Prompt, req.Image, req.Mask)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, imageResponse{URL: url})
}

func (h *ImageHandler) fail(c *fiber.Ctx, err error) error {
	var f *imaging.Failure
	switch {
	case errors.Is(err, imaging.ErrPromptRequired),
		errors.Is(err, imaging.ErrImageRequired),
		errors.Is(err, imaging.ErrInvalidImage):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, imaging.ErrNotConfigured):
		return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &f):
		c.Locals(LocalError, f.Err)
		return presenter.Error(c, http.StatusBadGateway, f.Message)
	default:
		return serverError(c, "image request failed", err)
	}
}
