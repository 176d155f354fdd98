package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
	"github.com/artem13815/win/pkg/discovery"
	"github.com/artem13815/win/pkg/profile"
)

type DiscoveryHandler struct {
	useCase discovery.UseCase
}

func NewDiscoveryHandler(useCase discovery.UseCase) *DiscoveryHandler {
	return &DiscoveryHandler{useCase: useCase}
}

// Current returns the candidate card under the cursor.
// @Summary     Current candidate
// @Description Starts a browse session on first use. The card carries the compatibility breakdown.
// @Tags        discover
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} discovery.Card
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /discover [get]
func (h *DiscoveryHandler) Current(c *fiber.Ctx) error {
	card, err := h.useCase.Current(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, card)
}

// Like adds the current candidate to the matches and moves on.
// @Summary     Like current candidate
// @Tags        discover
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} discovery.Decision
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /discover/like [post]
func (h *DiscoveryHandler) Like(c *fiber.Ctx) error {
	d, err := h.useCase.Like(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// Dislike skips the current candidate.
// @Summary     Dislike current candidate
// @Tags        discover
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} discovery.Decision
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /discover/dislike [post]
func (h *DiscoveryHandler) Dislike(c *fiber.Ctx) error {
	d, err := h.useCase.Dislike(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// Reset discards the session and starts over from the first candidate.
// @Summary     Restart browsing
// @Tags        discover
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} discovery.Card
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /discover/reset [post]
func (h *DiscoveryHandler) Reset(c *fiber.Ctx) error {
	card, err := h.useCase.Reset(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, card)
}

// Matches lists liked profiles in like order.
// @Summary     Matches
// @Tags        discover
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} discovery.Match
// @Router      /matches [get]
func (h *DiscoveryHandler) Matches(c *fiber.Ctx) error {
	ms, err := h.useCase.Matches(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, ms)
}

func (h *DiscoveryHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, discovery.ErrNoCandidates):
		return presenter.Error(c, http.StatusNotFound, "no candidates to show")
	case errors.Is(err, profile.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "profile not found")
	default:
		return serverError(c, "failed to browse profiles", err)
	}
}
