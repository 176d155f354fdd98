package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/profile"
)

type ProfileHandler struct {
	profiles profile.UseCase
	scorer   *compatibility.Scorer
}

func NewProfileHandler(profiles profile.UseCase, scorer *compatibility.Scorer) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, scorer: scorer}
}

type profileView struct {
	Profile       profile.Profile      `json:"profile"`
	Compatibility *compatibility.Score `json:"compatibility,omitempty"`
}

// Me returns the caller's own profile.
// @Summary     Current user's profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} profile.Profile
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /me/profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	p, err := h.profiles.Get(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// UpdateMe applies a partial edit to the caller's profile.
// @Summary     Edit profile
// @Description Only the fields present in the body change. Interests are trimmed and deduplicated.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       input body profile.Update true "fields to change"
// @Success     200 {object} profile.Profile
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Router      /me/profile [patch]
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	var u profile.Update
	if err := c.BodyParser(&u); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.profiles.Update(c.UserContext(), userID(c), u)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Get returns any profile with its compatibility against the caller.
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Success     200 {object} profileView
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /profiles/{id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p, err := h.profiles.Get(ctx, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	view := profileView{Profile: p}
	if p.ID != userID(c) {
		me, err := h.profiles.Get(ctx, userID(c))
		if err != nil {
			return h.fail(c, err)
		}
		score := h.scorer.Score(me, p)
		view.Compatibility = &score
	}
	return presenter.JSON(c, http.StatusOK, view)
}

func (h *ProfileHandler) fail(c *fiber.Ctx, err error) error {
	var verr profile.ErrValidation
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "profile not found")
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	default:
		return serverError(c, "failed to load profile", err)
	}
}
