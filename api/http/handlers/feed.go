package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/profile"
)

type FeedHandler struct {
	posts    feed.UseCase
	profiles profile.UseCase
}

func NewFeedHandler(posts feed.UseCase, profiles profile.UseCase) *FeedHandler {
	return &FeedHandler{posts: posts, profiles: profiles}
}

// List returns posts newest first.
// @Summary     List posts
// @Tags        feed
// @Produce     json
// @Security    BearerAuth
// @Param       limit  query int false "page size (1..100)"
// @Param       offset query int false "offset"
// @Success     200 {array} feed.Post
// @Router      /posts [get]
func (h *FeedHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 20)
	posts, err := h.posts.List(c.UserContext(), limit, offset)
	if err != nil {
		return serverError(c, "failed to list posts", err)
	}
	return presenter.JSON(c, http.StatusOK, posts)
}

type createPostRequest struct {
	Content string       `json:"content"`
	Media   []feed.Media `json:"media"`
}

// Create publishes a post by the caller.
// @Summary     Create post
// @Description Media urls may be data URLs; those are stored and replaced by served urls.
// @Tags        feed
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       input body createPostRequest true "post"
// @Success     201 {object} feed.Post
// @Failure     400 {object} presenter.ErrorResponse
// @Router      /posts [post]
func (h *FeedHandler) Create(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	author, err := h.profiles.Get(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	p, err := h.posts.Create(c.UserContext(), author, req.Content, req.Media)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// Like increments the like counter of a post.
// @Summary     Like post
// @Tags        feed
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} feed.Post
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /posts/{id}/like [post]
func (h *FeedHandler) Like(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid post id")
	}
	p, err := h.posts.Like(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Comments lists the comments of a post oldest first.
// @Summary     List comments
// @Tags        feed
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {array} feed.Comment
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /posts/{id}/comments [get]
func (h *FeedHandler) Comments(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid post id")
	}
	cs, err := h.posts.Comments(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, cs)
}

type commentRequest struct {
	Text string `json:"text"`
}

// Comment adds a comment by the caller.
// @Summary     Comment on post
// @Tags        feed
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path string         true "Post ID"
// @Param       input body commentRequest true "comment"
// @Success     201 {object} feed.Comment
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /posts/{id}/comments [post]
func (h *FeedHandler) Comment(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid post id")
	}
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	author, err := h.profiles.Get(c.UserContext(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}
	cm, err := h.posts.Comment(c.UserContext(), id, author, req.Text)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, cm)
}

func (h *FeedHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, feed.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "post not found")
	case errors.Is(err, profile.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "profile not found")
	case errors.Is(err, feed.ErrEmptyPost),
		errors.Is(err, feed.ErrEmptyComment),
		errors.Is(err, feed.ErrInvalidMedia):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	default:
		return serverError(c, "failed to update feed", err)
	}
}
