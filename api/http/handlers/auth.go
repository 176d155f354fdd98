package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/profile"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Photo      string   `json:"photo"`
	Bio        string   `json:"bio"`
	Interests  []string `json:"interests"`
	ZodiacSign string   `json:"zodiacSign"`
	Psychotype string   `json:"psychotype"`
	Location   string   `json:"location"`
}

type authResponse struct {
	AccountID string          `json:"accountId"`
	Email     string          `json:"email"`
	Token     string          `json:"token"`
	Profile   profile.Profile `json:"profile"`
}

func newAuthResponse(r auth.AuthResult) authResponse {
	return authResponse{
		AccountID: r.Account.ID.String(),
		Email:     r.Account.Email,
		Token:     r.Token,
		Profile:   r.Profile,
	}
}

// Register creates an account together with its dating profile.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Register(c.UserContext(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Profile: profile.Profile{
			Name:       req.Name,
			Age:        req.Age,
			Photo:      req.Photo,
			Bio:        req.Bio,
			Interests:  req.Interests,
			ZodiacSign: req.ZodiacSign,
			Psychotype: req.Psychotype,
			Location:   req.Location,
		},
	})
	if err != nil {
		var verr profile.ErrValidation
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "user already exists")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "password must be at least 6 characters")
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		default:
			return serverError(c, "failed to register user", err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, newAuthResponse(result))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return serverError(c, "failed to login", err)
	}

	return presenter.JSON(c, http.StatusOK, newAuthResponse(result))
}
