package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acmedash/billing-admin/internal/api/metrics"
	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  loginResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var creds ports.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	session, err := h.authService.SignIn(c.Request().Context(), creds)
	if err != nil {
		msg, ok := domain.AuthErrorMessage(err)
		if !ok {
			metrics.SignInsTotal.WithLabelValues("error").Inc()
			return err
		}
		var ae *domain.AuthError
		if errors.As(err, &ae) {
			metrics.SignInsTotal.WithLabelValues(ae.Kind.String()).Inc()
		}
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
	}

	metrics.SignInsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: session.Token, User: session.User})
}
