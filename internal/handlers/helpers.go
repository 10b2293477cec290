package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"budgetbuddy/internal/auth"
	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/middleware"
)

// getIdentity returns the caller resolved by the auth gate.
// Returns ErrUnauthorized if not present.
func getIdentity(c *gin.Context) (auth.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, apperrors.ErrUnauthorized
	}
	return identity, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrValidation if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrValidation, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// bindError turns a request binding failure into a validation error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
}

// ErrorResponse represents an error response.
type ErrorResponse = middleware.ErrorResponse

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
