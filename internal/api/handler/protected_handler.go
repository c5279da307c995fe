package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProtectedHandler serves GET /protected, a trivial auth-check echo.
type ProtectedHandler struct{}

func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

// Get confirms the caller holds a valid session token.
//
// @Summary      Auth-check echo
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /protected [get]
func (h *ProtectedHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Protected route accessed successfully"})
}
