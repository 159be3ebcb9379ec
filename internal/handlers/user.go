package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/traduflow-api/internal/dto"
	apierrors "github.com/yukikurage/traduflow-api/internal/errors"
	"github.com/yukikurage/traduflow-api/internal/services"
)

// UserHandler coordinates user listing HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListTranslators returns every translator for the PM's assignment
// picker. Credential fields are never included.
func (h *UserHandler) ListTranslators(c *gin.Context) {
	translators, err := h.userService.ListTranslators()
	if err != nil {
		logrus.WithError(err).Error("user request failed")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"translators": dto.ToUserDTOs(translators),
	})
}
