package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
	"github.com/oksasatya/style-gallery-api/pkg/response"
	"github.com/oksasatya/style-gallery-api/pkg/validation"
)

// respondError writes err as an error envelope. Errors that are not domain
// errors are logged and answered with fallback so internals never leak.
func respondError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var de *application.Error
	if !errors.As(err, &de) {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.CtxRequestIDKey),
				"path":       c.FullPath(),
			}).Error(fallback)
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, fallback, nil)
		return
	}

	status, code := http.StatusBadRequest, response.CodeBadRequest
	switch de.Kind {
	case application.ErrValidation:
		code = response.CodeValidation
	case application.ErrNotFound:
		status, code = http.StatusNotFound, response.CodeNotFound
	case application.ErrForbidden:
		status, code = http.StatusForbidden, response.CodeForbidden
	case application.ErrUnauthorized:
		status, code = http.StatusUnauthorized, response.CodeUnauthorized
	case application.ErrConflict:
		status, code = http.StatusConflict, response.CodeConflict
	}
	response.Error(c, status, code, de.Message, nil)
}

func respondBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request payload", validation.ToDetails(err))
}

// currentUser returns the id set by middleware.Auth.
func currentUser(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

type pageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
