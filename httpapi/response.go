package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/pktchain/errors"
)

// RespondWithError writes err as an error envelope. Errors that are not
// AppErrors become INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK writes data with status 200.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
