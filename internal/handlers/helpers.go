package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/constants"
	apierrors "github.com/yukikurage/life-record-api/internal/errors"
	"github.com/yukikurage/life-record-api/internal/logging"
	"github.com/yukikurage/life-record-api/internal/middleware"
	"github.com/yukikurage/life-record-api/internal/services"
	"github.com/yukikurage/life-record-api/internal/utils"
	"github.com/yukikurage/life-record-api/internal/validation"
)

// validatable is implemented by update requests that reject explicit nulls.
type validatable interface {
	Validate() error
}

// bindJSON binds and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err)
		return false
	}
	if v, ok := req.(validatable); ok {
		if err := v.Validate(); err != nil {
			respondBindError(c, err)
			return false
		}
	}
	return true
}

// bindQuery binds and validates query parameters, writing a 400 on failure.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func respondBindError(c *gin.Context, err error) {
	message, fields := validation.Describe(err)
	if len(fields) > 0 {
		apierrors.BadRequestWithDetails(c, message, fields)
		return
	}
	apierrors.BadRequest(c, message)
}

// currentUser returns the authenticated user's id, writing a 401 when missing.
func currentUser(c *gin.Context) (uint64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, ok
}

// pathID parses a positive integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// optionalDate parses an optional YYYY-MM-DD query value, writing a 400 when it
// is malformed.
func optionalDate(c *gin.Context, field, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid field(s): "+field,
			[]validation.FieldError{{Field: field, Tag: "isodate"}})
		return nil, false
	}
	return &t, true
}

// respondServiceError maps service errors to API errors. Anything unrecognized is
// logged and reported as a 500 without internal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrCheckinItemNotFound),
		errors.Is(err, services.ErrWeightRecordNotFound),
		errors.Is(err, services.ErrImageNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrWeightRecordExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrNotAnImage),
		errors.Is(err, services.ErrImageTooLarge),
		errors.Is(err, utils.ErrInvalidWeekNum):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFailedToSetTarget),
		errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToIssueToken):
		apierrors.InternalError(c, err.Error())
	default:
		logging.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		apierrors.InternalError(c, "")
	}
}
