// Package httpapi provides the HTTP driving adapter: a JSON API over
// the core services, with bearer-token session authentication.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// Missing-port errors returned by Ports.Validate.
var (
	ErrMissingAuthService       = errors.New("httpapi: auth service is required")
	ErrMissingProjectService    = errors.New("httpapi: project service is required")
	ErrMissingMembershipService = errors.New("httpapi: membership service is required")
	ErrMissingPageService       = errors.New("httpapi: page service is required")
	ErrMissingVersionService    = errors.New("httpapi: version service is required")
	ErrMissingSearchService     = errors.New("httpapi: search service is required")
)

// writeError maps a domain error onto an HTTP status and JSON body.
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes. Unknown errors
// are treated as internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrVersionCurrent),
		errors.Is(err, domain.ErrVersionNotDraft),
		errors.Is(err, domain.ErrVersionDraft),
		errors.Is(err, domain.ErrVersionArchived),
		errors.Is(err, domain.ErrPageCycle),
		errors.Is(err, domain.ErrSelfModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
