package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/middleware"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
)

// parseIDParam reads a positive integer path parameter. A malformed id is a
// client error, not a missing resource.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// requirePrincipal fetches the authenticated caller, failing the request when
// the auth middleware did not run.
func requirePrincipal(ctx *gin.Context) (*auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return principal, true
}
