package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackarch/hackarch-api/internal/api/middleware"
)

var errUserNotInContext = errors.New("user not found in request context")

func getUserIDFromContext(ctx *gin.Context) (uint, error) {
	value, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, errUserNotInContext
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errUserNotInContext
	}

	return userID, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, errors.New(name + " must be a positive integer")
	}

	return uint(id), nil
}
