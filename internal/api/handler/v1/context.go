package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exposuite/exposuite/internal/api/handler/v1/response"
	"github.com/exposuite/exposuite/internal/api/middleware"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RegistrationGetter resolves a registration for ownership checks.
type RegistrationGetter interface {
	GetRegistration(ctx context.Context, id uint) (domain.Registration, error)
}

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errors.New("missing authentication"))
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("invalid authentication"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized(fmt.Errorf("user %v not found", userID))
	}

	return user, nil
}

// authorizeRegistration verifies the caller owns the registration. Organizers
// and admins pass regardless of ownership.
func authorizeRegistration(ctx *gin.Context, uSvc UserService, regs RegistrationGetter, registrationID uint) *response.Err {
	user, respErr := getUserFromContext(ctx, uSvc)
	if respErr != nil {
		return respErr
	}

	if user.Role == domain.RoleOrganizer || user.Role == domain.RoleAdmin {
		return nil
	}

	registration, err := regs.GetRegistration(ctx.Request.Context(), registrationID)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return response.ErrNotFound("registration", "ID", registrationID)
		}

		return response.ErrInternalServerError(fmt.Errorf("v1.authorizeRegistration -> %w", err))
	}

	if registration.ExhibitorID != user.ID {
		return response.ErrPermissionDenied(fmt.Errorf("registration %v does not belong to user %v", registrationID, user.ID))
	}

	return nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v: %w", name, err))
	}

	return uint(id), nil
}
