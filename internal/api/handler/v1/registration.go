package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exposuite/exposuite/internal/api/handler/v1/request"
	"github.com/exposuite/exposuite/internal/api/handler/v1/response"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

type RegistrationService interface {
	Register(ctx context.Context, eventID, exhibitorID uint) (domain.Registration, error)
	GetRegistration(ctx context.Context, id uint) (domain.Registration, error)
	GetRegistrationsByExhibitor(ctx context.Context, exhibitorID uint) ([]domain.Registration, error)
	GetRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	Review(ctx context.Context, id uint, status, reason string) (domain.Registration, error)
	Cancel(ctx context.Context, id uint) (domain.Registration, error)
	SelectStands(ctx context.Context, id uint, standIDs []uint, completed bool) (domain.Registration, error)
	SelectEquipment(ctx context.Context, id uint, quantities []domain.EquipmentQuantity, completed bool) (domain.Registration, error)
}

type RegistrationHandler struct {
	svc  RegistrationService
	uSvc UserService
}

func NewRegistrationHandler(svc RegistrationService, uSvc UserService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleRegister godoc
// @Summary      Register the current exhibitor for an event
// @Description  Creates a pending registration awaiting organizer review.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      201  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleGetRegistration godoc
// @Summary      Get a registration by ID
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID} [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registration, err := h.svc.GetRegistration(ctx.Request.Context(), registrationID)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleGetRegistration -> h.svc.GetRegistration -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleGetRegistrations godoc
// @Summary      List registrations
// @Description  Without a query returns the caller's own registrations. With ?eventID= organizers get all registrations of that event.
// @Tags         registrations
// @Produce      json
// @Param        eventID  query     int  false  "Event ID"
// @Success      200  {array}   domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if raw := ctx.Query("eventID"); raw != "" {
		if user.Role != domain.RoleOrganizer && user.Role != domain.RoleAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
			return
		}

		eventID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid eventID query: %v", err)))
			return
		}

		registrations, err := h.svc.GetRegistrationsByEvent(ctx.Request.Context(), uint(eventID))
		if err != nil {
			err = fmt.Errorf("v1.HandleGetRegistrations -> h.svc.GetRegistrationsByEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.JSON(http.StatusOK, registrations)
		return
	}

	registrations, err := h.svc.GetRegistrationsByExhibitor(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegistrations -> h.svc.GetRegistrationsByExhibitor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleReview godoc
// @Summary      Approve or reject a pending registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        input           body      request.ReviewRequest  true  "Review decision"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/review [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleOrganizer && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
		return
	}

	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.ReviewRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.Review(ctx.Request.Context(), registrationID, input.Status, input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrInvalidReviewState):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleReview -> h.svc.Review -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleCancel godoc
// @Summary      Cancel an approved registration
// @Description  Releases every stand the registration holds.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/cancel [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr := authorizeRegistration(ctx, h.uSvc, h.svc, registrationID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registration, err := h.svc.Cancel(ctx.Request.Context(), registrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCancel -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleSelectStands godoc
// @Summary      Replace the stand selection of a registration
// @Description  Reserves the given stands for the registration and releases any it no longer keeps. Fails if a stand is held by another registration.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        input           body      request.SelectStandsRequest  true  "Stand selection"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/select-stands [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleSelectStands(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr := authorizeRegistration(ctx, h.uSvc, h.svc, registrationID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SelectStandsRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.SelectStands(ctx.Request.Context(), registrationID, input.StandIDs, input.SelectionCompleted)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrSelectionClosed):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrStandAlreadyReserved):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrStandNotInEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSelectStands -> h.svc.SelectStands -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleSelectEquipment godoc
// @Summary      Replace the equipment selection of a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        input           body      request.SelectEquipmentRequest  true  "Equipment selection"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/select-equipment [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleSelectEquipment(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr := authorizeRegistration(ctx, h.uSvc, h.svc, registrationID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SelectEquipmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quantities := make([]domain.EquipmentQuantity, 0, len(input.EquipmentQuantities))
	for _, item := range input.EquipmentQuantities {
		quantities = append(quantities, domain.EquipmentQuantity{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}
	// Callers sending only equipmentIds get a quantity of one per item.
	if len(quantities) == 0 {
		for _, id := range input.EquipmentIDs {
			quantities = append(quantities, domain.EquipmentQuantity{EquipmentID: id, Quantity: 1})
		}
	}

	registration, err := h.svc.SelectEquipment(ctx.Request.Context(), registrationID, quantities, input.SelectionCompleted)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrSelectionClosed):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrEquipmentNotInEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrQuantityExceedsStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSelectEquipment -> h.svc.SelectEquipment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}
