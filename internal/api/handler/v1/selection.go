package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exposuite/exposuite/internal/api/handler/v1/request"
	"github.com/exposuite/exposuite/internal/api/handler/v1/response"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

type SelectionService interface {
	Get(ctx context.Context, registrationID uint) (service.SelectionView, error)
	ToggleStand(ctx context.Context, registrationID, standID uint) (service.SelectionSession, error)
	ToggleEquipment(ctx context.Context, registrationID, equipmentID uint) (service.SelectionSession, error)
	SetQuantity(ctx context.Context, registrationID, equipmentID uint, quantity int) (service.SelectionSession, error)
	Advance(ctx context.Context, registrationID uint) (service.SelectionSession, error)
	Retreat(ctx context.Context, registrationID uint, toStep *int) (service.SelectionSession, error)
	Discard(ctx context.Context, registrationID uint) error
}

type SubmissionService interface {
	Submit(ctx context.Context, registrationID uint) (domain.Registration, error)
}

type SelectionHandler struct {
	svc        SelectionService
	submission SubmissionService
	regs       RegistrationGetter
	uSvc       UserService
}

func NewSelectionHandler(svc SelectionService, submission SubmissionService, regs RegistrationGetter, uSvc UserService) *SelectionHandler {
	return &SelectionHandler{
		svc:        svc,
		submission: submission,
		regs:       regs,
		uSvc:       uSvc,
	}
}

// ownRegistration parses the registrationID param and verifies the caller may
// act on that registration.
func (h *SelectionHandler) ownRegistration(ctx *gin.Context) (uint, *response.Err) {
	id, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		return 0, respErr
	}

	if respErr := authorizeRegistration(ctx, h.uSvc, h.regs, id); respErr != nil {
		return 0, respErr
	}

	return id, nil
}

func (h *SelectionHandler) renderSelectionErr(ctx *gin.Context, registrationID uint, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRegistrationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
	case errors.Is(err, service.ErrSelectionClosed):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrEventPlanMissing):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrStandNotFound):
		response.RenderErr(ctx, response.ErrNotFound("stand", "ID", registrationID))
	case errors.Is(err, service.ErrStandNotInEvent),
		errors.Is(err, service.ErrEquipmentNotInEvent):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrEquipmentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("equipment", "ID", registrationID))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleGetSelection godoc
// @Summary      Get the selection wizard state of a registration
// @Description  Returns the draft session plus the event's stand and equipment availability.
// @Tags         selection
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200  {object}  service.SelectionView
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection [get]
// @Security BearerAuth
func (h *SelectionHandler) HandleGetSelection(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	view, err := h.svc.Get(ctx.Request.Context(), registrationID)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleGetSelection", err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleToggleStand godoc
// @Summary      Toggle a stand in the draft selection
// @Description  Adds the stand when absent, removes it when present. Stands reserved by another registration are left untouched.
// @Tags         selection
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        standID         path      int  true  "Stand ID"
// @Success      200  {object}  service.SelectionSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/stands/{standID}/toggle [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleToggleStand(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	standID, respErr := parseIDParam(ctx, "standID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.ToggleStand(ctx.Request.Context(), registrationID, standID)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleToggleStand", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleToggleEquipment godoc
// @Summary      Toggle an equipment item in the draft selection
// @Tags         selection
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        equipmentID     path      int  true  "Equipment ID"
// @Success      200  {object}  service.SelectionSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/equipment/{equipmentID}/toggle [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleToggleEquipment(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	equipmentID, respErr := parseIDParam(ctx, "equipmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.ToggleEquipment(ctx.Request.Context(), registrationID, equipmentID)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleToggleEquipment", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleSetQuantity godoc
// @Summary      Set the quantity of a selected equipment item
// @Description  The quantity is clamped into the range the current availability permits.
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        equipmentID     path      int  true  "Equipment ID"
// @Param        input           body      request.SetQuantityRequest  true  "Requested quantity"
// @Success      200  {object}  service.SelectionSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/equipment/{equipmentID}/quantity [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleSetQuantity(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	equipmentID, respErr := parseIDParam(ctx, "equipmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.SetQuantity(ctx.Request.Context(), registrationID, equipmentID, input.Quantity)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleSetQuantity", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleAdvance godoc
// @Summary      Advance the selection wizard one step
// @Description  Leaving the stands step with nothing selected returns the unchanged session with a warning instead of an error.
// @Tags         selection
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200  {object}  service.SelectionSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/advance [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleAdvance(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.Advance(ctx.Request.Context(), registrationID)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleAdvance", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleRetreat godoc
// @Summary      Move the selection wizard back
// @Description  Moves back one step, or to the step named in the body.
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Param        input           body      request.RetreatRequest  false  "Target step"
// @Success      200  {object}  service.SelectionSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/retreat [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleRetreat(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.RetreatRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	session, err := h.svc.Retreat(ctx.Request.Context(), registrationID, input.ToStep)
	if err != nil {
		h.renderSelectionErr(ctx, registrationID, "HandleRetreat", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleSubmit godoc
// @Summary      Submit the draft selection
// @Description  Persists the draft as the registration's final selection, completes the registration and generates its invoice.
// @Tags         selection
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection/submit [post]
// @Security BearerAuth
func (h *SelectionHandler) HandleSubmit(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registration, err := h.submission.Submit(ctx.Request.Context(), registrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrRegistrationNotEligible):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrEmptyStandSelection):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrStandAlreadyReserved):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrQuantityExceedsStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.submission.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleDiscard godoc
// @Summary      Discard the draft selection
// @Tags         selection
// @Param        registrationID  path  int  true  "Registration ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/selection [delete]
// @Security BearerAuth
func (h *SelectionHandler) HandleDiscard(ctx *gin.Context) {
	registrationID, respErr := h.ownRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Discard(ctx.Request.Context(), registrationID); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleDiscard -> h.svc.Discard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
