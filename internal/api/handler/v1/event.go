package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/exposuite/exposuite/internal/api/handler/v1/request"
	"github.com/exposuite/exposuite/internal/api/handler/v1/response"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

const dateLayout = "02/01/2006"

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEvents(ctx context.Context) ([]domain.Event, error)
	CreateStand(ctx context.Context, stand domain.Stand) (domain.Stand, error)
	GetStands(ctx context.Context, eventID uint) ([]domain.Stand, error)
	GetAvailableStands(ctx context.Context, eventID uint) ([]domain.Stand, error)
	CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	GetEventEquipment(ctx context.Context, eventID uint) ([]domain.Equipment, error)
	GetAvailableQuantity(ctx context.Context, equipmentID, eventID uint) (int, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates an exhibition event, optionally with a floor plan. Organizers only.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "Event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleOrganizer && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid start date format: %v", err)))
		return
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid end date format: %v", err)))
		return
	}
	if endDate.Before(startDate) {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("end date must not precede start date")))
		return
	}

	event := domain.Event{
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		OrganizerID: user.ID,
	}
	if input.FloorPlanName != "" {
		event.FloorPlan = &domain.FloorPlan{
			Name:     input.FloorPlanName,
			ImageURL: input.FloorPlanImageURL,
		}
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateStand godoc
// @Summary      Add a stand to an event
// @Tags         events,stands
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Param        input    body      request.CreateStandRequest  true  "Stand details"
// @Success      201  {object}  domain.Stand
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/stands [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateStand(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleOrganizer && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateStandRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateStand(ctx.Request.Context(), domain.Stand{
		EventID:   eventID,
		Number:    input.Number,
		Type:      input.Type,
		Area:      input.Area,
		BasePrice: input.BasePrice,
		Features:  input.Features,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateStand -> h.svc.CreateStand -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetStands godoc
// @Summary      List all stands of an event
// @Tags         events,stands
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   domain.Stand
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/stands [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetStands(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stands, err := h.svc.GetStands(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetStands -> h.svc.GetStands -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stands)
}

// HandleGetAvailableStands godoc
// @Summary      List unreserved stands of an event
// @Tags         events,stands
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   domain.Stand
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/stands/available [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetAvailableStands(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stands, err := h.svc.GetAvailableStands(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAvailableStands -> h.svc.GetAvailableStands -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stands)
}

// HandleCreateEquipment godoc
// @Summary      Add equipment to an event catalog
// @Tags         events,equipment
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Param        input    body      request.CreateEquipmentRequest  true  "Equipment details"
// @Success      201  {object}  domain.Equipment
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/equipment [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEquipment(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleOrganizer && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateEquipmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEquipment(ctx.Request.Context(), domain.Equipment{
		EventID: eventID,
		Name:    input.Name,
		Type:    input.Type,
		Price:   input.Price,
		Unit:    input.Unit,
		Stock:   input.Stock,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEquipment -> h.svc.CreateEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetEventEquipment godoc
// @Summary      List the equipment catalog of an event
// @Tags         events,equipment
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   domain.Equipment
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/equipment [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEventEquipment(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	equipment, err := h.svc.GetEventEquipment(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEventEquipment -> h.svc.GetEventEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, equipment)
}

// HandleGetAvailableQuantity godoc
// @Summary      Get the free quantity of an equipment item for an event
// @Tags         equipment
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Param        eventID      path      int  true  "Event ID"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /equipment/{equipmentID}/available-quantity/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetAvailableQuantity(ctx *gin.Context) {
	equipmentID, respErr := parseIDParam(ctx, "equipmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	available, err := h.svc.GetAvailableQuantity(ctx.Request.Context(), equipmentID, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("equipment", "ID", equipmentID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAvailableQuantity -> h.svc.GetAvailableQuantity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"available_quantity": available})
}
