package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exposuite/exposuite/internal/api/handler/v1/response"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

type InvoiceService interface {
	Generate(ctx context.Context, registrationID uint) (domain.Invoice, error)
	GetInvoice(ctx context.Context, id uint) (domain.Invoice, error)
	PayInvoice(ctx context.Context, id uint) (domain.Invoice, error)
}

type InvoiceHandler struct {
	svc InvoiceService
}

func NewInvoiceHandler(svc InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: svc,
	}
}

// HandleGenerateInvoice godoc
// @Summary      Generate the invoice of a completed registration
// @Description  Idempotent: repeated calls return the already issued invoice.
// @Tags         invoices
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      201  {object}  domain.Invoice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invoices/registration/{registrationID} [post]
// @Security BearerAuth
func (h *InvoiceHandler) HandleGenerateInvoice(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	invoice, err := h.svc.Generate(ctx.Request.Context(), registrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrRegistrationNotInvoiced):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleGenerateInvoice -> h.svc.Generate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, invoice)
}

// HandleGetInvoice godoc
// @Summary      Get an invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        invoiceID  path      int  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invoices/{invoiceID} [get]
// @Security BearerAuth
func (h *InvoiceHandler) HandleGetInvoice(ctx *gin.Context) {
	invoiceID, respErr := parseIDParam(ctx, "invoiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	invoice, err := h.svc.GetInvoice(ctx.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invoice", "ID", invoiceID))
			return
		}

		err = fmt.Errorf("v1.HandleGetInvoice -> h.svc.GetInvoice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}

// HandlePayInvoice godoc
// @Summary      Mark a pending invoice as paid
// @Tags         invoices
// @Produce      json
// @Param        invoiceID  path      int  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invoices/{invoiceID}/pay [post]
// @Security BearerAuth
func (h *InvoiceHandler) HandlePayInvoice(ctx *gin.Context) {
	invoiceID, respErr := parseIDParam(ctx, "invoiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	invoice, err := h.svc.PayInvoice(ctx.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invoice", "ID", invoiceID))
			return
		}

		err = fmt.Errorf("v1.HandlePayInvoice -> h.svc.PayInvoice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}
