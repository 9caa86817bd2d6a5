package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposuite/exposuite/internal/api/middleware"
	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/service"
)

type fakeSelectionService struct {
	view    service.SelectionView
	session service.SelectionSession
	err     error

	lastQuantity int
	lastToStep   *int
	discarded    []uint
}

func (f *fakeSelectionService) Get(_ context.Context, _ uint) (service.SelectionView, error) {
	return f.view, f.err
}

func (f *fakeSelectionService) ToggleStand(_ context.Context, _, _ uint) (service.SelectionSession, error) {
	return f.session, f.err
}

func (f *fakeSelectionService) ToggleEquipment(_ context.Context, _, _ uint) (service.SelectionSession, error) {
	return f.session, f.err
}

func (f *fakeSelectionService) SetQuantity(_ context.Context, _, _ uint, quantity int) (service.SelectionSession, error) {
	f.lastQuantity = quantity
	return f.session, f.err
}

func (f *fakeSelectionService) Advance(_ context.Context, _ uint) (service.SelectionSession, error) {
	return f.session, f.err
}

func (f *fakeSelectionService) Retreat(_ context.Context, _ uint, toStep *int) (service.SelectionSession, error) {
	f.lastToStep = toStep
	return f.session, f.err
}

func (f *fakeSelectionService) Discard(_ context.Context, registrationID uint) error {
	f.discarded = append(f.discarded, registrationID)
	return f.err
}

type fakeSubmissionService struct {
	registration domain.Registration
	err          error
}

func (f *fakeSubmissionService) Submit(_ context.Context, _ uint) (domain.Registration, error) {
	return f.registration, f.err
}

type fakeUserService struct {
	users map[uint]domain.User
}

func (f *fakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}
	return user, nil
}

type fakeRegistrationGetter struct {
	registrations map[uint]domain.Registration
}

func (f *fakeRegistrationGetter) GetRegistration(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, service.ErrRegistrationNotFound
	}
	return registration, nil
}

// newSelectionRouter authenticates as exhibitor 7, who owns registration 1.
func newSelectionRouter(svc SelectionService, submission SubmissionService) *gin.Engine {
	return newSelectionRouterAs(svc, submission, 7)
}

func newSelectionRouterAs(svc SelectionService, submission SubmissionService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
	})

	users := &fakeUserService{users: map[uint]domain.User{
		7: {ID: 7, Role: domain.RoleExhibitor},
		8: {ID: 8, Role: domain.RoleExhibitor},
		9: {ID: 9, Role: domain.RoleOrganizer},
	}}
	regs := &fakeRegistrationGetter{registrations: map[uint]domain.Registration{
		1: {ID: 1, EventID: 1, ExhibitorID: 7, Status: domain.RegistrationStatusApproved},
	}}

	handler := NewSelectionHandler(svc, submission, regs, users)
	router.GET("/registrations/:registrationID/selection", handler.HandleGetSelection)
	router.DELETE("/registrations/:registrationID/selection", handler.HandleDiscard)
	router.POST("/registrations/:registrationID/selection/stands/:standID/toggle", handler.HandleToggleStand)
	router.POST("/registrations/:registrationID/selection/equipment/:equipmentID/quantity", handler.HandleSetQuantity)
	router.POST("/registrations/:registrationID/selection/retreat", handler.HandleRetreat)
	router.POST("/registrations/:registrationID/selection/submit", handler.HandleSubmit)

	return router
}

func TestHandleGetSelection(t *testing.T) {
	svc := &fakeSelectionService{
		view: service.SelectionView{
			Session: service.SelectionSession{RegistrationID: 1, Step: domain.StepEquipment, Total: 250},
		},
	}
	router := newSelectionRouter(svc, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registrations/1/selection", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view service.SelectionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, uint(1), view.Session.RegistrationID)
	assert.Equal(t, 250.0, view.Session.Total)
}

func TestHandleGetSelectionErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{"invalid id", "/registrations/abc/selection", nil, http.StatusBadRequest},
		{"not found", "/registrations/1/selection", service.ErrRegistrationNotFound, http.StatusNotFound},
		{"selection closed", "/registrations/1/selection", service.ErrSelectionClosed, http.StatusConflict},
		{"no floor plan", "/registrations/1/selection", service.ErrEventPlanMissing, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSelectionRouter(&fakeSelectionService{err: tt.err}, &fakeSubmissionService{})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandleToggleStand(t *testing.T) {
	svc := &fakeSelectionService{
		session: service.SelectionSession{RegistrationID: 1, StandIDs: []uint{10}, StandsTotal: 100, Total: 100},
	}
	router := newSelectionRouter(svc, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/stands/10/toggle", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var session service.SelectionSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, []uint{10}, session.StandIDs)
}

func TestHandleSetQuantity(t *testing.T) {
	svc := &fakeSelectionService{session: service.SelectionSession{RegistrationID: 1}}
	router := newSelectionRouter(svc, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/equipment/20/quantity",
		strings.NewReader(`{"quantity": 3}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, svc.lastQuantity)
}

func TestHandleSetQuantityRejectsInvalidBody(t *testing.T) {
	router := newSelectionRouter(&fakeSelectionService{}, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/equipment/20/quantity",
		strings.NewReader(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRetreatWithAndWithoutBody(t *testing.T) {
	svc := &fakeSelectionService{session: service.SelectionSession{RegistrationID: 1}}
	router := newSelectionRouter(svc, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/retreat", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastToStep)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/registrations/1/selection/retreat",
		strings.NewReader(`{"to_step": 0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastToStep)
	assert.Equal(t, 0, *svc.lastToStep)
}

func TestHandleSubmit(t *testing.T) {
	submission := &fakeSubmissionService{
		registration: domain.Registration{ID: 1, Status: domain.RegistrationStatusCompleted},
	}
	router := newSelectionRouter(&fakeSelectionService{}, submission)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/submit", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var registration domain.Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registration))
	assert.Equal(t, domain.RegistrationStatusCompleted, registration.Status)
}

func TestHandleSubmitNotEligible(t *testing.T) {
	submission := &fakeSubmissionService{err: service.ErrRegistrationNotEligible}
	router := newSelectionRouter(&fakeSelectionService{}, submission)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registrations/1/selection/submit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleDiscard(t *testing.T) {
	svc := &fakeSelectionService{}
	router := newSelectionRouter(svc, &fakeSubmissionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/registrations/1/selection", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uint{1}, svc.discarded)
}

func TestSelectionRoutesRejectForeignRegistration(t *testing.T) {
	svc := &fakeSelectionService{}
	submission := &fakeSubmissionService{}
	router := newSelectionRouterAs(svc, submission, 8)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/registrations/1/selection"},
		{http.MethodDelete, "/registrations/1/selection"},
		{http.MethodPost, "/registrations/1/selection/stands/10/toggle"},
		{http.MethodPost, "/registrations/1/selection/retreat"},
		{http.MethodPost, "/registrations/1/selection/submit"},
	}

	for _, route := range routes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.target, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "%v %v", route.method, route.target)
	}
	assert.Empty(t, svc.discarded)
}

func TestSelectionRoutesAllowOrganizer(t *testing.T) {
	svc := &fakeSelectionService{
		view: service.SelectionView{Session: service.SelectionSession{RegistrationID: 1}},
	}
	router := newSelectionRouterAs(svc, &fakeSubmissionService{}, 9)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registrations/1/selection", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
