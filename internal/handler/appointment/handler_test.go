package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcare/clinic-api/internal/middleware"
	"github.com/dentalcare/clinic-api/internal/model"
	appointmentsvc "github.com/dentalcare/clinic-api/internal/service/appointment"
	"github.com/dentalcare/clinic-api/pkg/auth"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

// capturingRepo records the filters the service hands down.
type capturingRepo struct {
	lastFilters *model.AppointmentFilters
	lastUserID  uuid.UUID
}

func (r *capturingRepo) Create(_ context.Context, a *model.Appointment) error { return nil }

func (r *capturingRepo) Get(_ context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	return nil, apperrors.NewNotFound("appointment", nil)
}

func (r *capturingRepo) Update(_ context.Context, a *model.Appointment) (*model.Appointment, error) {
	return nil, apperrors.NewNotFound("appointment", nil)
}

func (r *capturingRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	return apperrors.NewNotFound("appointment", nil)
}

func (r *capturingRepo) List(_ context.Context, userID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.lastUserID = userID
	r.lastFilters = filters
	return []*model.Appointment{}, nil
}

func newTestRouter(t *testing.T, repo *capturingRepo) (*gin.Engine, string, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewJWTService("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tokens.Generate(userID, "user@example.com")
	require.NoError(t, err)

	h := NewHandler(appointmentsvc.NewService(repo), nil, nil, nil, nil)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(middleware.Auth(tokens))
	h.RegisterRoutes(group)

	return engine, token, userID
}

func listRequest(t *testing.T, engine *gin.Engine, token, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?"+rawQuery, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestListRequiresToken(t *testing.T) {
	engine, _, _ := newTestRouter(t, &capturingRepo{})

	w := listRequest(t, engine, "", "status=Pending")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRejectsBadToken(t *testing.T) {
	engine, _, _ := newTestRouter(t, &capturingRepo{})

	w := listRequest(t, engine, "not-a-token", "status=Pending")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListNoStatusReturnsEmptyArray(t *testing.T) {
	repo := &capturingRepo{}
	engine, token, _ := newTestRouter(t, repo)

	w := listRequest(t, engine, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string              `json:"status"`
		Data   []*model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)

	// The empty set never reaches the store.
	assert.Nil(t, repo.lastFilters)
}

func TestListRepeatedStatusParams(t *testing.T) {
	repo := &capturingRepo{}
	engine, token, userID := newTestRouter(t, repo)

	w := listRequest(t, engine, token, "status=Pending&status=Completed")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, repo.lastFilters)
	assert.Equal(t, userID, repo.lastUserID)
	assert.Equal(t, []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusCompleted,
	}, repo.lastFilters.Statuses)
}

func TestListJSONArrayStatusParam(t *testing.T) {
	repo := &capturingRepo{}
	engine, token, _ := newTestRouter(t, repo)

	w := listRequest(t, engine, token, "status="+url.QueryEscape(`["Pending","Cancelled"]`))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, repo.lastFilters)
	assert.Equal(t, []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusCancelled,
	}, repo.lastFilters.Statuses)
}

func TestListUnknownStatusRejected(t *testing.T) {
	engine, token, _ := newTestRouter(t, &capturingRepo{})

	w := listRequest(t, engine, token, "status=Done")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMalformedJSONStatusRejected(t *testing.T) {
	engine, token, _ := newTestRouter(t, &capturingRepo{})

	w := listRequest(t, engine, token, "status="+url.QueryEscape(`["Pending"`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDateRange(t *testing.T) {
	repo := &capturingRepo{}
	engine, token, _ := newTestRouter(t, repo)

	w := listRequest(t, engine, token, "status=Pending&start_date=2026-09-10&end_date=2026-09-20")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, repo.lastFilters)
	require.NotNil(t, repo.lastFilters.StartDate)
	require.NotNil(t, repo.lastFilters.EndDate)
	assert.Equal(t, "2026-09-10", repo.lastFilters.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-09-20", repo.lastFilters.EndDate.Format("2006-01-02"))
}

func TestListInvalidDateRejected(t *testing.T) {
	engine, token, _ := newTestRouter(t, &capturingRepo{})

	w := listRequest(t, engine, token, "status=Pending&start_date=09/10/2026&end_date=2026-09-20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHalfOpenRangeIgnored(t *testing.T) {
	repo := &capturingRepo{}
	engine, token, _ := newTestRouter(t, repo)

	w := listRequest(t, engine, token, "status=Pending&start_date=2026-09-10")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, repo.lastFilters)
	assert.Nil(t, repo.lastFilters.StartDate)
	assert.Nil(t, repo.lastFilters.EndDate)
}
