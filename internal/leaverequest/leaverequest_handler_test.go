package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/leaverequest"
	leaverequesterrors "go-attendance/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveRequestService struct {
	createFn  func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
	getAllFn  func(ctx context.Context, actorID string, filter leaverequest.FilterRequest) ([]leaverequest.LeaveRequestResponse, error)
	getByIDFn func(ctx context.Context, actorID string, id int64) (leaverequest.LeaveRequestResponse, error)
	updateFn  func(ctx context.Context, actorID string, id int64, req leaverequest.UpdateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
	approveFn func(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
	denyFn    func(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
}

func (f *fakeLeaveRequestService) Create(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createFn(ctx, actorID, req)
}

func (f *fakeLeaveRequestService) GetAll(ctx context.Context, actorID string, filter leaverequest.FilterRequest) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getAllFn(ctx, actorID, filter)
}

func (f *fakeLeaveRequestService) GetByID(ctx context.Context, actorID string, id int64) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}

func (f *fakeLeaveRequestService) Update(ctx context.Context, actorID string, id int64, req leaverequest.UpdateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.updateFn(ctx, actorID, id, req)
}

func (f *fakeLeaveRequestService) Approve(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.approveFn(ctx, actorID, id, req)
}

func (f *fakeLeaveRequestService) Deny(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.denyFn(ctx, actorID, id, req)
}

func TestLeaveRequestHandler_Create(t *testing.T) {
	svc := &fakeLeaveRequestService{
		createFn: func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
			assert.Equal(t, "EMP001", actorID)
			assert.Equal(t, "2026-03-05", req.Date)
			return leaverequest.LeaveRequestResponse{
				ID: 1234567890, EmployeeID: actorID, Date: req.Date, Status: "PENDING", Message: req.Message,
			}, nil
		},
	}

	h := leaverequest.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"date":"2026-03-05","message":"flu"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("employee_id", "EMP001")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestLeaveRequestHandler_Create_MissingDate(t *testing.T) {
	h := leaverequest.NewHandler(&fakeLeaveRequestService{}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("employee_id", "EMP001")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestLeaveRequestHandler_Approve(t *testing.T) {
	svc := &fakeLeaveRequestService{
		approveFn: func(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
			assert.Equal(t, "MGR001", actorID)
			assert.Equal(t, int64(1234567890), id)
			assert.Equal(t, "ok", req.ResponseMessage)
			return leaverequest.LeaveRequestResponse{ID: id, Status: "APPROVED", ProcessorID: actorID}, nil
		},
	}

	h := leaverequest.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"response_message":"ok"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/1234567890/approve", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "1234567890"}}
	c.Set("employee_id", "MGR001")

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestLeaveRequestHandler_Approve_AlreadyProcessed(t *testing.T) {
	svc := &fakeLeaveRequestService{
		approveFn: func(ctx context.Context, actorID string, id int64, req leaverequest.ProcessLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
			return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyProcessed
		},
	}

	h := leaverequest.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/1234567890/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: "1234567890"}}
	c.Set("employee_id", "MGR001")

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestLeaveRequestHandler_Deny_MalformedID(t *testing.T) {
	h := leaverequest.NewHandler(&fakeLeaveRequestService{}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/abc/deny", nil)
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set("employee_id", "MGR001")

	h.Deny(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestLeaveRequestHandler_GetAll_Pagination(t *testing.T) {
	svc := &fakeLeaveRequestService{
		getAllFn: func(ctx context.Context, actorID string, filter leaverequest.FilterRequest) ([]leaverequest.LeaveRequestResponse, error) {
			rows := make([]leaverequest.LeaveRequestResponse, 25)
			for i := range rows {
				rows[i] = leaverequest.LeaveRequestResponse{ID: int64(1000000000 + i), Status: "PENDING"}
			}
			return rows, nil
		},
	}

	h := leaverequest.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests?page=2&page_size=10", nil)
	c.Set("employee_id", "MGR001")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var rows []leaverequest.LeaveRequestResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 10)
	assert.Equal(t, int64(1000000010), rows[0].ID)
}
