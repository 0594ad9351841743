package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"

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

type fakeAttendanceService struct {
	createFn               func(ctx context.Context, actorID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error)
	getAllFn               func(ctx context.Context, actorID string, filter attendance.FilterRequest) ([]attendance.AttendanceResponse, error)
	getByDateAndEmployeeFn func(ctx context.Context, actorID, date, employeeID string) (attendance.AttendanceResponse, error)
	updateFn               func(ctx context.Context, actorID, date, employeeID string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error)
	deleteFn               func(ctx context.Context, actorID, date, employeeID string) error
	buildMonthlyReportFn   func(ctx context.Context, actorID, employeeID, month string, today time.Time) (attendance.MonthlyReportResponse, error)
}

func (f *fakeAttendanceService) Create(ctx context.Context, actorID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.createFn(ctx, actorID, req)
}

func (f *fakeAttendanceService) GetAll(ctx context.Context, actorID string, filter attendance.FilterRequest) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, actorID, filter)
}

func (f *fakeAttendanceService) GetByDateAndEmployee(ctx context.Context, actorID, date, employeeID string) (attendance.AttendanceResponse, error) {
	return f.getByDateAndEmployeeFn(ctx, actorID, date, employeeID)
}

func (f *fakeAttendanceService) Update(ctx context.Context, actorID, date, employeeID string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.updateFn(ctx, actorID, date, employeeID, req)
}

func (f *fakeAttendanceService) Delete(ctx context.Context, actorID, date, employeeID string) error {
	return f.deleteFn(ctx, actorID, date, employeeID)
}

func (f *fakeAttendanceService) BuildMonthlyReport(ctx context.Context, actorID, employeeID, month string, today time.Time) (attendance.MonthlyReportResponse, error) {
	return f.buildMonthlyReportFn(ctx, actorID, employeeID, month, today)
}

func TestAttendanceHandler_Create(t *testing.T) {
	svc := &fakeAttendanceService{
		createFn: func(ctx context.Context, actorID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, "MGR001", actorID)
			return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status}, nil
		},
	}

	h := attendance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"EMP001","date":"2026-03-02","status":"PRESENT"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("employee_id", "MGR001")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestAttendanceHandler_Create_UnknownStatus(t *testing.T) {
	h := attendance.NewHandler(&fakeAttendanceService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"EMP001","date":"2026-03-02","status":"VACATION"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("employee_id", "MGR001")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestAttendanceHandler_MonthlyReport(t *testing.T) {
	t.Run("self report defaults the target to the actor", func(t *testing.T) {
		svc := &fakeAttendanceService{
			buildMonthlyReportFn: func(ctx context.Context, actorID, employeeID, month string, today time.Time) (attendance.MonthlyReportResponse, error) {
				assert.Equal(t, "EMP001", actorID)
				assert.Equal(t, "EMP001", employeeID)
				assert.Equal(t, "2026-03", month)
				return attendance.MonthlyReportResponse{
					EmployeeID:      employeeID,
					AbsentThisMonth: 4,
					Logs:            []attendance.DailyLog{{Date: "2026-03-01", Day: "Sunday", Status: "ABSENT"}},
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/reports/2026-03", nil)
		c.Params = []gin.Param{{Key: "month", Value: "2026-03"}}
		c.Set("employee_id", "EMP001")

		h.MonthlyReport(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var report attendance.MonthlyReportResponse
		assert.NoError(t, json.Unmarshal(env.Data, &report))
		assert.Equal(t, 4, report.AbsentThisMonth)
		assert.Len(t, report.Logs, 1)
	})

	t.Run("explicit employee id is forwarded", func(t *testing.T) {
		svc := &fakeAttendanceService{
			buildMonthlyReportFn: func(ctx context.Context, actorID, employeeID, month string, today time.Time) (attendance.MonthlyReportResponse, error) {
				assert.Equal(t, "MGR001", actorID)
				assert.Equal(t, "EMP001", employeeID)
				return attendance.MonthlyReportResponse{EmployeeID: employeeID}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/reports/2026-03/EMP001", nil)
		c.Params = []gin.Param{
			{Key: "month", Value: "2026-03"},
			{Key: "employee_id", Value: "EMP001"},
		}
		c.Set("employee_id", "MGR001")

		h.MonthlyReport(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed month surfaces as bad request", func(t *testing.T) {
		svc := &fakeAttendanceService{
			buildMonthlyReportFn: func(ctx context.Context, actorID, employeeID, month string, today time.Time) (attendance.MonthlyReportResponse, error) {
				return attendance.MonthlyReportResponse{}, attendanceerrors.ErrInvalidMonthFormat
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/reports/bogus", nil)
		c.Params = []gin.Param{{Key: "month", Value: "bogus"}}
		c.Set("employee_id", "EMP001")

		h.MonthlyReport(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestAttendanceHandler_Delete(t *testing.T) {
	svc := &fakeAttendanceService{
		deleteFn: func(ctx context.Context, actorID, date, employeeID string) error {
			assert.Equal(t, "2026-03-02", date)
			assert.Equal(t, "EMP001", employeeID)
			return nil
		},
	}

	h := attendance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodDelete, "/attendances/2026-03-02/EMP001", nil)
	c.Params = []gin.Param{
		{Key: "date", Value: "2026-03-02"},
		{Key: "employee_id", Value: "EMP001"},
	}
	c.Set("employee_id", "MGR001")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
