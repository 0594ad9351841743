package leaverequest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	leaverequesterrors "go-attendance/internal/leaverequest/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// finishIdempotent stores the successful result under the idempotency cache
// key and releases the in-flight lock. No-op when the request carried no key.
func (h *Handler) finishIdempotent(c *gin.Context, result any) {
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" || h.rdb == nil {
		return
	}
	if payload, err := json.Marshal(result); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyResultTTL)
	}
	if lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

// releaseIdempotencyLock frees the lock on failure so the client can retry
// with the same key.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" && h.rdb != nil {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actorID := c.GetString("employee_id")

	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		h.releaseIdempotencyLock(c)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		h.releaseIdempotencyLock(c)
		return
	}

	h.finishIdempotent(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actorID := c.GetString("employee_id")

	var filter FilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid filter parameters", err.Error())
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), actorID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	actorID := c.GetString("employee_id")

	id, err := parseRequestID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actorID := c.GetString("employee_id")

	id, err := parseRequestID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.process(c, h.service.Approve)
}

func (h *Handler) Deny(c *gin.Context) {
	h.process(c, h.service.Deny)
}

func (h *Handler) process(c *gin.Context, fn func(ctx context.Context, actorID string, id int64, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error)) {
	actorID := c.GetString("employee_id")

	id, err := parseRequestID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		h.releaseIdempotencyLock(c)
		return
	}

	var req ProcessLeaveRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			h.releaseIdempotencyLock(c)
			return
		}
	}

	resp, err := fn(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		h.releaseIdempotencyLock(c)
		return
	}

	h.finishIdempotent(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func parseRequestID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, leaverequesterrors.ErrInvalidRequestID
	}
	return id, nil
}
