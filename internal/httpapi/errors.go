package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/insights"
	"github.com/RecoveryAshes/LinkScope/internal/store"
	"github.com/rs/zerolog/log"
)

// APIError 错误响应体
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// WriteJSON 写入JSON响应
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError 写入带请求ID的错误响应
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// badRequest 参数校验失败
func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusBadRequest, "invalid_argument", message)
}

// writeServiceError 按错误类型映射状态码
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgument), errors.Is(err, insights.ErrUnsupportedFormat):
		badRequest(w, r, err.Error())
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", "记录不存在")
	case errors.Is(err, context.DeadlineExceeded):
		WriteError(w, r, http.StatusGatewayTimeout, "timeout", "请求超时")
	default:
		log.Error().
			Err(err).
			Str("request_id", RequestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Msg("❌ 请求处理失败")
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "服务器内部错误")
	}
}
