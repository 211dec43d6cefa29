package httpapi

import (
	"net/http"
	"strings"
)

// SessionsHandler 抓取会话查询接口
type SessionsHandler struct {
	Service Service
}

// List GET /api/sessions?limit=20
func (h SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 20, 1, 200)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	sessions, err := h.Service.Sessions(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// Get GET /api/sessions/{id}
func (h SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		badRequest(w, r, "会话ID不能为空")
		return
	}
	detail, err := h.Service.SessionData(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}
