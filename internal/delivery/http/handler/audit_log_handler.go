package handler

import (
	"math"
	"net/http"
	"strconv"

	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	actor, _ := middleware.GetUserEmailFromContext(r.Context())
	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), actor, auditLogID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAuditLogs pages through the caller's own audit trail.
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	actor, _ := middleware.GetUserEmailFromContext(r.Context())
	list, err := h.auditLogUsecase.GetAuditLogs(r.Context(), actor, page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", list.Logs, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		Total:      list.Total,
		TotalPages: int(math.Ceil(float64(list.Total) / float64(list.Limit))),
	})
}
