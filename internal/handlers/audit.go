package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const auditPageSize = 200

func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.Audit.Recent(c.Request.Context(), auditPageSize)
	if err != nil {
		h.Log.Error("failed to load audit log", zap.Error(err))
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs":    logs,
		"enabled": h.Audit.Enabled(),
	})
}
