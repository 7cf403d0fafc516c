package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	"github.com/BruksfildServices01/salon-sync/internal/httpresp"
	"github.com/BruksfildServices01/salon-sync/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	q.From, q.To = dayRange(c.Query("from"), c.Query("to"), timezone.Default())

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
