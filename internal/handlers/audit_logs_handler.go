package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/team-scheduler/internal/middleware"
)

// maxAuditOffset keeps (page-1)*limit well inside a postgres bigint and a
// 32-bit int.
const maxAuditOffset = math.MaxInt32

type AuditLogsHandler struct {
	reader audit.Reader
}

func NewAuditLogsHandler(reader audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

// List returns the caller's own audit trail. from and to are dates
// (2006-01-02) and to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Failed to authenticate")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	if page > maxAuditOffset/limit {
		httperr.BadRequest(c, "invalid_page", "page is out of range")
		return
	}

	f := audit.Filter{
		UserID: userID,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if s := c.Query("from"); s != "" {
		from, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		f.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.reader.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Audit logs retrieved successfully", gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
