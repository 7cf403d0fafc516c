package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/dto"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	ucBooking "github.com/BruksfildServices01/salon-sync/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-sync/internal/view"
)

const streamKeepAlive = 25 * time.Second

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	hub  *ucBooking.Hub
	now  func() time.Time
	log  *zap.Logger
	memo view.Memo
}

func NewDashboardHandler(
	hub *ucBooking.Hub,
	now func() time.Time,
	log *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{hub: hub, now: now, log: log}
}

// ======================================================
// HELPERS
// ======================================================

func parseFilters(c *gin.Context) (view.Filters, bool) {
	date, err := view.ParseDateFilter(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_filter", "date must be one of all, today, tomorrow, this-week.")
		return view.Filters{}, false
	}
	return view.Filters{Barber: c.Query("barber"), Date: date}, true
}

// ======================================================
// VIEW
// ======================================================

func (h *DashboardHandler) View(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	st := h.hub.State()
	d := h.memo.Build(st.Version, st.Bookings, filters, h.now())

	c.JSON(http.StatusOK, dto.NewDashboardDTO(st, d))
}

// ======================================================
// STREAM (SSE)
// ======================================================

func (h *DashboardHandler) Stream(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	w := h.hub.Watch()
	defer w.Close()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	var memo view.Memo
	c.Stream(func(io.Writer) bool {
		select {
		case st, open := <-w.Updates():
			if !open {
				return false
			}
			d := memo.Build(st.Version, st.Bookings, filters, h.now())
			c.SSEvent("view", dto.NewDashboardDTO(st, d))
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"at": h.now().Unix()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// ======================================================
// EXPORT (CSV)
// ======================================================

func (h *DashboardHandler) Export(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	now := h.now()
	st := h.hub.State()
	d := view.Build(st.Bookings, filters, now)

	body, err := gocsv.MarshalBytes(dto.NewBookingCSVRows(d.Bookings, now.Location()))
	if err != nil {
		h.log.Error("booking export failed", zap.Error(err))
		httperr.Internal(c, "export_failed", "Failed to export bookings.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookings-`+now.Format("2006-01-02")+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// ======================================================
// RELOAD
// ======================================================

func (h *DashboardHandler) Reload(c *gin.Context) {
	if err := h.hub.Reload(); err != nil {
		httperr.Write(c, http.StatusServiceUnavailable, "subscription_failed", ucBooking.MsgInitFailed)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "reloading"})
}
