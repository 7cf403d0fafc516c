package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-sync/internal/dto"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	"github.com/BruksfildServices01/salon-sync/internal/httpresp"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
	ucSalon "github.com/BruksfildServices01/salon-sync/internal/usecase/salon"
	"github.com/BruksfildServices01/salon-sync/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	register    *ucSalon.RegisterSalon
	get         *ucSalon.GetSalon
	list        *ucSalon.ListSalons
	isConnected *ucSalon.IsSalonConnected
	generateQR  *ucSalon.GenerateQRCode
	connect     *ucSalon.MarkSalonConnected
	disconnect  *ucSalon.DisconnectSalon
	heartbeat   *ucSalon.UpdateHeartbeat
	cleanup     *ucSalon.CleanupExpiredSessions

	resolver validators.Resolver
	now      func() time.Time
}

type SalonHandlerDeps struct {
	Register    *ucSalon.RegisterSalon
	Get         *ucSalon.GetSalon
	List        *ucSalon.ListSalons
	IsConnected *ucSalon.IsSalonConnected
	GenerateQR  *ucSalon.GenerateQRCode
	Connect     *ucSalon.MarkSalonConnected
	Disconnect  *ucSalon.DisconnectSalon
	Heartbeat   *ucSalon.UpdateHeartbeat
	Cleanup     *ucSalon.CleanupExpiredSessions

	// Resolver checks e-mail domains; nil uses net.DefaultResolver.
	Resolver validators.Resolver
}

func NewSalonHandler(d SalonHandlerDeps) *SalonHandler {
	h := &SalonHandler{
		register:    d.Register,
		get:         d.Get,
		list:        d.List,
		isConnected: d.IsConnected,
		generateQR:  d.GenerateQR,
		connect:     d.Connect,
		disconnect:  d.Disconnect,
		heartbeat:   d.Heartbeat,
		cleanup:     d.Cleanup,
		resolver:    d.Resolver,
		now:         time.Now,
	}
	if h.resolver == nil {
		h.resolver = net.DefaultResolver
	}
	return h
}

// --------- Requests ---------

type CreateSalonRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"owner_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type ConnectSalonRequest struct {
	InstanceID string `json:"whatsapp_instance_id"`
}

// ======================================================
// CRUD
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name, owner_name and phone are required.")
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !validators.IsEmailDomainValid(c.Request.Context(), h.resolver, email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	s, err := h.register.Execute(c.Request.Context(), ucSalon.RegisterSalonInput{
		Name:      strings.TrimSpace(req.Name),
		OwnerName: strings.TrimSpace(req.OwnerName),
		Phone:     phone,
		Email:     email,
		Address:   strings.TrimSpace(req.Address),
	})
	if err != nil {
		httperr.FromError(c, err, "salon_create_failed", "Failed to create salon.")
		return
	}

	httpresp.Created(c, s)
}

func (h *SalonHandler) List(c *gin.Context) {
	var connected *bool
	if raw := c.Query("connected"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_connected_filter", "connected must be true or false.")
			return
		}
		connected = &v
	}

	salons, err := h.list.Execute(c.Request.Context(), connected)
	if err != nil {
		httperr.FromError(c, err, "salon_list_failed", "Failed to list salons.")
		return
	}

	httpresp.List(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "salon_get_failed", "Failed to load salon.")
		return
	}
	httpresp.OK(c, s)
}

// Status never fails for an unknown salon; it reports it as disconnected.
func (h *SalonHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	connected, err := h.isConnected.Execute(ctx, id)
	if err != nil {
		httperr.FromError(c, err, "salon_status_failed", "Failed to check salon status.")
		return
	}

	out := dto.SalonStatusDTO{SalonID: id, Connected: connected}

	s, err := h.get.Execute(ctx, id)
	switch {
	case err == nil:
		out.WhatsAppConnected = s.WhatsAppConnected
		out.LastActive = s.LastActive
	case !storeerr.IsNotFound(err):
		httperr.FromError(c, err, "salon_status_failed", "Failed to check salon status.")
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// QR / CONNECTION WORKFLOW
// ======================================================

func (h *SalonHandler) GenerateQR(c *gin.Context) {
	qr, err := h.generateQR.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "qr_generate_failed", "Failed to generate QR code.")
		return
	}

	if qr == nil {
		httpresp.OK(c, gin.H{"already_connected": true, "qr": nil})
		return
	}

	status := http.StatusCreated
	if qr.Reused {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"already_connected": false, "qr": qr})
}

func (h *SalonHandler) Connect(c *gin.Context) {
	var req ConnectSalonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Body must be a JSON object.")
			return
		}
	}

	instanceID := strings.TrimSpace(req.InstanceID)
	if instanceID == "" {
		instanceID = "wa_instance_" + strconv.FormatInt(h.now().UnixMilli(), 10)
	}

	conn, err := h.connect.Execute(c.Request.Context(), c.Param("id"), instanceID)
	if err != nil {
		httperr.FromError(c, err, "salon_connect_failed", "Failed to connect salon.")
		return
	}

	httpresp.Created(c, conn)
}

func (h *SalonHandler) Disconnect(c *gin.Context) {
	n, err := h.disconnect.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "salon_disconnect_failed", "Failed to disconnect salon.")
		return
	}
	httpresp.OK(c, gin.H{"disconnected": n})
}

func (h *SalonHandler) Heartbeat(c *gin.Context) {
	if err := h.heartbeat.Execute(c.Request.Context(), c.Param("id")); err != nil {
		httperr.FromError(c, err, "salon_heartbeat_failed", "Failed to record heartbeat.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SalonHandler) Cleanup(c *gin.Context) {
	n, err := h.cleanup.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "session_cleanup_failed", "Failed to clean up QR sessions.")
		return
	}
	httpresp.OK(c, gin.H{"expired": n})
}
