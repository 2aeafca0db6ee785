package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/httpresp"
	"github.com/agendaestetica/detailing-scheduler/internal/middleware"
	ucAppointment "github.com/agendaestetica/detailing-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	updateUC       *ucAppointment.UpdateAppointment
	cancelUC       *ucAppointment.CancelAppointment
	listUC         *ucAppointment.ListAppointments
	availabilityUC *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listUC *ucAppointment.ListAppointments,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		cancelUC:       cancelUC,
		listUC:         listUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentServiceRequest struct {
	ServiceID uint    `json:"service_id" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
}

type CreateAppointmentRequest struct {
	CustomerID uint  `json:"customer_id" binding:"required"`
	VehicleID  *uint `json:"vehicle_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	Services []AppointmentServiceRequest `json:"services" binding:"required,min=1,dive"`
	Notes    string                      `json:"notes"`

	PaymentStatus string   `json:"payment_status"`
	PaymentMethod string   `json:"payment_method"`
	PaidAmount    *float64 `json:"paid_amount"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status,omitempty"`

	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`

	VehicleID *uint   `json:"vehicle_id,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	PaymentStatus *string  `json:"payment_status,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	PaidAmount    *float64 `json:"paid_amount,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	services := make([]domain.RequestedService, 0, len(req.Services))
	for _, s := range req.Services {
		services = append(services, domain.RequestedService{
			ServiceID: s.ServiceID,
			Price:     s.Price,
		})
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		TenantID:      tenantID,
		UserID:        userID,
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		Date:          req.Date,
		Time:          req.Time,
		Services:      services,
		Notes:         req.Notes,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		PaidAmount:    req.PaidAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// UPDATE (patch parcial + remarcação)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		TenantID:      tenantID,
		UserID:        userID,
		AppointmentID: uint(id),
		Status:        req.Status,
		Date:          req.Date,
		Time:          req.Time,
		VehicleID:     req.VehicleID,
		Notes:         req.Notes,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		PaidAmount:    req.PaidAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// CANCEL (soft delete)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// LIST (filtros tipados + paginação)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var filter domain.AppointmentFilter

	if s := c.Query("status"); s != "" {
		status := domain.Status(s)
		if !domain.IsValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
		filter.Status = &status
	}

	if cid := c.Query("customer_id"); cid != "" {
		id, err := strconv.ParseUint(cid, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_customer_id", "Cliente inválido.")
			return
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		filter.DateFrom = &t
	}

	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		end := t.Add(24 * time.Hour)
		filter.DateTo = &end
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	apps, total, err := h.listUC.Execute(c.Request.Context(), tenantID, filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Page(c, apps, total, page, limit)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), tenantID, dateStr)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}

	httpresp.List(c, out)
}
