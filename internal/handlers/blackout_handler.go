package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/middleware"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"github.com/agendaestetica/detailing-scheduler/internal/timezone"
)

type BlackoutHandler struct {
	db *gorm.DB
}

func NewBlackoutHandler(db *gorm.DB) *BlackoutHandler {
	return &BlackoutHandler{db: db}
}

type BlackoutRequest struct {
	Kind         string  `json:"kind" binding:"required"`
	Weekday      *int    `json:"weekday"`
	SpecificDate *string `json:"specific_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	FullDay      bool    `json:"full_day"`
	Reason       string  `json:"reason"`
	Active       *bool   `json:"active"`
}

// UpdateBlackoutRequest aceita atualização parcial: só os campos enviados
// são aplicados sobre a regra existente.
type UpdateBlackoutRequest struct {
	Kind         *string `json:"kind"`
	Weekday      *int    `json:"weekday"`
	SpecificDate *string `json:"specific_date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	FullDay      *bool   `json:"full_day"`
	Reason       *string `json:"reason"`
	Active       *bool   `json:"active"`
}

// toModel monta a regra ancorando specific_date à meia-noite no fuso do
// tenant. Parse em UTC deslocaria o bloqueio para o dia anterior em fusos
// negativos.
func (r *BlackoutRequest) toModel(tenantID uint, tz string) (*models.BlackoutRule, error) {
	rule := &models.BlackoutRule{
		TenantID:  tenantID,
		Kind:      r.Kind,
		Weekday:   r.Weekday,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		FullDay:   r.FullDay,
		Reason:    r.Reason,
		Active:    true,
	}
	if r.Active != nil {
		rule.Active = *r.Active
	}

	if r.SpecificDate != nil && *r.SpecificDate != "" {
		d, err := timezone.ParseDate(tz, *r.SpecificDate)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		rule.SpecificDate = &d
	}

	if err := domain.ValidateBlackout(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *UpdateBlackoutRequest) applyTo(rule *models.BlackoutRule, tz string) error {
	if r.Kind != nil {
		rule.Kind = *r.Kind
	}
	if r.Weekday != nil {
		rule.Weekday = r.Weekday
	}
	if r.SpecificDate != nil {
		if *r.SpecificDate == "" {
			rule.SpecificDate = nil
		} else {
			d, err := timezone.ParseDate(tz, *r.SpecificDate)
			if err != nil {
				return httperr.ErrBusiness("invalid_date")
			}
			rule.SpecificDate = &d
		}
	}
	if r.StartTime != nil {
		rule.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		rule.EndTime = *r.EndTime
	}
	if r.FullDay != nil {
		rule.FullDay = *r.FullDay
	}
	if r.Reason != nil {
		rule.Reason = *r.Reason
	}
	if r.Active != nil {
		rule.Active = *r.Active
	}
	return domain.ValidateBlackout(rule)
}

func (h *BlackoutHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Conta não encontrada.")
		return
	}

	rule, err := req.toModel(tenantID, tenant.Timezone)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.Create(rule).Error; err != nil {
		httperr.Internal(c, "failed_to_create_blackout", "Erro ao criar bloqueio.")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *BlackoutHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	query := h.db.Where("tenant_id = ?", tenantID)

	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var rules []models.BlackoutRule
	if err := query.
		Order("kind ASC").
		Order("specific_date ASC").
		Order("weekday ASC").
		Find(&rules).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blackouts", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (h *BlackoutHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var existing models.BlackoutRule
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&existing).Error; err != nil {

		httperr.NotFound(c, "blackout_not_found", "Bloqueio não encontrado.")
		return
	}

	var req UpdateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Conta não encontrada.")
		return
	}

	if err := req.applyTo(&existing, tenant.Timezone); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.Save(&existing).Error; err != nil {
		httperr.Internal(c, "failed_to_update_blackout", "Erro ao atualizar bloqueio.")
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *BlackoutHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.BlackoutRule{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_blackout", "Erro ao excluir bloqueio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "blackout_not_found", "Bloqueio não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
