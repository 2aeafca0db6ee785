package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/dto"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/middleware"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"github.com/agendaestetica/detailing-scheduler/internal/timezone"
)

// AgendaHandler serve a visão do dia: agendamentos ativos ordenados,
// projetados num item enxuto para o calendário.
type AgendaHandler struct {
	db *gorm.DB
}

func NewAgendaHandler(db *gorm.DB) *AgendaHandler {
	return &AgendaHandler{db: db}
}

func (h *AgendaHandler) Day(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Conta não encontrada.")
		return
	}

	day, err := timezone.ParseDate(tenant.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida (use YYYY-MM-DD).")
		return
	}
	dayEnd := day.Add(24 * time.Hour)

	var apps []models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Services.Service").
		Where(
			"tenant_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			tenantID,
			[]string{string(domain.StatusCancelled), string(domain.StatusNoShow)},
			dayEnd, day,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {

		httperr.Internal(c, "failed_to_load_agenda", "Erro ao carregar a agenda.")
		return
	}

	items := make([]dto.AgendaItemDTO, 0, len(apps))
	for _, ap := range apps {
		item := dto.AgendaItemDTO{
			ID:           ap.ID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			TotalPrice:   ap.TotalPrice,
		}

		if ap.Vehicle != nil {
			item.Vehicle = fmt.Sprintf("%s %s", ap.Vehicle.Brand, ap.Vehicle.Model)
		}

		for _, line := range ap.Services {
			item.Services = append(item.Services, line.Service.Name)
		}

		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  day.Format("2006-01-02"),
		"items": items,
	})
}
