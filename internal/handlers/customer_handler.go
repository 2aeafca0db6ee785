package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/middleware"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"github.com/agendaestetica/detailing-scheduler/internal/validators"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// --------- Requests ---------

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Whatsapp *string `json:"whatsapp,omitempty"`
	Email    *string `json:"email,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *CustomerHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("tenant_id = ?", tenantID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	var vehicles []models.Vehicle
	h.db.Where("customer_id = ? AND tenant_id = ?", customer.ID, tenantID).
		Order("id ASC").
		Find(&vehicles)

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"vehicles": vehicles,
	})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Email inválido.")
		return
	}

	customer := models.Customer{
		TenantID: tenantID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Whatsapp: strings.TrimSpace(req.Whatsapp),
		Email:    strings.TrimSpace(req.Email),
		Notes:    req.Notes,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "phone_already_registered", "Já existe um cliente com este telefone.")
			return
		}
		httperr.Internal(c, "failed_to_create_customer", "Erro ao criar cliente.")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Whatsapp != nil {
		customer.Whatsapp = strings.TrimSpace(*req.Whatsapp)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !validators.IsValidEmail(email) {
			httperr.BadRequest(c, "invalid_email", "Email inválido.")
			return
		}
		customer.Email = email
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := h.db.Save(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "phone_already_registered", "Já existe um cliente com este telefone.")
			return
		}
		httperr.Internal(c, "failed_to_update_customer", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, customer)
}
