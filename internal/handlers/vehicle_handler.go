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
	"github.com/agendaestetica/detailing-scheduler/internal/storage"
)

const maxPhotoUploadBytes = 8 << 20 // 8 MB

type VehicleHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore // nil quando S3 não está configurado
}

func NewVehicleHandler(db *gorm.DB, photos *storage.PhotoStore) *VehicleHandler {
	return &VehicleHandler{db: db, photos: photos}
}

// --------- Requests ---------

type CreateVehicleRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Brand      string `json:"brand" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       int    `json:"year"`
	Plate      string `json:"plate"`
	Color      string `json:"color"`
}

type UpdateVehicleRequest struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
	Plate *string `json:"plate,omitempty"`
	Color *string `json:"color,omitempty"`
}

// --------- Handlers ---------

func (h *VehicleHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Where("tenant_id = ?", tenantID)

	if cid := c.Query("customer_id"); cid != "" {
		id, err := strconv.ParseUint(cid, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_customer_id", "Cliente inválido.")
			return
		}
		q = q.Where("customer_id = ?", id)
	}

	var vehicles []models.Vehicle
	if err := q.Order("id ASC").Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Erro ao listar veículos.")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.CustomerID, tenantID).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	vehicle := models.Vehicle{
		TenantID:   tenantID,
		CustomerID: customer.ID,
		Brand:      strings.TrimSpace(req.Brand),
		Model:      strings.TrimSpace(req.Model),
		Year:       req.Year,
		Plate:      strings.ToUpper(strings.TrimSpace(req.Plate)),
		Color:      req.Color,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "plate_already_registered", "Já existe um veículo com esta placa.")
			return
		}
		httperr.Internal(c, "failed_to_create_vehicle", "Erro ao criar veículo.")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&vehicle).Error; err != nil {

		httperr.NotFound(c, "vehicle_not_found", "Veículo não encontrado.")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Brand != nil {
		vehicle.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		vehicle.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Plate != nil {
		vehicle.Plate = strings.ToUpper(strings.TrimSpace(*req.Plate))
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}

	if err := h.db.Save(&vehicle).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "plate_already_registered", "Já existe um veículo com esta placa.")
			return
		}
		httperr.Internal(c, "failed_to_update_vehicle", "Erro ao atualizar veículo.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Vehicle{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_vehicle", "Erro ao excluir veículo.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "vehicle_not_found", "Veículo não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UploadPhoto recebe multipart "photo", converte e guarda no S3.
func (h *VehicleHandler) UploadPhoto(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	if h.photos == nil {
		httperr.BadRequest(c, "photos_not_configured", "Upload de fotos não está habilitado.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&vehicle).Error; err != nil {

		httperr.NotFound(c, "vehicle_not_found", "Veículo não encontrado.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo 'photo'.")
		return
	}
	if fileHeader.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Foto excede o tamanho máximo de 8MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler a foto.")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadVehiclePhoto(c.Request.Context(), tenantID, vehicle.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao enviar a foto.")
		return
	}

	vehicle.PhotoURL = url
	if err := h.db.Model(&vehicle).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo_url", "Erro ao salvar a foto.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
