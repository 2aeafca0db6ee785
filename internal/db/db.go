package db

import (
	"log"
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/config"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
		&models.WeeklyHours{},
		&models.BlackoutRule{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Dois agendamentos ativos do mesmo tenant nunca começam no mesmo
	// instante. Índice parcial: cancelados/no-show não bloqueiam o horário.
	// Violações são mapeadas para slot_taken em httperr.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_tenant_start_active
        ON appointments (tenant_id, start_time)
        WHERE status NOT IN ('CANCELADO', 'NAO_COMPARECEU')
    `)

	db.Exec(`
        UPDATE tenants
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
