package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/diewo77/cosmestock/internal/config"
	"github.com/diewo77/cosmestock/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the database named by dsn and brings the schema up
// to date. A postgres URL (or key=value DSN) selects the postgres driver with
// connection retries; anything else is treated as a sqlite path. Schema setup
// defaults to AutoMigrate; MIGRATIONS=true switches to versioned SQL
// migrations (postgres only).
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	var db *gorm.DB
	var err error
	if isPostgres(dsn) {
		// Simple retry to give postgres time to come up.
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// If MIGRATIONS=true we run sql migrations via golang-migrate; otherwise
	// keep the AutoMigrate fallback (dev convenience).
	if config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.User{}, &models.Product{}, &models.Sale{}} {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// Seeding only when explicitly requested (e.g. development) via DB_SEED=true
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=")
}

// EnsureSharedAccount creates the single shop account if it does not exist
// yet. An empty password leaves the store untouched so a fresh install
// without AUTH_PASSWORD cannot be logged into by accident.
func EnsureSharedAccount(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Limit(1).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{Username: username, Password: string(hash)}).Error
}

// seed installs the demo catalog when the product table is empty.
func seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	demo := []models.Product{
		{Name: "Rouge à Lèvres Mat", Category: "Maquillage", Brand: "Glamour Pro", Stock: 5, MinStock: 10, Price: decimal.RequireFromString("25.99"), SKU: "RAL001", Description: "Rouge à lèvres longue tenue"},
		{Name: "Crème Hydratante Visage", Category: "Soins", Brand: "Beauty Care", Stock: 2, MinStock: 8, Price: decimal.RequireFromString("45.50"), SKU: "CHV002", Description: "Crème anti-âge pour tous types de peau"},
		{Name: "Mascara Volume", Category: "Maquillage", Brand: "Eye Perfect", Stock: 15, MinStock: 12, Price: decimal.RequireFromString("18.90"), SKU: "MV003", Description: "Mascara effet volume intense"},
		{Name: "Sérum Vitamine C", Category: "Soins", Brand: "Vitamin Plus", Stock: 0, MinStock: 5, Price: decimal.RequireFromString("65.00"), SKU: "SVC004", Description: "Sérum concentré en vitamine C"},
	}
	for _, p := range demo {
		p.ID = uuid.NewString()
		db.Create(&p)
	}
}
