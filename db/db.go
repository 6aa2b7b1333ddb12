package db

import (
	"fmt"
	"log"
	"os"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grocoop/gasorders/models"
)

// ConnectAndMigrate opens the database and brings the schema up to date.
// With sqlMigrations the SQL migrations in ./migrations run via golang-migrate;
// otherwise AutoMigrate keeps the schema in sync (dev convenience). seedData
// opts in to reference-data seeding.
//
// TranslateError is required: the product create path relies on
// gorm.ErrDuplicatedKey to detect identifier races.
func ConnectAndMigrate(dsn string, sqlMigrations, seedData bool) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Println("retrying DB connection:", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if sqlMigrations {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(conn); err != nil {
			return nil, err
		}
	}

	if seedData {
		Seed(conn)
	}
	return conn, nil
}

// AutoMigrate creates or updates the tables for every catalog entity.
func AutoMigrate(conn *gorm.DB) error {
	entities := []interface{}{
		&models.Category{},
		&models.Measure{},
		&models.Supplier{},
		&models.Product{},
		&models.Variant{},
		&models.Order{},
		&models.OrderProduct{},
		&models.Booking{},
		&models.BookedProduct{},
	}
	for _, e := range entities {
		if err := conn.AutoMigrate(e); err != nil {
			return fmt.Errorf("automigrate %T: %w", e, err)
		}
	}
	return nil
}

// runSQLMigrations executes the migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
