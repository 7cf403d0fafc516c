package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	"github.com/BruksfildServices01/salon-sync/internal/config"
	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, storeerr.FromPostgres(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// notifiedTables get a statement trigger that NOTIFYs the matching
// changefeed channel.
var notifiedTables = []string{
	changefeed.Bookings,
	changefeed.Salons,
	changefeed.SalonConnections,
	changefeed.QRSessions,
}

const notifyFunction = `
CREATE OR REPLACE FUNCTION salonsync_notify_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('salonsync_' || TG_TABLE_NAME, TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.BookingDocument{},
		&models.Salon{},
		&models.SalonConnection{},
		&models.QRSession{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", storeerr.FromPostgres(err))
	}

	if err := db.Exec(notifyFunction).Error; err != nil {
		return fmt.Errorf("install notify function: %w", storeerr.FromPostgres(err))
	}

	for _, table := range notifiedTables {
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS salonsync_notify ON %s`, table),
			fmt.Sprintf(`CREATE TRIGGER salonsync_notify
				AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH STATEMENT EXECUTE FUNCTION salonsync_notify_change()`, table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("install trigger on %s: %w", table, storeerr.FromPostgres(err))
			}
		}
	}

	return nil
}
