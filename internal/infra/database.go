package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Socio{},
		&model.Producto{},
		&model.SesionCaja{},
		&model.MovimientoCaja{},
		&model.Dispensacion{},
		&model.MovimientoMonedero{},
		&model.MovimientoStock{},
		&model.Documento{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Only one sesion de caja may be abierta at any time. The service
		// guards this too; the partial unique index makes races lose cleanly.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_sesion_caja_abierta') THEN
		    CREATE UNIQUE INDEX uniq_sesion_caja_abierta
		        ON sesion_cajas ((estado))
		        WHERE estado = 'abierta';
		  END IF;
		END $$`,
		// Caja ledger amounts are non-negative; direction lives in tipo.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimientos_caja_monto') THEN
		    ALTER TABLE movimientos_caja
		      ADD CONSTRAINT chk_movimientos_caja_monto CHECK (monto >= 0);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
