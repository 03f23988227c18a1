package db

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TheReasonWePlay/FTVN-sub001/config"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// Connect opens the pool and sizes it from config. The pool is shared by all requests.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.New(logger.Std(zapcore.WarnLevel), gormlogger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connected", zap.Int("max_open_conns", cfg.MaxOpenConns))
	return gdb, nil
}

// Close closes the underlying pool.
func Close(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

type foreignKey struct {
	table, column, refTable, refColumn, onDelete string
}

func (fk foreignKey) name() string {
	return fmt.Sprintf("fk_%s_%s", fk.table, fk.column)
}

var foreignKeys = []foreignKey{
	{models.UtilisateurTable, "matricule", models.PersonneTable, "matricule", "CASCADE"},
	{models.PositionTable, "ref_salle", models.SalleTable, "ref_salle", "RESTRICT"},
	{models.OrdinateurTable, "num_serie", models.MaterielTable, "num_serie", "CASCADE"},
	{models.AffectationTable, "matricule", models.PersonneTable, "matricule", "RESTRICT"},
	{models.AffectationTable, "ref_position", models.PositionTable, "ref_position", "RESTRICT"},
	{models.MaterielTable, "ref_affectation", models.AffectationTable, "ref_affectation", "SET NULL"},
	{models.InventaireTable, "ref_salle", models.SalleTable, "ref_salle", "RESTRICT"},
	{models.InventaireTable, "matricule", models.PersonneTable, "matricule", "RESTRICT"},
	{models.IncidentTable, "num_serie", models.MaterielTable, "num_serie", "RESTRICT"},
	{models.IncidentTable, "matricule", models.PersonneTable, "matricule", "RESTRICT"},
	{models.IncidentTable, "ref_inventaire", models.InventaireTable, "ref_inventaire", "SET NULL"},
}

// Migrate creates tables, then the constraints and indexes AutoMigrate cannot express.
// Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
			fk.table, fk.name(), fk.column, fk.refTable, fk.refColumn, fk.onDelete,
		)
		if err := addConstraint(db, fk.name(), stmt); err != nil {
			return err
		}
	}

	// an affectation targets a person or a position, never both
	if err := addConstraint(db, "chk_affectations_one_target", fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT chk_affectations_one_target CHECK ((matricule IS NULL) <> (ref_position IS NULL))",
		models.AffectationTable,
	)); err != nil {
		return err
	}

	// at most one materiel points at a given affectation
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_per_affectation
	  ON %s (ref_affectation)
	  WHERE ref_affectation IS NOT NULL;
	`, models.MaterielTable, models.MaterielTable)).Error; err != nil {
		return fmt.Errorf("create materiel index: %w", err)
	}

	// every list and search orders by this
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_debut_ref_desc
	  ON %s (date_debut DESC, ref_affectation DESC);
	`, models.AffectationTable, models.AffectationTable)).Error; err != nil {
		return fmt.Errorf("create affectation order index: %w", err)
	}

	for _, col := range []string{"matricule", "ref_position"} {
		if err := db.Exec(fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s_%s ON %s (%s)",
			models.AffectationTable, col, models.AffectationTable, col,
		)).Error; err != nil {
			return fmt.Errorf("create affectation %s index: %w", col, err)
		}
	}

	return nil
}

// addConstraint runs stmt unless a constraint with that name exists in the current schema.
func addConstraint(db *gorm.DB, name, stmt string) error {
	err := db.Exec(fmt.Sprintf(`
	DO $$
	BEGIN
	  IF NOT EXISTS (
	    SELECT 1 FROM pg_constraint
	    WHERE conname = '%s'
	      AND connamespace = (SELECT oid FROM pg_namespace WHERE nspname = current_schema())
	  ) THEN
	    %s;
	  END IF;
	END $$;
	`, name, stmt)).Error
	if err != nil {
		return fmt.Errorf("add constraint %s: %w", name, err)
	}
	return nil
}
