package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Table describes one relation of the fittude schema. Repositories depend on
// the relational shape only, the DDL lives in the embedded migrations.
type Table struct {
	Name       string
	PrimaryKey []string
	// Owned tables carry the nullable user_id ownership column.
	Owned bool
}

// Tables lists the schema relations in dependency order (referenced first).
var Tables = []Table{
	{Name: "users", PrimaryKey: []string{"user_id"}},
	{Name: "muscle_group", PrimaryKey: []string{"group_name"}, Owned: true},
	{Name: "muscle", PrimaryKey: []string{"muscle_id"}, Owned: true},
	{Name: "equipment", PrimaryKey: []string{"equipment_id"}, Owned: true},
	{Name: "exercise", PrimaryKey: []string{"exercise_id"}, Owned: true},
	{Name: "exercise_muscle", PrimaryKey: []string{"exercise_id", "muscle_id"}},
	{Name: "exercise_equipment", PrimaryKey: []string{"exercise_id", "equipment_id"}},
	{Name: "workout_plan", PrimaryKey: []string{"workout_plan_id"}, Owned: true},
	{Name: "workout_split", PrimaryKey: []string{"workout_plan_id", "split"}},
	{Name: "split_exercise", PrimaryKey: []string{"workout_plan_id", "split", "exercise_id", "execution_order"}},
	{Name: "workout_report", PrimaryKey: []string{"workout_report_id"}},
	{Name: "set_report", PrimaryKey: []string{"workout_report_id", "exercise_id", "split", "workout_plan_id", "set_number"}},
}

// MigrationsFS returns the embedded migration files, rooted at the
// migrations directory.
func MigrationsFS() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}

func setupGoose() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	migrationsDir, err := MigrationsFS()
	if err != nil {
		return fmt.Errorf("get migrations directory: %w", err)
	}
	goose.SetBaseFS(migrationsDir)
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Infoln("migrations completed successfully")
	return nil
}

// MigrateDown rolls back the latest applied migration.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	log.Infoln("rolled back one migration")
	return nil
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return version, nil
}
