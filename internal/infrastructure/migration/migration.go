package migration

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
)

// Execer runs a statement; *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order. Each statement is idempotent, so the whole
// list runs on every start.
var Migrations = []Migration{
	{
		Name: "create_cvs",
		SQL: `CREATE TABLE IF NOT EXISTS cvs (
			id          UUID PRIMARY KEY,
			owner_id    UUID NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			template_id INTEGER NOT NULL DEFAULT 1,
			document    JSONB NOT NULL DEFAULT '{}'::jsonb,
			pdf_path    TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_cvs_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS cvs_owner_updated_idx ON cvs (owner_id, updated_at DESC)`,
	},
	{
		Name: "check_cvs_template",
		SQL: `DO $$ BEGIN
			ALTER TABLE cvs ADD CONSTRAINT cvs_template_id_check CHECK (template_id BETWEEN 1 AND 8);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
}

// RunMigrations executes all migrations, stopping at the first failure.
func RunMigrations(ctx context.Context, db Execer, logger *zap.Logger) error {
	logger.Info("starting database migrations", zap.Int("count", len(Migrations)))

	for _, m := range Migrations {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			logger.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		logger.Info("migration completed", zap.String("name", m.Name))
	}

	logger.Info("all migrations completed successfully")
	return nil
}
