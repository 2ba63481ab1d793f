package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS estudiantes (
		id BIGSERIAL PRIMARY KEY,
		cedula TEXT NOT NULL UNIQUE,
		nombre TEXT NOT NULL,
		email TEXT NOT NULL,
		semestre INT NOT NULL CHECK (semestre > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cursos (
		id BIGSERIAL PRIMARY KEY,
		codigo TEXT NOT NULL UNIQUE,
		nombre TEXT NOT NULL,
		creditos INT NOT NULL CHECK (creditos > 0),
		horario TEXT NOT NULL,
		cupo_maximo INT NOT NULL CHECK (cupo_maximo > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS matriculas (
		id TEXT PRIMARY KEY,
		estudiante_id BIGINT NOT NULL REFERENCES estudiantes(id),
		curso_id BIGINT NOT NULL REFERENCES cursos(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (estudiante_id, curso_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matriculas_estudiante ON matriculas (estudiante_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matriculas_curso ON matriculas (curso_id)`,
}

// EnsureSchema creates the tables the service relies on if they do not exist.
// Cascade semantics for deletes are handled explicitly in the repositories, so
// the foreign keys carry no ON DELETE action.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
