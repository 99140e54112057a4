package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	_ "modernc.org/sqlite"
)

// sqliteDriver is the database/sql driver used for SQLite datasets. Builds
// with cgo switch to the native driver.
var sqliteDriver = "sqlite"

// DB is a SQLite project store.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the project database at the given path.
func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open(sqliteDriver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pdb := &DB{db: db}
	if err := pdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return pdb, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		position REAL NOT NULL,
		category TEXT NOT NULL,
		risk TEXT NOT NULL,
		complexity TEXT NOT NULL,
		timeline TEXT NOT NULL,
		notes TEXT DEFAULT ''
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Projects returns all projects in insertion order.
func (d *DB) Projects(ctx context.Context) ([]model.Project, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT name, position, category, risk, complexity, timeline, COALESCE(notes, '')
		FROM projects
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.Name, &p.Position, &p.Category, &p.Risk, &p.Complexity, &p.Timeline, &p.Notes); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ReplaceProjects swaps the stored portfolio for projects in one transaction.
func (d *DB) ReplaceProjects(ctx context.Context, projects []model.Project) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("clear projects: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (name, position, category, risk, complexity, timeline, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Position, string(p.Category), string(p.Risk),
			string(p.Complexity), string(p.Timeline), p.Notes); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// HasProjectsTable reports whether the database at dbPath has a projects table.
func HasProjectsTable(dbPath string) bool {
	if _, err := os.Stat(dbPath); err != nil {
		return false
	}
	db, err := sql.Open(sqliteDriver, dbPath)
	if err != nil {
		return false
	}
	defer db.Close()

	var tableName string
	err = db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='projects'
	`).Scan(&tableName)
	return err == nil && tableName != ""
}

// LoadSQLite reads and validates the projects table of a SQLite dataset.
func LoadSQLite(ctx context.Context, dbPath string) ([]model.Project, error) {
	if !HasProjectsTable(dbPath) {
		return nil, fmt.Errorf("%s: no projects table", dbPath)
	}
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	projects, err := db.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: read projects: %w", dbPath, err)
	}
	return checked(projects)
}

// SaveSQLite writes projects into the database at dbPath, replacing any
// stored portfolio.
func SaveSQLite(ctx context.Context, dbPath string, projects []model.Project) error {
	db, err := OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.ReplaceProjects(ctx, projects)
}
