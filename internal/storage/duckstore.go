// duckstore.go - DuckDB-backed template store
package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/marcboeker/go-duckdb"

	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
)

// DuckOptions tunes the DuckDB connection.
type DuckOptions struct {
	MemoryLimit string // e.g. "256MB"
	Threads     int
}

// DuckStore persists templates in a DuckDB database file.
type DuckStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
	log    *log.Logger
}

const templateColumns = `id, name, description, layout_json, width, height, required_fields,
	preview_image, category, is_public, is_active, created_at, updated_at`

// OpenDuckStore opens (or creates) the database at dbPath and makes sure the
// templates table exists. An empty path opens an in-memory database.
func OpenDuckStore(dbPath string, opts DuckOptions, logger *log.Logger) (*DuckStore, error) {
	logger = logging.OrDiscard(logger)
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	logger.Infof("opening database at %q", dbPath)

	pragmas := []string{"PRAGMA enable_progress_bar=false"}
	if opts.MemoryLimit != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA memory_limit='%s'", strings.ReplaceAll(opts.MemoryLimit, "'", "")))
	}
	if opts.Threads > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA threads=%d", opts.Threads))
	}

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return fmt.Errorf("%s: %w", pragma, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			id              VARCHAR PRIMARY KEY,
			name            VARCHAR NOT NULL,
			description     VARCHAR NOT NULL DEFAULT '',
			layout_json     VARCHAR NOT NULL DEFAULT '{}',
			width           DOUBLE NOT NULL,
			height          DOUBLE NOT NULL,
			required_fields VARCHAR NOT NULL DEFAULT '[]',
			preview_image   VARCHAR NOT NULL DEFAULT '',
			category        VARCHAR NOT NULL,
			is_public       BOOLEAN NOT NULL,
			is_active       BOOLEAN NOT NULL,
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create templates table: %w", err)
	}

	logger.Infof("database ready")
	return &DuckStore{
		db:     db,
		dbPath: dbPath,
		now:    utcNow,
		log:    logger,
	}, nil
}

// Create inserts a new template.
func (s *DuckStore) Create(ctx context.Context, t *models.Template) (*models.Template, error) {
	stored := prepareNew(t, s.now())
	fields, err := encodeFields(stored.RequiredFields)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Name, stored.Description, stored.LayoutJSON,
		stored.Width, stored.Height, fields, stored.PreviewImage, stored.Category,
		stored.IsPublic, stored.IsActive, stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}
	s.log.Debugf("created template %s (%s)", stored.ID, stored.Name)
	return clone(stored), nil
}

// Get retrieves a template by ID.
func (s *DuckStore) Get(ctx context.Context, id string) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", id, err)
	}
	return t, nil
}

// List returns matching templates, newest first.
func (s *DuckStore) List(ctx context.Context, opts ListOptions) ([]*models.Template, error) {
	var (
		conds []string
		args  []interface{}
	)
	if opts.PublicOnly {
		conds = append(conds, "is_public")
	}
	if opts.Category != "" {
		conds = append(conds, "lower(category) = lower(?)")
		args = append(args, opts.Category)
	}

	query := `SELECT ` + templateColumns + ` FROM templates`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Update applies patch to a stored template.
func (s *DuckStore) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	t.UpdatedAt = s.now()

	fields, err := encodeFields(t.RequiredFields)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE templates SET
			name = ?, description = ?, layout_json = ?, width = ?, height = ?,
			required_fields = ?, preview_image = ?, is_public = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Description, t.LayoutJSON, t.Width, t.Height,
		fields, t.PreviewImage, t.IsPublic, t.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating template %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return t, nil
}

// Delete removes a template.
func (s *DuckStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored templates.
func (s *DuckStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return n, nil
}

// Close closes the database. The file is kept.
func (s *DuckStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.log.Infof("closing database at %q", s.dbPath)
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(sc scanner) (*models.Template, error) {
	var (
		t      models.Template
		fields string
	)
	err := sc.Scan(
		&t.ID, &t.Name, &t.Description, &t.LayoutJSON, &t.Width, &t.Height, &fields,
		&t.PreviewImage, &t.Category, &t.IsPublic, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fields), &t.RequiredFields); err != nil {
		return nil, fmt.Errorf("decoding required fields: %w", err)
	}
	if t.RequiredFields == nil {
		t.RequiredFields = []string{}
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func encodeFields(fields []string) (string, error) {
	if fields == nil {
		fields = []string{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding required fields: %w", err)
	}
	return string(b), nil
}
