package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
  id         TEXT PRIMARY KEY,
  doc_type   TEXT NOT NULL,
  data       TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_type_created ON documents(doc_type, created_at);
`

// SQLiteStore keeps documents as JSON rows. It backs local development and
// tests where no hosted content store is available.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases shared and serializes writes
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Fetch(ctx context.Context, q Query) ([]Document, error) {
	query := `SELECT id, data FROM documents WHERE doc_type = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{q.Type}
	if q.OrderBy != "" {
		query = `SELECT id, data FROM documents WHERE doc_type = ?
			ORDER BY json_extract(data, ?) DESC, created_at DESC, rowid DESC`
		args = append(args, "$."+q.OrderBy)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		raw := map[string]any{}
		if err := json.Unmarshal([]byte(data), &raw); err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		raw["_id"] = id
		docs = append(docs, project(raw, q.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *SQLiteStore) Create(ctx context.Context, docType string, doc Document) (string, error) {
	id := uuid.NewString()
	if err := s.insert(ctx, `INSERT INTO documents (id, doc_type, data, created_at) VALUES (?, ?, ?, ?)`, id, docType, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) CreateIfMissing(ctx context.Context, docType, id string, doc Document) error {
	return s.insert(ctx, `INSERT OR IGNORE INTO documents (id, doc_type, data, created_at) VALUES (?, ?, ?, ?)`, id, docType, doc)
}

func (s *SQLiteStore) insert(ctx context.Context, stmt, id, docType string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, stmt, id, docType, string(data), s.now().UnixNano())
	return err
}

func (s *SQLiteStore) Patch(ctx context.Context, docType, id string, set Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE id = ? AND doc_type = ?`, id, docType).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	current := map[string]any{}
	if err := json.Unmarshal([]byte(data), &current); err != nil {
		return fmt.Errorf("document %s: %w", id, err)
	}
	for k, v := range set {
		current[k] = v
	}
	updated, err := json.Marshal(current)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE documents SET data = ? WHERE id = ?`, string(updated), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, docType, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND doc_type = ?`, id, docType)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
