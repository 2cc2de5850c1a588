package characters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters/migrations"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SQLiteRepository persists characters in SQLite as JSON documents
type SQLiteRepository struct {
	db  *sql.DB
	ids uuid.Generator
	now func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// OpenSQLite opens a SQLite character store and applies the embedded schema
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, dnderr.InvalidArgument("storage path is required")
	}

	dsn := path
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == MemoryPath {
		// every connection to :memory: is its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		ids: uuid.NewPrefixedGenerator("char"),
		now: time.Now,
	}, nil
}

func applyMigrations(db *sql.DB, fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the SQLite handle
func (s *SQLiteRepository) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create stores a new character
func (s *SQLiteRepository) Create(ctx context.Context, character *Character) error {
	if character == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" {
		character.ID = s.ids.New()
	}

	stored := character.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters (id, owner_id, data, created_at, updated_at, updated_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.OwnerID, string(data),
		toMillis(stored.CreatedAt), toMillis(stored.UpdatedAt), stored.UpdatedBy,
	)
	if isUniqueViolation(err) {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", stored.ID).
			WithMeta("character_id", stored.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// Get retrieves a character by ID
func (s *SQLiteRepository) Get(ctx context.Context, id string) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	return s.get(ctx, s.db, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteRepository) get(ctx context.Context, q queryer, id string) (*Character, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return decodeCharacter(data)
}

// ListByOwner retrieves all characters for a specific owner, ordered by ID
func (s *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM characters WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var result []*Character
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		char, err := decodeCharacter(data)
		if err != nil {
			return nil, err
		}
		result = append(result, char)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	return result, nil
}

// Update merges a partial change inside a transaction
func (s *SQLiteRepository) Update(ctx context.Context, id, actorID string, update *Update) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	char, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(char, actorID, s.now())

	data, err := json.Marshal(char)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE characters SET data = ?, updated_at = ?, updated_by = ? WHERE id = ?`,
		string(data), toMillis(char.UpdatedAt), char.UpdatedBy, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return char, nil
}

// Delete removes a character
func (s *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if n == 0 {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Repository = (*SQLiteRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
