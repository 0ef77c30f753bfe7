// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists tokenized documents and their gold labels in a
// SQLite database. The store is the pipeline's document source: the
// process command writes it, every later stage reads it.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/motel/pkg/types"
)

// Store manages one corpus database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the corpus database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating corpus directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tokens (
			document_id TEXT NOT NULL REFERENCES documents(id),
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			start INTEGER NOT NULL,
			"end" INTEGER NOT NULL,
			PRIMARY KEY (document_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS labels (
			document_id TEXT NOT NULL REFERENCES documents(id),
			position INTEGER NOT NULL,
			PRIMARY KEY (document_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_document ON tokens(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveDocument stores a document, its tokens, and its gold labels in one
// transaction, replacing any previous version of the same document.
func (s *Store) SaveDocument(ctx context.Context, doc types.Document, text string) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM labels WHERE document_id = ?`,
		`DELETE FROM tokens WHERE document_id = ?`,
		`DELETE FROM documents WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, doc.ID); err != nil {
			return fmt.Errorf("clearing document %s: %w", doc.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, text) VALUES (?, ?)`, doc.ID, text,
	); err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.ID, err)
	}

	tokStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tokens (document_id, position, text, start, "end") VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing token insert: %w", err)
	}
	defer tokStmt.Close()

	for pos, tok := range doc.Tokens {
		if _, err := tokStmt.ExecContext(ctx, doc.ID, pos, tok.Text, tok.Start, tok.End); err != nil {
			return fmt.Errorf("inserting token %d of %s: %w", pos, doc.ID, err)
		}
	}

	for _, pos := range doc.Gold {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO labels (document_id, position) VALUES (?, ?)`, doc.ID, pos,
		); err != nil {
			return fmt.Errorf("inserting label %d of %s: %w", pos, doc.ID, err)
		}
	}

	return tx.Commit()
}

// LoadDocuments returns every document in the corpus ordered by ID, with
// tokens in position order and gold labels attached.
func (s *Store) LoadDocuments(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning document id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]types.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.LoadDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadDocument returns one document by ID. A missing ID wraps
// types.ErrInvalidDocument.
func (s *Store) LoadDocument(ctx context.Context, id string) (types.Document, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE id = ?`, id,
	).Scan(&exists)
	if err != nil {
		return types.Document{}, fmt.Errorf("checking document %s: %w", id, err)
	}
	if exists == 0 {
		return types.Document{}, fmt.Errorf("document %s not in corpus %s: %w",
			id, s.path, types.ErrInvalidDocument)
	}

	doc := types.Document{ID: id}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, start, "end" FROM tokens WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return types.Document{}, fmt.Errorf("loading tokens of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tok types.Token
		if err := rows.Scan(&tok.Text, &tok.Start, &tok.End); err != nil {
			return types.Document{}, fmt.Errorf("scanning token of %s: %w", id, err)
		}
		doc.Tokens = append(doc.Tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return types.Document{}, fmt.Errorf("loading tokens of %s: %w", id, err)
	}

	labelRows, err := s.db.QueryContext(ctx,
		`SELECT position FROM labels WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return types.Document{}, fmt.Errorf("loading labels of %s: %w", id, err)
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var pos int
		if err := labelRows.Scan(&pos); err != nil {
			return types.Document{}, fmt.Errorf("scanning label of %s: %w", id, err)
		}
		doc.Gold = append(doc.Gold, pos)
	}
	if err := labelRows.Err(); err != nil {
		return types.Document{}, fmt.Errorf("loading labels of %s: %w", id, err)
	}

	return doc, nil
}
