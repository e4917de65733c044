// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SQL stores documents in a single path-keyed table, one row per record
// subtree, usable with both of the supported drivers (sqlite and
// postgres). Rows hold JSON values; no row is ever an ancestor of
// another, so a path resolves to at most one of: an exact row, a nested
// value inside an ancestor row, or an assembly of descendant rows.
type SQL struct {
	db     *sql.DB
	mu     sync.Mutex
	notify *notifier
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS document (
    path TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// NewSQL prepares the document table and returns the store. Safe to call
// against an existing database - the schema uses IF NOT EXISTS.
func NewSQL(db *sql.DB) (*SQL, error) {
	if _, err := db.Exec(sqlSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQL{db: db, notify: newNotifier()}, nil
}

func (s *SQL) Write(ctx context.Context, path string, value any) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	v, err := normalize(value)
	if err != nil {
		return err
	}
	if v == nil {
		return s.Delete(ctx, path)
	}

	s.mu.Lock()
	err = s.write(ctx, segs, v)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify.changed(segs, s.snapshot)
	return nil
}

func (s *SQL) write(ctx context.Context, segs []string, v any) error {
	asegs, tree, found, err := s.ancestorRow(ctx, segs)
	if err != nil {
		return err
	}
	if found {
		root, ok := tree.(map[string]any)
		if !ok {
			// Scalar ancestor - the write replaces it wholesale.
			root = map[string]any{}
		}
		setNode(root, segs[len(asegs):], v)
		return s.upsert(ctx, joinPath(asegs), root)
	}

	// Claim the subtree: drop any descendant rows, then own the path.
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM document WHERE path LIKE $1`, joinPath(segs)+"/%"); err != nil {
		return fmt.Errorf("failed to clear subtree: %w", err)
	}
	return s.upsert(ctx, joinPath(segs), v)
}

func (s *SQL) Read(ctx context.Context, path string, dest any) (bool, error) {
	segs, err := splitPath(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	node, found, err := s.load(ctx, segs)
	s.mu.Unlock()
	if err != nil || !found {
		return false, err
	}
	if err := decodeInto(node, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQL) Append(ctx context.Context, path string, value any) (string, error) {
	if _, err := splitPath(path); err != nil {
		return "", err
	}
	key := uuid.NewString()
	if value == nil {
		return key, nil
	}
	if err := s.Write(ctx, path+"/"+key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *SQL) Delete(ctx context.Context, path string) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.delete(ctx, segs)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify.changed(segs, s.snapshot)
	return nil
}

func (s *SQL) delete(ctx context.Context, segs []string) error {
	p := joinPath(segs)
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM document WHERE path = $1 OR path LIKE $2`, p, p+"/%"); err != nil {
		return fmt.Errorf("failed to delete subtree: %w", err)
	}

	asegs, tree, found, err := s.ancestorRow(ctx, segs)
	if err != nil || !found {
		return err
	}
	root, ok := tree.(map[string]any)
	if !ok {
		return nil
	}
	deleteNode(root, segs[len(asegs):])
	if len(root) == 0 {
		_, err = s.db.ExecContext(ctx, `DELETE FROM document WHERE path = $1`, joinPath(asegs))
		if err != nil {
			return fmt.Errorf("failed to delete emptied record: %w", err)
		}
		return nil
	}
	return s.upsert(ctx, joinPath(asegs), root)
}

func (s *SQL) Subscribe(ctx context.Context, path string, fn func(json.RawMessage)) (func(), error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return s.notify.add(ctx, segs, fn, s.snapshot), nil
}

func (s *SQL) Close() error { return s.db.Close() }

// load resolves a path against the row layout: exact row, slice of an
// ancestor row, or tree assembled from descendant rows.
func (s *SQL) load(ctx context.Context, segs []string) (any, bool, error) {
	p := joinPath(segs)

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM document WHERE path = $1`, p).Scan(&raw)
	if err == nil {
		var node any
		if err := json.Unmarshal([]byte(raw), &node); err != nil {
			return nil, false, fmt.Errorf("corrupt record at %s: %w", p, err)
		}
		return node, node != nil, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("failed to query record: %w", err)
	}

	asegs, tree, found, err := s.ancestorRow(ctx, segs)
	if err != nil {
		return nil, false, err
	}
	if found {
		node, ok := getNode(tree, segs[len(asegs):])
		return node, ok, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, value FROM document WHERE path LIKE $1`, p+"/%")
	if err != nil {
		return nil, false, fmt.Errorf("failed to query subtree: %w", err)
	}
	defer rows.Close()

	root := map[string]any{}
	assembled := false
	for rows.Next() {
		var childPath, childRaw string
		if err := rows.Scan(&childPath, &childRaw); err != nil {
			return nil, false, fmt.Errorf("failed to scan record: %w", err)
		}
		var node any
		if err := json.Unmarshal([]byte(childRaw), &node); err != nil {
			return nil, false, fmt.Errorf("corrupt record at %s: %w", childPath, err)
		}
		childSegs, err := splitPath(childPath)
		if err != nil {
			return nil, false, err
		}
		setNode(root, childSegs[len(segs):], node)
		assembled = true
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if !assembled {
		return nil, false, nil
	}
	return root, true, nil
}

// ancestorRow finds the closest strict ancestor of segs that owns a row.
func (s *SQL) ancestorRow(ctx context.Context, segs []string) ([]string, any, bool, error) {
	for i := len(segs) - 1; i >= 1; i-- {
		p := joinPath(segs[:i])
		var raw string
		err := s.db.QueryRowContext(ctx,
			`SELECT value FROM document WHERE path = $1`, p).Scan(&raw)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, nil, false, fmt.Errorf("failed to query ancestor: %w", err)
		}
		var tree any
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return nil, nil, false, fmt.Errorf("corrupt record at %s: %w", p, err)
		}
		return segs[:i], tree, true, nil
	}
	return nil, nil, false, nil
}

func (s *SQL) upsert(ctx context.Context, path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (path, value) VALUES ($1, $2)
		ON CONFLICT (path) DO UPDATE SET value = excluded.value
	`, path, string(raw))
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (s *SQL) snapshot(segs []string) json.RawMessage {
	s.mu.Lock()
	node, found, err := s.load(context.Background(), segs)
	s.mu.Unlock()
	if err != nil || !found {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}
