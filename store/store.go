// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadPath reports an empty or malformed record path.
	ErrBadPath = errors.New("invalid store path")
)

// Store is a hierarchical document store. Paths are slash-separated;
// a write replaces the entire subtree at its path. Reads are
// point-in-time snapshots. Subscribe invokes the callback with the
// current subtree immediately and again after every change; delivery is
// asynchronous, at-least-once, and not ordered relative to local writes.
type Store interface {
	// Write replaces the subtree at path with value.
	Write(ctx context.Context, path string, value any) error

	// Read snapshots the subtree at path into dest and reports whether
	// anything exists there.
	Read(ctx context.Context, path string, dest any) (bool, error)

	// Append allocates a new uniquely-keyed child under path, writes
	// value there when non-nil, and returns the child key.
	Append(ctx context.Context, path string, value any) (string, error)

	// Delete removes the subtree at path. Deleting an absent path is not
	// an error.
	Delete(ctx context.Context, path string) error

	// Subscribe registers fn for the subtree at path and returns a
	// cancel function. The snapshot passed to fn is "null" when the
	// subtree is absent.
	Subscribe(ctx context.Context, path string, fn func(snapshot json.RawMessage)) (func(), error)

	Close() error
}

// User-namespace path builders. Every record lives under the owning
// user's subtree; callers must resolve an identity before touching these.

func PeoplePath(uid string) string  { return "users/" + uid + "/people" }
func TribesPath(uid string) string  { return "users/" + uid + "/tribes" }
func EventsPath(uid string) string  { return "users/" + uid + "/events" }
func ProfilePath(uid string) string { return "users/" + uid + "/profile" }

func PersonPath(uid, id string) string { return PeoplePath(uid) + "/" + id }
func TribePath(uid, id string) string  { return TribesPath(uid) + "/" + id }
func EventPath(uid, id string) string  { return EventsPath(uid) + "/" + id }

// ValidSegment reports whether s can stand as one path segment. Values
// taken from untrusted input must pass this check before being joined
// into a path, or a crafted value containing "/" escapes into a sibling
// subtree.
func ValidSegment(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.Contains(s, "/")
}

func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, ErrBadPath
	}
	segs := strings.Split(trimmed, "/")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadPath, path)
		}
	}
	return segs, nil
}

func joinPath(segs []string) string {
	return strings.Join(segs, "/")
}

// pathsRelated reports whether one path is the other or an ancestor of
// the other, i.e. whether a change at b is visible from a subscription
// at a.
func pathsRelated(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalize round-trips value through JSON so every backend stores the
// same representation regardless of the Go type written.
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return v, nil
}

// getNode walks segs down from root. The boolean is false when the path
// leads nowhere or to a JSON null.
func getNode(root any, segs []string) (any, bool) {
	node := root
	for _, s := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[s]
		if !ok {
			return nil, false
		}
	}
	if node == nil {
		return nil, false
	}
	return node, true
}

// setNode replaces the subtree at segs under root, creating intermediate
// objects as needed. A nil value deletes instead, mirroring the
// write-null-deletes rule of hosted document stores.
func setNode(root map[string]any, segs []string, value any) {
	if value == nil {
		deleteNode(root, segs)
		return
	}
	m := root
	for _, s := range segs[:len(segs)-1] {
		child, ok := m[s].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[s] = child
		}
		m = child
	}
	m[segs[len(segs)-1]] = value
}

// deleteNode removes the subtree at segs and prunes any parents left
// empty, so absent and empty subtrees stay indistinguishable.
func deleteNode(root map[string]any, segs []string) {
	if len(segs) == 0 {
		return
	}
	m := root
	parents := make([]map[string]any, 0, len(segs))
	for _, s := range segs[:len(segs)-1] {
		child, ok := m[s].(map[string]any)
		if !ok {
			return
		}
		parents = append(parents, m)
		m = child
	}
	delete(m, segs[len(segs)-1])

	for i := len(parents) - 1; i >= 0; i-- {
		if len(m) > 0 {
			break
		}
		delete(parents[i], segs[i])
		m = parents[i]
	}
}

func snapshotJSON(root any, segs []string) json.RawMessage {
	node, ok := getNode(root, segs)
	if !ok {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}

func decodeInto(node any, dest any) error {
	raw, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return nil
}
