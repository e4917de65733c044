// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store. It backs tests and the -store memory
// development mode; nothing survives a restart.
type Memory struct {
	mu     sync.Mutex
	root   map[string]any
	notify *notifier
}

func NewMemory() *Memory {
	return &Memory{
		root:   map[string]any{},
		notify: newNotifier(),
	}
}

func (m *Memory) Write(ctx context.Context, path string, value any) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	v, err := normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	setNode(m.root, segs, v)
	m.mu.Unlock()

	m.notify.changed(segs, m.snapshot)
	return nil
}

func (m *Memory) Read(ctx context.Context, path string, dest any) (bool, error) {
	segs, err := splitPath(path)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	node, ok := getNode(m.root, segs)
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := decodeInto(node, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Append(ctx context.Context, path string, value any) (string, error) {
	if _, err := splitPath(path); err != nil {
		return "", err
	}
	key := uuid.NewString()
	if value == nil {
		return key, nil
	}
	if err := m.Write(ctx, path+"/"+key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	deleteNode(m.root, segs)
	m.mu.Unlock()

	m.notify.changed(segs, m.snapshot)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, path string, fn func(json.RawMessage)) (func(), error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return m.notify.add(ctx, segs, fn, m.snapshot), nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) snapshot(segs []string) json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshotJSON(m.root, segs)
}
