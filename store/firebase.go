// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// Firebase backs the store with a Firebase Realtime Database through the
// Admin SDK. The SDK offers no streaming listener, so Subscribe polls
// snapshots on a fixed interval and reports changes; within one process
// that still satisfies the at-least-once, eventually-consistent contract.
type Firebase struct {
	client *db.Client

	pollInterval time.Duration

	mu     sync.Mutex
	closed chan struct{}
}

// NewFirebase connects to the Realtime Database at databaseURL using the
// service-account credentials file. An empty credentialsFile falls back
// to application-default credentials.
func NewFirebase(ctx context.Context, credentialsFile, databaseURL string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %w", err)
	}
	client, err := app.DatabaseWithURL(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("firebase database client failed: %w", err)
	}
	return &Firebase{
		client:       client,
		pollInterval: 2 * time.Second,
		closed:       make(chan struct{}),
	}, nil
}

func (f *Firebase) Write(ctx context.Context, path string, value any) error {
	if _, err := splitPath(path); err != nil {
		return err
	}
	if err := f.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("firebase write %s: %w", path, err)
	}
	return nil
}

func (f *Firebase) Read(ctx context.Context, path string, dest any) (bool, error) {
	if _, err := splitPath(path); err != nil {
		return false, err
	}
	var raw json.RawMessage
	if err := f.client.NewRef(path).Get(ctx, &raw); err != nil {
		return false, fmt.Errorf("firebase read %s: %w", path, err)
	}
	if isNullSnapshot(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	return true, nil
}

func (f *Firebase) Append(ctx context.Context, path string, value any) (string, error) {
	if _, err := splitPath(path); err != nil {
		return "", err
	}
	ref, err := f.client.NewRef(path).Push(ctx, value)
	if err != nil {
		return "", fmt.Errorf("firebase append %s: %w", path, err)
	}
	return ref.Key, nil
}

func (f *Firebase) Delete(ctx context.Context, path string) error {
	if _, err := splitPath(path); err != nil {
		return err
	}
	if err := f.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("firebase delete %s: %w", path, err)
	}
	return nil
}

func (f *Firebase) Subscribe(ctx context.Context, path string, fn func(snapshot json.RawMessage)) (func(), error) {
	if _, err := splitPath(path); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		ticker := time.NewTicker(f.pollInterval)
		defer ticker.Stop()

		var last json.RawMessage
		first := true
		for {
			var raw json.RawMessage
			if err := f.client.NewRef(path).Get(ctx, &raw); err != nil {
				slog.Warn("firebase poll failed", "path", path, "error", err)
			} else if first || !bytes.Equal(raw, last) {
				last = raw
				first = false
				if isNullSnapshot(raw) {
					raw = json.RawMessage("null")
				}
				fn(raw)
			}

			select {
			case <-done:
				return
			case <-f.closed:
				return
			case <-ctxDone(ctx):
				return
			case <-ticker.C:
			}
		}
	}()
	return cancel, nil
}

func (f *Firebase) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func isNullSnapshot(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func ctxDone(ctx context.Context) <-chan struct{} {
	if ctx == nil {
		return nil
	}
	return ctx.Done()
}
