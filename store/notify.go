// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"sync"
)

// notifier fans change notifications out to in-process subscribers. It is
// shared by the memory and sql backends; the firebase backend polls
// instead because the Admin SDK exposes no change stream.
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

type subscription struct {
	segs []string
	fn   func(json.RawMessage)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]*subscription)}
}

// add registers fn for path and returns a cancel function. snapshot must
// return the current subtree for the initial delivery. The subscription
// is also torn down when ctx is cancelled.
func (n *notifier) add(ctx context.Context, segs []string, fn func(json.RawMessage), snapshot func([]string) json.RawMessage) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = &subscription{segs: segs, fn: fn}
	n.mu.Unlock()

	// Initial delivery, asynchronous like every later one.
	initial := snapshot(segs)
	go fn(initial)

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}
	return cancel
}

// changed delivers fresh snapshots to every subscriber whose path is
// related to the changed one. Each delivery runs on its own goroutine;
// ordering across deliveries is deliberately unspecified.
func (n *notifier) changed(segs []string, snapshot func([]string) json.RawMessage) {
	n.mu.Lock()
	var pending []*subscription
	for _, sub := range n.subs {
		if pathsRelated(sub.segs, segs) {
			pending = append(pending, sub)
		}
	}
	n.mu.Unlock()

	for _, sub := range pending {
		go sub.fn(snapshot(sub.segs))
	}
}
