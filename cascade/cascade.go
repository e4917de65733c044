// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cascade implements the cross-record cleanup that follows
// people and tribe edits. The operations are best effort, not
// transactional: the first failing write aborts the remaining batch and
// already-applied updates stay applied.
package cascade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
)

// DeletePerson removes the person record and strips its id from every
// tribe member list. The person is deleted first, matching the original
// ordering; a later member-list write failure leaves some tribes
// referencing a dead id, which the next read tolerates.
func DeletePerson(ctx context.Context, st store.Store, uid, personID string) error {
	tribes := map[string]models.Tribe{}
	if _, err := st.Read(ctx, store.TribesPath(uid), &tribes); err != nil {
		return fmt.Errorf("read tribes: %w", err)
	}

	updates := map[string][]string{}
	for tribeID, tribe := range tribes {
		if !containsID(tribe.Members, personID) {
			continue
		}
		kept := make([]string, 0, len(tribe.Members))
		for _, id := range tribe.Members {
			if id != personID {
				kept = append(kept, id)
			}
		}
		updates[store.TribePath(uid, tribeID)+"/members"] = kept
	}

	if err := st.Delete(ctx, store.PersonPath(uid, personID)); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}

	for path, members := range updates {
		if err := st.Write(ctx, path, members); err != nil {
			return fmt.Errorf("update tribe members: %w", err)
		}
	}

	slog.Info("person deleted", "person_id", personID, "tribes_updated", len(updates))
	return nil
}

// PropagateTribeMembers reconciles event participant sets after a
// tribe's membership changed. Every event bound to the tribe keeps only
// participants whose memberId survives in members; responses without a
// memberId cannot be attributed and are always kept. The first failing
// event write aborts the rest.
func PropagateTribeMembers(ctx context.Context, st store.Store, uid, tribeID string, members []string) error {
	events := map[string]models.Event{}
	if _, err := st.Read(ctx, store.EventsPath(uid), &events); err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	updated := 0
	for eventID, ev := range events {
		if ev.TribeID != tribeID {
			continue
		}
		filtered := map[string]models.ParticipantResponse{}
		dropped := 0
		for name, p := range ev.Participants {
			if p.MemberID != "" && !containsID(members, p.MemberID) {
				dropped++
				continue
			}
			filtered[name] = p
		}
		if dropped == 0 {
			continue
		}
		path := store.EventPath(uid, eventID) + "/participants"
		if err := st.Write(ctx, path, filtered); err != nil {
			return fmt.Errorf("update event %s participants: %w", eventID, err)
		}
		updated++
	}

	if updated > 0 {
		slog.Info("tribe membership propagated", "tribe_id", tribeID, "events_updated", updated)
	}
	return nil
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
