// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
	"github.com/danielhkuo/tribedates/testutil"
)

func TestTribeCreate(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	p1 := testutil.SeedPerson(t, st, uid, "Ada", "Lovelace")
	p2 := testutil.SeedPerson(t, st, uid, "Grace", "Hopper")

	req := testutil.MakeRequest("POST", "/tribes",
		models.TribeRequest{Name: "Pioneers", Members: []string{p1, p2, p1}}, nil)
	w := httptest.NewRecorder()

	serveOwner(cfg, handler.Create, w, req, uid, key)

	testutil.AssertStatus(t, w, 201)

	var tribe models.Tribe
	testutil.AssertJSON(t, w, &tribe)
	if tribe.ID == "" {
		t.Fatal("Expected a generated tribe id")
	}
	// Duplicate member ids collapse.
	if len(tribe.Members) != 2 {
		t.Errorf("Expected deduped members, got %v", tribe.Members)
	}
}

func TestTribeCreateValidation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	tests := []struct {
		name string
		body models.TribeRequest
	}{
		{"missing name", models.TribeRequest{Members: []string{"p1"}}},
		{"no members", models.TribeRequest{Name: "Pioneers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/tribes", tt.body, nil)
			w := httptest.NewRecorder()

			serveOwner(cfg, handler.Create, w, req, uid, key)
			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestTribeList(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	testutil.SeedTribe(t, st, uid, "Runners", []string{"p1"})
	testutil.SeedTribe(t, st, uid, "Climbers", []string{"p2"})

	req := testutil.MakeRequest("GET", "/tribes", nil, nil)
	w := httptest.NewRecorder()

	serveOwner(cfg, handler.List, w, req, uid, key)

	testutil.AssertStatus(t, w, 200)

	var tribes []models.Tribe
	testutil.AssertJSON(t, w, &tribes)
	if len(tribes) != 2 {
		t.Fatalf("Expected 2 tribes, got %d", len(tribes))
	}
	// Sorted by name.
	if tribes[0].Name != "Climbers" || tribes[1].Name != "Runners" {
		t.Errorf("Unexpected order: %s, %s", tribes[0].Name, tribes[1].Name)
	}
}

func TestTribeUpdatePropagatesToEvents(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	tribeID := testutil.SeedTribe(t, st, uid, "Hikers", []string{"p1", "p2", "p3"})
	eventID := testutil.SeedEvent(t, st, uid, models.Event{
		Title:   "Summit Day",
		TribeID: tribeID,
		Participants: map[string]models.ParticipantResponse{
			"Alice": {Votes: []int{2}, MemberID: "p1"},
			"Bob":   {Votes: []int{0}, MemberID: "p2"},
			"Guest": {Votes: []int{1}},
		},
	})

	req := testutil.MakeRequest("PUT", "/tribes/"+tribeID,
		models.TribeRequest{Name: "Hikers", Members: []string{"p1", "p3"}}, nil)
	req.SetPathValue("id", tribeID)
	w := httptest.NewRecorder()

	serveOwner(cfg, handler.Update, w, req, uid, key)

	testutil.AssertStatus(t, w, 200)

	var ev models.Event
	if _, err := st.Read(context.Background(), store.EventPath(uid, eventID), &ev); err != nil {
		t.Fatal(err)
	}
	if _, ok := ev.Participants["Bob"]; ok {
		t.Error("Removed member's response should be dropped from the event")
	}
	if _, ok := ev.Participants["Alice"]; !ok {
		t.Error("Surviving member's response should be kept")
	}
	if _, ok := ev.Participants["Guest"]; !ok {
		t.Error("Unattributed response should be kept")
	}
}

func TestTribeUpdateNotFound(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	req := testutil.MakeRequest("PUT", "/tribes/nope",
		models.TribeRequest{Name: "Ghosts", Members: []string{"p1"}}, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()

	serveOwner(cfg, handler.Update, w, req, uid, key)
	testutil.AssertStatus(t, w, 404)
}

func TestTribeDelete(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	uid, key := testutil.RegisterTestUser(t, st, cfg)
	handler := NewTribeHandler(st, cfg)

	tribeID := testutil.SeedTribe(t, st, uid, "Hikers", []string{"p1"})

	req := testutil.MakeRequest("DELETE", "/tribes/"+tribeID, nil, nil)
	req.SetPathValue("id", tribeID)
	w := httptest.NewRecorder()

	serveOwner(cfg, handler.Delete, w, req, uid, key)

	testutil.AssertStatus(t, w, 204)

	var tribe models.Tribe
	found, _ := st.Read(context.Background(), store.TribePath(uid, tribeID), &tribe)
	if found {
		t.Error("Tribe still present after delete")
	}
}
