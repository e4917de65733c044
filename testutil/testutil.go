// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/tribedates/auth"
	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
)

// SetupTestStore returns a fresh in-memory document store.
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()

	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		StoreBackend: "memory",
		UserKeySalt:  "test-user-salt",
		BaseURL:      "http://localhost:3419",
	}
}

// RegisterTestUser writes a profile and returns the user's id and key
func RegisterTestUser(t *testing.T, st store.Store, cfg cliparse.Config) (userID, userKey string) {
	t.Helper()

	userID, err := auth.GenerateID(16)
	if err != nil {
		t.Fatalf("Failed to generate user id: %v", err)
	}
	userKey = auth.GenerateUserKey(userID, cfg.UserKeySalt)

	profile := models.Profile{DisplayName: "Test User", Created: time.Now().UTC()}
	if err := st.Write(context.Background(), store.ProfilePath(userID), profile); err != nil {
		t.Fatalf("Failed to write test profile: %v", err)
	}

	return userID, userKey
}

// SeedPerson creates a person record and returns its id
func SeedPerson(t *testing.T, st store.Store, userID, first, last string) string {
	t.Helper()

	id, err := st.Append(context.Background(), store.PeoplePath(userID), nil)
	if err != nil {
		t.Fatalf("Failed to allocate person id: %v", err)
	}
	person := models.Person{ID: id, FirstName: first, LastName: last, Created: time.Now().UTC()}
	if err := st.Write(context.Background(), store.PersonPath(userID, id), person); err != nil {
		t.Fatalf("Failed to seed person: %v", err)
	}
	return id
}

// SeedTribe creates a tribe record and returns its id
func SeedTribe(t *testing.T, st store.Store, userID, name string, members []string) string {
	t.Helper()

	id, err := st.Append(context.Background(), store.TribesPath(userID), nil)
	if err != nil {
		t.Fatalf("Failed to allocate tribe id: %v", err)
	}
	tribe := models.Tribe{ID: id, Name: name, Members: members, Created: time.Now().UTC()}
	if err := st.Write(context.Background(), store.TribePath(userID, id), tribe); err != nil {
		t.Fatalf("Failed to seed tribe: %v", err)
	}
	return id
}

// SeedEvent creates an event record and returns its id
func SeedEvent(t *testing.T, st store.Store, userID string, ev models.Event) string {
	t.Helper()

	id, err := st.Append(context.Background(), store.EventsPath(userID), nil)
	if err != nil {
		t.Fatalf("Failed to allocate event id: %v", err)
	}
	ev.ID = id
	if ev.Participants == nil {
		ev.Participants = map[string]models.ParticipantResponse{}
	}
	if ev.Created.IsZero() {
		ev.Created = time.Now().UTC()
	}
	if err := st.Write(context.Background(), store.EventPath(userID, id), ev); err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// UserHeaders returns the credential headers for owner endpoints
func UserHeaders(userID, userKey string) map[string]string {
	return map[string]string{
		"X-User-ID":  userID,
		"X-User-Key": userKey,
	}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
