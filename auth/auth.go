// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidUserKey = errors.New("invalid user key")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateUserKey creates an HMAC-based key for a user id.
// This is deterministic and verifiable; every owner operation must
// present it, so no record path is ever touched without an identity.
func GenerateUserKey(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateUserKey checks if the provided key is valid for the user
func ValidateUserKey(userID, userKey, salt string) error {
	expected := GenerateUserKey(userID, salt)
	if !hmac.Equal([]byte(userKey), []byte(expected)) {
		return ErrInvalidUserKey
	}
	return nil
}

// VoteURL builds the shareable voting link for an event. The link is
// public: it carries the owner's user id and the event id, nothing
// secret.
func VoteURL(baseURL, eventID, userID string) string {
	q := url.Values{}
	q.Set("event", eventID)
	q.Set("user", userID)
	return strings.TrimRight(baseURL, "/") + "/vote?" + q.Encode()
}
