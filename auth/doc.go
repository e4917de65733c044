// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity keys and link generation.

# User Keys

A user key is HMAC-SHA256(user_id, salt), URL-safe base64 without
padding. Keys are deterministic, so the server stores nothing: it
re-derives the expected key and compares in constant time.

	key := auth.GenerateUserKey(userID, cfg.UserKeySalt)
	err := auth.ValidateUserKey(userID, presented, cfg.UserKeySalt)

Rotating the salt invalidates every issued key.

# Vote Links

VoteURL renders the public ballot link for an event,
<base>/vote?event=E&user=U. Possession of the link grants voting, not
ownership; owner operations always require the user key.
*/
package auth
