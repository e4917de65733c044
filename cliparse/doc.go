// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence; unset flags fall back to the environment, then to
defaults where one exists. Required settings:

  - USER_KEY_SALT (--user-salt): secret for user key HMAC
  - DATABASE_URL (-d): connection string, postgres backend only
  - FIREBASE_DATABASE_URL (--firebase-db): firebase backend only

Optional settings:

  - PORT (-p): server port (default: 3419)
  - STORE_BACKEND (-s): memory, sqlite, postgres or firebase
    (default: sqlite, database file tribedates.db)
  - FIREBASE_CREDENTIALS (--firebase-credentials): service account file;
    empty uses application-default credentials
  - BASE_URL (--base-url): public base for generated vote links
*/
package cliparse
