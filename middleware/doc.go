// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

WithLogging logs request start and completion with duration. WithUser
authenticates the X-User-ID / X-User-Key header pair and rejects the
request with 401 before the wrapped handler runs; handlers read the
resolved id back with UserID. CORS answers preflight requests and allows
the frontend origins.

JSONResponse, ErrorResponse and ParseJSONBody keep handler bodies small.
*/
package middleware
