// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the hierarchical document store the service keeps
its records in.

# Contract

	Write(path, value)   replace the whole subtree at path
	Read(path, dest)     point-in-time snapshot
	Append(path, value)  allocate a uniquely keyed child, return the key
	Delete(path)         remove the subtree
	Subscribe(path, fn)  fn(current) now and after every change

Individual reads and writes are atomic per path. There is no
compare-and-swap: concurrent read-modify-write cycles are last writer
wins, and subscription delivery is asynchronous and unordered relative to
local writes.

# Backends

  - Memory: in-process tree, used by tests and development.
  - SQL: one path-keyed JSON row per record, over modernc sqlite or
    lib/pq postgres; change notification is in-process only.
  - Firebase: Realtime Database via the Admin SDK; Subscribe polls
    because the SDK has no change stream.

# Paths

All records live under a per-user namespace:

	users/{uid}/people/{id}
	users/{uid}/tribes/{id}
	users/{uid}/events/{id}

PeoplePath and friends build these; handlers must never construct a path
without a resolved user identity.
*/
package store
