// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schedule holds the pure scheduling core: no I/O, no store access.

# Editor

Editor builds the ordered date-option list during event authoring.
Specific dates and ranges dedupe by (start, end); the day-of-week option
is singular, a new weekday selection replaces the old one. BuildOptions
applies the same rules to a dates list arriving in one request.

# Aggregation

TallyVotes counts yes/no per option index, skipping participants whose
vote array does not reach the index. BestOptions picks every index tied
for the most yes votes, or nothing when that maximum is zero. DisplayRows
expands a day-of-week option into one row per weekday for summary tables;
the rows share the option's single tally because they share its vote slot.

# Reconciliation

ReconcileVotes resizes participant vote arrays after a dates edit: pad
with undecided, truncate the excess. Storage is positional, so a mid-list
removal reattributes later votes by index; see ReconcileVotes for the
caveat.
*/
package schedule
