// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the poll lifecycle: creation, editing, voting,
closing, and result computation.

# Service

Service wraps a store.Store and owns every business rule. Handlers stay
thin; all validation and precondition checking happens here and failures
come back as *serr.ServiceError with the right HTTP status.

	svc := poll.NewService(st)
	created, err := svc.CreatePoll(ctx, req)

# Rules

  - A poll has exactly two options, each text or media (image/video/audio)
  - Non-text options need a URL with a matching extension, or the id of a
    previously uploaded media blob
  - Only the owner may edit or close a poll; closed polls are immutable
  - A user votes at most once per poll; the unique constraint in the votes
    table backs the in-transaction check, so concurrent duplicates lose
  - Votes on closed polls are rejected
  - Results are sealed until the poll closes, then report counts and
    percentages in option creation order

Creation and voting run inside store.WithinTx so a poll is never persisted
without both options and a vote's precondition checks and insert are atomic.
*/
package poll
