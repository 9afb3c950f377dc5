// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Faceoff API.

# Handler Types

Each handler is a struct with its dependencies injected at construction:

  - AuthHandler: Registration, login, token refresh
  - PollHandler: Poll lifecycle (create, read, list, update, close)
  - VotingHandler: Vote submission
  - ResultsHandler: Sealed result retrieval
  - MediaHandler: Option media uploads

Poll, voting and results handlers share a single poll.Service:

	svc := poll.NewService(st)
	pollHandler := handlers.NewPollHandler(svc)

# Poll Lifecycle

Polls have two states: active → closed. Closing is terminal.

	POST /polls              → CreatePoll (exactly two options)
	GET  /polls              → ListPolls (page, filter, order)
	GET  /polls/{id}         → GetPoll
	PUT  /polls/{id}         → UpdatePoll (owner, active only)
	POST /polls/{id}/close   → ClosePoll (owner only, idempotent)

# Voting

	POST /polls/{id}/vote → Vote

One vote per user per poll, enforced both by an in-transaction check and a
unique constraint. A second vote returns 409.

# Results

	GET /polls/{id}/results → GetResults

Results return 403 while the poll is still active and vote counts plus
percentages after it closes.

# Media Uploads

	POST /media/upload → Upload

Multipart form with "file" and "media_type" fields. The returned media_id
can be referenced from a poll option instead of an external URL.

Authenticated routes read the user id that middleware.RequireAuth resolved
from the bearer token; handlers never parse credentials themselves.
*/
package handlers
