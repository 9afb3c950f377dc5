// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Faceoff API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Identity (public):

	POST /auth/register - Create account, returns token pair
	POST /auth/login    - Exchange credentials for a token pair
	POST /auth/refresh  - Exchange a refresh token for a new access token

Polls (authenticated routes require a bearer access token):

	POST /polls            - Create poll (auth)
	GET  /polls            - List polls with pagination
	GET  /polls/{id}       - Poll details with options
	PUT  /polls/{id}       - Edit question/options (auth, owner)
	POST /polls/{id}/close - Seal the poll (auth, owner)

Voting:

	POST /polls/{id}/vote - Cast a vote (auth)

Results (public, closed polls only):

	GET /polls/{id}/results

Media:

	POST /media/upload  - Upload option media (auth)
	GET  /media/{file}  - Serve an uploaded blob

# Handler Initialization

The router builds the token issuers, media store and poll service, then
injects them into the handlers:

	svc := poll.NewService(st)
	pollHandler := handlers.NewPollHandler(svc)

Every route is wrapped in request logging; protected routes additionally go
through middleware.RequireAuth.
*/
package router
