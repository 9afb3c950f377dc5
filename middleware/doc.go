// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Authentication

RequireAuth validates the bearer access token and resolves the user id:

	withAuth := middleware.RequireAuth(accessIssuer)
	mux.HandleFunc("POST /polls", middleware.WithLogging(withAuth(handler)))

Handlers behind it read the identity from the request context:

	userID := middleware.UserIDFromContext(r.Context())

Missing or invalid tokens get a 401 before the handler runs.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Service Errors

HandleServiceError maps service-layer errors to responses. A
*serr.ServiceError carries its own status and message; anything else is
logged and returned as a 500.
*/
package middleware
