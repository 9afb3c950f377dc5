// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Faceoff API server.

Faceoff is a head-to-head polling service: every poll asks one question and
offers exactly two options, which may be plain text or media (image, video,
audio). Each registered user votes at most once per poll, and results stay
sealed until the poll owner closes the poll.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5001 -d "postgres://..." -jwt-secret "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HS256 signing secret for access/refresh tokens

Optional settings:

  - PORT (-p): Server port (default: 5001)
  - UPLOAD_DIR (-u): Directory for uploaded media (default: uploads)
  - MEDIA_BASE_URL (-m): Public base URL for uploaded media

# Architecture

The server uses a service/store split with dependency injection:

  - handlers: HTTP request handlers (auth, polls, voting, results, media)
  - poll: Poll lifecycle service (validation, voting rules, results)
  - store: Repository interface plus the PostgreSQL implementation
  - media: Upload storage for option media
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth, logging, CORS, JSON helpers
  - models: Request/response and domain types
  - auth: Password hashing and JWT issuing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
