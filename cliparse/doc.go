// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5001)
  - DatabaseURL: PostgreSQL connection string (required)
  - JWTSecret: HS256 signing secret (required)
  - UploadDir: Directory for uploaded media (default: uploads)
  - MediaBaseURL: Public base URL for uploaded media

# CLI Flags

	-p          Server port
	-d          Database URL
	-u          Media upload directory
	-m          Media base URL
	-jwt-secret JWT signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	UPLOAD_DIR     → -u
	MEDIA_BASE_URL → -m
	JWT_SECRET     → -jwt-secret

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
*/
package cliparse
