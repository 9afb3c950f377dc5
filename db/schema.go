// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT,
    oauth_provider TEXT,
    oauth_id TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (oauth_provider, oauth_id)
);

-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    owner_id TEXT NOT NULL REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_polls_owner_id ON polls(owner_id);
CREATE INDEX IF NOT EXISTS idx_polls_is_active ON polls(is_active);

-- Voting options: exactly two per poll, position 0 and 1 in creation order
CREATE TABLE IF NOT EXISTS voting_options (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    position INT NOT NULL,
    media_kind TEXT NOT NULL CHECK (media_kind IN ('text', 'image', 'video', 'audio')),
    locator TEXT NOT NULL,
    description TEXT,
    UNIQUE (poll_id, position)
);

CREATE INDEX IF NOT EXISTS idx_voting_options_poll_id ON voting_options(poll_id);

-- Votes: at most one per (user, poll), enforced here and nowhere else
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES voting_options(id) ON DELETE CASCADE,
    cast_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, poll_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id);
CREATE INDEX IF NOT EXISTS idx_votes_option_id ON votes(option_id);

-- Uploaded media blobs
CREATE TABLE IF NOT EXISTS media (
    id TEXT PRIMARY KEY,
    poll_id TEXT REFERENCES polls(id) ON DELETE SET NULL,
    media_kind TEXT NOT NULL,
    file_path TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_media_poll_id ON media(poll_id);
`
