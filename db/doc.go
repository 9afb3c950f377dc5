// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - users: Accounts with unique username and email
  - polls: Question, active flag, owner
  - voting_options: Exactly two per poll, position 0 and 1
  - votes: One row per (user, poll)
  - media: Uploaded blobs referenced by options

# Relationships

	users 1──* polls
	polls 1──* voting_options
	polls 1──* votes
	users 1──* votes
	polls 1──* media

Option and vote foreign keys cascade on poll deletion.

# Constraints

The vote-integrity rule lives here, not in application code:

  - votes UNIQUE (user_id, poll_id): at most one vote per user per poll
  - voting_options UNIQUE (poll_id, position): stable option ordering
  - voting_options CHECK on media_kind: text, image, video or audio
*/
package db
