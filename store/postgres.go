// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/faceoff/models"
)

const (
	errUniqueViolation     pq.ErrorCode = "23505"
	errForeignKeyViolation pq.ErrorCode = "23503"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// PostgresStore implements Store over database/sql with the lib/pq driver.
type PostgresStore struct {
	conn dbtx
	db   *sql.DB // nil when this store is a transactional view
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{conn: db, db: db}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	if s.db == nil {
		// Already inside a transaction; reuse it.
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&PostgresStore{conn: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, u models.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, oauth_provider, oauth_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.OAuthProvider, u.OAuthID, createdAt)
	if err != nil {
		if isPqErr(err, errUniqueViolation) {
			return ErrExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id string) (models.User, error) {
	return s.scanUser(s.conn.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, oauth_provider, oauth_id, created_at
		FROM users WHERE id = $1
	`, id))
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.scanUser(s.conn.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, oauth_provider, oauth_id, created_at
		FROM users WHERE username = $1
	`, username))
}

func (s *PostgresStore) UserByOAuth(ctx context.Context, provider, oauthID string) (models.User, error) {
	return s.scanUser(s.conn.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, oauth_provider, oauth_id, created_at
		FROM users WHERE oauth_provider = $1 AND oauth_id = $2
	`, provider, oauthID))
}

func (s *PostgresStore) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var passwordHash sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &passwordHash, &u.OAuthProvider, &u.OAuthID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.PasswordHash = passwordHash.String

	return u, nil
}

// Polls and options

func (s *PostgresStore) CreatePoll(ctx context.Context, p models.Poll) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO polls (id, question, is_active, created_at, owner_id)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Question, p.IsActive, createdAt, p.OwnerID)
	if err != nil {
		if isPqErr(err, errUniqueViolation) {
			return ErrExists
		}
		return fmt.Errorf("insert poll: %w", err)
	}

	return nil
}

func (s *PostgresStore) InsertOption(ctx context.Context, o models.VotingOption, position int) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO voting_options (id, poll_id, position, media_kind, locator, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.PollID, position, o.MediaKind, o.Locator, o.Description)
	if err != nil {
		if isPqErr(err, errUniqueViolation) {
			return ErrExists
		}
		if isPqErr(err, errForeignKeyViolation) {
			return ErrNotFound
		}
		return fmt.Errorf("insert option: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var p models.Poll
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, question, is_active, created_at, owner_id
		FROM polls WHERE id = $1
	`, id).Scan(&p.ID, &p.Question, &p.IsActive, &p.CreatedAt, &p.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Poll{}, ErrNotFound
		}
		return models.Poll{}, fmt.Errorf("scan poll: %w", err)
	}

	return p, nil
}

func (s *PostgresStore) OptionsForPoll(ctx context.Context, pollID string) ([]models.VotingOption, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, poll_id, media_kind, locator, description
		FROM voting_options
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.VotingOption{}
	for rows.Next() {
		var o models.VotingOption
		if err := rows.Scan(&o.ID, &o.PollID, &o.MediaKind, &o.Locator, &o.Description); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, o)
	}

	return options, rows.Err()
}

func (s *PostgresStore) GetOption(ctx context.Context, id string) (models.VotingOption, error) {
	var o models.VotingOption
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, poll_id, media_kind, locator, description
		FROM voting_options WHERE id = $1
	`, id).Scan(&o.ID, &o.PollID, &o.MediaKind, &o.Locator, &o.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VotingOption{}, ErrNotFound
		}
		return models.VotingOption{}, fmt.Errorf("scan option: %w", err)
	}

	return o, nil
}

func (s *PostgresStore) UpdatePollQuestion(ctx context.Context, pollID, question string) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE polls SET question = $1 WHERE id = $2
	`, question, pollID)
	if err != nil {
		return fmt.Errorf("update poll question: %w", err)
	}

	return requireRows(res)
}

func (s *PostgresStore) UpdateOption(ctx context.Context, o models.VotingOption) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE voting_options
		SET media_kind = $1, locator = $2, description = $3
		WHERE id = $4
	`, o.MediaKind, o.Locator, o.Description, o.ID)
	if err != nil {
		return fmt.Errorf("update option: %w", err)
	}

	return requireRows(res)
}

func (s *PostgresStore) ClosePoll(ctx context.Context, pollID string) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE polls SET is_active = FALSE WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("close poll: %w", err)
	}

	return requireRows(res)
}

func (s *PostgresStore) ListPolls(ctx context.Context, r ListPollsRequest) ([]models.Poll, error) {
	query := `
		SELECT id, question, is_active, created_at, owner_id
		FROM polls
	`
	switch r.Filter {
	case FilterActive:
		query += " WHERE is_active = TRUE"
	case FilterClosed:
		query += " WHERE is_active = FALSE"
	}
	if r.Order == "asc" {
		query += " ORDER BY created_at ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}
	query += " LIMIT $1 OFFSET $2"

	rows, err := s.conn.QueryContext(ctx, query, r.Limit, r.Offset)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Question, &p.IsActive, &p.CreatedAt, &p.OwnerID); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, p)
	}

	return polls, rows.Err()
}

func (s *PostgresStore) CountPolls(ctx context.Context, filter string) (int, error) {
	query := "SELECT COUNT(*) FROM polls"
	switch filter {
	case FilterActive:
		query += " WHERE is_active = TRUE"
	case FilterClosed:
		query += " WHERE is_active = FALSE"
	}

	var count int
	if err := s.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count polls: %w", err)
	}

	return count, nil
}

// Votes

func (s *PostgresStore) HasUserVoted(ctx context.Context, userID, pollID string) (bool, error) {
	var exists bool
	err := s.conn.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = $1 AND poll_id = $2)
	`, userID, pollID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query vote existence: %w", err)
	}

	return exists, nil
}

func (s *PostgresStore) InsertVote(ctx context.Context, v models.Vote) error {
	castAt := v.CastAt
	if castAt.IsZero() {
		castAt = time.Now()
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO votes (id, user_id, poll_id, option_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.UserID, v.PollID, v.OptionID, castAt)
	if err != nil {
		if isPqErr(err, errUniqueViolation) {
			return ErrExists
		}
		if isPqErr(err, errForeignKeyViolation) {
			return ErrNotFound
		}
		return fmt.Errorf("insert vote: %w", err)
	}

	return nil
}

func (s *PostgresStore) TallyForPoll(ctx context.Context, pollID string) ([]OptionTally, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT o.id, o.poll_id, o.media_kind, o.locator, o.description, COUNT(v.id)
		FROM voting_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.poll_id, o.media_kind, o.locator, o.description, o.position
		ORDER BY o.position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query tally: %w", err)
	}
	defer rows.Close()

	tallies := []OptionTally{}
	for rows.Next() {
		var t OptionTally
		err := rows.Scan(&t.Option.ID, &t.Option.PollID, &t.Option.MediaKind,
			&t.Option.Locator, &t.Option.Description, &t.Count)
		if err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}

	return tallies, rows.Err()
}

func (s *PostgresStore) VotesForOption(ctx context.Context, optionID string) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM votes WHERE option_id = $1
	`, optionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}

	return count, nil
}

// Media

func (s *PostgresStore) InsertMedia(ctx context.Context, m models.Media) error {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO media (id, poll_id, media_kind, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.PollID, m.MediaKind, m.FilePath, createdAt)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	return nil
}

func (s *PostgresStore) MediaByID(ctx context.Context, id string) (models.Media, error) {
	var m models.Media
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, poll_id, media_kind, file_path, created_at
		FROM media WHERE id = $1
	`, id).Scan(&m.ID, &m.PollID, &m.MediaKind, &m.FilePath, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Media{}, ErrNotFound
		}
		return models.Media{}, fmt.Errorf("scan media: %w", err)
	}

	return m, nil
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func isPqErr(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == code
}
