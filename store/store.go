// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/faceoff/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when an insert violates a uniqueness constraint.
	ErrExists = errors.New("already exists")
)

// Poll listing filters
const (
	FilterAll    = "all"
	FilterActive = "active"
	FilterClosed = "closed"
)

// OptionTally pairs a voting option with its vote count, in creation order.
type OptionTally struct {
	Option models.VotingOption
	Count  int
}

type ListPollsRequest struct {
	Filter string // all | active | closed
	Order  string // asc | desc (by created_at)
	Limit  int
	Offset int
}

// Store is the repository abstraction the rest of the application talks to.
// The implicit ORM traversals of a typical web framework become explicit
// methods here: OptionsForPoll, TallyForPoll, HasUserVoted.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u models.User) error
	UserByID(ctx context.Context, id string) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByOAuth(ctx context.Context, provider, oauthID string) (models.User, error)

	// Polls and options
	CreatePoll(ctx context.Context, p models.Poll) error
	InsertOption(ctx context.Context, o models.VotingOption, position int) error
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	OptionsForPoll(ctx context.Context, pollID string) ([]models.VotingOption, error)
	GetOption(ctx context.Context, id string) (models.VotingOption, error)
	UpdatePollQuestion(ctx context.Context, pollID, question string) error
	UpdateOption(ctx context.Context, o models.VotingOption) error
	ClosePoll(ctx context.Context, pollID string) error
	ListPolls(ctx context.Context, r ListPollsRequest) ([]models.Poll, error)
	CountPolls(ctx context.Context, filter string) (int, error)

	// Votes
	HasUserVoted(ctx context.Context, userID, pollID string) (bool, error)
	InsertVote(ctx context.Context, v models.Vote) error
	TallyForPoll(ctx context.Context, pollID string) ([]OptionTally, error)
	VotesForOption(ctx context.Context, optionID string) (int, error)

	// Media
	InsertMedia(ctx context.Context, m models.Media) error
	MediaByID(ctx context.Context, id string) (models.Media, error)

	// WithinTx runs fn against a transactional view of the store. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
