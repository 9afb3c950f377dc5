// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/faceoff/auth"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
	"github.com/danielhkuo/faceoff/store"
)

// Service is the poll lifecycle manager. It owns every state transition a
// poll can make (create, edit, vote, close) and the result computation. All
// persistence goes through the injected store; the service holds no state of
// its own.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type CreatePollRequest struct {
	Question string
	Options  []models.OptionInput
	OwnerID  string
}

// CreatePoll validates the question and both options, then persists the poll
// and its two voting options as a single atomic unit. A failure anywhere
// leaves no partial poll behind.
func (s *Service) CreatePoll(ctx context.Context, r CreatePollRequest) (models.PollWithOptions, error) {
	if r.Question == "" {
		return models.PollWithOptions{}, serr.New(nil, http.StatusBadRequest, "question is required")
	}
	if err := validateOptions(r.Options); err != nil {
		return models.PollWithOptions{}, err
	}

	pollID, err := auth.GenerateID(16)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("generate poll id: %w", err)
	}

	result := models.PollWithOptions{
		Poll: models.Poll{
			ID:       pollID,
			Question: r.Question,
			IsActive: true,
			OwnerID:  r.OwnerID,
		},
	}

	err = s.store.WithinTx(ctx, func(tx store.Store) error {
		if err := tx.CreatePoll(ctx, result.Poll); err != nil {
			if errors.Is(err, store.ErrExists) {
				return serr.New(err, http.StatusConflict, "poll already exists")
			}
			return fmt.Errorf("create poll: %w", err)
		}

		for i, in := range r.Options {
			locator, err := s.resolveLocator(ctx, tx, in)
			if err != nil {
				return err
			}

			optionID, err := auth.GenerateID(12)
			if err != nil {
				return fmt.Errorf("generate option id: %w", err)
			}

			opt := models.VotingOption{
				ID:          optionID,
				PollID:      pollID,
				MediaKind:   in.MediaKind,
				Locator:     locator,
				Description: describeOr(in.Description, i),
			}
			if err := tx.InsertOption(ctx, opt, i); err != nil {
				if errors.Is(err, store.ErrExists) {
					return serr.New(err, http.StatusConflict, "duplicate voting option")
				}
				return fmt.Errorf("insert option: %w", err)
			}

			result.Options = append(result.Options, opt)
		}

		return nil
	})
	if err != nil {
		return models.PollWithOptions{}, err
	}

	return result, nil
}

// resolveLocator turns an option input into the locator stored on the
// voting option: the media URL when given, otherwise the path of a
// previously uploaded blob.
func (s *Service) resolveLocator(ctx context.Context, tx store.Store, in models.OptionInput) (string, error) {
	if in.MediaURL != "" || in.MediaID == "" {
		return in.MediaURL, nil
	}

	m, err := tx.MediaByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", serr.New(err, http.StatusBadRequest, "unknown media_id: %s", in.MediaID)
		}
		return "", fmt.Errorf("resolve media: %w", err)
	}
	if m.MediaKind != in.MediaKind {
		return "", serr.New(nil, http.StatusBadRequest,
			"media %s is %s, option declares %s", in.MediaID, m.MediaKind, in.MediaKind)
	}

	return m.FilePath, nil
}

// GetPollDetails returns a poll and its two options. Pure read.
func (s *Service) GetPollDetails(ctx context.Context, pollID string) (models.PollWithOptions, error) {
	p, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PollWithOptions{}, serr.New(err, http.StatusNotFound, "poll not found")
		}
		return models.PollWithOptions{}, fmt.Errorf("get poll: %w", err)
	}

	options, err := s.store.OptionsForPoll(ctx, pollID)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("options for poll: %w", err)
	}

	return models.PollWithOptions{Poll: p, Options: options}, nil
}

type ListPollsRequest struct {
	Page    int
	PerPage int
	Filter  string // all | active | closed
	Order   string // asc | desc
}

// ListPolls returns one page of polls with their options, newest first by
// default.
func (s *Service) ListPolls(ctx context.Context, r ListPollsRequest) (models.PollPage, error) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = 10
	}
	if r.Filter == "" {
		r.Filter = store.FilterAll
	}

	total, err := s.store.CountPolls(ctx, r.Filter)
	if err != nil {
		return models.PollPage{}, fmt.Errorf("count polls: %w", err)
	}

	polls, err := s.store.ListPolls(ctx, store.ListPollsRequest{
		Filter: r.Filter,
		Order:  r.Order,
		Limit:  r.PerPage,
		Offset: (r.Page - 1) * r.PerPage,
	})
	if err != nil {
		return models.PollPage{}, fmt.Errorf("list polls: %w", err)
	}

	page := models.PollPage{
		Polls:       []models.PollWithOptions{},
		TotalPages:  (total + r.PerPage - 1) / r.PerPage,
		CurrentPage: r.Page,
	}
	for _, p := range polls {
		options, err := s.store.OptionsForPoll(ctx, p.ID)
		if err != nil {
			return models.PollPage{}, fmt.Errorf("options for poll: %w", err)
		}
		page.Polls = append(page.Polls, models.PollWithOptions{Poll: p, Options: options})
	}

	return page, nil
}

type UpdatePollRequest struct {
	PollID      string
	RequesterID string
	Question    string
	Options     []models.OptionInput
}

// UpdatePoll lets the owner edit the question and option text while the poll
// is still active. Closed polls are immutable.
func (s *Service) UpdatePoll(ctx context.Context, r UpdatePollRequest) error {
	p, err := s.store.GetPoll(ctx, r.PollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return serr.New(err, http.StatusNotFound, "poll not found")
		}
		return fmt.Errorf("get poll: %w", err)
	}
	if p.OwnerID != r.RequesterID {
		return serr.New(nil, http.StatusForbidden, "only the poll owner can edit the poll")
	}
	if !p.IsActive {
		return serr.New(nil, http.StatusConflict, "closed polls cannot be edited")
	}
	if len(r.Options) != 0 {
		if err := validateOptions(r.Options); err != nil {
			return err
		}
	}

	return s.store.WithinTx(ctx, func(tx store.Store) error {
		if r.Question != "" {
			if err := tx.UpdatePollQuestion(ctx, r.PollID, r.Question); err != nil {
				return fmt.Errorf("update question: %w", err)
			}
		}

		if len(r.Options) == 0 {
			return nil
		}

		existing, err := tx.OptionsForPoll(ctx, r.PollID)
		if err != nil {
			return fmt.Errorf("options for poll: %w", err)
		}
		if len(existing) != len(r.Options) {
			return serr.New(nil, http.StatusBadRequest, "option count mismatch")
		}

		for i, in := range r.Options {
			locator, err := s.resolveLocator(ctx, tx, in)
			if err != nil {
				return err
			}

			opt := existing[i]
			opt.MediaKind = in.MediaKind
			opt.Locator = locator
			opt.Description = describeOr(in.Description, i)
			if err := tx.UpdateOption(ctx, opt); err != nil {
				return fmt.Errorf("update option: %w", err)
			}
		}

		return nil
	})
}

// RecordVote casts userID's vote for optionID on pollID. Preconditions are
// checked in a fixed order: poll exists, poll active, user has not voted,
// option belongs to the poll. The has-voted check is only an early exit; the
// UNIQUE (user_id, poll_id) constraint inside the same transaction is what
// actually guarantees one vote per user, so a racing duplicate fails with a
// conflict instead of inserting twice.
func (s *Service) RecordVote(ctx context.Context, pollID, optionID, userID string) error {
	return s.store.WithinTx(ctx, func(tx store.Store) error {
		p, err := tx.GetPoll(ctx, pollID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return serr.New(err, http.StatusNotFound, "poll not found")
			}
			return fmt.Errorf("get poll: %w", err)
		}
		if !p.IsActive {
			return serr.New(nil, http.StatusConflict, "poll is no longer accepting votes")
		}

		voted, err := tx.HasUserVoted(ctx, userID, pollID)
		if err != nil {
			return fmt.Errorf("check existing vote: %w", err)
		}
		if voted {
			return serr.New(nil, http.StatusConflict, "user has already voted on this poll")
		}

		opt, err := tx.GetOption(ctx, optionID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("get option: %w", err)
		}
		if errors.Is(err, store.ErrNotFound) || opt.PollID != pollID {
			return serr.New(nil, http.StatusBadRequest, "invalid voting option")
		}

		voteID, err := auth.GenerateID(16)
		if err != nil {
			return fmt.Errorf("generate vote id: %w", err)
		}

		err = tx.InsertVote(ctx, models.Vote{
			ID:       voteID,
			UserID:   userID,
			PollID:   pollID,
			OptionID: optionID,
		})
		if err != nil {
			if errors.Is(err, store.ErrExists) {
				return serr.New(err, http.StatusConflict, "user has already voted on this poll")
			}
			return fmt.Errorf("insert vote: %w", err)
		}

		return nil
	})
}

// ClosePoll moves a poll from active to closed. Only the owner may close;
// closing an already-closed poll is a no-op. There is no way back. The read
// and the update share one transaction so the state check and the flip are
// atomic.
func (s *Service) ClosePoll(ctx context.Context, pollID, requesterID string) error {
	return s.store.WithinTx(ctx, func(tx store.Store) error {
		p, err := tx.GetPoll(ctx, pollID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return serr.New(err, http.StatusNotFound, "poll not found")
			}
			return fmt.Errorf("get poll: %w", err)
		}
		if p.OwnerID != requesterID {
			return serr.New(nil, http.StatusForbidden, "only the poll owner can close the poll")
		}
		if !p.IsActive {
			return nil
		}

		if err := tx.ClosePoll(ctx, pollID); err != nil {
			return fmt.Errorf("close poll: %w", err)
		}

		return nil
	})
}

// GetResults tallies a closed poll. Results stay sealed while the poll is
// active. Percentages are count/total*100, or 0 when nobody voted, with
// options in their creation order.
func (s *Service) GetResults(ctx context.Context, pollID string) (models.ResultView, error) {
	p, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ResultView{}, serr.New(err, http.StatusNotFound, "poll not found")
		}
		return models.ResultView{}, fmt.Errorf("get poll: %w", err)
	}
	if p.IsActive {
		return models.ResultView{}, serr.New(nil, http.StatusForbidden, "poll results are not available yet")
	}

	tallies, err := s.store.TallyForPoll(ctx, pollID)
	if err != nil {
		return models.ResultView{}, fmt.Errorf("tally for poll: %w", err)
	}

	view := models.ResultView{
		PollID:   p.ID,
		Question: p.Question,
		Results:  []models.OptionResult{},
	}
	for _, t := range tallies {
		view.TotalVotes += t.Count
	}
	for _, t := range tallies {
		res := models.OptionResult{
			OptionID:    t.Option.ID,
			MediaKind:   t.Option.MediaKind,
			Locator:     t.Option.Locator,
			Description: t.Option.Description,
			VoteCount:   t.Count,
		}
		if view.TotalVotes > 0 {
			res.Percentage = float64(t.Count) / float64(view.TotalVotes) * 100
		}
		view.Results = append(view.Results, res)
	}

	return view, nil
}
