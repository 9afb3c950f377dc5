// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Media kind constants
const (
	KindText  = "text"
	KindImage = "image"
	KindVideo = "video"
	KindAudio = "audio"
)

// ExtensionsByKind maps each non-text media kind to its accepted file
// extensions. Used both for validating URL locators and for upload checks.
var ExtensionsByKind = map[string][]string{
	KindImage: {".jpg", ".jpeg", ".png", ".gif", ".webp"},
	KindVideo: {".mp4", ".mov", ".avi", ".webm"},
	KindAudio: {".mp3", ".wav", ".ogg"},
}

// ValidKind reports whether kind is one of the four allowed media kinds.
func ValidKind(kind string) bool {
	switch kind {
	case KindText, KindImage, KindVideo, KindAudio:
		return true
	}
	return false
}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// OptionInput describes one of the two options supplied at poll creation.
// Non-text options carry either a media URL or the ID of a previously
// uploaded blob.
type OptionInput struct {
	MediaKind   string `json:"media_type"`
	MediaURL    string `json:"media_url,omitempty"`
	MediaID     string `json:"media_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreatePollRequest struct {
	Question string       `json:"question"`
	Option1  *OptionInput `json:"option1"`
	Option2  *OptionInput `json:"option2"`
}

type UpdatePollRequest struct {
	Question string        `json:"question,omitempty"`
	Options  []OptionInput `json:"options,omitempty"`
}

type VoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type CreatePollResponse struct {
	Message string `json:"message"`
	PollID  string `json:"poll_id"`
}

type VoteResponse struct {
	Result   bool   `json:"result"`
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

type UploadMediaResponse struct {
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
}

// Domain types

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Never expose in JSON
	OAuthProvider *string   `json:"-"`
	OAuthID       *string   `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"owner_id"`
}

type VotingOption struct {
	ID          string  `json:"id"`
	PollID      string  `json:"poll_id"`
	MediaKind   string  `json:"media_type"`
	Locator     string  `json:"media_url"`
	Description *string `json:"description,omitempty"`
}

type Vote struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	PollID   string    `json:"poll_id"`
	OptionID string    `json:"option_id"`
	CastAt   time.Time `json:"cast_at"`
}

type Media struct {
	ID        string    `json:"id"`
	PollID    *string   `json:"poll_id,omitempty"`
	MediaKind string    `json:"media_type"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

type PollWithOptions struct {
	Poll    Poll           `json:"poll"`
	Options []VotingOption `json:"options"`
}

type PollPage struct {
	Polls       []PollWithOptions `json:"polls"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// OptionResult carries the tally for a single option of a closed poll.
type OptionResult struct {
	OptionID    string  `json:"id"`
	MediaKind   string  `json:"media_type"`
	Locator     string  `json:"media_url"`
	Description *string `json:"description,omitempty"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
}

type ResultView struct {
	PollID     string         `json:"id"`
	Question   string         `json:"question"`
	Results    []OptionResult `json:"results"`
	TotalVotes int            `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
