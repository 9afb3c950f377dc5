// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, email, password
  - LoginRequest: username, password
  - RefreshRequest: refresh_token
  - CreatePollRequest: question, option1, option2
  - OptionInput: media_type, media_url or media_id, description
  - UpdatePollRequest: question, options
  - VoteRequest: option_id

# Response Types

Types for JSON responses:

  - TokenResponse: access_token, refresh_token, token_type
  - CreatePollResponse: message, poll_id
  - VoteResponse: result, poll_id, option_id
  - UploadMediaResponse: media_id, url
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account with bcrypt password hash (never serialized)
  - Poll: question, active flag, owner
  - VotingOption: one of a poll's two options, with media kind and locator
  - Vote: one user's vote on one poll
  - Media: an uploaded blob and its servable path
  - PollWithOptions, PollPage: read views for detail and list endpoints
  - OptionResult, ResultView: tallies and percentages for closed polls

# Media Kinds

Options carry one of four media kinds:

	KindText  = "text"
	KindImage = "image"
	KindVideo = "video"
	KindAudio = "audio"

ExtensionsByKind lists the accepted file extensions per non-text kind, used
for both URL locators and uploads.
*/
package models
