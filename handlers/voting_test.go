// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/poll"
	"github.com/danielhkuo/faceoff/store"
	"github.com/danielhkuo/faceoff/testutil"
)

func castVote(t *testing.T, handler *VotingHandler, pollID, optionID, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote",
		models.VoteRequest{OptionID: optionID}, bearer(t, userID))
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	authed(handler.Vote)(w, req)
	return w
}

func TestVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewVotingHandler(poll.NewService(store.NewPostgresStore(conn)))
	ownerID := testutil.CreateTestUser(t, conn, "alice")
	voterID := testutil.CreateTestUser(t, conn, "bob")
	pollID, optionA, _ := testutil.CreateTestPoll(t, conn, ownerID, true)

	t.Run("valid vote", func(t *testing.T) {
		w := castVote(t, handler, pollID, optionA, voterID)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.VoteResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Result {
			t.Error("Expected result true")
		}

		var count int
		err := conn.QueryRow(`
			SELECT COUNT(*) FROM votes WHERE user_id = $1 AND poll_id = $2
		`, voterID, pollID).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to count votes: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 vote row, got %d", count)
		}
	})

	t.Run("second vote by same user", func(t *testing.T) {
		w := castVote(t, handler, pollID, optionA, voterID)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("missing option_id", func(t *testing.T) {
		other := testutil.CreateTestUser(t, conn, "carol")
		req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote",
			models.VoteRequest{}, bearer(t, other))
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		authed(handler.Vote)(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("option from another poll", func(t *testing.T) {
		other := testutil.CreateTestUser(t, conn, "dave")
		_, foreignOption, _ := testutil.CreateTestPoll(t, conn, ownerID, true)

		w := castVote(t, handler, pollID, foreignOption, other)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown poll", func(t *testing.T) {
		w := castVote(t, handler, "nonexistent", optionA, voterID)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("no token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote",
			models.VoteRequest{OptionID: optionA}, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		authed(handler.Vote)(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestVoteOnClosedPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewVotingHandler(poll.NewService(store.NewPostgresStore(conn)))
	ownerID := testutil.CreateTestUser(t, conn, "alice")
	voterID := testutil.CreateTestUser(t, conn, "bob")
	pollID, optionA, _ := testutil.CreateTestPoll(t, conn, ownerID, false)

	w := castVote(t, handler, pollID, optionA, voterID)
	testutil.AssertStatus(t, w, http.StatusConflict)

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 0 {
		t.Errorf("Closed poll accepted %d votes", count)
	}
}

func TestVoteDifferentUsersSamePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewVotingHandler(poll.NewService(store.NewPostgresStore(conn)))
	ownerID := testutil.CreateTestUser(t, conn, "alice")
	pollID, optionA, optionB := testutil.CreateTestPoll(t, conn, ownerID, true)

	for i, opt := range []string{optionA, optionB, optionA} {
		voter := testutil.CreateTestUser(t, conn, "voter"+string(rune('a'+i)))
		w := castVote(t, handler, pollID, opt, voter)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 votes, got %d", count)
	}
}
