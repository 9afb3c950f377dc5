// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/store"
	"github.com/danielhkuo/faceoff/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "faceoff API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	// Routes should be matched; 400, 401 and 404 are all valid handler
	// responses for empty requests.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/auth/register"},
		{"POST", "/auth/login"},
		{"POST", "/auth/refresh"},

		{"POST", "/polls"},
		{"GET", "/polls"},
		{"GET", "/polls/test-id"},
		{"PUT", "/polls/test-id"},
		{"POST", "/polls/test-id/close"},
		{"POST", "/polls/test-id/vote"},
		{"GET", "/polls/test-id/results"},

		{"POST", "/media/upload"},
		{"GET", "/media/some-file.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/polls/test-id"},
		{"GET", "/auth/register"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/polls"},
		{"PUT", "/polls/test-id"},
		{"POST", "/polls/test-id/close"},
		{"POST", "/polls/test-id/vote"},
		{"POST", "/media/upload"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 without a token, got %d", w.Code)
			}
		})
	}
}

// Upload a blob through the API, then fetch it back from the URL the upload
// returned. The served bytes must match what went in.
func TestMediaUploadAndFetch(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))
	userID := testutil.CreateTestUser(t, conn, "alice")

	content := []byte("fake png bytes")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("media_type", "image"); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	part, err := mw.CreateFormFile("file", "cat.png")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write file content: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/media/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.AccessToken(t, userID))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var uploaded models.UploadMediaResponse
	testutil.AssertJSON(t, w, &uploaded)

	served, err := url.Parse(uploaded.URL)
	if err != nil {
		t.Fatalf("Upload returned an unparsable URL %q: %v", uploaded.URL, err)
	}

	req = httptest.NewRequest("GET", served.Path, nil)
	w = httptest.NewRecorder()

	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !bytes.Equal(w.Body.Bytes(), content) {
		t.Errorf("Served file does not match upload: got %q", w.Body.String())
	}
}

func TestMediaFetchUnknownFile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	req := httptest.NewRequest("GET", "/media/no-such-file.png", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPathParameterExtraction(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID := testutil.CreateTestUser(t, conn, "alice")
	pollID, _, _ := testutil.CreateTestPoll(t, conn, userID, true)

	mux := NewRouter(store.NewPostgresStore(conn), testutil.GetTestConfig(t))

	req := httptest.NewRequest("GET", "/polls/"+pollID, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for an existing poll, got %d. Body: %s", w.Code, w.Body.String())
	}
}
