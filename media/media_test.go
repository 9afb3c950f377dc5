// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
)

type recordingDB struct {
	inserted []models.Media
	err      error
}

func (r *recordingDB) InsertMedia(ctx context.Context, m models.Media) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, m)
	return nil
}

func newTestStore(t *testing.T) (*Store, *recordingDB, string) {
	t.Helper()

	root := t.TempDir()
	serveRoot, err := url.Parse("http://localhost:5001/media")
	require.NoError(t, err)

	db := &recordingDB{}
	return NewStore(Config{Root: root, ServeRoot: serveRoot}, db), db, root
}

func TestSaveImage(t *testing.T) {
	st, db, root := newTestStore(t)

	m, servedURL, err := st.Save(context.Background(), models.KindImage, "cat.PNG", strings.NewReader("fake png bytes"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, models.KindImage, m.MediaKind)
	assert.Equal(t, m.FilePath, servedURL)
	assert.True(t, strings.HasPrefix(servedURL, "http://localhost:5001/media/"))
	assert.True(t, strings.HasSuffix(servedURL, ".png"), "extension is lowercased: %s", servedURL)

	require.Len(t, db.inserted, 1)
	assert.Equal(t, m.ID, db.inserted[0].ID)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(root, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestSaveRejectsBadKinds(t *testing.T) {
	st, db, _ := newTestStore(t)

	tests := []struct {
		name     string
		kind     string
		filename string
	}{
		{"text never takes uploads", models.KindText, "note.txt"},
		{"unknown kind", "hologram", "cat.png"},
		{"image with video extension", models.KindImage, "cat.mp4"},
		{"audio with no extension", models.KindAudio, "song"},
		{"video with image extension", models.KindVideo, "clip.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := st.Save(context.Background(), tt.kind, tt.filename, strings.NewReader("x"))

			var se *serr.ServiceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		})
	}

	assert.Empty(t, db.inserted)
}

func TestSaveCleansUpOnRecordFailure(t *testing.T) {
	st, db, root := newTestStore(t)
	db.err = context.DeadlineExceeded

	_, _, err := st.Save(context.Background(), models.KindAudio, "bark.mp3", strings.NewReader("woof"))
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "the blob must not survive a failed database insert")
}
