// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
)

// Store saves uploaded blobs under a local root and records them in the
// database. The poll service only ever sees the returned locator; file
// contents are never inspected.
type Store struct {
	root      string
	serveRoot *url.URL
	db        interface {
		InsertMedia(ctx context.Context, m models.Media) error
	}
}

type Config struct {
	Root      string
	ServeRoot *url.URL
}

func NewStore(cfg Config, db interface {
	InsertMedia(ctx context.Context, m models.Media) error
}) *Store {
	return &Store{root: cfg.Root, serveRoot: cfg.ServeRoot, db: db}
}

// Save writes the blob to disk under a random name, records a media row, and
// returns the stored media with its servable URL. The filename extension
// must be allowed for the declared kind.
func (s *Store) Save(ctx context.Context, kind, filename string, r io.Reader) (models.Media, string, error) {
	if kind == models.KindText {
		return models.Media{}, "", serr.New(nil, http.StatusBadRequest, "text options do not take uploads")
	}
	if !models.ValidKind(kind) {
		return models.Media{}, "", serr.New(nil, http.StatusBadRequest, "invalid media_type %q", kind)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt(kind, ext) {
		return models.Media{}, "", serr.New(nil, http.StatusBadRequest,
			"%s uploads must end with one of %s", kind, strings.Join(models.ExtensionsByKind[kind], ", "))
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return models.Media{}, "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return models.Media{}, "", fmt.Errorf("save media file: %w", err)
	}

	m := models.Media{
		ID:        uuid.NewString(),
		MediaKind: kind,
		FilePath:  s.serveRoot.JoinPath(name).String(),
	}
	if err := s.db.InsertMedia(ctx, m); err != nil {
		os.Remove(f.Name())
		return models.Media{}, "", fmt.Errorf("record media: %w", err)
	}

	return m, m.FilePath, nil
}

func allowedExt(kind, ext string) bool {
	for _, allowed := range models.ExtensionsByKind[kind] {
		if ext == allowed {
			return true
		}
	}
	return false
}
