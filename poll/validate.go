// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
)

// validateOptions enforces the option rules in order, first failure wins:
//  1. exactly two options
//  2. recognized media kind
//  3. non-text kinds carry a media URL or an uploaded-media reference
//  4. URL locators are well-formed and their extension matches the kind
func validateOptions(options []models.OptionInput) error {
	if len(options) != 2 {
		return serr.New(nil, http.StatusBadRequest, "a poll must have exactly two options, got %d", len(options))
	}

	for _, opt := range options {
		if !models.ValidKind(opt.MediaKind) {
			return serr.New(nil, http.StatusBadRequest,
				"invalid media_type %q, must be 'text', 'image', 'video', or 'audio'", opt.MediaKind)
		}

		if opt.MediaKind != models.KindText && opt.MediaURL == "" && opt.MediaID == "" {
			return serr.New(nil, http.StatusBadRequest,
				"%s options must contain either media_url or media_id", opt.MediaKind)
		}

		// Text options carry their content in media_url; nothing to check.
		if opt.MediaKind != models.KindText && opt.MediaURL != "" {
			if err := validateLocatorURL(opt.MediaKind, opt.MediaURL); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateLocatorURL(kind, locator string) error {
	parsed, err := url.Parse(locator)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return serr.New(err, http.StatusBadRequest, "invalid media URL: %s", locator)
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	for _, allowed := range models.ExtensionsByKind[kind] {
		if ext == allowed {
			return nil
		}
	}

	return serr.New(nil, http.StatusBadRequest,
		"%s URL must end with one of %s", kind, strings.Join(models.ExtensionsByKind[kind], ", "))
}

// describeOr falls back to a positional label when no description is given,
// matching the behavior of option payloads that omit it.
func describeOr(desc string, position int) *string {
	if desc == "" {
		desc = fmt.Sprintf("Option %d", position+1)
	}
	return &desc
}
