// Package export builds the downloadable JSON documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// ContentType of every export.
const ContentType = "application/json"

// ErrNothingToExport is returned when a user has no bookmarks.
var ErrNothingToExport = errors.New("no links to download")

// Document is a rendered export ready to be downloaded or written to disk.
type Document struct {
	Filename string
	Body     []byte
}

type userExport struct {
	Email      string             `json:"email"`
	ExportDate time.Time          `json:"exportDate"`
	URLs       []*domain.Bookmark `json:"urls"`
}

type fullExport struct {
	Users        map[string]*domain.User `json:"users"`
	ChatMessages []domain.ChatMessage    `json:"chatMessages"`
	ExportDate   time.Time               `json:"exportDate"`
}

// User exports one user's bookmarks.
func User(u *domain.User, now time.Time) (Document, error) {
	if u == nil || len(u.URLs) == 0 {
		return Document{}, ErrNothingToExport
	}

	body, err := json.MarshalIndent(userExport{
		Email:      u.Email,
		ExportDate: now,
		URLs:       u.URLs,
	}, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to marshal user export: %w", err)
	}

	name := fmt.Sprintf("linkvault-%s-%s.json",
		strings.Replace(u.Email, "@", "-", 1), millis(now))
	return Document{Filename: name, Body: body}, nil
}

// All exports every user and the whole chat log. There is no access check here.
func All(users map[string]*domain.User, chat []domain.ChatMessage, now time.Time) (Document, error) {
	if users == nil {
		users = map[string]*domain.User{}
	}
	if chat == nil {
		chat = []domain.ChatMessage{}
	}

	body, err := json.MarshalIndent(fullExport{
		Users:        users,
		ChatMessages: chat,
		ExportDate:   now,
	}, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to marshal full export: %w", err)
	}

	return Document{
		Filename: "linkvault-full-export-" + millis(now) + ".json",
		Body:     body,
	}, nil
}

// Size is the human readable body size, for logs.
func (d Document) Size() string {
	return humanize.Bytes(uint64(len(d.Body)))
}

// WriteTo writes the document into dir and returns the file path.
func (d Document) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, d.Filename)
	if err := os.WriteFile(path, d.Body, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
