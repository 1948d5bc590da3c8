package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

var exportTime = time.UnixMilli(1760800000000).UTC()

func TestUserExport(t *testing.T) {
	u := domain.NewUser("a@x.com", exportTime)
	u.URLs = append(u.URLs, &domain.Bookmark{ID: "1", URL: "https://foo.com", Title: "Foo.com", CreatedAt: exportTime})

	doc, err := User(u, exportTime)
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}

	if doc.Filename != "linkvault-a-x.com-1760800000000.json" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if !strings.Contains(string(doc.Body), "\n  \"email\": \"a@x.com\"") {
		t.Errorf("body should be indented with two spaces:\n%s", doc.Body)
	}

	var decoded struct {
		Email      string             `json:"email"`
		ExportDate time.Time          `json:"exportDate"`
		URLs       []*domain.Bookmark `json:"urls"`
	}
	if err := json.Unmarshal(doc.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded.Email != "a@x.com" || len(decoded.URLs) != 1 || decoded.URLs[0].Title != "Foo.com" ||
		!decoded.ExportDate.Equal(exportTime) {
		t.Errorf("decoded export = %+v", decoded)
	}
}

func TestUserExportWithoutBookmarks(t *testing.T) {
	if _, err := User(domain.NewUser("a@x.com", exportTime), exportTime); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("User() error = %v, want ErrNothingToExport", err)
	}
	if _, err := User(nil, exportTime); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("User(nil) error = %v, want ErrNothingToExport", err)
	}
}

func TestAllExport(t *testing.T) {
	users := map[string]*domain.User{"a@x.com": domain.NewUser("a@x.com", exportTime)}
	chat := []domain.ChatMessage{{ID: "m1", Email: "a@x.com", Text: "hi", Timestamp: exportTime}}

	doc, err := All(users, chat, exportTime)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if doc.Filename != "linkvault-full-export-1760800000000.json" {
		t.Errorf("Filename = %q", doc.Filename)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(doc.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	for _, key := range []string{"users", "chatMessages", "exportDate"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("full export is missing %q", key)
		}
	}
}

func TestAllExportEmptyState(t *testing.T) {
	doc, err := All(nil, nil, exportTime)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if !strings.Contains(string(doc.Body), `"users": {}`) || !strings.Contains(string(doc.Body), `"chatMessages": []`) {
		t.Errorf("empty state should export empty containers:\n%s", doc.Body)
	}
}

func TestWriteTo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	doc := Document{Filename: "linkvault-full-export-1.json", Body: []byte("{}")}

	path, err := doc.WriteTo(dir)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}" {
		t.Errorf("written file = %q err=%v", data, err)
	}
	if doc.Size() != "2 B" {
		t.Errorf("Size() = %q, want %q", doc.Size(), "2 B")
	}
}
