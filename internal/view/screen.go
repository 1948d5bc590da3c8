// Package view projects vault state into what the page shows.
//
// Render is pure: it never touches the store or the clock, so every screen
// can be tested without a browser.
package view

import (
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/notify"
)

type State string

const (
	LoggedOut State = "logged_out"
	LoggedIn  State = "logged_in"
)

// Input is everything Render needs. User is nil when nobody is logged in.
type Input struct {
	User     *domain.User
	ChatOpen bool
	Thread   []domain.ChatMessage

	Toast          *notify.Toast
	ToastRemaining time.Duration

	// ConfirmID asks for a delete confirmation of that bookmark.
	ConfirmID string

	Now      time.Time
	Location *time.Location
}

type Item struct {
	ID    string
	URL   string
	Title string
	Added string
}

type Message struct {
	Author string
	Time   string
	Text   string
	Own    bool
}

type Toast struct {
	Message     string
	Kind        string
	RemainingMS int64
}

// Screen is the display tree of one page.
type Screen struct {
	State State

	Email      string
	CountLabel string
	Items      []Item
	Empty      bool
	Confirm    *Item

	ChatOpen    bool
	Messages    []Message
	ChatWelcome string

	Toast *Toast
}

// Render builds the screen for in.
func Render(in Input) Screen {
	s := Screen{State: LoggedOut}

	if in.Toast != nil && in.ToastRemaining > 0 {
		s.Toast = &Toast{
			Message:     in.Toast.Message,
			Kind:        string(in.Toast.Kind),
			RemainingMS: in.ToastRemaining.Milliseconds(),
		}
	}

	if in.User == nil {
		return s
	}

	s.State = LoggedIn
	s.Email = in.User.Email
	s.CountLabel = CountLabel(len(in.User.URLs))
	s.Empty = len(in.User.URLs) == 0

	s.Items = make([]Item, 0, len(in.User.URLs))
	for _, b := range in.User.URLs {
		item := Item{
			ID:    b.ID,
			URL:   b.URL,
			Title: b.Title,
			Added: FormatRelative(b.CreatedAt, in.Now, in.Location),
		}
		s.Items = append(s.Items, item)
		if in.ConfirmID != "" && b.ID == in.ConfirmID {
			confirm := item
			s.Confirm = &confirm
		}
	}

	s.ChatOpen = in.ChatOpen
	if len(in.Thread) == 0 {
		s.ChatWelcome = WelcomeText(in.User.Email)
	}
	s.Messages = make([]Message, 0, len(in.Thread))
	for _, msg := range in.Thread {
		s.Messages = append(s.Messages, Message{
			Author: msg.Email,
			Time:   FormatClock(msg.Timestamp, in.Location),
			Text:   msg.Text,
			Own:    msg.Email == in.User.Email,
		})
	}

	return s
}
