package vault

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/medium"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

var baseTime = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type brokenMedium struct {
	*medium.Memory
}

func (brokenMedium) SetItem(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func newTestVault(t *testing.T, m medium.Medium) (*Vault, *store.Store, *testClock) {
	t.Helper()

	clock := &testClock{t: baseTime}
	seq := 0
	st := store.New(m, store.DefaultKeyPrefix, logger.NewNop())
	v := New(st, logger.NewNop(), Options{
		Now: clock.now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("msg-%d", seq)
		},
	})
	if err := v.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(v.Stop)
	return v, st, clock
}

func TestLoginCreatesUserOnce(t *testing.T) {
	ctx := context.Background()
	v, st, clock := newTestVault(t, medium.NewMemory())

	email, err := v.Login(ctx, "  A@X.com ")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("Login() email = %q, want %q", email, "a@x.com")
	}

	clock.advance(time.Hour)
	if _, err := v.Login(ctx, "a@x.com"); err != nil {
		t.Fatalf("second Login() error = %v", err)
	}

	snap := st.Load(ctx)
	if len(snap.Users) != 1 {
		t.Fatalf("users = %d, want 1", len(snap.Users))
	}
	if !snap.Users["a@x.com"].CreatedAt.Equal(baseTime) {
		t.Errorf("CreatedAt = %v, want %v", snap.Users["a@x.com"].CreatedAt, baseTime)
	}
	if snap.Session == nil || snap.Session.Email != "a@x.com" {
		t.Errorf("session = %+v, want a@x.com", snap.Session)
	}
}

func TestLoginRejectsBlankEmail(t *testing.T) {
	ctx := context.Background()
	v, st, _ := newTestVault(t, medium.NewMemory())

	if _, err := v.Login(ctx, "   "); !errors.Is(err, domain.ErrEmptyEmail) {
		t.Fatalf("Login() error = %v, want %v", err, domain.ErrEmptyEmail)
	}
	if snap := st.Load(ctx); len(snap.Users) != 0 || snap.Session != nil {
		t.Errorf("state changed on blank login: %+v", snap)
	}
}

func TestAddBookmark(t *testing.T) {
	ctx := context.Background()
	v, _, clock := newTestVault(t, medium.NewMemory())

	if _, err := v.AddBookmark(ctx, "https://foo.com", ""); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("AddBookmark() without session error = %v, want %v", err, domain.ErrNoSession)
	}

	mustLogin(t, v, "a@x.com")

	first, err := v.AddBookmark(ctx, "https://foo.com", "")
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if first.Title != "Foo.com" {
		t.Errorf("Title = %q, want %q", first.Title, "Foo.com")
	}
	if first.ID != fmt.Sprint(baseTime.UnixMilli()) {
		t.Errorf("ID = %q, want creation millis", first.ID)
	}

	// same millisecond, the id must still be unique
	second, err := v.AddBookmark(ctx, " https://bar.com ", " Bar ")
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("duplicate id %q", second.ID)
	}
	if second.Title != "Bar" || second.URL != "https://bar.com" {
		t.Errorf("bookmark not trimmed: %+v", second)
	}

	clock.advance(time.Second)
	list, err := v.Bookmarks(ctx)
	if err != nil {
		t.Fatalf("Bookmarks() error = %v", err)
	}
	if len(list) != 2 || list[0].URL != "https://bar.com" || list[1].URL != "https://foo.com" {
		t.Errorf("Bookmarks() not newest first: %+v", list)
	}
}

func TestAddBookmarkValidation(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, medium.NewMemory())
	mustLogin(t, v, "a@x.com")

	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "empty", url: "  ", wantErr: domain.ErrEmptyURL},
		{name: "invalid", url: "not a url", wantErr: domain.ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.AddBookmark(ctx, tt.url, ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddBookmark(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}

	list, _ := v.Bookmarks(ctx)
	if len(list) != 0 {
		t.Errorf("invalid input was stored: %+v", list)
	}
}

func TestDeleteBookmark(t *testing.T) {
	ctx := context.Background()
	v, st, clock := newTestVault(t, medium.NewMemory())
	mustLogin(t, v, "a@x.com")

	var ids []string
	for _, u := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		b, err := v.AddBookmark(ctx, u, "")
		if err != nil {
			t.Fatalf("AddBookmark() error = %v", err)
		}
		ids = append(ids, b.ID)
		clock.advance(time.Millisecond)
	}

	removed, err := v.DeleteBookmark(ctx, ids[1])
	if err != nil || !removed {
		t.Fatalf("DeleteBookmark() = %v, %v", removed, err)
	}

	removed, err = v.DeleteBookmark(ctx, "nope")
	if err != nil || removed {
		t.Errorf("DeleteBookmark(unknown) = %v, %v, want false, nil", removed, err)
	}

	got := st.Load(ctx).Users["a@x.com"].URLs
	if len(got) != 2 || got[0].URL != "https://c.com" || got[1].URL != "https://a.com" {
		t.Errorf("remaining bookmarks = %+v", got)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, medium.NewMemory())

	mustLogin(t, v, "a@x.com")
	if _, err := v.AddBookmark(ctx, "https://foo.com", ""); err != nil {
		t.Fatal(err)
	}

	mustLogin(t, v, "b@x.com")
	list, err := v.Bookmarks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("b@x.com sees %d bookmarks, want 0", len(list))
	}

	mustLogin(t, v, "a@x.com")
	list, _ = v.Bookmarks(ctx)
	if len(list) != 1 {
		t.Errorf("a@x.com sees %d bookmarks, want 1", len(list))
	}
}

func TestLogoutKeepsUsers(t *testing.T) {
	ctx := context.Background()
	v, st, _ := newTestVault(t, medium.NewMemory())
	mustLogin(t, v, "a@x.com")

	if err := v.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	snap := st.Load(ctx)
	if snap.Session != nil {
		t.Errorf("session survived logout: %+v", snap.Session)
	}
	if _, ok := snap.Users["a@x.com"]; !ok {
		t.Error("user removed by logout")
	}
	if _, err := v.Bookmarks(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Bookmarks() after logout error = %v", err)
	}
}

func TestChatThreads(t *testing.T) {
	ctx := context.Background()
	v, st, clock := newTestVault(t, medium.NewMemory())

	mustLogin(t, v, "a@x.com")
	mustPost(t, v, "hello")
	clock.advance(time.Minute)

	mustLogin(t, v, "b@x.com")
	mustPost(t, v, "from b")
	clock.advance(time.Minute)

	mustLogin(t, v, "a@x.com")
	mustPost(t, v, "again")

	msg, err := v.PostMessage(ctx, "   ")
	if err != nil || msg != nil {
		t.Errorf("blank PostMessage() = %+v, %v, want nil, nil", msg, err)
	}

	thread, err := v.ThreadFor(ctx, "A@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 2 || thread[0].Text != "hello" || thread[1].Text != "again" {
		t.Errorf("thread = %+v", thread)
	}

	// log is global and append-only
	if chat := st.Load(ctx).Chat; len(chat) != 3 || chat[1].Email != "b@x.com" {
		t.Errorf("persisted chat = %+v", chat)
	}
}

func TestToggleChatClosesOnLogin(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, medium.NewMemory())

	if _, err := v.ToggleChat(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("ToggleChat() without session error = %v", err)
	}

	mustLogin(t, v, "a@x.com")
	open, err := v.ToggleChat(ctx)
	if err != nil || !open {
		t.Fatalf("ToggleChat() = %v, %v, want true", open, err)
	}

	st, _ := v.View(ctx)
	if !st.ChatOpen {
		t.Error("View().ChatOpen = false after toggle")
	}

	mustLogin(t, v, "b@x.com")
	st, _ = v.View(ctx)
	if st.ChatOpen {
		t.Error("chat panel should be closed after login")
	}
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, brokenMedium{medium.NewMemory()})

	_, err := v.Login(ctx, "a@x.com")
	if !errors.Is(err, store.ErrSaveFailed) {
		t.Fatalf("Login() error = %v, want %v", err, store.ErrSaveFailed)
	}

	email, _ := v.CurrentEmail(ctx)
	if email != "a@x.com" {
		t.Errorf("CurrentEmail() = %q, login should stand in memory", email)
	}
}

func TestRestoreAfterRestart(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()

	v, _, _ := newTestVault(t, m)
	mustLogin(t, v, "a@x.com")
	if _, err := v.AddBookmark(ctx, "https://foo.com", ""); err != nil {
		t.Fatal(err)
	}
	v.Stop()

	restarted, _, _ := newTestVault(t, m)
	state, err := restarted.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state.User == nil || state.User.Email != "a@x.com" || len(state.User.URLs) != 1 {
		t.Errorf("restored state = %+v", state.User)
	}

	// a bookmark added after restart must land on the authoritative user record
	if _, err := restarted.AddBookmark(ctx, "https://bar.com", ""); err != nil {
		t.Fatal(err)
	}
	snap, _ := restarted.Snapshot(ctx)
	if got := len(snap.Users["a@x.com"].URLs); got != 2 {
		t.Errorf("users slot has %d bookmarks, want 2", got)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, medium.NewMemory())

	seed := []*domain.Bookmark{
		{URL: "https://one.com", Title: "One"},
		{URL: "https://two.com"},
		{URL: "not a url"},
		nil,
	}

	n, err := v.Import(ctx, "seed@x.com", seed)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d, want 2", n)
	}

	// a second import only adds new urls
	n, err = v.Import(ctx, "seed@x.com", append(seed, &domain.Bookmark{URL: "https://three.com"}))
	if err != nil || n != 1 {
		t.Errorf("second Import() = %d, %v, want 1", n, err)
	}

	snap, _ := v.Snapshot(ctx)
	urls := snap.Users["seed@x.com"].URLs
	if len(urls) != 3 || urls[0].URL != "https://three.com" || urls[1].URL != "https://one.com" {
		t.Fatalf("imported order = %+v", urls)
	}
	if urls[2].Title != "Two.com" {
		t.Errorf("derived title = %q, want %q", urls[2].Title, "Two.com")
	}

	seen := map[string]bool{}
	for _, b := range urls {
		if seen[b.ID] {
			t.Errorf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}

	if snap.Session != nil {
		t.Error("Import() must not log in")
	}
}

func TestImportKeepsDeletedSeedsDeleted(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	v, _, _ := newTestVault(t, m)

	seed := []*domain.Bookmark{{URL: "https://foo.com"}}
	if n, err := v.Import(ctx, "a@x.com", seed); err != nil || n != 1 {
		t.Fatalf("Import() = %d, %v, want 1", n, err)
	}

	mustLogin(t, v, "a@x.com")
	list, _ := v.Bookmarks(ctx)
	if ok, err := v.DeleteBookmark(ctx, list[0].ID); err != nil || !ok {
		t.Fatalf("DeleteBookmark() = %v, %v", ok, err)
	}

	if n, err := v.Import(ctx, "a@x.com", seed); err != nil || n != 0 {
		t.Errorf("Import() after delete = %d, %v, want 0", n, err)
	}
	if list, _ := v.Bookmarks(ctx); len(list) != 0 {
		t.Errorf("deleted seed came back: %+v", list)
	}

	// the seeded set survives a restart
	v.Stop()
	restarted, _, _ := newTestVault(t, m)
	if n, err := restarted.Import(ctx, "a@x.com", seed); err != nil || n != 0 {
		t.Errorf("Import() after restart = %d, %v, want 0", n, err)
	}
}

func TestStoppedVault(t *testing.T) {
	v, _, _ := newTestVault(t, medium.NewMemory())
	v.Stop()

	if _, err := v.Login(context.Background(), "a@x.com"); !errors.Is(err, ErrStopped) {
		t.Errorf("Login() after Stop error = %v, want %v", err, ErrStopped)
	}
}

func mustLogin(t *testing.T, v *Vault, email string) {
	t.Helper()
	if _, err := v.Login(context.Background(), email); err != nil {
		t.Fatalf("Login(%q) error = %v", email, err)
	}
}

func mustPost(t *testing.T, v *Vault, text string) {
	t.Helper()
	if _, err := v.PostMessage(context.Background(), text); err != nil {
		t.Fatalf("PostMessage(%q) error = %v", text, err)
	}
}
