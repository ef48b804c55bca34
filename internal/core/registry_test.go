package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSessions(t *testing.T, ttl time.Duration) (*Sessions, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewSessions(func(id string) *Table {
		return NewTable(&fakeFetcher{total: 10}, WithSessionID(id))
	}, ttl)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestSessions_CreateAndGet(t *testing.T) {
	s, _ := newTestSessions(t, time.Minute)

	sess := s.Create()
	if sess.ID == "" {
		t.Fatal("session ID is empty")
	}
	if sess.Table.SessionID() != sess.ID {
		t.Errorf("table session ID = %q, want %q", sess.Table.SessionID(), sess.ID)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != sess {
		t.Error("Get() returned a different session")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessions_GetOrCreate(t *testing.T) {
	s, _ := newTestSessions(t, time.Minute)

	tests := []struct {
		name        string
		id          func() string
		wantCreated bool
	}{
		{"empty id", func() string { return "" }, true},
		{"unknown id", func() string { return "not-a-session" }, true},
		{"existing id", func() string { return s.Create().ID }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.id()
			sess, created := s.GetOrCreate(id)
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}
			if !created && sess.ID != id {
				t.Errorf("ID = %q, want %q", sess.ID, id)
			}
		})
	}
}

func TestSessions_Sweep(t *testing.T) {
	s, now := newTestSessions(t, 10*time.Minute)

	idle := s.Create()
	active := s.Create()

	*now = now.Add(8 * time.Minute)
	if _, err := s.Get(active.ID); err != nil {
		t.Fatalf("Get(active) error = %v", err)
	}

	*now = now.Add(5 * time.Minute)
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}

	if _, err := s.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present, err = %v", err)
	}
	if _, err := s.Get(active.ID); err != nil {
		t.Errorf("active session swept: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSessions_IDsSorted(t *testing.T) {
	s, _ := newTestSessions(t, 0)

	a := s.Create()
	b := s.Create()
	want := []string{a.ID, b.ID}
	if want[0] > want[1] {
		want[0], want[1] = want[1], want[0]
	}

	got := s.IDs()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestSession_Notices(t *testing.T) {
	sess := &Session{}

	sess.Push(Notice{})
	sess.Push(LimitExceededNotice(2))
	sess.Push(SubmittedNotice())

	got := sess.TakeNotices()
	if len(got) != 2 {
		t.Fatalf("TakeNotices() = %d notices, want 2", len(got))
	}
	if got[0].Code != CodeLimitExceeded || got[1].Code != CodeSubmitted {
		t.Errorf("notices = %+v", got)
	}
	if again := sess.TakeNotices(); len(again) != 0 {
		t.Errorf("second TakeNotices() = %+v, want empty", again)
	}
}

func TestStartSweeper_StopsOnCancel(t *testing.T) {
	s, _ := newTestSessions(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.StartSweeper(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
