package core

import (
	"context"
	"errors"
	"testing"
)

type fakeHistory struct {
	gotLimit int
	subs     []Submission
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]Submission, error) {
	h.gotLimit = limit
	return h.subs, nil
}

func TestNewService_RequiresFetcher(t *testing.T) {
	if _, err := NewService(ServiceConfig{}); err == nil {
		t.Error("NewService() without fetcher expected error")
	}
}

func TestService_OpenLoadsFirstPage(t *testing.T) {
	fetcher := &fakeFetcher{total: 12}
	svc, err := NewService(ServiceConfig{Fetcher: fetcher})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	sess, created := svc.Open(ctx, "")
	if !created {
		t.Fatal("Open(\"\") did not create a session")
	}
	if got := len(sess.Table.Snapshot().Records); got != PageSize {
		t.Errorf("first page rows = %d, want %d", got, PageSize)
	}

	again, created := svc.Open(ctx, sess.ID)
	if created || again != sess {
		t.Error("Open(existing) created a new session")
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetch calls = %d, want 1", len(fetcher.calls))
	}
}

func TestService_MountResetsSession(t *testing.T) {
	fetcher := &fakeFetcher{total: 12}
	svc, _ := NewService(ServiceConfig{Fetcher: fetcher})
	ctx := context.Background()

	sess, _ := svc.Open(ctx, "")
	sess.Table.SetLimitInput("3")
	sess.Table.ToggleOverlay()
	if err := sess.Table.LoadPage(ctx, 1); err != nil {
		t.Fatalf("LoadPage(1) error = %v", err)
	}
	sess.Table.OnSelectionChange(ctx, []Artwork{artwork(6), artwork(7)})
	sess.Push(LimitExceededNotice(3))

	if err := svc.Mount(ctx, sess); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	snap := sess.Table.Snapshot()
	if snap.Page.Index != 0 || len(snap.Records) != PageSize {
		t.Errorf("page = %d with %d rows, want page 0 with %d", snap.Page.Index, len(snap.Records), PageSize)
	}
	if snap.Limit != 0 || len(snap.Selection) != 0 || snap.OverlayOpen {
		t.Errorf("mount kept state: limit %d, selection %v, overlay %v", snap.Limit, ids(snap.Selection), snap.OverlayOpen)
	}
	if n := sess.TakeNotices(); len(n) != 0 {
		t.Errorf("mount kept %d notices", len(n))
	}
}

func TestService_MountRetriesFailedLoad(t *testing.T) {
	fetcher := &fakeFetcher{total: 12, err: errors.New("dial tcp: connection refused")}
	svc, _ := NewService(ServiceConfig{Fetcher: fetcher})
	ctx := context.Background()

	sess, _ := svc.Open(ctx, "")
	if got := len(sess.Table.Snapshot().Records); got != 0 {
		t.Fatalf("rows = %d after failed mount, want 0", got)
	}

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.mu.Unlock()

	if err := svc.Mount(ctx, sess); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	snap := sess.Table.Snapshot()
	if len(snap.Records) != PageSize || snap.Page.TotalRecords != 12 {
		t.Errorf("after retry: %d rows of %d, want %d of 12", len(snap.Records), snap.Page.TotalRecords, PageSize)
	}
	if !equalInts(fetcher.calls, []int{1, 1}) {
		t.Errorf("fetch calls = %v, want [1 1]", fetcher.calls)
	}
}

func TestService_OpenSurvivesFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("dial tcp: connection refused")}
	svc, _ := NewService(ServiceConfig{Fetcher: fetcher})

	sess, created := svc.Open(context.Background(), "")
	if !created {
		t.Fatal("Open did not create a session")
	}
	if got := len(sess.Table.Snapshot().Records); got != 0 {
		t.Errorf("rows = %d, want 0 after failed load", got)
	}
}

func TestService_EmitsToConfiguredSinks(t *testing.T) {
	emitter := &recordingEmitter{}
	svc, _ := NewService(ServiceConfig{
		Fetcher:  &fakeFetcher{total: 5},
		Emitters: []Emitter{emitter},
	})

	sess, _ := svc.Open(context.Background(), "")
	if _, err := sess.Table.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if emitter.count() != 1 {
		t.Errorf("emitted %d, want 1", emitter.count())
	}
	if emitter.subs[0].SessionID != sess.ID {
		t.Errorf("SessionID = %q, want %q", emitter.subs[0].SessionID, sess.ID)
	}
}

func TestService_RecentSubmissions(t *testing.T) {
	ctx := context.Background()

	svc, _ := NewService(ServiceConfig{Fetcher: &fakeFetcher{}})
	if svc.HasHistory() {
		t.Error("HasHistory() = true without history")
	}
	if _, err := svc.RecentSubmissions(ctx, 10); !errors.Is(err, ErrNoHistory) {
		t.Errorf("error = %v, want ErrNoHistory", err)
	}

	history := &fakeHistory{subs: []Submission{{ID: "a"}}}
	svc, _ = NewService(ServiceConfig{Fetcher: &fakeFetcher{}, History: history})

	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultHistoryLimit},
		{10, 10},
		{500, DefaultHistoryLimit},
	}
	for _, tt := range tests {
		subs, err := svc.RecentSubmissions(ctx, tt.limit)
		if err != nil {
			t.Fatalf("RecentSubmissions(%d) error = %v", tt.limit, err)
		}
		if len(subs) != 1 || history.gotLimit != tt.want {
			t.Errorf("RecentSubmissions(%d) passed limit %d, want %d", tt.limit, history.gotLimit, tt.want)
		}
	}
}
