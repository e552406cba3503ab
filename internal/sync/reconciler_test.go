package sync

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/repository"
	"productivity-ledger/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return store.New(repository.NewRecordRepository(db))
}

// fakeRemote records saves and hands out canned documents.
type fakeRemote struct {
	mu    stdsync.Mutex
	docs  map[string]Doc
	saves chan Doc
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: make(map[string]Doc), saves: make(chan Doc, 16)}
}

func (f *fakeRemote) Fetch(_ context.Context, userID string) (Doc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[userID]
	if !ok {
		return nil, ErrNoDoc
	}
	return doc, nil
}

func (f *fakeRemote) Save(_ context.Context, userID string, fields Doc) error {
	f.mu.Lock()
	doc, ok := f.docs[userID]
	if !ok {
		doc = make(Doc)
		f.docs[userID] = doc
	}
	for field, payload := range fields {
		doc[field] = payload
	}
	f.mu.Unlock()
	f.saves <- fields
	return nil
}

func (f *fakeRemote) SaveEvents(context.Context, string, map[string]string) error {
	return nil
}

func waitForSave(t *testing.T, remote *fakeRemote) Doc {
	t.Helper()
	select {
	case doc := <-remote.saves:
		return doc
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for remote save")
		return nil
	}
}

func TestSignInRemoteWinsAndClearsLocal(t *testing.T) {
	st := newTestStore(t)
	remote := newFakeRemote()
	remote.docs["u1"] = Doc{
		"tasks": "[]",
		"stats": `{"totalPoints":99,"currentStreak":3,"longestStreak":5,"lastActiveDate":"2026-08-20"}`,
	}

	r := NewReconciler(st, remote)
	ctx := context.Background()

	// Guest-session data that must not survive the pull.
	store.Set(ctx, st, store.KeyTasks, []model.Task{{ID: "guest", Title: "Guest task"}})
	store.Set(ctx, st, store.KeyUserMood, "happy")
	drainSaves(remote)

	if err := r.SignIn(ctx, "u1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	tasks := store.Get(ctx, st, store.KeyTasks, []model.Task{{ID: "sentinel"}})
	if len(tasks) != 0 {
		t.Errorf("tasks after pull = %+v, want empty from remote", tasks)
	}
	stats := store.Get(ctx, st, store.KeyUserStats, model.UserStats{})
	if stats.TotalPoints != 99 {
		t.Errorf("stats not restored: %+v", stats)
	}
	// Mood had no remote field value, so the clear must stick.
	if mood := store.Get(ctx, st, store.KeyUserMood, "none"); mood != "none" {
		t.Errorf("guest mood bled through: %q", mood)
	}
}

func TestSignInFirstLinkUploadsLocalState(t *testing.T) {
	st := newTestStore(t)
	remote := newFakeRemote()
	r := NewReconciler(st, remote)
	ctx := context.Background()

	store.Set(ctx, st, store.KeyTasks, []model.Task{{ID: "t1", Title: "Keep me"}})
	drainSaves(remote)

	if err := r.SignIn(ctx, "fresh"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	uploaded := waitForSave(t, remote)
	if _, ok := uploaded["tasks"]; !ok {
		t.Errorf("snapshot missing tasks field: %v", uploaded)
	}

	// Local state stayed intact.
	tasks := store.Get(ctx, st, store.KeyTasks, []model.Task{})
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("local tasks changed on first link: %+v", tasks)
	}
}

func TestSetPushesFieldAfterSignIn(t *testing.T) {
	st := newTestStore(t)
	remote := newFakeRemote()
	r := NewReconciler(st, remote)
	ctx := context.Background()

	remote.docs["u1"] = Doc{"tasks": "[]"}
	if err := r.SignIn(ctx, "u1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	drainSaves(remote)

	store.Set(ctx, st, store.KeyWorkLogs, []model.WorkLog{{ID: "w1", Duration: 10}})

	fields := waitForSave(t, remote)
	if _, ok := fields["work_logs"]; !ok || len(fields) != 1 {
		t.Errorf("push fields = %v, want only work_logs", fields)
	}
}

func TestSetWithoutIdentityDoesNotPush(t *testing.T) {
	st := newTestStore(t)
	remote := newFakeRemote()
	NewReconciler(st, remote)
	ctx := context.Background()

	store.Set(ctx, st, store.KeyTasks, []model.Task{{ID: "t1"}})

	select {
	case doc := <-remote.saves:
		t.Errorf("unexpected push before sign-in: %v", doc)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStatusTransitions(t *testing.T) {
	st := newTestStore(t)
	remote := newFakeRemote()
	r := NewReconciler(st, remote)
	ctx := context.Background()

	statuses := make(chan Status, 8)
	r.OnStatus(func(s Status) { statuses <- s })

	remote.docs["u1"] = Doc{"tasks": "[]"}
	if err := r.SignIn(ctx, "u1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	store.Set(ctx, st, store.KeyTasks, []model.Task{})

	want := []Status{StatusSyncing, StatusSuccess}
	for _, expected := range want {
		select {
		case got := <-statuses:
			if got != expected {
				t.Fatalf("status = %s, want %s", got, expected)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", expected)
		}
	}
}

func drainSaves(remote *fakeRemote) {
	for {
		select {
		case <-remote.saves:
		default:
			return
		}
	}
}
