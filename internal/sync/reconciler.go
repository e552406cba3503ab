package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"productivity-ledger/internal/store"
)

// fieldForKey maps local storage keys to remote document fields. Keys absent
// here (distraction types, the event log) stay local; events travel through
// their own append-only channel.
var fieldForKey = map[store.Key]string{
	store.KeyTasks:           "tasks",
	store.KeyScheduledTasks:  "scheduled",
	store.KeyReflections:     "reflections",
	store.KeyUserStats:       "stats",
	store.KeyUserMood:        "mood",
	store.KeyDistractionLogs: "distractions",
	store.KeyWorkLogs:        "work_logs",
}

const pushTimeout = 10 * time.Second

// Reconciler keeps the local ledger and the remote per-user document
// consistent: per-field push after every local write, whole-document pull on
// sign-in. Pushes are fire-and-forget; a failed push is dropped and the next
// write for that field retries it implicitly.
type Reconciler struct {
	store  *store.Store
	remote Remote
	status *statusHub

	mu     sync.Mutex
	userID string
}

func NewReconciler(st *store.Store, remote Remote) *Reconciler {
	r := &Reconciler{store: st, remote: remote, status: newStatusHub()}
	st.OnSet(r.Push)
	return r
}

// OnStatus registers an observer for the sync indicator.
func (r *Reconciler) OnStatus(fn StatusFunc) {
	r.status.observe(fn)
}

// Status returns the current indicator state.
func (r *Reconciler) Status() Status {
	return r.status.get()
}

// CurrentUser returns the bound identity, empty when signed out.
func (r *Reconciler) CurrentUser() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userID
}

// Push mirrors one local write to the remote document. Best-effort: without
// a bound identity or a mapped field it is a no-op, and failures surface
// only through the status indicator.
func (r *Reconciler) Push(key store.Key, serialized string) {
	field, ok := fieldForKey[key]
	if !ok {
		return
	}
	userID := r.CurrentUser()
	if userID == "" {
		return
	}

	go func() {
		r.status.set(StatusSyncing)
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := r.remote.Save(ctx, userID, Doc{field: serialized}); err != nil {
			log.Printf("sync: push %s failed: %v", field, err)
			r.status.set(StatusError)
			return
		}
		r.status.set(StatusSuccess)
	}()
}

// SignIn binds an identity and reconciles. An existing remote document wins
// wholesale: all local keys are cleared first so a previous guest session
// cannot bleed into the authenticated one, then every field present remotely
// overwrites its local key. When no document exists the current local state
// is uploaded once instead.
func (r *Reconciler) SignIn(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("sign in: empty user id")
	}

	doc, err := r.remote.Fetch(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoDoc) {
		return fmt.Errorf("sign in: %w", err)
	}

	r.mu.Lock()
	r.userID = userID
	r.mu.Unlock()

	if errors.Is(err, ErrNoDoc) {
		return r.uploadSnapshot(ctx, userID)
	}

	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear local before pull: %w", err)
	}
	for key, field := range fieldForKey {
		payload, ok := doc[field]
		if !ok {
			continue
		}
		if err := r.store.Restore(ctx, key, payload); err != nil {
			return fmt.Errorf("restore %s: %w", key, err)
		}
	}
	log.Printf("sync: pulled remote state for %s", userID)
	return nil
}

// SignOut drops the bound identity. Local state is left untouched.
func (r *Reconciler) SignOut() {
	r.mu.Lock()
	r.userID = ""
	r.mu.Unlock()
}

func (r *Reconciler) uploadSnapshot(ctx context.Context, userID string) error {
	fields := make(Doc)
	for key, field := range fieldForKey {
		if payload, ok := r.store.Raw(ctx, key); ok {
			fields[field] = payload
		}
	}
	fields["created_at"] = time.Now().Format(time.RFC3339)
	if err := r.remote.Save(ctx, userID, fields); err != nil {
		return fmt.Errorf("first link upload: %w", err)
	}
	log.Printf("sync: linked new cloud user %s", userID)
	return nil
}
