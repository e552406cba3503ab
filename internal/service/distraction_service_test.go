package service

import (
	"context"
	"testing"
	"time"

	"productivity-ledger/internal/model"
)

func TestLogDistractionCreatesTypeOnFirstSight(t *testing.T) {
	st := newTestStore(t)
	svc := NewDistractionService(st, NewEventService(st, nil, nil))
	ctx := context.Background()
	now := at(14, 0)

	entry, err := svc.LogDistraction(ctx, "Insta", []string{"boredom"}, 15, now)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if entry.TypeID == "" {
		t.Error("log missing owning type id")
	}
	if entry.App != "Insta" {
		t.Errorf("app = %q", entry.App)
	}

	types := svc.Types(ctx)
	if len(types) != 1 || types[0].Name != "Insta" {
		t.Fatalf("types = %+v", types)
	}

	// Second log for the same app reuses the type.
	again, err := svc.LogDistraction(ctx, "Insta", nil, 5, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("log again: %v", err)
	}
	if again.TypeID != entry.TypeID {
		t.Errorf("type ids differ: %q vs %q", again.TypeID, entry.TypeID)
	}
	if len(svc.Types(ctx)) != 1 {
		t.Error("duplicate type created")
	}
}

func TestResolveTypeLegacyNameFallback(t *testing.T) {
	st := newTestStore(t)
	svc := NewDistractionService(st, NewEventService(st, nil, nil))
	ctx := context.Background()

	created, err := svc.GetOrCreateType(ctx, "YouTube", at(10, 0))
	if err != nil {
		t.Fatalf("create type: %v", err)
	}

	// A pre-relation record: app name only, no TypeID.
	legacy := model.DistractionLog{ID: "old", App: "YouTube", Duration: 10, Date: at(11, 0)}

	resolved, ok := svc.ResolveType(ctx, legacy)
	if !ok || resolved.ID != created.ID {
		t.Errorf("legacy resolution = %+v, ok=%v", resolved, ok)
	}

	_, ok = svc.ResolveType(ctx, model.DistractionLog{App: "Unknown"})
	if ok {
		t.Error("resolved a type that does not exist")
	}
}

func TestAddReasonDeduplicates(t *testing.T) {
	st := newTestStore(t)
	svc := NewDistractionService(st, NewEventService(st, nil, nil))
	ctx := context.Background()

	created, _ := svc.GetOrCreateType(ctx, "Insta", at(10, 0))
	if err := svc.AddReason(ctx, created.ID, "doomscrolling"); err != nil {
		t.Fatalf("add reason: %v", err)
	}
	if err := svc.AddReason(ctx, created.ID, "doomscrolling"); err != nil {
		t.Fatalf("re-add reason: %v", err)
	}

	types := svc.Types(ctx)
	if got := len(types[0].Reasons); got != 2 { // "General" + "doomscrolling"
		t.Errorf("reasons = %v", types[0].Reasons)
	}
}
