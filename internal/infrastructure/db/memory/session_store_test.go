package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

func TestSessionStore_SaveReadClear(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domain.Session{ID: "s-1", Token: "tok", Member: domain.Member{ID: "m-1"}}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Read(ctx, "s-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Token != "tok" || got.Member.ID != "m-1" {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := store.Clear(ctx, "s-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Read(ctx, "s-1"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestSessionStore_ReadNeverReturnsPartialPair(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	// Arbitrary interleavings of save and clear: every successful read must
	// carry both the token and the member.
	ops := []func(){
		func() { _ = store.Save(ctx, domain.Session{ID: "s", Token: "t1", Member: domain.Member{ID: "m1"}}) },
		func() { _ = store.Clear(ctx, "s") },
		func() { _ = store.Save(ctx, domain.Session{ID: "s", Token: "t2", Member: domain.Member{ID: "m2"}}) },
		func() { _ = store.Save(ctx, domain.Session{ID: "s", Token: "t3", Member: domain.Member{ID: "m3"}}) },
		func() { _ = store.Clear(ctx, "s") },
		func() { _ = store.Clear(ctx, "s") },
		func() { _ = store.Save(ctx, domain.Session{ID: "s", Token: "t4", Member: domain.Member{ID: "m4"}}) },
	}

	for i, op := range ops {
		op()
		session, err := store.Read(ctx, "s")
		if errors.Is(err, domain.ErrNoSession) {
			continue
		}
		if err != nil {
			t.Fatalf("op %d: unexpected error %v", i, err)
		}
		if session.Token == "" || session.Member.ID == "" {
			t.Fatalf("op %d: partial session observed: %+v", i, session)
		}
	}
}

func TestSessionStore_ClearAbsentIsNoOp(t *testing.T) {
	store := NewSessionStore()
	if err := store.Clear(context.Background(), "ghost"); err != nil {
		t.Fatalf("clearing an absent session must not fail: %v", err)
	}
}

func TestSessionStore_SessionsAreIndependent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Session{ID: "a", Token: "ta", Member: domain.Member{ID: "ma"}})
	_ = store.Save(ctx, domain.Session{ID: "b", Token: "tb", Member: domain.Member{ID: "mb"}})
	_ = store.Clear(ctx, "a")

	if _, err := store.Read(ctx, "a"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("session a should be gone")
	}
	if got, err := store.Read(ctx, "b"); err != nil || got.Token != "tb" {
		t.Fatalf("session b must be untouched: %+v %v", got, err)
	}
}
