package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreInitAndGet(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	sess, err := store.Init(ctx, "abc", "sam")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if sess.ID != "abc" || sess.Nickname != "sam" {
		t.Errorf("unexpected session: %+v", sess)
	}

	// Re-init keeps the session and updates the nickname.
	sess, err = store.Init(ctx, "abc", "sammy")
	if err != nil {
		t.Fatalf("re-Init failed: %v", err)
	}
	if sess.Nickname != "sammy" {
		t.Errorf("expected nickname update, got %q", sess.Nickname)
	}

	if _, err := store.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if _, err := store.Init(ctx, "abc", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	answers := []Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2b"},
		{QuestionID: "q1", OptionID: "q1c"}, // replaces the first q1 answer
	}
	for _, a := range answers {
		if err := store.Put(ctx, "abc", a); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	got, err := store.Answers(ctx, "abc")
	if err != nil {
		t.Fatalf("Answers failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 answers after replacement, got %d", len(got))
	}
	if got[0].QuestionID != "q1" || got[0].OptionID != "q1c" {
		t.Errorf("expected q1 answer replaced with q1c, got %+v", got[0])
	}
	if got[1].QuestionID != "q2" || got[1].OptionID != "q2b" {
		t.Errorf("unexpected second answer: %+v", got[1])
	}
}

func TestMemoryStorePutUnknownSession(t *testing.T) {
	store := NewMemoryStore(0)

	err := store.Put(context.Background(), "nope", Answer{QuestionID: "q1", OptionID: "q1a"})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreAnswersUnknownSession(t *testing.T) {
	store := NewMemoryStore(0)

	got, err := store.Answers(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Answers for unknown session should not fail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty answers, got %d", len(got))
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	if _, err := store.Init(ctx, "old", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := store.Init(ctx, "fresh", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if removed := store.Sweep(); removed != 1 {
		t.Errorf("expected 1 expired session removed, got %d", removed)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 remaining session, got %d", store.Len())
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh session should survive sweep: %v", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if _, err := store.Init(ctx, "abc", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Put(ctx, "abc", Answer{QuestionID: "q1", OptionID: "q1a"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	sess, _ := store.Get(ctx, "abc")
	sess.Answers[0].OptionID = "mutated"

	got, _ := store.Answers(ctx, "abc")
	if got[0].OptionID != "q1a" {
		t.Errorf("store state leaked through Get copy: %+v", got[0])
	}
}
