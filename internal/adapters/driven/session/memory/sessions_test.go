package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

func TestRecent_OldestFirstWithLimit(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := store.Append(ctx, "s-1", domain.Turn{
			Role:    domain.RoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	turns, err := store.Recent(ctx, "s-1", 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("Recent() returned %d turns, want 3", len(turns))
	}
	// The newest 3, still in chronological order.
	for i, want := range []string{"message 2", "message 3", "message 4"} {
		if turns[i].Content != want {
			t.Errorf("turns[%d].Content = %q, want %q", i, turns[i].Content, want)
		}
	}
}

func TestRecent_UnknownSessionEmpty(t *testing.T) {
	store := NewSessionStore()

	turns, err := store.Recent(context.Background(), "nope", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("Recent() returned %d turns, want 0", len(turns))
	}
}

func TestRetention_ExpiresAndRenews(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := NewSessionStore(WithRetention(time.Minute), WithNow(clock))
	ctx := context.Background()

	if err := store.Append(ctx, "s-1", domain.Turn{Role: domain.RoleUser, Content: "first"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Activity within the window renews it.
	now = now.Add(45 * time.Second)
	if err := store.Append(ctx, "s-1", domain.Turn{Role: domain.RoleAssistant, Content: "second"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	now = now.Add(45 * time.Second)
	turns, err := store.Recent(ctx, "s-1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("Recent() after renewal returned %d turns, want 2", len(turns))
	}

	// Past the window the session reads as empty.
	now = now.Add(2 * time.Minute)
	turns, err = store.Recent(ctx, "s-1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("Recent() after expiry returned %d turns, want 0", len(turns))
	}

	// A fresh append after expiry starts a new history.
	if err := store.Append(ctx, "s-1", domain.Turn{Role: domain.RoleUser, Content: "again"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	turns, err = store.Recent(ctx, "s-1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "again" {
		t.Errorf("Recent() after restart = %v, want single %q turn", turns, "again")
	}
}

func TestClear_RemovesHistory(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	if err := store.Append(ctx, "s-1", domain.Turn{Role: domain.RoleUser, Content: "hello"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Clear(ctx, "s-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	turns, err := store.Recent(ctx, "s-1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("Recent() after Clear returned %d turns, want 0", len(turns))
	}
}
