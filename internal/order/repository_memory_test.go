package order

import (
	"errors"
	"testing"
	"time"

	"menuvoice/internal/core"
)

func TestMemoryRepository_EnsureRetriesCollisions(t *testing.T) {
	repo := NewMemoryRepository()
	ids := []string{"a", "a", "b"}
	repo.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	if got := repo.Ensure(""); got != "a" {
		t.Fatalf("expected a, got %s", got)
	}
	if got := repo.Ensure(""); got != "b" {
		t.Fatalf("expected collision to be skipped, got %s", got)
	}
}

func TestMemoryRepository_UpdateRollsBackOnError(t *testing.T) {
	repo := NewMemoryRepository()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return at }

	id := repo.Ensure("")

	_, err := repo.Update(id, false, func(c *Cart) error {
		c.Lines = append(c.Lines, Line{ItemID: "x", Subtotal: d("5")})
		c.Total = d("5")
		return core.ErrValidation
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	cart, ok := repo.Get(id)
	if !ok || len(cart.Lines) != 0 || !cart.Total.IsZero() {
		t.Errorf("failed update leaked into the cart: %+v", cart)
	}
	if !cart.CreatedAt.Equal(at) {
		t.Errorf("expected created at %v, got %v", at, cart.CreatedAt)
	}
}

func TestMemoryRepository_UpdateUnknown(t *testing.T) {
	repo := NewMemoryRepository()

	called := false
	_, err := repo.Update("ghost", false, func(*Cart) error {
		called = true
		return nil
	})
	if !errors.Is(err, core.ErrSessionUnknown) {
		t.Fatalf("expected unknown session, got %v", err)
	}
	if called {
		t.Error("callback must not run for an unknown session")
	}
}

func TestMemoryRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	id, err := repo.Update("", true, func(c *Cart) error {
		c.Lines = append(c.Lines, Line{ItemID: "x", ModifierIDs: []string{"m"}})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	cart, _ := repo.Get(id)
	cart.Lines[0].ModifierIDs[0] = "changed"
	cart.Lines = nil

	again, _ := repo.Get(id)
	if len(again.Lines) != 1 || again.Lines[0].ModifierIDs[0] != "m" {
		t.Errorf("stored cart was mutated through Get: %+v", again)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	id := repo.Ensure("")

	if !repo.Delete(id) {
		t.Error("expected delete to report true")
	}
	if repo.Delete(id) {
		t.Error("second delete should report false")
	}
	if _, ok := repo.Get(id); ok {
		t.Error("deleted cart still present")
	}
}
