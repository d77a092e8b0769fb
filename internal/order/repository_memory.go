package order

import (
	"fmt"
	"sync"
	"time"

	"menuvoice/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryRepository keeps carts in process memory behind one mutex.
// Carts do not survive a restart and never expire.
type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string]*Cart
	newID func() string
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[string]*Cart),
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
}

func (r *MemoryRepository) Ensure(sessionID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ensureLocked(sessionID).SessionID
}

func (r *MemoryRepository) ensureLocked(sessionID string) *Cart {
	if cart, ok := r.carts[sessionID]; ok && sessionID != "" {
		return cart
	}

	id := r.newID()
	for _, taken := r.carts[id]; taken; _, taken = r.carts[id] {
		id = r.newID()
	}

	cart := &Cart{
		SessionID: id,
		Lines:     []Line{},
		Total:     decimal.Zero,
		CreatedAt: r.now(),
	}
	r.carts[id] = cart
	return cart
}

func (r *MemoryRepository) Update(sessionID string, create bool, fn func(*Cart) error) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok || sessionID == "" {
		if !create {
			return "", fmt.Errorf("%w: %q", core.ErrSessionUnknown, sessionID)
		}
		cart = r.ensureLocked(sessionID)
	}

	work := cart.clone()
	if err := fn(&work); err != nil {
		return cart.SessionID, err
	}
	*cart = work
	return cart.SessionID, nil
}

func (r *MemoryRepository) Get(sessionID string) (Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return Cart{}, false
	}
	return cart.clone(), true
}

func (r *MemoryRepository) Delete(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[sessionID]; !ok {
		return false
	}
	delete(r.carts, sessionID)
	return true
}

// Len is the number of live sessions.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.carts)
}
