package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

var ErrLineNotFound = errors.New("cart line not found")

// Store keeps one cart per session. Implementations are safe for concurrent use;
// Add is an additive update so concurrent increments may interleave freely.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, item catalog.Item, open bool) error
	UpdateQuantity(ctx context.Context, sessionID, itemID string, delta int) error
	Remove(ctx context.Context, sessionID, itemID string) error
	SetOpen(ctx context.Context, sessionID string, open bool) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

func (s *MemoryStore) cart(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c.Clone(), nil
	}
	return &Cart{}, nil
}

func (s *MemoryStore) Add(_ context.Context, sessionID string, item catalog.Item, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Add(item)
	if open {
		c.Open = true
	}
	return nil
}

func (s *MemoryStore) UpdateQuantity(_ context.Context, sessionID, itemID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart(sessionID).UpdateQuantity(itemID, delta) {
		return ErrLineNotFound
	}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, sessionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart(sessionID).Remove(itemID) {
		return ErrLineNotFound
	}
	return nil
}

func (s *MemoryStore) SetOpen(_ context.Context, sessionID string, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Open = open
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

var _ Store = (*MemoryStore)(nil)

// SessionCart binds a store to one session so the chat assistant can add items.
type SessionCart struct {
	Store     Store
	SessionID string
}

// AddToCart increments the line for item by one.
func (s SessionCart) AddToCart(ctx context.Context, item catalog.Item, openCartView bool) error {
	return s.Store.Add(ctx, s.SessionID, item, openCartView)
}
