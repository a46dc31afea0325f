package cart

import (
	"sync"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
)

// Store hands out the cart for each operator session. Only the registry map
// is guarded; individual carts remain single-writer per session. The store
// also retains the last submitted receipt per session so the operator can
// reprint immediately after a sale.
type Store struct {
	mu       sync.RWMutex
	carts    map[string]*Cart
	receipts map[string]*models.TicketReceipt
}

// NewStore creates an empty session registry.
func NewStore() *Store {
	return &Store{
		carts:    make(map[string]*Cart),
		receipts: make(map[string]*models.TicketReceipt),
	}
}

// Get returns the cart for a session, creating it on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// SetLastReceipt retains the most recent receipt projection for a session.
func (s *Store) SetLastReceipt(sessionID string, receipt *models.TicketReceipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[sessionID] = receipt
}

// LastReceipt returns the retained receipt, or nil when the session has not
// submitted yet.
func (s *Store) LastReceipt(sessionID string) *models.TicketReceipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receipts[sessionID]
}

// Drop discards a session's cart and receipt, e.g. on logout.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	delete(s.receipts, sessionID)
}
