package cart

import (
	"sync"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

// Store is the single source of truth for pending purchase selections
// within a browsing session. It is never written to the database; the
// order tables only see its contents at checkout submission.
type Store struct {
	mu        sync.Mutex
	name      string
	items     []Item
	isOpen    bool
	persister Persister
	subs      map[int]chan struct{}
	nextSub   int

	// Latest unsaved snapshot; drained by a single writer goroutine so
	// saves never interleave and an older snapshot never lands on top
	// of a newer one.
	pending []Item
	saving  bool
}

// NewStore builds a store and loads any persisted snapshot under name.
// persister may be nil for an ephemeral store (tests).
func NewStore(name string, persister Persister) *Store {
	s := &Store{
		name:      name,
		items:     []Item{},
		persister: persister,
		subs:      make(map[int]chan struct{}),
	}

	if persister != nil {
		items, err := persister.Load(name)
		if err != nil {
			logger.L().Warn("failed to load cart snapshot",
				zap.String("cart", name),
				zap.Error(err),
			)
		} else if items != nil {
			s.items = items
		}
	}

	return s
}

// AddItem merges the incoming selection into the cart. Repeated adds
// with the same composite key increment quantity in place; price and
// name are kept from the first add. The drawer opens as a side effect.
func (s *Store) AddItem(params NewItemParams) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := CompositeKey(params.ProductID, params.Variant.ID, params.Color)

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += params.Quantity
			s.isOpen = true
			s.afterMutation()
			return s.items[i]
		}
	}

	item := Item{
		ID:        id,
		ProductID: params.ProductID,
		Name:      params.Name,
		Image:     params.Image,
		Variant:   params.Variant,
		Color:     params.Color,
		Quantity:  params.Quantity,
	}
	s.items = append(s.items, item)
	s.isOpen = true
	s.afterMutation()
	return item
}

// RemoveItem deletes the entry with the given composite key. No-op if
// absent.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	s.afterMutation()
}

func (s *Store) removeLocked(id string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// UpdateQuantity overwrites the quantity for the given key. A quantity
// of zero or below removes the item instead.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		s.afterMutation()
		return
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.afterMutation()
}

// ClearCart empties the collection. Used after a successful order
// submission.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
	s.afterMutation()
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity, using each
// item's price at the time it was added.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		total += item.Variant.Price * int64(item.Quantity)
	}
	return total
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
	s.notifyLocked()
}

func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
	s.notifyLocked()
}

func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
	s.notifyLocked()
}

// Subscribe returns a channel that receives a signal after every
// mutation, plus a cancel func. Signals are coalesced: a slow consumer
// sees at least one signal, not necessarily one per mutation.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

// afterMutation persists and notifies. Persistence is fire-and-forget:
// a failed save never fails the mutation. Rapid mutations coalesce into
// fewer saves; only the newest snapshot is ever written.
func (s *Store) afterMutation() {
	if s.persister != nil {
		snapshot := make([]Item, len(s.items))
		copy(snapshot, s.items)
		s.pending = snapshot
		if !s.saving {
			s.saving = true
			go s.saveLoop()
		}
	}
	s.notifyLocked()
}

func (s *Store) saveLoop() {
	for {
		s.mu.Lock()
		items := s.pending
		s.pending = nil
		if items == nil {
			s.saving = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		if err := s.persister.Save(s.name, items); err != nil {
			logger.L().Warn("failed to persist cart",
				zap.String("cart", s.name),
				zap.Error(err),
			)
		}
	}
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
