package cart

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringParams(qty int) NewItemParams {
	return NewItemParams{
		ProductID: "prod-1",
		Name:      "Eternal Ring",
		Image:     "/images/ring.jpg",
		Variant:   ItemVariant{ID: "var-1", Style: "Gold", Price: 18500},
		Color:     "gold",
		Quantity:  qty,
	}
}

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, "prod-1-var-1-gold", CompositeKey("prod-1", "var-1", "gold"))
}

func TestAddItem(t *testing.T) {
	t.Run("new item gets composite key", func(t *testing.T) {
		s := NewStore("test", nil)
		item := s.AddItem(ringParams(1))

		assert.Equal(t, "prod-1-var-1-gold", item.ID)
		assert.Len(t, s.Items(), 1)
		assert.True(t, s.IsOpen(), "adding should open the drawer")
	})

	t.Run("repeated add merges quantity", func(t *testing.T) {
		s := NewStore("test", nil)
		s.AddItem(ringParams(1))
		item := s.AddItem(ringParams(2))

		assert.Len(t, s.Items(), 1)
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, 3, s.TotalItems())
	})

	t.Run("merge keeps first add price and name", func(t *testing.T) {
		s := NewStore("test", nil)
		s.AddItem(ringParams(1))

		later := ringParams(1)
		later.Name = "Renamed Ring"
		later.Variant.Price = 99999
		s.AddItem(later)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Eternal Ring", items[0].Name)
		assert.Equal(t, int64(18500), items[0].Variant.Price)
	})

	t.Run("different color is a separate line", func(t *testing.T) {
		s := NewStore("test", nil)
		s.AddItem(ringParams(1))

		silver := ringParams(1)
		silver.Color = "silver"
		s.AddItem(silver)

		assert.Len(t, s.Items(), 2)
	})
}

func TestRemoveItem(t *testing.T) {
	s := NewStore("test", nil)
	item := s.AddItem(ringParams(2))

	s.RemoveItem(item.ID)
	assert.Empty(t, s.Items())

	// removing a missing key is a no-op
	s.RemoveItem("absent")
	assert.Empty(t, s.Items())
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("overwrites quantity", func(t *testing.T) {
		s := NewStore("test", nil)
		item := s.AddItem(ringParams(1))

		s.UpdateQuantity(item.ID, 5)
		assert.Equal(t, 5, s.TotalItems())
	})

	t.Run("zero removes the item", func(t *testing.T) {
		s := NewStore("test", nil)
		item := s.AddItem(ringParams(3))

		s.UpdateQuantity(item.ID, 0)
		assert.Empty(t, s.Items())
	})

	t.Run("negative removes the item", func(t *testing.T) {
		s := NewStore("test", nil)
		item := s.AddItem(ringParams(3))

		s.UpdateQuantity(item.ID, -2)
		assert.Empty(t, s.Items())
	})
}

func TestTotals(t *testing.T) {
	s := NewStore("test", nil)
	s.AddItem(ringParams(2))

	necklace := NewItemParams{
		ProductID: "prod-2",
		Name:      "Pearl Necklace",
		Variant:   ItemVariant{ID: "var-9", Style: "Classic", Price: 24000},
		Color:     "white",
		Quantity:  1,
	}
	s.AddItem(necklace)

	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, int64(2*18500+24000), s.TotalPrice())

	s.UpdateQuantity("prod-2-var-9-white", 2)
	assert.Equal(t, int64(2*18500+2*24000), s.TotalPrice(), "totals recompute after mutation")
}

func TestClearCart(t *testing.T) {
	s := NewStore("test", nil)
	s.AddItem(ringParams(4))

	s.ClearCart()
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, int64(0), s.TotalPrice())
}

func TestDrawerState(t *testing.T) {
	s := NewStore("test", nil)
	assert.False(t, s.IsOpen())

	s.OpenCart()
	assert.True(t, s.IsOpen())

	s.CloseCart()
	assert.False(t, s.IsOpen())

	s.ToggleCart()
	assert.True(t, s.IsOpen())
}

func TestSubscribe(t *testing.T) {
	s := NewStore("test", nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.AddItem(ringParams(1))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a mutation signal")
	}

	// signals coalesce; multiple mutations still leave the channel readable
	s.AddItem(ringParams(1))
	s.RemoveItem("prod-1-var-1-gold")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a coalesced signal")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p, err := NewFilePersister(dir)
	require.NoError(t, err)

	s := NewStore("glamour-cart-u1", p)
	s.AddItem(ringParams(2))

	// saves are async; wait for the snapshot to land
	require.Eventually(t, func() bool {
		items, err := p.Load("glamour-cart-u1")
		return err == nil && len(items) == 1
	}, 2*time.Second, 10*time.Millisecond)

	reloaded := NewStore("glamour-cart-u1", p)
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1-var-1-gold", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(18500), items[0].Variant.Price)
}

// recordingPersister flags any Save that starts while another is still
// in progress and remembers the last snapshot it was handed.
type recordingPersister struct {
	inFlight   int32
	overlapped atomic.Bool

	mu   sync.Mutex
	last []Item
}

func (p *recordingPersister) Load(name string) ([]Item, error) { return nil, nil }

func (p *recordingPersister) Save(name string, items []Item) error {
	if atomic.AddInt32(&p.inFlight, 1) > 1 {
		p.overlapped.Store(true)
	}
	time.Sleep(time.Millisecond)

	p.mu.Lock()
	p.last = items
	p.mu.Unlock()

	atomic.AddInt32(&p.inFlight, -1)
	return nil
}

func (p *recordingPersister) lastSnapshot() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func TestSavesAreSerialized(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore("glamour-cart-u1", p)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(ringParams(1))
			s.UpdateQuantity("prod-1-var-1-gold", 3)
		}()
	}
	wg.Wait()
	s.UpdateQuantity("prod-1-var-1-gold", 7)

	// the writer drains to the newest snapshot, never a stale one
	require.Eventually(t, func() bool {
		last := p.lastSnapshot()
		return len(last) == 1 && last[0].Quantity == 7
	}, 2*time.Second, 5*time.Millisecond)

	assert.False(t, p.overlapped.Load(), "two saves ran at once")
}

func TestManagerStoreFor(t *testing.T) {
	m := NewManager(nil)

	a := m.StoreFor("user-a")
	b := m.StoreFor("user-b")
	assert.NotSame(t, a, b)

	again := m.StoreFor("user-a")
	assert.Same(t, a, again)
}
