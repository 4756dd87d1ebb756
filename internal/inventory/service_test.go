package inventory

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items  map[int64]*Item
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]*Item)}
}

func (m *memoryRepo) List(ctx context.Context) ([]Item, error) {
	var out []Item
	for _, it := range m.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) ListLowStock(ctx context.Context) ([]Item, error) {
	var out []Item
	for _, it := range m.items {
		if it.Quantity <= it.LowThreshold {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (Item, error) {
	it, ok := m.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return *it, nil
}

func (m *memoryRepo) Create(ctx context.Context, item Item) (Item, error) {
	m.nextID++
	item.ID = m.nextID
	m.items[item.ID] = &item
	return item, nil
}

func (m *memoryRepo) Update(ctx context.Context, id int64, input UpdateInput) error {
	it, ok := m.items[id]
	if !ok {
		return ErrItemNotFound
	}
	if input.Name != nil {
		it.Name = *input.Name
	}
	if input.Unit != nil {
		it.Unit = *input.Unit
	}
	if input.Quantity != nil {
		it.Quantity = *input.Quantity
	}
	if input.LowThreshold != nil {
		it.LowThreshold = *input.LowThreshold
	}
	return nil
}

func (m *memoryRepo) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	it, ok := m.items[id]
	if !ok {
		return 0, ErrItemNotFound
	}
	it.Quantity += delta
	return it.Quantity, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), Item{Name: "  "})
	require.ErrorIs(t, err, ErrNameRequired)
}

func TestLowStockListsAtOrBelowThreshold(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Item{Name: "gloves", Quantity: 100, LowThreshold: 20})
	require.NoError(t, err)
	atThreshold, err := svc.Create(ctx, Item{Name: "anesthetic", Quantity: 5, LowThreshold: 5})
	require.NoError(t, err)
	below, err := svc.Create(ctx, Item{Name: "composite", Quantity: 1, LowThreshold: 10})
	require.NoError(t, err)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	require.Equal(t, below.ID, low[0].ID)
	require.Equal(t, atThreshold.ID, low[1].ID)
}

func TestAdjustQuantityAllowsNegativeStock(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	it, err := svc.Create(ctx, Item{Name: "burs", Quantity: 3, LowThreshold: 2})
	require.NoError(t, err)

	quantity, err := svc.AdjustQuantity(ctx, it.ID, -5)
	require.NoError(t, err)
	require.Equal(t, -2, quantity)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
}

func TestAdjustQuantityUnknownItem(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.AdjustQuantity(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrItemNotFound)
}
