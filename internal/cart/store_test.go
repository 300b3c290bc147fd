package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mebsy_store_front/internal/models"
)

type mockPersistence struct {
	m       sync.Mutex
	records map[string][]byte
	events  []string
	saveErr error
	loadErr error
	deleted int
}

func newMockPersistence() *mockPersistence {
	return &mockPersistence{records: make(map[string][]byte)}
}

func (m *mockPersistence) Load(_ context.Context, key string) ([]byte, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	data, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *mockPersistence) Save(_ context.Context, key string, data []byte) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[key] = data
	return nil
}

func (m *mockPersistence) Delete(_ context.Context, key string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.records, key)
	m.deleted++
	return nil
}

func (m *mockPersistence) Publish(_ context.Context, _ string, event string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.events = append(m.events, event)
	return nil
}

var testProduct = models.ProductSnapshot{
	ID:    "p-1",
	Name:  "Clavier mécanique",
	Price: 10.0,
}

func TestAddIncrementsExistingLine(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	// Trois ajouts du même produit → une seule ligne, quantité 3
	for i := 0; i < 3; i++ {
		_, err := store.Add(ctx, testProduct)
		require.NoError(t, err)
	}

	lines := store.Items(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, "p-1", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Clavier mécanique", lines[0].ProductName)
	assert.Equal(t, 10.0, lines[0].UnitPrice)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, models.ProductSnapshot{ID: "a", Name: "A", Price: 1})
	require.NoError(t, err)
	_, err = store.Add(ctx, models.ProductSnapshot{ID: "b", Name: "B", Price: 2})
	require.NoError(t, err)
	_, err = store.Add(ctx, models.ProductSnapshot{ID: "a", Name: "A", Price: 1})
	require.NoError(t, err)

	lines := store.Items(ctx)
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, "b", lines[1].ProductID)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"quantité zéro", 0},
		{"quantité négative", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(newMockPersistence(), "user-1")
			ctx := context.Background()

			_, err := store.Add(ctx, testProduct)
			require.NoError(t, err)

			lines, err := store.SetQuantity(ctx, "p-1", tt.quantity)
			require.NoError(t, err)
			assert.Empty(t, lines)
			assert.Equal(t, 0, store.TotalItems(ctx))
		})
	}
}

func TestSetQuantityReplacesUnconditionally(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)

	lines, err := store.SetQuantity(ctx, "p-1", 42)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 42, lines[0].Quantity)
}

func TestRemoveMissingProductIsNoOp(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)

	lines, err := store.Remove(ctx, "inexistant")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestAddAddRemoveLeavesEmptyCart(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)
	_, err = store.Add(ctx, testProduct)
	require.NoError(t, err)

	// remove supprime la ligne entière, pas une seule unité
	lines, err := store.Remove(ctx, "p-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTotals(t *testing.T) {
	store := NewStore(newMockPersistence(), "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, models.ProductSnapshot{ID: "a", Name: "A", Price: 10})
	require.NoError(t, err)
	_, err = store.Add(ctx, models.ProductSnapshot{ID: "a", Name: "A", Price: 10})
	require.NoError(t, err)
	_, err = store.Add(ctx, models.ProductSnapshot{ID: "b", Name: "B", Price: 5})
	require.NoError(t, err)

	assert.Equal(t, 3, store.TotalItems(ctx))
	assert.InDelta(t, 25.0, store.TotalPrice(ctx), 0.001)
}

func TestClearEmptiesCartAndDeletesRecord(t *testing.T) {
	p := newMockPersistence()
	store := NewStore(p, "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.TotalItems(ctx))
	assert.Empty(t, p.records)
	assert.Contains(t, p.events, "cleared")
}

func TestCorruptRecordIsDiscardedSilently(t *testing.T) {
	p := newMockPersistence()
	p.records["cart:user-1"] = []byte("{pas du json valide")
	store := NewStore(p, "user-1")
	ctx := context.Background()

	// Un enregistrement illisible se comporte comme un panier vide
	lines := store.Items(ctx)
	assert.Empty(t, lines)
	assert.Equal(t, 1, p.deleted)

	// Et le panier reste utilisable ensuite
	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TotalItems(ctx))
}

func TestMutationsPublishChangeNotifications(t *testing.T) {
	p := newMockPersistence()
	store := NewStore(p, "user-1")
	ctx := context.Background()

	_, err := store.Add(ctx, testProduct)
	require.NoError(t, err)
	_, err = store.SetQuantity(ctx, "p-1", 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"updated", "updated"}, p.events)
}

func TestSaveFailureSurfacesError(t *testing.T) {
	p := newMockPersistence()
	p.saveErr = assert.AnError
	store := NewStore(p, "user-1")

	_, err := store.Add(context.Background(), testProduct)
	assert.Error(t, err)
}
