package records

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestStoreLookup(t *testing.T) {
	t.Parallel()
	store := NewStore(func(s Seller) string { return s.ID },
		Seller{ID: "a", Name: "First"},
		Seller{ID: "b", Name: "Second"},
		Seller{ID: "a", Name: "Duplicate"},
	)

	got, err := store.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	assert.Equal(t, []string{"a", "b", "a"}, store.Keys())

	_, err = store.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecordNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestStoreAllReturnsCopy(t *testing.T) {
	t.Parallel()
	store := NewStore(func(m TeamMember) string { return m.ID }, TeamMember{ID: "1", Name: "Noah"})
	rows := store.All()
	rows[0].Name = "changed"
	assert.Equal(t, "Noah", store.All()[0].Name)
	assert.Equal(t, 1, store.Len())
}

func TestGeneratorFixedFirstRecord(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(7, fixedNow)
	orders := gen.Orders(5, gen.Sellers(3))
	require.Len(t, orders, 6)
	assert.Equal(t, "ORD-1000", orders[0].OrderID)
	assert.Equal(t, "2877.00", orders[0].Total.StringFixed(2))
	for _, order := range orders {
		assert.NotEmpty(t, order.OrderID)
		assert.NotEmpty(t, order.Items)
		assert.Contains(t, orderStatuses, order.Status)
		assert.True(t, order.Total.Equal(orderTotal(order.Items)))
	}
}

func TestGeneratorSeedIsReproducible(t *testing.T) {
	t.Parallel()
	a := NewDataset(DatasetOptions{Seed: 42, Now: fixedNow, Orders: 10, Sellers: 4, Team: 6, Sessions: 5})
	b := NewDataset(DatasetOptions{Seed: 42, Now: fixedNow, Orders: 10, Sellers: 4, Team: 6, Sessions: 5})
	assert.Equal(t, a.Orders.All(), b.Orders.All())
	assert.Equal(t, a.Transit.Keys(), b.Transit.Keys())
	assert.Equal(t, a.Sessions.All(), b.Sessions.All())
}

func TestDatasetRelations(t *testing.T) {
	t.Parallel()
	ds := NewDataset(DatasetOptions{Seed: 3, Now: fixedNow, Orders: 25, Sellers: 5, Team: 8, Sessions: 10})
	assert.Equal(t, 26, ds.Orders.Len())
	assert.Equal(t, 6, ds.Sellers.Len())

	for _, transit := range ds.Transit.All() {
		_, err := uuid.Parse(transit.TransitID)
		require.NoError(t, err)
		_, err = ds.Orders.Lookup(transit.OrderID)
		require.NoError(t, err)
	}
	for _, d := range ds.Disbursements.All() {
		_, err := ds.Sellers.Lookup(d.SellerID)
		require.NoError(t, err, d.SellerID)
	}
	for _, s := range ds.Sessions.All() {
		_, err := ds.Team.Lookup(s.PhotographerID)
		require.NoError(t, err)
	}
}

func TestFieldsShareShapeAcrossRecords(t *testing.T) {
	t.Parallel()
	ds := NewDataset(DatasetOptions{Seed: 11, Now: fixedNow, Orders: 8, Sellers: 2, Team: 2, Sessions: 2})
	rows := ToRecords(ds.Orders.All())
	want := rows[0].FieldNames()
	for _, row := range rows[1:] {
		assert.Equal(t, want, row.FieldNames())
	}
	id, ok := rows[0].String("orderId")
	require.True(t, ok)
	assert.Equal(t, "ORD-1000", id)
	_, ok = rows[0].Get("unknown")
	assert.False(t, ok)
}

func TestDatasetNegativeCountsKeepFixedRecords(t *testing.T) {
	t.Parallel()
	var ds *Dataset
	require.NotPanics(t, func() {
		ds = NewDataset(DatasetOptions{Seed: 9, Now: fixedNow, Orders: -5, Sellers: -2, Team: -3, Sessions: -4})
	})
	assert.Equal(t, 1, ds.Orders.Len())
	assert.Equal(t, 1, ds.Sellers.Len())
	assert.Equal(t, 1, ds.Team.Len())
	assert.Zero(t, ds.Sessions.Len())
	assert.Equal(t, "ORD-1000", ds.Orders.All()[0].OrderID)
}
