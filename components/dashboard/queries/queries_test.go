package queries

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func dataset() *records.Dataset {
	return records.NewDataset(records.DatasetOptions{Seed: 11, Now: now, Orders: 30, Sellers: 4, Team: 3, Sessions: 5})
}

type stubLayoutService struct {
	calls int
}

func (s *stubLayoutService) ConfigureLayout(context.Context) (dashboard.Layout, error) {
	s.calls++
	return dashboard.Layout{Areas: map[string][]dashboard.WidgetInstance{}}, nil
}

func TestLayoutQuery(t *testing.T) {
	service := &stubLayoutService{}
	query := NewLayoutQuery(service)
	_, err := query.Query(context.Background(), LayoutInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
}

func TestWidgetQuery(t *testing.T) {
	t.Parallel()
	bo, err := dashboard.Bootstrap(context.Background(), dataset(), dashboard.BootstrapOptions{Now: func() time.Time { return now }})
	require.NoError(t, err)
	query := NewWidgetQuery(bo.Service)

	w, err := query.Query(context.Background(), WidgetInput{WidgetID: "key-figures"})
	require.NoError(t, err)
	assert.Equal(t, dashboard.WidgetStats, w.DefinitionID)

	_, err = query.Query(context.Background(), WidgetInput{WidgetID: "nope"})
	assert.ErrorIs(t, err, dashboard.ErrWidgetNotFound)
}

func TestTableSnapshotQuerySeesCommittedState(t *testing.T) {
	t.Parallel()
	ws := dashboard.NewWorkspace(dashboard.NewTableCatalog(dataset()), dashboard.OpenOptions{PageSize: 5})
	defer ws.Close()
	query := NewTableSnapshotQuery(ws)

	snap, err := query.Query(context.Background(), TableSnapshotInput{Table: dashboard.TableOrders})
	require.NoError(t, err)
	assert.Equal(t, 0, snap.PageIndex)
	assert.Equal(t, 31, snap.Total)

	_, err = ws.Dispatch(dashboard.TableOrders, tableview.SetPageIndex{Index: 2})
	require.NoError(t, err)
	snap, err = query.Query(context.Background(), TableSnapshotInput{Table: dashboard.TableOrders})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.PageIndex)

	_, err = query.Query(context.Background(), TableSnapshotInput{Table: "invoices"})
	assert.ErrorIs(t, err, dashboard.ErrUnknownTable)
}

func TestRecordLookupQuery(t *testing.T) {
	t.Parallel()
	query := NewRecordLookupQuery(dashboard.NewTableCatalog(dataset()))

	rec, err := query.Query(context.Background(), RecordLookupInput{Table: dashboard.TableSellers, ID: "SEL-100"})
	require.NoError(t, err)
	assert.Equal(t, "Isabella Rossi", rec["name"])

	_, err = query.Query(context.Background(), RecordLookupInput{Table: dashboard.TableSellers, ID: "SEL-999"})
	assert.ErrorIs(t, err, records.ErrRecordNotFound)
}

func TestChartQueryPreservesTotal(t *testing.T) {
	t.Parallel()
	ds := dataset()
	query := NewChartQuery(dashboard.NewTableCatalog(ds))

	result, err := query.Query(context.Background(), ChartInput{Table: dashboard.TableOrders, DateField: "date", AmountField: "total"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Buckets)

	want := decimal.Zero
	for _, order := range ds.Orders.All() {
		want = want.Add(order.Total)
	}
	assert.Equal(t, want.StringFixed(2), result.Total)
	for i := 1; i < len(result.Buckets); i++ {
		assert.Less(t, result.Buckets[i-1].Key, result.Buckets[i].Key)
	}

	_, err = query.Query(context.Background(), ChartInput{Table: dashboard.TableOrders})
	assert.ErrorIs(t, err, ErrFieldsRequired)
}
