package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
)

func TestTableCatalogCodesAndInfo(t *testing.T) {
	t.Parallel()
	ds := testDataset()
	catalog := NewTableCatalog(ds)
	assert.Equal(t, []string{"disbursements", "orders", "sellers", "sessions", "team", "transit"}, catalog.Codes())

	info, err := catalog.Info(TableOrders)
	require.NoError(t, err)
	assert.Equal(t, []string{"orderId", "customer", "seller", "status", "date", "items", "total"}, info.Columns)
	assert.Equal(t, ds.Orders.Len(), info.Records)
	assert.Len(t, catalog.Tables(), 6)

	_, err = catalog.Info("invoices")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestTableCatalogOpenGivesIndependentState(t *testing.T) {
	t.Parallel()
	catalog := NewTableCatalog(testDataset())
	a, err := catalog.Open(TableSellers, OpenOptions{PageSize: 5})
	require.NoError(t, err)
	b, err := catalog.Open(TableSellers, OpenOptions{PageSize: 5})
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	a.Dispatch(tableview.NextPage{})
	assert.Equal(t, 1, a.Snapshot().PageIndex)
	assert.Equal(t, 0, b.Snapshot().PageIndex)
}

func TestTableCatalogRendersMoneyAndDates(t *testing.T) {
	t.Parallel()
	catalog := NewTableCatalog(testDataset())
	table, err := catalog.Open(TableOrders, OpenOptions{Columns: []string{"orderId", "date", "total"}})
	require.NoError(t, err)
	snap := table.Snapshot()
	require.NotEmpty(t, snap.Rows)
	first := snap.Rows[0]
	assert.Equal(t, "ORD-1000", first.ID)
	assert.Equal(t, "$2,877.00", first.Cells[2])
	_, err = time.Parse(displayDate, first.Cells[1])
	assert.NoError(t, err)
}

func TestTableCatalogLookup(t *testing.T) {
	t.Parallel()
	ds := testDataset()
	catalog := NewTableCatalog(ds)

	record, err := catalog.Lookup(TableOrders, "ORD-1000")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1000", record["orderId"])

	transit := ds.Transit.All()
	require.NotEmpty(t, transit)
	record, err = catalog.Lookup(TableTransit, transit[0].TransitID)
	require.NoError(t, err)
	assert.Equal(t, transit[0].OrderID, record["orderId"])

	_, err = catalog.Lookup(TableSellers, "SEL-999")
	assert.ErrorIs(t, err, records.ErrRecordNotFound)
	_, err = catalog.Lookup("invoices", "x")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestTableCatalogRecords(t *testing.T) {
	t.Parallel()
	ds := testDataset()
	rs, err := NewTableCatalog(ds).Records(TableDisbursements)
	require.NoError(t, err)
	assert.Len(t, rs, ds.Disbursements.Len())
}

func TestWorkspaceKeepsStatePerTable(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace(NewTableCatalog(testDataset()), OpenOptions{PageSize: 5})
	defer ws.Close()

	snap, err := ws.Dispatch(TableOrders, tableview.NextPage{})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PageIndex)

	again, err := ws.Snapshot(TableOrders)
	require.NoError(t, err)
	assert.Equal(t, 1, again.PageIndex)

	other, err := ws.Snapshot(TableSellers)
	require.NoError(t, err)
	assert.Equal(t, 0, other.PageIndex)
	assert.ElementsMatch(t, []string{TableOrders, TableSellers}, ws.Open())

	ws.Reset(TableOrders)
	fresh, err := ws.Snapshot(TableOrders)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.PageIndex)
}

func TestWorkspaceFilterFlush(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace(NewTableCatalog(testDataset()), OpenOptions{FilterDebounce: time.Hour})
	defer ws.Close()

	pending, err := ws.SetFilter(TableOrders, "ORD-1000", false)
	require.NoError(t, err)
	assert.Equal(t, "", pending.GlobalFilter)

	applied, err := ws.SetFilter(TableOrders, "ORD-1000", true)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1000", applied.GlobalFilter)
	assert.Equal(t, 1, applied.Filtered)
}

func TestWorkspaceClose(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace(NewTableCatalog(testDataset()), OpenOptions{FilterDebounce: 10 * time.Millisecond})
	_, err := ws.SetFilter(TableOrders, "zzz", false)
	require.NoError(t, err)
	ws.Close()
	_, err = ws.Snapshot(TableOrders)
	assert.ErrorIs(t, err, ErrWorkspaceClosed)
	_, err = ws.Snapshot("invoices")
	assert.ErrorIs(t, err, ErrWorkspaceClosed)
}
