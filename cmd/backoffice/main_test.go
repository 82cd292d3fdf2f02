package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/dashboard/queries"
	"github.com/goliatone/go-backoffice/pkg/config"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func testBackoffice(t *testing.T) *dashboard.Backoffice {
	t.Helper()
	cfg := config.Default()
	cfg.Data = config.DataConfig{Seed: 21, Orders: 30, Sellers: 5, Team: 4, Sessions: 8}
	bo, err := bootstrap(context.Background(), &cfg, zap.NewNop(), func() time.Time { return fixedNow })
	require.NoError(t, err)
	return bo
}

func TestTableCommandSnapshot(t *testing.T) {
	t.Parallel()
	bo := testBackoffice(t)

	cmd := &tableCmd{Code: dashboard.TableOrders, Sort: "orderId", Desc: true, Page: 2}
	snap, err := cmd.snapshot(bo.Catalog, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PageIndex)
	require.NotEmpty(t, snap.Rows)
	assert.Equal(t, "ORD-1020", snap.Rows[0].ID)

	var out bytes.Buffer
	require.NoError(t, renderSnapshot(&out, snap))
	assert.Contains(t, out.String(), "Order ID v")
	assert.Contains(t, out.String(), "Page 2 of 4, 31 of 31 records")
}

func TestTableCommandNoRecords(t *testing.T) {
	t.Parallel()
	bo := testBackoffice(t)

	snap, err := (&tableCmd{Code: dashboard.TableOrders, Filter: "no-such-order", Page: 1}).snapshot(bo.Catalog, 10)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, renderSnapshot(&out, snap))
	assert.Equal(t, "No records found.\n", out.String())

	_, err = (&tableCmd{Code: "invoices"}).snapshot(bo.Catalog, 10)
	assert.ErrorIs(t, err, dashboard.ErrUnknownTable)
}

func TestRenderBuckets(t *testing.T) {
	t.Parallel()
	bo := testBackoffice(t)
	result, err := queries.NewChartQuery(bo.Catalog).Query(context.Background(), queries.ChartInput{
		Table: dashboard.TableDisbursements, DateField: "date", AmountField: "amount",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, renderBuckets(&out, "amount", result))
	assert.Contains(t, out.String(), "Amount")
	assert.Contains(t, out.String(), result.Total)
}

func TestExploreSession(t *testing.T) {
	t.Parallel()
	bo := testBackoffice(t)
	script := strings.Join([]string{
		"next",
		"prev",
		"prev",
		"/ORD-1003",
		"select ORD-1003",
		"bogus",
		"page x",
		"quit",
		"next",
	}, "\n")
	var out bytes.Buffer
	err := explore(context.Background(), bo.Catalog, dashboard.TableOrders, 5, 0, strings.NewReader(script), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Page 2 of 7")
	assert.Contains(t, text, "* ORD-1003")
	assert.Contains(t, text, "Page 1 of 1, 1 of 31 records")
	assert.Contains(t, text, "unknown command: bogus")
	assert.Contains(t, text, "page needs a number")
}

func TestExploreUnknownTable(t *testing.T) {
	t.Parallel()
	bo := testBackoffice(t)
	err := explore(context.Background(), bo.Catalog, "invoices", 5, 0, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, dashboard.ErrUnknownTable)
}

func TestLayoutAddAndValidate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "layouts", "main.yaml")

	cmd := &layoutAddCmd{
		Path:       path,
		Definition: dashboard.WidgetTable,
		Area:       dashboard.AreaMain,
		Set:        map[string]string{"table": "sellers", "page_size": "20"},
	}
	id, err := addWidget(path, cmd.widget(), cmd.Area, false)
	require.NoError(t, err)
	assert.Equal(t, "table", id)

	_, err = addWidget(path, cmd.widget(), cmd.Area, false)
	assert.Error(t, err)
	_, err = addWidget(path, cmd.widget(), dashboard.AreaSidebar, true)
	require.NoError(t, err)

	doc, err := dashboard.ReadLayout(path)
	require.NoError(t, err)
	require.Len(t, doc.Areas, 2)
	assert.Empty(t, doc.Areas[0].Widgets)
	assert.Equal(t, 20, doc.Areas[1].Widgets[0].Configuration["page_size"])

	var out bytes.Buffer
	require.NoError(t, validateLayoutFile(&out, path))
	assert.Contains(t, out.String(), "2 areas, 1 widgets")
}

func TestLayoutAddRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	bad := (&layoutAddCmd{Definition: dashboard.WidgetTable, Set: map[string]string{"table": "orders", "page_size": "7"}}).widget()
	_, err := addWidget(path, bad, dashboard.AreaMain, false)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	_, err = addWidget(path, dashboard.LayoutWidget{ID: "x", Definition: "backoffice.widget.nope"}, dashboard.AreaMain, false)
	assert.Error(t, err)
}

func TestLayoutInitWritesDefault(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, (&layoutInitCmd{Path: path}).Run())
	assert.Error(t, (&layoutInitCmd{Path: path}).Run())
	require.NoError(t, validateLayoutFile(&bytes.Buffer{}, path))
}

func TestServerServesAPI(t *testing.T) {
	t.Parallel()
	app, sessions, err := newServer(testBackoffice(t), config.Default().Server, zap.NewNop())
	require.NoError(t, err)
	defer sessions.Close()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/tables", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeriveWidgetIDAndParseValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "seller-profile", deriveWidgetID(dashboard.WidgetSellerProfile))
	assert.Equal(t, 5, parseValue("5"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "f", parseValue("f"))
}
