package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIndexesDefinitionsByTable(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	assert.Equal(t, []string{WidgetOrderStatusChart, WidgetRevenueChart, WidgetSellerProfile, WidgetStats}, reg.ForTable(TableOrders))
	assert.Equal(t, []string{WidgetCalendar}, reg.ForTable(TableSessions))
	assert.Empty(t, reg.ForTable(TableTeam))
	require.NoError(t, reg.CheckTables(NewTableCatalog(testDataset()).Codes()))
}

func TestRegistryReplacingDefinitionReindexes(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	def, ok := reg.Definition(WidgetCalendar)
	require.True(t, ok)

	def.Tables = []string{TableTeam}
	require.NoError(t, reg.RegisterDefinition(def))
	assert.Empty(t, reg.ForTable(TableSessions))
	assert.Equal(t, []string{WidgetCalendar}, reg.ForTable(TableTeam))
}

func TestRegistryCheckTablesReportsUnknownTables(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "custom.widget.invoices", Tables: []string{"invoices"}}))

	err := reg.CheckTables(NewTableCatalog(testDataset()).Codes())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.Contains(t, err.Error(), "custom.widget.invoices")

	assert.Error(t, reg.RegisterDefinition(WidgetDefinition{Code: "custom.widget.blank", Tables: []string{" "}}))
	assert.Error(t, reg.RegisterDefinition(WidgetDefinition{}))
}
