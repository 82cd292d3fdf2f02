package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapWiresBackoffice(t *testing.T) {
	ds := testDataset()
	bo, err := Bootstrap(context.Background(), ds, BootstrapOptions{PageSize: 5})
	require.NoError(t, err)
	assert.Same(t, ds, bo.Dataset)

	for _, def := range DefaultWidgetDefinitions() {
		_, ok := bo.Registry.Provider(def.Code)
		assert.True(t, ok, def.Code)
	}

	ws := bo.NewWorkspace()
	defer ws.Close()
	snap, err := ws.Snapshot(TableOrders)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.PageSize)
}

func TestBootstrapRejectsInvalidLayout(t *testing.T) {
	doc := &LayoutDocument{Version: LayoutVersion, Areas: []LayoutArea{{
		Code:    AreaMain,
		Widgets: []LayoutWidget{{ID: "t", Definition: WidgetTable, Configuration: map[string]any{"table": "invoices"}}},
	}}}
	_, err := Bootstrap(context.Background(), testDataset(), BootstrapOptions{Layout: StaticLayout{Doc: doc}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget t")

	_, err = Bootstrap(context.Background(), nil, BootstrapOptions{})
	assert.Error(t, err)
}

func TestBootstrapAppliesWidgetHooks(t *testing.T) {
	const code = "test.widget.hooked"
	RegisterWidgetHook(func(reg *Registry) error {
		if err := reg.RegisterDefinition(WidgetDefinition{Code: code, Name: "Hooked"}); err != nil {
			return err
		}
		return reg.RegisterProvider(code, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
			return WidgetData{"hooked": true}, nil
		}))
	})
	bo, err := Bootstrap(context.Background(), testDataset(), BootstrapOptions{})
	require.NoError(t, err)
	_, ok := bo.Registry.Provider(code)
	assert.True(t, ok)
}
