package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(data ChartData) SeriesSource {
	return func(context.Context, WidgetContext) (ChartData, error) {
		return data, nil
	}
}

func html(data WidgetData) string {
	s, _ := data["chart_html"].(string)
	return s
}

func TestEChartsProviderRendersEachType(t *testing.T) {
	t.Parallel()
	source := staticSource(ChartData{
		Title: "Revenue",
		XAxis: []string{"Jan", "Feb"},
		Series: []ChartSeries{{Name: "Revenue", Points: []ChartPoint{
			{Label: "Jan", Value: 10}, {Label: "Feb", Value: 20},
		}}},
	})
	for _, chartType := range []string{ChartBar, ChartLine, ChartPie} {
		provider := NewEChartsProvider(chartType, source)
		data, err := provider.Fetch(context.Background(), widgetContext("chart", nil))
		require.NoError(t, err, chartType)
		assert.Equal(t, chartType, data["chart_type"])
		assert.Equal(t, "Revenue", data["title"])
		assert.Equal(t, types.ThemeWesteros, data["theme"])
		assert.Contains(t, html(data), "echarts", chartType)
	}
}

func TestEChartsProviderConfigOverridesTitleAndTheme(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartBar, staticSource(ChartData{
		Title:  "Default",
		Series: []ChartSeries{{Name: "S", Points: []ChartPoint{{Value: 1}, {Value: 2}}}},
	}), WithChartTheme(types.ThemeWonderland))
	data, err := provider.Fetch(context.Background(), widgetContext("chart", map[string]any{
		"title": "Custom", "theme": types.ThemeMacarons,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Custom", data["title"])
	assert.Equal(t, types.ThemeMacarons, data["theme"])
	assert.Equal(t, []string{"Item 1", "Item 2"}, data["x_axis"])
}

func TestEChartsProviderInvalidType(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bubble", staticSource(ChartData{
		Series: []ChartSeries{{Name: "S", Points: []ChartPoint{{Value: 1}}}},
	}))
	_, err := provider.Fetch(context.Background(), widgetContext("chart", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported chart type")
}

func TestEChartsProviderRequiresSeries(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, staticSource(ChartData{}))
	_, err := provider.Fetch(context.Background(), widgetContext("chart", nil))
	require.Error(t, err)

	failing := NewEChartsProvider(ChartLine, func(context.Context, WidgetContext) (ChartData, error) {
		return ChartData{}, errors.New("source down")
	})
	_, err = failing.Fetch(context.Background(), widgetContext("chart", nil))
	assert.EqualError(t, err, "source down")
}

type countingCache struct {
	inner *ChartCache
	calls int
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	return c.inner.GetOrRender(key, func() (string, error) {
		c.calls++
		return render()
	})
}

func TestEChartsProviderCachesRenderedHTML(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(defaultChartTTL)}
	provider := NewEChartsProvider(ChartBar, staticSource(ChartData{
		Series: []ChartSeries{{Name: "S", Points: []ChartPoint{{Label: "a", Value: 1}}}},
	}), WithChartCache(cache))
	ctx := widgetContext("chart", map[string]any{"title": "A"})
	first, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	second, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, html(first), html(second))
	assert.Equal(t, 1, cache.calls)

	_, err = provider.Fetch(context.Background(), widgetContext("chart", map[string]any{"title": "B"}))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.calls)
}
