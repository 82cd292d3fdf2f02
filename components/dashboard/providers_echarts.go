package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "360px"
	defaultChartTTL    = 5 * time.Minute
)

// Chart types rendered by EChartsProvider.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// ChartSeries is one legend entry of a chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint is a labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartData is what a SeriesSource hands to the renderer.
type ChartData struct {
	Title    string
	Subtitle string
	XAxis    []string
	Series   []ChartSeries
	// Extra is merged into the widget payload.
	Extra WidgetData
}

// SeriesSource computes chart data for a widget instance.
type SeriesSource func(ctx context.Context, meta WidgetContext) (ChartData, error)

// EChartsProvider renders server-side chart HTML for one chart type.
type EChartsProvider struct {
	chartType  string
	source     SeriesSource
	cache      RenderCache
	theme      string
	height     string
	assetsHost string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets the theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		if theme != "" {
			p.theme = theme
		}
	}
}

// WithChartHeight sets the rendered chart height, e.g. "300px".
func WithChartHeight(height string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		if height != "" {
			p.height = height
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider that renders data from source.
func NewEChartsProvider(chartType string, source SeriesSource, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(chartType),
		source:    source,
		cache:     NewChartCache(defaultChartTTL),
		theme:     types.ThemeWesteros,
		height:    defaultChartHeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch computes the series and renders them to go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, fmt.Errorf("dashboard: chart %s has no series source", meta.Instance.ID)
	}
	cfg := meta.Instance.Configuration
	data, err := p.source(ctx, meta)
	if err != nil {
		return nil, err
	}
	if len(data.Series) == 0 {
		return nil, fmt.Errorf("dashboard: chart series is required")
	}
	title := stringValue(cfg["title"], data.Title)
	if title == "" {
		title = "Chart"
	}
	subtitle := stringValue(cfg["subtitle"], data.Subtitle)
	xAxis := data.XAxis
	if len(xAxis) == 0 {
		xAxis = inferredAxisLabels(data.Series)
	}
	theme := p.theme
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		theme = override
	}

	renderFn := func() (string, error) {
		return p.render(title, subtitle, theme, xAxis, data.Series)
	}
	var html string
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, p.chartType, configHash(cfg), seriesHash(xAxis, data.Series))
		html, err = p.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}

	out := WidgetData{
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      title,
		"subtitle":   subtitle,
		"theme":      theme,
		"x_axis":     xAxis,
		"series":     data.Series,
	}
	for k, v := range data.Extra {
		out[k] = v
	}
	return out, nil
}

func (p *EChartsProvider) render(title, subtitle, theme string, xAxis []string, series []ChartSeries) (string, error) {
	switch p.chartType {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(p.globalChartOptions(title, subtitle, theme)...)
		bar.SetXAxis(xAxis)
		for _, s := range series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(p.globalChartOptions(title, subtitle, theme)...)
		line.SetXAxis(xAxis)
		for _, s := range series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(p.globalChartOptions(title, subtitle, theme)...)
		for _, s := range series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		return renderChart(pie)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", p.chartType)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(title, subtitle, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: p.height,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}

func inferredAxisLabels(series []ChartSeries) []string {
	var labels []string
	for _, s := range series {
		if len(s.Points) <= len(labels) {
			continue
		}
		labels = make([]string, len(s.Points))
		for i, point := range s.Points {
			if point.Label != "" {
				labels[i] = point.Label
			} else {
				labels[i] = fmt.Sprintf("Item %d", i+1)
			}
		}
	}
	return labels
}

func seriesHash(xAxis []string, series []ChartSeries) string {
	return configHash(map[string]any{"x": xAxis, "s": series})
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return false
	}
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
