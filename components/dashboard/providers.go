package dashboard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-backoffice/components/aggregate"
	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
)

// Widget definition codes.
const (
	WidgetStats             = "backoffice.widget.stats"
	WidgetTable             = "backoffice.widget.table"
	WidgetDisbursementChart = "backoffice.widget.disbursement_chart"
	WidgetRevenueChart      = "backoffice.widget.revenue_chart"
	WidgetOrderStatusChart  = "backoffice.widget.order_status_chart"
	WidgetCalendar          = "backoffice.widget.calendar"
	WidgetSellerProfile     = "backoffice.widget.seller_profile"
)

// ProviderDeps carries what the built-in providers read from.
type ProviderDeps struct {
	Dataset      *records.Dataset
	Catalog      *TableCatalog
	ChartOptions []EChartsProviderOption
}

// RegisterProviders attaches the built-in providers to reg.
func RegisterProviders(reg ProviderRegistry, deps ProviderDeps) error {
	if deps.Dataset == nil {
		return errors.New("dashboard: providers require a dataset")
	}
	if deps.Catalog == nil {
		deps.Catalog = NewTableCatalog(deps.Dataset)
	}
	ds := deps.Dataset
	providers := map[string]Provider{
		WidgetStats:             NewStatsProvider(ds),
		WidgetTable:             NewTableProvider(deps.Catalog),
		WidgetDisbursementChart: NewEChartsProvider(ChartBar, DisbursementsByMonth(ds), deps.ChartOptions...),
		WidgetRevenueChart:      NewEChartsProvider(ChartLine, RevenueByMonth(ds), deps.ChartOptions...),
		WidgetOrderStatusChart:  NewEChartsProvider(ChartPie, OrdersByStatus(ds), deps.ChartOptions...),
		WidgetCalendar:          NewCalendarProvider(ds),
		WidgetSellerProfile:     NewSellerProfileProvider(ds),
	}
	for _, code := range slices.Sorted(maps.Keys(providers)) {
		if err := reg.RegisterProvider(code, providers[code]); err != nil {
			return err
		}
	}
	return nil
}

// NewStatsProvider summarizes the dataset into stat cards.
func NewStatsProvider(ds *records.Dataset) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		revenue := decimal.Zero
		orders := 0
		for _, o := range ds.Orders.All() {
			if o.Status == "Cancelled" {
				continue
			}
			orders++
			revenue = revenue.Add(o.Total)
		}
		activeSellers := 0
		for _, s := range ds.Sellers.All() {
			if s.Status == "Active" {
				activeSellers++
			}
		}
		pending := decimal.Zero
		for _, d := range ds.Disbursements.All() {
			if d.Status == "Pending" || d.Status == "Scheduled" {
				pending = pending.Add(d.Amount)
			}
		}
		insured := decimal.Zero
		for _, t := range ds.Transit.All() {
			if t.Status != "Delivered" {
				insured = insured.Add(t.InsuredValue)
			}
		}
		cards := []map[string]any{
			{"metric": "revenue", "label": "Revenue", "value": revenue.StringFixed(2), "display": formatMoney(revenue)},
			{"metric": "orders", "label": "Orders", "value": orders, "display": formatCount(orders)},
			{"metric": "active_sellers", "label": "Active Sellers", "value": activeSellers, "display": formatCount(activeSellers)},
			{"metric": "pending_disbursements", "label": "Pending Disbursements", "value": pending.StringFixed(2), "display": formatMoney(pending)},
			{"metric": "insured_in_transit", "label": "Insured In Transit", "value": insured.StringFixed(2), "display": formatMoney(insured)},
		}
		if want := stringSliceValue(meta.Instance.Configuration["metrics"]); len(want) > 0 {
			cards = slices.DeleteFunc(cards, func(card map[string]any) bool {
				return !slices.Contains(want, card["metric"].(string))
			})
		}
		return WidgetData{"cards": cards}, nil
	})
}

// NewTableProvider renders a table page from widget configuration. Every
// fetch mounts a fresh view so widget state never leaks between requests.
func NewTableProvider(catalog *TableCatalog) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		code := stringValue(cfg["table"], "")
		info, err := catalog.Info(code)
		if err != nil {
			return nil, err
		}
		table, err := catalog.Open(code, OpenOptions{
			PageSize: intValue(cfg["page_size"], tableview.DefaultPageSize),
			Columns:  stringSliceValue(cfg["columns"]),
		})
		if err != nil {
			return nil, err
		}
		defer table.Close()
		if filter := stringValue(cfg["filter"], ""); filter != "" {
			table.SetGlobalFilter(filter)
			table.FlushFilter()
		}
		if sort := stringValue(cfg["sort"], ""); sort != "" {
			table.Dispatch(tableview.ToggleSort{Column: sort})
			if boolValue(cfg["sort_desc"]) {
				table.Dispatch(tableview.ToggleSort{Column: sort})
			}
		}
		if page := intValue(cfg["page"], 0); page > 0 {
			table.Dispatch(tableview.SetPageIndex{Index: page})
		}
		return WidgetData{
			"table":    code,
			"title":    stringValue(cfg["title"], info.Title),
			"snapshot": table.Snapshot(),
		}, nil
	})
}

// DisbursementsByMonth sums disbursement amounts per month. The optional
// "status" setting restricts the disbursements counted.
func DisbursementsByMonth(ds *records.Dataset) SeriesSource {
	return func(_ context.Context, meta WidgetContext) (ChartData, error) {
		cfg := meta.Instance.Configuration
		status := stringValue(cfg["status"], "")
		var rs []records.Record
		for _, d := range ds.Disbursements.All() {
			if status != "" && d.Status != status {
				continue
			}
			rs = append(rs, d.Fields())
		}
		buckets := lastBuckets(aggregate.SumByMonth(rs, "date", "amount"), intValue(cfg["months"], 0))
		return monthlyChart("Disbursements", "Disbursed", buckets), nil
	}
}

// RevenueByMonth sums order totals per month, leaving out cancelled orders.
func RevenueByMonth(ds *records.Dataset) SeriesSource {
	return func(_ context.Context, meta WidgetContext) (ChartData, error) {
		var rs []records.Record
		for _, o := range ds.Orders.All() {
			if o.Status == "Cancelled" {
				continue
			}
			rs = append(rs, o.Fields())
		}
		buckets := lastBuckets(aggregate.SumByMonth(rs, "date", "total"), intValue(meta.Instance.Configuration["months"], 0))
		return monthlyChart("Revenue", "Revenue", buckets), nil
	}
}

// OrdersByStatus counts orders per status, or sums their totals when
// "measure" is "total". Slices follow the order lifecycle.
func OrdersByStatus(ds *records.Dataset) SeriesSource {
	statuses := records.OrderStatuses()
	return func(_ context.Context, meta WidgetContext) (ChartData, error) {
		byTotal := stringValue(meta.Instance.Configuration["measure"], "count") == "total"
		buckets := aggregate.GroupSum(ds.Orders.All(),
			func(o records.Order) (string, int64, bool) {
				rank := slices.Index(statuses, o.Status)
				if rank < 0 {
					rank = len(statuses)
				}
				return o.Status, int64(rank), o.Status != ""
			},
			func(o records.Order) (decimal.Decimal, bool) {
				if byTotal {
					return o.Total, true
				}
				return decimal.NewFromInt(1), true
			},
		)
		points := make([]ChartPoint, len(buckets))
		for i, b := range buckets {
			points[i] = ChartPoint{Label: b.Label, Value: b.Sum.Round(2).InexactFloat64()}
		}
		return ChartData{
			Title:  "Orders by Status",
			Series: []ChartSeries{{Name: "Orders", Points: points}},
			Extra:  WidgetData{"buckets": buckets},
		}, nil
	}
}

func monthlyChart(title, series string, buckets []aggregate.BucketSum) ChartData {
	labels := bucketLabels(buckets)
	sums := aggregate.Sums(buckets)
	points := make([]ChartPoint, len(buckets))
	for i := range buckets {
		points[i] = ChartPoint{Label: labels[i], Value: sums[i]}
	}
	return ChartData{
		Title:  title,
		XAxis:  labels,
		Series: []ChartSeries{{Name: series, Points: points}},
		Extra: WidgetData{
			"buckets": buckets,
			"total":   aggregate.Total(buckets).StringFixed(2),
		},
	}
}

// bucketLabels adds the year to month labels when the buckets span years.
func bucketLabels(buckets []aggregate.BucketSum) []string {
	if len(buckets) == 0 || buckets[0].Key/12 == buckets[len(buckets)-1].Key/12 {
		return aggregate.Labels(buckets)
	}
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = aggregate.MonthLabel(b.Key)
	}
	return labels
}

func lastBuckets(buckets []aggregate.BucketSum, n int) []aggregate.BucketSum {
	if n <= 0 || n >= len(buckets) {
		return buckets
	}
	return buckets[len(buckets)-n:]
}

// NewCalendarProvider lists photo sessions of one month grouped by day. The
// month comes from the "month" setting (YYYY-MM) or the current time.
func NewCalendarProvider(ds *records.Dataset) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		month := meta.Now
		if month.IsZero() {
			month = time.Now()
		}
		if raw := stringValue(meta.Instance.Configuration["month"], ""); raw != "" {
			parsed, err := time.Parse("2006-01", raw)
			if err != nil {
				return nil, fmt.Errorf("dashboard: calendar month %q: %w", raw, err)
			}
			month = parsed
		}
		month = month.UTC()
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		sessions := slices.DeleteFunc(ds.Sessions.All(), func(p records.PhotoSession) bool {
			return p.Date.Before(start) || !p.Date.Before(end)
		})
		slices.SortStableFunc(sessions, func(a, b records.PhotoSession) int {
			return a.Date.Compare(b.Date)
		})
		days := []map[string]any{}
		var current map[string]any
		for _, p := range sessions {
			date := p.Date.Format("2006-01-02")
			if current == nil || current["date"] != date {
				current = map[string]any{"date": date, "day": p.Date.Day(), "sessions": []map[string]any{}}
				days = append(days, current)
			}
			current["sessions"] = append(current["sessions"].([]map[string]any), map[string]any{
				"id":           p.ID,
				"photographer": p.Photographer,
				"seller":       p.Seller,
				"pieces":       p.Pieces,
				"status":       p.Status,
			})
		}
		return WidgetData{
			"month":    start.Format("January 2006"),
			"days":     days,
			"sessions": len(sessions),
		}, nil
	})
}

// NewSellerProfileProvider looks up the seller named by "seller_id". An
// unknown id yields a not_found payload rather than an error.
func NewSellerProfileProvider(ds *records.Dataset) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		id := stringValue(meta.Instance.Configuration["seller_id"], "")
		seller, err := ds.Sellers.Lookup(id)
		if errors.Is(err, records.ErrRecordNotFound) {
			return WidgetData{"not_found": true, "seller_id": id}, nil
		}
		if err != nil {
			return nil, err
		}
		var orders []records.Order
		revenue := decimal.Zero
		for _, o := range ds.Orders.All() {
			if o.SellerID != seller.ID {
				continue
			}
			orders = append(orders, o)
			if o.Status != "Cancelled" {
				revenue = revenue.Add(o.Total)
			}
		}
		disbursed := decimal.Zero
		for _, d := range ds.Disbursements.All() {
			if d.SellerID == seller.ID && d.Status == "Paid" {
				disbursed = disbursed.Add(d.Amount)
			}
		}
		slices.SortStableFunc(orders, func(a, b records.Order) int { return b.Date.Compare(a.Date) })
		recent := make([]map[string]any, 0, 5)
		for _, o := range orders[:min(5, len(orders))] {
			recent = append(recent, map[string]any{
				"orderId": o.OrderID,
				"date":    formatDate(o.Date),
				"status":  o.Status,
				"total":   formatMoney(o.Total),
			})
		}
		return WidgetData{
			"not_found":     false,
			"seller":        seller.Fields(),
			"orders":        len(orders),
			"revenue":       formatMoney(revenue),
			"disbursed":     formatMoney(disbursed),
			"recent_orders": recent,
		}, nil
	})
}
