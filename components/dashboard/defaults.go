package dashboard

import (
	"slices"

	"github.com/goliatone/go-backoffice/components/tableview"
)

// Area codes of the default layout.
const (
	AreaMain    = "backoffice.dashboard.main"
	AreaSidebar = "backoffice.dashboard.sidebar"
	AreaFooter  = "backoffice.dashboard.footer"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: AreaMain, Name: "Back Office (Main)", Description: "Primary dashboard canvas"},
	{Code: AreaSidebar, Name: "Back Office (Sidebar)", Description: "Secondary widgets"},
	{Code: AreaFooter, Name: "Back Office (Footer)", Description: "Footer widgets"},
}

// DefaultAreaDefinitions returns the built-in dashboard areas.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	return slices.Clone(defaultAreaDefinitions)
}

// DefaultWidgetDefinitions returns the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return []WidgetDefinition{
		{
			Code:        WidgetStats,
			Name:        "Key Figures",
			Description: "Revenue, orders, sellers, payouts and insured transit at a glance.",
			Category:    "stats",
			Tables:      []string{TableOrders, TableSellers, TableDisbursements, TableTransit},
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"metrics": map[string]any{
						"type":        "array",
						"uniqueItems": true,
						"items": map[string]any{
							"type": "string",
							"enum": []string{"revenue", "orders", "active_sellers", "pending_disbursements", "insured_in_transit"},
						},
					},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetTable,
			Name:        "Data Table",
			Description: "Filterable, sortable, paginated view of a back-office table.",
			Category:    "tables",
			Schema:      tableConfigSchema(),
		},
		{
			Code:        WidgetDisbursementChart,
			Name:        "Disbursements by Month",
			Description: "Seller payouts summed per calendar month.",
			Category:    "charts",
			Tables:      []string{TableDisbursements},
			Schema: chartConfigSchema(map[string]any{
				"status": map[string]any{"type": "string", "enum": []string{"Pending", "Scheduled", "Paid", "Failed"}},
			}),
		},
		{
			Code:        WidgetRevenueChart,
			Name:        "Revenue by Month",
			Description: "Order revenue per calendar month, cancelled orders excluded.",
			Category:    "charts",
			Tables:      []string{TableOrders},
			Schema:      chartConfigSchema(nil),
		},
		{
			Code:        WidgetOrderStatusChart,
			Name:        "Orders by Status",
			Description: "Share of orders in each lifecycle status.",
			Category:    "charts",
			Tables:      []string{TableOrders},
			Schema: chartConfigSchema(map[string]any{
				"measure": map[string]any{"type": "string", "enum": []string{"count", "total"}, "default": "count"},
			}),
		},
		{
			Code:        WidgetCalendar,
			Name:        "Photo Session Calendar",
			Description: "Product photography bookings for a month.",
			Category:    "calendar",
			Tables:      []string{TableSessions},
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"month": map[string]any{"type": "string", "pattern": `^\d{4}-(0[1-9]|1[0-2])$`},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetSellerProfile,
			Name:        "Seller Profile",
			Description: "Sales and payouts of a single seller.",
			Category:    "sellers",
			Tables:      []string{TableSellers, TableOrders, TableDisbursements},
			Schema: map[string]any{
				"type":     "object",
				"required": []string{"seller_id"},
				"properties": map[string]any{
					"seller_id": map[string]any{"type": "string", "minLength": 1},
				},
				"additionalProperties": false,
			},
		},
	}
}

func tableConfigSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"table"},
		"properties": map[string]any{
			"table": map[string]any{
				"type": "string",
				"enum": []string{TableOrders, TableSellers, TableTeam, TableTransit, TableDisbursements, TableSessions},
			},
			"title":     map[string]any{"type": "string"},
			"filter":    map[string]any{"type": "string"},
			"sort":      map[string]any{"type": "string"},
			"sort_desc": map[string]any{"type": "boolean"},
			"page":      map[string]any{"type": "integer", "minimum": 0},
			"page_size": map[string]any{"type": "integer", "enum": slices.Clone(tableview.PageSizeOptions)},
			"columns": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string"},
			},
		},
		"additionalProperties": false,
	}
}

func chartConfigSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title":    map[string]any{"type": "string"},
		"subtitle": map[string]any{"type": "string"},
		"theme":    map[string]any{"type": "string"},
		"months":   map[string]any{"type": "integer", "minimum": 1, "maximum": 24},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

// DefaultLayout is used when no layout file is configured.
func DefaultLayout() *LayoutDocument {
	return &LayoutDocument{
		Version: LayoutVersion,
		Name:    "backoffice",
		Areas: []LayoutArea{
			{
				Code: AreaMain,
				Name: "Main",
				Widgets: []LayoutWidget{
					{ID: "key-figures", Definition: WidgetStats},
					{ID: "revenue", Definition: WidgetRevenueChart, Configuration: map[string]any{"months": 6}},
					{ID: "disbursements", Definition: WidgetDisbursementChart, Configuration: map[string]any{"months": 6}},
					{ID: "recent-orders", Definition: WidgetTable, Configuration: map[string]any{
						"table": TableOrders, "title": "Recent Orders", "sort": "date", "sort_desc": true, "page_size": 5,
					}},
				},
			},
			{
				Code: AreaSidebar,
				Name: "Sidebar",
				Widgets: []LayoutWidget{
					{ID: "order-status", Definition: WidgetOrderStatusChart},
					{ID: "sessions", Definition: WidgetCalendar},
					{ID: "top-seller", Definition: WidgetSellerProfile, Configuration: map[string]any{"seller_id": "SEL-100"}},
				},
			},
			{
				Code: AreaFooter,
				Name: "Footer",
				Widgets: []LayoutWidget{
					{ID: "transit", Definition: WidgetTable, Configuration: map[string]any{
						"table": TableTransit, "page_size": 5,
					}},
				},
			},
		},
	}
}
