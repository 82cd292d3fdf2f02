package httpapi

import (
	"errors"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/dashboard/queries"
)

// Config wires a go-router router with the backoffice handlers.
type Config[T any] struct {
	Router     router.Router[T]
	Backoffice *dashboard.Backoffice
	Sessions   *Sessions
	Telemetry  dashboard.Telemetry
	Logger     *zap.Logger
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for backoffice endpoints.
type RouteConfig struct {
	Dashboard string
	Widget    string
	Tables    string
	Table     string
	Record    string
	Aggregate string
}

// Register mounts the JSON API and returns the session store it uses.
func Register[T any](cfg Config[T]) (*Sessions, error) {
	if cfg.Router == nil {
		return nil, errors.New("httpapi: router is required")
	}
	if cfg.Backoffice == nil {
		return nil, errors.New("httpapi: backoffice is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/api"
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = NewSessions(cfg.Backoffice.NewWorkspace)
	}
	bo := cfg.Backoffice
	h := &Handlers{
		Layout:    queries.NewLayoutQuery(bo.Service),
		Widget:    queries.NewWidgetQuery(bo.Service),
		Lookup:    queries.NewRecordLookupQuery(bo.Catalog),
		Chart:     queries.NewChartQuery(bo.Catalog),
		Tables:    bo.Tables,
		Workspace: func(c router.Context) Workspace { return sessions.Resolve(c) },
		Telemetry: cfg.Telemetry,
		Logger:    cfg.Logger,
	}
	routes := defaultRouteConfig(cfg.Routes)
	group := cfg.Router.Group(base)

	group.Get(routes.Dashboard, router.WrapHandler(h.HandleLayout))
	group.Get(routes.Widget, router.WrapHandler(h.HandleWidget))
	group.Get(routes.Tables, router.WrapHandler(h.HandleTables))
	group.Get(routes.Record, router.WrapHandler(h.HandleRecord))
	group.Get(routes.Aggregate, router.WrapHandler(h.HandleAggregate))

	table := group.Group(routes.Table)
	table.Get("", router.WrapHandler(h.HandleSnapshot))
	table.Post("/filter", router.WrapHandler(h.HandleFilter))
	table.Post("/sort/:column", router.WrapHandler(h.HandleSort))
	table.Post("/page", router.WrapHandler(h.HandlePage))
	table.Post("/page/next", router.WrapHandler(h.HandleNextPage))
	table.Post("/page/previous", router.WrapHandler(h.HandlePreviousPage))
	table.Post("/size", router.WrapHandler(h.HandlePageSize))
	table.Post("/select/:row", router.WrapHandler(h.HandleSelectRow))
	table.Post("/select-page", router.WrapHandler(h.HandleSelectPage))
	table.Post("/reset", router.WrapHandler(h.HandleReset))

	return sessions, nil
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.Widget == "" {
		routes.Widget = "/widgets/:id"
	}
	if routes.Tables == "" {
		routes.Tables = "/tables"
	}
	if routes.Table == "" {
		routes.Table = "/tables/:table"
	}
	if routes.Record == "" {
		routes.Record = "/records/:table/:id"
	}
	if routes.Aggregate == "" {
		routes.Aggregate = "/aggregate/:table"
	}
	return routes
}
