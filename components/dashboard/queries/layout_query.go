package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-backoffice/components/dashboard"
)

// LayoutInput requests the resolved dashboard layout.
type LayoutInput struct{}

type layoutService interface {
	ConfigureLayout(ctx context.Context) (dashboard.Layout, error)
}

// LayoutQuery returns the layout with provider data attached.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[LayoutInput, dashboard.Layout] = (*LayoutQuery)(nil)

// Query resolves every area.
func (q *LayoutQuery) Query(ctx context.Context, _ LayoutInput) (dashboard.Layout, error) {
	return q.service.ConfigureLayout(ctx)
}

// WidgetInput identifies one widget of the layout.
type WidgetInput struct {
	WidgetID string
}

type widgetService interface {
	Widget(ctx context.Context, id string) (dashboard.WidgetInstance, error)
}

// WidgetQuery resolves a single widget instance.
type WidgetQuery struct {
	service widgetService
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(service widgetService) *WidgetQuery {
	return &WidgetQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, dashboard.WidgetInstance] = (*WidgetQuery)(nil)

// Query runs the widget's provider.
func (q *WidgetQuery) Query(ctx context.Context, input WidgetInput) (dashboard.WidgetInstance, error) {
	return q.service.Widget(ctx, input.WidgetID)
}
