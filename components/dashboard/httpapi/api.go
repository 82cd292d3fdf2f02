package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2/utils"
	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/dashboard/commands"
	"github.com/goliatone/go-backoffice/components/dashboard/queries"
	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
)

// Workspace is the per-session table surface handlers operate on.
type Workspace interface {
	Dispatch(code string, ev tableview.Event) (tableview.Snapshot, error)
	SetFilter(code, text string, flush bool) (tableview.Snapshot, error)
	Snapshot(code string) (tableview.Snapshot, error)
	Reset(code string)
}

// WorkspaceResolver maps a request to its workspace.
type WorkspaceResolver func(router.Context) Workspace

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Layout    gocommand.Querier[queries.LayoutInput, dashboard.Layout]
	Widget    gocommand.Querier[queries.WidgetInput, dashboard.WidgetInstance]
	Lookup    gocommand.Querier[queries.RecordLookupInput, records.Record]
	Chart     gocommand.Querier[queries.ChartInput, queries.ChartResult]
	Tables    func() []dashboard.TableInfo
	Workspace WorkspaceResolver
	Telemetry commands.Telemetry
	Logger    *zap.Logger
}

type filterPayload struct {
	Text string `json:"text"`
}

type pagePayload struct {
	Index *int `json:"index"`
}

type sizePayload struct {
	Size int `json:"size"`
}

// HandleLayout returns every area with widget data attached.
func (h *Handlers) HandleLayout(c router.Context) error {
	layout, err := h.Layout.Query(c.Context(), queries.LayoutInput{})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, layout)
}

// HandleWidget returns a single widget payload.
func (h *Handlers) HandleWidget(c router.Context) error {
	widget, err := h.Widget.Query(c.Context(), queries.WidgetInput{WidgetID: param(c, "id")})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, widget)
}

// HandleTables lists the catalog.
func (h *Handlers) HandleTables(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"tables": h.Tables()})
}

// HandleSnapshot renders the current page of a table.
func (h *Handlers) HandleSnapshot(c router.Context) error {
	snap, err := queries.NewTableSnapshotQuery(h.Workspace(c)).Query(c.Context(), queries.TableSnapshotInput{Table: param(c, "table")})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// HandleFilter applies filter text right away; HTTP clients debounce on
// their side.
func (h *Handlers) HandleFilter(c router.Context) error {
	var payload filterPayload
	if err := decodeBody(c, &payload); err != nil {
		return respondStatus(c, http.StatusBadRequest, err)
	}
	cmd := commands.NewSetTableFilterCommand(h.Workspace(c), h.Telemetry)
	if err := cmd.Execute(c.Context(), commands.SetTableFilterInput{Table: param(c, "table"), Text: payload.Text, Flush: true}); err != nil {
		return h.respondError(c, err)
	}
	return h.HandleSnapshot(c)
}

// HandleSort toggles the sort of a column.
func (h *Handlers) HandleSort(c router.Context) error {
	return h.dispatch(c, tableview.ToggleSort{Column: param(c, "column")})
}

// HandlePage jumps to a page index.
func (h *Handlers) HandlePage(c router.Context) error {
	var payload pagePayload
	if err := decodeBody(c, &payload); err != nil {
		return respondStatus(c, http.StatusBadRequest, err)
	}
	if payload.Index == nil {
		return respondStatus(c, http.StatusBadRequest, errors.New("index is required"))
	}
	return h.dispatch(c, tableview.SetPageIndex{Index: *payload.Index})
}

// HandleNextPage advances one page.
func (h *Handlers) HandleNextPage(c router.Context) error {
	return h.dispatch(c, tableview.NextPage{})
}

// HandlePreviousPage goes back one page.
func (h *Handlers) HandlePreviousPage(c router.Context) error {
	return h.dispatch(c, tableview.PreviousPage{})
}

// HandlePageSize changes rows per page. Only the offered sizes are accepted.
func (h *Handlers) HandlePageSize(c router.Context) error {
	var payload sizePayload
	if err := decodeBody(c, &payload); err != nil {
		return respondStatus(c, http.StatusBadRequest, err)
	}
	if !slices.Contains(tableview.PageSizeOptions, payload.Size) {
		return respondStatus(c, http.StatusBadRequest, errors.New("unsupported page size"))
	}
	return h.dispatch(c, tableview.SetPageSize{Size: payload.Size})
}

// HandleSelectRow toggles one row.
func (h *Handlers) HandleSelectRow(c router.Context) error {
	return h.dispatch(c, tableview.ToggleRowSelected{RowID: param(c, "row")})
}

// HandleSelectPage toggles every row on the visible page.
func (h *Handlers) HandleSelectPage(c router.Context) error {
	return h.dispatch(c, tableview.ToggleAllOnPage{})
}

// HandleReset drops the table state of the session.
func (h *Handlers) HandleReset(c router.Context) error {
	ws := h.Workspace(c)
	ws.Reset(param(c, "table"))
	return h.HandleSnapshot(c)
}

// HandleRecord returns one record by id.
func (h *Handlers) HandleRecord(c router.Context) error {
	rec, err := h.Lookup.Query(c.Context(), queries.RecordLookupInput{Table: param(c, "table"), ID: param(c, "id")})
	if errors.Is(err, records.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// HandleAggregate sums a table by month over the date and amount query fields.
func (h *Handlers) HandleAggregate(c router.Context) error {
	result, err := h.Chart.Query(c.Context(), queries.ChartInput{
		Table:       param(c, "table"),
		DateField:   queryOr(c, "date_field", "date"),
		AmountField: strings.TrimSpace(c.Query("amount_field")),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handlers) dispatch(c router.Context, ev tableview.Event) error {
	cmd := commands.NewDispatchTableEventCommand(h.Workspace(c), h.Telemetry)
	if err := cmd.Execute(c.Context(), commands.DispatchTableEventInput{Table: param(c, "table"), Event: ev}); err != nil {
		return h.respondError(c, err)
	}
	return h.HandleSnapshot(c)
}

func (h *Handlers) respondError(c router.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("request failed", zap.String("table", c.Param("table")), zap.Error(err))
	}
	return respondStatus(c, status, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownTable),
		errors.Is(err, dashboard.ErrWidgetNotFound),
		errors.Is(err, records.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrTableRequired),
		errors.Is(err, queries.ErrFieldsRequired):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrWorkspaceClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func respondStatus(c router.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// param copies a route parameter out of the request buffer before it is
// kept in table or session state.
func param(c router.Context, name string) string {
	return utils.CopyString(c.Param(name))
}

func queryOr(c router.Context, name, fallback string) string {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return v
	}
	return fallback
}

func decodeBody(c router.Context, dst any) error {
	body := c.Body()
	if len(body) == 0 {
		return errors.New("request body is required")
	}
	return json.Unmarshal(body, dst)
}
