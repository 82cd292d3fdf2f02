package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-backoffice/components/tableview"
)

// ErrTableRequired is returned when a command does not name a table.
var ErrTableRequired = errors.New("commands: table code is required")

type tableWorkspace interface {
	Dispatch(code string, ev tableview.Event) (tableview.Snapshot, error)
	SetFilter(code, text string, flush bool) (tableview.Snapshot, error)
}

// DispatchTableEventInput applies one view event to a mounted table.
type DispatchTableEventInput struct {
	Table string
	Event tableview.Event
}

// DispatchTableEventCommand forwards view events to a workspace.
type DispatchTableEventCommand struct {
	workspace tableWorkspace
	recorder  tableRecorder
}

// NewDispatchTableEventCommand creates the command.
func NewDispatchTableEventCommand(workspace tableWorkspace, telemetry Telemetry) *DispatchTableEventCommand {
	return &DispatchTableEventCommand{workspace: workspace, recorder: tableRecorder{telemetry: telemetry}}
}

var _ gocommand.Commander[DispatchTableEventInput] = (*DispatchTableEventCommand)(nil)

// Execute applies the event. Navigation past the last page is not an error.
func (c *DispatchTableEventCommand) Execute(ctx context.Context, msg DispatchTableEventInput) error {
	if c.workspace == nil {
		return errors.New("commands: dispatch command requires workspace")
	}
	if strings.TrimSpace(msg.Table) == "" {
		return ErrTableRequired
	}
	if msg.Event == nil {
		return fmt.Errorf("commands: event is required for table %s", msg.Table)
	}
	snap, err := c.workspace.Dispatch(msg.Table, msg.Event)
	if err != nil {
		return err
	}
	c.recorder.record(ctx, EventTableChanged, msg.Table, snap, map[string]any{"event": EventName(msg.Event)})
	return nil
}

// SetTableFilterInput sets the global filter of a table.
type SetTableFilterInput struct {
	Table string
	Text  string
	// Flush applies the text before Execute returns instead of waiting for
	// the debounce delay.
	Flush bool
}

// SetTableFilterCommand schedules filter text on a workspace table.
type SetTableFilterCommand struct {
	workspace tableWorkspace
	recorder  tableRecorder
}

// NewSetTableFilterCommand creates the command.
func NewSetTableFilterCommand(workspace tableWorkspace, telemetry Telemetry) *SetTableFilterCommand {
	return &SetTableFilterCommand{workspace: workspace, recorder: tableRecorder{telemetry: telemetry}}
}

var _ gocommand.Commander[SetTableFilterInput] = (*SetTableFilterCommand)(nil)

// Execute schedules or applies the filter.
func (c *SetTableFilterCommand) Execute(ctx context.Context, msg SetTableFilterInput) error {
	if c.workspace == nil {
		return errors.New("commands: filter command requires workspace")
	}
	if strings.TrimSpace(msg.Table) == "" {
		return ErrTableRequired
	}
	snap, err := c.workspace.SetFilter(msg.Table, msg.Text, msg.Flush)
	if err != nil {
		return err
	}
	c.recorder.record(ctx, EventTableFiltered, msg.Table, snap, map[string]any{"flushed": msg.Flush})
	return nil
}

// EventName is the short name of a view event, used in telemetry and logs.
func EventName(ev tableview.Event) string {
	switch ev.(type) {
	case tableview.SetGlobalFilter:
		return "filter"
	case tableview.ToggleSort:
		return "sort"
	case tableview.SetPageIndex:
		return "page"
	case tableview.NextPage:
		return "next_page"
	case tableview.PreviousPage:
		return "previous_page"
	case tableview.SetPageSize:
		return "page_size"
	case tableview.ToggleRowSelected:
		return "select"
	case tableview.ToggleAllOnPage:
		return "select_page"
	default:
		return "unknown"
	}
}
