package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-backoffice/components/aggregate"
	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
)

// TableSnapshotInput names a mounted table.
type TableSnapshotInput struct {
	Table string
}

type snapshotSource interface {
	Snapshot(code string) (tableview.Snapshot, error)
}

// TableSnapshotQuery renders the current page of a workspace table.
type TableSnapshotQuery struct {
	workspace snapshotSource
}

// NewTableSnapshotQuery builds the query.
func NewTableSnapshotQuery(workspace snapshotSource) *TableSnapshotQuery {
	return &TableSnapshotQuery{workspace: workspace}
}

var _ gocommand.Querier[TableSnapshotInput, tableview.Snapshot] = (*TableSnapshotQuery)(nil)

// Query returns the snapshot, mounting the table on first use.
func (q *TableSnapshotQuery) Query(_ context.Context, input TableSnapshotInput) (tableview.Snapshot, error) {
	return q.workspace.Snapshot(input.Table)
}

type recordSource interface {
	Lookup(code, id string) (records.Record, error)
	Records(code string) ([]records.Record, error)
}

// RecordLookupInput identifies one record of a table.
type RecordLookupInput struct {
	Table string
	ID    string
}

// RecordLookupQuery fetches a record by identity. Unknown ids return an
// error wrapping records.ErrRecordNotFound.
type RecordLookupQuery struct {
	source recordSource
}

// NewRecordLookupQuery builds the query.
func NewRecordLookupQuery(source recordSource) *RecordLookupQuery {
	return &RecordLookupQuery{source: source}
}

var _ gocommand.Querier[RecordLookupInput, records.Record] = (*RecordLookupQuery)(nil)

// Query looks the record up.
func (q *RecordLookupQuery) Query(_ context.Context, input RecordLookupInput) (records.Record, error) {
	return q.source.Lookup(input.Table, input.ID)
}

// ErrFieldsRequired is returned when a chart query omits its date or amount field.
var ErrFieldsRequired = errors.New("queries: date and amount fields are required")

// ChartInput selects the fields a table is bucketed by.
type ChartInput struct {
	Table       string
	DateField   string
	AmountField string
}

// ChartResult holds month buckets and their grand total.
type ChartResult struct {
	Table   string                `json:"table"`
	Buckets []aggregate.BucketSum `json:"buckets"`
	Total   string                `json:"total"`
}

// ChartQuery sums any table by month over named fields.
type ChartQuery struct {
	source recordSource
}

// NewChartQuery builds the query.
func NewChartQuery(source recordSource) *ChartQuery {
	return &ChartQuery{source: source}
}

var _ gocommand.Querier[ChartInput, ChartResult] = (*ChartQuery)(nil)

// Query loads every record of the table and groups it by month.
func (q *ChartQuery) Query(_ context.Context, input ChartInput) (ChartResult, error) {
	if input.DateField == "" || input.AmountField == "" {
		return ChartResult{}, ErrFieldsRequired
	}
	rows, err := q.source.Records(input.Table)
	if err != nil {
		return ChartResult{}, err
	}
	buckets := aggregate.SumByMonth(rows, input.DateField, input.AmountField)
	return ChartResult{
		Table:   input.Table,
		Buckets: buckets,
		Total:   aggregate.Total(buckets).StringFixed(2),
	}, nil
}
