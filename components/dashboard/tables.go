package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/components/tableview"
)

// ErrUnknownTable is returned for a table code the catalog does not hold.
var ErrUnknownTable = errors.New("dashboard: unknown table")

// Table codes served by the catalog.
const (
	TableOrders        = "orders"
	TableSellers       = "sellers"
	TableTeam          = "team"
	TableTransit       = "transit"
	TableDisbursements = "disbursements"
	TableSessions      = "sessions"
)

// OpenOptions configures a freshly mounted table view.
type OpenOptions struct {
	PageSize int
	// FilterDebounce delays filter text; zero applies it immediately.
	FilterDebounce time.Duration
	// Columns overrides the table's default allow-list.
	Columns  []string
	Initial  *tableview.State
	OnChange func(tableview.Snapshot)
}

// TableInfo describes a catalog entry.
type TableInfo struct {
	Code    string   `json:"code"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Records int      `json:"records"`
	Widgets []string `json:"widgets,omitempty"`
}

type tableEntry struct {
	info    TableInfo
	open    func(OpenOptions) tableview.Table
	lookup  func(id string) (records.Record, error)
	records func() []records.Record
}

// TableCatalog maps table codes to column sets over a dataset.
type TableCatalog struct {
	entries map[string]tableEntry
}

// NewTableCatalog registers every back-office table of ds.
func NewTableCatalog(ds *records.Dataset) *TableCatalog {
	c := &TableCatalog{entries: map[string]tableEntry{}}
	addTable(c, TableOrders, "Orders", ds.Orders, orderColumns(),
		"orderId", "customer", "seller", "status", "date", "items", "total")
	addTable(c, TableSellers, "Sellers", ds.Sellers, sellerColumns(),
		"id", "name", "store", "email", "status", "rating", "totalSales")
	addTable(c, TableTeam, "Team", ds.Team, teamColumns(),
		"id", "name", "email", "role", "status", "joinedAt")
	addTable(c, TableTransit, "Insured Transit", ds.Transit, transitColumns(),
		"transitID", "orderId", "carrier", "status", "insuredValue", "premium", "shippedAt")
	addTable(c, TableDisbursements, "Disbursements", ds.Disbursements, disbursementColumns(),
		"id", "seller", "orderId", "amount", "date", "status")
	addTable(c, TableSessions, "Photo Sessions", ds.Sessions, sessionColumns(),
		"id", "photographer", "seller", "date", "pieces", "status")
	return c
}

func addTable[R records.Fielder](c *TableCatalog, code, title string, store *records.Store[R], columns []tableview.Column[R], allow ...string) {
	defaults := tableview.SelectColumns(columns, allow...)
	ids := make([]string, len(defaults))
	for i, col := range defaults {
		ids[i] = col.ColumnID()
	}
	c.entries[code] = tableEntry{
		info: TableInfo{Code: code, Title: title, Columns: ids, Records: store.Len()},
		open: func(opts OpenOptions) tableview.Table {
			cols := defaults
			if len(opts.Columns) > 0 {
				cols = tableview.SelectColumns(columns, opts.Columns...)
			}
			viewOpts := []tableview.ViewOption[R]{
				tableview.WithRowID(store.Key),
				tableview.WithPageSize[R](opts.PageSize),
				tableview.WithFilterDebounce[R](opts.FilterDebounce),
			}
			if opts.Initial != nil {
				viewOpts = append(viewOpts, tableview.WithInitialState[R](*opts.Initial))
			}
			if opts.OnChange != nil {
				viewOpts = append(viewOpts, tableview.WithChangeListener[R](opts.OnChange))
			}
			return tableview.NewView(store.All(), cols, viewOpts...)
		},
		lookup: func(id string) (records.Record, error) {
			record, err := store.Lookup(id)
			if err != nil {
				return nil, err
			}
			return record.Fields(), nil
		},
		records: func() []records.Record {
			return records.ToRecords(store.All())
		},
	}
}

// Codes lists table codes alphabetically.
func (c *TableCatalog) Codes() []string {
	codes := make([]string, 0, len(c.entries))
	for code := range c.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Tables describes every table in code order.
func (c *TableCatalog) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(c.entries))
	for _, code := range c.Codes() {
		out = append(out, c.entries[code].info)
	}
	return out
}

// Info describes one table.
func (c *TableCatalog) Info(code string) (TableInfo, error) {
	entry, err := c.entry(code)
	if err != nil {
		return TableInfo{}, err
	}
	return entry.info, nil
}

// Open mounts a new view over the table. Each call gets independent state.
func (c *TableCatalog) Open(code string, opts OpenOptions) (tableview.Table, error) {
	entry, err := c.entry(code)
	if err != nil {
		return nil, err
	}
	return entry.open(opts), nil
}

// Lookup finds a record by identity. Unknown ids wrap records.ErrRecordNotFound.
func (c *TableCatalog) Lookup(code, id string) (records.Record, error) {
	entry, err := c.entry(code)
	if err != nil {
		return nil, err
	}
	return entry.lookup(id)
}

// Records returns every record of a table as field maps.
func (c *TableCatalog) Records(code string) ([]records.Record, error) {
	entry, err := c.entry(code)
	if err != nil {
		return nil, err
	}
	return entry.records(), nil
}

func (c *TableCatalog) entry(code string) (tableEntry, error) {
	entry, ok := c.entries[code]
	if !ok {
		return tableEntry{}, fmt.Errorf("%w: %s", ErrUnknownTable, code)
	}
	return entry, nil
}

func orderColumns() []tableview.Column[records.Order] {
	return []tableview.Column[records.Order]{
		{ID: "orderId", Header: "Order ID", Accessor: func(o records.Order) any { return o.OrderID }, Sortable: true},
		{ID: "customer", Header: "Customer", Accessor: func(o records.Order) any { return o.Customer }, Sortable: true},
		{ID: "seller", Header: "Seller", Accessor: func(o records.Order) any { return o.Seller }, Sortable: true},
		{ID: "sellerId", Header: "Seller ID", Accessor: func(o records.Order) any { return o.SellerID }},
		{ID: "status", Header: "Status", Accessor: func(o records.Order) any { return o.Status }, Sortable: true},
		{ID: "date", Header: "Date", Accessor: func(o records.Order) any { return o.Date }, Sortable: true,
			Render: func(o records.Order) string { return formatDate(o.Date) }},
		{ID: "items", Header: "Items", Accessor: func(o records.Order) any { return o.ItemCount() }, Sortable: true},
		{ID: "total", Header: "Total", Accessor: func(o records.Order) any { return o.Total }, Sortable: true,
			Render: func(o records.Order) string { return formatMoney(o.Total) }},
	}
}

func sellerColumns() []tableview.Column[records.Seller] {
	return []tableview.Column[records.Seller]{
		{ID: "id", Header: "Seller ID", Accessor: func(s records.Seller) any { return s.ID }, Sortable: true},
		{ID: "name", Header: "Name", Accessor: func(s records.Seller) any { return s.Name }, Sortable: true},
		{ID: "store", Header: "Store", Accessor: func(s records.Seller) any { return s.Store }, Sortable: true},
		{ID: "email", Header: "Email", Accessor: func(s records.Seller) any { return s.Email }},
		{ID: "status", Header: "Status", Accessor: func(s records.Seller) any { return s.Status }, Sortable: true},
		{ID: "rating", Header: "Rating", Accessor: func(s records.Seller) any { return s.Rating }, Sortable: true,
			Render: func(s records.Seller) string { return strconv.FormatFloat(s.Rating, 'f', 1, 64) }},
		{ID: "joinedAt", Header: "Joined", Accessor: func(s records.Seller) any { return s.JoinedAt }, Sortable: true,
			Render: func(s records.Seller) string { return formatDate(s.JoinedAt) }},
		{ID: "totalSales", Header: "Total Sales", Accessor: func(s records.Seller) any { return s.TotalSales() }, Sortable: true,
			Render: func(s records.Seller) string { return formatMoney(s.TotalSales()) }},
	}
}

func teamColumns() []tableview.Column[records.TeamMember] {
	return []tableview.Column[records.TeamMember]{
		{ID: "id", Header: "Member ID", Accessor: func(m records.TeamMember) any { return m.ID }, Sortable: true},
		{ID: "name", Header: "Name", Accessor: func(m records.TeamMember) any { return m.Name }, Sortable: true},
		{ID: "email", Header: "Email", Accessor: func(m records.TeamMember) any { return m.Email }},
		{ID: "role", Header: "Role", Accessor: func(m records.TeamMember) any { return m.Role }, Sortable: true},
		{ID: "status", Header: "Status", Accessor: func(m records.TeamMember) any { return m.Status }, Sortable: true},
		{ID: "joinedAt", Header: "Joined", Accessor: func(m records.TeamMember) any { return m.JoinedAt }, Sortable: true,
			Render: func(m records.TeamMember) string { return formatDate(m.JoinedAt) }},
	}
}

func transitColumns() []tableview.Column[records.TransitRecord] {
	return []tableview.Column[records.TransitRecord]{
		{ID: "transitID", Header: "Transit ID", Accessor: func(t records.TransitRecord) any { return t.TransitID }},
		{ID: "orderId", Header: "Order ID", Accessor: func(t records.TransitRecord) any { return t.OrderID }, Sortable: true},
		{ID: "carrier", Header: "Carrier", Accessor: func(t records.TransitRecord) any { return t.Carrier }, Sortable: true},
		{ID: "status", Header: "Status", Accessor: func(t records.TransitRecord) any { return t.Status }, Sortable: true},
		{ID: "insuredValue", Header: "Insured Value", Accessor: func(t records.TransitRecord) any { return t.InsuredValue }, Sortable: true,
			Render: func(t records.TransitRecord) string { return formatMoney(t.InsuredValue) }},
		{ID: "premium", Header: "Premium", Accessor: func(t records.TransitRecord) any { return t.Premium }, Sortable: true,
			Render: func(t records.TransitRecord) string { return formatMoney(t.Premium) }},
		{ID: "shippedAt", Header: "Shipped", Accessor: func(t records.TransitRecord) any { return t.ShippedAt }, Sortable: true,
			Render: func(t records.TransitRecord) string { return formatDate(t.ShippedAt) }},
	}
}

func disbursementColumns() []tableview.Column[records.Disbursement] {
	return []tableview.Column[records.Disbursement]{
		{ID: "id", Header: "Disbursement ID", Accessor: func(d records.Disbursement) any { return d.ID }, Sortable: true},
		{ID: "sellerId", Header: "Seller ID", Accessor: func(d records.Disbursement) any { return d.SellerID }},
		{ID: "seller", Header: "Seller", Accessor: func(d records.Disbursement) any { return d.Seller }, Sortable: true},
		{ID: "orderId", Header: "Order ID", Accessor: func(d records.Disbursement) any { return d.OrderID }, Sortable: true},
		{ID: "amount", Header: "Amount", Accessor: func(d records.Disbursement) any { return d.Amount }, Sortable: true,
			Render: func(d records.Disbursement) string { return formatMoney(d.Amount) }},
		{ID: "date", Header: "Date", Accessor: func(d records.Disbursement) any { return d.Date }, Sortable: true,
			Render: func(d records.Disbursement) string { return formatDate(d.Date) }},
		{ID: "status", Header: "Status", Accessor: func(d records.Disbursement) any { return d.Status }, Sortable: true},
	}
}

func sessionColumns() []tableview.Column[records.PhotoSession] {
	return []tableview.Column[records.PhotoSession]{
		{ID: "id", Header: "Session ID", Accessor: func(p records.PhotoSession) any { return p.ID }, Sortable: true},
		{ID: "photographer", Header: "Photographer", Accessor: func(p records.PhotoSession) any { return p.Photographer }, Sortable: true},
		{ID: "seller", Header: "Seller", Accessor: func(p records.PhotoSession) any { return p.Seller }, Sortable: true},
		{ID: "date", Header: "Date", Accessor: func(p records.PhotoSession) any { return p.Date }, Sortable: true,
			Render: func(p records.PhotoSession) string { return formatDate(p.Date) }},
		{ID: "pieces", Header: "Pieces", Accessor: func(p records.PhotoSession) any { return p.Pieces }, Sortable: true},
		{ID: "status", Header: "Status", Accessor: func(p records.PhotoSession) any { return p.Status }, Sortable: true},
	}
}
