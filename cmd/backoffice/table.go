package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/tableview"
)

type tableCmd struct {
	Code     string   `arg:"" help:"Table code (orders, sellers, team, transit, disbursements, sessions)."`
	Filter   string   `short:"f" help:"Global filter text."`
	Sort     string   `short:"s" help:"Column id to sort by."`
	Desc     bool     `help:"Sort descending."`
	Page     int      `short:"p" default:"1" help:"Page number, starting at 1."`
	PageSize int      `name:"page-size" help:"Rows per page (defaults to tables.page_size)."`
	Columns  []string `help:"Column ids to show."`
}

func (cmd *tableCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.boot(ctx)
	if err != nil {
		return err
	}
	pageSize := cmd.PageSize
	if pageSize == 0 {
		pageSize = rt.cfg.Tables.PageSize
	}
	snap, err := cmd.snapshot(rt.backoffice.Catalog, pageSize)
	if err != nil {
		return err
	}
	return renderSnapshot(os.Stdout, snap)
}

// snapshot opens a one-shot view and replays the flags as view events.
func (cmd *tableCmd) snapshot(catalog *dashboard.TableCatalog, pageSize int) (tableview.Snapshot, error) {
	view, err := catalog.Open(cmd.Code, dashboard.OpenOptions{PageSize: pageSize, Columns: cmd.Columns})
	if err != nil {
		return tableview.Snapshot{}, err
	}
	defer view.Close()
	if cmd.Filter != "" {
		view.SetGlobalFilter(cmd.Filter)
		view.FlushFilter()
	}
	if cmd.Sort != "" {
		view.Dispatch(tableview.ToggleSort{Column: cmd.Sort})
		if cmd.Desc {
			view.Dispatch(tableview.ToggleSort{Column: cmd.Sort})
		}
	}
	if cmd.Page > 1 {
		view.Dispatch(tableview.SetPageIndex{Index: cmd.Page - 1})
	}
	return view.Snapshot(), nil
}

func renderSnapshot(w io.Writer, snap tableview.Snapshot) error {
	if snap.Empty {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	headers := make([]string, 0, len(snap.Columns))
	for _, col := range snap.Columns {
		header := col.Header
		switch col.Sort {
		case tableview.SortAscending:
			header += " ^"
		case tableview.SortDescending:
			header += " v"
		}
		headers = append(headers, header)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range snap.Rows {
		cells := row.Cells
		if row.Selected {
			cells = append([]string(nil), cells...)
			cells[0] = "* " + cells[0]
		}
		table.Append(cells)
	}
	table.Render()
	_, err := fmt.Fprintf(w, "Page %d of %d, %s of %s records\n",
		snap.PageIndex+1, snap.PageCount, humanize.Comma(int64(snap.Filtered)), humanize.Comma(int64(snap.Total)))
	return err
}
