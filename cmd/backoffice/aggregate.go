package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ettle/strcase"
	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-backoffice/components/aggregate"
	"github.com/goliatone/go-backoffice/components/dashboard/queries"
)

type aggregateCmd struct {
	Table       string `arg:"" help:"Table code."`
	DateField   string `name:"date-field" default:"date" help:"Field holding the record date."`
	AmountField string `name:"amount-field" required:"" help:"Field holding the amount to sum."`
}

func (cmd *aggregateCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.boot(ctx)
	if err != nil {
		return err
	}
	result, err := queries.NewChartQuery(rt.backoffice.Catalog).Query(ctx, queries.ChartInput{
		Table:       cmd.Table,
		DateField:   cmd.DateField,
		AmountField: cmd.AmountField,
	})
	if err != nil {
		return err
	}
	return renderBuckets(os.Stdout, cmd.AmountField, result)
}

func renderBuckets(w io.Writer, amountField string, result queries.ChartResult) error {
	if len(result.Buckets) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Month", "Records", strcase.ToPascal(amountField)})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	count := 0
	for _, b := range result.Buckets {
		count += b.Count
		table.Append([]string{aggregate.MonthLabel(b.Key), humanize.Comma(int64(b.Count)), b.Sum.StringFixed(2)})
	}
	table.SetFooter([]string{"Total", humanize.Comma(int64(count)), result.Total})
	table.Render()
	return nil
}
