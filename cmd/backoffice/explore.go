package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/tableview"
)

const exploreHelp = `commands:
  /text         filter rows (applied after typing pauses)
  flush         apply a pending filter now
  sort <col>    cycle sort on a column
  next, prev    move one page
  page <n>      jump to page n
  size <n>      rows per page
  select <id>   toggle a row
  select-page   toggle every row on the page
  show          print the current page
  quit          leave`

type exploreCmd struct {
	Code     string `arg:"" help:"Table code."`
	PageSize int    `name:"page-size" help:"Rows per page (defaults to tables.page_size)."`
}

func (cmd *exploreCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.boot(ctx)
	if err != nil {
		return err
	}
	pageSize := cmd.PageSize
	if pageSize == 0 {
		pageSize = rt.cfg.Tables.PageSize
	}
	return explore(ctx, rt.backoffice.Catalog, cmd.Code, pageSize, rt.cfg.Tables.FilterDebounce, os.Stdin, os.Stdout)
}

// syncWriter serializes output from the prompt loop and debounced filters.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) render(snap tableview.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = renderSnapshot(s.w, snap)
}

func (s *syncWriter) println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, a...)
}

// explore runs a line-oriented session over one table until quit or EOF.
// Every state change prints the new page.
func explore(ctx context.Context, catalog *dashboard.TableCatalog, code string, pageSize int, debounce time.Duration, in io.Reader, out io.Writer) error {
	w := &syncWriter{w: out}
	view, err := catalog.Open(code, dashboard.OpenOptions{
		PageSize:       pageSize,
		FilterDebounce: debounce,
		OnChange:       w.render,
	})
	if err != nil {
		return err
	}
	defer view.Close()
	w.render(view.Snapshot())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		raw := strings.TrimRight(scanner.Text(), "\r")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			view.SetGlobalFilter(strings.TrimPrefix(strings.TrimLeft(raw, " \t"), "/"))
			continue
		}
		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch verb {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			w.println(exploreHelp)
		case "show":
			w.render(view.Snapshot())
		case "flush":
			view.FlushFilter()
		case "sort":
			view.Dispatch(tableview.ToggleSort{Column: arg})
		case "next", "n":
			view.Dispatch(tableview.NextPage{})
		case "prev", "p":
			view.Dispatch(tableview.PreviousPage{})
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				w.println("page needs a number")
				continue
			}
			view.Dispatch(tableview.SetPageIndex{Index: n - 1})
		case "size":
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				w.println("size needs a positive number")
				continue
			}
			view.Dispatch(tableview.SetPageSize{Size: n})
		case "select":
			view.Dispatch(tableview.ToggleRowSelected{RowID: arg})
		case "select-page":
			view.Dispatch(tableview.ToggleAllOnPage{})
		default:
			w.println("unknown command:", verb)
		}
	}
	return scanner.Err()
}
