package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/erazemk/stockroom/internal/client"
	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/controller"
	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// runList prints every record.
func runList(ctx context.Context, cfg config.Config, _ options, args []string) error {
	if len(args) > 0 {
		return usageError("unexpected argument: " + args[0])
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := controller.NewList(client.New(cfg.APIURL, cfg.Timeout))
	l.Activate(ctx)
	st := l.State()
	if st.LoadErr != nil {
		return fmt.Errorf("listing inventory: %w", st.LoadErr)
	}
	printRecords(os.Stdout, st.Displayed)
	return nil
}

// runFind prints the first record matching a name.
func runFind(ctx context.Context, cfg config.Config, _ options, args []string) error {
	name, err := nameArg(args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := controller.NewManage(client.New(cfg.APIURL, cfg.Timeout), nil)
	m.Search(ctx, name)

	st := m.State()
	if st.FormIsError {
		return fmt.Errorf("%s", st.FormMessage)
	}
	printRecords(os.Stdout, []model.Record{*st.Current})
	return nil
}

// runDelete deletes a record after asking on the terminal, and records the
// outcome in the activity log.
func runDelete(ctx context.Context, cfg config.Config, opts options, args []string) error {
	name, err := nameArg(args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}

	var confirm controller.Confirmer = &terminalConfirmer{in: os.Stdin, out: os.Stdout}
	if opts.yes {
		confirm = controller.AlwaysConfirm
	}

	m := controller.NewManage(client.New(cfg.APIURL, cfg.Timeout), activityRecorder(database))
	m.Delete(ctx, name, confirm)

	st := m.State()
	if st.DeleteIsError {
		return fmt.Errorf("%s", st.DeleteMessage)
	}
	fmt.Println(st.DeleteMessage)
	return nil
}

func nameArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError("missing item name")
	}
	return strings.Join(args, " "), nil
}

// activityRecorder stores CLI activity without a session.
func activityRecorder(database *sql.DB) controller.Recorder {
	return func(ctx context.Context, a model.Activity) {
		if _, err := store.RecordActivity(ctx, database, a); err != nil {
			slog.Error("failed to record activity", "action", a.Action, "item", a.ItemName, "error", err)
		}
	}
}

// printRecords writes records as an aligned table.
func printRecords(w io.Writer, records []model.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tQTY\tPRICE\tSUPPLIER\tSTOCK\tFEATURED\tNOTE")
	for _, r := range records {
		featured := ""
		if r.IsFeatured() {
			featured = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ItemName, r.Category, r.Quantity, r.Price.StringFixed(2),
			r.SupplierName, r.StockStatus, featured, r.Note())
	}
	tw.Flush()
}
