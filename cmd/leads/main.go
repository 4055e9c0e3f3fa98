package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/database/postgres"
	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/pkg/db"
	"github.com/edushetra/edushetra-api/pkg/logger"
)

const maxCellWidth = 40

// leads prints the most recent rows of a lead table from the PostgreSQL store.
//
//	leads -table enquiries -limit 20
func main() {
	tableName := flag.String("table", string(repository.DemoBookings), "lead table to read")
	limit := flag.Int("limit", 20, "number of rows, newest first")
	flag.Parse()

	table, err := repository.ParseTable(*tableName)
	if err != nil {
		color.Red("%v", err)
		fmt.Fprintf(os.Stderr, "tables: %v\n", repository.Tables)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		color.Red("DATABASE_URL is required")
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       "warn",
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "edushetra-leads",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{URL: cfg.Database.URL, MaxConns: 2, MinConns: 1})
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	client := postgres.NewClient(pool)
	defer client.Close()

	repo := repository.NewLeadRepository(client, config.StoreDriverPostgres)
	listing, err := repo.ListRecent(ctx, table, *limit)
	if err != nil {
		color.Red("Failed to read %s: %v", table, err)
		os.Exit(1)
	}

	renderListing(os.Stdout, table, listing)
}

func renderListing(w io.Writer, table repository.Table, listing *repository.Listing) {
	color.New(color.FgYellow).Fprintf(w, "\n%s (%d rows)\n", table, len(listing.Rows))
	if len(listing.Rows) == 0 {
		color.New(color.FgCyan).Fprintln(w, "No leads yet.")
		return
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(listing.Columns)
	tw.SetAutoWrapText(false)
	for _, row := range listing.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = truncate(cell, maxCellWidth)
		}
		tw.Append(cells)
	}
	tw.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
