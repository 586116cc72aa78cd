// sheet-init is a one-shot tool that finds or creates the backing
// spreadsheet, adds any missing tabs and headers, seeds default
// categories, and backfills missing row ids.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	gsheet "ledgerly/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	if err := cli.RepairStructure(ctx); err != nil {
		logger.Error("Structure repair failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Spreadsheet ready", "spreadsheet_id", cli.SpreadsheetID())
	fmt.Println(cli.SpreadsheetID())
}
