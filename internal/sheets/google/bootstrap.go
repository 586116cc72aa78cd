package google

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	gsheet "google.golang.org/api/sheets/v4"

	"ledgerly/internal/core"
)

const defaultSpreadsheetName = "My_Finance_Data"

var transactionHeaders = []any{"ID", "Date", "Amount", "Description", "Category"}
var categoryHeaders = []any{"Category", "Icon", "Type"}

// defaultCategories seeds a fresh Categories tab, lending pair included.
var defaultCategories = [][]any{
	{"Food", "🍔", "expense"},
	{"Transport", "🚗", "expense"},
	{"Shopping", "🛍️", "expense"},
	{"Entertainment", "🎬", "expense"},
	{"Bills", "💡", "expense"},
	{"Health", "💊", "expense"},
	{"Investments", "📈", "expense"},
	{core.LendCategory, "🤝", "expense"},
	{"Salary", "💰", "income"},
	{"Business", "💼", "income"},
	{"Freelance", "💻", "income"},
	{"Investments", "📈", "income"},
	{core.ReturnLendCategory, "🤝", "income"},
}

func spreadsheetName() string {
	if name := strings.TrimSpace(os.Getenv("LEDGERLY_SPREADSHEET_NAME")); name != "" {
		return name
	}
	return defaultSpreadsheetName
}

// EnsureSpreadsheet finds the tracker spreadsheet in Drive by name,
// creating and seeding it when absent, and returns its id.
func (c *Client) EnsureSpreadsheet(ctx context.Context) (string, error) {
	name := spreadsheetName()
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", name)
	list, err := c.drive.Files.List().Q(query).Spaces("drive").Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("search drive: %w", err)
	}
	if len(list.Files) > 0 {
		slog.InfoContext(ctx, "Found existing spreadsheet", "name", name, "id", list.Files[0].Id)
		return list.Files[0].Id, nil
	}
	return c.createSpreadsheet(ctx, name)
}

func (c *Client) createSpreadsheet(ctx context.Context, name string) (string, error) {
	ss := &gsheet.Spreadsheet{
		Properties: &gsheet.SpreadsheetProperties{Title: name},
		Sheets: []*gsheet.Sheet{
			{Properties: &gsheet.SheetProperties{Title: tabExpenditure}},
			{Properties: &gsheet.SheetProperties{Title: tabIncome}},
			{Properties: &gsheet.SheetProperties{Title: tabCategories}},
		},
	}
	created, err := c.svc.Spreadsheets.Create(ss).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}

	data := []*gsheet.ValueRange{
		{Range: tabExpenditure + "!A1:E1", Values: [][]any{transactionHeaders}},
		{Range: tabIncome + "!A1:E1", Values: [][]any{transactionHeaders}},
		{Range: tabCategories + "!A1:C1", Values: [][]any{categoryHeaders}},
		{Range: tabCategories + "!A2:C", Values: defaultCategories},
	}
	req := &gsheet.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: data}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(created.SpreadsheetId, req).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("seed spreadsheet: %w", err)
	}

	slog.InfoContext(ctx, "Created spreadsheet", "name", name, "id", created.SpreadsheetId)
	return created.SpreadsheetId, nil
}

// RepairStructure recreates missing tabs with their headers and backfills
// missing row ids on the transaction tabs. Rows created by hand in the
// sheet UI have no id until this runs.
func (c *Client) RepairStructure(ctx context.Context) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets(properties(title))").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	existing := map[string]bool{}
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			existing[s.Properties.Title] = true
		}
	}

	required := []struct {
		title   string
		headers []any
	}{
		{tabExpenditure, transactionHeaders},
		{tabIncome, transactionHeaders},
		{tabCategories, categoryHeaders},
	}

	var addRequests []*gsheet.Request
	var dataUpdates []*gsheet.ValueRange
	for _, tab := range required {
		if existing[tab.title] {
			continue
		}
		addRequests = append(addRequests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab.title},
			},
		})
		dataUpdates = append(dataUpdates, &gsheet.ValueRange{
			Range:  tab.title + "!A1",
			Values: [][]any{tab.headers},
		})
		if tab.title == tabCategories {
			dataUpdates = append(dataUpdates, &gsheet.ValueRange{
				Range:  tabCategories + "!A2",
				Values: defaultCategories,
			})
		}
	}

	if len(addRequests) > 0 {
		req := &gsheet.BatchUpdateSpreadsheetRequest{Requests: addRequests}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("create missing tabs: %w", err)
		}
		slog.InfoContext(ctx, "Created missing tabs", "count", len(addRequests))
	}
	if len(dataUpdates) > 0 {
		req := &gsheet.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: dataUpdates}
		if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("write tab headers: %w", err)
		}
	}

	for _, tab := range []string{tabExpenditure, tabIncome} {
		if err := c.backfillIDs(ctx, tab); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) backfillIDs(ctx context.Context, tab string) error {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tab+"!A:E").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", tab, err)
	}
	var updates []*gsheet.ValueRange
	for i, row := range resp.Values {
		if i == 0 {
			continue // header
		}
		if len(row) > 0 && strings.TrimSpace(fmt.Sprint(row[0])) != "" {
			continue
		}
		if len(row) == 0 {
			continue // fully blank row
		}
		updates = append(updates, &gsheet.ValueRange{
			Range:  fmt.Sprintf("%s!A%d", tab, i+1),
			Values: [][]any{{uuid.NewString()}},
		})
	}
	if len(updates) == 0 {
		return nil
	}
	req := &gsheet.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: updates}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("backfill ids in %s: %w", tab, err)
	}
	slog.InfoContext(ctx, "Backfilled missing row ids", "tab", tab, "count", len(updates))
	return nil
}
