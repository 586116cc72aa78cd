// Package google implements the spreadsheet backend on the Sheets and
// Drive REST APIs. Durable state lives in a single spreadsheet with three
// tabs: Expenditure, Income and Categories. Transaction rows are
// positional [ID, Date, Amount, Description, Category] with a header row;
// ids are UUIDs assigned on append.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	gdrive "google.golang.org/api/drive/v3"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ledgerly/internal/core"
	"ledgerly/internal/sheets"
)

const (
	tabExpenditure = "Expenditure"
	tabIncome      = "Income"
	tabCategories  = "Categories"

	// Data starts at row 2; row 1 holds the headers.
	transactionRange = "!A2:E"
	categoryRange    = "!A2:C"
)

type Client struct {
	svc           *gsheet.Service
	drive         *gdrive.Service
	spreadsheetID string
}

// Ensure interface conformance
var (
	_ sheets.TransactionLister   = (*Client)(nil)
	_ sheets.TransactionAppender = (*Client)(nil)
	_ sheets.TransactionUpdater  = (*Client)(nil)
	_ sheets.TransactionDeleter  = (*Client)(nil)
	_ sheets.CategoryLister      = (*Client)(nil)
	_ sheets.CategoryAppender    = (*Client)(nil)
	_ sheets.CategoryDeleter     = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using service account credentials.
// Required: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SPREADSHEET_ID; when unset the spreadsheet is located
// (or created) in Drive by name, see EnsureSpreadsheet.
func NewFromEnv(ctx context.Context) (*Client, error) {
	credentialsJSON, err := readCredentials(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope, gdrive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSvc, err := gdrive.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gdrive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	c := &Client{
		svc:           svc,
		drive:         driveSvc,
		spreadsheetID: strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID")),
	}
	if c.spreadsheetID == "" {
		id, err := c.EnsureSpreadsheet(ctx)
		if err != nil {
			return nil, fmt.Errorf("locate spreadsheet: %w", err)
		}
		c.spreadsheetID = id
	}
	return c, nil
}

// SpreadsheetID returns the id of the backing spreadsheet.
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

func readCredentials(ctx context.Context) ([]byte, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		slog.InfoContext(ctx, "Read service account credentials", "path", file, "size", len(data))
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func tabFor(kind core.Kind) string {
	if kind == core.Income {
		return tabIncome
	}
	return tabExpenditure
}

func (c *Client) ListTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := tabFor(kind) + transactionRange
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return core.FromRows(toStringRows(resp.Values), kind), nil
}

func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	t.ID = uuid.NewString()
	tab := tabFor(t.Kind)
	vr := &gsheet.ValueRange{Values: [][]any{rowToValues(t.ToRow())}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tab+"!A:E", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", tab, err)
	}
	slog.InfoContext(ctx, "Appended transaction row",
		"id", t.ID, "kind", t.Kind, "amount", t.Amount, "tab", tab)
	return t.ID, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := tabFor(t.Kind)
	rowIdx, err := c.findRowByID(ctx, tab, t.ID)
	if err != nil {
		return err
	}
	if rowIdx < 0 {
		// Already gone or never existed: no-op, per the backend contract.
		slog.WarnContext(ctx, "Update for unknown transaction id ignored", "id", t.ID, "tab", tab)
		return nil
	}
	// rowIdx is 0-based within the data range; +2 converts to the 1-based
	// sheet row below the header.
	rng := fmt.Sprintf("%s!A%d:E%d", tab, rowIdx+2, rowIdx+2)
	vr := &gsheet.ValueRange{Values: [][]any{rowToValues(t.ToRow())}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	slog.InfoContext(ctx, "Replaced transaction row", "id", t.ID, "tab", tab, "row", rowIdx+2)
	return nil
}

func (c *Client) DeleteTransaction(ctx context.Context, kind core.Kind, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := tabFor(kind)
	rowIdx, err := c.findRowByID(ctx, tab, id)
	if err != nil {
		return err
	}
	if rowIdx < 0 {
		slog.WarnContext(ctx, "Delete for unknown transaction id ignored", "id", id, "tab", tab)
		return nil
	}
	gid, err := c.sheetGID(ctx, tab)
	if err != nil {
		return err
	}
	return c.deleteRows(ctx, gid, rowIdx+1, rowIdx+2) // +1 skips the header
}

func (c *Client) ListCategories(ctx context.Context) (core.Catalog, error) {
	if c.svc == nil {
		return core.Catalog{}, errors.New("sheets service not initialized")
	}
	rng := tabCategories + categoryRange
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.Catalog{}, fmt.Errorf("read %s: %w", rng, err)
	}
	return catalogFromRows(toStringRows(resp.Values)), nil
}

func (c *Client) AppendCategory(ctx context.Context, kind core.Kind, cat core.Category) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	vr := &gsheet.ValueRange{Values: [][]any{{cat.Name, cat.Icon, string(kind)}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tabCategories+"!A:C", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append category: %w", err)
	}
	return nil
}

func (c *Client) DeleteCategory(ctx context.Context, kind core.Kind, name string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := tabCategories + categoryRange
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	rows := toStringRows(resp.Values)
	gid, err := c.sheetGID(ctx, tabCategories)
	if err != nil {
		return err
	}
	// Delete bottom-up so earlier indexes stay valid.
	for i := len(rows) - 1; i >= 0; i-- {
		if len(rows[i]) >= 3 && rows[i][0] == name && rows[i][2] == string(kind) {
			if err := c.deleteRows(ctx, gid, i+1, i+2); err != nil {
				return err
			}
		}
	}
	return nil
}

// findRowByID returns the 0-based data-range index of the row whose first
// cell equals id, or -1 when absent.
func (c *Client) findRowByID(ctx context.Context, tab, id string) (int, error) {
	rng := tab + "!A2:A"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return -1, fmt.Errorf("read %s: %w", rng, err)
	}
	for i, row := range resp.Values {
		if len(row) > 0 && strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i, nil
		}
	}
	return -1, nil
}

func (c *Client) sheetGID(ctx context.Context, tab string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == tab {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("tab %q not found", tab)
}

// deleteRows removes the 0-based half-open row interval [start, end) from
// the sheet with the given gid. Indexes include the header row.
func (c *Client) deleteRows(ctx context.Context, gid int64, start, end int) error {
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(start),
					EndIndex:   int64(end),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete rows [%d,%d): %w", start, end, err)
	}
	return nil
}

func toStringRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cols := make([]string, len(row))
		for i, v := range row {
			cols[i] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows = append(rows, cols)
	}
	return rows
}

func rowToValues(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// catalogFromRows partitions [name, icon, type] rows into the two
// category sets, keeping sheet order. Unknown types are skipped.
func catalogFromRows(rows [][]string) core.Catalog {
	var cat core.Catalog
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		entry := core.Category{Name: row[0]}
		if len(row) > 1 {
			entry.Icon = row[1]
		}
		kind := ""
		if len(row) > 2 {
			kind = row[2]
		}
		switch core.Kind(kind) {
		case core.Expense:
			cat.Expenses = append(cat.Expenses, entry)
		case core.Income:
			cat.Incomes = append(cat.Incomes, entry)
		}
	}
	return cat
}
