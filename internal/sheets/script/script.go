// Package script implements the spreadsheet backend over a Google Apps
// Script web-app endpoint, the older of the two observed transports. The
// script owns the spreadsheet and exposes row CRUD through a single URL:
// reads are GETs with an action query parameter, writes are JSON POSTs.
package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledgerly/internal/core"
	"ledgerly/internal/sheets"
)

type Client struct {
	baseURL string
	http    *http.Client
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

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// wire shapes of the script endpoint

type scriptRequest struct {
	Action      string `json:"action"`
	Kind        string `json:"type,omitempty"`
	ID          string `json:"id,omitempty"`
	Date        string `json:"date,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type scriptResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type categoryPayload struct {
	Expenses []categoryEntry `json:"expenses"`
	Incomes  []categoryEntry `json:"incomes"`
}

type categoryEntry struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (c *Client) ListTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error) {
	action := "expenses"
	if kind == core.Income {
		action = "incomes"
	}
	var rows [][]string
	if err := c.get(ctx, action, &rows); err != nil {
		return nil, err
	}
	return core.FromRows(rows, kind), nil
}

func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	row := t.ToRow()
	resp, err := c.post(ctx, scriptRequest{
		Action:      "create",
		Kind:        string(t.Kind),
		Date:        row[1],
		Amount:      row[2],
		Description: t.Description,
		Category:    t.Category,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	row := t.ToRow()
	_, err := c.post(ctx, scriptRequest{
		Action:      "update",
		Kind:        string(t.Kind),
		ID:          t.ID,
		Date:        row[1],
		Amount:      row[2],
		Description: t.Description,
		Category:    t.Category,
	})
	return err
}

func (c *Client) DeleteTransaction(ctx context.Context, kind core.Kind, id string) error {
	_, err := c.post(ctx, scriptRequest{Action: "delete", Kind: string(kind), ID: id})
	return err
}

func (c *Client) ListCategories(ctx context.Context) (core.Catalog, error) {
	var payload categoryPayload
	if err := c.get(ctx, "categories", &payload); err != nil {
		return core.Catalog{}, err
	}
	cat := core.Catalog{}
	for _, e := range payload.Expenses {
		cat.Expenses = append(cat.Expenses, core.Category{Name: e.Name, Icon: e.Icon})
	}
	for _, e := range payload.Incomes {
		cat.Incomes = append(cat.Incomes, core.Category{Name: e.Name, Icon: e.Icon})
	}
	return cat, nil
}

func (c *Client) AppendCategory(ctx context.Context, kind core.Kind, cat core.Category) error {
	_, err := c.post(ctx, scriptRequest{
		Action:   "createCategory",
		Kind:     string(kind),
		Category: cat.Name,
		Icon:     cat.Icon,
	})
	return err
}

func (c *Client) DeleteCategory(ctx context.Context, kind core.Kind, name string) error {
	_, err := c.post(ctx, scriptRequest{
		Action:   "deleteCategory",
		Kind:     string(kind),
		Category: name,
	})
	return err
}

func (c *Client) get(ctx context.Context, action string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action="+action, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("script %s: %w", action, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("script %s: unexpected status %d", action, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read script response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode script %s response: %w", action, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload scriptRequest) (*scriptResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", payload.Action, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("script %s: unexpected status %d", payload.Action, resp.StatusCode)
	}
	var decoded scriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode script %s response: %w", payload.Action, err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("script %s: %s", payload.Action, decoded.Error)
	}
	return &decoded, nil
}
