package fineract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
)

// SearchResult is one hit from the global search endpoint.
type SearchResult struct {
	EntityID        int64  `json:"entityId"`
	EntityAccountNo string `json:"entityAccountNo"`
	EntityName      string `json:"entityName"`
	EntityType      string `json:"entityType"`
	ParentID        int64  `json:"parentId"`
	ParentName      string `json:"parentName"`
	EntityStatus    struct {
		ID    int64  `json:"id"`
		Code  string `json:"code"`
		Value string `json:"value"`
	} `json:"entityStatus"`
}

// Search runs the backend's global search, optionally restricted to one
// resource kind ("clients", "loans", "savings", ...).
func (c *Client) Search(ctx context.Context, query, resource string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	if resource != "" {
		q.Set("resource", resource)
	}

	var results []SearchResult
	if err := c.Get(ctx, "/search", q, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ClientByID fetches a single client record. The document is returned raw
// because callers relay it to the agent verbatim.
func (c *Client) ClientByID(ctx context.Context, clientID int64) (json.RawMessage, error) {
	raw, err := c.do(ctx, "GET", apiV1+fmt.Sprintf("/clients/%d", clientID), nil, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// ListClients pages through clients matching a free-text filter using the v2
// search endpoint.
func (c *Client) ListClients(ctx context.Context, text string, page, size int) (json.RawMessage, error) {
	if size <= 0 {
		size = 50
	}
	body, err := json.Marshal(map[string]interface{}{
		"request": map[string]string{"text": text},
		"page":    page,
		"size":    size,
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return c.do(ctx, "POST", apiV2+"/clients/search", nil, body)
}

// Code is one backend-defined code group header.
type Code struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SystemDefined bool   `json:"systemDefined"`
}

// ListCodes returns all code groups defined on the backend.
func (c *Client) ListCodes(ctx context.Context) ([]Code, error) {
	var out []Code
	if err := c.Get(ctx, "/codes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CodeValues fetches the values of one code group. The group keeps the given
// logical name so resolution errors identify the group the caller asked for,
// not its numeric id.
func (c *Client) CodeValues(ctx context.Context, codeID int64, name string) (codes.Group, error) {
	var values []codes.Value
	if err := c.Get(ctx, fmt.Sprintf("/codes/%d/codevalues", codeID), nil, &values); err != nil {
		return codes.Group{}, err
	}
	return codes.Group{Name: name, Values: values}, nil
}

// Currencies returns the backend's configured currency list.
func (c *Client) Currencies(ctx context.Context) ([]codes.Currency, error) {
	var doc struct {
		SelectedCurrencyOptions []codes.Currency `json:"selectedCurrencyOptions"`
	}
	if err := c.Get(ctx, "/currencies", nil, &doc); err != nil {
		return nil, err
	}
	return doc.SelectedCurrencyOptions, nil
}
