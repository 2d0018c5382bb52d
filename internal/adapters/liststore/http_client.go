package liststore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hourlog/internal/domain/ident"
)

// HTTPClient talks to the remote list store's REST API with a bearer token.
// Pagination is followed to exhaustion inside ListItems so callers always see
// complete collections. Timeouts are delegated to the underlying http.Client.
type HTTPClient struct {
	base  string // e.g. https://store.example.org/v1/sites/volunteering
	token string
	http  *http.Client
}

// NewHTTPClient creates a client for the given site base URL and token.
// PRE: base is a valid URL, token is non-empty
// POST: Returns a ready client with a 30s request timeout
func NewHTTPClient(base, token string) *HTTPClient {
	return &HTTPClient{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// wireItem is the store's item envelope.
type wireItem struct {
	ID       string         `json:"id"`
	Created  time.Time      `json:"createdDateTime"`
	Modified time.Time      `json:"lastModifiedDateTime"`
	Fields   map[string]any `json:"fields"`
}

type wirePage struct {
	Value    []wireItem `json:"value"`
	NextLink string     `json:"@odata.nextLink"`
}

// ListItems fetches every item in a collection, following pagination links
// until the collection is exhausted.
// PRE: q.Select is non-empty
// POST: Returns all pages merged, or an error if any page fetch fails
func (c *HTTPClient) ListItems(ctx context.Context, collection string, q Query) ([]Record, error) {
	params := url.Values{}
	params.Set("expand", "fields(select="+strings.Join(q.Select, ",")+")")
	if q.Filter != "" {
		params.Set("$filter", q.Filter)
	}
	if q.OrderBy != "" {
		params.Set("$orderby", q.OrderBy)
	}
	next := fmt.Sprintf("%s/lists/%s/items?%s", c.base, url.PathEscape(collection), params.Encode())

	var records []Record
	for next != "" {
		var page wirePage
		if err := c.do(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", collection, err)
		}
		for _, item := range page.Value {
			records = append(records, item.toRecord())
		}
		next = page.NextLink
	}
	return records, nil
}

// CreateItem creates a new item and returns the store-assigned id.
func (c *HTTPClient) CreateItem(ctx context.Context, collection string, fields map[string]any) (int, error) {
	body := map[string]any{"fields": fields}
	var created wireItem
	endpoint := fmt.Sprintf("%s/lists/%s/items", c.base, url.PathEscape(collection))
	if err := c.do(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return 0, fmt.Errorf("create in %s: %w", collection, err)
	}
	id, ok := ident.ParseLookupID(created.ID)
	if !ok {
		return 0, fmt.Errorf("create in %s: store returned unusable id %q", collection, created.ID)
	}
	return id, nil
}

// UpdateItem patches the given fields on an item. Unmentioned fields are
// untouched (field-level last write wins; there is no optimistic locking).
func (c *HTTPClient) UpdateItem(ctx context.Context, collection string, id int, fields map[string]any) error {
	endpoint := fmt.Sprintf("%s/lists/%s/items/%d/fields", c.base, url.PathEscape(collection), id)
	if err := c.do(ctx, http.MethodPatch, endpoint, fields, nil); err != nil {
		return fmt.Errorf("update %s/%d: %w", collection, id, err)
	}
	return nil
}

// DeleteItem removes an item.
func (c *HTTPClient) DeleteItem(ctx context.Context, collection string, id int) error {
	endpoint := fmt.Sprintf("%s/lists/%s/items/%d", c.base, url.PathEscape(collection), id)
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete %s/%d: %w", collection, id, err)
	}
	return nil
}

// ListChoiceValues returns the configured choices of a choice column.
func (c *HTTPClient) ListChoiceValues(ctx context.Context, collection, column string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/lists/%s/columns/%s", c.base, url.PathEscape(collection), url.PathEscape(column))
	var col struct {
		Choice struct {
			Choices []string `json:"choices"`
		} `json:"choice"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &col); err != nil {
		return nil, fmt.Errorf("choices %s.%s: %w", collection, column, err)
	}
	return col.Choice.Choices, nil
}

// do performs one authenticated request, mapping upstream status codes to the
// package's stable sentinel errors.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("list store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (w wireItem) toRecord() Record {
	id, _ := ident.ParseLookupID(w.ID)
	return Record{ID: id, Created: w.Created, Modified: w.Modified, Fields: w.Fields}
}
