package sfmc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	pkgError "github.com/9rajputshivam/daytime-window-check/pkg/error"
)

// Filter is the simple-filter form the data-extension rowset endpoint accepts.
type Filter struct {
	LeftOperand  string `json:"leftOperand"`
	Operator     string `json:"operator"`
	RightOperand string `json:"rightOperand"`
}

type rowsetRequest struct {
	Filter Filter `json:"filter"`
}

type rowsetResponse struct {
	Items []map[string]any `json:"items"`
}

// Rowset queries a data extension by external key and returns the raw rows.
// The row shape is not guaranteed consistent upstream, so rows are handed back
// untyped for the caller to normalize.
func (c *Client) Rowset(ctx context.Context, externalKey string, filter Filter) ([]map[string]any, error) {
	token, err := c.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(rowsetRequest{Filter: filter})
	if err != nil {
		return nil, pkgError.UpstreamLookupError(err.Error())
	}

	url := fmt.Sprintf("%s/hub/v1/dataevents/key:%s/rowset", c.restURL(), externalKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgError.UpstreamLookupError(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgError.UpstreamLookupError(fmt.Sprintf("rowset lookup failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, pkgError.UpstreamLookupError(fmt.Sprintf("rowset lookup for %s returned %d: %s", externalKey, resp.StatusCode, payload))
	}

	var parsed rowsetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgError.UpstreamLookupError(fmt.Sprintf("malformed rowset response: %v", err))
	}
	return parsed.Items, nil
}
