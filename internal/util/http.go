package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// GetBytes downloads url with client and returns the body of a 200 response.
// Bodies larger than maxBytes are rejected; maxBytes <= 0 means no limit.
func GetBytes(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if maxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("body of %d bytes exceeds limit of %d", resp.ContentLength, maxBytes)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("body exceeds limit of %d bytes", maxBytes)
	}
	return body, nil
}
