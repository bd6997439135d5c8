package service

import (
	"context"
	"net/http"
)

type HTTPPixClient struct {
	Client *http.Client
}

func (c *HTTPPixClient) GetTransaction(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}
