package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/betconta/betconta/cmd/betconta/cache"
	"github.com/betconta/betconta/cmd/betconta/models"
)

var (
	ErrInvalidCEP  = errors.New("cep must have 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)

// CEPClient resolves Brazilian postal codes against a ViaCEP-style service.
// Successful lookups are cached; a non-2xx response or an "erro" flag in the
// body both surface as not found.
type CEPClient struct {
	Client  *http.Client
	BaseURL string
	Cache   *cache.Cache[models.Address]
}

func NewCEPClient(client *http.Client, baseURL string, c *cache.Cache[models.Address]) *CEPClient {
	return &CEPClient{Client: client, BaseURL: baseURL, Cache: c}
}

func (c *CEPClient) Lookup(ctx context.Context, cep string) (models.Address, error) {
	var digits strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	key := digits.String()
	if len(key) != 8 {
		return models.Address{}, ErrInvalidCEP
	}
	if addr, ok := c.Cache.Get(key); ok {
		return addr, nil
	}
	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Address{}, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return models.Address{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Address{}, ErrCEPNotFound
	}
	var body struct {
		models.Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Address{}, err
	}
	if body.Erro {
		return models.Address{}, ErrCEPNotFound
	}
	c.Cache.Set(key, body.Address)
	return body.Address, nil
}
