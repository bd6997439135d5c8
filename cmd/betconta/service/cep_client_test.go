package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betconta/betconta/cmd/betconta/cache"
	"github.com/betconta/betconta/cmd/betconta/models"
)

func newTestCEPClient(handler http.HandlerFunc) (*CEPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewCEPClient(srv.Client(), srv.URL, cache.New[models.Address](time.Minute))
	return c, srv
}

func TestLookupReturnsAddress(t *testing.T) {
	c, srv := newTestCEPClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})
	defer srv.Close()

	addr, err := c.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "SP", addr.State)
}

func TestLookupErroBodyMeansNotFound(t *testing.T) {
	c, srv := newTestCEPClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	})
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}

func TestLookupNon2xxMeansNotFound(t *testing.T) {
	c, srv := newTestCEPClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "00000000")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}

func TestLookupRejectsShortCEP(t *testing.T) {
	c, srv := newTestCEPClient(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("short cep must not reach the service")
	})
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "1234")
	assert.ErrorIs(t, err, ErrInvalidCEP)
}

func TestLookupServesSecondCallFromCache(t *testing.T) {
	calls := 0
	c, srv := newTestCEPClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"cep":"01310-100","localidade":"São Paulo","uf":"SP"}`))
	})
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	addr, err := c.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "São Paulo", addr.City)
}
