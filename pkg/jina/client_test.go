package jina

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "markdown", r.Header.Get("X-Return-Format"))
		assert.Equal(t, "/https://tinybakery.com", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 200,
			"data": {
				"title": "Tiny Bakery",
				"url": "https://tinybakery.com",
				"content": "# Tiny Bakery\n\nWe bake bread.",
				"usage": {"tokens": 120}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Read(context.Background(), "https://tinybakery.com")
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "Tiny Bakery", resp.Data.Title)
	assert.Contains(t, resp.Data.Content, "We bake bread")
	assert.Equal(t, 120, resp.Data.Usage.Tokens)
}

func TestReadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	_, err := client.Read(context.Background(), "https://tinybakery.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestReadBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	_, err := client.Read(context.Background(), "https://tinybakery.com")
	assert.Error(t, err)
}
