package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWikiSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "Go (programming language)", r.URL.Query().Get("gsrsearch"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"query": {"pages": {
				"200": {"title": "Go (programming language)", "extract": "<p>Go is a language.</p>", "index": 1},
				"100": {"title": "Golang runtime", "extract": "Runtime details.", "index": 2}
			}}
		}`))
	}))
	defer srv.Close()

	tool := NewWikiSearch()
	tool.BaseURL = srv.URL

	out, err := tool.Call(context.Background(), json.RawMessage(`{"query": "Go (programming language)"}`))
	require.NoError(t, err)

	blocks := strings.Split(out, resultSeparator)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Title: Go (programming language)")
	assert.Contains(t, blocks[0], "URL: https://en.wikipedia.org/wiki/Go_(programming_language)")
	// markup stripped from the extract
	assert.Contains(t, blocks[0], "Go is a language.")
	assert.NotContains(t, blocks[0], "<p>")
	// ranking restored from the index field
	assert.Contains(t, blocks[1], "Golang runtime")
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "quantum computing", body["query"])
		assert.Equal(t, "secret", body["api_key"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"title": "Quantum", "url": "https://example.com/q", "content": "qubits"},
			{"title": "Computing", "url": "https://example.com/c", "content": "gates"}
		]}`))
	}))
	defer srv.Close()

	tool, err := NewTavilySearch("secret", WithTavilyBaseURL(srv.URL))
	require.NoError(t, err)

	out, err := tool.Call(context.Background(), json.RawMessage(`{"query": "quantum computing"}`))
	require.NoError(t, err)

	blocks := strings.Split(out, resultSeparator)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Title: Quantum")
	assert.Contains(t, blocks[0], "URL: https://example.com/q")
	assert.Contains(t, blocks[0], "qubits")
}

func TestTavilySearchRequiresKey(t *testing.T) {
	_, err := NewTavilySearch("")
	require.Error(t, err)
}

func TestTavilyMaxResultsClamped(t *testing.T) {
	tool, err := NewTavilySearch("k", WithTavilyMaxResults(100))
	require.NoError(t, err)
	assert.Equal(t, 20, tool.MaxResults)

	tool, err = NewTavilySearch("k", WithTavilyMaxResults(-1))
	require.NoError(t, err)
	assert.Equal(t, 1, tool.MaxResults)
}

func TestArxivSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:attention", r.URL.Query().Get("search_query"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
			<feed xmlns="http://www.w3.org/2005/Atom">
			  <entry>
			    <id>http://arxiv.org/abs/1706.03762</id>
			    <title>Attention Is All You Need</title>
			    <summary>We propose the Transformer.</summary>
			    <author><name>Ashish Vaswani</name></author>
			    <author><name>Noam Shazeer</name></author>
			  </entry>
			</feed>`))
	}))
	defer srv.Close()

	tool := NewArxivSearch()
	tool.BaseURL = srv.URL

	out, err := tool.Call(context.Background(), json.RawMessage(`{"query": "attention"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Attention Is All You Need")
	assert.Contains(t, out, "URL: http://arxiv.org/abs/1706.03762")
	assert.Contains(t, out, "Authors: Ashish Vaswani, Noam Shazeer")
	assert.Contains(t, out, "We propose the Transformer.")
}

func TestSearchHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wiki := NewWikiSearch()
	wiki.BaseURL = srv.URL
	_, err := wiki.Call(context.Background(), json.RawMessage(`{"query": "x"}`))
	require.Error(t, err)

	arxiv := NewArxivSearch()
	arxiv.BaseURL = srv.URL
	_, err = arxiv.Call(context.Background(), json.RawMessage(`{"query": "x"}`))
	require.Error(t, err)

	tavily, err := NewTavilySearch("k", WithTavilyBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = tavily.Call(context.Background(), json.RawMessage(`{"query": "x"}`))
	require.Error(t, err)
}
