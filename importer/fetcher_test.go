package importer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arp-greatteam/heritage-provenance/store"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, "<rdf/>")
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<rdf/>", string(data))
}

func TestFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFetcher_ContentTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 100))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 10)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content too large")
}

func TestFetcher_Unreachable(t *testing.T) {
	f := NewFetcher(time.Second, 1024)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/harvest.xml")
	assert.Error(t, err)
}

func TestImportURL_FailedDownloadAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	st := store.New(testLogger())
	imp := New(st, NewFetcher(5*time.Second, 1024), nil, testLogger())
	_, err := imp.ImportURL(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 0, st.Len(), "nothing is committed when the download fails")
}
