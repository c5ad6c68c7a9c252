package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "secret", r.FormValue("apikey"))
		assert.Equal(t, "eng", r.FormValue("language"))
		assert.Equal(t, "2", r.FormValue("OCREngine"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "scan.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"IsErroredOnProcessing": false,
			"ParsedResults": []map[string]string{
				{"ParsedText": "page one"},
				{"ParsedText": "page two"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "eng", 5*time.Second)
	text, err := client.ParseBytes(context.Background(), "scan.pdf", []byte("%PDF-fake"))

	require.NoError(t, err)
	assert.Equal(t, "page one\npage two", text)
}

func TestParseBytesProcessingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"IsErroredOnProcessing": true,
			"ErrorMessage":          []string{"file is not a valid image"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "eng", 5*time.Second)
	_, err := client.ParseBytes(context.Background(), "scan.pdf", []byte("junk"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr processing error")
}

func TestParseBytesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "eng", 5*time.Second)
	_, err := client.ParseBytes(context.Background(), "scan.pdf", []byte("junk"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestAvailable(t *testing.T) {
	assert.True(t, NewClient("http://x", "key", "eng", 0).Available())
	assert.False(t, NewClient("http://x", "", "eng", 0).Available())
}
