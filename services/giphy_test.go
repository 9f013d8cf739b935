package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGiphyClientRandom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("api_key") != "test-key" {
			t.Errorf("api_key = %q, want test-key", query.Get("api_key"))
		}
		if query.Get("tag") != "lazy" {
			t.Errorf("tag = %q, want lazy", query.Get("tag"))
		}
		if query.Get("rating") != "g" {
			t.Errorf("rating = %q, want g", query.Get("rating"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"images":{
			"downsized_small":{"url":"https://example.com/small.gif"},
			"fixed_height":{"url":"https://example.com/fixed.gif"},
			"original":{"url":"https://example.com/original.gif"}}}}`))
	}))
	defer server.Close()

	client := NewGiphyClient("test-key")
	client.baseURL = server.URL

	images, err := client.Random(context.Background(), "lazy")
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if images.BestURL() != "https://example.com/small.gif" {
		t.Errorf("BestURL = %q, want the downsized small variant", images.BestURL())
	}
}

func TestGiphyImagesBestURLFallback(t *testing.T) {
	tests := []struct {
		name   string
		images GiphyImages
		want   string
	}{
		{"small preferred", GiphyImages{DownsizedSmall: "s", FixedHeight: "f", Original: "o"}, "s"},
		{"fixed height next", GiphyImages{FixedHeight: "f", Original: "o"}, "f"},
		{"original last", GiphyImages{Original: "o"}, "o"},
		{"nothing available", GiphyImages{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.images.BestURL(); got != tt.want {
				t.Errorf("BestURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGiphyClientDownload(t *testing.T) {
	payload := []byte("GIF89a fake")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	client := NewGiphyClient("test-key")
	path := filepath.Join(t.TempDir(), "a.gif")

	if err := client.Download(context.Background(), server.URL, path); err != nil {
		t.Fatalf("Download: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(written) != string(payload) {
		t.Errorf("downloaded content mismatch")
	}
}
