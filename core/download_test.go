package core

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func activateMock(t *testing.T) {
	t.Helper()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
}

func TestDownloadFile(t *testing.T) {
	activateMock(t)
	httpmock.RegisterResponder("GET", "https://example.com/pack.zip",
		httpmock.NewBytesResponder(200, []byte("zip bytes")))

	dest := filepath.Join(t.TempDir(), "pack.zip")
	if err := DownloadFile("https://example.com/pack.zip", dest); err != nil {
		t.Fatalf("DownloadFile failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "zip bytes" {
		t.Errorf("Expected downloaded content %q, found %q", "zip bytes", data)
	}
}

func TestDownloadFileBadStatus(t *testing.T) {
	activateMock(t)
	httpmock.RegisterResponder("GET", "https://example.com/missing.zip",
		httpmock.NewStringResponder(404, "not found"))

	dest := filepath.Join(t.TempDir(), "missing.zip")
	if err := DownloadFile("https://example.com/missing.zip", dest); err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
}

func TestDownloadFileTruncatedResponse(t *testing.T) {
	// A server that advertises more bytes than it sends; the client sees
	// the connection die mid-body
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("only ten b"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "truncated.zip")
	done := make(chan error, 1)
	go func() {
		done <- DownloadFile(server.URL+"/pack.zip", dest)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Expected an error for a truncated response body")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("DownloadFile did not return after a mid-stream read error")
	}
}

func TestGetJSON(t *testing.T) {
	activateMock(t)
	httpmock.RegisterResponder("GET", "https://example.com/meta.json",
		httpmock.NewStringResponder(200, `{"name": "Some Pack"}`))

	out := struct {
		Name string `json:"name"`
	}{}
	if err := GetJSON("https://example.com/meta.json", &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.Name != "Some Pack" {
		t.Errorf("Expected name %q, found %q", "Some Pack", out.Name)
	}
}
