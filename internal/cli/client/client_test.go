package client

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("appends api prefix and trims slashes", func(t *testing.T) {
		client := NewClient("http://example.com///")
		if client.BaseURL != "http://example.com/api" {
			t.Errorf("expected BaseURL 'http://example.com/api', got %s", client.BaseURL)
		}
	})

	t.Run("sets default HTTP client timeout", func(t *testing.T) {
		client := NewClient("http://localhost:8080")
		if client.HTTPClient == nil || client.HTTPClient.Timeout == 0 {
			t.Error("expected HTTPClient with a timeout")
		}
	})
}

func TestClient_JSON(t *testing.T) {
	t.Run("decodes envelope on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/groups/user/alice" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("expected Accept header, got %q", r.Header.Get("Accept"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    []map[string]any{{"id": 1, "name": "Team", "usernames": []string{"alice"}}},
			})
		}))
		defer server.Close()

		var resp Response[[]Group]
		if err := NewClient(server.URL).Get("/groups/user/alice", &resp); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if len(resp.Data) != 1 || resp.Data[0].Name != "Team" {
			t.Fatalf("unexpected groups %+v", resp.Data)
		}
	})

	t.Run("sends JSON bodies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "bob" {
				t.Errorf("unexpected body %v", body)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"outcome": "left", "message": "Successfully left the group"}})
		}))
		defer server.Close()

		var resp Response[LeaveResult]
		if err := NewClient(server.URL).Post("/groups/leave/1", map[string]string{"username": "bob"}, &resp); err != nil {
			t.Fatalf("Post returned error: %v", err)
		}
		if resp.Data.Outcome != "left" {
			t.Fatalf("unexpected outcome %+v", resp.Data)
		}
	})

	t.Run("surfaces envelope errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "incorrect password"})
		}))
		defer server.Close()

		err := NewClient(server.URL).Post("/groups/join/1", map[string]string{}, nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusForbidden || apiErr.Message != "incorrect password" {
			t.Fatalf("unexpected error %+v", apiErr)
		}
	})

	t.Run("falls back to raw body for non-envelope errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		err := NewClient(server.URL).Delete("/file/delete/1", nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !strings.Contains(apiErr.Message, "bad gateway") {
			t.Fatalf("expected raw body in error, got %v", err)
		}
	})
}

func TestClient_UploadAndDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/file/upload/1":
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("expected multipart file: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			data, _ := io.ReadAll(file)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": 9, "fileName": header.Filename, "size": len(data)},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/file/download/9":
			w.Header().Set("Content-Disposition", `attachment; filename="notes.txt"`)
			_, _ = w.Write([]byte("payload"))
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "file not found"})
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(src, []byte("payload"), 0600); err != nil {
		t.Fatalf("failed writing source: %v", err)
	}

	client := NewClient(server.URL)

	var uploaded Response[File]
	if err := client.Upload("/file/upload/1", "file", src, &uploaded); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if uploaded.Data.FileName != "notes.txt" || uploaded.Data.Size != 7 {
		t.Fatalf("unexpected upload result %+v", uploaded.Data)
	}

	dest := filepath.Join(dir, "copy.txt")
	if err := client.DownloadToFile("/file/download/9", dest); err != nil {
		t.Fatalf("DownloadToFile returned error: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "payload" {
		t.Fatalf("unexpected download %q", string(got))
	}

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0700); err != nil {
		t.Fatalf("failed creating dir: %v", err)
	}
	written, err := client.DownloadToDir("/file/download/9", outDir, "file-9")
	if err != nil {
		t.Fatalf("DownloadToDir returned error: %v", err)
	}
	if written != filepath.Join(outDir, "notes.txt") {
		t.Fatalf("expected name from Content-Disposition, got %s", written)
	}

	err = client.DownloadToFile("/file/download/10", filepath.Join(dir, "missing.txt"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "file not found" {
		t.Fatalf("expected file not found, got %v", err)
	}
}
