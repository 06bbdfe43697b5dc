package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestFilesEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	aliceID := registerUser(t, env, "alice")

	var filePath string

	t.Run("POST /api/file/upload/:userId", func(t *testing.T) {
		resp := performMultipartUpload(t, env.app, fmt.Sprintf("/api/file/upload/%d", aliceID), "hello.txt", []byte("hello world"))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		filePath = fmt.Sprintf("%.0f", data["id"].(float64))
		if data["fileName"] != "hello.txt" {
			t.Fatalf("unexpected file %v", data)
		}
		if _, leaked := data["storagePath"]; leaked {
			t.Fatalf("storage path must not be serialized")
		}
	})

	t.Run("POST /api/file/upload unknown user", func(t *testing.T) {
		resp := performMultipartUpload(t, env.app, "/api/file/upload/9999", "x.txt", []byte("x"))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, body, "user not found")
	})

	t.Run("POST /api/file/upload without file", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, fmt.Sprintf("/api/file/upload/%d", aliceID), map[string]any{}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "file is required")
	})

	t.Run("GET /api/file/download/:id", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/file/download/"+filePath, nil, nil)
		assertStatus(t, resp, http.StatusOK)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed reading download: %v", err)
		}
		if string(raw) != "hello world" {
			t.Fatalf("unexpected download body %q", string(raw))
		}
		if !strings.Contains(resp.Header.Get("Content-Disposition"), "hello.txt") {
			t.Fatalf("expected attachment filename, got %q", resp.Header.Get("Content-Disposition"))
		}
	})

	t.Run("GET /api/file/download-url/:id", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/file/download-url/"+filePath, nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		data := body["data"].(map[string]any)
		if !strings.HasSuffix(data["url"].(string), "/hello.txt") {
			t.Fatalf("unexpected url %v", data["url"])
		}
		if data["expiresIn"].(float64) != 60 {
			t.Fatalf("expected 60 second expiry, got %v", data["expiresIn"])
		}
	})

	t.Run("GET /api/file/viewall/:username", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/file/viewall/alice", nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if len(body["data"].([]any)) != 1 {
			t.Fatalf("expected one file, got %v", body["data"])
		}
	})

	t.Run("DELETE /api/file/delete/:id", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/file/delete/"+filePath, nil, nil)
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodGet, "/api/file/download/"+filePath, nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, body, "file not found")
	})

	t.Run("GET /health", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/health", nil, nil)
		assertStatus(t, resp, http.StatusOK)
	})
}
