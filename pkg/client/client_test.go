package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["email"] != "ada@example.com" || body["password"] != "secret" {
			t.Errorf("unexpected body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"id": "u1", "name": "Ada", "role": "client", "token": "tok-1",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	resp, err := c.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.ID != "u1" || resp.Role != "client" || resp.Token != "tok-1" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestAuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		w.Write([]byte(`{"status":true,"jobs":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-9", nil)
	if _, err := c.ActiveJobs(context.Background()); err != nil {
		t.Fatalf("ActiveJobs: %v", err)
	}
}

func TestListStatusFalseIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"No jobs found"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	jobs, err := c.FindJobs(context.Background(), "", "")
	if err != nil {
		t.Fatalf("status:false on a list must not be an error, got %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("jobs = %v, want empty", jobs)
	}
}

func TestMutationStatusFalseCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"You already applied to this job"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	_, err := c.ApplyJob(context.Background(), "j1", "hire me")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Message(err, "fallback"); got != "You already applied to this job" {
		t.Errorf("Message = %q", got)
	}
}

func TestSendHTTPErrorParsing(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		body    string
		wantMsg string
	}{
		{"message field", 401, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", 422, `{"error":"bad input"}`, "bad input"},
		{"plain text", 500, "boom", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, "t", nil)
			_, err := c.Login(context.Background(), "a@b.c", "pass")
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsStatus(err, tt.code) {
				t.Errorf("IsStatus(%d) = false for %v", tt.code, err)
			}
			if got := Message(err, ""); got != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestAdminUsersPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("role") != "client" || q.Get("search") != "ada" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"status":true,"users":[{"id":"u1","name":"Ada","email":"a@b.c","role":"client"}],"total_pages":7}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	users, pages, err := c.AdminUsers(context.Background(), 2, "client", "ada")
	if err != nil {
		t.Fatalf("AdminUsers: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Ada" {
		t.Errorf("users = %+v", users)
	}
	if pages != 7 {
		t.Errorf("pages = %d, want 7", pages)
	}
}

func TestUploadJobFilesMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		if got := r.FormValue("job_id"); got != "j7" {
			t.Errorf("job_id = %q", got)
		}
		files := r.MultipartForm.File["files[]"]
		if len(files) != 1 {
			t.Fatalf("files = %d, want 1", len(files))
		}
		if files[0].Filename != "deliverable.txt" {
			t.Errorf("filename = %q", files[0].Filename)
		}
		w.Write([]byte(`{"status":true,"message":"Files uploaded"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "deliverable.txt")
	if err := os.WriteFile(path, []byte("done"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := New(srv.URL, "t", nil)
	msg, err := c.UploadJobFiles(context.Background(), "j7", []string{path})
	if err != nil {
		t.Fatalf("UploadJobFiles: %v", err)
	}
	if msg != "Files uploaded" {
		t.Errorf("message = %q", msg)
	}
}

func TestUploadJobFilesMissingFile(t *testing.T) {
	c := New("http://127.0.0.1:1", "t", nil)
	if _, err := c.UploadJobFiles(context.Background(), "j1", []string{"/does/not/exist"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
