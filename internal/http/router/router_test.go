package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/password"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage/jsonfile"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage/memory"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/store"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/request"
)

func setupRouter(t *testing.T, backend storage.Backend, policy store.UserPolicy) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := store.NewUsers(backend, policy, password.Plain{})
	blogs := store.NewBlogs(backend)
	return New(users, blogs, log)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(resp.Body.String()), "{") {
		if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: bad JSON: %v", method, path, err)
		}
	}
	return resp, decoded
}

func TestUserLifecycle(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection),
		store.UserPolicy{MinUsernameLength: 3, MinPasswordLength: 5, MinAge: 10})

	resp, body := do(t, r, http.MethodPost, "/users", `{"username":"abc","password":"abcde","age":12}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body)
	}
	created := body["user"].(map[string]any)
	if created["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", created["id"])
	}
	if _, ok := created["password"]; ok {
		t.Fatal("password leaked in response")
	}

	resp, body = do(t, r, http.MethodPost, "/users", `{"username":"abc","password":"abcde","age":12}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", resp.Code)
	}
	if body["status"] != "error" || !strings.Contains(body["error"].(string), "already exists") {
		t.Fatalf("unexpected duplicate body: %v", body)
	}

	resp, _ = do(t, r, http.MethodDelete, "/users/abc", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}

	resp, _ = do(t, r, http.MethodGet, "/users/abc", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.Code)
	}
}

func TestUserValidationErrors(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection),
		store.UserPolicy{MinUsernameLength: 3, MinPasswordLength: 5, MinAge: 10})

	cases := map[string]string{
		"short username": `{"username":"ab","password":"abcde","age":12}`,
		"short password": `{"username":"abc","password":"abc","age":12}`,
		"too young":      `{"username":"abc","password":"abcde","age":9}`,
		"malformed":      `{"username":`,
		"wrong type":     `{"username":3}`,
	}
	for name, body := range cases {
		resp, _ := do(t, r, http.MethodPost, "/register", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.Code)
		}
	}

	resp, body := do(t, r, http.MethodPost, "/users", "")
	if resp.Code != http.StatusBadRequest || body["error"] != "request body is empty" {
		t.Fatalf("empty body: got %d %v", resp.Code, body)
	}
}

func TestUserFractionalAge(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)

	resp, _ := do(t, r, http.MethodPost, "/users", `{"username":"abc","password":"abcde","age":12.5}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body)
	}

	resp, body := do(t, r, http.MethodGet, "/users/abc", "")
	if resp.Code != http.StatusOK || body["age"] != 12.5 {
		t.Fatalf("get: got %d %v", resp.Code, body)
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)

	content := strings.Repeat("x", request.MaxBodyBytes)
	resp, body := do(t, r, http.MethodPost, "/blogs", `{"title":"big","content":"`+content+`"}`)
	if resp.Code != http.StatusBadRequest || body["error"] != request.ErrBodyTooLarge.Error() {
		t.Fatalf("expected 400 too large, got %d %v", resp.Code, body)
	}

	resp, _ = do(t, r, http.MethodGet, "/blogs", "")
	if strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("oversized post was stored: %s", resp.Body)
	}
}

func TestUserUpdateAndProfile(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)

	do(t, r, http.MethodPost, "/register", `{"username":"abc","password":"abcde","fullName":"Old Name","email":"abc@example.com"}`)

	resp, body := do(t, r, http.MethodPut, "/users/abc@example.com", `{"fullName":"New Name","age":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.Code)
	}
	u := body["user"].(map[string]any)
	if u["fullName"] != "New Name" {
		t.Fatalf("fullName not updated: %v", u)
	}
	if _, ok := u["age"]; ok {
		t.Fatalf("zero age must not be written: %v", u)
	}

	resp, body = do(t, r, http.MethodGet, "/profile/abc", "")
	if resp.Code != http.StatusOK || body["fullName"] != "New Name" || body["gender"] != nil {
		t.Fatalf("profile: got %d %v", resp.Code, body)
	}

	resp, _ = do(t, r, http.MethodPut, "/users/nobody", `{"fullName":"x"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", resp.Code)
	}
}

func TestLogin(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)
	do(t, r, http.MethodPost, "/users", `{"username":"abc","password":"abcde","email":"abc@example.com"}`)

	ok := []string{
		`{"identifier":"abc","password":"abcde"}`,
		`{"username":"abc","password":"abcde"}`,
		`{"email":"abc@example.com","password":"abcde"}`,
	}
	for _, body := range ok {
		resp, decoded := do(t, r, http.MethodPost, "/login", body)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", body, resp.Code)
		}
		if decoded["user"].(map[string]any)["username"] != "abc" {
			t.Fatalf("%s: unexpected body %v", body, decoded)
		}
	}

	resp, _ := do(t, r, http.MethodPost, "/login", `{"identifier":"abc","password":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.Code)
	}
}

func TestBlogLifecycle(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)

	resp, body := do(t, r, http.MethodPost, "/blogs", `{"title":"My Post","content":"text"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body)
	}
	b := body["blog"].(map[string]any)
	if b["slug"] != "my-post" || b["id"] != float64(1) {
		t.Fatalf("unexpected blog: %v", b)
	}
	if comments, ok := b["comments"].([]any); !ok || len(comments) != 0 {
		t.Fatalf("comments must be []: %v", b["comments"])
	}

	resp, body = do(t, r, http.MethodPut, "/blogs/1", `{"tags":["a","b"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.Code)
	}
	b = body["blog"].(map[string]any)
	tags := b["tags"].([]any)
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if b["title"] != "My Post" {
		t.Fatalf("title changed: %v", b["title"])
	}

	resp, _ = do(t, r, http.MethodGet, "/blogs/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}

	resp, _ = do(t, r, http.MethodDelete, "/blogs/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}
	resp, _ = do(t, r, http.MethodDelete, "/blogs/1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.Code)
	}
}

func TestBlogListAndErrors(t *testing.T) {
	r := setupRouter(t, memory.New(store.UsersCollection, store.BlogsCollection), store.DefaultUserPolicy)

	resp, _ := do(t, r, http.MethodGet, "/blogs", "")
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("empty list: got %d %q", resp.Code, resp.Body)
	}

	do(t, r, http.MethodPost, "/blog", `{"title":"one","content":"x"}`)
	do(t, r, http.MethodPost, "/blogs", `{"title":"two","content":"y"}`)

	resp, _ = do(t, r, http.MethodGet, "/blogs", "")
	var blogs []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &blogs); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(blogs) != 2 || blogs[0]["title"] != "one" || blogs[1]["title"] != "two" {
		t.Fatalf("unexpected list: %v", blogs)
	}

	resp, body := do(t, r, http.MethodPost, "/blogs", `{"title":"no content"}`)
	if resp.Code != http.StatusBadRequest || body["error"] != "content is required" {
		t.Fatalf("missing content: got %d %v", resp.Code, body)
	}

	resp, _ = do(t, r, http.MethodPut, "/blogs/abc", `{"title":"x"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", resp.Code)
	}

	resp, _ = do(t, r, http.MethodPut, "/blogs/99", `{"title":"x"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("missing blog: expected 404, got %d", resp.Code)
	}
}

func TestStorageUnavailableIs500(t *testing.T) {
	backend := memory.New()
	r := setupRouter(t, backend, store.DefaultUserPolicy)

	resp, body := do(t, r, http.MethodGet, "/blogs", "")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if body["error"] != store.ErrStorageUnavailable.Error() {
		t.Fatalf("unexpected error body: %v", body)
	}

	resp, _ = do(t, r, http.MethodPost, "/users", `{"username":"abc","password":"abcde"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestFileBackendLayout(t *testing.T) {
	dir, err := jsonfile.New(t.TempDir(), store.UsersCollection, store.BlogsCollection)
	if err != nil {
		t.Fatalf("jsonfile.New err: %v", err)
	}
	r := setupRouter(t, dir, store.DefaultUserPolicy)

	resp, _ := do(t, r, http.MethodPost, "/blogs", `{"title":"Hello World","content":"text"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.Code)
	}

	data, err := os.ReadFile(dir.Path(store.BlogsCollection))
	if err != nil {
		t.Fatalf("read blogs file: %v", err)
	}
	want := `[
  {
    "id": 1,
    "title": "Hello World",
    "slug": "hello-world",
    "content": "text",
    "tags": [],
    "comments": []
  }
]
`
	if !bytes.Equal(data, []byte(want)) {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}
