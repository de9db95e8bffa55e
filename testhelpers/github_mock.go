package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Login is the authenticated user returned by GET /user
	Login string
	// Repos maps "owner/name" to existing repositories
	Repos map[string]*github.Repository
	// Created records the request bodies of created repositories
	Created []*github.Repository
	// CreatedUnder records the owner each repository was created under
	CreatedUnder []string
	// Deleted records deleted "owner/name" pairs
	Deleted []string
	// ErrorResponses maps "METHOD path" to a status code to fail with
	ErrorResponses map[string]int
	// Requests counts requests by "METHOD path"
	Requests map[string]int

	mu     sync.Mutex
	nextID int64
	server *httptest.Server
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Login:          "octocat",
		Repos:          make(map[string]*github.Repository),
		ErrorResponses: make(map[string]int),
		Requests:       make(map[string]int),
		nextID:         1000,
	}
}

// AddRepository registers an existing repository
func (c *MockGitHubServerConfig) AddRepository(owner, name string) *github.Repository {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(owner, name, &github.Repository{Name: github.String(name)})
}

func (c *MockGitHubServerConfig) addLocked(owner, name string, repo *github.Repository) *github.Repository {
	c.nextID++
	repo.ID = github.Int64(c.nextID)
	repo.Name = github.String(name)
	repo.FullName = github.String(owner + "/" + name)
	repo.Owner = &github.User{Login: github.String(owner)}
	base := "https://github.com"
	if c.server != nil {
		base = c.server.URL
	}
	repo.CloneURL = github.String(fmt.Sprintf("%s/%s/%s.git", base, owner, name))
	c.Repos[owner+"/"+name] = repo
	return repo
}

// HasRepository reports whether owner/name currently exists on the mock
func (c *MockGitHubServerConfig) HasRepository(owner, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Repos[owner+"/"+name]
	return ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Not Found"})
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub
// repository endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()

	// every request is counted and may be failed on demand
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := r.Method + " " + r.URL.Path
			config.mu.Lock()
			config.Requests[key]++
			status, fail := config.ErrorResponses[key]
			config.mu.Unlock()
			if fail {
				writeJSON(w, status, map[string]interface{}{"message": http.StatusText(status)})
				return
			}
			h(w, r)
		}
	}

	create := func(owner string, w http.ResponseWriter, r *http.Request) {
		var body github.Repository
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})
			return
		}
		name := body.GetName()

		config.mu.Lock()
		defer config.mu.Unlock()
		if _, exists := config.Repos[owner+"/"+name]; exists {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"message": "Repository creation failed.",
				"errors":  []map[string]string{{"resource": "Repository", "field": "name", "message": "name already exists on this account"}},
			})
			return
		}
		created := body
		config.Created = append(config.Created, &body)
		config.CreatedUnder = append(config.CreatedUnder, owner)
		writeJSON(w, http.StatusCreated, config.addLocked(owner, name, &created))
	}

	mux.HandleFunc("GET /user", wrap(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.Login)})
	}))

	mux.HandleFunc("POST /user/repos", wrap(func(w http.ResponseWriter, r *http.Request) {
		create(config.Login, w, r)
	}))

	mux.HandleFunc("POST /orgs/{org}/repos", wrap(func(w http.ResponseWriter, r *http.Request) {
		create(r.PathValue("org"), w, r)
	}))

	mux.HandleFunc("GET /repos/{owner}/{name}", wrap(func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("owner") + "/" + r.PathValue("name")
		config.mu.Lock()
		repo, ok := config.Repos[key]
		config.mu.Unlock()
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, repo)
	}))

	mux.HandleFunc("DELETE /repos/{owner}/{name}", wrap(func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("owner") + "/" + r.PathValue("name")
		config.mu.Lock()
		defer config.mu.Unlock()
		if _, ok := config.Repos[key]; !ok {
			writeNotFound(w)
			return
		}
		delete(config.Repos, key)
		config.Deleted = append(config.Deleted, key)
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	config.mu.Lock()
	config.server = server
	config.mu.Unlock()
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a go-github client configured to use a mock
// server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *github.Client {
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(strings.TrimSuffix(server.URL, "/") + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}
