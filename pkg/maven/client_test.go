package maven

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const testLastModified = "Thu, 20 Nov 2025 09:17:38 GMT"

const testTimestamp = int64(1763630258000)

var testCoord = Coordinate{GroupID: "org.example", ArtifactID: "mylib", Version: "1.0.0"}

// repoServer serves the test coordinate's descriptor with the given
// Last-Modified header, counting requests.
func repoServer(t *testing.T, lastModified string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		if r.URL.Path != "/"+testCoord.DescriptorPath() {
			http.NotFound(w, r)
			return
		}
		if lastModified != "" {
			w.Header().Set("Last-Modified", lastModified)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

// missServer answers 404 to everything, counting requests.
func missServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLastModifiedFirstRepository(t *testing.T) {
	first, firstCalls := repoServer(t, testLastModified)
	second, secondCalls := repoServer(t, testLastModified)

	c := NewClient(nil, []string{first.URL + "/", second.URL + "/"})

	ts, err := c.LastModified(context.Background(), testCoord)
	if err != nil {
		t.Fatalf("LastModified failed: %v", err)
	}
	if ts != testTimestamp {
		t.Errorf("timestamp = %d, want %d", ts, testTimestamp)
	}
	if got := firstCalls.Load(); got != 1 {
		t.Errorf("first repository probed %d times, want 1", got)
	}
	if got := secondCalls.Load(); got != 0 {
		t.Errorf("second repository probed %d times, want 0 (short-circuit)", got)
	}
}

func TestLastModifiedFallback(t *testing.T) {
	miss1, calls1 := missServer(t)
	miss2, calls2 := missServer(t)
	hit, hitCalls := repoServer(t, testLastModified)

	c := NewClient(nil, []string{miss1.URL + "/", miss2.URL + "/", hit.URL + "/"})

	ts, err := c.LastModified(context.Background(), testCoord)
	if err != nil {
		t.Fatalf("LastModified failed: %v", err)
	}
	if ts != testTimestamp {
		t.Errorf("timestamp = %d, want %d", ts, testTimestamp)
	}
	for i, calls := range []*atomic.Int64{calls1, calls2, hitCalls} {
		if got := calls.Load(); got != 1 {
			t.Errorf("repository %d probed %d times, want 1", i, got)
		}
	}
}

func TestLastModifiedAllFail(t *testing.T) {
	miss1, _ := missServer(t)
	miss2, _ := missServer(t)

	c := NewClient(nil, []string{miss1.URL + "/", miss2.URL + "/"})

	_, err := c.LastModified(context.Background(), testCoord)
	if err == nil {
		t.Fatal("expected error when every repository fails")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound, got: %v", err)
	}
	// The aggregate message carries the last probed endpoint's cause.
	if !strings.Contains(err.Error(), miss2.URL) {
		t.Errorf("error should name the last repository %s, got: %v", miss2.URL, err)
	}
	if err.Error() == "" {
		t.Error("failure message must be non-empty")
	}
}

func TestLastModifiedProbeOrderStable(t *testing.T) {
	var order []string
	record := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			order = append(order, name)
			http.NotFound(w, r)
		}
	}
	first := httptest.NewServer(record("first"))
	defer first.Close()
	second := httptest.NewServer(record("second"))
	defer second.Close()

	c := NewClient(nil, []string{first.URL + "/", second.URL + "/"})

	// Two sequential resolutions of the same failing coordinate must probe
	// the repositories in the identical order.
	for attempt := 0; attempt < 2; attempt++ {
		if _, err := c.LastModified(context.Background(), testCoord); err == nil {
			t.Fatal("expected failure")
		}
	}
	want := []string{"first", "second", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("probe count = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("probe order = %v, want %v", order, want)
		}
	}
}

func TestLastModifiedMissingHeader(t *testing.T) {
	srv, _ := repoServer(t, "") // 200 but no Last-Modified
	c := NewClient(nil, []string{srv.URL + "/"})

	_, err := c.LastModified(context.Background(), testCoord)
	if err == nil {
		t.Fatal("expected error for missing Last-Modified header")
	}
	if !strings.Contains(err.Error(), "no Last-Modified header") {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestLastModifiedMalformedHeader(t *testing.T) {
	srv, _ := repoServer(t, "yesterday, more or less")
	c := NewClient(nil, []string{srv.URL + "/"})

	_, err := c.LastModified(context.Background(), testCoord)
	if err == nil {
		t.Fatal("expected error for malformed Last-Modified header")
	}
	if !strings.Contains(err.Error(), "bad Last-Modified header") {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestLastModifiedTransportError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(nil, []string{srv.URL + "/"})

	_, err := c.LastModified(context.Background(), testCoord)
	if err == nil {
		t.Fatal("expected error for unreachable repository")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error should wrap ErrNetwork, got: %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, nil)

	repos := c.Repositories()
	want := DefaultRepositories()
	if len(repos) != len(want) {
		t.Fatalf("repository count = %d, want %d", len(repos), len(want))
	}
	for i := range want {
		if repos[i] != want[i] {
			t.Errorf("repos[%d] = %q, want %q", i, repos[i], want[i])
		}
	}

	// Mutating the returned slice must not affect the client's chain.
	repos[0] = "https://example.invalid/"
	if c.Repositories()[0] != MavenCentral {
		t.Error("Repositories() must return a copy")
	}
}
