package maven

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mvnage/mvnage/pkg/httputil"
)

// Known repository base URLs. Every base ends with a slash so descriptor
// paths can be appended directly.
const (
	// MavenCentral is the primary public repository.
	MavenCentral = "https://repo1.maven.org/maven2/"

	// GoogleMaven hosts Android and AndroidX artifacts.
	GoogleMaven = "https://dl.google.com/dl/android/maven2/"

	// GradlePluginPortal hosts Gradle plugin artifacts.
	GradlePluginPortal = "https://plugins.gradle.org/m2/"

	// JitPack builds and serves artifacts straight from source hosting.
	JitPack = "https://jitpack.io/"
)

var (
	// ErrNotFound is returned when a repository answers with a non-success
	// status for the artifact's descriptor.
	ErrNotFound = errors.New("artifact not found")

	// ErrNetwork is returned for transport failures (connection refused,
	// DNS failure, timeout).
	ErrNetwork = errors.New("network error")
)

// Per-probe timeout bounds. Kept tight so a fully failing resolution stays
// bounded at (number of repositories × connect + header timeout).
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultHeaderTimeout  = 5 * time.Second
)

// DefaultRepositories returns the default probe chain in priority order.
// The order reflects empirical coverage: Maven Central answers the vast
// majority of coordinates, Google Maven covers Android artifacts, and the
// Gradle Plugin Portal and JitPack pick up the long tail.
func DefaultRepositories() []string {
	return []string{MavenCentral, GoogleMaven, GradlePluginPortal, JitPack}
}

// NewHTTPClient returns an HTTP client with bounded connect and
// response-header timeouts, suitable for header-only existence probes.
func NewHTTPClient(connect, header time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: connect}).DialContext,
			ResponseHeaderTimeout: header,
		},
	}
}

// Client resolves artifact publication timestamps across an ordered chain
// of repository mirrors.
//
// The repository list is fixed at construction and never reordered; its
// order is the probe priority. The Client holds no per-call state and is
// safe for concurrent use by multiple goroutines.
type Client struct {
	http  *http.Client
	repos []string
}

// NewClient creates a Client probing the given repositories with the given
// HTTP transport.
//
// Passing nil for httpClient uses a transport with the default 5 second
// connect and response-header timeouts. Passing an empty repository list
// uses [DefaultRepositories]. Tests inject an httptest transport and server
// URLs through these parameters.
func NewClient(httpClient *http.Client, repos []string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultConnectTimeout, DefaultHeaderTimeout)
	}
	if len(repos) == 0 {
		repos = DefaultRepositories()
	}
	return &Client{http: httpClient, repos: repos}
}

// Repositories returns a copy of the probe chain in priority order.
func (c *Client) Repositories() []string {
	out := make([]string, len(c.repos))
	copy(out, c.repos)
	return out
}

// LastModified resolves the publication timestamp of coord in milliseconds
// since the Unix epoch.
//
// The descriptor path is built once and each repository is probed in order;
// the first success returns immediately and later repositories are never
// contacted. When every repository fails, the returned error wraps the last
// probe's cause. Use errors.Is with [ErrNotFound] or [ErrNetwork] to
// classify the final failure.
func (c *Client) LastModified(ctx context.Context, coord Coordinate) (int64, error) {
	path := coord.DescriptorPath()

	var lastErr error
	for _, base := range c.repos {
		ts, err := c.probe(ctx, base, path)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("artifact %s not found in any repository: last error: %w", coord, lastErr)
}

// probe issues a header-only existence check for path against one
// repository base. Success requires a 200 status and a parseable
// Last-Modified header; each failure mode carries its own cause text but is
// treated uniformly by the fallback loop.
func (c *Client) probe(ctx context.Context, base, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, base+path, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	// HEAD responses carry no body, but the connection must still be
	// released on every exit path.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w at %s: status %d", ErrNotFound, base, resp.StatusCode)
	}

	lastModified := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		return 0, fmt.Errorf("no Last-Modified header at %s", base)
	}

	ts, err := httputil.ParseDate(lastModified)
	if err != nil {
		return 0, fmt.Errorf("bad Last-Modified header at %s: %w", base, err)
	}
	return ts, nil
}
