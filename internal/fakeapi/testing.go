package fakeapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
)

const testPrefix = "/api"

// StartTest serves a fresh fake on httptest and returns a client wired to it.
// Both are torn down with the test.
func StartTest(t testing.TB) (*Server, *transport.Client) {
	t.Helper()

	log := logger.NewNop()
	srv := New(Config{Prefix: testPrefix, URLPrefix: "http://cdn.test/uploads"}, log)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := transport.NewClient(&config.APIConfig{
		BaseURL: ts.URL,
		Prefix:  testPrefix,
		Timeout: 5 * time.Second,
	}, log)
	return srv, client
}
