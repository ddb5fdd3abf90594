package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LerianStudio/mdispatch/common/mlog"
)

func TestNewServer_MountsHealthAndVersionEndpoints(t *testing.T) {
	cfg := &Config{ServerAddress: ":0", OtelServiceName: "dispatchd-test", QueueCapacity: 10, GraphCacheSize: 10}

	ms, gateway, err := BuildMessageSystem(context.Background(), cfg, &mlog.NoneLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv := NewServer(cfg, &mlog.NoneLogger{}, ms, gateway)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	resp, err := srv.app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected /health to report 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/version", nil)

	resp, err = srv.app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected /version to report 200, got %d", resp.StatusCode)
	}
}

func TestNewServer_MountsDispatchRoutesUnderV1Prefix(t *testing.T) {
	cfg := &Config{ServerAddress: ":0", OtelServiceName: "dispatchd-test", QueueCapacity: 10, GraphCacheSize: 10}

	ms, gateway, err := BuildMessageSystem(context.Background(), cfg, &mlog.NoneLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv := NewServer(cfg, &mlog.NoneLogger{}, ms, gateway)

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)

	resp, err := srv.app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected /v1/stats to report 200, got %d", resp.StatusCode)
	}
}
