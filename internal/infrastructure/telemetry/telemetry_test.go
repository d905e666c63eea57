package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/pkg/config"
)

func TestSetupServesPipelineMetrics(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		Telemetry: config.TelemetryConfig{ServiceName: "transcript-dubber-test"},
	}

	shutdown, handler, err := Setup(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background())

	metrics, err := NewPipelineMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	ctx, span := metrics.StartStage(context.Background(), "run")
	metrics.RecordRun(ctx, "ok", "", 250*time.Millisecond)
	span.End()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{"dubbing_runs", "dubbing_run_duration_seconds", `outcome="ok"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
