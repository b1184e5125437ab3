package health

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/config"
)

const testBase = "http://phlox.test:5000"

func newTestChecker(t *testing.T) (*Checker, *config.Config) {
	t.Helper()
	httpc := &http.Client{}
	httpmock.ActivateNonDefault(httpc)
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := config.Defaults()
	cfg.RecordingsDir = t.TempDir()
	client := api.New(testBase, api.WithHTTPClient(httpc), api.WithTimeout(2*time.Second))
	return NewChecker(client, cfg), cfg
}

func TestCheckServer(t *testing.T) {
	c, _ := newTestChecker(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/status",
		httpmock.NewStringResponder(200, `{}`))

	res := c.checkServer(context.Background())
	assert.Equal(t, StatusPass, res.Status)
	assert.Equal(t, testBase, res.Message)
}

func TestCheckServerUnreachable(t *testing.T) {
	c, _ := newTestChecker(t)
	// No responder registered: httpmock returns a connection error.

	res := c.checkServer(context.Background())
	assert.Equal(t, StatusFail, res.Status)
	assert.Contains(t, res.Message, "unreachable")
}

func TestCheckOnboarding(t *testing.T) {
	c, _ := newTestChecker(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/user",
		httpmock.NewStringResponder(200, `{"name":"Dr. Flox","has_completed_splash_screen":true}`))

	res := c.checkOnboarding(context.Background())
	assert.Equal(t, StatusPass, res.Status)
	assert.Contains(t, res.Message, "Dr. Flox")
}

func TestCheckOnboardingIncomplete(t *testing.T) {
	c, _ := newTestChecker(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/user",
		httpmock.NewStringResponder(200, `{}`))

	res := c.checkOnboarding(context.Background())
	assert.Equal(t, StatusWarn, res.Status)
	assert.Contains(t, res.Message, "phlox setup")
}

func TestCheckConfigValid(t *testing.T) {
	c, cfg := newTestChecker(t)

	res := c.checkConfigValid(context.Background())
	assert.Equal(t, StatusPass, res.Status)

	cfg.ServerURL = "not a url"
	cfg.RequestTimeoutSeconds = 0
	res = c.checkConfigValid(context.Background())
	assert.Equal(t, StatusFail, res.Status)
	assert.Contains(t, res.Message, "serverUrl")
	assert.Contains(t, res.Message, "requestTimeoutSeconds")
}

func TestCheckRecordingsDirWritable(t *testing.T) {
	c, _ := newTestChecker(t)

	res := c.checkRecordingsDir(context.Background())
	assert.Equal(t, StatusPass, res.Status)
}

func TestCheckWhisperEndpointDisabled(t *testing.T) {
	c, _ := newTestChecker(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/global",
		httpmock.NewStringResponder(200, `{"LLM_PROVIDER":"ollama"}`))

	res := c.checkWhisperEndpoint(context.Background())
	assert.Equal(t, StatusPass, res.Status)
	assert.Equal(t, "transcription disabled", res.Message)
}

func TestBuildReportAggregation(t *testing.T) {
	results := []CheckResult{
		{Name: "a", Status: StatusPass},
		{Name: "b", Status: StatusWarn},
		{Name: "c", Status: StatusFail},
		{Name: "d", Status: StatusPass},
	}
	r := buildReport(results, 10*time.Millisecond)

	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 1, r.Warned)
	assert.Equal(t, 1, r.Failed)
	assert.False(t, r.Healthy)
}

func TestRunCategory(t *testing.T) {
	c, _ := newTestChecker(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/status",
		httpmock.NewStringResponder(200, `{}`))
	httpmock.RegisterResponder("GET", testBase+"/api/config/version",
		httpmock.NewStringResponder(200, `{"version":"1.4.0"}`))
	httpmock.RegisterResponder("GET", testBase+"/api/config/user",
		httpmock.NewStringResponder(200, `{"has_completed_splash_screen":true}`))

	report := c.RunCategory(context.Background(), "backend")
	require.Equal(t, 3, report.Total)
	assert.True(t, report.Healthy)
	for _, res := range report.Results {
		assert.Equal(t, "backend", res.Category)
	}
}

func TestFormatReport(t *testing.T) {
	long := strings.Repeat("x", 60)
	r := buildReport([]CheckResult{
		{Name: "server", Category: "backend", Status: StatusPass, Message: "ok"},
		{Name: "config-valid", Category: "config", Status: StatusWarn, Message: long},
	}, 5*time.Millisecond)

	out := FormatReport(r)
	assert.Contains(t, out, "Phlox Health Check")
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "DEGRADED")

	// Long check messages are cut to the column width.
	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", 35)+"...")
}

func TestCategoryBadgeWorstStatus(t *testing.T) {
	pass := []CheckResult{{Status: StatusPass}}
	warn := []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}
	fail := []CheckResult{{Status: StatusWarn}, {Status: StatusFail}}

	assert.Contains(t, categoryBadge(pass), "OK")
	assert.Contains(t, categoryBadge(warn), "WARN")
	assert.Contains(t, categoryBadge(fail), "ERROR")
}
