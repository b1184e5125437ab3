package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/config"
	"github.com/bloodworks-io/phlox-cli/internal/recorder"
)

// registerChecks registers all health checks across three categories.
func (c *Checker) registerChecks() {
	// Backend checks
	c.add("server", "backend", c.checkServer)
	c.add("server-version", "backend", c.checkServerVersion)
	c.add("onboarding", "backend", c.checkOnboarding)

	// Local configuration checks
	c.add("config-file", "config", c.checkConfigFile)
	c.add("config-valid", "config", c.checkConfigValid)
	c.add("recordings-dir", "config", c.checkRecordingsDir)
	c.add("capture-binary", "config", c.checkCaptureBinary)

	// Endpoint checks
	c.add("llm-endpoint", "endpoints", c.checkLLMEndpoint)
	c.add("whisper-endpoint", "endpoints", c.checkWhisperEndpoint)
}

// ---------------------------------------------------------------------------
// Backend checks
// ---------------------------------------------------------------------------

func (c *Checker) checkServer(ctx context.Context) CheckResult {
	if err := c.client.ServerStatus(ctx); err != nil {
		if api.IsTimeout(err) {
			return CheckResult{Status: StatusFail, Message: fmt.Sprintf("no response within %s", c.client.Timeout())}
		}
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("unreachable: %s", shortErr(err))}
	}
	return CheckResult{Status: StatusPass, Message: c.client.BaseURL()}
}

func (c *Checker) checkServerVersion(ctx context.Context) CheckResult {
	v, err := c.client.ServerVersion(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "version endpoint unavailable"}
	}
	return CheckResult{Status: StatusPass, Message: v}
}

func (c *Checker) checkOnboarding(ctx context.Context) CheckResult {
	settings, err := c.client.UserSettings(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "cannot read user settings"}
	}
	if done, _ := settings[api.KeyOnboardingComplete].(bool); !done {
		return CheckResult{Status: StatusWarn, Message: "setup not completed (run: phlox setup)"}
	}
	name, _ := settings[api.KeyName].(string)
	if name == "" {
		return CheckResult{Status: StatusPass, Message: "completed"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("completed (%s)", name)}
}

// ---------------------------------------------------------------------------
// Local configuration checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(ctx context.Context) CheckResult {
	path := config.Path()
	if path == "" {
		return CheckResult{Status: StatusWarn, Message: "running on built-in defaults"}
	}
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("%s not found (defaults in effect)", path)}
	}
	return CheckResult{Status: StatusPass, Message: path}
}

func (c *Checker) checkConfigValid(ctx context.Context) CheckResult {
	issues := config.Validate(c.cfg)
	if len(issues) == 0 {
		return CheckResult{Status: StatusPass, Message: "valid"}
	}
	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	return CheckResult{Status: StatusFail, Message: fmt.Sprintf("invalid: %s", strings.Join(fields, ", "))}
}

func (c *Checker) checkRecordingsDir(ctx context.Context) CheckResult {
	dir := c.cfg.RecordingsDir
	if dir == "" {
		return CheckResult{Status: StatusFail, Message: "recordings dir not set"}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("%s missing (created on first recording)", dir)}
	}
	if !info.IsDir() {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s is not a directory", dir)}
	}
	// Probe writability the direct way.
	probe := filepath.Join(dir, ".phlox-health")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s not writable", dir)}
	}
	_ = os.Remove(probe)
	return CheckResult{Status: StatusPass, Message: dir}
}

func (c *Checker) checkCaptureBinary(ctx context.Context) CheckResult {
	runner, err := recorder.NewExecRunner(c.cfg.CaptureCommand)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "no capture binary (recording unavailable)"}
	}
	return CheckResult{Status: StatusPass, Message: runner.Binary()}
}

// ---------------------------------------------------------------------------
// Endpoint checks
// ---------------------------------------------------------------------------

func (c *Checker) checkLLMEndpoint(ctx context.Context) CheckResult {
	global, err := c.client.GlobalConfig(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "cannot read server configuration"}
	}
	provider, _ := global[api.KeyLLMProvider].(string)
	baseURL, _ := global[api.KeyLLMBaseURL].(string)
	if provider == "" {
		return CheckResult{Status: StatusWarn, Message: "no LLM provider configured"}
	}

	models, err := c.client.LLMModels(ctx, provider, baseURL, "")
	if err != nil {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s unreachable: %s", provider, shortErr(err))}
	}
	if len(models) == 0 {
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s (no model list)", provider)}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s, %d models", provider, len(models))}
}

func (c *Checker) checkWhisperEndpoint(ctx context.Context) CheckResult {
	global, err := c.client.GlobalConfig(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "cannot read server configuration"}
	}
	endpoint, _ := global[api.KeyWhisperBaseURL].(string)
	if endpoint == "" {
		return CheckResult{Status: StatusPass, Message: "transcription disabled"}
	}

	list, err := c.client.WhisperModels(ctx, endpoint)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("unreachable: %s", shortErr(err))}
	}
	if !list.ListAvailable {
		model, _ := global[api.KeyWhisperModel].(string)
		if model == "" {
			return CheckResult{Status: StatusWarn, Message: "reachable, but no model configured"}
		}
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("reachable (model: %s)", model)}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d models available", len(list.Models))}
}

// shortErr keeps check messages to one line.
func shortErr(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx > 0 {
		msg = msg[:idx]
	}
	return msg
}
