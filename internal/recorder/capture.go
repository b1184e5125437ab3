package recorder

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"syscall"
)

// captureCandidates lists known capture binaries in priority order, with
// the argument template that makes each write a WAV file to a path.
var captureCandidates = []struct {
	bin  string
	args func(path string) []string
}{
	{"ffmpeg", func(path string) []string {
		return []string{"-hide_banner", "-loglevel", "error", "-f", "alsa", "-i", "default", "-y", path}
	}},
	{"arecord", func(path string) []string {
		return []string{"-q", "-f", "cd", path}
	}},
}

// ExecRunner runs a capture binary as a subprocess. Pause and resume use
// job-control signals, which both ffmpeg and arecord tolerate.
type ExecRunner struct {
	bin  string
	args func(path string) []string
	cmd  *exec.Cmd
}

// argsForBinary picks the argument template matching a binary's base
// name. Unknown binaries get the ffmpeg template, which custom wrapper
// scripts are expected to accept.
func argsForBinary(bin string) func(path string) []string {
	name := filepath.Base(bin)
	for _, c := range captureCandidates {
		if name == c.bin {
			return c.args
		}
	}
	return captureCandidates[0].args
}

// NewExecRunner auto-detects a capture binary. When override is non-empty
// it names the binary to use (resolved on PATH); its argument template is
// matched by base name, so "arecord" gets arecord arguments.
func NewExecRunner(override string) (*ExecRunner, error) {
	if override != "" {
		p, err := exec.LookPath(override)
		if err != nil {
			return nil, fmt.Errorf("capture command %q not found: %w", override, err)
		}
		return &ExecRunner{bin: p, args: argsForBinary(p)}, nil
	}

	for _, c := range captureCandidates {
		if p, err := exec.LookPath(c.bin); err == nil {
			return &ExecRunner{bin: p, args: c.args}, nil
		}
	}
	return nil, fmt.Errorf("no audio capture binary found (looked for ffmpeg, arecord)")
}

// Binary returns the resolved capture binary path.
func (r *ExecRunner) Binary() string { return r.bin }

// Start implements CaptureRunner.
func (r *ExecRunner) Start(ctx context.Context, path string) error {
	if r.cmd != nil {
		return fmt.Errorf("capture already running (pid %d)", r.cmd.Process.Pid)
	}

	cmd := exec.CommandContext(ctx, r.bin, r.args(path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", r.bin, err)
	}
	r.cmd = cmd
	return nil
}

// Pause implements CaptureRunner by suspending the capture process.
func (r *ExecRunner) Pause() error {
	if r.cmd == nil {
		return fmt.Errorf("no capture running")
	}
	return r.cmd.Process.Signal(syscall.SIGSTOP)
}

// Resume implements CaptureRunner.
func (r *ExecRunner) Resume() error {
	if r.cmd == nil {
		return fmt.Errorf("no capture running")
	}
	return r.cmd.Process.Signal(syscall.SIGCONT)
}

// Stop implements CaptureRunner. SIGINT lets ffmpeg finalize the WAV
// header before exiting. The exit status is ignored: interrupted capture
// tools report nonzero even on a clean shutdown.
func (r *ExecRunner) Stop() error {
	if r.cmd == nil {
		return fmt.Errorf("no capture running")
	}
	// A paused process never handles SIGINT; wake it first.
	_ = r.cmd.Process.Signal(syscall.SIGCONT)
	if err := r.cmd.Process.Signal(syscall.SIGINT); err != nil {
		return fmt.Errorf("interrupting %s: %w", r.bin, err)
	}
	_ = r.cmd.Wait()
	r.cmd = nil
	return nil
}
