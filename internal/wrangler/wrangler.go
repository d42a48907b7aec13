package wrangler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/brainpowertools/vodyfont/internal/model"
)

// DefaultBinary is the wrangler executable name resolved via PATH.
const DefaultBinary = "wrangler"

// Manager invokes the wrangler CLI.
//
// The zero value is not usable; construct with NewManager. The binary
// path and output streams are injectable so tests can substitute a stub
// executable and capture its output.
type Manager struct {
	bin    string
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithBinary overrides the wrangler executable path. Used by tests to
// point at a stub; could also serve a user-local wrangler install.
func WithBinary(path string) Option {
	return func(m *Manager) { m.bin = path }
}

// WithOutput redirects wrangler's stdout and stderr streams.
// By default they pass straight through to the process's own streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(m *Manager) {
		m.stdout = stdout
		m.stderr = stderr
	}
}

// NewManager creates a wrangler Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		bin:    DefaultBinary,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PagesDeploy runs `wrangler pages deploy <dir> --project-name <project>
// --branch <branch> --commit-dirty=<bool>`.
//
// Wrangler's output is streamed through unmodified — no parsing, no
// retries, no translation of its failure text. On a non-zero wrangler
// exit, the returned CLIError carries wrangler's own exit code so the
// caller can propagate it to the OS. If the binary cannot be started at
// all (not installed, not on PATH), ExitWranglerNotFound is returned
// instead.
func (m *Manager) PagesDeploy(ctx context.Context, dir, project, branch string, commitDirty bool) error {
	args := []string{
		"pages", "deploy", dir,
		"--project-name", project,
		"--branch", branch,
		"--commit-dirty=" + strconv.FormatBool(commitDirty),
	}

	// #nosec G204 — args are fixed deployment constants, not user input
	cmd := exec.CommandContext(ctx, m.bin, args...)

	// Stream output through rather than capturing it: the deployment
	// progress wrangler prints (upload counts, deployment URL) is the
	// user-facing output of this operation.
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Wrangler ran and failed. Its own output already explains why
		// (auth failure, missing project, network error); all we add is
		// the exit code for propagation.
		return model.WrapCLIError(
			model.ExitCode(exitErr.ExitCode()),
			fmt.Sprintf("wrangler exited with code %d", exitErr.ExitCode()),
			err,
		)
	}

	// The process never started — almost always a missing binary.
	return model.WrapCLIError(model.ExitWranglerNotFound,
		fmt.Sprintf("failed to run %s (is wrangler installed and on PATH?)", m.bin), err)
}
