package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainpowertools/vodyfont/internal/model"
	"github.com/brainpowertools/vodyfont/internal/wrangler"
)

// stubWrangler writes a fake wrangler executable that records its
// arguments and exits with the given code.
func stubWrangler(t *testing.T, exitCode int) (m *wrangler.Manager, argsFile string, wranglerOut *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "wrangler")
	argsFile = filepath.Join(dir, "args.txt")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$*\" >> %q\nexit %d\n", argsFile, exitCode)
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	wranglerOut = &bytes.Buffer{}
	m = wrangler.NewManager(wrangler.WithBinary(bin), wrangler.WithOutput(wranglerOut, wranglerOut))
	return m, argsFile, wranglerOut
}

// TestRunDeployOutput pins the command's exact output: banner, status
// line, completion footer with both site URLs, and the exit prompt.
func TestRunDeployOutput(t *testing.T) {
	m, argsFile, _ := stubWrangler(t, 0)
	var out bytes.Buffer

	err := runDeploy(context.Background(), strings.NewReader("\n"), &out, m)
	require.NoError(t, err)

	want := strings.Join([]string{
		"=== VoDy site deploy ===",
		"",
		`Deploying www/ to Cloudflare Pages project "vodyfont" (branch main)...`,
		"",
		"",
		"Done! The site will be available at:",
		"  https://vodyfont.pages.dev",
		"  https://vodyfont.com",
		"",
		"Press Enter to exit...",
	}, "\n")
	assert.Equal(t, want, out.String())

	args, readErr := os.ReadFile(argsFile)
	require.NoError(t, readErr)
	assert.Equal(t, "pages deploy www --project-name vodyfont --branch main --commit-dirty=true\n",
		string(args), "exactly one wrangler invocation with the fixed arguments")
}

// TestRunDeployFooterOnFailure verifies the completion footer and exit
// prompt still print when wrangler fails, and the error carries
// wrangler's exit code.
func TestRunDeployFooterOnFailure(t *testing.T) {
	m, _, _ := stubWrangler(t, 1)
	var out bytes.Buffer

	err := runDeploy(context.Background(), strings.NewReader("\n"), &out, m)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitCode(1), cliErr.Code)

	assert.Contains(t, out.String(), "Done! The site will be available at:")
	assert.Contains(t, out.String(), "https://vodyfont.pages.dev")
	assert.Contains(t, out.String(), "https://vodyfont.com")
	assert.Contains(t, out.String(), "Press Enter to exit...")
}

// TestRunDeployEOFInput verifies a closed stdin counts as the
// acknowledgment keypress, so non-interactive runs terminate.
func TestRunDeployEOFInput(t *testing.T) {
	m, _, _ := stubWrangler(t, 0)

	err := runDeploy(context.Background(), strings.NewReader(""), io.Discard, m)
	require.NoError(t, err)
}

// TestRunDeployDeterministic verifies two runs produce byte-identical
// command output.
func TestRunDeployDeterministic(t *testing.T) {
	var first, second bytes.Buffer

	m1, _, _ := stubWrangler(t, 0)
	require.NoError(t, runDeploy(context.Background(), strings.NewReader("\n"), &first, m1))

	m2, _, _ := stubWrangler(t, 0)
	require.NoError(t, runDeploy(context.Background(), strings.NewReader("\n"), &second, m2))

	assert.Equal(t, first.String(), second.String())
}
