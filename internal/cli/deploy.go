// deploy.go implements the "vodyfont deploy" command.
//
// Deploy publishes the www/ directory to the Cloudflare Pages project
// via the wrangler CLI. The command is deliberately rigid: no flags, no
// arguments, no configuration. It prints a banner, runs exactly one
// wrangler invocation with fixed arguments, prints a completion footer
// naming the two site URLs, and waits for Enter before exiting.
//
// Two quirks of this command are deliberate:
//   - The "Done" footer prints whether or not wrangler succeeded; the
//     wrangler error (and its exit code) still propagates afterwards.
//   - The command blocks on a keypress before exiting, so the output
//     stays visible when launched from a double-clicked shortcut.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brainpowertools/vodyfont/internal/wrangler"
)

// Fixed deployment target. These are constants, not flags: the site has
// exactly one Pages project and one production branch.
const (
	deploySourceDir   = "www"
	deployProjectName = "vodyfont"
	deployBranch      = "main"
	deployCommitDirty = true
)

// deployURLs are the addresses printed in the completion footer: the
// Pages project URL and the custom domain in front of it.
var deployURLs = []string{
	"https://vodyfont.pages.dev",
	"https://vodyfont.com",
}

// NewDeployCommand creates the "deploy" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDeployCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the www/ site to Cloudflare Pages",
		Long: `Deploy the www/ directory to the Cloudflare Pages project "vodyfont"
(branch main) using the wrangler CLI.

Wrangler must be installed and authenticated; its output is shown
unmodified and its exit code is propagated. Uncommitted changes in the
working tree are allowed (--commit-dirty=true).`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			m := wrangler.NewManager()
			return runDeploy(cmd.Context(), os.Stdin, os.Stdout, m)
		},
	}
}

// runDeploy performs the fixed deploy sequence. The reader, writer, and
// manager are parameters so tests can capture the output and substitute
// a stub wrangler binary.
//
// The sequence is: banner, blank, status line, blank, wrangler
// invocation (streaming its own output), blank, completion footer with
// the two site URLs, blocking wait for Enter. The footer is printed
// unconditionally; a wrangler failure is returned only after the pause,
// carrying wrangler's exit code.
func runDeploy(ctx context.Context, in io.Reader, out io.Writer, m *wrangler.Manager) error {
	fmt.Fprintln(out, "=== VoDy site deploy ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Deploying %s/ to Cloudflare Pages project %q (branch %s)...\n",
		deploySourceDir, deployProjectName, deployBranch)
	fmt.Fprintln(out)

	deployErr := m.PagesDeploy(ctx, deploySourceDir, deployProjectName, deployBranch, deployCommitDirty)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! The site will be available at:")
	for _, url := range deployURLs {
		fmt.Fprintf(out, "  %s\n", url)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, "Press Enter to exit...")
	waitForEnter(in)

	return deployErr
}

// waitForEnter blocks until a line of input (or EOF) arrives. EOF counts
// as acknowledgment so non-interactive runs do not hang forever.
func waitForEnter(in io.Reader) {
	_, _ = bufio.NewReader(in).ReadString('\n')
}
