// Package wrangler invokes the Cloudflare wrangler CLI for static-site
// deployment.
//
// All deployment is performed via os/exec calls to the wrangler binary,
// rather than the Cloudflare HTTP API. This approach:
//   - Reuses the user's existing wrangler authentication and configuration
//   - Shows the exact same upload progress the user sees in their terminal
//   - Keeps wrangler's own retry and error reporting behavior intact
//
// The Manager struct provides the single `pages deploy` operation.
// Wrangler's stdout and stderr are streamed through untouched, and a
// non-zero wrangler exit code is surfaced as a model.CLIError carrying
// that same exit code so the process can inherit it.
package wrangler
