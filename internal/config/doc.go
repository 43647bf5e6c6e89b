// Package config loads realmctl's own settings.
//
// # Sources
//
// Settings come from, in increasing priority:
//
//   - built-in defaults
//   - the config file (~/.config/realmctl/config.toml, or --config)
//   - REALMCTL_* environment variables (REALMCTL_WORKSPACE_ROOT, REALMCTL_PROFILE)
//   - command-line flags bound by the cmd package
//
// # Config File
//
//	workspace_root = "~/games/workspaces"
//	profile = "chromie-3.3.5a"
//
//	[share]
//	screenshots = "global"
//	"interface/addons" = "base"
//	wtf = "workspace"
//
// The share table is merged over sharing.DefaultRules. A missing config
// file is not an error.
//
// # Paths
//
// ExpandHome expands a leading "~" in any user-supplied path.
package config
