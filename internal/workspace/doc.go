// Package workspace materializes client workspaces from a scanned base.
//
// # Layout
//
// Everything lives under one workspace root:
//
//	<root>/.shared/global/<rel>     # Global strategy targets
//	<root>/.shared/<base>/<rel>     # Base strategy targets
//	<root>/<name>/                  # a workspace
//	<root>/<name>/workspace.toml    # its Config record
//
// # Creating
//
// Creation is split into BuildPlan, which turns a manifest and sharing
// rules into an ordered []Op, and Apply, which executes it:
//
//	creator := workspace.NewCreator(root, nil)
//	result, err := creator.Create(workspace.CreateOptions{
//	    Name:     "ptr",
//	    BasePath: "/games/wow-3.3.5a",
//	    Rules:    sharing.DefaultRules(),
//	})
//
// The first pass handles UserMedia and UserConfig directories, shallowest
// first: shared strategies become a symlink into a shared root, Workspace
// becomes a private directory, and nothing below a shared directory is
// linked on its own. The second pass hard links Executable and BaseData
// files (falling back to a symlink), copies MutableData and Other files and
// creates empty Ephemeral directories. Any operation whose destination
// exists is skipped. Apply stops at the first failure and reports the
// failing operation; the partial workspace is left for the caller.
//
// # Repairing
//
// Repair walks the same shareable directories and only creates missing
// directories, shared targets and symlinks. Anything else it finds is
// returned as an advisory Action and left untouched.
//
// # Cleaning
//
// Clean empties Ephemeral directories and optionally removes WDB caches.
package workspace
