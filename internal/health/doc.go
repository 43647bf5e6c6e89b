// Package health summarizes how far a workspace has drifted from its base.
//
// # Health Status
//
// Workspace health is represented by Status:
//
//	StatusHealthy    - a repair would do nothing
//	StatusDrifted    - a repair would create missing directories or links
//	StatusConflicted - user changes a repair leaves alone
//	StatusBroken     - config or manifest missing or unreadable
//
// # Check Functions
//
//	result := health.Check(fsys, wsPath)
//	// result.Status, .Corrective, .Warnings, .Age
//
//	status := health.GetSummary(fsys, wsPath)
//
// Checks run workspace.Repair in dry-run mode and never touch the disk.
package health
