package health

import (
	"fmt"
	"time"

	"github.com/sogladev/wow-realm-switch-utility/internal/system"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

// Status represents the health status of a workspace
type Status string

const (
	StatusHealthy    Status = "healthy"
	StatusDrifted    Status = "drifted"
	StatusConflicted Status = "conflicted"
	StatusBroken     Status = "broken"
)

// CheckResult contains the results of health checks
type CheckResult struct {
	Status     Status
	Corrective []workspace.Action
	Warnings   []workspace.Action
	Age        string
	Err        error
}

// Check inspects the workspace at wsPath with a dry-run repair. Nothing is
// changed on disk.
func Check(fsys system.FileSystem, wsPath string) *CheckResult {
	result, err := workspace.Repair(fsys, wsPath, workspace.RepairOptions{DryRun: true})
	if err != nil {
		return &CheckResult{Status: StatusBroken, Age: "unknown", Err: err}
	}

	check := &CheckResult{
		Corrective: result.Corrective(),
		Warnings:   result.Warnings(),
		Age:        formatAge(result.Config.CreatedAt),
	}
	check.Status = summarize(len(check.Corrective), len(check.Warnings))
	return check
}

// GetSummary returns only the summary status for wsPath.
func GetSummary(fsys system.FileSystem, wsPath string) Status {
	return Check(fsys, wsPath).Status
}

// summarize prefers conflicts over drift: drift can be repaired, conflicts
// need the user.
func summarize(corrective, warnings int) Status {
	switch {
	case warnings > 0:
		return StatusConflicted
	case corrective > 0:
		return StatusDrifted
	}
	return StatusHealthy
}

func formatAge(created time.Time) string {
	if created.IsZero() {
		return "unknown"
	}
	return formatDuration(time.Since(created))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}
