package app

import (
	"path/filepath"
	"testing"

	"github.com/sogladev/wow-realm-switch-utility/internal/audit"
	"github.com/sogladev/wow-realm-switch-utility/internal/config"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Settings == nil {
		t.Fatal("Settings should not be nil")
	}
	if app.FS == nil {
		t.Error("FS should not be nil")
	}
	if app.Journal == nil {
		t.Error("Journal should not be nil")
	}
	if len(app.Settings.Share) != len(sharing.DefaultRules()) {
		t.Errorf("Share = %v, want default rules", app.Settings.Share)
	}
}

func TestNew_WithSettings(t *testing.T) {
	root := t.TempDir()
	settings := &config.Settings{WorkspaceRoot: root}

	app := New(WithSettings(settings))

	if app.Settings != settings {
		t.Error("WithSettings did not set settings")
	}
	if app.Root() != root {
		t.Errorf("Root() = %q, want %q", app.Root(), root)
	}
	if app.Creator().Root() != root {
		t.Errorf("Creator().Root() = %q, want %q", app.Creator().Root(), root)
	}
	if got := app.Journal.Path("a"); filepath.Dir(filepath.Dir(got)) != root {
		t.Errorf("journal path %q not under root %q", got, root)
	}
}

func TestNew_WithFSAndJournal(t *testing.T) {
	fsys := system.NewFaultFS(system.DefaultFS())
	journal := audit.NewJournal(t.TempDir())

	app := New(WithFS(fsys), WithJournal(journal))

	if app.FS != fsys {
		t.Error("WithFS did not set filesystem")
	}
	if app.Journal != journal {
		t.Error("WithJournal did not set journal")
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	t.Setenv("REALMCTL_WORKSPACE_ROOT", root)

	app, err := Load(config.New(filepath.Join(t.TempDir(), "missing.toml")))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if app.Root() != root {
		t.Errorf("Root() = %q, want %q", app.Root(), root)
	}
}

func TestWorkspaces_EmptyRoot(t *testing.T) {
	app := New(WithSettings(&config.Settings{WorkspaceRoot: filepath.Join(t.TempDir(), "none")}))

	list, err := app.Workspaces()
	if err != nil {
		t.Fatalf("Workspaces() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Workspaces() = %v, want empty", list)
	}

	if _, _, err := app.Find("missing"); err == nil {
		t.Error("Find() should fail for unknown workspace")
	}
}

func TestRecord(t *testing.T) {
	root := t.TempDir()
	app := New(WithSettings(&config.Settings{WorkspaceRoot: root}))

	app.Record(audit.EventCreate, "alpha", "created", map[string]int{"symlinks": 2})

	events, err := app.Journal.Events("alpha")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 1 || events[0].Counts["symlinks"] != 2 {
		t.Errorf("Events() = %+v", events)
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer SetDefault(original)

	custom := New(WithSettings(&config.Settings{WorkspaceRoot: t.TempDir()}))
	SetDefault(custom)

	if Default != custom {
		t.Error("SetDefault did not set default app")
	}

	ResetDefault()
	if Default == custom {
		t.Error("ResetDefault did not reset")
	}
}
