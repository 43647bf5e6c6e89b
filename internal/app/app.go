package app

import (
	"github.com/spf13/viper"

	"github.com/sogladev/wow-realm-switch-utility/internal/audit"
	"github.com/sogladev/wow-realm-switch-utility/internal/config"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

// App holds the application dependencies
type App struct {
	// Settings holds the resolved realmctl settings
	Settings *config.Settings

	// FS is the filesystem every workspace operation goes through
	FS system.FileSystem

	// Journal records create/repair/clean events per workspace
	Journal *audit.Journal
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets custom settings
func WithSettings(settings *config.Settings) Option {
	return func(a *App) {
		a.Settings = settings
	}
}

// WithFS sets a custom filesystem
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithJournal sets a custom event journal
func WithJournal(j *audit.Journal) Option {
	return func(a *App) {
		a.Journal = j
	}
}

// New creates a new App with the given options.
// Settings default to the built-in defaults without reading any config file.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Settings == nil {
		app.Settings = defaultSettings()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Journal == nil {
		app.Journal = audit.NewJournal(app.Settings.WorkspaceRoot)
	}

	return app
}

// Load resolves settings from v and creates an App around them.
func Load(v *viper.Viper, opts ...Option) (*App, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if settings.ConfigFile != "" {
		logging.Debug("loaded config", "file", settings.ConfigFile)
	}
	return New(append([]Option{WithSettings(settings)}, opts...)...), nil
}

func defaultSettings() *config.Settings {
	root, err := config.ExpandHome(config.DefaultWorkspaceRoot())
	if err != nil {
		logging.Debug("failed to expand workspace root", "error", err)
	}
	return &config.Settings{
		WorkspaceRoot: root,
		Share:         sharing.DefaultRules(),
	}
}

// Root returns the workspace root directory
func (a *App) Root() string {
	return a.Settings.WorkspaceRoot
}

// Creator returns a workspace creator for the configured root
func (a *App) Creator() *workspace.Creator {
	return workspace.NewCreator(a.Root(), a.FS)
}

// Workspaces lists every workspace under the configured root
func (a *App) Workspaces() ([]*workspace.Config, error) {
	return workspace.List(a.FS, a.Root())
}

// Find loads the named workspace, returning its config and directory
func (a *App) Find(name string) (*workspace.Config, string, error) {
	return workspace.Find(a.FS, a.Root(), name)
}

// Record appends an event to the journal, logging instead of failing
func (a *App) Record(eventType audit.EventType, ws, details string, counts map[string]int) {
	if err := a.Journal.LogEvent(eventType, ws, details, counts); err != nil {
		logging.Warn("failed to record event", "workspace", ws, "error", err)
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
