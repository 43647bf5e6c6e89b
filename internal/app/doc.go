// Package app provides the application context for realmctl.
//
// An App bundles the resolved settings, the filesystem all workspace
// operations go through, and the event journal. Commands use app.Default,
// which the root command replaces after loading configuration:
//
//	v := config.New(configFile)
//	a, err := app.Load(v)
//	if err != nil {
//	    return err
//	}
//	app.SetDefault(a)
//
// Tests construct an App with options instead:
//
//	a := app.New(
//	    app.WithSettings(&config.Settings{WorkspaceRoot: t.TempDir()}),
//	    app.WithFS(system.NewFaultFS(system.DefaultFS(), faults...)),
//	)
package app
