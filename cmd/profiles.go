package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List builtin client profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tVERSION\tALIASES\tREQUIRED")
	fmt.Fprintln(w, "-------\t-------\t-------\t--------")

	defaultName := ""
	if p, ok := profile.Builtin(app.Default.Settings.Profile); ok {
		defaultName = p.Name
	}

	for _, name := range profile.BuiltinNames() {
		p, _ := profile.Builtin(name)

		aliases := strings.Join(profile.Aliases(name), ",")
		if aliases == "" {
			aliases = "-"
		}
		marker := ""
		if name == defaultName {
			marker = " (default)"
		}

		required := append(append([]string{}, p.RequiredFiles...), p.RequiredDirs...)
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", p.Name, marker, p.Version, aliases, strings.Join(required, " "))
	}

	return w.Flush()
}
