package profile

import (
	"sort"
	"strings"
)

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "chromie-3.3.5a"

var builtinAliases = map[string]string{
	"chromie-3.3.5a": "chromie-3.3.5a",
	"3.3.5a":         "chromie-3.3.5a",
	"335":            "chromie-3.3.5a",
	"335a":           "chromie-3.3.5a",
	"vanilla-1.12":   "vanilla-1.12",
	"1.12":           "vanilla-1.12",
	"112":            "vanilla-1.12",
}

var builtinProfiles = map[string]func() *Profile{
	"chromie-3.3.5a": Chromie335a,
	"vanilla-1.12":   Vanilla112,
}

// Builtin returns a compiled builtin profile by name or alias.
func Builtin(name string) (*Profile, bool) {
	canonical, ok := builtinAliases[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return builtinProfiles[canonical](), true
}

// BuiltinNames returns the canonical names of the builtin profiles.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the aliases resolving to a canonical builtin name.
func Aliases(canonical string) []string {
	var out []string
	for alias, target := range builtinAliases {
		if target == canonical && alias != canonical {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

func mustCompile(p *Profile) *Profile {
	if err := p.Compile(); err != nil {
		panic(err)
	}
	return p
}

func ephemeralWarning(dir string) WarningRule {
	return WarningRule{Path: dir, Message: dir + " directory present in base - should be ephemeral"}
}

// Chromie335a is the profile for a 3.3.5a (Wrath of the Lich King) client.
func Chromie335a() *Profile {
	return mustCompile(&Profile{
		Name:    "chromie-3.3.5a",
		Version: "3.3.5a",
		RequiredFiles: []string{
			"Wow.exe",
			"Data/common.MPQ",
			"Data/patch.MPQ",
			"Data/lichking.MPQ",
		},
		RequiredDirs: []string{"Data"},
		RoleRules: []RoleRule{
			{Pattern: "Wow.exe", Role: Executable},
			{Pattern: `^Data/common.*\.MPQ$`, Role: BaseData, Regex: true},
			{Pattern: `^Data/expansion.*\.MPQ$`, Role: BaseData, Regex: true},
			{Pattern: `^Data/lichking.*\.MPQ$`, Role: BaseData, Regex: true},
			{Pattern: `^Data/patch.*\.MPQ$`, Role: MutableData, Regex: true},
			{Pattern: `^Screenshots($|/)`, Role: UserMedia, Regex: true},
			{Pattern: `^WTF($|/)`, Role: UserConfig, Regex: true},
			{Pattern: `^Interface($|/)`, Role: UserConfig, Regex: true},
			{Pattern: `^Cache($|/)`, Role: Ephemeral, Regex: true},
			{Pattern: `^Logs($|/)`, Role: Ephemeral, Regex: true},
			{Pattern: `^Errors($|/)`, Role: Ephemeral, Regex: true},
		},
		Warnings: []WarningRule{
			ephemeralWarning("Cache"),
			ephemeralWarning("Logs"),
			ephemeralWarning("Errors"),
		},
	})
}

// Vanilla112 is the profile for a 1.12 client.
func Vanilla112() *Profile {
	return mustCompile(&Profile{
		Name:          "vanilla-1.12",
		Version:       "1.12",
		RequiredFiles: []string{"WoW.exe", "realmlist.wtf"},
		RequiredDirs:  []string{"Data", "WTF", "Interface"},
		RoleRules: []RoleRule{
			{Pattern: "WoW.exe", Role: Executable},
			{Pattern: `^Data/.*\.MPQ$`, Role: BaseData, Regex: true},
			// Shadowed by the rule above; kept so custom forks can reorder it.
			{Pattern: `^Data/patch.*\.MPQ$`, Role: MutableData, Regex: true},
			{Pattern: `^Screenshots($|/)`, Role: UserMedia, Regex: true},
			{Pattern: `^WTF($|/)`, Role: UserConfig, Regex: true},
			{Pattern: `^Interface($|/)`, Role: UserConfig, Regex: true},
			{Pattern: `^Logs($|/)`, Role: Ephemeral, Regex: true},
			{Pattern: `^Errors($|/)`, Role: Ephemeral, Regex: true},
			{Pattern: `^WDB($|/)`, Role: Ephemeral, Regex: true},
		},
		Warnings: []WarningRule{
			ephemeralWarning("Logs"),
			ephemeralWarning("Errors"),
		},
	})
}
