// Package profile classifies the paths of a client installation.
//
// A Profile is an ordered decision table of RoleRules. Each rule is either a
// literal (matches the path itself or anything below it) or a regular
// expression (matches anywhere in the path, so anchor with ^). Classify walks
// the table in declared order and returns the role of the first match, or
// Other.
//
//	p, _ := profile.Lookup("3.3.5a")
//	p.Classify("Data/common.MPQ")   // BaseData
//	p.Classify("Screenshots/a.jpg") // UserMedia
//	p.Classify("readme.txt")        // Other
//
// Profiles can also be loaded from TOML or YAML files:
//
//	name = "private-server"
//	version = "3.3.5a"
//	required_files = ["Wow.exe"]
//
//	[[role_rules]]
//	pattern = "Wow.exe"
//	role = "Executable"
//
//	[[role_rules]]
//	pattern = '^Data/.*\.MPQ$'
//	role = "BaseData"
//	regex = true
package profile
