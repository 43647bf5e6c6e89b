// Package manifest records the role of every path in a base install.
//
// Build walks a base directory with a profile and returns a Manifest:
//
//	m, err := manifest.Build(baseDir, p)
//	if err != nil {
//	    return err
//	}
//	err = manifest.Save(m, baseDir) // writes <baseDir>/manifest.toml
//
// Keys are slash-separated paths relative to the base. Ephemeral
// directories are recorded but their contents are not. BaseData files get
// a BLAKE3 checksum; nothing verifies them yet.
//
// # Format
//
// Every manifest carries a format version. Load accepts manifests whose
// format satisfies ^1 and manifests written before the field existed.
package manifest
