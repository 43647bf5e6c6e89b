// Package testutil provides synthetic client trees and fixtures for tests.
//
// # Trees
//
// Tree describes files and empty directories; Write materializes it:
//
//	base := testutil.NewBase(t, testutil.Chromie335aTree())
//
// Chromie335aTree and Vanilla112Tree satisfy the builtin profiles of the
// same name. ScenarioTree is the four-entry base (Wow.exe, Data/common.MPQ,
// Screenshots/, WTF/) used by end-to-end workspace tests.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/custom_profile.toml
//	fixtures/custom_profile.yaml
//	fixtures/invalid_pattern_profile.toml
//	fixtures/unknown_role_profile.toml
//	fixtures/future_manifest.toml
//
//	data, err := testutil.LoadFixture("custom_profile.toml")
//	path := testutil.WriteFixture(t, dir, "custom_profile.yaml")
package testutil
