// Package registry provides the framework name registry: the declarative
// tables behind folder-name parsing and compatibility decisions.
//
// The tables cover:
//
//   - Identifier short names and synonyms ("net" for ".NETFramework")
//   - Profile short names ("client" for "Client")
//   - Equivalent frameworks (win8 and netcore45 name the same platform)
//   - One-way compatibility ranges (uap consumes win81 assets)
//   - .NETStandard support per framework
//   - Identifier subsets and package-based frameworks
//   - Portable class library profiles
//
// # Data
//
// The default tables are an embedded TOML document (data/defaults.toml).
// Additional tables can be layered on top:
//
//	m, err := registry.LoadMappings(strings.NewReader(`
//	[[identifier]]
//	name = "MyPlatform"
//	short = "myp"
//	`))
//	r, err := registry.New(registry.WithMappings(m))
//
// Decoding is strict: unknown keys are rejected.
//
// # Thread Safety
//
// A Registry is immutable after New and safe for concurrent use.
package registry
