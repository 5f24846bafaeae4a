package framework

// NameProvider supplies the naming tables that folder parsing and rendering
// depend on. Implementations must be safe for concurrent use.
type NameProvider interface {
	// TryGetIdentifier maps a short name or synonym ("net", "NETFramework")
	// to its full identifier.
	TryGetIdentifier(alias string) (string, bool)

	// TryGetShortIdentifier maps a full identifier to its short name.
	TryGetShortIdentifier(identifier string) (string, bool)

	// TryGetProfile maps a short profile ("client") to its long form.
	TryGetProfile(identifier, shortProfile string) (string, bool)

	// TryGetShortProfile maps a long profile to its short form.
	TryGetShortProfile(identifier, profile string) (string, bool)

	// TryGetVersion parses a folder version such as "45", "4.5" or "10.0".
	TryGetVersion(s string) (Version, bool)

	// GetVersionString renders a version the way a folder name for the
	// identifier spells it.
	GetVersionString(identifier string, v Version) string

	// TryGetPortableFrameworks decomposes a portable profile, given either as
	// "ProfileN" or as a "+"-joined list of short folder names.
	TryGetPortableFrameworks(profile string, includeOptional bool) ([]Framework, bool)

	// TryResolveCapabilityProfile finds the lowest numbered portable profile
	// whose required frameworks cover the given set.
	TryResolveCapabilityProfile(frameworks []Framework) (int, bool)
}
