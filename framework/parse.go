package framework

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseFolder parses a folder name such as "net45", "net40-client",
// "netstandard2.0", "net6.0-windows10.0" or "portable-net45+win8".
//
// Percent-escapes are decoded first. Input that cannot be understood yields
// Unsupported; ParseFolder never fails.
func ParseFolder(folder string, p NameProvider) Framework {
	if strings.Contains(folder, "%") {
		if unescaped, err := url.PathUnescape(folder); err == nil {
			folder = unescaped
		}
	}
	if f, ok := parseSentinel(folder); ok {
		return f
	}

	alias, rawVersion, profile, ok := splitFolder(folder)
	if !ok {
		return Unsupported
	}
	identifier, ok := p.TryGetIdentifier(alias)
	if !ok {
		return Unsupported
	}
	var version Version
	if rawVersion != "" {
		if version, ok = p.TryGetVersion(rawVersion); !ok {
			return Unsupported
		}
	}

	if strings.EqualFold(identifier, Net) && version.Major >= 5 {
		identifier = NetCoreApp
	}

	switch {
	case strings.EqualFold(identifier, NetCoreApp) && version.Major >= 5 && profile != "":
		platform, platformVersion, ok := splitPlatform(profile, p)
		if !ok {
			return Unsupported
		}
		return NewWithPlatform(identifier, version, platform, platformVersion)
	case strings.EqualFold(identifier, Portable):
		return parsePortable(version, profile, p)
	}

	if profile != "" {
		if long, ok := p.TryGetProfile(identifier, profile); ok {
			profile = long
		}
	}
	return NewWithProfile(identifier, version, profile)
}

// Parse accepts either a folder name or a comma-separated long name. A long
// name with an unknown or malformed part yields Unsupported.
func Parse(s string, p NameProvider) Framework {
	if !strings.Contains(s, ",") {
		return ParseFolder(s, p)
	}
	f, err := ParseLongName(s)
	if err != nil {
		return Unsupported
	}
	if identifier, ok := p.TryGetIdentifier(f.identifier); ok {
		f.identifier = identifier
	}
	return f
}

// ParseLongName parses a canonical long name such as
// ".NETFramework,Version=v4.5,Profile=Client". Keys are case-insensitive and
// the "v" prefix on versions is optional. Version is required for specific
// frameworks.
func ParseLongName(s string) (Framework, error) {
	parts := strings.Split(s, ",")
	identifier := strings.TrimSpace(parts[0])
	if identifier == "" {
		return Framework{}, fmt.Errorf("%w: missing identifier in %q", ErrInvalidFramework, s)
	}
	if f, ok := parseSentinel(identifier); ok && len(parts) == 1 {
		return f, nil
	}

	f := Framework{identifier: identifier}
	hasVersion := false
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Framework{}, fmt.Errorf("%w: malformed part %q in %q", ErrInvalidFramework, part, s)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch strings.ToLower(key) {
		case "version":
			v, err := ParseVersion(value)
			if err != nil {
				return Framework{}, err
			}
			f.version = v
			hasVersion = true
		case "profile":
			f.profile = value
		case "platform":
			f.platform = value
		case "platformversion":
			v, err := ParseVersion(value)
			if err != nil {
				return Framework{}, err
			}
			f.platformVersion = v
		default:
			return Framework{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidFramework, key, s)
		}
	}
	if !hasVersion {
		return Framework{}, fmt.Errorf("%w: missing Version in %q", ErrInvalidFramework, s)
	}
	return f, nil
}

// MustParseLongName is like ParseLongName but panics on error.
func MustParseLongName(s string) Framework {
	f, err := ParseLongName(s)
	if err != nil {
		panic(err)
	}
	return f
}

func parseSentinel(s string) (Framework, bool) {
	switch {
	case strings.EqualFold(s, AnyIdentifier):
		return Any, true
	case strings.EqualFold(s, AgnosticIdentifier):
		return Agnostic, true
	case strings.EqualFold(s, UnsupportedIdentifier):
		return Unsupported, true
	}
	return Framework{}, false
}

// splitFolder splits "<letters and dots><digits and dots>[-<profile>]".
func splitFolder(s string) (alias, version, profile string, ok bool) {
	i := 0
	for i < len(s) && (isLetter(s[i]) || s[i] == '.') {
		i++
	}
	if i == 0 {
		return "", "", "", false
	}
	j := i
	for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
		j++
	}
	alias, version = s[:i], s[i:j]
	if j == len(s) {
		return alias, version, "", true
	}
	if s[j] != '-' || j+1 == len(s) {
		return "", "", "", false
	}
	profile = s[j+1:]
	for k := 0; k < len(profile); k++ {
		c := profile[k]
		if !isLetter(c) && !isDigit(c) && c != '.' && c != '+' && c != '-' {
			return "", "", "", false
		}
	}
	return alias, version, profile, true
}

// splitPlatform splits "windows10.0" into its platform name and version.
func splitPlatform(s string, p NameProvider) (string, Version, bool) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 {
		return "", Version{}, false
	}
	rest := s[i:]
	if rest == "" {
		return s, Version{}, true
	}
	for k := 0; k < len(rest); k++ {
		if !isDigit(rest[k]) && rest[k] != '.' {
			return "", Version{}, false
		}
	}
	v, ok := p.TryGetVersion(rest)
	if !ok {
		return "", Version{}, false
	}
	return s[:i], v, true
}

func parsePortable(version Version, profile string, p NameProvider) Framework {
	if profile == "" {
		return Unsupported
	}
	if n, ok := PortableProfileNumber(profile); ok {
		if _, ok := p.TryGetPortableFrameworks(profile, false); !ok {
			return Unsupported
		}
		return NewWithProfile(Portable, version, PortableProfileName(n))
	}
	frameworks, ok := p.TryGetPortableFrameworks(profile, false)
	if !ok {
		return Unsupported
	}
	if n, ok := p.TryResolveCapabilityProfile(frameworks); ok {
		return NewWithProfile(Portable, version, PortableProfileName(n))
	}
	return NewWithProfile(Portable, version, profile)
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
