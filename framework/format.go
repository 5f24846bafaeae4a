package framework

import (
	"slices"
	"strings"
)

// ShortFolderName renders f as a lowercase folder name, the inverse of
// ParseFolder. Portable descriptors render as "portable-" followed by their
// required frameworks. Sentinels render their identifier.
func (f Framework) ShortFolderName(p NameProvider) string {
	if !f.IsSpecific() {
		return strings.ToLower(f.identifier)
	}

	var b strings.Builder
	if f.IsNet5Era() {
		b.WriteString("net")
	} else if short, ok := p.TryGetShortIdentifier(f.identifier); ok {
		b.WriteString(short)
	} else {
		b.WriteString(lettersOnly(f.identifier))
	}
	b.WriteString(p.GetVersionString(f.identifier, f.version))

	switch {
	case f.IsPCL():
		b.WriteByte('-')
		b.WriteString(f.portableShortProfile(p))
	case f.HasPlatform():
		b.WriteByte('-')
		b.WriteString(f.platform)
		if !f.platformVersion.IsZero() {
			b.WriteString(f.platformVersion.String())
		}
	case f.HasProfile():
		short, ok := p.TryGetShortProfile(f.identifier, f.profile)
		if !ok {
			short = f.profile
		}
		if short != "" {
			b.WriteByte('-')
			b.WriteString(short)
		}
	}
	return strings.ToLower(b.String())
}

func (f Framework) portableShortProfile(p NameProvider) string {
	frameworks, ok := p.TryGetPortableFrameworks(f.profile, false)
	if !ok || len(frameworks) == 0 {
		return f.profile
	}
	names := make([]string, 0, len(frameworks))
	for _, fw := range frameworks {
		names = append(names, fw.ShortFolderName(p))
	}
	slices.SortFunc(names, compareFold)
	return strings.Join(names, "+")
}

func lettersOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// CanonicalLongName renders f as "Identifier,Version=vX.Y[,Profile=P]"
// followed by platform segments when present.
func (f Framework) CanonicalLongName() string {
	if !f.IsSpecific() {
		return f.identifier
	}
	var b strings.Builder
	b.WriteString(f.identifier)
	b.WriteString(",Version=v")
	b.WriteString(f.version.String())
	if f.profile != "" {
		b.WriteString(",Profile=")
		b.WriteString(f.profile)
	}
	if f.platform != "" {
		b.WriteString(",Platform=")
		b.WriteString(f.platform)
		if !f.platformVersion.IsZero() {
			b.WriteString(",PlatformVersion=v")
			b.WriteString(f.platformVersion.String())
		}
	}
	return b.String()
}

// String returns CanonicalLongName.
func (f Framework) String() string {
	return f.CanonicalLongName()
}
