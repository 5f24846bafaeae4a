package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"maps"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data/defaults.toml
var defaultMappingsTOML []byte

// Mappings is the decoded form of a mapping table document.
type Mappings struct {
	Identifiers        []IdentifierMapping    `toml:"identifier"`
	Profiles           []ProfileMapping       `toml:"profile"`
	EquivalentProfiles []ProfileSet           `toml:"equivalent_profiles"`
	Equivalents        []EquivalentSet        `toml:"equivalent"`
	Compatibility      []CompatibilityMapping `toml:"compatibility"`
	Standard           []StandardMapping      `toml:"standard"`
	Subsets            []SubsetMapping        `toml:"subset"`
	PackageBased       []RangeSpec            `toml:"package_based"`
	OptionalGroups     map[string][]string    `toml:"optional_groups"`
	Portable           []PortableProfile      `toml:"portable"`
}

// IdentifierMapping declares an identifier and the names that resolve to it.
type IdentifierMapping struct {
	Name     string   `toml:"name"`
	Short    string   `toml:"short"`
	Synonyms []string `toml:"synonyms"`

	// Decimal identifiers always render dotted versions.
	Decimal bool `toml:"decimal"`

	// SingleDigit identifiers render a zero minor version as just the major.
	SingleDigit bool `toml:"single_digit"`
}

// ProfileMapping declares a profile short name. Long may be empty.
type ProfileMapping struct {
	Identifier string `toml:"identifier"`
	Short      string `toml:"short"`
	Long       string `toml:"long"`
}

// ProfileSet lists interchangeable profiles of one identifier.
type ProfileSet struct {
	Identifier string   `toml:"identifier"`
	Profiles   []string `toml:"profiles"`
}

// EquivalentSet lists folder names that denote the same platform.
type EquivalentSet struct {
	Frameworks []string `toml:"frameworks"`
}

// RangeSpec describes a version range over one identifier. Min defaults to
// 0.0 and Max to unbounded.
type RangeSpec struct {
	Identifier string `toml:"identifier"`
	Profile    string `toml:"profile"`
	Min        string `toml:"min"`
	Max        string `toml:"max"`
	ExcludeMin bool   `toml:"exclude_min"`
	ExcludeMax bool   `toml:"exclude_max"`
}

// CompatibilityMapping says frameworks in Target consume assets for
// frameworks in Supports.
type CompatibilityMapping struct {
	Target   RangeSpec `toml:"target"`
	Supports RangeSpec `toml:"supports"`
}

// StandardMapping says Framework and its later versions consume
// .NETStandard up to Standard. Both are folder names.
type StandardMapping struct {
	Framework string `toml:"framework"`
	Standard  string `toml:"standard"`
}

// SubsetMapping says Identifier also consumes assets of Subsets at the same
// version.
type SubsetMapping struct {
	Identifier string   `toml:"identifier"`
	Subsets    []string `toml:"subsets"`
}

// PortableProfile declares a numbered portable class library profile.
type PortableProfile struct {
	Number        int      `toml:"number"`
	Required      []string `toml:"required"`
	Optional      []string `toml:"optional"`
	OptionalGroup string   `toml:"optional_group"`
}

// LoadMappings decodes a TOML mapping document. Unknown keys are rejected.
func LoadMappings(r io.Reader) (*Mappings, error) {
	var m Mappings
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: parsing mappings TOML: %w", ErrInvalidMappings, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMappings, err)
	}
	return &m, nil
}

// DefaultMappings decodes the embedded default tables.
func DefaultMappings() (*Mappings, error) {
	return LoadMappings(bytes.NewReader(defaultMappingsTOML))
}

// merge appends other's tables after m's.
func (m *Mappings) merge(other *Mappings) {
	m.Identifiers = append(m.Identifiers, other.Identifiers...)
	m.Profiles = append(m.Profiles, other.Profiles...)
	m.EquivalentProfiles = append(m.EquivalentProfiles, other.EquivalentProfiles...)
	m.Equivalents = append(m.Equivalents, other.Equivalents...)
	m.Compatibility = append(m.Compatibility, other.Compatibility...)
	m.Standard = append(m.Standard, other.Standard...)
	m.Subsets = append(m.Subsets, other.Subsets...)
	m.PackageBased = append(m.PackageBased, other.PackageBased...)
	m.Portable = append(m.Portable, other.Portable...)
	if len(other.OptionalGroups) > 0 {
		if m.OptionalGroups == nil {
			m.OptionalGroups = make(map[string][]string, len(other.OptionalGroups))
		}
		maps.Copy(m.OptionalGroups, other.OptionalGroups)
	}
}
