package framework

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"4.5", NewVersion(4, 5), false},
		{"v4.5", NewVersion(4, 5), false},
		{"4", NewVersion(4), false},
		{"10.0.19041.1", NewVersion(10, 0, 19041, 1), false},
		{"", Version{}, true},
		{"v", Version{}, true},
		{"4.x", Version{}, true},
		{"1.2.3.4.5", Version{}, true},
		{"-1.0", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFramework) {
				t.Errorf("error should wrap ErrInvalidFramework: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{}, "0.0"},
		{NewVersion(4, 5), "4.5"},
		{NewVersion(4, 5, 1), "4.5.1"},
		{NewVersion(4, 0, 0, 1), "4.0.0.1"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if NewVersion(4, 5).Compare(NewVersion(4, 5, 1)) >= 0 {
		t.Error("4.5 should sort below 4.5.1")
	}
	if MaxVersion.Compare(NewVersion(10000)) <= 0 {
		t.Error("MaxVersion should be above any real version")
	}
}

func TestNewVersion_TooManyParts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewVersion with five parts should panic")
		}
	}()
	NewVersion(1, 2, 3, 4, 5)
}

func TestEqualKeyHash(t *testing.T) {
	a := NewWithProfile(".NETFramework", NewVersion(4, 5), "Client")
	b := NewWithProfile(".netframework", NewVersion(4, 5), "CLIENT")
	c := NewWithProfile(".NETFramework", NewVersion(4, 5, 1), "Client")

	if !a.Equal(b) || a.Key() != b.Key() || a.Hash() != b.Hash() {
		t.Errorf("%s and %s should be equal with equal keys and hashes", a, b)
	}
	if a.Equal(c) || a.Key() == c.Key() {
		t.Errorf("%s and %s should differ", a, c)
	}
	if Compare(a, b) != 0 || Compare(a, c) >= 0 {
		t.Error("Compare disagrees with Equal")
	}

	p1 := NewWithPlatform(NetCoreApp, NewVersion(6), "windows", NewVersion(10))
	p2 := NewWithPlatform(NetCoreApp, NewVersion(6), "windows", NewVersion(10, 0, 19041))
	if p1.Equal(p2) || p1.Key() == p2.Key() {
		t.Error("platform versions should participate in equality")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name                                string
		f                                   Framework
		specific, pcl, net5, profile, platf bool
	}{
		{"any", Any, false, false, false, false, false},
		{"agnostic", Agnostic, false, false, false, false, false},
		{"unsupported", Unsupported, false, false, false, false, false},
		{"net45", New(Net, NewVersion(4, 5)), true, false, false, false, false},
		{"net40-client", NewWithProfile(Net, NewVersion(4), "Client"), true, false, false, true, false},
		{"portable", NewWithProfile(Portable, Version{}, "Profile7"), true, true, false, true, false},
		{"portable without profile", New(Portable, Version{}), true, false, false, false, false},
		{"net6.0-windows", NewWithPlatform(NetCoreApp, NewVersion(6), "windows", Version{}), true, false, true, false, true},
		{"netcoreapp3.1", New(NetCoreApp, NewVersion(3, 1)), true, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.f
			if f.IsSpecific() != tt.specific || f.IsPCL() != tt.pcl || f.IsNet5Era() != tt.net5 ||
				f.HasProfile() != tt.profile || f.HasPlatform() != tt.platf {
				t.Errorf("predicates wrong for %s", f)
			}
		})
	}

	if !Any.IsAny() || !Agnostic.IsAgnostic() || !Unsupported.IsUnsupported() {
		t.Error("sentinel predicates are wrong")
	}
}

func TestCanonicalLongName(t *testing.T) {
	tests := []struct {
		f    Framework
		want string
	}{
		{New(Net, NewVersion(4, 5, 1)), ".NETFramework,Version=v4.5.1"},
		{New(Net, NewVersion(4, 0, 0, 1)), ".NETFramework,Version=v4.0.0.1"},
		{NewWithProfile(Net, NewVersion(4), "Client"), ".NETFramework,Version=v4.0,Profile=Client"},
		{NewWithPlatform(NetCoreApp, NewVersion(6), "ios", Version{}), ".NETCoreApp,Version=v6.0,Platform=ios"},
		{Any, "Any"},
	}
	for _, tt := range tests {
		if got := tt.f.CanonicalLongName(); got != tt.want {
			t.Errorf("CanonicalLongName() = %q, want %q", got, tt.want)
		}
		if tt.f.String() != tt.f.CanonicalLongName() {
			t.Errorf("String() should equal CanonicalLongName()")
		}
	}
}

func TestPortableProfileNumber(t *testing.T) {
	tests := []struct {
		profile string
		want    int
		wantOK  bool
	}{
		{"Profile7", 7, true},
		{"profile259", 259, true},
		{"Profile", 0, false},
		{"Profile7a", 0, false},
		{"net45+win8", 0, false},
	}
	for _, tt := range tests {
		got, ok := PortableProfileNumber(tt.profile)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("PortableProfileNumber(%q) = %d, %v, want %d, %v", tt.profile, got, ok, tt.want, tt.wantOK)
		}
	}
	if PortableProfileName(78) != "Profile78" {
		t.Errorf("PortableProfileName(78) = %q", PortableProfileName(78))
	}
}
