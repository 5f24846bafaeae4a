package registry

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/go-tfm/framework"
)

func parse(t *testing.T, r *Registry, folder string) framework.Framework {
	t.Helper()
	f := framework.ParseFolder(folder, r)
	if !f.IsSpecific() {
		t.Fatalf("ParseFolder(%q) = %s", folder, f)
	}
	return f
}

func shortNames(r *Registry, fs []framework.Framework) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ShortFolderName(r))
	}
	slices.Sort(out)
	return out
}

func TestTryGetIdentifier(t *testing.T) {
	r := Default()
	tests := []struct {
		alias  string
		want   string
		wantOK bool
	}{
		{"net", framework.Net, true},
		{"NET", framework.Net, true},
		{"NETFramework", framework.Net, true},
		{".netframework", framework.Net, true},
		{"dotnet", framework.NetPlatform, true},
		{"asp.net", framework.AspNet, true},
		{"xamarin.ios", framework.XamarinIOS, true},
		{"xamarinios", framework.XamarinIOS, true},
		{"netstandard", framework.NetStandard, true},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := r.TryGetIdentifier(tt.alias)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TryGetIdentifier(%q) = %q, %v, want %q, %v", tt.alias, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if short, ok := r.TryGetShortIdentifier(".NETStandard"); !ok || short != "netstandard" {
		t.Errorf("TryGetShortIdentifier(.NETStandard) = %q, %v", short, ok)
	}
}

func TestTryGetVersion(t *testing.T) {
	r := Default()
	tests := []struct {
		input  string
		want   framework.Version
		wantOK bool
	}{
		{"", framework.Version{}, true},
		{"5", framework.NewVersion(5, 0), true},
		{"45", framework.NewVersion(4, 5), true},
		{"451", framework.NewVersion(4, 5, 1), true},
		{"4721", framework.NewVersion(4, 7, 2, 1), true},
		{"10", framework.NewVersion(1, 0), true},
		{"4.5", framework.NewVersion(4, 5), true},
		{"10.0.19041", framework.NewVersion(10, 0, 19041), true},
		{"1.2.3.4", framework.NewVersion(1, 2, 3, 4), true},
		{"12345", framework.Version{}, false},
		{"1.2.3.4.5", framework.Version{}, false},
		{"4.", framework.Version{}, false},
		{"4a", framework.Version{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := r.TryGetVersion(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TryGetVersion(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGetVersionString(t *testing.T) {
	r := Default()
	tests := []struct {
		identifier string
		version    framework.Version
		want       string
	}{
		{framework.Net, framework.Version{}, ""},
		{framework.Net, framework.NewVersion(4), "40"},
		{framework.Net, framework.NewVersion(4, 5), "45"},
		{framework.Net, framework.NewVersion(4, 5, 1), "451"},
		{framework.Net, framework.NewVersion(4, 7, 2, 1), "4721"},
		{framework.Windows, framework.NewVersion(8), "8"},
		{framework.Windows, framework.NewVersion(8, 1), "81"},
		{framework.Silverlight, framework.NewVersion(5), "5"},
		{framework.WindowsPhone, framework.NewVersion(7, 5), "75"},
		{framework.NetStandard, framework.NewVersion(1), "1.0"},
		{framework.NetStandard, framework.NewVersion(2, 1), "2.1"},
		{framework.NetCoreApp, framework.NewVersion(5), "5.0"},
		{framework.UAP, framework.NewVersion(10), "10.0"},
		{framework.UAP, framework.NewVersion(10, 0, 15064), "10.0.15064"},
		{framework.Tizen, framework.NewVersion(4), "40"},
		{framework.MonoAndroid, framework.NewVersion(1), "10"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier+"_"+tt.version.String(), func(t *testing.T) {
			if got := r.GetVersionString(tt.identifier, tt.version); got != tt.want {
				t.Errorf("GetVersionString(%s, %s) = %q, want %q", tt.identifier, tt.version, got, tt.want)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	r := Default()
	tests := []struct {
		identifier, short, long string
	}{
		{framework.Net, "client", "Client"},
		{framework.Net, "CF", "CompactFramework"},
		{framework.Net, "full", ""},
		{framework.Silverlight, "wp71", "WindowsPhone71"},
	}

	for _, tt := range tests {
		t.Run(tt.short, func(t *testing.T) {
			got, ok := r.TryGetProfile(tt.identifier, tt.short)
			if !ok || got != tt.long {
				t.Errorf("TryGetProfile(%s, %s) = %q, %v, want %q", tt.identifier, tt.short, got, ok, tt.long)
			}
		})
	}

	if got, ok := r.TryGetShortProfile(framework.Net, "client"); !ok || got != "client" {
		t.Errorf("TryGetShortProfile(net, client) = %q, %v", got, ok)
	}
	if _, ok := r.TryGetShortProfile(framework.Net, ""); ok {
		t.Error("the empty profile should have no short name")
	}
}

func TestTryGetEquivalentFrameworks(t *testing.T) {
	r := Default()
	tests := []struct {
		folder string
		want   []string
	}{
		{"win8", []string{"netcore", "netcore45", "win", "winrt", "winrt45"}},
		{"wp", []string{"sl3-wp", "sl3-wp71", "wp7"}},
		{"net40-client", []string{"net40", "net40-full"}},
		{"aspnet", []string{"dnx", "dnx45"}},
		{"netstandard2.0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			f := parse(t, r, tt.folder)
			got, ok := r.TryGetEquivalentFrameworks(f)
			if ok != (len(tt.want) > 0) {
				t.Fatalf("TryGetEquivalentFrameworks(%s) ok = %v", tt.folder, ok)
			}
			if diff := cmp.Diff(tt.want, shortNamesOrNil(r, got)); diff != "" {
				t.Errorf("equivalents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func shortNamesOrNil(r *Registry, fs []framework.Framework) []string {
	if len(fs) == 0 {
		return nil
	}
	return shortNames(r, fs)
}

func TestTryGetCompatibilityRanges(t *testing.T) {
	r := Default()
	tests := []struct {
		folder string
		want   []string
	}{
		{"uap10.0", []string{
			"Windows [0.0, 8.1]",
			"WindowsPhoneApp [0.0, 8.1]",
			".NETCore [0.0, 5.0]",
			".NETStandard [0.0, 1.4]",
		}},
		{"net461", []string{
			".NETStandard [0.0, 1.1]",
			".NETStandard [0.0, 1.2]",
			".NETStandard [0.0, 1.3]",
			".NETStandard [0.0, 2.0]",
		}},
		{"win81", []string{"WinRT [0.0, 4.5]", ".NETStandard [0.0, 1.1]", ".NETStandard [0.0, 1.2]"}},
		{"net40", nil},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			ranges, ok := r.TryGetCompatibilityRanges(parse(t, r, tt.folder))
			if ok != (len(tt.want) > 0) {
				t.Fatalf("TryGetCompatibilityRanges(%s) ok = %v", tt.folder, ok)
			}
			var got []string
			for _, rng := range ranges {
				got = append(got, rng.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTryGetSubsetFrameworks(t *testing.T) {
	r := Default()
	got, ok := r.TryGetSubsetFrameworks(".NETStandardApp")
	if !ok || !slices.Equal(got, []string{framework.NetStandard}) {
		t.Errorf("TryGetSubsetFrameworks(.NETStandardApp) = %v, %v", got, ok)
	}
	if _, ok := r.TryGetSubsetFrameworks(framework.Net); ok {
		t.Error(".NETFramework should have no subsets")
	}
}

func TestIsPackageBased(t *testing.T) {
	r := Default()
	tests := []struct {
		folder string
		want   bool
	}{
		{"netstandard2.0", true},
		{"netcoreapp3.1", true},
		{"net6.0-windows", true},
		{"uap10.0", true},
		{"netcore50", true},
		{"netcore45", false},
		{"net45", false},
		{"win8", false},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			if got := r.IsPackageBased(parse(t, r, tt.folder)); got != tt.want {
				t.Errorf("IsPackageBased(%s) = %v, want %v", tt.folder, got, tt.want)
			}
		})
	}
}

func TestTryGetPortableFrameworks(t *testing.T) {
	r := Default()
	tests := []struct {
		profile         string
		includeOptional bool
		want            []string
		wantOK          bool
	}{
		{"Profile7", false, []string{"net45", "win8"}, true},
		{"profile7", true, []string{
			"monoandroid", "monotouch", "net45", "win8",
			"xamarinios", "xamarinmac", "xamarintvos", "xamarinwatchos",
		}, true},
		{"Profile2", true, []string{"net40", "sl4", "win8", "wp7"}, true},
		{"net45+win8", false, []string{"net45", "win8"}, true},
		{"Profile999", false, nil, false},
		{"net45+bogus", false, nil, false},
		{"net45++win8", false, nil, false},
		{"", false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			got, ok := r.TryGetPortableFrameworks(tt.profile, tt.includeOptional)
			if ok != tt.wantOK {
				t.Fatalf("TryGetPortableFrameworks(%q) ok = %v, want %v", tt.profile, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, shortNamesOrNil(r, got)); diff != "" {
				t.Errorf("frameworks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTryResolveCapabilityProfile(t *testing.T) {
	r := Default()
	tests := []struct {
		name   string
		input  []string
		want   int
		wantOK bool
	}{
		{"net45 win8", []string{"net45", "win8"}, 7, true},
		{"order independent", []string{"win8", "net45"}, 7, true},
		{"three frameworks", []string{"net45", "win8", "wp8"}, 78, true},
		{"optional removed", []string{"net45", "win8", "monoandroid"}, 7, true},
		{"equivalent substituted", []string{"netcore45", "net45"}, 7, true},
		{"equivalent duplicate removed", []string{"win8", "netcore45", "net45"}, 7, true},
		{"phone", []string{"net45", "wp8"}, 49, true},
		{"phone apps", []string{"wpa81", "wp81"}, 84, true},
		{"five frameworks", []string{"wp8", "wpa81", "win8", "sl5", "net45"}, 344, true},
		{"single framework", []string{"net45"}, 0, false},
		{"unknown set", []string{"net45", "netstandard2.0"}, 0, false},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fs []framework.Framework
			for _, s := range tt.input {
				fs = append(fs, parse(t, r, s))
			}
			got, ok := r.TryResolveCapabilityProfile(fs)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TryResolveCapabilityProfile(%v) = %d, %v, want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Large equivalence classes must not blow up profile resolution.
func TestTryResolveCapabilityProfile_LargeEquivalenceClasses(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("[[identifier]]\nname = \"Alpha\"\nshort = \"alpha\"\n\n")
	doc.WriteString("[[identifier]]\nname = \"Beta\"\nshort = \"beta\"\n\n")
	for _, prefix := range []string{"alpha", "beta"} {
		doc.WriteString("[[equivalent]]\nframeworks = [")
		for i := 1; i <= 9; i++ {
			if i > 1 {
				doc.WriteString(", ")
			}
			doc.WriteString("\"" + prefix + string(rune('0'+i)) + "\"")
		}
		doc.WriteString("]\n\n")
	}
	for n, req := range map[int]string{1: `["alpha1", "beta1"]`, 2: `["alpha1", "alpha2", "beta1"]`} {
		doc.WriteString("[[portable]]\nnumber = " + string(rune('0'+n)) + "\nrequired = " + req + "\n\n")
	}

	m, err := LoadMappings(strings.NewReader(doc.String()))
	if err != nil {
		t.Fatalf("LoadMappings() error = %v", err)
	}
	r, err := New(WithoutDefaults(), WithMappings(m))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, ok := r.TryResolveCapabilityProfile([]framework.Framework{parse(t, r, "beta7"), parse(t, r, "alpha5")})
	if !ok || got != 1 {
		t.Errorf("TryResolveCapabilityProfile() = %d, %v, want 1, true", got, ok)
	}
	if _, ok := r.TryResolveCapabilityProfile([]framework.Framework{parse(t, r, "alpha5"), parse(t, r, "alpha6")}); ok {
		t.Error("two equivalent frameworks collapse to one and should match nothing")
	}
}

func TestLoadMappings_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "[[identifier]]\nname = \"X\"\ncolour = \"red\"\n"},
		{"bad toml", "[[identifier]\n"},
		{"missing name", "[[identifier]]\nshort = \"x\"\n"},
		{"non-positive profile", "[[portable]]\nnumber = 0\nrequired = [\"net45\"]\n"},
		{"duplicate profile", "[[portable]]\nnumber = 7\nrequired = [\"net45\"]\n[[portable]]\nnumber = 7\nrequired = [\"win8\"]\n"},
		{"short equivalence", "[[equivalent]]\nframeworks = [\"net45\"]\n"},
		{"bad range version", "[[compatibility]]\ntarget = { identifier = \"UAP\", min = \"x\" }\nsupports = { identifier = \"Windows\" }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMappings(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrInvalidMappings) {
				t.Errorf("LoadMappings() error = %v, want ErrInvalidMappings", err)
			}
		})
	}

	_, err := LoadMappings(strings.NewReader("[[identifier]]\nshort = \"x\"\n"))
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "identifier[0].name" {
		t.Errorf("expected a FieldError for identifier[0].name, got %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	unresolvable, err := LoadMappings(strings.NewReader("[[equivalent]]\nframeworks = [\"bogus1\", \"net45\"]\n"))
	if err != nil {
		t.Fatalf("LoadMappings() error = %v", err)
	}
	if _, err := New(WithMappings(unresolvable)); !errors.Is(err, ErrInvalidMappings) {
		t.Errorf("New() with unresolvable framework error = %v, want ErrInvalidMappings", err)
	}

	missingGroup, err := LoadMappings(strings.NewReader("[[portable]]\nnumber = 1000\nrequired = [\"net45\"]\noptional_group = \"nope\"\n"))
	if err != nil {
		t.Fatalf("LoadMappings() error = %v", err)
	}
	if _, err := New(WithMappings(missingGroup)); !errors.Is(err, ErrInvalidMappings) {
		t.Errorf("New() with unknown optional group error = %v, want ErrInvalidMappings", err)
	}

	if _, err := New(WithoutDefaults()); err == nil {
		t.Error("WithoutDefaults without mappings should fail")
	}
	if _, err := New(WithMappings(nil)); err == nil {
		t.Error("WithMappings(nil) should fail")
	}
}

func TestNew_LayeredMappings(t *testing.T) {
	m, err := LoadMappings(strings.NewReader(`
[[identifier]]
name = "MyPlatform"
short = "myp"
decimal = true

[[standard]]
framework = "myp2.0"
standard = "netstandard2.1"
`))
	if err != nil {
		t.Fatalf("LoadMappings() error = %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, err := New(WithMappings(m), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	f := parse(t, r, "myp3.0")
	if f.ShortFolderName(r) != "myp3.0" {
		t.Errorf("ShortFolderName() = %q", f.ShortFolderName(r))
	}
	ranges, ok := r.TryGetCompatibilityRanges(f)
	if !ok || ranges[len(ranges)-1].String() != ".NETStandard [0.0, 2.1]" {
		t.Errorf("TryGetCompatibilityRanges(myp3.0) = %v, %v", ranges, ok)
	}
	if _, ok := r.TryGetIdentifier("net"); !ok {
		t.Error("defaults should still be present")
	}
	if !strings.Contains(buf.String(), "framework registry built") {
		t.Errorf("expected a construction log line, got %q", buf.String())
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same registry")
	}
	numbers := Default().ProfileNumbers()
	if len(numbers) != 44 || numbers[0] != 2 || numbers[len(numbers)-1] != 344 {
		t.Errorf("ProfileNumbers() = %v", numbers)
	}
	if !slices.IsSorted(numbers) {
		t.Error("ProfileNumbers() should be sorted")
	}
}
