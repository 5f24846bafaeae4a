package compat_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/albertocavalcante/go-tfm/compat"
)

func TestNewTable(t *testing.T) {
	tbl, err := compat.NewTable(
		fws("net45", "any", "netstandard2.0", "net40", "NET45", "unsupported", "agnostic"),
		newReducer(t))
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	if diff := cmp.Diff([]string{"net40", "net45", "netstandard2.0"}, names(tbl.Candidates())); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
	if !tbl.HasFramework(fw("net45")) || tbl.HasFramework(fw("any")) || tbl.HasFramework(fw("net461")) {
		t.Error("HasFramework() is wrong")
	}

	if _, err := compat.NewTable(nil, newReducer(t), compat.WithCacheSize(-1)); err == nil {
		t.Error("invalid options should be rejected")
	}
}

func TestTable_TryGetCompatible(t *testing.T) {
	tbl, err := compat.NewTable(fws("net40", "net45", "netstandard2.0"), newReducer(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		framework string
		want      []string
	}{
		{"net461", []string{"net40", "net45", "netstandard2.0"}},
		{"net40", []string{"net40"}},
		{"netcoreapp3.1", []string{"netstandard2.0"}},
		{"sl5", nil},
	}
	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			got, ok := tbl.TryGetCompatible(fw(tt.framework))
			if ok != (len(tt.want) > 0) {
				t.Fatalf("TryGetCompatible() ok = %v", ok)
			}
			if len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("TryGetCompatible() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// Returned slices are copies.
	got, _ := tbl.TryGetCompatible(fw("net461"))
	got[0] = fw("sl5")
	again, _ := tbl.TryGetCompatible(fw("net461"))
	if !again[0].Equal(fw("net40")) {
		t.Error("caller mutation leaked into the table")
	}

	nearest, ok := tbl.GetNearest(fw("net461"))
	if !ok || !nearest.Equal(fw("net45")) {
		t.Errorf("GetNearest(net461) = %s, %v", nearest, ok)
	}
	if _, ok := tbl.GetNearest(fw("sl5")); ok {
		t.Error("GetNearest(sl5) should find nothing")
	}
}

func TestTable_Concurrent(t *testing.T) {
	tbl, err := compat.NewTable(fws("net40", "net45", "netstandard2.0", "netstandard2.1"), newReducer(t))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := tbl.TryGetCompatible(fw("netcoreapp3.1"))
			results[i] = names(got)
		}()
	}
	wg.Wait()

	want := []string{"netstandard2.0", "netstandard2.1"}
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("goroutine %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestTable_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := compat.NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := compat.NewTable(fws("net40", "net45"), newReducer(t), compat.WithMetrics(m))
	if err != nil {
		t.Fatal(err)
	}

	tbl.TryGetCompatible(fw("net461"))
	tbl.TryGetCompatible(fw("net45"))
	tbl.TryGetCompatible(fw("sl5"))

	if got := counterValue(t, reg, "tfm_compat_table_lookups_total", "found"); got != 2 {
		t.Errorf("found lookups = %v, want 2", got)
	}
	if got := counterValue(t, reg, "tfm_compat_table_lookups_total", "empty"); got != 1 {
		t.Errorf("empty lookups = %v, want 1", got)
	}
	build := findMetric(t, reg, "tfm_compat_table_build_duration_seconds", "")
	if build == nil || build.GetHistogram().GetSampleCount() != 1 {
		t.Errorf("build histogram = %v, want one sample", build)
	}
}
