package compat_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/albertocavalcante/go-tfm/compat"
	"github.com/albertocavalcante/go-tfm/framework"
	"github.com/albertocavalcante/go-tfm/registry"
)

func fw(s string) framework.Framework {
	return framework.ParseFolder(s, registry.Default())
}

func fws(ss ...string) []framework.Framework {
	out := make([]framework.Framework, len(ss))
	for i, s := range ss {
		out[i] = fw(s)
	}
	return out
}

func names(fs []framework.Framework) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ShortFolderName(registry.Default())
	}
	return out
}

func newProvider(t *testing.T, opts ...compat.Option) *compat.Provider {
	t.Helper()
	p, err := compat.NewProvider(registry.Default(), opts...)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	return p
}

func newReducer(t *testing.T, opts ...compat.Option) *compat.Reducer {
	t.Helper()
	return compat.NewReducer(newProvider(t, opts...))
}

// findMetric returns the sample of name whose "result" label equals result,
// or the first sample when result is empty.
func findMetric(t *testing.T, reg *prometheus.Registry, name, result string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if result == "" {
				return m
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == result {
					return m
				}
			}
		}
	}
	return nil
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, result string) float64 {
	t.Helper()
	m := findMetric(t, reg, name, result)
	if m == nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
