package compat

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/albertocavalcante/go-tfm/framework"
)

// Table answers compatibility queries against a fixed candidate list.
// Compatible subsets of the candidates themselves are computed up front;
// other queried frameworks are computed on first use and cached.
type Table struct {
	reducer    *Reducer
	candidates []framework.Framework
	members    map[string]bool
	compatible sync.Map // framework key -> []framework.Framework
	group      singleflight.Group
	metrics    *Metrics
	log        *slog.Logger
}

// NewTable creates a Table. Sentinels are dropped from candidates,
// duplicates removed and the rest held in framework.Compare order.
func NewTable(candidates []framework.Framework, reducer *Reducer, opts ...Option) (*Table, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	specific := filter(dedupe(candidates), framework.Framework.IsSpecific)
	slices.SortFunc(specific, framework.Compare)

	t := &Table{
		reducer:    reducer,
		candidates: specific,
		members:    make(map[string]bool, len(specific)),
		metrics:    cfg.metrics,
		log:        cfg.log(),
	}
	for _, c := range specific {
		t.members[c.Key()] = true
	}
	for _, c := range specific {
		t.compatible.Store(c.Key(), t.compute(c))
	}

	t.metrics.observeBuild(start)
	t.log.Debug("compatibility table built",
		"candidates", len(specific),
		"duration", time.Since(start))
	return t, nil
}

// Candidates returns the table's candidates in canonical order.
func (t *Table) Candidates() []framework.Framework {
	return slices.Clone(t.candidates)
}

// HasFramework reports whether f is one of the candidates.
func (t *Table) HasFramework(f framework.Framework) bool {
	return t.members[f.Key()]
}

// TryGetCompatible returns the candidates f can consume, in canonical
// order, or false when there are none.
func (t *Table) TryGetCompatible(f framework.Framework) ([]framework.Framework, bool) {
	key := f.Key()
	v, ok := t.compatible.Load(key)
	if !ok {
		v, _, _ = t.group.Do(key, func() (any, error) {
			if v, ok := t.compatible.Load(key); ok {
				return v, nil
			}
			result := t.compute(f)
			t.compatible.Store(key, result)
			return result, nil
		})
	}
	compatible := v.([]framework.Framework)
	t.metrics.lookup(len(compatible) > 0)
	return slices.Clone(compatible), len(compatible) > 0
}

// GetNearest returns the candidate nearest to f.
func (t *Table) GetNearest(f framework.Framework) (framework.Framework, bool) {
	compatible, ok := t.TryGetCompatible(f)
	if !ok {
		return framework.Framework{}, false
	}
	return t.reducer.GetNearest(f, compatible)
}

func (t *Table) compute(f framework.Framework) []framework.Framework {
	return filter(t.candidates, func(c framework.Framework) bool {
		return t.reducer.provider.IsCompatible(f, c)
	})
}
