// Package gotfm provides a Go library for NuGet-style target framework
// handling: parsing framework descriptors ("net45", "netstandard2.0",
// ".NETFramework,Version=v4.5,Profile=Client"), deciding which frameworks
// can consume assets built for which, and picking the nearest framework from
// a candidate set.
//
// # Overview
//
// The package ties together a few subpackages:
//
//   - versioning: NuGet package versions and version ranges
//   - framework: framework descriptors, folder names and long names
//   - registry: the framework name tables (aliases, equivalences, .NET
//     Standard support, portable profiles), loaded from TOML
//   - compat: the compatibility predicate, nearest-match reducer and
//     precomputed compatibility tables
//   - graph: compatibility graph diagnostics
//
// # Quick Start
//
// The package-level functions use a default engine built from the embedded
// tables:
//
//	net461 := gotfm.ParseDescriptor("net461")
//	gotfm.IsCompatible(net461, gotfm.ParseDescriptor("netstandard2.0")) // true
//
//	nearest, ok := gotfm.GetNearest(net461, []gotfm.Framework{
//	    gotfm.ParseDescriptor("net40"),
//	    gotfm.ParseDescriptor("net45"),
//	    gotfm.ParseDescriptor("netstandard2.0"),
//	})
//	// nearest is net45
//
// # Custom Tables
//
// Additional aliases or compatibility rules can be layered over the
// defaults:
//
//	m, err := registry.LoadMappings(f)
//	engine, err := gotfm.New(gotfm.WithMappings(m), gotfm.WithLogger(logger))
//
// # Thread Safety
//
// All public types in this package are safe for concurrent use.
package gotfm

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/albertocavalcante/go-tfm/compat"
	"github.com/albertocavalcante/go-tfm/framework"
	"github.com/albertocavalcante/go-tfm/graph"
	"github.com/albertocavalcante/go-tfm/registry"
	"github.com/albertocavalcante/go-tfm/versioning"
)

// Framework is a parsed target framework descriptor.
type Framework = framework.Framework

// Version is a NuGet package version.
type Version = versioning.Version

// Range is a NuGet package version range.
type Range = versioning.Range

// Engine bundles a name registry with a compatibility provider and reducer.
type Engine struct {
	registry  *registry.Registry
	provider  *compat.Provider
	reducer   *compat.Reducer
	tableOpts []compat.Option
	log       *slog.Logger
}

// New creates an Engine. Without options it uses the embedded default
// tables.
func New(opts ...Option) (*Engine, error) {
	cfg, err := newEngineConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.log()

	reg := cfg.registry
	switch {
	case reg != nil:
	case len(cfg.mappings) == 0:
		reg = registry.Default()
	default:
		ropts := []registry.Option{registry.WithLogger(log)}
		for _, m := range cfg.mappings {
			ropts = append(ropts, registry.WithMappings(m))
		}
		if reg, err = registry.New(ropts...); err != nil {
			return nil, fmt.Errorf("build registry: %w", err)
		}
	}

	copts := []compat.Option{compat.WithLogger(log)}
	if cfg.metrics != nil {
		m, err := compat.NewMetrics(cfg.metrics)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		copts = append(copts, compat.WithMetrics(m))
	}

	provider, err := compat.NewProvider(reg, append(copts, compat.WithCacheSize(cfg.cacheSize))...)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	log.Debug("engine created",
		"cache_size", cfg.cacheSize,
		"metrics", cfg.metrics != nil,
		"custom_tables", len(cfg.mappings) > 0 || cfg.registry != nil)

	return &Engine{
		registry:  reg,
		provider:  provider,
		reducer:   compat.NewReducer(provider),
		tableOpts: copts,
		log:       log,
	}, nil
}

// Registry returns the engine's name registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Provider returns the engine's compatibility provider.
func (e *Engine) Provider() *compat.Provider { return e.provider }

// Reducer returns the engine's reducer.
func (e *Engine) Reducer() *compat.Reducer { return e.reducer }

// ParseFolder parses a folder name such as "net45" or
// "portable-net45+win8". Unparseable input yields framework.Unsupported.
func (e *Engine) ParseFolder(folder string) Framework {
	return framework.ParseFolder(folder, e.registry)
}

// ParseDescriptor parses a folder name or a long name such as
// ".NETFramework,Version=v4.5". Unparseable input yields
// framework.Unsupported.
func (e *Engine) ParseDescriptor(s string) Framework {
	return framework.Parse(s, e.registry)
}

// ShortFolderName renders f as a folder name.
func (e *Engine) ShortFolderName(f Framework) string {
	return f.ShortFolderName(e.registry)
}

// IsCompatible reports whether target can consume assets built for
// candidate.
func (e *Engine) IsCompatible(target, candidate Framework) bool {
	return e.provider.IsCompatible(target, candidate)
}

// GetNearest returns the candidate that best matches project, or false when
// none is compatible.
func (e *Engine) GetNearest(project Framework, candidates []Framework) (Framework, bool) {
	return e.reducer.GetNearest(project, candidates)
}

// Reduce removes equivalent duplicates from fs.
func (e *Engine) Reduce(fs []Framework) []Framework {
	return e.reducer.Reduce(fs)
}

// ReduceUpwards keeps the most capable frameworks of fs.
func (e *Engine) ReduceUpwards(fs []Framework) []Framework {
	return e.reducer.ReduceUpwards(fs)
}

// ReduceDownwards keeps the least demanding frameworks of fs.
func (e *Engine) ReduceDownwards(fs []Framework) []Framework {
	return e.reducer.ReduceDownwards(fs)
}

// Expand yields every framework reachable from f through the name tables.
func (e *Engine) Expand(f Framework) iter.Seq[Framework] {
	return e.provider.Expander().Expand(f)
}

// NewTable precomputes compatibility against a fixed candidate list.
func (e *Engine) NewTable(candidates []Framework) (*compat.Table, error) {
	return compat.NewTable(candidates, e.reducer, e.tableOpts...)
}

// Graph builds the compatibility graph of fs.
func (e *Engine) Graph(fs []Framework) *graph.Graph {
	g := graph.Build(e.reducer, fs)
	e.log.Debug("compatibility graph built", "frameworks", len(g.Nodes))
	return g
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New()
	if err != nil {
		panic(fmt.Sprintf("gotfm: default engine: %v", err))
	}
	return e
})

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return defaultEngine()
}

// ParseVersion parses a NuGet package version such as "1.0.0-beta.1".
func ParseVersion(s string) (Version, error) {
	return versioning.Parse(s)
}

// ParseRange parses a NuGet version range such as "[1.0, 2.0)".
func ParseRange(s string) (Range, error) {
	return versioning.ParseRange(s)
}

// Satisfies reports whether version falls within versionRange.
func Satisfies(versionRange, version string) (bool, error) {
	r, err := versioning.ParseRange(versionRange)
	if err != nil {
		return false, err
	}
	v, err := versioning.Parse(version)
	if err != nil {
		return false, err
	}
	return r.Satisfies(v), nil
}

// ParseDescriptor parses a folder or long name with the default engine.
func ParseDescriptor(s string) Framework {
	return Default().ParseDescriptor(s)
}

// ShortFolderName renders f with the default engine.
func ShortFolderName(f Framework) string {
	return Default().ShortFolderName(f)
}

// IsCompatible reports whether target can consume assets built for
// candidate, using the default engine.
func IsCompatible(target, candidate Framework) bool {
	return Default().IsCompatible(target, candidate)
}

// GetNearest returns the nearest candidate using the default engine.
func GetNearest(project Framework, candidates []Framework) (Framework, bool) {
	return Default().GetNearest(project, candidates)
}

// Reduce removes equivalent duplicates using the default engine.
func Reduce(fs []Framework) []Framework {
	return Default().Reduce(fs)
}

// ReduceUpwards keeps the most capable frameworks using the default engine.
func ReduceUpwards(fs []Framework) []Framework {
	return Default().ReduceUpwards(fs)
}

// ReduceDownwards keeps the least demanding frameworks using the default
// engine.
func ReduceDownwards(fs []Framework) []Framework {
	return Default().ReduceDownwards(fs)
}

// NewTable precomputes compatibility against candidates using the default
// engine.
func NewTable(candidates []Framework) (*compat.Table, error) {
	return Default().NewTable(candidates)
}
