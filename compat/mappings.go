package compat

import "github.com/albertocavalcante/go-tfm/framework"

// Mappings is the table source compatibility decisions are made from.
// *registry.Registry implements it.
type Mappings interface {
	framework.NameProvider

	TryGetEquivalentFrameworks(f framework.Framework) ([]framework.Framework, bool)
	TryGetCompatibilityRanges(f framework.Framework) ([]framework.Range, bool)
	CompatibilityTargets() []framework.Range
	TryGetSubsetFrameworks(identifier string) ([]string, bool)
	IsPackageBased(f framework.Framework) bool
}
