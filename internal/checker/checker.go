package checker

import (
	"errors"

	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	"github.com/ethanolivertroy/dep-check/internal/evaluator"
	"github.com/ethanolivertroy/dep-check/internal/gate"
	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/project"
	"github.com/ethanolivertroy/dep-check/internal/resolver"
	"github.com/ethanolivertroy/dep-check/internal/specifier"
)

// Target is one set of declared dependencies to check against its install roots
type Target struct {
	Ecosystem ecosystem.Spec
	Declared  []models.DeclaredDependency
	Roots     []string
}

// TargetFor builds the target for a loaded project
func TargetFor(p *project.Project) Target {
	return Target{
		Ecosystem: p.Ecosystem,
		Declared:  p.Dependencies,
		Roots:     p.InstallRoots,
	}
}

// Checker orchestrates classification, resolution and evaluation
type Checker struct {
	gate *gate.Gate
}

// New creates a Checker guarded by g. Every checker built for one tool
// invocation should share the same gate.
func New(g *gate.Gate) *Checker {
	if g == nil {
		g = gate.New()
	}
	return &Checker{gate: g}
}

// Gate returns the gate guarding this checker's sweeps
func (c *Checker) Gate() *gate.Gate {
	return c.gate
}

// Evaluate checks every declared dependency and returns one verdict per
// declaration, in declaration order. It ignores the gate.
func (c *Checker) Evaluate(eco ecosystem.Spec, declared []models.DeclaredDependency, roots []string) []models.Verdict {
	res := resolver.New(eco.Layout)
	verdicts := make([]models.Verdict, 0, len(declared))

	for _, dep := range declared {
		// Step 1: classify the declared specifier
		spec := specifier.Parse(dep.Name, dep.Raw)

		// Step 2: find what is installed
		installed := res.Resolve(dep.Name, roots)

		// Step 3: decide
		verdict := evaluator.Evaluate(spec, installed)
		verdict.Ecosystem = eco.Name
		verdict.SourceFile = dep.SourceFile
		verdict.Line = dep.Line

		verdicts = append(verdicts, verdict)
	}

	return verdicts
}

// CheckUnsatisfied returns the unsatisfied dependencies of one ecosystem. Once
// the gate has closed it returns nothing until the gate is reset.
func (c *Checker) CheckUnsatisfied(eco ecosystem.Spec, declared []models.DeclaredDependency, roots []string) []models.Verdict {
	return c.Sweep([]Target{{Ecosystem: eco, Declared: declared, Roots: roots}})
}

// Sweep checks several targets as one gated sweep and returns the
// unsatisfied verdicts, target by target in declaration order.
func (c *Checker) Sweep(targets []Target) []models.Verdict {
	return Unsatisfied(c.SweepAll(targets))
}

// SweepAll is Sweep without the filtering: every verdict of the sweep, or
// nothing when the gate has already closed.
func (c *Checker) SweepAll(targets []Target) []models.Verdict {
	var verdicts []models.Verdict

	c.gate.Run(func() {
		for _, t := range targets {
			verdicts = append(verdicts, c.Evaluate(t.Ecosystem, t.Declared, t.Roots)...)
		}
	})

	return verdicts
}

// Unsatisfied filters verdicts down to the unsatisfied ones, keeping order
func Unsatisfied(verdicts []models.Verdict) []models.Verdict {
	var out []models.Verdict
	for _, v := range verdicts {
		if !v.Satisfied {
			out = append(out, v)
		}
	}
	return out
}

// Errors joins the errors of all unsatisfied verdicts; nil if there are none
func Errors(verdicts []models.Verdict) error {
	var errs []error
	for _, v := range verdicts {
		if err := v.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
