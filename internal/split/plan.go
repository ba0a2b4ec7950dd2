// Package split turns a BehaviorSpace experiment into independently
// schedulable single-combination runs.
package split

import (
	"fmt"
	"strconv"

	"github.com/nlogo-labs/nlsplit/internal/nlogo"
)

// Axis is one varying variable and its ordered candidate values.
type Axis struct {
	Variable string
	Values   []string
}

// Assignment pins one variable to one value for a generated run.
type Assignment struct {
	Variable string
	Value    string
}

// Run is a single generated experiment run.
type Run struct {
	// Number is the 1-based dense run number.
	Number int
	// Assignments pin each axis variable, in axis order.
	Assignments []Assignment
	// Repetitions carried inside this run.
	Repetitions int
}

// Plan is the expansion of one experiment.
type Plan struct {
	// Base is the experiment with all varying value sets removed.
	// Single-value enumerated sets stay inline.
	Base *nlogo.Experiment
	// Axes are the varying variables: multi-value enumerated sets in file
	// order, then stepped sets in file order.
	Axes []Axis
	// RepetitionsPerRun is the repetitions attribute of every emitted run.
	RepetitionsPerRun int
	// Clones is how many runs are emitted per value combination.
	Clones int
	// Warnings collected while planning, for the caller to surface.
	Warnings []string
}

// BuildPlan expands an experiment's value sets into a run plan.
//
// repetitionsPerRun > 0 splits the experiment's N repetitions into N/n runs
// of n repetitions each; a non-zero remainder is dropped with a warning.
// repetitionsPerRun <= 0, or n larger than N, keeps all repetitions inside
// a single run per combination.
func BuildPlan(exp *nlogo.Experiment, repetitionsPerRun int) *Plan {
	base := exp.Clone()

	var axes []Axis
	kept := base.EnumeratedValueSets[:0]
	for _, evs := range base.EnumeratedValueSets {
		if len(evs.Values) <= 1 {
			kept = append(kept, evs)
			continue
		}
		values := make([]string, len(evs.Values))
		for i, v := range evs.Values {
			values[i] = v.Value
		}
		axes = append(axes, Axis{Variable: evs.Variable, Values: values})
	}
	base.EnumeratedValueSets = kept

	for _, svs := range base.SteppedValueSets {
		var values []string
		for v := svs.First; v <= svs.Last; v += svs.Step {
			values = append(values, strconv.Itoa(v))
		}
		axes = append(axes, Axis{Variable: svs.Variable, Values: values})
	}
	base.SteppedValueSets = nil

	p := &Plan{
		Base:              base,
		Axes:              axes,
		RepetitionsPerRun: exp.Repetitions,
		Clones:            1,
	}

	if repetitionsPerRun > 0 && exp.Repetitions >= repetitionsPerRun {
		p.RepetitionsPerRun = repetitionsPerRun
		p.Clones = exp.Repetitions / repetitionsPerRun
		if exp.Repetitions%repetitionsPerRun != 0 {
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"repetitions per run does not divide the %d repetitions of experiment %q; "+
					"new total is %d (%d per run in %d run(s) per combination)",
				exp.Repetitions, exp.Name,
				p.RepetitionsPerRun*p.Clones, p.RepetitionsPerRun, p.Clones))
		}
	}

	return p
}

// Combinations is the number of unique value combinations.
func (p *Plan) Combinations() int {
	n := 1
	for _, a := range p.Axes {
		n *= len(a.Values)
	}
	return n
}

// TotalRuns is the number of runs the plan will emit.
func (p *Plan) TotalRuns() int {
	return p.Combinations() * p.Clones
}

// PadWidth is the zero-padding width used in setup file names. It is taken
// from the combination count, not the total run count, matching the naming
// of the original tool.
func (p *Plan) PadWidth() int {
	return len(strconv.Itoa(p.Combinations()))
}

// Runs generates every run of the plan: the cartesian product of the axes
// with the first axis varying slowest, each combination cloned Clones
// times. Zero axes still yield one run per clone so an experiment without
// varying variables is not lost.
func (p *Plan) Runs() []Run {
	runs := make([]Run, 0, p.TotalRuns())
	number := 1

	var walk func(prefix []Assignment, rest []Axis)
	walk = func(prefix []Assignment, rest []Axis) {
		if len(rest) == 0 {
			for c := 0; c < p.Clones; c++ {
				runs = append(runs, Run{
					Number:      number,
					Assignments: append([]Assignment(nil), prefix...),
					Repetitions: p.RepetitionsPerRun,
				})
				number++
			}
			return
		}
		axis := rest[0]
		for _, v := range axis.Values {
			walk(append(prefix, Assignment{Variable: axis.Variable, Value: v}), rest[1:])
		}
	}
	walk(nil, p.Axes)

	return runs
}

// Materialize clones the base experiment for one run, pinning each
// assignment as a single-value enumerated set. The base is never mutated.
func (p *Plan) Materialize(run Run) *nlogo.Experiment {
	exp := p.Base.Clone()
	exp.Repetitions = run.Repetitions
	for _, a := range run.Assignments {
		exp.EnumeratedValueSets = append(exp.EnumeratedValueSets, nlogo.EnumeratedValueSet{
			Variable: a.Variable,
			Values:   []nlogo.Value{{Value: a.Value}},
		})
	}
	return exp
}
