package nlogo

import "encoding/xml"

// Experiment is one BehaviorSpace experiment definition. The struct tags
// mirror the element and attribute names of behaviorspace.dtd so the type
// round-trips through encoding/xml.
type Experiment struct {
	XMLName             xml.Name             `xml:"experiment"`
	Name                string               `xml:"name,attr"`
	Repetitions         int                  `xml:"repetitions,attr"`
	SequentialRunOrder  string               `xml:"sequentialRunOrder,attr,omitempty"`
	RunMetricsEveryStep string               `xml:"runMetricsEveryStep,attr,omitempty"`
	PreExperiment       string               `xml:"preExperiment,omitempty"`
	Setup               string               `xml:"setup,omitempty"`
	Go                  string               `xml:"go,omitempty"`
	PostRun             string               `xml:"postRun,omitempty"`
	PostExperiment      string               `xml:"postExperiment,omitempty"`
	Final               string               `xml:"final,omitempty"`
	TimeLimit           *TimeLimit           `xml:"timeLimit"`
	ExitCondition       string               `xml:"exitCondition,omitempty"`
	RunMetricsCondition string               `xml:"runMetricsCondition,omitempty"`
	Metrics             []string             `xml:"metric"`
	SteppedValueSets    []SteppedValueSet    `xml:"steppedValueSet"`
	EnumeratedValueSets []EnumeratedValueSet `xml:"enumeratedValueSet"`
}

// TimeLimit bounds an experiment run to a number of ticks.
type TimeLimit struct {
	Steps int `xml:"steps,attr"`
}

// EnumeratedValueSet assigns an explicit list of candidate values to a
// model variable.
type EnumeratedValueSet struct {
	Variable string  `xml:"variable,attr"`
	Values   []Value `xml:"value"`
}

// Value is a single candidate value. The literal is kept as the exact
// string from the model file; BehaviorSpace values may be numbers, booleans
// or quoted NetLogo strings and must not be reformatted.
type Value struct {
	Value string `xml:"value,attr"`
}

// SteppedValueSet assigns an inclusive integer range first..last with the
// given step to a model variable.
type SteppedValueSet struct {
	Variable string `xml:"variable,attr"`
	First    int    `xml:"first,attr"`
	Step     int    `xml:"step,attr"`
	Last     int    `xml:"last,attr"`
}

// Clone returns a deep copy of the experiment.
func (e *Experiment) Clone() *Experiment {
	c := *e
	if e.TimeLimit != nil {
		tl := *e.TimeLimit
		c.TimeLimit = &tl
	}
	c.Metrics = append([]string(nil), e.Metrics...)
	c.SteppedValueSets = append([]SteppedValueSet(nil), e.SteppedValueSets...)
	c.EnumeratedValueSets = make([]EnumeratedValueSet, len(e.EnumeratedValueSets))
	for i, evs := range e.EnumeratedValueSets {
		c.EnumeratedValueSets[i] = EnumeratedValueSet{
			Variable: evs.Variable,
			Values:   append([]Value(nil), evs.Values...),
		}
	}
	return &c
}
