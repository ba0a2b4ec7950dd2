package nlogo

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestReadModel(t *testing.T) {
	m, err := ReadModel(filepath.Join("testdata", "fire.nlogo"))
	if err != nil {
		t.Fatalf("failed to read model: %v", err)
	}

	if len(m.Experiments) != 2 {
		t.Fatalf("expected 2 experiments, got %d", len(m.Experiments))
	}

	exp := m.Experiments[0]
	if exp.Name != "density sweep" {
		t.Errorf("expected name 'density sweep', got %q", exp.Name)
	}
	if exp.Repetitions != 10 {
		t.Errorf("expected 10 repetitions, got %d", exp.Repetitions)
	}
	if exp.RunMetricsEveryStep != "true" {
		t.Errorf("expected runMetricsEveryStep 'true', got %q", exp.RunMetricsEveryStep)
	}
	if exp.Setup != "setup" || exp.Go != "go" {
		t.Errorf("unexpected setup/go: %q / %q", exp.Setup, exp.Go)
	}
	if exp.TimeLimit == nil || exp.TimeLimit.Steps != 500 {
		t.Errorf("unexpected time limit: %+v", exp.TimeLimit)
	}
	if len(exp.Metrics) != 1 || exp.Metrics[0] != "burned-trees / initial-trees" {
		t.Errorf("unexpected metrics: %v", exp.Metrics)
	}
	if len(exp.EnumeratedValueSets) != 2 {
		t.Fatalf("expected 2 enumerated value sets, got %d", len(exp.EnumeratedValueSets))
	}
	if exp.EnumeratedValueSets[0].Variable != "density" {
		t.Errorf("expected variable 'density', got %q", exp.EnumeratedValueSets[0].Variable)
	}
	if len(exp.EnumeratedValueSets[0].Values) != 3 {
		t.Errorf("expected 3 density values, got %d", len(exp.EnumeratedValueSets[0].Values))
	}
	if len(exp.SteppedValueSets) != 1 {
		t.Fatalf("expected 1 stepped value set, got %d", len(exp.SteppedValueSets))
	}
	svs := exp.SteppedValueSets[0]
	if svs.Variable != "sparks" || svs.First != 1 || svs.Step != 2 || svs.Last != 5 {
		t.Errorf("unexpected stepped value set: %+v", svs)
	}

	if m.Experiments[1].ExitCondition != "not any? turtles" {
		t.Errorf("unexpected exit condition: %q", m.Experiments[1].ExitCondition)
	}
}

func TestReadModel_Missing(t *testing.T) {
	if _, err := ReadModel(filepath.Join("testdata", "nope.nlogo")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseModel_NoExperiments(t *testing.T) {
	m, err := ParseModel("plain.nlogo", "to setup\nend\n@#$#@#$#@\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Experiments) != 0 {
		t.Errorf("expected empty model, got %d experiments", len(m.Experiments))
	}
}

func TestParseModel_MultipleBlocks(t *testing.T) {
	content := `noise
<experiments><experiment name="a" repetitions="1"/></experiments>
more noise
<experiments><experiment name="b" repetitions="2"/></experiments>`

	m, err := ParseModel("multi.nlogo", content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected names: %v", got)
	}
}

func TestParseModel_Malformed(t *testing.T) {
	_, err := ParseModel("bad.nlogo", "<experiments><experiment</experiments>")
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestModel_Experiment(t *testing.T) {
	m, err := ReadModel(filepath.Join("testdata", "fire.nlogo"))
	if err != nil {
		t.Fatalf("failed to read model: %v", err)
	}

	exp, err := m.Experiment("baseline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Repetitions != 4 {
		t.Errorf("expected 4 repetitions, got %d", exp.Repetitions)
	}

	_, err = m.Experiment("nonexistent")
	if !errors.Is(err, ErrExperimentNotFound) {
		t.Errorf("expected ErrExperimentNotFound, got %v", err)
	}
}
