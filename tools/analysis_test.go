package tools

import (
	"testing"

	"github.com/Comcast/casematch/rules"
)

func TestAnalysis(t *testing.T) {
	rs, err := rules.ReadFile("../rulesets/signs.yaml")
	if err != nil {
		t.Fatal(err)
	}

	a, err := Analyze(rs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Errors) != 0 {
		t.Fatal(a.Errors)
	}
	if a.Rules != 5 || a.Guards != 2 || a.Equals != 1 || a.Actions != 5 {
		t.Fatalf("got %#v", a)
	}
	if len(a.Shadowed) != 0 {
		t.Fatalf("shadowed: %v", a.Shadowed)
	}
	if len(a.Interpreters) != 1 || a.Interpreters[0] != "goja" {
		t.Fatalf("interpreters: %v", a.Interpreters)
	}
	if len(a.Types) != 3 {
		t.Fatalf("types: %v", a.Types)
	}
}

func TestAnalysisProblems(t *testing.T) {
	rs, err := rules.Parse([]byte(`
rules:
  - type: number
    action: return 1;
  - type: number
    guard: return true;
    action: return 2;
  - action: return 3;
  - type: string
    action: return 4;
  - type: tacos
    action: return 5;
  - type: bool
`))
	if err != nil {
		t.Fatal(err)
	}

	a, err := Analyze(rs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if i, have := a.Shadowed[1]; !have || i != 0 {
		t.Fatalf("shadowed: %v", a.Shadowed)
	}
	if i, have := a.Shadowed[3]; !have || i != 2 {
		t.Fatalf("shadowed: %v", a.Shadowed)
	}
	if _, have := a.Shadowed[2]; have {
		t.Fatalf("any is not shadowed by number: %v", a.Shadowed)
	}
	if len(a.Missing) != 1 || a.Missing[0] != 5 {
		t.Fatalf("missing: %v", a.Missing)
	}
	// Unknown type and missing action.
	if len(a.Errors) != 2 {
		t.Fatalf("errors: %v", a.Errors)
	}
}
