package interpreters

import (
	"errors"
	"testing"

	"github.com/Comcast/casematch/rules"
)

func TestStandard(t *testing.T) {
	is := Standard()
	for _, name := range []string{"goja", "ecmascript", "noop"} {
		if _, err := is.Find(name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := is.Find("cobol"); !errors.Is(err, rules.InterpreterNotFound) {
		t.Fatalf("got %v", err)
	}
}
