package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const signs = "../../rulesets/signs.yaml"

func TestMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tt := range []struct {
		m, want string
	}{
		{`5`, `"positive"`},
		{`-3`, `"non-positive"`},
		{`0`, `"zero"`},
		{`"x"`, `"string x"`},
		{`true`, `{"nomatch":true}`},
	} {
		var out bytes.Buffer
		opts := &Opts{rulesFile: signs, message: tt.m, output: "json"}
		if err := opts.run(ctx, strings.NewReader(""), &out); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(out.String()); got != tt.want {
			t.Fatalf("%s: got %s", tt.m, got)
		}
	}
}

func TestStdin(t *testing.T) {
	in := strings.NewReader(`# comment

5
"x"
{"likes":
defined?
3.14
quit
-1
`)
	var out bytes.Buffer
	opts := &Opts{rulesFile: signs, stdin: true, output: "json", defined: true}
	if err := opts.run(context.Background(), in, &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %q", lines)
	}
	if lines[0] != "true" || lines[1] != "true" || lines[4] != "true" {
		t.Fatalf("got %q", lines)
	}
	for _, i := range []int{2, 3} {
		if !strings.HasPrefix(lines[i], `{"error":`) {
			t.Fatalf("line %d: %s", i, lines[i])
		}
	}
}

func TestSaveLoadReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db := filepath.Join(dir, "rules.db")
	file := filepath.Join(dir, "rules.yaml")

	write := func(action string) {
		src := "name: tmp\nrules:\n  - type: number\n    action: return " + action + ";\n"
		if err := os.WriteFile(file, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write(`"one"`)
	opts := &Opts{rulesFile: file, dbFile: db, save: "tmp", output: "json"}
	if err := opts.run(ctx, nil, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts = &Opts{load: "tmp", dbFile: db, message: "1", output: "yaml"}
	if err := opts.run(ctx, nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "---\none\n" {
		t.Fatalf("got %q", got)
	}

	out.Reset()
	in := &lineReader{
		lines: []string{"1\n", "reload\n", "1\n"},
		before: map[int]func(){
			1: func() { write(`"two"`) },
		},
	}
	opts = &Opts{rulesFile: file, stdin: true, output: "json"}
	if err := opts.run(ctx, in, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\"one\"\n\"two\"\n" {
		t.Fatalf("got %q", got)
	}
}

// lineReader returns one line per Read and can run a function before
// returning a line.
type lineReader struct {
	lines  []string
	before map[int]func()
	n      int
}

func (r *lineReader) Read(p []byte) (int, error) {
	if r.n == len(r.lines) {
		return 0, io.EOF
	}
	if f, have := r.before[r.n]; have {
		f()
	}
	n := copy(p, r.lines[r.n])
	r.n++
	return n, nil
}

func TestBadOutput(t *testing.T) {
	opts := &Opts{rulesFile: signs, output: "xml"}
	if err := opts.run(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatal("didn't protest")
	}
}

func TestLoadWithoutDB(t *testing.T) {
	opts := &Opts{load: "signs", output: "json"}
	if err := opts.run(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatal("didn't protest")
	}
}
