/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is a command-line utility that applies a rule set to
// JSON values.
//
//   pfmatch -r rulesets/signs.yaml -m 5
//   echo '"x"' | pfmatch -r rulesets/signs.yaml -stdin
//   pfmatch -r rulesets/signs.yaml -db rules.db -save signs
//   pfmatch -db rules.db -load signs -stdin -o yaml
//
// In stdin mode, each line is a JSON value.  Blank lines and lines
// that start with '#' are skipped.  "reload" rereads and recompiles
// the rule set, and "quit" ends the session.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Comcast/casematch/interpreters"
	"github.com/Comcast/casematch/interpreters/goja"
	"github.com/Comcast/casematch/pf"
	"github.com/Comcast/casematch/rules"
	"github.com/Comcast/casematch/storage/bolt"
	"github.com/Comcast/casematch/tools"
	"github.com/Comcast/casematch/util"

	"gopkg.in/yaml.v2"
)

type Opts struct {
	rulesFile string
	libDir    string
	dbFile    string
	save      string
	load      string
	message   string
	htmlFile  string
	output    string
	stdin     bool
	defined   bool
	bench     int
	verbose   bool

	interpreters rules.InterpretersMap
	store        *bolt.Storage
}

func main() {
	opts := &Opts{}
	flag.StringVar(&opts.rulesFile, "r", "", "rule set file (YAML or JSON)")
	flag.StringVar(&opts.libDir, "l", ".", "directory for goja libraries")
	flag.StringVar(&opts.dbFile, "db", "", "bolt file for stored rule sets")
	flag.StringVar(&opts.save, "save", "", "store the rule set under this name")
	flag.StringVar(&opts.load, "load", "", "load the named rule set from the store")
	flag.StringVar(&opts.message, "m", "", "value in JSON")
	flag.StringVar(&opts.htmlFile, "html", "", "write an HTML page for the rule set to this file")
	flag.StringVar(&opts.output, "o", "json", "output format: json or yaml")
	flag.BoolVar(&opts.stdin, "stdin", false, "read values from stdin, one per line")
	flag.BoolVar(&opts.defined, "defined", false, "only report whether a rule accepts the value")
	flag.IntVar(&opts.bench, "bench", 0, "number of times to apply (and report time)")
	flag.BoolVar(&opts.verbose, "v", false, "verbosity")
	flag.Parse()

	util.Logging = opts.verbose

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := opts.run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func (opts *Opts) logf(format string, args ...interface{}) {
	if opts.verbose {
		log.Printf(format, args...)
	}
}

func (opts *Opts) run(ctx context.Context, in io.Reader, out io.Writer) error {
	if opts.output != "json" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	if opts.interpreters == nil {
		opts.interpreters = interpreters.Standard()
		if i, is := opts.interpreters["goja"].(*goja.Interpreter); is {
			i.LibraryProvider = goja.MakeFileLibraryProvider(opts.libDir)
		}
	}

	if opts.dbFile != "" {
		s, err := bolt.NewStorage(opts.dbFile)
		if err != nil {
			return err
		}
		s.Debug = opts.verbose
		if err = s.Open(ctx); err != nil {
			return err
		}
		defer s.Close()
		opts.store = s
	}

	rs, m, err := opts.compile(ctx)
	if err != nil {
		return err
	}

	if opts.htmlFile != "" {
		f, err := os.Create(opts.htmlFile)
		if err != nil {
			return err
		}
		err = tools.RenderRuleSetPage(rs, f, nil)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		opts.logf("wrote %s", opts.htmlFile)
	}

	u := rules.NewUpdatable(m)

	if opts.message != "" {
		var x interface{}
		if err := json.Unmarshal([]byte(opts.message), &x); err != nil {
			return err
		}

		if 0 < opts.bench {
			opts.benchmark(u, x)
		}

		if err := opts.process(u, x, out); err != nil {
			return err
		}
	}

	if opts.stdin {
		return opts.loop(ctx, u, in, out)
	}

	return nil
}

// source reads the rule set source from the file or the store, and
// saves it if requested.
func (opts *Opts) source(ctx context.Context) ([]byte, error) {
	var (
		src []byte
		err error
	)

	switch {
	case opts.rulesFile != "":
		src, err = os.ReadFile(opts.rulesFile)
	case opts.load != "":
		if opts.store == nil {
			return nil, errors.New("-load needs -db")
		}
		src, err = opts.store.Get(ctx, opts.load)
	default:
		return nil, errors.New("need -r or -load")
	}
	if err != nil {
		return nil, err
	}

	if opts.save != "" {
		if opts.store == nil {
			return nil, errors.New("-save needs -db")
		}
		if err := opts.store.Put(ctx, opts.save, src); err != nil {
			return nil, err
		}
		opts.logf("saved rule set as %s", opts.save)
	}

	return src, nil
}

func (opts *Opts) compile(ctx context.Context) (*rules.RuleSet, *pf.Match[interface{}, interface{}], error) {
	src, err := opts.source(ctx)
	if err != nil {
		return nil, nil, err
	}

	rs, err := rules.Parse(src)
	if err != nil {
		return nil, nil, err
	}

	if a, err := tools.Analyze(rs, nil); err == nil {
		for j, i := range a.Shadowed {
			log.Printf("warning: rule %d is shadowed by rule %d", j, i)
		}
	}

	m, err := rs.Compile(ctx, opts.interpreters, nil)
	if err != nil {
		return nil, nil, err
	}
	opts.logf("compiled %s with %d rules", rs.Name, m.Len())

	return rs, m, nil
}

func (opts *Opts) benchmark(u *rules.Updatable, x interface{}) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	allocs := stats.TotalAlloc
	then := time.Now()
	for i := 0; i < opts.bench; i++ {
		if opts.defined {
			u.IsDefinedAt(x)
		} else {
			u.Apply(x)
		}
	}
	elapsed := time.Now().Sub(then)
	meanNanos := elapsed.Nanoseconds() / int64(opts.bench)

	runtime.ReadMemStats(&stats)
	allocated := (stats.TotalAlloc - allocs) / uint64(opts.bench)

	log.Printf("%d iterations, %d mean ns/Apply, %d mean bytes allocated per Apply", opts.bench, meanNanos, allocated)
}

// process applies the rules to x and writes the result.
//
// No match is reported as {"nomatch": x}.  Other errors are returned.
func (opts *Opts) process(u *rules.Updatable, x interface{}, out io.Writer) error {
	var result interface{}
	if opts.defined {
		result = u.IsDefinedAt(x)
	} else {
		y, err := u.Apply(x)
		if pf.IsNoMatch(err) {
			y = map[string]interface{}{"nomatch": x}
		} else if err != nil {
			return err
		}
		result = y
	}
	return opts.write(result, out)
}

func (opts *Opts) write(x interface{}, out io.Writer) error {
	var (
		bs  []byte
		err error
	)
	switch opts.output {
	case "yaml":
		if bs, err = yaml.Marshal(x); err == nil {
			bs = append([]byte("---\n"), bs...)
		}
	default:
		if bs, err = json.Marshal(x); err == nil {
			bs = append(bs, '\n')
		}
	}
	if err != nil {
		return err
	}
	_, err = out.Write(bs)
	return err
}

func (opts *Opts) loop(ctx context.Context, u *rules.Updatable, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case line == "quit":
			return nil
		case line == "reload":
			// The store is only read, so don't save again.
			save := opts.save
			opts.save = ""
			_, m, rerr := opts.compile(ctx)
			opts.save = save
			if rerr != nil {
				fmt.Fprintf(out, "%s\n", errorJS(rerr))
				break
			}
			u.Set(m)
			opts.logf("reloaded")
		default:
			var x interface{}
			if jerr := json.Unmarshal([]byte(line), &x); jerr != nil {
				fmt.Fprintf(out, "%s\n", errorJS(jerr))
				break
			}
			if perr := opts.process(u, x, out); perr != nil {
				fmt.Fprintf(out, "%s\n", errorJS(perr))
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func errorJS(err error) string {
	bs, _ := json.Marshal(map[string]interface{}{"error": err.Error()})
	return string(bs)
}
