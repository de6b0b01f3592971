package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/cbr/internal/interp"
	"github.com/you-not-fish/cbr/internal/stdlib"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// testCase is one entry of testdata/cases.yml.
type testCase struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Exit   int    `yaml:"exit"`
}

type manifest struct {
	Cases []testCase `yaml:"cases"`
}

// TestE2E runs every program listed in testdata/cases.yml.
// Each test:
//  1. Parses and registers the program
//  2. Runs main with the case's stdin
//  3. Prints any diagnostic after the program output, as the cbr command does
//  4. Compares stdout and the exit code against the manifest
func TestE2E(t *testing.T) {
	cases := loadCases(t, "testdata/cases.yml")

	// Every program in testdata must have a case.
	files, err := filepath.Glob("testdata/*.cbr")
	if err != nil {
		t.Fatal(err)
	}
	listed := make(map[string]bool, len(cases))
	for _, tc := range cases {
		listed[tc.File] = true
	}
	for _, f := range files {
		if !listed[filepath.Base(f)] {
			t.Errorf("%s has no entry in cases.yml", f)
		}
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			runE2ETest(t, tc)
		})
	}
}

func loadCases(t *testing.T, path string) []testCase {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var m manifest
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	if len(m.Cases) == 0 {
		t.Fatalf("no cases in %s", path)
	}
	return m.Cases
}

// runE2ETest runs a single program and checks its output.
func runE2ETest(t *testing.T, tc testCase) {
	t.Helper()

	path := filepath.Join("testdata", tc.File)
	var out bytes.Buffer
	err := run(path, tc.Stdin, &out)
	if err != nil {
		fmt.Fprintln(&out, err)
	}

	if code := interp.ExitCode(err); code != tc.Exit {
		t.Errorf("exit code = %d, want %d (err: %v)", code, tc.Exit, err)
	}
	if got := out.String(); got != tc.Stdout {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, tc.Stdout)
	}
}

// run loads and executes the program at path in-process.
func run(path, stdin string, stdout *bytes.Buffer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	file, err := syntax.ParseFile(path, f)
	if err != nil {
		return err
	}
	in, err := interp.New(file, &interp.Config{
		Stdout: stdout,
		Stdin:  strings.NewReader(stdin),
		Std:    stdlib.New(stdlib.Config{SleepUnit: time.Millisecond, Seed: 1}),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = in.Run(ctx)
	return err
}
