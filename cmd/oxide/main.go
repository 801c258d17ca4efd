package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/oxide"
	"github.com/zephyrtronium/oxide/binding"
)

func main() {
	log.SetFlags(0)
	binding.Init(log.New(os.Stderr, "oxide: ", 0))
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil: // do nothing
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

// errFailed indicates that some expression failed after results were
// already reported.
var errFailed = errors.New("some expressions failed")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		inname, batch, cfgname string
		nl, echo, each, asjson bool
		verbose                bool
		prec, workers          int
	)
	fs := flag.NewFlagSet("oxide", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	fs.StringVar(&batch, "batch", "", "JSON or YAML file containing an array of expressions")
	fs.StringVar(&cfgname, "config", "", "YAML configuration file")
	fs.IntVar(&prec, "p", 0, "digits after the decimal point to round results to (default no rounding)")
	fs.IntVar(&workers, "workers", 0, "expressions to evaluate concurrently (default GOMAXPROCS)")
	fs.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	fs.BoolVar(&echo, "echo", false, "print expressions in canonical form")
	fs.BoolVar(&each, "each", false, "report each failing expression instead of stopping at the first")
	fs.BoolVar(&asjson, "json", false, "print results as a JSON array")
	fs.BoolVar(&verbose, "v", false, "log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(cfgname)
	if err != nil {
		return err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["p"] {
		if prec < 0 {
			return errors.Errorf("precision (%d) must not be negative", prec)
		}
		if uint64(prec) > math.MaxUint32 {
			return errors.Errorf("precision (%d) is too large", prec)
		}
		p := uint32(prec)
		cfg.Precision = &p
	}
	if set["workers"] {
		cfg.Workers = workers
	}
	if set["n"] {
		cfg.Lines = nl
	}
	if set["json"] {
		cfg.JSON = asjson
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(stderr, "oxide: ", 0)
	}

	var srcs []string
	if batch != "" {
		b, err := readBatch(batch)
		if err != nil {
			return err
		}
		srcs = append(srcs, b...)
	}
	f, err := infile(inname, fs.NArg() == 0 && batch == "", stdin)
	if err != nil {
		return err
	}
	if c, ok := f.(io.Closer); ok && inname != "" && inname != "-" {
		defer c.Close()
	}
	if f != nil {
		in, err := readExprs(f, cfg.Lines)
		if err != nil {
			return err
		}
		srcs = append(srcs, in...)
	}
	srcs = append(srcs, fs.Args()...)
	logger.Printf("evaluating %d expressions", len(srcs))

	if echo {
		for _, src := range srcs {
			a, err := oxide.Parse(src)
			if err != nil {
				logger.Printf("parsing %q: %v", src, err)
				fmt.Fprintf(stdout, "%q : %v\n", src, err)
				continue
			}
			fmt.Fprintln(stdout, a)
		}
		return nil
	}

	if cfg.JSON {
		in, err := json.Marshal(srcs)
		if err != nil {
			return errors.Wrap(err, "encoding expressions")
		}
		out, err := binding.OxidateMultiple(in, cfg.Precision)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", out)
		return err
	}

	opts := cfg.options()
	if each {
		failed := false
		for i, r := range oxide.EvaluateEach(context.Background(), srcs, opts...) {
			if r.Err != nil {
				failed = true
				logger.Printf("evaluating %q: %v", srcs[i], r.Err)
				fmt.Fprintf(stdout, "error: %v\n", r.Err)
				continue
			}
			fmt.Fprintln(stdout, r.Value)
		}
		if failed {
			return errFailed
		}
		return nil
	}

	vals, err := oxide.EvaluateMany(context.Background(), srcs, opts...)
	if err != nil {
		return err
	}
	for _, v := range vals {
		fmt.Fprintln(stdout, v)
	}
	return nil
}

// infile opens the expression input. std is whether to read stdin when no
// file is named.
func infile(inname string, std bool, stdin io.Reader) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		return in, nil
	case inname == "-", std:
		return stdin, nil
	}
	return nil, nil
}

// readExprs reads expressions from r. If lines is true, each non-blank line
// is an expression; otherwise the entire input is one expression.
func readExprs(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		return []string{string(b)}, nil
	}
	var v []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		v = append(v, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return v, nil
}
