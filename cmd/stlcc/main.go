package main

import (
	"fmt"
	"os"
	"path/filepath"
	"stlc"

	"github.com/jessevdk/go-flags"
)

type options struct {
	Config  []string `short:"c" long:"config" description:"properties file to read, may be repeated"`
	Scoping string   `long:"scoping" choice:"lexical" choice:"flat" description:"name resolution policy"`
	Trace   bool     `long:"trace" description:"log lowering and checking steps to stderr"`
	Dump    string   `long:"dump" choice:"none" choice:"yaml" description:"print the syntax tree of every statement"`
	Args    struct {
		Files []string `positional-arg-name:"file" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}
	cfg, err := stlc.LoadConfig(opts.Config...)
	check(err)
	if opts.Scoping != "" {
		cfg.Scoping = opts.Scoping
	}
	if opts.Trace {
		cfg.Trace = true
	}
	if opts.Dump != "" {
		cfg.Dump = opts.Dump
	}
	check(cfg.Validate())
	for _, source := range opts.Args.Files {
		checkFile(cfg, source)
	}
}

func checkFile(cfg stlc.Config, source string) {
	if filepath.Ext(source) != ".stlc" {
		check(fmt.Errorf("a source file with an extension .stlc is expected: %s", source))
	}
	bytes, err := os.ReadFile(source)
	check(err)
	session := stlc.NewSession(cfg, cfg.NewLogger(os.Stderr))
	results, err := session.EvalFile(filepath.Base(source), bytes)
	for _, res := range results {
		if cfg.Dump == "yaml" {
			out, err := stlc.DumpSyntaxTree(res.Statement.Node)
			check(err)
			fmt.Print(string(out))
		}
		fmt.Println(res.String(session.Context))
	}
	check(err)
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
