package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"stlc"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/peterh/liner"
)

type options struct {
	Config  []string `short:"c" long:"config" description:"properties file to read, may be repeated"`
	Scoping string   `long:"scoping" choice:"lexical" choice:"flat" description:"name resolution policy"`
	Trace   bool     `long:"trace" description:"log lowering and checking steps to stderr"`
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
	check(cfg.Validate())
	repl(cfg)
}

func repl(cfg stlc.Config) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.History); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(cfg.History); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := stlc.NewSession(cfg, cfg.NewLogger(os.Stderr))
	prompt := cfg.Prompt + " "
	cont := cfg.Continuation + " "
	for {
		text, ok := readStatement(ln, prompt, cont)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(text, "\n", " "))
		if strings.HasPrefix(strings.TrimSpace(text), ":") {
			if quit := command(session, strings.TrimSpace(text)); quit {
				return
			}
			continue
		}
		res, err := session.Eval("<repl>", []byte(text))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(res.String(session.Context))
	}
}

// readStatement keeps reading continuation lines while the input so far
// ends in the middle of a statement.
func readStatement(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if stlc.NeedsMoreInput([]byte(src)) {
			continue
		}
		return src, true
	}
}

func command(session *stlc.Session, text string) bool {
	name, arg, _ := strings.Cut(text, " ")
	switch name {
	case ":quit", ":q":
		return true
	case ":context":
		for _, idx := range session.Context.Visible() {
			name, _ := session.Context.NameAt(idx)
			if typ, ok := session.Context.TypeAt(idx); ok {
				fmt.Printf("%d %s : %s\n", idx, name, typ)
			} else {
				fmt.Printf("%d %s\n", idx, name)
			}
		}
	case ":tree":
		node, err := stlc.ParseSyntax("<repl>", []byte(arg))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		out, err := stlc.DumpSyntaxTree(node)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		fmt.Print(string(out))
	case ":reset":
		session.Reset()
	default:
		fmt.Println("commands: :context, :tree <statement>, :reset, :quit")
	}
	return false
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
