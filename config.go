package stlc

import (
	"io"
	"log/slog"

	"github.com/magiconair/properties"
)

// Config is read from a properties file such as
//
//	scoping = flat
//	trace = true
//	repl.history = ${HOME}/.stlc_history
type Config struct {
	Scoping      string `properties:"scoping,default=lexical"`
	Trace        bool   `properties:"trace,default=false"`
	Dump         string `properties:"dump,default=none"`
	Prompt       string `properties:"repl.prompt,default=stlc>"`
	Continuation string `properties:"repl.continuation,default=....>"`
	History      string `properties:"repl.history,default=.stlc_history"`
}

func DefaultConfig() Config {
	cfg, err := decodeConfig(properties.NewProperties())
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads the given properties files in order, later files
// overriding earlier ones. Missing keys keep their defaults.
func LoadConfig(filenames ...string) (Config, error) {
	if len(filenames) == 0 {
		return DefaultConfig(), nil
	}
	p, err := properties.LoadFiles(filenames, properties.UTF8, false)
	if err != nil {
		return Config{}, err
	}
	return decodeConfig(p)
}

func ParseConfig(source string) (Config, error) {
	p, err := properties.LoadString(source)
	if err != nil {
		return Config{}, err
	}
	return decodeConfig(p)
}

func decodeConfig(p *properties.Properties) (Config, error) {
	var cfg Config
	if err := p.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	_, err := c.ScopingPolicy()
	if err != nil {
		return err
	}
	switch c.Dump {
	case "none", "yaml":
		return nil
	}
	return NewConfigError("dump", c.Dump)
}

func (c Config) ScopingPolicy() (ScopingPolicy, error) {
	return ParseScopingPolicy(c.Scoping)
}

// NewContext returns an empty Context using the configured scoping policy.
func (c Config) NewContext() *Context {
	policy, err := c.ScopingPolicy()
	if err != nil {
		policy = LexicalScoping
	}
	return &Context{Policy: policy}
}

// NewLogger logs debug traces of lowering and checking to w when tracing is
// enabled, and only warnings otherwise.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type ConfigError struct {
	Key   string
	Value string
}

func NewConfigError(key, value string) *ConfigError {
	return &ConfigError{Key: key, Value: value}
}

func (e *ConfigError) Error() string {
	return "invalid value for " + e.Key + ": " + e.Value
}
