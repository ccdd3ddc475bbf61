// Package config loads the host-visible configuration for a lineedit
// program: the history ring's size and backing file, and the key
// binding table. Layering follows the familiar global-then-project
// precedence, with a final environment-variable override, and accepts
// JSON-with-comments so a binding table can be annotated.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HistoryConfig controls the recall ring.
type HistoryConfig struct {
	MaxLines int    `json:"max_lines"`
	File     string `json:"file"`
}

// BindingEntry is one row of the key binding table as it appears on
// disk: Sequence is hex-encoded bytes (e.g. "1b5b41" for the up
// arrow's CSI sequence) and Command is a CommandID name such as
// "previous-history".
type BindingEntry struct {
	Sequence string `json:"sequence"`
	Command  string `json:"command"`
}

// Config is the fully resolved, host-facing configuration.
type Config struct {
	History  HistoryConfig  `json:"history"`
	Bindings []BindingEntry `json:"bindings"`
}

type fileHistoryConfig struct {
	MaxLines *int    `json:"max_lines"`
	File     *string `json:"file"`
}

type fileConfig struct {
	History  *fileHistoryConfig `json:"history"`
	Bindings *[]BindingEntry    `json:"bindings"`
}

// Default returns the configuration used when no config file and no
// environment override is present: a 500-line history kept only in
// memory, and no bindings override (the editor's own DefaultBindings
// applies).
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxLines: DefaultHistoryMaxLines,
			File:     "",
		},
	}
}

// Load resolves Config by starting from Default, merging the global
// config file, then the project config file (LINEEDIT_CONFIG_PATH if
// set, otherwise path if non-empty, otherwise whatever
// findProjectConfigPath locates), then applying environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("LINEEDIT_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".lineedit", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		".lineedit.json",
		".lineedit/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fc fileConfig
	if err := json.Unmarshal(cleaned, &fc); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fc)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.History != nil {
		if fc.History.MaxLines != nil {
			cfg.History.MaxLines = *fc.History.MaxLines
		}
		if fc.History.File != nil {
			cfg.History.File = *fc.History.File
		}
	}
	if fc.Bindings != nil {
		cfg.Bindings = append([]BindingEntry(nil), (*fc.Bindings)...)
	}
}

func normalize(cfg *Config) error {
	if cfg.History.MaxLines < 0 {
		cfg.History.MaxLines = 0
	}
	if f := strings.TrimSpace(cfg.History.File); f != "" {
		expanded, err := expandPath(f)
		if err != nil {
			return fmt.Errorf("expand history file %q: %w", f, err)
		}
		cfg.History.File = expanded
	} else {
		cfg.History.File = ""
	}
	for i := range cfg.Bindings {
		cfg.Bindings[i].Sequence = strings.ToLower(strings.TrimSpace(cfg.Bindings[i].Sequence))
		cfg.Bindings[i].Command = strings.TrimSpace(cfg.Bindings[i].Command)
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("LINEEDIT_HISTORY_FILE")); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return Config{}, fmt.Errorf("expand LINEEDIT_HISTORY_FILE: %w", err)
		}
		cfg.History.File = expanded
	}
	if v := strings.TrimSpace(os.Getenv("LINEEDIT_HISTORY_MAX_LINES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid LINEEDIT_HISTORY_MAX_LINES: %q", v)
		}
		cfg.History.MaxLines = n
	}
	return cfg, nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

// stripJSONComments removes // line comments and /* */ block comments
// outside of JSON string literals, so a binding table can carry
// explanatory comments despite encoding/json rejecting them.
func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	var out bytes.Buffer

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}

// DecodeBindings turns the on-disk hex-sequence/command-name rows into
// resolved sequence/CommandID pairs, via the supplied lookup function
// (the root package's ParseCommandID) so this package never needs to
// import it back. Unknown command names or malformed hex are reported
// with the offending entry's index.
func DecodeBindings(entries []BindingEntry, lookup func(name string) (int, bool)) ([]ResolvedBinding, error) {
	out := make([]ResolvedBinding, 0, len(entries))
	for i, e := range entries {
		seq, err := decodeHex(e.Sequence)
		if err != nil {
			return nil, fmt.Errorf("binding %d: sequence %q: %w", i, e.Sequence, err)
		}
		if len(seq) == 0 {
			return nil, fmt.Errorf("binding %d: empty sequence", i)
		}
		cmd, ok := lookup(e.Command)
		if !ok {
			return nil, fmt.Errorf("binding %d: unknown command %q", i, e.Command)
		}
		out = append(out, ResolvedBinding{Sequence: seq, Command: cmd})
	}
	return out, nil
}

// ResolvedBinding is a decoded BindingEntry. Command is an opaque int
// so this package stays independent of the root package's CommandID
// type; callers convert it back with a type conversion.
type ResolvedBinding struct {
	Sequence []byte
	Command  int
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}
