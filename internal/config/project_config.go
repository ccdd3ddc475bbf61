package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InitProjectConfigScaffold writes a default .lineedit.json in the
// current working directory if one does not already exist, so a host
// program's `init` subcommand has something to point users at.
func InitProjectConfigScaffold() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current working directory: %w", err)
	}

	path := filepath.Join(cwd, ".lineedit.json")

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("project config path is a directory: %s", path)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat project config: %w", err)
	}

	cfg := Default()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	return writeFileAtomic(path, data)
}

// WriteBinding appends (or replaces, for a sequence already present)
// one key binding in the project config at projectDir/.lineedit.json,
// creating the file from Default if it does not exist yet.
func WriteBinding(projectDir string, entry BindingEntry) error {
	sequence := strings.ToLower(strings.TrimSpace(entry.Sequence))
	command := strings.TrimSpace(entry.Command)
	if sequence == "" || command == "" {
		return errors.New("sequence and command must both be non-empty")
	}

	path := filepath.Join(strings.TrimSpace(projectDir), ".lineedit.json")

	cfg := Default()
	if data, err := os.ReadFile(path); err == nil {
		cleaned := stripJSONComments(data)
		var existing Config
		if err := json.Unmarshal(cleaned, &existing); err == nil {
			cfg = existing
		}
	}

	replaced := false
	for i, b := range cfg.Bindings {
		if strings.ToLower(strings.TrimSpace(b.Sequence)) == sequence {
			cfg.Bindings[i] = BindingEntry{Sequence: sequence, Command: command}
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Bindings = append(cfg.Bindings, BindingEntry{Sequence: sequence, Command: command})
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// truncated config file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".lineedit-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write config %q: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config %q: %w", path, err)
	}
	return nil
}
