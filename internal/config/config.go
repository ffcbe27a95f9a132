// Package config handles MinSh's application configuration: the default
// shell, scrollback/idle tuning, and chorded keybindings.
package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds MinSh's configuration, loaded from minsh.yaml next to the
// executable.
type Config struct {
	// DefaultShell is the cooked-mode interpreter a command line falls
	// back to when it isn't a builtin and doesn't resolve to a ./cmds/
	// script or a PATH executable on its own.
	DefaultShell string `yaml:"default_shell"`

	// ScrollbackCap overrides the per-pane scrollback ceiling, capped at
	// 2000 lines.
	ScrollbackCap int `yaml:"scrollback_cap"`

	// IdleSleepMillis is the coordinator's CPU-guard sleep between
	// ticks; defaults to 10ms.
	IdleSleepMillis int `yaml:"idle_sleep_millis"`

	// Debug, when true, also appends non-fatal caught errors to
	// debug.log, not just crashes recovered from a panic.
	Debug bool `yaml:"debug"`

	// Keys holds the chorded (non-single-control-character) keybinding
	// overrides: detach, retach, switch, add pane.
	Keys KeyBindings `yaml:"keys"`

	// Prompt holds the ANSI color codes used in the prompt template.
	Prompt PromptColors `yaml:"prompt"`
}

// KeyBindings holds the handful of chorded command keybindings that
// aren't bare control characters.
type KeyBindings struct {
	Detach  string `yaml:"detach"`
	Retach  string `yaml:"retach"`
	Switch  string `yaml:"switch"`
	AddPane string `yaml:"add_pane"`

	// Copy is the clipboard-copy chord. Ctrl+Shift+C is not reliably
	// distinguishable from Ctrl+C by a terminal, so the practical
	// default is an Alt chord instead.
	Copy string `yaml:"copy"`
}

// PromptColors holds the SGR color codes used by the prompt template.
type PromptColors struct {
	IDColor     string `yaml:"id_color"`
	FolderColor string `yaml:"folder_color"`
}

// Default returns the built-in configuration used when no minsh.yaml is
// present, or a field is left unset in one that is.
func Default() *Config {
	return &Config{
		DefaultShell:    defaultShell(),
		ScrollbackCap:   2000,
		IdleSleepMillis: 10,
		Debug:           false,
		Keys: KeyBindings{
			Detach:  "ctrl+d",
			Retach:  "ctrl+r",
			Switch:  "tab",
			AddPane: "ctrl+n",
			Copy:    "alt+c",
		},
		Prompt: PromptColors{
			IDColor:     "36", // cyan
			FolderColor: "32", // green
		},
	}
}

// defaultShell picks a cooked-mode line shell appropriate to the host.
func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	if path, err := exec.LookPath("bash"); err == nil {
		return path
	}
	return "/bin/sh"
}

// FilePath resolves minsh.yaml next to the running executable.
func FilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "minsh.yaml"), nil
}

// Load reads minsh.yaml, merging any set fields over Default(). A
// missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := FilePath()
	if err != nil {
		return cfg, nil // can't resolve executable path; defaults only
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}
	merge(cfg, &fileCfg)

	if cfg.ScrollbackCap <= 0 || cfg.ScrollbackCap > 2000 {
		cfg.ScrollbackCap = 2000
	}
	return cfg, nil
}

// merge overlays non-zero fields of src onto dst.
func merge(dst, src *Config) {
	if src.DefaultShell != "" {
		dst.DefaultShell = src.DefaultShell
	}
	if src.ScrollbackCap != 0 {
		dst.ScrollbackCap = src.ScrollbackCap
	}
	if src.IdleSleepMillis != 0 {
		dst.IdleSleepMillis = src.IdleSleepMillis
	}
	dst.Debug = dst.Debug || src.Debug
	if src.Keys.Detach != "" {
		dst.Keys.Detach = src.Keys.Detach
	}
	if src.Keys.Retach != "" {
		dst.Keys.Retach = src.Keys.Retach
	}
	if src.Keys.Switch != "" {
		dst.Keys.Switch = src.Keys.Switch
	}
	if src.Keys.AddPane != "" {
		dst.Keys.AddPane = src.Keys.AddPane
	}
	if src.Keys.Copy != "" {
		dst.Keys.Copy = src.Keys.Copy
	}
	if src.Prompt.IDColor != "" {
		dst.Prompt.IDColor = src.Prompt.IDColor
	}
	if src.Prompt.FolderColor != "" {
		dst.Prompt.FolderColor = src.Prompt.FolderColor
	}
}
