// Package config loads spaceshot's INI configuration: a compiled-in
// defaults.ini, then the first config.ini found on the XDG search path,
// merged on top (spec.md §6). gopkg.in/ini.v1 does the section/key
// parsing; value validation (range checks, enum/color parsing) is
// hand-rolled per spec.md §7's "warn and retain prior value" rule, since
// ini.v1's own typed getters return Go zero values on failure rather than
// preserving whatever default.ini already set.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/log"
)

//go:embed defaults.ini
var defaultsINI []byte

// Config is spaceshot's fully resolved, typed configuration.
type Config struct {
	Compression        int
	NotifyEnabled      bool
	CopyToClipboard    bool
	PickerOnly         bool
	BorderWidth        float64
	BorderColor        image.RGBA
	BorderSmart        bool
	CapturePreferences []string
}

// defaultConfig mirrors defaults.ini's baked-in values; it is what Load
// falls back to for any key a malformed user file leaves unparsed.
func defaultConfig() Config {
	return Config{
		Compression:        4,
		NotifyEnabled:      true,
		CopyToClipboard:    false,
		PickerOnly:         false,
		BorderWidth:        2,
		BorderColor:        image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff},
		BorderSmart:        true,
		CapturePreferences: []string{"ext-image-copy-capture", "wlr-screencopy"},
	}
}

// SearchPaths returns the ordered list of config.ini locations spec.md §6
// names: /etc/xdg/spaceshot/config.ini, each $XDG_CONFIG_DIRS entry, then
// $XDG_CONFIG_HOME (or $HOME/.config).
func SearchPaths() []string {
	var dirs []string
	dirs = append(dirs, "/etc/xdg")
	if v := os.Getenv("XDG_CONFIG_DIRS"); v != "" {
		dirs = append(dirs, strings.Split(v, ":")...)
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}

	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, "spaceshot", "config.ini"))
	}
	return paths
}

// Load reads the compiled-in defaults, then the first config.ini found on
// SearchPaths (or explicitPath, if set, instead of searching). A missing
// user config file is not an error: defaults.ini alone is a valid
// configuration.
func Load(explicitPath string) (*Config, error) {
	cfg := defaultConfig()

	defaultsFile, err := ini.Load(defaultsINI)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in defaults.ini: %w", err)
	}
	apply(&cfg, defaultsFile)

	path := explicitPath
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return &cfg, nil
	}

	userFile, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, path)
	if err != nil {
		if explicitPath != "" {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
		log.Warning("couldn't parse config file %q: %v", path, err)
		return &cfg, nil
	}
	apply(&cfg, userFile)
	return &cfg, nil
}

func apply(cfg *Config, file *ini.File) {
	general := file.Section("general")
	if key, ok := intKey(general, "compression"); ok {
		if key < 0 || key > 9 {
			log.Warning("config: 'general.compression' must be between 0 and 9, keeping %d", cfg.Compression)
		} else {
			cfg.Compression = key
		}
	}
	if v, ok := boolKey(general, "notify"); ok {
		cfg.NotifyEnabled = v
	}
	if v, ok := boolKey(general, "copy-to-clipboard"); ok {
		cfg.CopyToClipboard = v
	}
	if v, ok := boolKey(general, "picker-only"); ok {
		cfg.PickerOnly = v
	}

	border := file.Section("border")
	if v, ok := floatKey(border, "width"); ok {
		if v < 0 {
			log.Warning("config: 'border.width' must not be negative, keeping %g", cfg.BorderWidth)
		} else {
			cfg.BorderWidth = v
		}
	}
	if border.HasKey("color") {
		raw := strings.TrimSpace(border.Key("color").String())
		if strings.EqualFold(raw, "smart") {
			cfg.BorderSmart = true
		} else if c, err := parseColor(raw); err != nil {
			log.Warning("config: 'border.color' invalid (%v), keeping previous value", err)
		} else {
			cfg.BorderSmart = false
			cfg.BorderColor = c
		}
	}

	capture := file.Section("capture")
	if capture.HasKey("backends") {
		raw := capture.Key("backends").String()
		var prefs []string
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				prefs = append(prefs, p)
			}
		}
		if len(prefs) > 0 {
			cfg.CapturePreferences = prefs
		}
	}
}

func intKey(s *ini.Section, name string) (int, bool) {
	if !s.HasKey(name) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s.Key(name).String()))
	if err != nil {
		log.Warning("config: '%s.%s' is not an integer, keeping previous value", s.Name(), name)
		return 0, false
	}
	return v, true
}

func floatKey(s *ini.Section, name string) (float64, bool) {
	if !s.HasKey(name) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.Key(name).String()), 64)
	if err != nil {
		log.Warning("config: '%s.%s' is not a number, keeping previous value", s.Name(), name)
		return 0, false
	}
	return v, true
}

func boolKey(s *ini.Section, name string) (bool, bool) {
	if !s.HasKey(name) {
		return false, false
	}
	v, err := s.Key(name).Bool()
	if err != nil {
		log.Warning("config: '%s.%s' is not a boolean, keeping previous value", s.Name(), name)
		return false, false
	}
	return v, true
}

// parseColor accepts "#rrggbb" or "#rrggbbaa" hex.
func parseColor(s string) (image.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return image.RGBA{}, fmt.Errorf("expected #rrggbb or #rrggbbaa, got %q", s)
	}
	component := func(hex string) (uint16, error) {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, err
		}
		return uint16(v) * 0x101, nil
	}
	r, err := component(s[0:2])
	if err != nil {
		return image.RGBA{}, err
	}
	g, err := component(s[2:4])
	if err != nil {
		return image.RGBA{}, err
	}
	b, err := component(s[4:6])
	if err != nil {
		return image.RGBA{}, err
	}
	a := uint16(0xffff)
	if len(s) == 8 {
		a, err = component(s[6:8])
		if err != nil {
			return image.RGBA{}, err
		}
	}
	return image.RGBA{R: r, G: g, B: b, A: a}, nil
}
