// Package settings is the read-only key/value store windows consult for
// their styles and other per-class options. Values are grouped in
// scopes; a window looks a name up in each scope of its class ancestry
// and finally in "default".
package settings

import (
	"maps"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
)

// DefaultScope is consulted after every class scope.
const DefaultScope = "default"

type table map[string]map[string]string

// Defaults are the built-in values every Store starts from.
var Defaults = map[string]map[string]string{
	DefaultScope: {
		"window.style":          "white:blue",
		"border.style":          "white:blue",
		"border.focus.style":    "bright-white:blue:bold",
		"caption.style":         "white:blue",
		"caption.focus.style":   "black:cyan",
		"root.style":            "default:default",
		"windowbar.style":       "black:white",
		"windowbar.focus.style": "white:black:bold",
		"dialog.style":          "black:white",
		"editbox.style":         "black:cyan",
		"editbox.focus.style":   "black:bright-cyan",
		"label.style":           "black:white",
	},
}

// Store holds the current settings. Reads are lock-free; Reload swaps
// the whole table.
type Store struct {
	path    string
	current atomic.Pointer[table]

	clock clock.Clock
	quiet time.Duration
}

// New returns a store holding Defaults overlaid with values.
func New(values map[string]map[string]string) *Store {
	s := &Store{clock: clock.Real(), quiet: DefaultQuietPeriod}
	s.current.Store(merge(Defaults, values))
	return s
}

// Load reads a YAML settings file. A missing file yields the defaults;
// Reload and Watch keep using path.
func Load(path string) (*Store, error) {
	s := New(nil)
	s.path = path
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string { return s.path }

// Reload re-reads the settings file. On error the previous table stays
// in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.current.Store(merge(Defaults, nil))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "reading settings").WithContext("path", s.path)
	}
	var values map[string]map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing settings").WithContext("path", s.path)
	}
	s.current.Store(merge(Defaults, values))
	return nil
}

// Lookup returns the value of name in scope.
func (s *Store) Lookup(scope, name string) (string, bool) {
	t := *s.current.Load()
	v, ok := t[scope][name]
	return v, ok
}

// Resolve looks name up in each scope in order, then in DefaultScope.
func (s *Store) Resolve(scopes []string, name string) (string, bool) {
	t := *s.current.Load()
	for _, scope := range scopes {
		if v, ok := t[scope][name]; ok {
			return v, true
		}
	}
	v, ok := t[DefaultScope][name]
	return v, ok
}

// Style resolves name and parses it with the style grammar. Missing or
// malformed values report false.
func (s *Store) Style(scopes []string, name string) (backend.Style, bool) {
	v, ok := s.Resolve(scopes, name)
	if !ok {
		return backend.DefaultStyle(), false
	}
	style, err := backend.ParseStyle(v)
	if err != nil {
		return backend.DefaultStyle(), false
	}
	return style, true
}

func merge(base, over map[string]map[string]string) *table {
	out := make(table, len(base)+len(over))
	for scope, vals := range base {
		out[scope] = maps.Clone(vals)
	}
	for scope, vals := range over {
		if out[scope] == nil {
			out[scope] = make(map[string]string, len(vals))
		}
		maps.Copy(out[scope], vals)
	}
	return &out
}
