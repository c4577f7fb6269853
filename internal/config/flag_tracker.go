package config

import (
	"sort"
	"sync"

	"github.com/spf13/pflag"
)

// FlagTracker records which command-line flags the user gave explicitly, so
// that flag values override the configuration file only in that case. It is
// safe for concurrent use.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{flags: make(map[string]bool)}
}

// NewFlagTrackerWithFlags creates a tracker from a copy of flags
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	ft := NewFlagTracker()
	for name, set := range flags {
		if set {
			ft.flags[name] = true
		}
	}
	return ft
}

// NewFlagTrackerFromFlagSet records every flag of fs that was changed on the command line
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			ft.flags[f.Name] = true
		})
	}
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	ft.flags[flagName] = true
	ft.mu.Unlock()
}

// WasSet reports whether a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// Names returns the explicitly set flags in sorted order
func (ft *FlagTracker) Names() []string {
	ft.mu.RLock()
	names := make([]string, 0, len(ft.flags))
	for name := range ft.flags {
		names = append(names, name)
	}
	ft.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Override stores value in *dst when flagName was explicitly set
func Override[T any](ft *FlagTracker, flagName string, dst *T, value T) {
	if ft.WasSet(flagName) {
		*dst = value
	}
}

// OverrideSlice is Override for slices; an empty value never replaces *dst,
// as pflag cannot express an explicitly empty list.
func OverrideSlice[T any](ft *FlagTracker, flagName string, dst *[]T, value []T) {
	if len(value) > 0 && ft.WasSet(flagName) {
		*dst = append([]T(nil), value...)
	}
}
