package comparer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultStrategy is used when a requested strategy name cannot be resolved
const DefaultStrategy = "cossim"

// DefaultMinkowskiP is the order of the Minkowski distance when none is configured
const DefaultMinkowskiP = 1.5

// ErrUnknownStrategy is returned by Lookup for names missing from the registry
var ErrUnknownStrategy = errors.New("unknown comparer strategy")

// Options tune the strategies that take parameters
type Options struct {
	// MinkowskiP is the order of the Minkowski distance; values <= 0 select DefaultMinkowskiP
	MinkowskiP float64

	// CanberraPropagateNaN makes a dimension where both components are zero
	// turn the Canberra distance into NaN instead of contributing 0
	CanberraPropagateNaN bool
}

func (o Options) minkowskiP() float64 {
	if o.MinkowskiP <= 0 {
		return DefaultMinkowskiP
	}
	return o.MinkowskiP
}

// Factory builds a strategy for the given options
type Factory func(opts Options) Strategy

// Info describes a registered strategy
type Info struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description" yaml:"description"`
	MinScore    float64  `json:"min_score" yaml:"min_score"`
	MaxScore    float64  `json:"max_score" yaml:"max_score"`
	Batched     bool     `json:"batched" yaml:"batched"`
}

type registration struct {
	info    Info
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
	aliases    = make(map[string]string)
)

// Register adds a strategy under info.Name and its aliases. It panics when a
// name or alias is already taken.
func Register(info Info, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := normalizeName(info.Name)
	if name == "" || factory == nil {
		panic("comparer: Register requires a name and a factory")
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("comparer: strategy %q registered twice", name))
	}
	info.Name = name
	registry[name] = registration{info: info, factory: factory}

	for _, alias := range info.Aliases {
		key := normalizeName(alias)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("comparer: alias %q shadows a strategy", key))
		}
		if _, exists := aliases[key]; exists {
			panic(fmt.Sprintf("comparer: alias %q registered twice", key))
		}
		aliases[key] = name
	}
}

// normalizeName lowercases a name, drops separators and strips a trailing
// "comparer" qualifier, so "CosSimComparer", "cossim" and "Cos-Sim" match.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	if trimmed := strings.TrimSuffix(name, "comparer"); trimmed != "" {
		name = trimmed
	}
	return name
}

// Resolve returns the canonical strategy name for name, or false when the
// name is unknown
func Resolve(name string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return resolveLocked(normalizeName(name))
}

func resolveLocked(key string) (string, bool) {
	if _, ok := registry[key]; ok {
		return key, true
	}
	if canonical, ok := aliases[key]; ok {
		return canonical, true
	}
	return "", false
}

// Lookup builds a comparer for name, failing for unknown names
func Lookup(name string, opts Options) (*Comparer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	canonical, ok := resolveLocked(normalizeName(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	reg := registry[canonical]
	return &Comparer{name: canonical, strategy: reg.factory(opts)}, nil
}

// New builds a comparer for name. Unknown names fall back to the cosine
// similarity strategy.
func New(name string, opts Options) *Comparer {
	c, err := Lookup(name, opts)
	if err == nil {
		return c
	}
	log.Warn().Str("strategy", name).Str("fallback", DefaultStrategy).
		Msg("Unknown comparer strategy, using fallback")
	c, err = Lookup(DefaultStrategy, opts)
	if err != nil {
		panic("comparer: default strategy is not registered")
	}
	return c
}

// Strategies lists every registered strategy sorted by name
func Strategies() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()

	infos := make([]Info, 0, len(registry))
	for _, reg := range registry {
		info := reg.info
		info.Aliases = append([]string(nil), info.Aliases...)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Names returns the canonical names of all registered strategies, sorted
func Names() []string {
	infos := Strategies()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}
