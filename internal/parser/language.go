package parser

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/python"
)

// Language identifies a supported source grammar
type Language string

const (
	Java   Language = "java"
	Python Language = "python"
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = Java

var grammars = map[Language]func() *sitter.Language{
	Java:   java.GetLanguage,
	Python: python.GetLanguage,
}

// ParseLanguage converts a case-insensitive language name
func ParseLanguage(name string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	if lang == "" {
		return DefaultLanguage, nil
	}
	if _, ok := grammars[lang]; !ok {
		return "", fmt.Errorf("unsupported language %q (supported: %s)", name, strings.Join(SupportedLanguages(), ", "))
	}
	return lang, nil
}

// SupportedLanguages returns the names of all supported languages, sorted
func SupportedLanguages() []string {
	names := make([]string, 0, len(grammars))
	for lang := range grammars {
		names = append(names, string(lang))
	}
	sort.Strings(names)
	return names
}

func (l Language) grammar() (*sitter.Language, error) {
	get, ok := grammars[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", string(l))
	}
	return get(), nil
}

// Labels returns the ordered enumeration of node labels the grammar can
// produce: the names of its visible named symbols, in symbol order, without
// duplicates. The order is fixed by the grammar version, so vectors encoded
// with one grammar version stay comparable.
func Labels(language Language) ([]string, error) {
	grammar, err := language.grammar()
	if err != nil {
		return nil, err
	}

	count := grammar.SymbolCount()
	seen := make(map[string]bool, count)
	labels := make([]string, 0, count)
	// symbol 0 is the end-of-input marker
	for i := uint32(1); i < count; i++ {
		sym := sitter.Symbol(i)
		if grammar.SymbolType(sym) != sitter.SymbolTypeRegular {
			continue
		}
		name := grammar.SymbolName(sym)
		if name == "" || strings.HasPrefix(name, "_") || seen[name] {
			continue
		}
		seen[name] = true
		labels = append(labels, name)
	}
	return labels, nil
}
