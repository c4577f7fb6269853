package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/parser"
	"github.com/ludo-technologies/patchsim/internal/tree"
	"github.com/ludo-technologies/patchsim/internal/vector"
)

// resourceCache holds label tables and projections shared read-only by all
// vectorizers of a service
type resourceCache struct {
	mu          sync.Mutex
	tables      map[string]*vector.LabelCodeTable
	projections map[string]*vector.Projection
}

func newResourceCache() *resourceCache {
	return &resourceCache{
		tables:      make(map[string]*vector.LabelCodeTable),
		projections: make(map[string]*vector.Projection),
	}
}

// table returns the label table of a language, or the one read from labelsFile when set
func (c *resourceCache) table(language parser.Language, labelsFile string) (*vector.LabelCodeTable, error) {
	key := string(language) + "\x00" + labelsFile

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[key]; ok {
		return t, nil
	}

	var t *vector.LabelCodeTable
	if labelsFile != "" {
		loaded, err := vector.LoadLabelCodeTable(labelsFile)
		if err != nil {
			return nil, domain.NewConfigError("failed to load labels file", err)
		}
		t = loaded
	} else {
		labels, err := parser.Labels(language)
		if err != nil {
			return nil, domain.NewConfigError("failed to enumerate grammar labels", err)
		}
		t = vector.NewLabelCodeTable(labels)
	}

	log.Debug().Str("language", string(language)).Str("labels_file", labelsFile).
		Int("labels", t.Len()).Msg("Label code table built")
	c.tables[key] = t
	return t, nil
}

func (c *resourceCache) projection(path string) (*vector.Projection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.projections[path]; ok {
		return p, nil
	}
	p, err := vector.LoadProjection(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load projection file", err)
	}
	c.projections[path] = p
	return p, nil
}

// vectorizer turns snippets into binary trees and aligned regions into vectors
type vectorizer struct {
	language   parser.Language
	wrap       bool
	encoder    *vector.Encoder
	projection *vector.Projection
}

func (c *resourceCache) vectorizer(opts domain.SimilarityOptions) (*vectorizer, error) {
	language, err := parser.ParseLanguage(opts.Language)
	if err != nil {
		return nil, domain.NewInvalidInputError("unsupported language", err)
	}

	depth := opts.Depth
	if depth == 0 {
		depth = vector.DefaultDepth
	}

	table, err := c.table(language, opts.LabelsFile)
	if err != nil {
		return nil, err
	}
	encoder, err := vector.NewEncoder(table, depth)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid encoding depth", err)
	}

	v := &vectorizer{language: language, wrap: opts.WrapSnippets, encoder: encoder}
	if opts.ProjectionFile != "" {
		p, err := c.projection(opts.ProjectionFile)
		if err != nil {
			return nil, err
		}
		if p.InDim() != encoder.Size() {
			return nil, domain.NewConfigError(fmt.Sprintf(
				"projection expects %d values but depth %d encodes %d", p.InDim(), depth, encoder.Size()), nil)
		}
		v.projection = p
	}
	return v, nil
}

// parse parses a snippet and binarizes its tree. A parser is created per
// call because tree-sitter parsers cannot be shared between goroutines.
func (v *vectorizer) parse(ctx context.Context, snippet domain.Snippet) (*tree.BinaryNode, error) {
	p, err := parser.New(v.language, parser.WithSnippetWrapping(v.wrap))
	if err != nil {
		return nil, domain.NewInvalidInputError("unsupported language", err)
	}
	root, err := p.ParseTree(ctx, snippet.Source)
	if err != nil {
		return nil, domain.NewParseError(snippet.Name, err)
	}
	return tree.Binarize(root), nil
}

// encode linearizes a region and applies the projection when configured
func (v *vectorizer) encode(region *tree.BinaryNode) ([]float64, error) {
	values := v.encoder.Encode(region).Floats()
	if v.projection == nil {
		return values, nil
	}
	projected, err := v.projection.Project(values)
	if err != nil {
		return nil, domain.NewSimilarityError("failed to project vector", err)
	}
	return projected, nil
}

// pair aligns two trees and encodes the node pair where they diverge
func (v *vectorizer) pair(original, patched *tree.BinaryNode) (*domain.VectorizedPair, error) {
	aligned := tree.AlignTrees(original, patched)

	a, err := v.encode(aligned.Before)
	if err != nil {
		return nil, err
	}
	b, err := v.encode(aligned.After)
	if err != nil {
		return nil, err
	}

	region := domain.AlignedRegion{
		OriginalLabel: aligned.Before.Label,
		PatchedLabel:  aligned.After.Label,
		Identical:     aligned.Identical,
	}
	log.Debug().Str("original", region.OriginalLabel).Str("patched", region.PatchedLabel).
		Bool("identical", region.Identical).Int("length", len(a)).Msg("Aligned divergent region")

	return &domain.VectorizedPair{Original: a, Patched: b, Region: region}, nil
}
