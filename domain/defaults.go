package domain

// Vectorization defaults
const (
	// DefaultLanguage is the grammar used to parse snippets
	DefaultLanguage = "java"

	// DefaultEncodingDepth is the number of binary tree levels kept in a vector.
	// A depth of 15 yields vectors of 2^15 = 32768 values.
	DefaultEncodingDepth = 15

	// MaxEncodingDepth bounds the configurable depth; vectors double in size
	// with every level
	MaxEncodingDepth = 24

	// DefaultWrapSnippets retries unparsable Java fragments inside a synthetic class
	DefaultWrapSnippets = true
)

// Comparison defaults
const (
	// DefaultStrategy is the comparer strategy used when none is configured
	DefaultStrategy = "cossim"

	// DefaultMinkowskiP is the order of the Minkowski distance
	DefaultMinkowskiP = 1.5
)

// Ranking defaults
const (
	// DefaultSkipInvalid scores unparsable candidates 0 instead of failing the batch
	DefaultSkipInvalid = true

	// DefaultWorkers of 0 vectorizes with one worker per CPU
	DefaultWorkers = 0
)

// DefaultIncludePatterns select candidate files when a directory is given
var DefaultIncludePatterns = []string{"**/*.java", "**/*.py"}

// DefaultExcludePatterns skip build and VCS directories
var DefaultExcludePatterns = []string{"**/.git/**", "**/target/**", "**/build/**", "**/__pycache__/**"}

// Output defaults
const (
	DefaultOutputFormat = OutputFormatText
	DefaultLogLevel     = "warn"
)
