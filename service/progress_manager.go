package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/patchsim/domain"
)

const rankingDescription = "Ranking candidates"

// ProgressManagerImpl draws a progress bar for candidate ranking. Updates
// arrive from the vectorization workers, so every method locks.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
	total       int
}

// NewProgressManager creates a new progress manager writing to stderr
func NewProgressManager() domain.ProgressManager {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
	}
}

// IsInteractiveEnvironment reports whether stderr is a terminal and CI is unset
func IsInteractiveEnvironment() bool {
	return isTerminalWriter(os.Stderr)
}

func isTerminalWriter(w io.Writer) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Initialize records the number of candidates to rank
func (pm *ProgressManagerImpl) Initialize(maxValue int) {
	pm.mu.Lock()
	pm.total = maxValue
	pm.mu.Unlock()
}

// Start draws the empty bar
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.ensureBar(pm.total)
}

// Complete finishes the bar, or abandons it when ranking failed
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar == nil {
		return
	}
	if success {
		_ = pm.bar.Finish()
	} else {
		_ = pm.bar.Exit()
	}
	pm.bar = nil
}

// Update moves the bar to processed candidates out of total
func (pm *ProgressManagerImpl) Update(processed, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if bar := pm.ensureBar(total); bar != nil {
		_ = bar.Set(processed)
	}
}

// SetWriter redirects the bar; only terminals get one
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	pm.writer = writer
	pm.interactive = isTerminalWriter(writer)
	pm.mu.Unlock()
}

// IsInteractive reports whether a bar is drawn
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.interactive
}

// Close finishes a bar that was never completed
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar != nil {
		_ = pm.bar.Finish()
		pm.bar = nil
	}
}

// ensureBar creates the bar on first use. Callers hold pm.mu.
func (pm *ProgressManagerImpl) ensureBar(total int) *progressbar.ProgressBar {
	if pm.bar != nil || !pm.interactive {
		return pm.bar
	}

	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}
	pm.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(rankingDescription),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("candidates"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
	return pm.bar
}

// NoopProgressManager discards all progress updates
type NoopProgressManager struct{}

func (NoopProgressManager) Initialize(int)      {}
func (NoopProgressManager) Start()              {}
func (NoopProgressManager) Complete(bool)       {}
func (NoopProgressManager) Update(int, int)     {}
func (NoopProgressManager) SetWriter(io.Writer) {}
func (NoopProgressManager) IsInteractive() bool { return false }
func (NoopProgressManager) Close()              {}
