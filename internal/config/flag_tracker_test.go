package config

import (
	"sync"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagTracker_SetAndWasSet(t *testing.T) {
	ft := NewFlagTracker()

	assert.False(t, ft.WasSet("strategy"))
	ft.Set("strategy")
	ft.Set("depth")
	assert.True(t, ft.WasSet("strategy"))
	assert.Equal(t, []string{"depth", "strategy"}, ft.Names())
}

func TestFlagTracker_WithInitialFlags(t *testing.T) {
	initial := map[string]bool{"depth": true, "bulk": false}
	ft := NewFlagTrackerWithFlags(initial)

	initial["workers"] = true

	assert.True(t, ft.WasSet("depth"))
	assert.False(t, ft.WasSet("bulk"))
	assert.False(t, ft.WasSet("workers"))
	assert.Equal(t, []string{"depth"}, ft.Names())

	assert.Empty(t, NewFlagTrackerWithFlags(nil).Names())
}

func TestFlagTracker_FromFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("score", pflag.ContinueOnError)
	fs.String("strategy", "cossim", "")
	fs.Int("depth", 15, "")
	fs.Bool("bulk", false, "")

	require.NoError(t, fs.Parse([]string{"--strategy", "tsss", "--bulk"}))
	ft := NewFlagTrackerFromFlagSet(fs)

	assert.True(t, ft.WasSet("strategy"))
	assert.True(t, ft.WasSet("bulk"))
	assert.False(t, ft.WasSet("depth"))

	assert.False(t, NewFlagTrackerFromFlagSet(nil).WasSet("strategy"))
}

func TestOverride(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{
		"strategy": true, "depth": true, "bulk": true, "p": true, "include": true,
	})

	strategy, language := "cossim", "java"
	Override(ft, "strategy", &strategy, "tsss")
	Override(ft, "language", &language, "python")
	assert.Equal(t, "tsss", strategy)
	assert.Equal(t, "java", language)

	depth, workers := 15, 4
	Override(ft, "depth", &depth, 10)
	Override(ft, "workers", &workers, 8)
	assert.Equal(t, 10, depth)
	assert.Equal(t, 4, workers)

	bulk, showVectors := false, false
	Override(ft, "bulk", &bulk, true)
	Override(ft, "show-vectors", &showVectors, true)
	assert.True(t, bulk)
	assert.False(t, showVectors)

	p := 1.5
	Override(ft, "p", &p, 3.0)
	assert.Equal(t, 3.0, p)
}

func TestOverrideSlice(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{"include": true})

	include := []string{"*.py"}
	OverrideSlice(ft, "include", &include, nil)
	assert.Equal(t, []string{"*.py"}, include)

	override := []string{"*.java"}
	OverrideSlice(ft, "include", &include, override)
	assert.Equal(t, []string{"*.java"}, include)

	override[0] = "*.kt"
	assert.Equal(t, []string{"*.java"}, include, "override must be copied")

	exclude := []string{"**/build/**"}
	OverrideSlice(ft, "exclude", &exclude, []string{"**/target/**"})
	assert.Equal(t, []string{"**/build/**"}, exclude)
}

func TestFlagTracker_ConcurrentReadWrite(t *testing.T) {
	ft := NewFlagTracker()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ft.Set("flag")
		}()
		go func() {
			defer wg.Done()
			_ = ft.WasSet("flag")
			_ = ft.Names()
		}()
	}
	wg.Wait()

	assert.True(t, ft.WasSet("flag"))
}
