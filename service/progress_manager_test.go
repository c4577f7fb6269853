package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	pm := &ProgressManagerImpl{}
	var buf bytes.Buffer
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())

	pm.Initialize(3)
	pm.Start()
	pm.Update(1, 3)
	pm.Complete(true)
	pm.Close()

	assert.Empty(t, buf.String(), "non-terminal writers get no progress bar")
}

func TestProgressManager_InteractiveRendering(t *testing.T) {
	var buf bytes.Buffer
	pm := &ProgressManagerImpl{writer: &buf, interactive: true}

	pm.Initialize(4)
	pm.Start()

	var wg sync.WaitGroup
	for i := 1; i <= 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pm.Update(n, 4)
		}(i)
	}
	wg.Wait()
	pm.Complete(true)

	assert.Contains(t, buf.String(), rankingDescription)
	assert.Contains(t, buf.String(), "4/4")
}
