package clipboard_test

import (
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/bugspotter/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	// Not parallel: the system clipboard is shared state.

	cb := clipboard.NewSystem()
	if !cb.Supported() {
		err := cb.Copy("ignored")
		require.ErrorIs(t, err, clipboard.ErrUnsupported)
		t.Skip("no clipboard utility available, skipping clipboard test")
	}

	testContent := "test clipboard content from bugspotter"

	if err := cb.Copy(testContent); err != nil {
		t.Skipf("clipboard not usable in this environment: %v", err)
	}

	out, err := atotto.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, out)
}
