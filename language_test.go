package bugspotter_test

import (
	"testing"

	"github.com/fwojciec/bugspotter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("preserves order and uses first entry as default", func(t *testing.T) {
		t.Parallel()

		r, err := bugspotter.NewRegistry(
			bugspotter.Language{ID: "go", Label: "Go"},
			bugspotter.Language{ID: "python", Label: "Python"},
		)

		require.NoError(t, err)
		assert.Equal(t, "go", r.Default().ID)
		langs := r.Languages()
		require.Len(t, langs, 2)
		assert.Equal(t, "python", langs[1].ID)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		t.Parallel()

		_, err := bugspotter.NewRegistry()

		require.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		_, err := bugspotter.NewRegistry(
			bugspotter.Language{ID: "go"},
			bugspotter.Language{ID: "go"},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects languages without id", func(t *testing.T) {
		t.Parallel()

		_, err := bugspotter.NewRegistry(bugspotter.Language{Label: "Nameless"})

		require.Error(t, err)
	})

	t.Run("languages returns a copy", func(t *testing.T) {
		t.Parallel()

		r, err := bugspotter.NewRegistry(bugspotter.Language{ID: "go", Label: "Go"})
		require.NoError(t, err)

		langs := r.Languages()
		langs[0].Label = "changed"

		assert.Equal(t, "Go", r.Default().Label)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := bugspotter.DefaultRegistry()

	t.Run("finds registered language", func(t *testing.T) {
		t.Parallel()

		lang, err := r.Lookup("python")

		require.NoError(t, err)
		assert.Equal(t, "Python", lang.Label)
		assert.Equal(t, "py", lang.Extension)
	})

	t.Run("returns ErrLanguageNotFound for unknown id", func(t *testing.T) {
		t.Parallel()

		_, err := r.Lookup("not-a-real-language")

		require.ErrorIs(t, err, bugspotter.ErrLanguageNotFound)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		t.Parallel()

		_, err := r.Lookup("Python")

		require.ErrorIs(t, err, bugspotter.ErrLanguageNotFound)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	r := bugspotter.DefaultRegistry()

	assert.Equal(t, "rust", r.Resolve("rust").ID)
	assert.Equal(t, "javascript", r.Resolve("not-a-real-language").ID)
	assert.Equal(t, "javascript", r.Resolve("").ID)
}

func TestRegistry_ByExtension(t *testing.T) {
	t.Parallel()

	r := bugspotter.DefaultRegistry()

	cases := []struct {
		ext    string
		want   string
		wantOK bool
	}{
		{"go", "go", true},
		{".py", "python", true},
		{"RS", "rust", true},
		{"cs", "csharp", true},
		{"", "", false},
		{"unknownext", "", false},
	}

	for _, tc := range cases {
		lang, ok := r.ByExtension(tc.ext)
		assert.Equal(t, tc.wantOK, ok, "ext: %s", tc.ext)
		assert.Equal(t, tc.want, lang.ID, "ext: %s", tc.ext)
	}
}

func TestRegistry_Cycling(t *testing.T) {
	t.Parallel()

	r, err := bugspotter.NewRegistry(
		bugspotter.Language{ID: "a"},
		bugspotter.Language{ID: "b"},
		bugspotter.Language{ID: "c"},
	)
	require.NoError(t, err)

	t.Run("next wraps around", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "b", r.Next("a").ID)
		assert.Equal(t, "a", r.Next("c").ID)
	})

	t.Run("prev wraps around", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "c", r.Prev("a").ID)
		assert.Equal(t, "b", r.Prev("c").ID)
	})

	t.Run("unknown id starts at default", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a", r.Next("zzz").ID)
		assert.Equal(t, "a", r.Prev("zzz").ID)
	})
}

func TestBuiltinLanguages(t *testing.T) {
	t.Parallel()

	langs := bugspotter.BuiltinLanguages()

	require.Len(t, langs, 20)
	assert.Equal(t, "javascript", langs[0].ID)

	withSnippet := map[string]bool{}
	for _, l := range langs {
		assert.NotEmpty(t, l.Label, "id: %s", l.ID)
		assert.NotEmpty(t, l.Extension, "id: %s", l.ID)
		if l.HasSnippet() {
			withSnippet[l.ID] = true
		}
	}
	for _, id := range []string{"javascript", "typescript", "python", "java", "c", "cpp", "go", "rust"} {
		assert.True(t, withSnippet[id], "expected starter snippet for %s", id)
	}
	assert.False(t, withSnippet["haskell"], "haskell has no starter snippet")
}
