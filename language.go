package bugspotter

import (
	"fmt"
	"strings"
)

// Language describes a language the workspace can review.
type Language struct {
	ID        string // Registry key, e.g. "python"
	Label     string // Display label, e.g. "Python"
	Extension string // File extension without the dot, e.g. "py"
	Snippet   string // Starter code loaded when the language is selected, may be empty
}

// HasSnippet reports whether the language defines a starter snippet.
func (l Language) HasSnippet() bool {
	return l.Snippet != ""
}

// Registry is an ordered, immutable catalog of languages.
// The first entry is the default language.
type Registry struct {
	languages []Language
	index     map[string]int
}

// NewRegistry creates a registry from the given languages.
// Order is preserved. Duplicate ids and an empty list are rejected.
func NewRegistry(languages ...Language) (*Registry, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("registry: at least one language is required")
	}
	r := &Registry{
		languages: make([]Language, len(languages)),
		index:     make(map[string]int, len(languages)),
	}
	for i, l := range languages {
		if l.ID == "" {
			return nil, fmt.Errorf("registry: language at position %d has no id", i)
		}
		if _, dup := r.index[l.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate language id %q", l.ID)
		}
		r.languages[i] = l
		r.index[l.ID] = i
	}
	return r, nil
}

// Languages returns a copy of the registered languages in order.
func (r *Registry) Languages() []Language {
	out := make([]Language, len(r.languages))
	copy(out, r.languages)
	return out
}

// Default returns the first registered language.
func (r *Registry) Default() Language {
	return r.languages[0]
}

// Lookup returns the language with the given id.
func (r *Registry) Lookup(id string) (Language, error) {
	i, ok := r.index[id]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, id)
	}
	return r.languages[i], nil
}

// Resolve returns the language with the given id, or the default language
// if the id is unknown.
func (r *Registry) Resolve(id string) Language {
	l, err := r.Lookup(id)
	if err != nil {
		return r.Default()
	}
	return l
}

// ByExtension returns the language registered for a file extension.
// The extension may include a leading dot and is matched case-insensitively.
func (r *Registry) ByExtension(ext string) (Language, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return Language{}, false
	}
	for _, l := range r.languages {
		if l.Extension == ext {
			return l, true
		}
	}
	return Language{}, false
}

// Next returns the language after id, wrapping around.
// Unknown ids start from the default.
func (r *Registry) Next(id string) Language {
	i, ok := r.index[id]
	if !ok {
		return r.Default()
	}
	return r.languages[(i+1)%len(r.languages)]
}

// Prev returns the language before id, wrapping around.
// Unknown ids start from the default.
func (r *Registry) Prev(id string) Language {
	i, ok := r.index[id]
	if !ok {
		return r.Default()
	}
	n := len(r.languages)
	return r.languages[(i-1+n)%n]
}

// Starter snippets for the built-in languages.
const (
	snippetJavaScript = "function sum(a, b) { return a + b; }\nconsole.log(sum(2, 3));"
	snippetTypeScript = "function sum(a: number, b: number): number { return a + b; }\nconsole.log(sum(2, 3));"
	snippetPython     = "def sum(a, b):\n    return a + b\n\nprint(sum(2, 3))"
	snippetJava       = "class Main {\n  static int sum(int a, int b){ return a + b; }\n  public static void main(String[] args){ System.out.println(sum(2,3)); }\n}"
	snippetC          = "#include <stdio.h>\nint sum(int a,int b){return a+b;}\nint main(){printf(\"%d\", sum(2,3));}"
	snippetCPP        = "#include <iostream>\nint sum(int a,int b){return a+b;}\nint main(){std::cout<<sum(2,3);}"
	snippetGo         = "package main\nimport \"fmt\"\nfunc sum(a,b int) int {return a+b}\nfunc main(){fmt.Println(sum(2,3))}"
	snippetRust       = "fn sum(a:i32,b:i32)->i32{a+b}\nfn main(){println!(\"{}\", sum(2,3));}"
)

// BuiltinLanguages returns the default language catalog.
func BuiltinLanguages() []Language {
	return []Language{
		{ID: "javascript", Label: "JavaScript", Extension: "js", Snippet: snippetJavaScript},
		{ID: "typescript", Label: "TypeScript", Extension: "ts", Snippet: snippetTypeScript},
		{ID: "python", Label: "Python", Extension: "py", Snippet: snippetPython},
		{ID: "java", Label: "Java", Extension: "java", Snippet: snippetJava},
		{ID: "c", Label: "C", Extension: "c", Snippet: snippetC},
		{ID: "cpp", Label: "C++", Extension: "cpp", Snippet: snippetCPP},
		{ID: "csharp", Label: "C#", Extension: "cs"},
		{ID: "php", Label: "PHP", Extension: "php"},
		{ID: "ruby", Label: "Ruby", Extension: "rb"},
		{ID: "go", Label: "Go", Extension: "go", Snippet: snippetGo},
		{ID: "rust", Label: "Rust", Extension: "rs", Snippet: snippetRust},
		{ID: "kotlin", Label: "Kotlin", Extension: "kt"},
		{ID: "swift", Label: "Swift", Extension: "swift"},
		{ID: "r", Label: "R", Extension: "r"},
		{ID: "scala", Label: "Scala", Extension: "scala"},
		{ID: "perl", Label: "Perl", Extension: "pl"},
		{ID: "haskell", Label: "Haskell", Extension: "hs"},
		{ID: "dart", Label: "Dart", Extension: "dart"},
		{ID: "elixir", Label: "Elixir", Extension: "ex"},
		{ID: "clojure", Label: "Clojure", Extension: "clj"},
	}
}

// DefaultRegistry returns a registry of the built-in languages.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinLanguages()...)
	if err != nil {
		// The built-in catalog is static; a failure here is a programming error.
		panic(err)
	}
	return r
}
