package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/bugspotter"
	bshttp "github.com/fwojciec/bugspotter/http"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrReviewFailed is returned when at least one input could not be reviewed.
var ErrReviewFailed = errors.New("review failed")

// DefaultWorkers bounds concurrent reviews in a batch.
const DefaultWorkers = 4

// App holds the injected dependencies of the non-interactive commands.
type App struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Registry *bugspotter.Registry
	Reviewer bugspotter.Reviewer
	Detector bugspotter.LanguageDetector
	Logger   zerolog.Logger

	// Timeout bounds each review; zero disables it.
	Timeout time.Duration
	// Unreachable is the failure message for transport errors.
	Unreachable string
	// Workers bounds concurrent reviews; values below one use DefaultWorkers.
	Workers int
}

// reviewOutcome is the result of reviewing one input.
type reviewOutcome struct {
	name  string
	state bugspotter.ReviewState
}

// Review reviews each path, or stdin when paths is empty or "-".
// Results are written to Stdout in input order. languageID overrides
// detection for every input when set.
func (a *App) Review(ctx context.Context, paths []string, languageID string) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	outcomes := make([]reviewOutcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())
	for i, path := range paths {
		g.Go(func() error {
			code, err := a.readInput(path)
			if err != nil {
				return err
			}
			lang := a.ResolveLanguage(path, languageID)
			session := bugspotter.NewSession(a.Registry, a.Reviewer,
				bugspotter.WithTimeout(a.Timeout),
				bugspotter.WithUnreachableMessage(a.Unreachable),
				bugspotter.WithLogger(a.Logger.With().Str("input", path).Logger()),
				bugspotter.WithLanguage(lang.ID),
				bugspotter.WithCode(code),
			)
			outcomes[i] = reviewOutcome{name: path, state: session.Review(gctx)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i, o := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				fmt.Fprintln(a.Stdout)
			}
			fmt.Fprintf(a.Stdout, "## %s\n\n", o.name)
		}
		switch {
		case o.state.Succeeded():
			fmt.Fprintln(a.Stdout, strings.TrimRight(o.state.Result, "\n"))
		default:
			failed = true
			fmt.Fprintf(a.Stderr, "%s: %s\n", o.name, o.state.Message)
		}
	}
	if failed {
		return ErrReviewFailed
	}
	return nil
}

func (a *App) readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ResolveLanguage picks the language for an input. An explicit id wins,
// then the file extension, then the detector, then the registry default.
func (a *App) ResolveLanguage(path, explicit string) bugspotter.Language {
	if explicit != "" {
		return a.Registry.Resolve(explicit)
	}
	if path == "" || path == "-" {
		return a.Registry.Default()
	}
	if lang, ok := a.Registry.ByExtension(filepath.Ext(path)); ok {
		return lang
	}
	if a.Detector != nil {
		if name := a.Detector.DetectFromPath(path); name != "" {
			if lang, err := a.Registry.Lookup(strings.ToLower(name)); err == nil {
				return lang
			}
		}
	}
	return a.Registry.Default()
}

// Languages prints the registry as a table.
func (a *App) Languages() error {
	w := tabwriter.NewWriter(a.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEXT\tSNIPPET")
	def := a.Registry.Default().ID
	for _, l := range a.Registry.Languages() {
		id := l.ID
		if id == def {
			id += "*"
		}
		snippet := "no"
		if l.HasSnippet() {
			snippet = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t.%s\t%s\n", id, l.Label, l.Extension, snippet)
	}
	return w.Flush()
}

// Serve runs the review backend on addr until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	server := bshttp.NewServer(addr, a.Reviewer, bshttp.WithServerLogger(a.Logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	return g.Wait()
}

func (a *App) workers() int {
	if a.Workers < 1 {
		return DefaultWorkers
	}
	return a.Workers
}
