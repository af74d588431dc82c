// Command bugspotter is an interactive AI code-review workspace for the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/bugspotter"
	"github.com/fwojciec/bugspotter/bubbletea"
	"github.com/fwojciec/bugspotter/chroma"
	"github.com/fwojciec/bugspotter/clipboard"
	"github.com/fwojciec/bugspotter/config"
	"github.com/fwojciec/bugspotter/gemini"
	"github.com/fwojciec/bugspotter/glamour"
	bshttp "github.com/fwojciec/bugspotter/http"
	"github.com/fwojciec/bugspotter/lipgloss"
	"github.com/fwojciec/bugspotter/logging"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

var version = "dev"

// Flags holds values bound by the root command.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Reviewer   string
	Endpoint   string
	Model      string
	APIKey     string
	Language   string
	Theme      string
	Timeout    time.Duration
	NoWrap     bool
}

// env is the state shared by commands after the root Before hook.
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *bugspotter.Registry
	closer   func()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewCommand(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewCommand builds the command tree.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	flags := &Flags{}
	rt := &env{closer: func() {}}

	return &cli.Command{
		Name:      "bugspotter",
		Usage:     "Review code with an AI assistant",
		UsageText: "bugspotter [global options] [file]\nbugspotter [global options] command [command options]",
		Description: `BugSpotter is a two-pane terminal workspace: paste or type code on the left,
submit it, and read the AI review on the right.

Run 'bugspotter' to open the workspace, optionally with a file to load.
Run 'bugspotter serve' to start the review backend.`,
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Reader:    stdin,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BUGSPOTTER_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("BUGSPOTTER_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs are discarded when unset)",
				Sources:     cli.EnvVars("BUGSPOTTER_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "reviewer",
				Usage:       "review backend (http, gemini)",
				Sources:     cli.EnvVars("BUGSPOTTER_REVIEWER"),
				Destination: &flags.Reviewer,
			},
			&cli.StringFlag{
				Name:        "endpoint",
				Usage:       "review service base URL",
				Sources:     cli.EnvVars("BUGSPOTTER_ENDPOINT"),
				Destination: &flags.Endpoint,
			},
			&cli.StringFlag{
				Name:        "model",
				Usage:       "Gemini model",
				Sources:     cli.EnvVars("BUGSPOTTER_MODEL"),
				Destination: &flags.Model,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Usage:       "Gemini API key",
				Sources:     cli.EnvVars("GEMINI_API_KEY", "GOOGLE_API_KEY"),
				Destination: &flags.APIKey,
			},
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "initial language id",
				Destination: &flags.Language,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (dark, light)",
				Sources:     cli.EnvVars("BUGSPOTTER_THEME"),
				Destination: &flags.Theme,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "per-review timeout (0 disables)",
				Destination: &flags.Timeout,
			},
			&cli.BoolFlag{
				Name:        "no-wrap",
				Usage:       "truncate long lines in the code view",
				Destination: &flags.NoWrap,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(c, flags)
			if err != nil {
				return ctx, err
			}
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logging: %w", err)
			}
			rt.cfg = cfg
			rt.logger = logger
			rt.closer = closer
			rt.registry = bugspotter.DefaultRegistry()
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			rt.closer()
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 1 {
				return fmt.Errorf("expected at most one file, got %d", c.Args().Len())
			}
			return runWorkspace(ctx, rt, flags, c.Args().First())
		},
		Commands: []*cli.Command{
			newReviewCommand(rt, flags, stdin, stdout, stderr),
			newServeCommand(rt, flags, stdout),
			newLanguagesCommand(rt, stdout),
		},
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(c *cli.Command, flags *Flags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.IsSet("reviewer") {
		cfg.Reviewer = flags.Reviewer
	}
	if c.IsSet("endpoint") {
		cfg.Endpoint = flags.Endpoint
	}
	if c.IsSet("model") {
		cfg.Model = flags.Model
	}
	if c.IsSet("language") {
		cfg.Language = flags.Language
	}
	if c.IsSet("theme") {
		cfg.Theme = flags.Theme
	}
	if c.IsSet("timeout") {
		cfg.Timeout = flags.Timeout
	}
	if c.IsSet("no-wrap") {
		cfg.Wrap = !flags.NoWrap
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newReviewer builds the configured backend and its transport failure message.
func newReviewer(ctx context.Context, cfg *config.Config, apiKey, backend string) (bugspotter.Reviewer, string, error) {
	switch backend {
	case config.ReviewerGemini:
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			return nil, "", err
		}
		return gemini.NewReviewer(client, cfg.Model), "", nil
	default:
		return bshttp.NewClient(cfg.Endpoint), bshttp.UnreachableMessage(cfg.Endpoint), nil
	}
}

func runWorkspace(ctx context.Context, rt *env, flags *Flags, path string) error {
	reviewer, unreachable, err := newReviewer(ctx, rt.cfg, flags.APIKey, rt.cfg.Reviewer)
	if err != nil {
		return err
	}

	opts := []bugspotter.SessionOption{
		bugspotter.WithTimeout(rt.cfg.Timeout),
		bugspotter.WithUnreachableMessage(unreachable),
		bugspotter.WithLogger(logging.Component(rt.logger, "session")),
		bugspotter.WithLanguage(rt.cfg.Language),
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !flags.languageSet() {
			app := &App{Registry: rt.registry, Detector: chroma.NewDetector()}
			opts = append(opts, bugspotter.WithLanguage(app.ResolveLanguage(path, "").ID))
		}
		opts = append(opts, bugspotter.WithCode(string(data)))
	}
	session := bugspotter.NewSession(rt.registry, reviewer, opts...)

	workspace := bubbletea.NewWorkspace(session,
		bubbletea.WithHighlighter(newHighlighter),
		bubbletea.WithMarkdownRenderer(glamour.NewRenderer()),
		bubbletea.WithClipboard(clipboard.NewSystem()),
		bubbletea.WithThemes(func(dark bool) bugspotter.Theme { return lipgloss.ThemeFor(dark) }),
		bubbletea.WithPrefs(bugspotter.DisplayPrefs{Dark: rt.cfg.Dark(), Wrap: rt.cfg.Wrap}),
		bubbletea.WithModelLogger(logging.Component(rt.logger, "workspace")),
	)
	return workspace.Run(ctx)
}

// newHighlighter builds a chroma highlighter for the palette. The style
// function is never nil, so construction cannot fail.
func newHighlighter(p bugspotter.Palette) bugspotter.Highlighter {
	h, _ := chroma.NewHighlighter(chroma.StyleFromPalette(p))
	return h
}

func newReviewCommand(rt *env, flags *Flags, stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	var (
		language string
		workers  int
	)
	return &cli.Command{
		Name:      "review",
		Usage:     "Review files or stdin and print the suggestions as markdown",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "lang",
				Usage:       "language id for every input (detected from the file name by default)",
				Destination: &language,
			},
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "maximum concurrent reviews",
				Value:       DefaultWorkers,
				Destination: &workers,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			reviewer, unreachable, err := newReviewer(ctx, rt.cfg, flags.APIKey, rt.cfg.Reviewer)
			if err != nil {
				return err
			}
			app := &App{
				Stdin:       stdin,
				Stdout:      stdout,
				Stderr:      stderr,
				Registry:    rt.registry,
				Reviewer:    reviewer,
				Detector:    chroma.NewDetector(),
				Logger:      logging.Component(rt.logger, "review"),
				Timeout:     rt.cfg.Timeout,
				Unreachable: unreachable,
				Workers:     workers,
			}
			return app.Review(ctx, c.Args().Slice(), language)
		},
	}
}

func newServeCommand(rt *env, flags *Flags, stdout io.Writer) *cli.Command {
	var listen string
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the review backend backed by Gemini",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Usage:       "address to listen on",
				Sources:     cli.EnvVars("BUGSPOTTER_LISTEN"),
				Destination: &listen,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.IsSet("listen") {
				rt.cfg.Listen = listen
			}
			reviewer, _, err := newReviewer(ctx, rt.cfg, flags.APIKey, config.ReviewerGemini)
			if errors.Is(err, gemini.ErrMissingAPIKey) {
				return fmt.Errorf("%w: set GEMINI_API_KEY or pass --api-key", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Listening on %s\n", rt.cfg.Listen)
			logger := rt.logger
			if flags.LogFile == "" {
				logger = logging.NewWithWriter(rt.logger.GetLevel(), stdout)
			}
			app := &App{
				Reviewer: reviewer,
				Logger:   logging.Component(logger, "server"),
			}
			return app.Serve(ctx, rt.cfg.Listen)
		},
	}
}

func newLanguagesCommand(rt *env, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List supported languages (* marks the default)",
		Action: func(ctx context.Context, c *cli.Command) error {
			app := &App{Stdout: stdout, Registry: rt.registry}
			return app.Languages()
		},
	}
}

func (f *Flags) languageSet() bool {
	return f.Language != ""
}
