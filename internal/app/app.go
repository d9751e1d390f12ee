// Package app assembles the TUI: storage, catalog, model provider and
// the screen stack.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/llm"
	"github.com/cleanfocus/cleanfocus/internal/narrative"
	"github.com/cleanfocus/cleanfocus/internal/questiongen"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/screens/home"
	"github.com/cleanfocus/cleanfocus/internal/screens/quiz"
	"github.com/cleanfocus/cleanfocus/internal/screens/results"
	"github.com/cleanfocus/cleanfocus/internal/store"
	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// narrativeTimeout bounds the wait for the qualitative analysis; past
// it the fallback text ships instead.
const narrativeTimeout = 20 * time.Second

// Options configures the application.
type Options struct {
	// DBPath overrides the default SQLite location. Empty means the
	// XDG default; "off" disables persistence entirely.
	DBPath string

	// CatalogPath loads questions from a local JSON file.
	CatalogPath string

	// CatalogURL loads questions over HTTP.
	CatalogURL string

	// Generated sources questions from the model instead of a
	// catalog document.
	Generated bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(initial *home.HomeScreen) AppModel {
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hinter.KeyHints(), footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run wires the application together and starts the Bubble Tea
// program.
func Run(opts Options) error {
	ctx := context.Background()

	db, err := openStore(opts)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var prefs *store.PrefsRepo
	if db != nil {
		prefs = db.Prefs()
		if dark, err := prefs.DarkTheme(ctx); err == nil {
			theme.Use(dark)
		}
	}

	provider := resolveProvider(ctx, db)

	source, err := buildSource(opts, provider)
	if err != nil {
		return err
	}

	var generator assessment.NarrativeGenerator
	if provider != nil {
		generator = narrative.NewGenerator(provider)
	}
	assembler := assessment.NewAssembler(generator, narrativeTimeout)

	ctrl := assessment.NewController()

	var attempts *store.AttemptRepo
	if db != nil {
		attempts = db.Attempts()
	}

	// The two factories close over each other so the quiz and results
	// screens can swap back and forth without an import cycle.
	quizDeps := quiz.Deps{Source: source, Assembler: assembler, Attempts: attempts}
	resultsDeps := results.Deps{Source: source}
	quizDeps.NewResults = func() screen.Screen { return results.New(ctrl, resultsDeps) }
	resultsDeps.NewQuiz = func() screen.Screen { return quiz.New(ctrl, quizDeps) }

	p := tea.NewProgram(newAppModel(home.New(ctrl, source, quizDeps, prefs)))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

func openStore(opts Options) (*store.Store, error) {
	if opts.DBPath == "off" {
		return nil, nil
	}
	path := opts.DBPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	db, err := store.Open(path)
	if err != nil {
		// The app is fully usable without persistence.
		fmt.Fprintf(os.Stderr, "warning: database unavailable, history disabled: %v\n", err)
		return nil, nil
	}
	return db, nil
}

// resolveProvider builds the model provider when credentials exist.
// Returning nil is fine: narratives fall back and generated questions
// are refused up front.
func resolveProvider(ctx context.Context, db *store.Store) llm.Provider {
	var logger llm.EventLogger
	if db != nil {
		logger = db.Events()
	}
	provider, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: no LLM provider configured, using fallback narratives: %v\n", err)
		return nil
	}
	return provider
}

func buildSource(opts Options, provider llm.Provider) (*catalog.Source, error) {
	var fetcher catalog.Fetcher
	switch {
	case opts.Generated:
		if provider == nil {
			return nil, fmt.Errorf("--generated requires a configured LLM provider")
		}
		fetcher = questiongen.NewFetcher(questiongen.NewGenerator(provider))
	case opts.CatalogPath != "":
		fetcher = &catalog.FileFetcher{Path: opts.CatalogPath}
	case opts.CatalogURL != "":
		fetcher = &catalog.HTTPFetcher{URL: opts.CatalogURL}
	default:
		fetcher = catalog.EmbeddedFetcher{}
	}
	return catalog.NewSource(catalog.NewCache(fetcher)), nil
}
