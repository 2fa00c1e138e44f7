package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/feed"
	"github.com/fwojciec/feedscrape/fs"
	"github.com/fwojciec/feedscrape/rod"
	"github.com/fwojciec/feedscrape/scrape"
	fsslog "github.com/fwojciec/feedscrape/slog"
	"github.com/fwojciec/feedscrape/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loginURL is where the login command sends the user.
const loginURL = "https://www.linkedin.com/login"

// rateLimit is the number of feed loads per second allowed per host.
const rateLimit = 0.2

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by the login command. Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PostService feedscrape.PostService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feedscrape"),
		kong.Description("Extract recent posts from social feed pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feedscrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Only commands that read or write history touch the database.
	needsDB := cmd == "history" || (cmd == "scrape" && (!cli.Scrape.NoHistory || cli.Scrape.NewOnly))
	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FEEDSCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.PostService = fsslog.NewLoggingPostService(sqlite.NewPostService(m.DB), logger)
		deps.Posts = m.PostService
	}

	var browserOpts []rod.ManagerOption
	if cli.Browser != "" {
		browserOpts = append(browserOpts, rod.WithBrowserBin(cli.Browser))
	}

	switch cmd {
	case "scrape":
		extractor := &feed.Extractor{}
		if cli.Scrape.Debug {
			extractor.Dumper = fs.NewDebugWriter(fs.DefaultDebugFile)
		}
		deps.Extractor = fsslog.NewLoggingExtractor(extractor, logger)

		manager, err := rod.NewBrowserManager(append(browserOpts, rod.WithHeadless(!cli.Scrape.Headed))...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		loader := rod.NewLoggingLoader(rod.NewLoader(manager, fs.NewCookieStore(cli.Scrape.Cookies)), logger)
		defer loader.Close()

		deps.Scraper = &scrape.Scraper{
			Loader:      loader,
			Extractor:   deps.Extractor,
			RateLimiter: scrape.NewDomainLimiter(rateLimit),
		}

	case "parse <file>":
		deps.Extractor = fsslog.NewLoggingExtractor(&feed.Extractor{}, logger)

	case "login":
		deps.Cookies = fs.NewCookieStore(cli.Login.Cookies)
		deps.Capture = func(ctx context.Context) ([]*feedscrape.Cookie, error) {
			manager, err := rod.NewBrowserManager(append(browserOpts, rod.WithHeadless(false))...)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			defer manager.Close()
			return rod.CaptureCookies(ctx, manager, loginURL, waitForEnter(deps.Stdin, stdout))
		}
	}

	return kongCtx.Run(deps)
}

// waitForEnter returns a wait function that prompts the user and blocks
// until a line is read from in or ctx is done.
func waitForEnter(in io.Reader, out io.Writer) func(context.Context) error {
	return func(ctx context.Context) error {
		fmt.Fprintln(out, "Log in using the browser window.")
		fmt.Fprintln(out, "Once you see your feed, come back here and press Enter...")

		done := make(chan error, 1)
		go func() {
			_, err := bufio.NewReader(in).ReadString('\n')
			if err == io.EOF {
				err = nil
			}
			done <- err
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			return err
		}
	}
}

func defaultDBPath() string {
	if path := os.Getenv("FEEDSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "feedscrape.db"
	}
	dir := filepath.Join(home, ".feedscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "feedscrape.db")
}
