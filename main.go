// Teletext shows broadcast teletext pages in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"teletext/config"
	"teletext/fetcher"
	"teletext/logs"
	"teletext/render"
	"teletext/teletext"
	"teletext/viewer"
)

type flags struct {
	channel      string
	printMode    bool
	plain        bool
	noClear      bool
	strictColors bool
	browser      bool
	logLevel     string
	configPath   string
	initConfig   bool
}

func main() {
	var f flags
	fs := pflag.NewFlagSet("teletext", pflag.ExitOnError)
	fs.StringVarP(&f.channel, "channel", "c", "", "Channel to show (default from config)")
	fs.BoolVarP(&f.printMode, "print", "p", false, "Print one page to stdout and exit")
	fs.BoolVar(&f.plain, "plain", false, "Do not emit colors")
	fs.BoolVar(&f.noClear, "no-clear", false, "Do not clear the screen between pages")
	fs.BoolVar(&f.strictColors, "strict-colors", false, "Fail on malformed color classes")
	fs.BoolVar(&f.browser, "browser", false, "Fetch pages with headless Chrome")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.configPath, "config", "", "Config file (default ~/.config/teletext/config.toml)")
	fs.BoolVar(&f.initConfig, "init-config", false, "Print the default config and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Teletext - Terminal Teletext Viewer

Usage: teletext [flags] [page]

At the prompt enter a page number (100-899), + or - for the next or
previous page, an empty line to reload, l to list linked pages,
ch <name> to switch channel, q to quit.

Flags:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if f.initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(f, fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags, page string) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return errors.New(config.FormatError(err))
	}
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if page == "" {
		page = cfg.Display.StartPage
	}
	if err := viewer.ValidatePage(page); err != nil {
		return err
	}

	level, err := logs.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closeLog, err := logs.New(logs.Options{Level: level, Writer: os.Stderr, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	fetcher.Configure(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		ChromePath:     cfg.Fetcher.ChromePath,
		UseBrowser:     cfg.Fetcher.UseBrowser,
	})

	stdoutTTY := render.IsTerminal(os.Stdout)
	columns := 0
	if stdoutTTY {
		if w, _, err := render.TerminalSize(os.Stdout); err == nil {
			columns = w
		}
	}

	channels := make(map[string]bool, len(cfg.Channels))
	for name := range cfg.Channels {
		channels[name] = true
	}

	colors := render.NewColorWriter(cfg.Display.Plain || !stdoutTTY)
	interactive := !f.printMode && term.IsTerminal(int(os.Stdin.Fd()))
	v := viewer.New(cfg.Display.Channel, viewer.Options{
		Fetch:    fetchPage(cfg.Channels, render.IsTerminal(os.Stderr)),
		Parser:   teletext.NewParser(teletext.ParseOptions{StrictColors: cfg.Parser.StrictColors}),
		Colors:   colors,
		Out:      os.Stdout,
		Status:   os.Stderr,
		Clear:    interactive && stdoutTTY && cfg.Display.ClearScreen,
		Columns:  columns,
		Channels: channels,
	})

	ctx := context.Background()
	if f.printMode {
		p, _, err := v.Load(ctx, page)
		if err != nil {
			return err
		}
		return render.Page(os.Stdout, p, colors)
	}
	return v.Run(ctx, page, os.Stdin, interactive)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func applyFlags(cfg *config.Config, f flags) {
	if f.channel != "" {
		cfg.Display.Channel = f.channel
	}
	if f.plain {
		cfg.Display.Plain = true
	}
	if f.noClear {
		cfg.Display.ClearScreen = false
	}
	if f.strictColors {
		cfg.Parser.StrictColors = true
	}
	if f.browser {
		cfg.Fetcher.UseBrowser = true
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
}

// fetchPage resolves a channel's URL template and downloads the page.
// Ctrl-C cancels the download in flight; at the prompt it still quits.
func fetchPage(channels map[string]string, spinner bool) viewer.FetchFunc {
	return func(ctx context.Context, channel, page string) (string, error) {
		tmpl, ok := channels[channel]
		if !ok {
			return "", fmt.Errorf("unknown channel %q", channel)
		}
		url, err := fetcher.PageURL(tmpl, page)
		if err != nil {
			return "", err
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		if spinner {
			stopSpin := render.Spin(os.Stderr, fmt.Sprintf("%s %s", channel, page))
			defer stopSpin()
		}

		result, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}
}
