// Command wndkit runs a small demo of the window toolkit: a form
// dialog with edit boxes and a clock window, driven by the same
// configuration, settings and key bindings an application would use.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/odvcencio/wndkit/pkg/config"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/logging"
	"github.com/odvcencio/wndkit/pkg/settings"
	"github.com/odvcencio/wndkit/pkg/ui/backend/tcell"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

var ulidEntropy = ulid.Monotonic(rand.Reader, 0)

type options struct {
	configPath   string
	settingsPath string
	logLevel     string
	metricsAddr  string
	tracing      bool
	noMouse      bool
	windowBar    bool
	windowBarSet bool
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeForError(err))
	}
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("wndkit", pflag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "load configuration from this file instead of the default locations")
	fs.StringVar(&opts.settingsPath, "settings", "", "settings (styles) file, overriding settings.path")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&opts.tracing, "trace", false, "export dispatch spans to the trace file")
	fs.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse reporting")
	fs.BoolVar(&opts.windowBar, "window-bar", true, "reserve the last row for the window list")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	opts.windowBarSet = fs.Changed("window-bar")
	return opts, nil
}

// apply folds command-line overrides into cfg.
func (o *options) apply(cfg *config.Config) {
	if o.settingsPath != "" {
		cfg.Settings.Path = o.settingsPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = o.metricsAddr
	}
	if o.tracing {
		cfg.Tracing.Enabled = true
	}
	if o.noMouse {
		cfg.UI.Mouse = false
	}
	if o.windowBarSet {
		cfg.UI.WindowBar = o.windowBar
	}
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts *options) error {
	if !isInteractiveTerminal() {
		return errors.New(errors.ErrCodeInvalidInput, "wndkit needs an interactive terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	runID := ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "parsing log level")
	}
	log, err := logging.Open(cfg.LogPath(), "wndkit", level)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "opening log file")
	}
	defer log.Close()
	log = log.WithRun(runID)

	keymap, err := wnd.KeymapFromConfig(cfg.Keys.Bindings())
	if err != nil {
		return err
	}
	store, err := settings.Load(cfg.SettingsPath())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Addr, reg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	tracer, shutdownTracing, err := setupTracing(cfg, runID)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	be, err := tcell.New()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "creating terminal backend")
	}
	if !cfg.UI.Mouse {
		be.DisableMouse()
	}
	if err := be.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "initializing terminal")
	}
	defer be.Fini()

	c, err := wnd.NewContext(wnd.Config{
		Backend:       be,
		Settings:      store,
		Logger:        log,
		Metrics:       wnd.NewMetrics(reg),
		Tracer:        tracer,
		Keymap:        &keymap,
		QueueCapacity: cfg.UI.QueueCapacity,
		MaxWindows:    cfg.UI.MaxWindows,
		DoubleClick:   cfg.UI.DoubleClick(),
		WindowBar:     cfg.UI.WindowBar,
	})
	if err != nil {
		return err
	}

	if cfg.Settings.Watch {
		c.AddProducer(watchSettings(store, log))
	}
	if err := buildDemo(c, runID); err != nil {
		return err
	}

	log.Info("wndkit started", "settings", store.Path(), "window_bar", cfg.UI.WindowBar)
	err = c.Run(ctx)
	log.Info("wndkit stopped", "error", err)
	return err
}

// watchSettings reloads the styles file and repaints on every change.
func watchSettings(store *settings.Store, log *logging.Logger) wnd.Producer {
	return func(ctx context.Context, c *wnd.Context) error {
		return store.Watch(ctx, log, func() {
			_ = c.Post(c.Root().ID(), wnd.KindRedraw, nil)
		})
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, log *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return srv
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func exitCodeForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeConfigLoad, errors.ErrCodeConfigParse, errors.ErrCodeConfigInvalid:
		return 2
	}
	return 1
}
