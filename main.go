package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/liquid-poll/auth"
	"github.com/danielhkuo/liquid-poll/cliparse"
	"github.com/danielhkuo/liquid-poll/handlers"
	"github.com/danielhkuo/liquid-poll/ledger"
	"github.com/danielhkuo/liquid-poll/middleware"
	"github.com/danielhkuo/liquid-poll/router"
	"github.com/danielhkuo/liquid-poll/tally"
)

func main() {
	var err error

	setupLogging()

	// Parse configuration
	if err := cliparse.LoadEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.IssueToken != "" {
		addr, err := auth.CanonicalAddress(cfg.IssueToken)
		if err != nil {
			slog.Error("cannot issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(auth.GenerateVoterToken(addr, cfg.TokenSalt))
		return
	}

	// Open the ledger
	backend, err := ledger.Open(cfg.StoreType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("ledger open failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Ledger ready", "store", cfg.StoreType)

	engine := tally.NewEngine(backend, cfg.MaxHops)
	if err := initPoll(engine, cfg, handlers.UnixClock()); err != nil {
		slog.Error("poll initialization failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(handlers.NewHost(engine, handlers.UnixClock), cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogging logs text to a terminal and JSON everywhere else
func setupLogging() {
	var h slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		h = slog.NewTextHandler(os.Stdout, nil)
	} else {
		h = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

// initPoll creates the poll on first start. Later starts keep the stored
// poll and ignore the poll settings in cfg.
func initPoll(engine *tally.Engine, cfg cliparse.Config, now uint64) error {
	ok, err := engine.Initialized()
	if err != nil {
		return err
	}
	if !ok {
		if cfg.PollText == "" {
			return errors.New("poll text required on first start (use -poll or POLL_TEXT env)")
		}
		if err := engine.Init(cfg.PollText, cfg.Duration, cfg.EarlyResults, now); err != nil {
			return err
		}
	}

	win, err := engine.Window()
	if err != nil {
		return err
	}
	end := time.Unix(int64(min(win.EndTimestamp, uint64(1<<62))), 0)
	slog.Info("Poll ready",
		"resumed", ok,
		"ends", humanize.Time(end),
		"completed", win.IsCompleted,
		"early_results", win.EarlyResultsAllowed,
	)
	return nil
}
