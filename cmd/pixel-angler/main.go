package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixel-angler/config"
	"github.com/lixenwraith/pixel-angler/core"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/pixel-angler.log and show counters")
	configFlag = flag.String("config", "", "Path to a YAML config file")
	envFlag    = flag.String("env", ".env", "Path to a dotenv file with GEMINI_API_KEY")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashCleanup(screen.Fini)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, appOptions{
		Config: cfg,
		Screen: screen,
		Logger: slog.Default(),
		Debug:  *debugFlag,
		Muted:  *muteFlag,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	runErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		if err := a.start(); err != nil {
			return err
		}
		return a.loop.Run(ctx)
	}()

	a.close()
	core.SetCrashCleanup(nil)
	screen.Fini()

	if runErr != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "pixel-angler: %v\n", runErr)
		os.Exit(1)
	}
}
