package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/danmaku/audio"
	"github.com/lixenwraith/danmaku/command"
	"github.com/lixenwraith/danmaku/config"
	"github.com/lixenwraith/danmaku/constants"
	"github.com/lixenwraith/danmaku/engine"
	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/render/screen"
	"github.com/lixenwraith/danmaku/source"
	"github.com/lixenwraith/danmaku/status"
)

var (
	configFlag   = flag.String("config", config.DefaultPath(), "Settings file (TOML); empty disables persistence")
	envFlag      = flag.String("env", ".env", "Environment file loaded before DANMAKU_* overrides")
	wsFlag       = flag.String("ws", "", "WebSocket chat feed URL")
	replayFlag   = flag.String("replay", "", "Text file replayed as chat, one message per line")
	intervalFlag = flag.Duration("interval", 300*time.Millisecond, "Delay between replayed lines")
	debugFlag    = flag.Bool("debug", false, "Write diagnostics to logs/danmaku.log")
)

func main() {
	flag.Parse()

	logFile := logging.Setup(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}
	log := logging.Logger()

	cfg := loadConfig(*configFlag, *envFlag)
	store := config.NewStore(cfg)

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			s.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDANMAKU CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer s.Fini()

	renderer := screen.New(s)
	registry := status.NewRegistry()
	scheduler := engine.NewScheduler(renderer, engine.NewMonotonicTimeProvider(), registry)

	player := audio.NewCuePlayer()
	if err := player.Initialize(); err != nil {
		// Non-fatal, the overlay runs without sound
		log.Warn("audio unavailable", "err", err)
	}
	player.SetEnabled(cfg.Sound)
	defer player.Cleanup()
	scheduler.SetObserver(engine.Observers{player})

	a := &app{
		renderer:  renderer,
		store:     store,
		scheduler: scheduler,
		commands:  command.NewHandler(store, *configFlag),
		player:    player,
		registry:  registry,
		clock:     engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		now:       time.Now,
		chat:      newChatLog(constants.ChatLogRows * 4),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	arrivals := make(chan source.Arrival, 256)
	startSources(ctx, arrivals, registry)

	run(a, arrivals)

	for _, m := range registry.Snapshot() {
		log.Info("summary", "metric", m.Key, "value", m.Value)
	}
}

// loadConfig layers file, .env and environment over the defaults; failures are logged and skipped
func loadConfig(path, envPath string) config.Config {
	log := logging.Logger()

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			log.Warn("config file ignored", "path", path, "err", err)
		}
		cfg = loaded
	}
	if envPath != "" {
		if err := config.LoadEnvFile(envPath); err != nil {
			log.Warn("env file ignored", "path", envPath, "err", err)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		log.Warn("environment override ignored", "err", err)
	}
	return cfg
}

func startSources(ctx context.Context, out chan<- source.Arrival, registry *status.Registry) {
	log := logging.Logger()

	if *wsFlag != "" {
		ws := source.NewWebSocket(*wsFlag, registry)
		go func() {
			if err := ws.Run(ctx, out); err != nil && ctx.Err() == nil {
				log.Error("websocket source stopped", "err", err)
			}
		}()
	}

	if *replayFlag != "" {
		f, err := os.Open(*replayFlag)
		if err != nil {
			log.Error("replay file unavailable", "path", *replayFlag, "err", err)
			return
		}
		go func() {
			defer f.Close()
			if err := source.NewLines(f, *intervalFlag).Run(ctx, out); err != nil && ctx.Err() == nil {
				log.Error("replay stopped", "err", err)
			}
		}()
	}
}

// run is the single-threaded frame loop: terminal events, arrivals and ticks share one select
func run(a *app, arrivals <-chan source.Arrival) {
	s := a.renderer.Screen()
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}

		case arr := <-arrivals:
			a.deliver(arr)

		case <-ticker.C:
			a.frame()
		}
	}
}
