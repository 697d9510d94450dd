// Command snake is a terminal Snake game
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/audio"
	"github.com/lixenwraith/snake/config"
	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/core"
	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/input"
	"github.com/lixenwraith/snake/network"
	"github.com/lixenwraith/snake/render"
	"github.com/lixenwraith/snake/status"
	"github.com/lixenwraith/snake/store"
)

var (
	configFlag   = flag.String("config", "", "TOML settings file (default snake.toml if present)")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/snake.log")
	muteFlag     = flag.Bool("mute", false, "Disable background music")
	dbFlag       = flag.String("db", "", "SQLite database path")
	spectateFlag = flag.String("spectate", "", "Serve a read-only websocket feed on addr, e.g. 127.0.0.1:8080")
	seedFlag     = flag.Uint64("seed", 0, "Food placement seed (0 = random)")
	colorFlag    = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

const (
	summaryTimeout = 2 * time.Second
	summaryGames   = 5
	eventQueueSize = 256
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

// loadConfig layers file, environment and flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *dbFlag != "" {
		cfg.Store.Path = *dbFlag
	}
	if *spectateFlag != "" {
		cfg.Spectate.Addr = *spectateFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore falls back to an in-memory store so a locked or unwritable
// database never prevents play
func openStore(path string) store.Store {
	db, err := store.OpenSQLite(path)
	if err != nil {
		log.Printf("store: %v, high scores will not persist", err)
		return store.NewMemory()
	}
	return db
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keys, err := input.ApplyBindings(input.DefaultKeyTable(), cfg.Keys)
	if err != nil {
		return err
	}

	st := openStore(cfg.Store.Path)
	defer st.Close()

	reg := status.NewRegistry()
	music := audio.NewMusic(audio.Config{
		Enabled: cfg.Audio.Enabled,
		Volume:  cfg.Audio.Volume,
		Path:    cfg.Audio.Music,
	}, reg)
	if err := music.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer music.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	finiScreen := sync.OnceFunc(func() {
		core.RegisterTerminal(nil)
		screen.Fini()
	})
	defer finiScreen()
	core.RegisterTerminal(screen)

	// Panic Recovery: ensure terminal is reset even if the main goroutine crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	banner := render.NewBanner(nil, constants.BannerDuration)
	renderer := render.NewRenderer(screen, render.NewPalette(render.ParseColorMode(*colorFlag)), banner, music)

	observers := []engine.Observer{renderer}
	if cfg.Spectate.Addr != "" {
		hub, err := startSpectatorFeed(ctx, cfg.Spectate.Addr, reg)
		if err != nil {
			return err
		}
		observers = append(observers, hub)
	}

	game := engine.NewGame(ctx, cfg.Engine(), engine.Collaborators{
		Store:    st,
		Recorder: st,
		Audio:    music,
		Notifier: banner,
		Status:   reg,
	})
	loop := engine.NewLoop(game, reg, observers...)

	handler := input.NewHandler(keys, loop, music)
	handler.OnRedraw(renderer.Resize)

	// Game belongs to the loop goroutine once Run starts
	gameID := game.ID()

	loopErr := make(chan error, 1)
	core.Go(func() { loopErr <- loop.Run(ctx) })

	// Input polling interacts directly with the terminal
	events := make(chan tcell.Event, eventQueueSize)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	log.Printf("game %s started: %d tiles, seed %d", gameID, cfg.TileCount(), cfg.Seed)

mainLoop:
	for {
		select {
		case ev := <-events:
			if !handler.HandleEvent(ev) {
				break mainLoop
			}
		case err := <-loopErr:
			if !errors.Is(err, context.Canceled) {
				return fmt.Errorf("game loop: %w", err)
			}
			break mainLoop
		}
	}

	// Final state read before the loop stops
	snapCtx, snapCancel := context.WithTimeout(ctx, summaryTimeout)
	final, snapErr := loop.Snapshot(snapCtx)
	snapCancel()

	cancel()
	finiScreen()

	if snapErr == nil {
		fmt.Printf("Score: %d  Best: %d\n", final.Score, final.HighScore)
	}
	printTopGames(st)
	log.Printf("exit: %v", reg.Export())
	return nil
}

func startSpectatorFeed(ctx context.Context, addr string, reg *status.Registry) (*network.Hub, error) {
	cfg := network.DefaultConfig()
	cfg.Address = addr

	hub := network.NewHub(cfg, reg)
	srv := network.NewServer(hub, reg)
	ln, err := srv.Listen(cfg.Address)
	if err != nil {
		return nil, err
	}

	core.Go(func() { hub.Run(ctx) })
	core.Go(func() {
		if err := srv.Serve(ctx, ln); err != nil {
			log.Printf("network: %v", err)
		}
	})
	log.Printf("network: spectator feed on ws://%s/ws", ln.Addr())
	return hub, nil
}

func printTopGames(st store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
	defer cancel()

	games, err := st.TopGames(ctx, summaryGames)
	if err != nil {
		log.Printf("store: top games: %v", err)
		return
	}
	if len(games) == 0 {
		return
	}
	played, err := st.GameCount(ctx)
	if err != nil {
		log.Printf("store: game count: %v", err)
		played = len(games)
	}

	fmt.Printf("Top games (%d played):\n", played)
	for i, g := range games {
		fmt.Printf("%2d. %4d  length %-3d %-5s %s\n", i+1, g.Score, g.Length, g.Collision, g.EndedAt.Local().Format("2006-01-02 15:04"))
	}
}
