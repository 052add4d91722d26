package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixel-angler/audio"
	"github.com/lixenwraith/pixel-angler/config"
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/content"
	"github.com/lixenwraith/pixel-angler/core"
	"github.com/lixenwraith/pixel-angler/economy"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/gear"
	"github.com/lixenwraith/pixel-angler/input"
	"github.com/lixenwraith/pixel-angler/network"
	"github.com/lixenwraith/pixel-angler/render"
	"github.com/lixenwraith/pixel-angler/save"
	"github.com/lixenwraith/pixel-angler/service"
	"github.com/lixenwraith/pixel-angler/status"
)

// messageDuration is how long a transient status message replaces the state feedback
const messageDuration = 2 * time.Second

type appOptions struct {
	Config config.Config
	Screen tcell.Screen
	// Clock and Rand default to the monotonic clock and a time-seeded PCG
	Clock  engine.TimeProvider
	Rand   *rand.Rand
	Logger *slog.Logger
	Debug  bool
	Muted  bool
}

// app owns every component; all game state is touched on the loop goroutine only
type app struct {
	cfg    config.Config
	screen tcell.Screen
	clock  engine.TimeProvider
	logger *slog.Logger
	debug  bool

	registry *status.Registry
	loop     *engine.Loop
	game     *engine.Game
	pub      *engine.Publisher
	catalog  *gear.Catalog
	ledger   *economy.Ledger
	prefetch *content.Prefetcher
	mapper   *input.Mapper
	renderer *render.RenderOrchestrator

	hub       *service.Hub
	audio     *audio.AudioService
	autosaver *save.Autosaver
	network   *network.Service

	message      string
	messageUntil time.Time
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	catalog := gear.Default()
	if cfg.Gear.Catalog != "" {
		loaded, err := gear.Load(cfg.Gear.Catalog)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	a := &app{
		cfg:      cfg,
		screen:   opts.Screen,
		clock:    clock,
		logger:   logger,
		debug:    opts.Debug,
		registry: status.NewRegistry(),
		pub:      engine.NewPublisher(),
		catalog:  catalog,
		mapper:   input.NewMapper(nil, cfg.Input.HoldTimeout),
	}

	a.ledger = economy.NewLedger(catalog, logger.With("component", "ledger"))
	store := a.openStore()
	if state, found, err := store.Load(); err != nil {
		logger.Warn("save unreadable, starting fresh", "error", err)
	} else if found {
		a.ledger.Restore(state)
		logger.Info("progress restored", "balance", state.Balance, "fish", len(state.Inventory))
	}
	a.autosaver = save.NewAutosaver(store, logger.With("component", "save"))
	a.ledger.OnChange(a.autosaver.Queue)

	svc, err := newContentService(ctx, cfg.Content)
	if err != nil {
		logger.Warn("content service unavailable, using offline catches", "provider", cfg.Content.Provider, "error", err)
	}
	generator := content.NewGenerator(svc, a.registry, logger.With("component", "content"))
	a.prefetch = content.NewPrefetcher(generator, rng, cfg.Content.Timeout, a.registry)

	a.audio = audio.NewService(logger.With("component", "audio"))
	a.network = network.NewService(network.Sources{
		Feed:     a.pub,
		Holdings: a.ledger,
		Catalog:  catalog,
		Registry: a.registry,
	}, logger.With("component", "network"))

	a.hub = service.NewHub(logger)
	for _, s := range []service.Service{a.audio, a.autosaver, a.network} {
		if err := a.hub.Register(s); err != nil {
			return nil, err
		}
	}
	if err := a.hub.InitAll(a.serviceArgs(opts.Muted)); err != nil {
		return nil, err
	}

	sched := engine.NewScheduler(clock)
	a.loop = engine.NewLoop(clock, sched, constant.FrameInterval, a.registry, logger.With("component", "loop"))
	a.game = engine.NewGame(engine.GameDeps{
		Clock:      clock,
		Scheduler:  sched,
		Rand:       rng,
		Catalog:    catalog,
		Economy:    a.ledger,
		Prefetcher: a.prefetch,
		Sounds:     a.audio.Sounds(),
		Registry:   a.registry,
		Logger:     logger.With("component", "game"),
	})

	if a.screen != nil {
		a.renderer = render.NewDefaultOrchestrator(a.screen)
		a.pub.Subscribe(0, a.draw)
	}
	a.loop.AfterFrame(a.frame)
	return a, nil
}

func (a *app) openStore() *save.Store {
	if a.cfg.Save.Disabled {
		return save.NewStore(nil)
	}
	manager, err := save.Open(a.cfg.Save.AppName)
	if err != nil {
		a.logger.Warn("persistent storage unavailable, progress kept in memory", "error", err)
		return save.NewStore(nil)
	}
	return save.NewStore(manager)
}

func (a *app) serviceArgs(muted bool) map[string][]any {
	args := map[string][]any{
		"audio": {!a.cfg.Audio.Enabled, muted},
	}
	if a.cfg.Network.Enabled {
		netCfg := network.DefaultConfig()
		netCfg.Address = a.cfg.Network.Address
		netCfg.BroadcastInterval = a.cfg.Network.BroadcastInterval()
		args["network"] = []any{netCfg}
	}
	return args
}

// newContentService selects the provider; a nil service means offline catches only
func newContentService(ctx context.Context, cfg config.Content) (content.Service, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		svc, err := content.NewGeminiService(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			if errors.Is(err, content.ErrNoService) {
				return nil, nil
			}
			return nil, err
		}
		return svc, nil
	case config.ProviderHTTP:
		svc, err := content.NewHTTPService(cfg.Endpoint, cfg.APIKey, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	return nil, nil
}

// start launches services and the input reader
func (a *app) start() error {
	if err := a.hub.StartAll(); err != nil {
		return err
	}
	a.logger.Info("services started", "services", a.hub.Names())
	if a.screen != nil {
		core.Go(a.readInput)
	}
	return nil
}

// close tears the game down on the caller's goroutine; the loop must have stopped
func (a *app) close() {
	a.loop.Stop()
	a.game.Teardown()
	a.prefetch.Wait()
	a.hub.StopAll()
}

// readInput forwards terminal events to the loop until the screen is finalized
func (a *app) readInput() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		now := a.clock.Now()
		if !a.loop.Post(func() { a.dispatch(a.mapper.Map(ev, now)) }) {
			return
		}
	}
}

// frame runs after every loop step: expire held keys, then publish
func (a *app) frame(now time.Time) {
	a.dispatch(a.mapper.Expire(now))
	a.pub.Publish(a.game.Snapshot(now))
}

func (a *app) draw(snap engine.Snapshot) {
	ctx := render.RenderContext{
		Snap:    snap,
		Ledger:  a.ledger.State(),
		Catalog: a.catalog,
		Muted:   a.audio.Sounds().Muted(),
	}
	if snap.Time.Before(a.messageUntil) {
		ctx.Message = a.message
	}
	if a.debug {
		ctx.Stats = a.registry.Snapshot()
	}
	a.renderer.RenderFrame(ctx)
}

func (a *app) dispatch(intents []input.Intent) {
	for _, in := range intents {
		a.handle(in)
	}
}

// handle applies one intent to the game; loop goroutine only
func (a *app) handle(in input.Intent) {
	switch in.Type {
	case input.IntentQuit:
		a.loop.Stop()
	case input.IntentToggleMute:
		if a.audio.ToggleMute() {
			a.say("Sound off")
		} else {
			a.say("Sound on")
		}
	case input.IntentResize:
		if a.renderer != nil {
			a.renderer.Resize()
		}
	case input.IntentPress:
		a.game.Press()
	case input.IntentRelease:
		a.game.Release()
	case input.IntentKeep:
		a.game.Keep()
	case input.IntentSell:
		a.sellCatch()
	case input.IntentOpenInventory:
		a.toggleOverlay(engine.OverlayInventory)
	case input.IntentOpenShop:
		a.toggleOverlay(engine.OverlayShop)
	case input.IntentOpenSellShop:
		a.toggleOverlay(engine.OverlaySellShop)
	case input.IntentClose:
		a.game.CloseOverlay()
	case input.IntentSlot:
		a.slot(in.Slot)
	case input.IntentSellAll:
		if a.game.Overlay() == engine.OverlaySellShop {
			a.report(a.game.SellAll())
		}
	}
}

func (a *app) toggleOverlay(o engine.Overlay) {
	if a.game.Overlay() == o {
		a.game.CloseOverlay()
		return
	}
	a.game.CloseOverlay()
	a.game.Open(o)
}

func (a *app) sellCatch() {
	if a.game.State() != engine.StateCaught {
		return
	}
	a.report(a.game.SellAndReturn())
}

// slot buys or equips in the gear shop and sells one fish in the sell shop
func (a *app) slot(i int) {
	switch a.game.Overlay() {
	case engine.OverlayShop:
		items := a.catalog.All()
		if i < 0 || i >= len(items) {
			return
		}
		g := items[i]
		if a.ledger.Owns(g.ID) {
			if err := a.game.EquipGear(g.ID); err != nil {
				a.fail(err)
				return
			}
			a.say(fmt.Sprintf("Equipped %s", g.Name))
			return
		}
		if err := a.game.BuyGear(g.ID); err != nil {
			a.fail(err)
			return
		}
		a.say(fmt.Sprintf("Bought %s, press %d again to equip", g.Name, i+1))

	case engine.OverlaySellShop:
		inv := a.ledger.State().Inventory
		if i < 0 || i >= len(inv) {
			return
		}
		a.report(a.game.SellFish(inv[i].ID))
	}
}

func (a *app) report(price int, err error) {
	if err != nil {
		a.fail(err)
		return
	}
	if price > 0 {
		a.say(fmt.Sprintf("Sold for %d gold", price))
	}
}

func (a *app) fail(err error) {
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		a.say("Not enough gold")
	case errors.Is(err, economy.ErrUnknownFish):
		a.say("Nothing to sell")
	default:
		a.say(err.Error())
	}
	a.logger.Debug("action refused", "error", err)
}

func (a *app) say(msg string) {
	a.message = msg
	a.messageUntil = a.clock.Now().Add(messageDuration)
}
