package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/content"
	"github.com/lixenwraith/pixel-angler/engine/fsm"
	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/gear"
	"github.com/lixenwraith/pixel-angler/physics"
	"github.com/lixenwraith/pixel-angler/status"
)

// Economy is the collaborator owning holdings and balance
// The game forwards intents and never mutates holdings itself
type Economy interface {
	FishCaught(f fish.Fish)
	SellFish(id string) (int, error)
	SellAll() (int, error)
	BuyGear(id string) error
	EquipGear(id string) error
	EquippedGearID() string
}

// Sounds receives audio cues; every method must return immediately
type Sounds interface {
	PlaySplash()
	PlayBite()
	StartReel()
	StopReel()
	PlayCatch()
	PlayEscape()
}

type silentSounds struct{}

func (silentSounds) PlaySplash() {}
func (silentSounds) PlayBite()   {}
func (silentSounds) StartReel()  {}
func (silentSounds) StopReel()   {}
func (silentSounds) PlayCatch()  {}
func (silentSounds) PlayEscape() {}

// Random is the uniform source shared by bite timing and reel physics
type Random interface {
	Float64() float64
}

// GameDeps wires a Game to its collaborators
// Sounds, Registry and Logger are optional
type GameDeps struct {
	Clock      TimeProvider
	Scheduler  *Scheduler
	Rand       Random
	Catalog    *gear.Catalog
	Economy    Economy
	Prefetcher *content.Prefetcher
	Sounds     Sounds
	Registry   *status.Registry
	Logger     *slog.Logger
}

// Game is the minigame state machine
// All methods must be called on the loop goroutine
type Game struct {
	clock     TimeProvider
	sched     *Scheduler
	rng       Random
	catalog   *gear.Catalog
	economy   Economy
	prefetch  *content.Prefetcher
	sounds    Sounds
	logger    *slog.Logger
	animator  *CastAnimator
	simulator *Simulator
	machine   *fsm.Machine[*Game]

	stateSince time.Time
	overlay    Overlay
	episode    uint64
	tier       fish.Tier
	catch      *fish.Fish
	fallback   bool
	torn       bool

	biteTimer   Handle
	escapeTimer Handle

	statCasts   *atomic.Int64
	statBites   *atomic.Int64
	statReels   *atomic.Int64
	statCatches *atomic.Int64
	statEscapes *atomic.Int64
}

// NewGame creates a game in IDLE
func NewGame(deps GameDeps) *Game {
	g := &Game{
		clock:       deps.Clock,
		sched:       deps.Scheduler,
		rng:         deps.Rand,
		catalog:     deps.Catalog,
		economy:     deps.Economy,
		prefetch:    deps.Prefetcher,
		sounds:      deps.Sounds,
		logger:      deps.Logger,
		statCasts:   deps.Registry.Counter(status.Casts),
		statBites:   deps.Registry.Counter(status.Bites),
		statReels:   deps.Registry.Counter(status.Reels),
		statCatches: deps.Registry.Counter(status.Catches),
		statEscapes: deps.Registry.Counter(status.Escapes),
	}
	if g.sounds == nil {
		g.sounds = silentSounds{}
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.catalog == nil {
		g.catalog = gear.Default()
	}

	g.animator = NewCastAnimator(g.sched, g.castLanded)
	g.simulator = NewSimulator(g.sched, g.rng, g.reelWon, g.reelLost)
	g.stateSince = g.clock.Now()

	g.machine = newGameMachine()
	g.machine.OnTransition = g.transitioned
	if err := g.machine.Init(g, node(StateIdle)); err != nil {
		panic(fmt.Sprintf("game machine: %v", err))
	}
	return g
}

// State returns the current phase
func (g *Game) State() State {
	return State(g.machine.Current())
}

// Overlay returns the open overlay
func (g *Game) Overlay() Overlay {
	return g.overlay
}

// Catch returns the fish landed this episode, if any
func (g *Game) Catch() (fish.Fish, bool) {
	if g.catch == nil {
		return fish.Fish{}, false
	}
	return *g.catch, true
}

// Tier returns the tier drawn for the current episode
func (g *Game) Tier() fish.Tier {
	return g.tier
}

// fire offers ev to the machine; nothing moves after teardown
func (g *Game) fire(ev fsm.Event) bool {
	if g.torn {
		return false
	}
	return g.machine.HandleEvent(g, ev)
}

func (g *Game) transitioned(from, to fsm.StateID) {
	g.logger.Debug("state transition", "from", State(from), "to", State(to), "episode", g.episode)
	g.stateSince = g.clock.Now()
}

// Press is the primary action: cast in IDLE, hook in BITING, lift while REELING
func (g *Game) Press() {
	if g.State() == StateReeling {
		g.simulator.SetLift(true)
		return
	}
	if !g.fire(eventCast) {
		g.fire(eventHook)
	}
}

// Release drops the lift
func (g *Game) Release() {
	if g.State() == StateReeling {
		g.simulator.SetLift(false)
	}
}

// StartCast moves IDLE to CASTING; false when mistimed or blocked by an overlay
func (g *Game) StartCast() bool {
	return g.fire(eventCast)
}

// StartReel moves BITING to REELING with the equipped gear captured by value
func (g *Game) StartReel() bool {
	return g.fire(eventHook)
}

func (g *Game) castLanded() {
	g.fire(eventLanded)
}

func (g *Game) bite(time.Time) {
	g.biteTimer = 0
	g.fire(eventBite)
}

func (g *Game) reelWon() {
	g.fire(eventWin)
}

func (g *Game) reelLost() {
	g.fire(eventLose)
}

func (g *Game) escapeDone(time.Time) {
	g.escapeTimer = 0
	g.fire(eventEscapeDone)
}

// Keep returns a landed catch to IDLE; the fish stays in the inventory
func (g *Game) Keep() bool {
	return g.fire(eventKeep)
}

// SellAndReturn sells the landed catch and returns to IDLE
// The episode resets even when the sale is refused
func (g *Game) SellAndReturn() (int, error) {
	if g.catch == nil {
		return 0, nil
	}
	id := g.catch.ID
	if !g.fire(eventSell) {
		return 0, nil
	}

	price, err := g.economy.SellFish(id)
	if err != nil {
		return 0, fmt.Errorf("sell %s: %w", id, err)
	}
	return price, nil
}

// Open shows an overlay; only allowed in IDLE
func (g *Game) Open(o Overlay) bool {
	if g.torn || g.State() != StateIdle || o == OverlayNone {
		return false
	}
	g.overlay = o
	return true
}

// CloseOverlay hides any open overlay
func (g *Game) CloseOverlay() {
	g.overlay = OverlayNone
}

// SellFish forwards a sale from the sell shop
func (g *Game) SellFish(id string) (int, error) {
	return g.economy.SellFish(id)
}

// SellAll forwards a bulk sale
func (g *Game) SellAll() (int, error) {
	return g.economy.SellAll()
}

// BuyGear forwards a purchase
func (g *Game) BuyGear(id string) error {
	return g.economy.BuyGear(id)
}

// EquipGear forwards an equip; takes effect at the next REELING entry
func (g *Game) EquipGear(id string) error {
	return g.economy.EquipGear(id)
}

// Teardown stops simulating and releases every timer, frame callback and fetch
// Idempotent; the game ignores all input afterwards
func (g *Game) Teardown() {
	if g.torn {
		return
	}
	g.torn = true
	if g.State() == StateReeling {
		g.sounds.StopReel()
	}
	g.release()
	g.logger.Debug("game torn down", "episode", g.episode)
}

// Snapshot projects the current state for rendering
func (g *Game) Snapshot(now time.Time) Snapshot {
	state := g.State()
	snap := Snapshot{
		Time:     now,
		Episode:  g.episode,
		State:    state,
		Overlay:  g.overlay,
		Feedback: state.Feedback(),
		RodTip:   physics.Point{X: constant.RodTipX, Y: constant.RodTipY},
		LineSag:  constant.LineSag,
		RodAngle: constant.RodAngleRelaxed,
		GearID:   g.catalog.Resolve(g.economy.EquippedGearID()).ID,
	}

	rest := physics.Point{X: constant.CastEndX, Y: constant.CastEndY}
	switch state {
	case StateIdle:
		snap.Bobber = physics.Point{X: constant.IdleBobberX, Y: constant.IdleBobberY}
	case StateCasting:
		snap.Bobber = g.animator.Position()
		snap.LineSag = 0
	case StateWaiting, StateBiting:
		t := now.Sub(g.stateSince).Seconds()
		snap.Bobber = physics.Point{X: rest.X, Y: rest.Y + math.Sin(t*constant.BobFrequency)*constant.BobAmplitude}
	case StateReeling:
		snap.Bobber = rest
		snap.LineSag = 0
	default:
		snap.Bobber = rest
	}

	if state == StateReeling {
		snap.Lifting = g.simulator.Lifting()
		if snap.Lifting {
			snap.RodAngle = constant.RodAngleLifting
		}
	}

	if r := g.simulator.Reel(); r != nil && (state == StateReeling || state == StateCaught || state == StateEscaped) {
		stats := r.Stats()
		snap.Reel = &ReelView{
			FishPos:   r.FishPos,
			FishWidth: constant.FishWidth,
			BarPos:    r.BarPos,
			BarWidth:  stats.BarWidth,
			Progress:  r.Progress,
			Overlap:   r.Overlap,
		}
		snap.Shake = state == StateReeling && r.Progress < constant.ShakeProgressThreshold && !r.Overlap
	}

	if g.catch != nil {
		c := *g.catch
		snap.Catch = &c
		snap.CatchFallback = g.fallback
	}
	return snap
}
