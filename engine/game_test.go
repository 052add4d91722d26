package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/content"
	"github.com/lixenwraith/pixel-angler/engine/fsm"
	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/gear"
	"github.com/lixenwraith/pixel-angler/status"
)

// constSource returns the same uniform value: no wander, no jitter, mid-range bite delay
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// uncommonCatch matches the tier drawn by constSource(0.5)
const uncommonCatch = `{"name":"Reed Minnow","rarity":"Uncommon","weight":1.5,"description":"Hums in the shallows.","color":"#88cc44","price":450}`

type stubService struct {
	text string
	err  error
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Generate(ctx context.Context, req content.Request) (string, error) {
	return s.text, s.err
}

type gatedService struct {
	release chan struct{}
}

func (s *gatedService) Name() string { return "gated" }

func (s *gatedService) Generate(ctx context.Context, req content.Request) (string, error) {
	select {
	case <-s.release:
		return uncommonCatch, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type fakeEconomy struct {
	caught   []fish.Fish
	sold     []string
	equipped string
	sellErr  error
}

func (e *fakeEconomy) FishCaught(f fish.Fish) { e.caught = append(e.caught, f) }

func (e *fakeEconomy) SellFish(id string) (int, error) {
	if e.sellErr != nil {
		return 0, e.sellErr
	}
	e.sold = append(e.sold, id)
	return 100, nil
}

func (e *fakeEconomy) SellAll() (int, error)     { return 0, nil }
func (e *fakeEconomy) BuyGear(id string) error   { return nil }
func (e *fakeEconomy) EquipGear(id string) error { e.equipped = id; return nil }
func (e *fakeEconomy) EquippedGearID() string    { return e.equipped }

type recordingSounds struct {
	cues []string
}

func (r *recordingSounds) PlaySplash() { r.cues = append(r.cues, "splash") }
func (r *recordingSounds) PlayBite()   { r.cues = append(r.cues, "bite") }
func (r *recordingSounds) StartReel()  { r.cues = append(r.cues, "reel") }
func (r *recordingSounds) StopReel()   { r.cues = append(r.cues, "stop") }
func (r *recordingSounds) PlayCatch()  { r.cues = append(r.cues, "catch") }
func (r *recordingSounds) PlayEscape() { r.cues = append(r.cues, "escape") }

type harness struct {
	clock    *MockTimeProvider
	sched    *Scheduler
	loop     *Loop
	game     *Game
	econ     *fakeEconomy
	prefetch *content.Prefetcher
	sounds   *recordingSounds
	reg      *status.Registry
}

func newHarness(t *testing.T, svc content.Service) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := NewMockTimeProvider(epoch)
	sched := NewScheduler(clock)
	reg := status.NewRegistry()
	rng := constSource(0.5)

	h := &harness{
		clock:  clock,
		sched:  sched,
		loop:   NewLoop(clock, sched, constant.FrameInterval, reg, logger),
		econ:   &fakeEconomy{equipped: "rod_bamboo"},
		sounds: &recordingSounds{},
		reg:    reg,
	}
	h.prefetch = content.NewPrefetcher(content.NewGenerator(svc, reg, logger), rng, time.Second, reg)
	h.game = NewGame(GameDeps{
		Clock:      clock,
		Scheduler:  sched,
		Rand:       rng,
		Catalog:    gear.Default(),
		Economy:    h.econ,
		Prefetcher: h.prefetch,
		Sounds:     h.sounds,
		Registry:   reg,
		Logger:     logger,
	})
	t.Cleanup(func() {
		h.game.Teardown()
		h.prefetch.Wait()
	})
	return h
}

// run advances the mock clock frame by frame
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += constant.FrameInterval {
		h.loop.Step(h.clock.Advance(constant.FrameInterval))
	}
}

func (h *harness) toWaiting(t *testing.T) {
	t.Helper()
	h.game.Press()
	if h.game.State() != StateCasting {
		t.Fatalf("state after press = %v, want CASTING", h.game.State())
	}
	h.run(30 * constant.CastTickInterval)
	if h.game.State() != StateWaiting {
		t.Fatalf("state after cast = %v, want WAITING", h.game.State())
	}
}

func (h *harness) toBiting(t *testing.T) {
	t.Helper()
	h.toWaiting(t)
	h.run(constant.BiteDelayMax)
	if h.game.State() != StateBiting {
		t.Fatalf("state after wait = %v, want BITING", h.game.State())
	}
}

func (h *harness) toReeling(t *testing.T) {
	t.Helper()
	h.toBiting(t)
	h.game.Press()
	if h.game.State() != StateReeling {
		t.Fatalf("state after hook = %v, want REELING", h.game.State())
	}
}

// forceWin puts the reel one tick from a win: fish and bar centered, progress near full
func (h *harness) forceWin() {
	r := h.game.simulator.Reel()
	r.FishPos, r.FishTarget, r.FishVel = 50, 50, 0
	r.BarPos, r.BarVel = 50, 0
	r.Progress = 99.9
	h.run(constant.FrameInterval)
}

// forceLoss puts the reel one tick from a loss: fish and bar apart, progress near empty
func (h *harness) forceLoss() {
	r := h.game.simulator.Reel()
	r.FishPos, r.FishTarget, r.FishVel = 90, 90, 0
	r.BarPos, r.BarVel = 10, 0
	r.Progress = 0.1
	h.run(constant.FrameInterval)
}

func TestCatchEpisode(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)
	h.prefetch.Wait()

	h.forceWin()
	if h.game.State() != StateCaught {
		t.Fatalf("state = %v, want CAUGHT", h.game.State())
	}

	if len(h.econ.caught) != 1 {
		t.Fatalf("caught %d fish, want 1", len(h.econ.caught))
	}
	got := h.econ.caught[0]
	if got.Name != "Reed Minnow" || got.Rarity != fish.RarityUncommon {
		t.Errorf("caught %+v", got.Generated)
	}
	if got.ID == "" || !got.CaughtAt.Equal(h.clock.Now()) {
		t.Errorf("identity not stamped: id=%q at=%v", got.ID, got.CaughtAt)
	}

	want := []string{"splash", "bite", "reel", "stop", "catch"}
	if len(h.sounds.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", h.sounds.cues, want)
	}
	for i := range want {
		if h.sounds.cues[i] != want[i] {
			t.Errorf("cue[%d] = %s, want %s", i, h.sounds.cues[i], want[i])
		}
	}

	if !h.game.Keep() {
		t.Fatal("Keep rejected in CAUGHT")
	}
	if h.game.State() != StateIdle {
		t.Errorf("state after keep = %v, want IDLE", h.game.State())
	}
	if h.sched.Pending() != 0 {
		t.Errorf("pending handles after episode = %d", h.sched.Pending())
	}
	if _, ok := h.game.Catch(); ok {
		t.Error("catch survived episode reset")
	}

	for key, want := range map[string]int64{
		status.Casts: 1, status.Bites: 1, status.Reels: 1, status.Catches: 1, status.Escapes: 0,
	} {
		if got := h.reg.Counter(key).Load(); got != want {
			t.Errorf("%s = %d, want %d", key, got, want)
		}
	}
}

func TestContentFailureYieldsFallbackOnWinTick(t *testing.T) {
	h := newHarness(t, &stubService{err: errors.New("unauthorized")})
	h.toReeling(t)
	h.prefetch.Wait()

	h.forceWin()
	c, ok := h.game.Catch()
	if !ok {
		t.Fatal("no catch on win tick")
	}
	if c.Generated != fish.Fallback() {
		t.Errorf("catch = %+v, want fallback", c.Generated)
	}
	if !h.game.Snapshot(h.clock.Now()).CatchFallback {
		t.Error("snapshot does not flag fallback")
	}
}

func TestUnresolvedFetchDoesNotBlockWin(t *testing.T) {
	svc := &gatedService{release: make(chan struct{})}
	h := newHarness(t, svc)
	h.toReeling(t)

	h.forceWin()
	c, ok := h.game.Catch()
	if !ok || c.Generated != fish.Fallback() {
		t.Errorf("catch = %+v, want fallback while fetch pending", c.Generated)
	}
	close(svc.release)
}

func TestEscapeReturnsToIdleAfterDelay(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)

	h.forceLoss()
	if h.game.State() != StateEscaped {
		t.Fatalf("state = %v, want ESCAPED", h.game.State())
	}
	if len(h.econ.caught) != 0 {
		t.Error("escape delivered a fish")
	}

	h.run(constant.EscapedDisplayDelay - 100*time.Millisecond)
	if h.game.State() != StateEscaped {
		t.Fatalf("left ESCAPED early: %v", h.game.State())
	}
	h.run(200 * time.Millisecond)
	if h.game.State() != StateIdle {
		t.Errorf("state = %v, want IDLE", h.game.State())
	}
	if h.sched.Pending() != 0 {
		t.Errorf("pending handles = %d", h.sched.Pending())
	}
}

func TestDuplicateTerminalSignalsIgnored(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)
	h.prefetch.Wait()
	h.forceWin()

	h.game.reelWon()
	h.game.reelLost()

	if h.game.State() != StateCaught {
		t.Errorf("state = %v, want CAUGHT", h.game.State())
	}
	if len(h.econ.caught) != 1 {
		t.Errorf("caught %d fish, want 1", len(h.econ.caught))
	}
	if got := h.reg.Counter(status.Escapes).Load(); got != 0 {
		t.Errorf("escapes = %d after duplicate loss", got)
	}
}

func TestCastIsNoOpOutsideIdle(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})

	check := func(want State) {
		t.Helper()
		if h.game.StartCast() {
			t.Errorf("StartCast accepted in %v", want)
		}
		if h.game.State() != want {
			t.Errorf("state = %v, want %v", h.game.State(), want)
		}
	}

	h.game.Press()
	check(StateCasting)
	h.run(30 * constant.CastTickInterval)
	check(StateWaiting)
	h.run(constant.BiteDelayMax)
	check(StateBiting)
	h.game.StartReel()
	check(StateReeling)

	if got := h.reg.Counter(status.Casts).Load(); got != 1 {
		t.Errorf("casts = %d, want 1", got)
	}
}

func TestReelIsNoOpOutsideBiting(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	if h.game.StartReel() {
		t.Error("StartReel accepted in IDLE")
	}
	h.toWaiting(t)
	if h.game.StartReel() {
		t.Error("StartReel accepted in WAITING")
	}
	if h.game.State() != StateWaiting {
		t.Errorf("state = %v, want WAITING", h.game.State())
	}
}

func TestOverlayBlocksCast(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})

	for _, o := range []Overlay{OverlayInventory, OverlayShop, OverlaySellShop} {
		if !h.game.Open(o) {
			t.Fatalf("Open(%v) rejected in IDLE", o)
		}
		h.game.Press()
		if h.game.State() != StateIdle {
			t.Errorf("cast started with %v open", o)
		}
		h.game.CloseOverlay()
	}

	h.game.Press()
	if h.game.State() != StateCasting {
		t.Errorf("state = %v after closing overlays, want CASTING", h.game.State())
	}
	if h.game.Open(OverlayShop) {
		t.Error("overlay opened mid-episode")
	}
}

func TestStaleBiteTimerIsNoOp(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.game.Press()

	h.game.bite(h.clock.Now())
	if h.game.State() != StateCasting {
		t.Errorf("stale bite moved state to %v", h.game.State())
	}
	if got := h.reg.Counter(status.Bites).Load(); got != 0 {
		t.Errorf("bites = %d, want 0", got)
	}
}

func TestGearCapturedAtReelStart(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)

	h.econ.equipped = "rod_golden"
	h.run(10 * constant.FrameInterval)

	stats := h.game.simulator.Reel().Stats()
	bamboo, _ := gear.Default().Lookup("rod_bamboo")
	if stats != bamboo.Stats() {
		t.Errorf("stats = %+v, want bamboo %+v", stats, bamboo.Stats())
	}
}

func TestTeardownReleasesEverything(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *harness)
	}{
		{"idle", func(*testing.T, *harness) {}},
		{"casting", func(t *testing.T, h *harness) { h.game.Press() }},
		{"waiting", func(t *testing.T, h *harness) { h.toWaiting(t) }},
		{"reeling", func(t *testing.T, h *harness) { h.toReeling(t) }},
		{"escaped", func(t *testing.T, h *harness) { h.toReeling(t); h.forceLoss() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &stubService{text: uncommonCatch})
			tt.setup(t, h)

			h.game.Teardown()
			h.game.Teardown()
			if h.sched.Pending() != 0 {
				t.Errorf("pending handles after teardown = %d", h.sched.Pending())
			}

			state := h.game.State()
			h.game.Press()
			h.run(constant.BiteDelayMax)
			if h.game.State() != state {
				t.Errorf("state changed after teardown: %v -> %v", state, h.game.State())
			}
		})
	}
}

func TestLiftFollowsInput(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)

	h.game.Press()
	snap := h.game.Snapshot(h.clock.Now())
	if !snap.Lifting || snap.RodAngle != constant.RodAngleLifting {
		t.Errorf("pressed: lifting=%v angle=%v", snap.Lifting, snap.RodAngle)
	}

	h.game.Release()
	snap = h.game.Snapshot(h.clock.Now())
	if snap.Lifting || snap.RodAngle != constant.RodAngleRelaxed {
		t.Errorf("released: lifting=%v angle=%v", snap.Lifting, snap.RodAngle)
	}
}

func TestSellAndReturn(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)
	h.prefetch.Wait()
	h.forceWin()

	c, _ := h.game.Catch()
	price, err := h.game.SellAndReturn()
	if err != nil {
		t.Fatalf("SellAndReturn: %v", err)
	}
	if price != 100 || len(h.econ.sold) != 1 || h.econ.sold[0] != c.ID {
		t.Errorf("sold %v for %d", h.econ.sold, price)
	}
	if h.game.State() != StateIdle {
		t.Errorf("state = %v, want IDLE", h.game.State())
	}
}

func TestSellAndReturnRefusedStillResets(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.econ.sellErr = errors.New("unknown fish")
	h.toReeling(t)
	h.forceWin()

	if _, err := h.game.SellAndReturn(); err == nil {
		t.Error("refused sale reported success")
	}
	if h.game.State() != StateIdle {
		t.Errorf("state = %v, want IDLE", h.game.State())
	}
}

func TestSnapshotScene(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})

	snap := h.game.Snapshot(h.clock.Now())
	if snap.Bobber.X != constant.IdleBobberX || snap.Bobber.Y != constant.IdleBobberY {
		t.Errorf("idle bobber = %+v", snap.Bobber)
	}
	if snap.LineSag != constant.LineSag || snap.Feedback != constant.FeedbackIdle {
		t.Errorf("idle sag=%v feedback=%q", snap.LineSag, snap.Feedback)
	}
	if snap.GearID != "rod_bamboo" {
		t.Errorf("gear = %q", snap.GearID)
	}

	h.game.Press()
	h.run(5 * constant.CastTickInterval)
	snap = h.game.Snapshot(h.clock.Now())
	if snap.LineSag != 0 || snap.Bobber.Y >= constant.CastStartY {
		t.Errorf("casting sag=%v bobber=%+v, want taut line and rising bobber", snap.LineSag, snap.Bobber)
	}

	h.run(30 * constant.CastTickInterval)
	for i := 0; i < 20; i++ {
		h.run(50 * time.Millisecond)
		snap = h.game.Snapshot(h.clock.Now())
		if snap.State != StateWaiting {
			break
		}
		if snap.Bobber.X != constant.CastEndX || math.Abs(snap.Bobber.Y-constant.CastEndY) > constant.BobAmplitude {
			t.Fatalf("waiting bobber = %+v", snap.Bobber)
		}
	}
}

func TestSnapshotShake(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	h.toReeling(t)

	r := h.game.simulator.Reel()
	r.FishPos, r.FishTarget = 90, 90
	r.BarPos = 10
	r.Progress = 20
	h.run(constant.FrameInterval)

	snap := h.game.Snapshot(h.clock.Now())
	if snap.Reel == nil {
		t.Fatal("no reel view while reeling")
	}
	if !snap.Shake {
		t.Errorf("no shake at progress %.2f without overlap", snap.Reel.Progress)
	}
	if snap.Reel.BarWidth != 15 || snap.Reel.FishWidth != constant.FishWidth {
		t.Errorf("widths = %v/%v", snap.Reel.BarWidth, snap.Reel.FishWidth)
	}
}

func TestPhaseGraphDropsUnlistedEvents(t *testing.T) {
	h := newHarness(t, &stubService{text: uncommonCatch})
	if h.game.machine.In(nodeEpisode) {
		t.Fatal("IDLE reported inside an episode")
	}
	h.toReeling(t)
	if !h.game.machine.In(nodeEpisode) {
		t.Error("REELING not inside the episode node")
	}

	for _, ev := range []fsm.Event{eventCast, eventLanded, eventBite, eventHook, eventEscapeDone, eventKeep, eventSell} {
		if h.game.fire(ev) {
			t.Errorf("event %d fired out of REELING", ev)
		}
	}
	if h.game.State() != StateReeling || !h.game.simulator.Running() {
		t.Fatalf("state = %v, simulator running = %v", h.game.State(), h.game.simulator.Running())
	}

	h.forceLoss()
	if !h.game.machine.In(nodeEpisode) || h.game.simulator.Running() {
		t.Error("ESCAPED must stay in the episode with the simulator stopped")
	}
	h.run(constant.EscapedDisplayDelay + constant.FrameInterval)
	if h.game.machine.In(nodeEpisode) || h.sched.Pending() != 0 {
		t.Errorf("episode not released: state = %v, pending = %d", h.game.State(), h.sched.Pending())
	}
}
