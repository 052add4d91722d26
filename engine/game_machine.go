package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/content"
	"github.com/lixenwraith/pixel-angler/engine/fsm"
	"github.com/lixenwraith/pixel-angler/fish"
)

// Game events; timers and the simulator deliver theirs on the loop goroutine
const (
	eventCast fsm.Event = iota + 1
	eventLanded
	eventBite
	eventHook
	eventWin
	eventLose
	eventEscapeDone
	eventKeep
	eventSell
)

// nodeEpisode groups every non-IDLE phase; leaving it releases the episode
const nodeEpisode = fsm.StateID(len(stateNames))

func node(s State) fsm.StateID {
	return fsm.StateID(s)
}

// newGameMachine builds the phase graph; a stale timer or duplicate terminal signal
// finds no transition out of the current node and is dropped
func newGameMachine() *fsm.Machine[*Game] {
	m := fsm.NewMachine[*Game]()

	m.AddState(node(StateIdle), StateIdle.String(), fsm.StateNone)
	m.AddState(nodeEpisode, "EPISODE", fsm.StateNone)
	for _, s := range []State{StateCasting, StateWaiting, StateBiting, StateReeling, StateCaught, StateEscaped} {
		m.AddState(node(s), s.String(), nodeEpisode)
	}

	link := func(from, to State, ev fsm.Event, guard fsm.GuardFunc[*Game]) {
		m.AddTransition(node(from), fsm.Transition[*Game]{TargetID: node(to), Event: ev, Guard: guard})
	}
	link(StateIdle, StateCasting, eventCast, (*Game).canCast)
	link(StateCasting, StateWaiting, eventLanded, nil)
	link(StateWaiting, StateBiting, eventBite, nil)
	link(StateBiting, StateReeling, eventHook, nil)
	link(StateReeling, StateCaught, eventWin, nil)
	link(StateReeling, StateEscaped, eventLose, nil)
	link(StateEscaped, StateIdle, eventEscapeDone, nil)
	link(StateCaught, StateIdle, eventKeep, nil)
	link(StateCaught, StateIdle, eventSell, (*Game).hasCatch)

	m.OnEnter(node(StateIdle), (*Game).enterIdle)
	m.OnEnter(nodeEpisode, (*Game).enterEpisode)
	m.OnExit(nodeEpisode, (*Game).release)
	m.OnEnter(node(StateCasting), (*Game).enterCasting)
	m.OnEnter(node(StateWaiting), (*Game).enterWaiting)
	m.OnEnter(node(StateBiting), (*Game).enterBiting)
	m.OnEnter(node(StateReeling), (*Game).enterReeling)
	m.OnExit(node(StateReeling), (*Game).exitReeling)
	m.OnEnter(node(StateCaught), (*Game).enterCaught)
	m.OnEnter(node(StateEscaped), (*Game).enterEscaped)

	if err := m.CompilePaths(); err != nil {
		panic(fmt.Sprintf("game machine: %v", err))
	}
	return m
}

func (g *Game) canCast() bool {
	return g.overlay == OverlayNone
}

func (g *Game) hasCatch() bool {
	return g.catch != nil
}

func (g *Game) enterIdle() {
	g.catch = nil
	g.fallback = false
}

func (g *Game) enterEpisode() {
	g.episode++
	g.catch = nil
	g.fallback = false
	g.statCasts.Add(1)
	if g.prefetch != nil {
		g.tier = g.prefetch.Begin()
	}
}

func (g *Game) enterCasting() {
	g.animator.Start()
}

func (g *Game) enterWaiting() {
	g.sounds.PlaySplash()

	span := float64(constant.BiteDelayMax - constant.BiteDelayMin)
	delay := constant.BiteDelayMin + time.Duration(g.rng.Float64()*span)
	g.biteTimer = g.sched.After(delay, g.bite)
}

func (g *Game) enterBiting() {
	g.statBites.Add(1)
	g.sounds.PlayBite()
}

func (g *Game) enterReeling() {
	rod := g.catalog.Resolve(g.economy.EquippedGearID())
	g.statReels.Add(1)
	g.simulator.Start(rod.Stats())
	g.sounds.StartReel()
}

func (g *Game) exitReeling() {
	g.simulator.Stop()
	g.sounds.StopReel()
}

func (g *Game) enterCaught() {
	res := content.Result{Catch: fish.Fallback(), Fallback: true}
	if g.prefetch != nil {
		res = g.prefetch.Take()
		g.prefetch.Cancel()
	}
	f := fish.NewFish(res.Catch, g.clock.Now())
	g.catch = &f
	g.fallback = res.Fallback

	g.economy.FishCaught(f)
	g.statCatches.Add(1)
	g.sounds.PlayCatch()
	g.logger.Info("fish caught", "name", f.Name, "rarity", f.Rarity, "price", f.Price, "fallback", res.Fallback)
}

func (g *Game) enterEscaped() {
	if g.prefetch != nil {
		g.prefetch.Cancel()
	}
	g.statEscapes.Add(1)
	g.sounds.PlayEscape()
	g.escapeTimer = g.sched.After(constant.EscapedDisplayDelay, g.escapeDone)
}

// release stops the animator and simulator, cancels both timers and drops the fetch
func (g *Game) release() {
	g.animator.Stop()
	g.simulator.Stop()
	g.sched.Cancel(g.biteTimer)
	g.sched.Cancel(g.escapeTimer)
	g.biteTimer, g.escapeTimer = 0, 0
	if g.prefetch != nil {
		g.prefetch.Cancel()
	}
}
