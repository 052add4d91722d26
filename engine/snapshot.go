package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/physics"
)

// ReelView is the render projection of the live reel
type ReelView struct {
	FishPos   float64 `json:"fishPos"`
	FishWidth float64 `json:"fishWidth"`
	BarPos    float64 `json:"barPos"`
	BarWidth  float64 `json:"barWidth"`
	Progress  float64 `json:"progress"`
	Overlap   bool    `json:"overlap"`
}

// Snapshot is an immutable render-friendly copy of the game, published once per frame
// Renderers never read the live game
type Snapshot struct {
	Time     time.Time `json:"time"`
	Episode  uint64    `json:"episode"`
	State    State     `json:"state"`
	Overlay  Overlay   `json:"overlay"`
	Feedback string    `json:"feedback"`

	Bobber   physics.Point `json:"bobber"`
	RodTip   physics.Point `json:"rodTip"`
	LineSag  float64       `json:"lineSag"`
	RodAngle float64       `json:"rodAngle"`
	Lifting  bool          `json:"lifting"`
	Shake    bool          `json:"shake"`

	Reel  *ReelView  `json:"reel,omitempty"`
	Catch *fish.Fish `json:"catch,omitempty"`
	// CatchFallback marks a catch substituted because content was unavailable
	CatchFallback bool `json:"catchFallback,omitempty"`

	GearID string `json:"gearId"`
}

type subscription struct {
	id       uint64
	interval time.Duration
	last     time.Time
	state    State
	primed   bool
	fn       func(Snapshot)
}

// Publisher fans snapshots out to subscribers, each throttled to its own interval
// State changes are always delivered so no subscriber misses a transition
type Publisher struct {
	mu     sync.Mutex
	subs   []*subscription
	nextID uint64

	latest atomic.Pointer[Snapshot]
}

// NewPublisher creates an empty publisher
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers fn; interval zero delivers every snapshot
// fn runs on the publishing goroutine and must not block
func (p *Publisher) Subscribe(interval time.Duration, fn func(Snapshot)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, &subscription{id: id, interval: interval, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stores snap as latest and delivers it to due subscribers
func (p *Publisher) Publish(snap Snapshot) {
	p.latest.Store(&snap)

	p.mu.Lock()
	due := make([]*subscription, 0, len(p.subs))
	for _, s := range p.subs {
		if s.primed && s.state == snap.State && snap.Time.Sub(s.last) < s.interval {
			continue
		}
		s.primed = true
		s.last = snap.Time
		s.state = snap.State
		due = append(due, s)
	}
	p.mu.Unlock()

	for _, s := range due {
		s.fn(snap)
	}
}

// Latest returns the most recent snapshot; safe from any goroutine
func (p *Publisher) Latest() (Snapshot, bool) {
	s := p.latest.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}
