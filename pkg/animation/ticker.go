// Package animation provides the frame clock and radius interpolation
// primitives driving live backdrop updates.
//
// The host embedding a backdrop is expected to call [StepFrame] once per
// display refresh from its presentation thread, passing whether a user
// interaction (scroll, drag) is currently in progress. Components subscribe
// to one of two channels: [ChannelContinuous] tickers fire on every frame,
// [ChannelInteraction] tickers only while an interaction is active.
package animation

import "sync"

// Channel selects which frame-clock channel a ticker subscribes to.
type Channel int

const (
	// ChannelContinuous fires on every frame tick.
	ChannelContinuous Channel = iota
	// ChannelInteraction fires only on frame ticks that occur during
	// active user interaction.
	ChannelInteraction
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback once per frame tick on its channel while active.
//
// Tickers are driven by the host's frame loop via [StepFrame]; the callback
// runs on whatever goroutine calls StepFrame, which by contract is the
// presentation thread.
type Ticker struct {
	channel  Channel
	callback func()
	isActive bool
}

// NewTicker creates a ticker on the given channel with the given callback.
func NewTicker(channel Channel, callback func()) *Ticker {
	return &Ticker{
		channel:  channel,
		callback: callback,
	}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently subscribed.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Channel returns the frame-clock channel the ticker subscribes to.
func (t *Ticker) Channel() Channel {
	return t.channel
}

// StepFrame advances all active tickers for one frame tick.
//
// Continuous-channel tickers always fire; interaction-channel tickers fire
// only when interacting is true. The host should call this once per display
// refresh on the presentation thread.
func StepFrame(interacting bool) {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Make a copy to avoid holding the lock during callbacks
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	for _, ticker := range tickers {
		if !ticker.isActive || ticker.callback == nil {
			continue
		}
		if ticker.channel == ChannelInteraction && !interacting {
			continue
		}
		ticker.callback()
	}
}

// ActiveCount returns the number of active tickers on the given channel.
func ActiveCount(channel Channel) int {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	n := 0
	for t := range activeTickers {
		if t.channel == channel {
			n++
		}
	}
	return n
}
