package mqttsn

import "time"

// fakeClock is a settable Clock for deterministic timer tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// pendingFrame is one inbox entry, not deliverable until at.
type pendingFrame struct {
	at    time.Time
	frame Frame
}

// fakeLink is an in-memory Link: sent frames are recorded, and
// PollIncoming serves a programmable inbox of pendingFrames. A poll finds
// the earliest not-yet-due frame, advances the clock to either that
// frame's due time or the poll's deadline (whichever is sooner), and
// returns it if it's now due — so a poll-until-idle loop advances fake
// time deterministically without ever sleeping for real.
type fakeLink struct {
	clock *fakeClock

	unicastSent   [][]byte
	broadcastSent [][]byte

	inbox []pendingFrame
}

func newFakeLink(clock *fakeClock) *fakeLink {
	return &fakeLink{clock: clock}
}

func (l *fakeLink) SendUnicast(addr Addr, buf []byte) error {
	cp := append([]byte(nil), buf...)
	l.unicastSent = append(l.unicastSent, cp)
	return nil
}

func (l *fakeLink) SendBroadcast(buf []byte, radius uint8) error {
	cp := append([]byte(nil), buf...)
	l.broadcastSent = append(l.broadcastSent, cp)
	return nil
}

func (l *fakeLink) PollIncoming(deadline time.Duration) (Frame, error) {
	now := l.clock.Now()
	end := now.Add(deadline)

	for i, p := range l.inbox {
		if !p.at.After(now) {
			l.inbox = append(l.inbox[:i], l.inbox[i+1:]...)
			return p.frame, nil
		}
	}

	next := end
	for _, p := range l.inbox {
		if p.at.Before(next) {
			next = p.at
		}
	}
	l.clock.Advance(next.Sub(now))
	return Frame{}, nil
}

// deliver queues payload for immediate delivery on the next poll.
func (l *fakeLink) deliver(sender Addr, payload []byte) {
	l.inbox = append(l.inbox, pendingFrame{at: l.clock.Now(), frame: Frame{Sender: sender, Payload: payload}})
}

// deliverAfter queues payload for delivery only once the fake clock
// reaches now+d, to land it inside a specific later retry attempt.
func (l *fakeLink) deliverAfter(sender Addr, payload []byte, d time.Duration) {
	l.inbox = append(l.inbox, pendingFrame{at: l.clock.Now().Add(d), frame: Frame{Sender: sender, Payload: payload}})
}

// newTestClient builds a Client wired to a fresh fakeLink/fakeClock pair,
// with SearchGwJitter disabled so tests never sleep on wall-clock time.
func newTestClient(extra ...Option) (*Client, *fakeLink, *fakeClock) {
	clock := newFakeClock()
	link := newFakeLink(clock)
	opts := append([]Option{
		WithLink(link),
		WithClock(clock),
		ClientID("C1"),
		SearchGwJitter(0),
		ResponseTimeout(100 * time.Millisecond),
		RetryMax(3),
	}, extra...)
	return New(opts...), link, clock
}
