package mqttsn

import "time"

// GatewayState enumerates the gateway record's lifecycle (spec §4.4).
type GatewayState int

const (
	Init GatewayState = iota
	Searching
	Found
	Connected
	Disconnected
	Lost
)

func (s GatewayState) String() string {
	switch s {
	case Init:
		return "Init"
	case Searching:
		return "Searching"
	case Found:
		return "Found"
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// gateway tracks the single gateway this client talks to: its address,
// lifecycle state, and the two timers (keep-alive, advertise) that drive
// transitions into Lost. Grounded on MqttsClient.cpp's GatewayHandller,
// with the original's side-effecting isLost() query split into a pure
// IsLost() plus an explicit CheckTimers() step — see DESIGN.md Open
// Question 1.
type gateway struct {
	id     uint8
	addr   Addr
	status GatewayState

	keepAliveDuration time.Duration
	keepAliveAt       time.Time

	advertiseDuration time.Duration
	advertiseAt       time.Time
	advertiseStarted  bool
}

func newGateway(keepAlive time.Duration) *gateway {
	return &gateway{status: Init, keepAliveDuration: keepAlive}
}

// IsConnected, IsDisconnected, IsSearching, IsFound, IsInit are pure
// status queries.
func (g *gateway) IsConnected() bool    { return g.status == Connected }
func (g *gateway) IsDisconnected() bool { return g.status == Disconnected }
func (g *gateway) IsSearching() bool    { return g.status == Searching }
func (g *gateway) IsFound() bool        { return g.status == Found }
func (g *gateway) IsInit() bool         { return g.status == Init }
func (g *gateway) IsLost() bool         { return g.status == Lost }

// IsPingRequired reports whether a keep-alive PINGREQ is due: connected,
// and the keep-alive timer has run past its duration.
func (g *gateway) IsPingRequired(now time.Time) bool {
	if !g.IsConnected() {
		return false
	}
	return now.Sub(g.keepAliveAt) >= g.keepAliveDuration
}

// CheckTimers performs the one state mutation the original coupled into
// isLost()'s query: if the advertise timer has been started and has run
// past its duration, the gateway is demoted to Lost. Called once per
// ExecMsgRequest iteration, before any status-dependent branching.
func (g *gateway) CheckTimers(now time.Time) {
	if g.status == Lost || g.status == Init {
		return
	}
	if g.advertiseStarted && now.Sub(g.advertiseAt) >= g.advertiseDuration {
		g.status = Lost
	}
}

// RestartKeepAlive restarts the keep-alive timer; called after every
// successful unicast send (spec §4.4).
func (g *gateway) RestartKeepAlive(now time.Time) {
	g.keepAliveAt = now
}

// MarkConnected transitions to Connected: reached either from the retry
// engine's QoS-0 unicast shortcut or from a CONNACK dispatched with
// rc=Accepted under QoS 1 (spec §4.5/§4.6).
func (g *gateway) MarkConnected() { g.status = Connected }

// MarkDisconnected transitions to Disconnected, on a received DISCONNECT.
func (g *gateway) MarkDisconnected() { g.status = Disconnected }

// MarkLost transitions to Lost, on an unanswered keep-alive ping.
func (g *gateway) MarkLost() { g.status = Lost }

// MarkSearching transitions to Searching, when SEARCHGW is (re)enqueued.
func (g *gateway) MarkSearching() { g.status = Searching }

// RecvAdvertise restarts the advertise timer at 1.5x the advertised
// duration, but only when it names the gateway this client already
// knows about — an ADVERTISE from an unknown gw_id cannot usefully be
// acted on since gateway discovery is GWINFO's job (spec §4.4/§4.6).
func (g *gateway) RecvAdvertise(gwID uint8, duration time.Duration, now time.Time) {
	if g.status == Init || g.status == Searching {
		return
	}
	if gwID != g.id {
		return
	}
	g.advertiseDuration = duration + duration/2
	g.advertiseAt = now
	g.advertiseStarted = true
}

// RecvGwInfo accepts a gateway announcement only while Lost, Init, or
// Searching (spec §4.4); records the sender's address and transitions to
// Found. Returns whether it was accepted.
func (g *gateway) RecvGwInfo(gwID uint8, addr Addr, now time.Time) bool {
	switch g.status {
	case Lost, Init, Searching:
	default:
		return false
	}
	g.id = gwID
	g.addr = addr
	g.status = Found
	g.advertiseStarted = false
	return true
}
