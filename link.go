package mqttsn

import "time"

// Addr is a gateway's link-layer address pair, as used on an
// 802.15.4/ZigBee network: a 64-bit long address and a 16-bit short
// address assigned by the coordinator.
type Addr struct {
	Addr64 uint64
	Addr16 uint16
}

// Frame is one inbound datagram as delivered by the link layer: the raw
// MQTT-SN wire bytes plus the sender's address, needed both to validate
// that a PUBLISH came from the current gateway and to learn a new
// gateway's address from GWINFO.
type Frame struct {
	Sender  Addr
	Payload []byte
}

// Link is the narrow transport collaborator this client depends on. It is
// out of scope per spec.md §1: a real implementation wraps a serial or
// 802.15.4 radio; tests supply an in-memory fake and cmd/mqttsn-node a
// loopback stand-in.
type Link interface {
	// SendUnicast transmits buf to addr.
	SendUnicast(addr Addr, buf []byte) error
	// SendBroadcast transmits buf to all gateways within radius hops.
	SendBroadcast(buf []byte, radius uint8) error
	// PollIncoming blocks for at most deadline waiting for one inbound
	// frame. A zero Frame and nil error means the deadline elapsed with
	// nothing received.
	PollIncoming(deadline time.Duration) (Frame, error)
}

// Clock is the narrow time collaborator. Production code uses
// RealClock; tests use a fake to make timer-expiry scenarios
// deterministic.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
