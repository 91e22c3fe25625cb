package mqttsn

import (
	"bytes"
	"log"
	"math/rand"
	"time"

	"github.com/golang-io/mqttsn/packet"
)

// encode packs msg into its complete wire frame.
func encode(msg packet.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := msg.Pack(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unicastDone reports whether the head entry should be treated as
// complete without necessarily having seen Complete set by the
// dispatcher: a QoS-0 message (other than PINGREQ, which always needs its
// PINGRESP) needs no acknowledgement, and a PUBACK the client itself sent
// (auto-ack of an inbound QoS-1 PUBLISH) never gets acked back (spec
// §4.5 step 3).
func (c *Client) unicastDone(e *entry) bool {
	if e.status == Complete {
		return true
	}
	if e.kind == packet.PUBACK {
		return true
	}
	return c.opts.QoS == packet.QoS0 && e.kind != packet.PINGREQ
}

// broadcastDone is unicastDone's broadcast counterpart: QoS-0 completes
// immediately unless the head is SEARCHGW, which always waits for GWINFO
// (spec §4.5 "broadcast").
func (c *Client) broadcastDone(e *entry) bool {
	if e.status == Complete {
		return true
	}
	return c.opts.QoS == packet.QoS0 && e.kind != packet.SEARCHGW
}

// pollAndDispatch polls the link for at most remaining and, if a frame
// arrived, decodes and dispatches it. Decode errors are logged and
// dropped — they never abort the client (spec §7).
func (c *Client) pollAndDispatch(remaining time.Duration) {
	frame, err := c.link.PollIncoming(remaining)
	if err != nil || frame.Payload == nil {
		return
	}
	msg, err := packet.Decode(frame.Payload)
	if err != nil {
		c.stat.BytesReceived.Add(float64(len(frame.Payload)))
		c.stat.recordDecodeError()
		log.Printf("decode: error=%v", err)
		return
	}
	c.stat.recordReceived(msg.Kind(), len(frame.Payload))
	c.dispatch(frame.Sender, msg)
}

// transmit encodes msg (the queue head's message) and hands it to send,
// recording stats and logging; it returns any encode or send error.
func (c *Client) transmit(send func(buf []byte) error, kind byte, msg packet.Message) error {
	buf, err := encode(msg)
	if err != nil {
		log.Printf("encode: kind=%s, error=%v", packet.Kind[kind], err)
		return err
	}
	if err := send(buf); err != nil {
		log.Printf("send: kind=%s, error=%v", packet.Kind[kind], err)
		return err
	}
	c.stat.recordSent(kind, len(buf))
	return nil
}

// unicast drives the head entry through up to RetryMax unicast attempts,
// polling for inbound frames between retransmits (spec §4.5 "unicast").
func (c *Client) unicast(timeout time.Duration) error {
	for attempt := 0; attempt < c.opts.RetryMax; attempt++ {
		h, ok := c.queue.get(0)
		if !ok {
			return nil
		}
		if err := c.transmit(func(buf []byte) error { return c.link.SendUnicast(c.gw.addr, buf) }, h.kind, h.msg); err != nil {
			return err
		}
		if c.unicastDone(h) {
			c.queue.popFront()
			c.gw.RestartKeepAlive(c.clock.Now())
			return nil
		}
		h.status = WaitAck

		deadline := c.clock.Now().Add(timeout)
		rejected := false
		completed := false
		for c.clock.Now().Before(deadline) {
			c.pollAndDispatch(deadline.Sub(c.clock.Now()))

			h, ok = c.queue.get(0)
			if !ok {
				c.gw.RestartKeepAlive(c.clock.Now())
				return nil
			}
			if c.unicastDone(h) {
				completed = true
				break
			}
			switch h.status {
			case Rejected:
				rejected = true
			case Request:
				h.status = WaitAck
			case ResendReq:
				if err := c.transmit(func(buf []byte) error { return c.link.SendUnicast(c.gw.addr, buf) }, h.kind, h.msg); err != nil {
					return err
				}
				h.status = WaitAck
			}
			if rejected {
				break
			}
		}

		if rejected {
			c.queue.popFront()
			return ErrRejected
		}
		if completed {
			c.queue.popFront()
			c.gw.RestartKeepAlive(c.clock.Now())
			return nil
		}

		h, ok = c.queue.get(0)
		if !ok {
			return nil
		}
		h.status = Request
		h.retries++
		c.stat.recordRetry()
	}
	return ErrRetryOver
}

// broadcast is unicast's broadcast counterpart, used only for SEARCHGW.
func (c *Client) broadcast(timeout time.Duration) error {
	for attempt := 0; attempt < c.opts.RetryMax; attempt++ {
		h, ok := c.queue.get(0)
		if !ok {
			return nil
		}
		radius := uint8(DefaultSearchRadius)
		if sg, ok := h.msg.(*packet.SearchGW); ok {
			radius = sg.Radius
		}
		if err := c.transmit(func(buf []byte) error { return c.link.SendBroadcast(buf, radius) }, h.kind, h.msg); err != nil {
			return err
		}
		if c.broadcastDone(h) {
			c.queue.popFront()
			return nil
		}
		h.status = WaitAck

		deadline := c.clock.Now().Add(timeout)
		completed := false
		for c.clock.Now().Before(deadline) {
			c.pollAndDispatch(deadline.Sub(c.clock.Now()))
			h, ok = c.queue.get(0)
			if !ok {
				return nil
			}
			if c.broadcastDone(h) {
				completed = true
				break
			}
		}
		if completed {
			c.queue.popFront()
			return nil
		}

		h, ok = c.queue.get(0)
		if !ok {
			return nil
		}
		h.status = Request
		h.retries++
		c.stat.recordRetry()
	}
	return ErrRetryOver
}

// searchJitter sleeps a uniform random delay in [0, SearchGwJitter), the
// MQTT-SN spec's collision-avoidance jitter before a SEARCHGW broadcast.
func (c *Client) searchJitter() {
	if c.opts.SearchGwJitter <= 0 {
		return
	}
	d := time.Duration(rand.Int63n(int64(c.opts.SearchGwJitter)))
	time.Sleep(d)
}

// ExecMsgRequest is the single main-step function every run mode drives
// (spec §4.5 "Main step"). It checks gateway timers once, then either
// advances the active head request or, with no active request, services
// the keep-alive ping and polls one inbound frame.
func (c *Client) ExecMsgRequest() error {
	now := c.clock.Now()
	c.gw.CheckTimers(now)
	c.stat.setGatewayState(c.gw.status)
	c.stat.setQueueDepth(c.queue.Len())

	h := c.queue.head()
	if h != nil && (h.status == Request || h.status == ResendReq) {
		switch {
		case c.gw.IsLost() || c.gw.IsInit():
			if err := c.queue.pushFront(&packet.SearchGW{Radius: DefaultSearchRadius}); err != nil {
				return err
			}
			c.gw.MarkSearching()
			return nil

		case c.gw.IsSearching() && h.kind == packet.SEARCHGW:
			c.searchJitter()
			return c.broadcast(c.opts.ResponseTimeout)

		case (c.gw.IsDisconnected() || c.gw.IsFound()) && isWillHandshakeKind(h.kind):
			err := c.unicast(c.opts.ResponseTimeout)
			if err == nil && c.opts.QoS == packet.QoS0 && h.kind == packet.CONNECT {
				c.gw.MarkConnected()
			}
			return err

		case c.gw.IsConnected():
			return c.unicast(c.opts.ResponseTimeout)

		default:
			return ErrNotConnected
		}
	}

	if c.gw.IsPingRequired(now) {
		if err := c.queue.pushFront(&packet.PingReq{ClientID: packet.OwnString(c.opts.ClientID)}); err != nil {
			return err
		}
		err := c.unicast(c.opts.ResponseTimeout)
		if err == ErrRetryOver {
			c.gw.MarkLost()
			return ErrPingRespTimeout
		}
		return err
	}

	c.pollAndDispatch(c.opts.ResponseTimeout)
	return nil
}

func isWillHandshakeKind(kind byte) bool {
	return kind == packet.CONNECT || kind == packet.WILLTOPIC || kind == packet.WILLMSG
}

// Run steps until either a step errors or the send queue has drained
// (spec §4.5 "run()").
func (c *Client) Run() error {
	for {
		if err := c.ExecMsgRequest(); err != nil {
			return err
		}
		if c.queue.Len() == 0 {
			return nil
		}
	}
}

// RunConnect steps until the gateway reaches Connected. A step error
// drops the head unless it is still the SEARCHGW discovery attempt,
// which is retried rather than abandoned.
func (c *Client) RunConnect() error {
	for !c.gw.IsConnected() {
		err := c.ExecMsgRequest()
		if err != nil {
			h := c.queue.head()
			if h != nil && h.kind != packet.SEARCHGW {
				c.queue.popFront()
			}
			if err != ErrNotConnected && err != ErrRetryOver && err != ErrRejected && err != ErrPingRespTimeout {
				return err
			}
		}
	}
	return nil
}

// RunLoop steps forever (the steady-state client loop), dropping any head
// that fails but is no longer in Request state so the queue can't wedge.
func (c *Client) RunLoop() error {
	for {
		err := c.ExecMsgRequest()
		if err != nil {
			h := c.queue.head()
			if h != nil && h.status != Request {
				c.queue.popFront()
			}
			log.Printf("runloop: error=%v, gatewayState=%s, queueLen=%d", err, c.gw.status, c.queue.Len())
		}
	}
}
