package mqttsn

import (
	"log"
	"time"

	"github.com/golang-io/mqttsn/packet"
)

// headMsgID extracts the message ID an outgoing message used, for the
// types the client waits an acknowledgement for. ok is false for every
// other type: those with no msg_id field (CONNECT, WILLTOPIC, WILLMSG,
// PINGREQ, PINGRESP, SEARCHGW, DISCONNECT) and the client's own PUBACK,
// which is never acknowledged.
func headMsgID(msg packet.Message) (uint16, bool) {
	switch m := msg.(type) {
	case *packet.Register:
		return m.MsgID, true
	case *packet.Publish:
		return m.MsgID, true
	case *packet.Subscribe:
		return m.MsgID, true
	case *packet.Unsubscribe:
		return m.MsgID, true
	default:
		return 0, false
	}
}

// dispatch routes one decoded inbound message by its wire type (spec
// §4.6), explicitly threading the Client rather than reaching for a
// global pointer (spec §9's "single static client pointer" anti-pattern).
func (c *Client) dispatch(sender Addr, msg packet.Message) {
	switch m := msg.(type) {
	case *packet.Publish:
		c.onPublish(sender, m)
	case *packet.PubAck:
		c.onAckLike(packet.PUBACK, m.MsgID, m.ReturnCode)
	case *packet.Register:
		c.onRegister(m)
	case *packet.RegAck:
		c.onRegAck(m)
	case *packet.SubAck:
		c.onSubAck(m)
	case *packet.UnsubAck:
		c.onUnsubAck(m)
	case *packet.PingReq:
		c.onPingReq()
	case *packet.PingResp:
		c.onPingResp()
	case *packet.Advertise:
		c.gw.RecvAdvertise(m.GwID, secondsToDuration(m.Duration), c.clock.Now())
	case *packet.GwInfo:
		c.onGwInfo(sender, m)
	case *packet.Connack:
		c.onConnack(m)
	case *packet.WillTopicReq:
		c.onWillTopicReq()
	case *packet.WillMsgReq:
		c.onWillMsgReq()
	case *packet.Disconnect:
		c.onDisconnect()
	default:
		log.Printf("dispatch: unhandled kind=%s", packet.Kind[msg.Kind()])
	}
}

// secondsToDuration interprets a wire duration field (always seconds in
// MQTT-SN) as a time.Duration.
func secondsToDuration(seconds uint16) time.Duration {
	return time.Duration(seconds) * time.Second
}

func (c *Client) onPublish(sender Addr, m *packet.Publish) {
	if sender.Addr16 != c.gw.addr.Addr16 {
		log.Printf("publish: dropped, sender does not match gateway: addr16=%#04x", sender.Addr16)
		return
	}
	c.topics.ExecCallback(m.TopicID, m.Data.Bytes())
	if m.Flags.QoS() != packet.QoS1 {
		return
	}
	ack := &packet.PubAck{TopicID: m.TopicID, MsgID: m.MsgID, ReturnCode: packet.Accepted}
	if err := c.enqueue(ack); err != nil {
		log.Printf("publish: could not queue auto-PUBACK: error=%v", err)
	}
}

// onAckLike implements the shared PUBACK/REGACK transition rule: accept
// only when head is WaitAck and msg_id matches, then map the return code
// to a queue status. SUBACK gets Request instead of ResendReq on
// congestion (spec §4.6), so it is handled by onSubAck instead of this.
func (c *Client) onAckLike(kind byte, msgID uint16, rc packet.ReturnCode) *entry {
	h := c.queue.head()
	if h == nil || h.status != WaitAck || h.kind != peerRequestKind(kind) {
		return nil
	}
	id, ok := headMsgID(h.msg)
	if !ok || id != msgID {
		return nil
	}
	switch {
	case rc.Accepted():
		h.status = Complete
	case rc.Code == packet.RejectedCongestion.Code:
		h.status = ResendReq
	default:
		h.status = Rejected
	}
	return h
}

// peerRequestKind maps an acknowledgement's wire type to the outgoing
// request kind it acknowledges.
func peerRequestKind(ackKind byte) byte {
	switch ackKind {
	case packet.PUBACK:
		return packet.PUBLISH
	case packet.REGACK:
		return packet.REGISTER
	case packet.SUBACK:
		return packet.SUBSCRIBE
	case packet.UNSUBACK:
		return packet.UNSUBSCRIBE
	default:
		return 0
	}
}

// onRegister handles a gateway-initiated REGISTER: a topic ID the client
// never asked for, assigned unprompted for a name matching one of its
// wildcard subscriptions. If the name has no registry entry yet and a
// wildcard matches, AdoptWildcard clones the wildcard's callback onto a
// newly created owned topic carrying the gateway's ID, synchronously
// before this handler returns (spec §4.2, §5; original
// MqttsClient.cpp:854-868). No REGACK is sent back — the original client
// silently adopts the assignment.
func (c *Client) onRegister(m *packet.Register) {
	name := m.TopicName.String()
	if c.topics.FindByName(name) != nil {
		return
	}
	c.topics.AdoptWildcard(name, m.TopicID)
}

func (c *Client) onRegAck(m *packet.RegAck) {
	h := c.onAckLike(packet.REGACK, m.MsgID, m.ReturnCode)
	if h == nil || !m.ReturnCode.Accepted() {
		return
	}
	if reg, ok := h.msg.(*packet.Register); ok {
		c.topics.SetID(reg.TopicName.String(), m.TopicID)
	}
}

func (c *Client) onSubAck(m *packet.SubAck) {
	h := c.queue.head()
	if h == nil || h.status != WaitAck || h.kind != packet.SUBSCRIBE {
		return
	}
	id, ok := headMsgID(h.msg)
	if !ok || id != m.MsgID {
		return
	}
	switch {
	case m.ReturnCode.Accepted():
		h.status = Complete
		if sub, ok := h.msg.(*packet.Subscribe); ok && sub.Flags.TopicIDType() == packet.TopicIDNormal {
			c.topics.SetID(sub.TopicName.String(), m.TopicID)
		}
	case m.ReturnCode.Code == packet.RejectedCongestion.Code:
		h.status = Request
	default:
		h.status = Rejected
	}
}

func (c *Client) onUnsubAck(m *packet.UnsubAck) {
	h := c.queue.head()
	if h == nil || h.status != WaitAck || h.kind != packet.UNSUBSCRIBE {
		return
	}
	if id, ok := headMsgID(h.msg); !ok || id != m.MsgID {
		return
	}
	h.status = Complete
}

func (c *Client) onPingReq() {
	if err := c.enqueue(&packet.PingResp{}); err != nil {
		log.Printf("pingreq: could not queue PINGRESP: error=%v", err)
	}
}

func (c *Client) onPingResp() {
	c.gw.RestartKeepAlive(c.clock.Now())
	if h := c.queue.head(); h != nil && h.kind == packet.PINGREQ {
		h.status = Complete
	}
}

func (c *Client) onGwInfo(sender Addr, m *packet.GwInfo) {
	c.gw.RecvGwInfo(m.GwID, sender, c.clock.Now())
	if h := c.queue.head(); h != nil && h.kind == packet.SEARCHGW {
		h.status = Complete
	}
}

// onConnack completes the active head on CONNACK. The head at this point
// is whichever of CONNECT, WILLTOPIC or WILLMSG was sent last — the
// gateway only sends CONNACK once, after the whole will handshake (if
// any) finishes, so any will-handshake-family head is eligible, not just
// CONNECT itself (spec §4.6).
func (c *Client) onConnack(m *packet.Connack) {
	if c.opts.QoS != packet.QoS1 {
		return
	}
	h := c.queue.head()
	if h == nil || h.status != WaitAck || !isWillHandshakeKind(h.kind) {
		return
	}
	if m.ReturnCode.Accepted() {
		h.status = Complete
		c.gw.MarkConnected()
		return
	}
	h.status = Rejected
}

// onWillTopicReq retires CONNECT (WILLTOPICREQ is the gateway's implicit
// acknowledgement of it — no separate CONNACK arrives at this point) and
// installs WILLTOPIC as the new sole head, rather than leaving CONNECT
// marked Complete behind it: a Complete entry that isn't the active head
// is never revisited by ExecMsgRequest's Request/ResendReq gate, so it
// would otherwise sit in the queue forever.
func (c *Client) onWillTopicReq() {
	h := c.queue.head()
	if h == nil || h.kind != packet.CONNECT {
		return
	}
	c.queue.popFront()
	flags := packet.NewFlags(false, packet.QoS0, false, false, false, packet.TopicIDNormal, packet.FlagMaskWillTopic)
	wt := &packet.WillTopic{Flags: flags, WillTopic: packet.OwnString(c.opts.WillTopic)}
	if err := c.queue.pushFront(wt); err != nil {
		log.Printf("willtopicreq: could not queue WILLTOPIC: error=%v", err)
	}
}

// onWillMsgReq retires WILLTOPIC the same way onWillTopicReq retires
// CONNECT, and installs WILLMSG as the new sole head.
func (c *Client) onWillMsgReq() {
	h := c.queue.head()
	if h == nil || h.kind != packet.WILLTOPIC {
		return
	}
	c.queue.popFront()
	wm := &packet.WillMsg{WillMsg: packet.OwnString(c.opts.WillMessage)}
	if err := c.queue.pushFront(wm); err != nil {
		log.Printf("willmsgreq: could not queue WILLMSG: error=%v", err)
	}
}

func (c *Client) onDisconnect() {
	if h := c.queue.head(); h != nil {
		h.status = Complete
	}
	c.gw.MarkDisconnected()
}
