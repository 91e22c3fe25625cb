// Package mqttsn implements an MQTT-SN v1.2 client for resource-constrained
// nodes talking to a single gateway over a datagram link, with cooperative
// (single-threaded) execution driven by the Run/RunConnect/RunLoop family.
package mqttsn

import (
	"log"

	"github.com/golang-io/mqttsn/packet"
	"github.com/golang-io/mqttsn/topic"
)

// Client is the session driver: it owns the send queue, the gateway
// record, and the topic registry, and exposes the public API from
// spec.md §6. Every public method only enqueues work; transmission and
// state transitions happen inside Run/RunConnect/RunLoop, driven
// cooperatively from a single goroutine (spec §5) — there is no internal
// locking because there is no internal concurrency.
type Client struct {
	opts Options

	link  Link
	clock Clock

	gw     *gateway
	queue  *sendQueue
	topics *topic.Table

	msgID uint16

	stat *Stat
}

// New builds a Client from functional options. Panics if no Link was
// supplied via WithLink — a constrained-node client has no usable default
// transport.
func New(opts ...Option) *Client {
	o := newOptions(opts...)
	if o.Link == nil {
		panic("mqttsn: New requires WithLink(...)")
	}
	c := &Client{
		opts:   o,
		link:   o.Link,
		clock:  o.Clock,
		gw:     newGateway(o.KeepAlive),
		queue:  newSendQueue(o.QueueCapacity),
		topics: topic.NewTable(topic.DefaultGrowBy),
		stat:   newStat(),
	}
	log.Printf("new: clientId=%s, keepAlive=%s, retryMax=%d", o.ClientID, o.KeepAlive, o.RetryMax)
	return c
}

// nextMsgID allocates the next outgoing message ID: a 16-bit counter that
// increments before use and wraps past 0xFFFF back to 1, never 0 (spec
// §4.6 "Message IDs").
func (c *Client) nextMsgID() uint16 {
	c.msgID++
	if c.msgID == 0 {
		c.msgID = 1
	}
	return c.msgID
}

// GatewayState reports the current gateway lifecycle state.
func (c *Client) GatewayState() GatewayState { return c.gw.status }

// QueueLen reports the number of entries currently queued.
func (c *Client) QueueLen() int { return c.queue.Len() }

// enqueue appends msg to the tail of the send queue.
func (c *Client) enqueue(msg packet.Message) error {
	if err := c.queue.push(msg); err != nil {
		log.Printf("enqueue: kind=%s, error=%v", packet.Kind[msg.Kind()], err)
		return err
	}
	return nil
}

// CreateTopic registers name locally with cb, without any wire traffic.
// Use RegisterTopic afterward to learn a numeric ID from the gateway.
func (c *Client) CreateTopic(name string, cb topic.Callback) {
	t := c.topics.Add(packet.OwnString(name))
	t.Callback = cb
}

// RegisterTopic sends REGISTER for name, to learn its numeric ID via
// REGACK. name is created via CreateTopic if it doesn't exist yet.
func (c *Client) RegisterTopic(name string) error {
	c.topics.Add(packet.OwnString(name))
	msg := &packet.Register{
		TopicID:   0,
		MsgID:     c.nextMsgID(),
		TopicName: packet.OwnString(name),
	}
	return c.enqueue(msg)
}

// PublishName publishes data to the registered topic name. Fails with
// ErrNoTopicID if name has no assigned ID yet (publish-by-name requires a
// prior successful RegisterTopic).
func (c *Client) PublishName(name string, data []byte) error {
	t := c.topics.FindByName(name)
	if t == nil || t.ID == 0 {
		return ErrNoTopicID
	}
	return c.publish(t.ID, packet.TopicIDNormal, data)
}

// PublishID publishes data to a predefined topic ID known to both client
// and gateway without a REGISTER exchange.
func (c *Client) PublishID(id uint16, data []byte) error {
	return c.publish(id, packet.TopicIDPredefined, data)
}

// PublishShort publishes data to a 2-character short topic name, packed
// into the topic ID field per spec §4.1.
func (c *Client) PublishShort(name string, data []byte) error {
	if len(name) != 2 {
		return newErr(KindNoTopicID, "short topic name must be exactly 2 characters")
	}
	id := uint16(name[0])<<8 | uint16(name[1])
	return c.publish(id, packet.TopicIDShort, data)
}

func (c *Client) publish(topicID uint16, idType packet.TopicIDType, data []byte) error {
	flags := packet.NewFlags(false, c.opts.QoS, c.opts.Retain, false, false, idType, packet.FlagMaskPublish)
	msg := &packet.Publish{
		Flags:   flags,
		TopicID: topicID,
		MsgID:   c.nextMsgID(),
		Data:    packet.Own(data),
	}
	return c.enqueue(msg)
}

// SubscribeName subscribes to a topic name (which may be a wildcard
// pattern), invoking cb for matching inbound PUBLISH payloads.
func (c *Client) SubscribeName(name string, cb topic.Callback) error {
	t := c.topics.Add(packet.OwnString(name))
	t.Callback = cb
	flags := packet.NewFlags(false, c.opts.QoS, false, false, false, packet.TopicIDNormal, packet.FlagMaskSubscribe)
	msg := &packet.Subscribe{
		Flags:     flags,
		MsgID:     c.nextMsgID(),
		TopicName: packet.OwnString(name),
	}
	return c.enqueue(msg)
}

// SubscribeID subscribes to a predefined topic ID.
func (c *Client) SubscribeID(id uint16, cb topic.Callback) error {
	flags := packet.NewFlags(false, c.opts.QoS, false, false, false, packet.TopicIDPredefined, packet.FlagMaskSubscribe)
	msg := &packet.Subscribe{Flags: flags, MsgID: c.nextMsgID(), TopicID: id}
	err := c.enqueue(msg)
	if err == nil {
		if t := c.topics.FindByID(id); t != nil {
			t.Callback = cb
		}
	}
	return err
}

// UnsubscribeName cancels a prior name subscription.
func (c *Client) UnsubscribeName(name string) error {
	flags := packet.NewFlags(false, packet.QoS0, false, false, false, packet.TopicIDNormal, packet.FlagMaskUnsubscribe)
	msg := &packet.Unsubscribe{Flags: flags, MsgID: c.nextMsgID(), TopicName: packet.OwnString(name)}
	return c.enqueue(msg)
}

// UnsubscribeID cancels a prior predefined-ID subscription.
func (c *Client) UnsubscribeID(id uint16) error {
	flags := packet.NewFlags(false, packet.QoS0, false, false, false, packet.TopicIDPredefined, packet.FlagMaskUnsubscribe)
	msg := &packet.Unsubscribe{Flags: flags, MsgID: c.nextMsgID(), TopicID: id}
	return c.enqueue(msg)
}

// Connect enqueues CONNECT. If a will topic is configured, the dispatcher
// interleaves the WILLTOPIC/WILLMSG sub-handshake once the gateway asks
// for it via WILLTOPICREQ/WILLMSGREQ (spec §4.6).
func (c *Client) Connect() error {
	flags := packet.NewFlags(false, packet.QoS0, false, c.opts.WillTopic != "", c.opts.Clean, packet.TopicIDNormal, packet.FlagMaskConnect)
	msg := &packet.Connect{
		Flags:      flags,
		ProtocolID: packet.ProtocolID01,
		Duration:   uint16(c.opts.KeepAlive.Seconds()),
		ClientID:   packet.OwnString(c.opts.ClientID),
	}
	return c.enqueue(msg)
}

// Disconnect enqueues DISCONNECT. durationSeconds > 0 requests the
// gateway buffer messages for a sleeping client for that long; 0 means a
// plain disconnect.
func (c *Client) Disconnect(durationSeconds uint16) error {
	msg := &packet.Disconnect{HasDuration: durationSeconds > 0, Duration: durationSeconds}
	return c.enqueue(msg)
}

// PingReq enqueues an explicit PINGREQ, outside the automatic keep-alive
// scheduling in ExecMsgRequest.
func (c *Client) PingReq() error {
	return c.enqueue(&packet.PingReq{ClientID: packet.OwnString(c.opts.ClientID)})
}
