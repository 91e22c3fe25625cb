package mqttsn

import (
	"time"

	"github.com/golang-io/mqttsn/packet"
	"github.com/golang-io/requests"
)

// Default values for the constants spec.md §6 names.
const (
	DefaultKeepAlive     = 60 * time.Second
	DefaultResponseTimeout = 10 * time.Second // T_RESPONSE
	DefaultSearchGwJitter  = 5 * time.Second  // T_SEARCHGW
	DefaultRetryMax        = 3
	DefaultQueueCapacity   = 5
	DefaultSearchRadius    = 2
)

// Options holds a client's session configuration, assembled by functional
// options the same way the teacher's options.go builds its Options.
type Options struct {
	ClientID string
	Link     Link
	Clock    Clock

	KeepAlive       time.Duration
	ResponseTimeout time.Duration
	SearchGwJitter  time.Duration
	RetryMax        int
	QueueCapacity   int

	QoS     packet.QoS
	Retain  bool
	Clean   bool
	WillTopic   string
	WillMessage string
}

type Option func(*Options)

func newOptions(opts ...Option) Options {
	options := Options{
		ClientID:        "mqttsn-" + requests.GenId(),
		Clock:           RealClock{},
		KeepAlive:       DefaultKeepAlive,
		ResponseTimeout: DefaultResponseTimeout,
		SearchGwJitter:  DefaultSearchGwJitter,
		RetryMax:        DefaultRetryMax,
		QueueCapacity:   DefaultQueueCapacity,
		QoS:             packet.QoS0,
		Clean:           false,
	}
	for _, o := range opts {
		o(&options)
	}
	return options
}

// ClientID sets the client identifier sent in CONNECT.
func ClientID(id string) Option {
	return func(o *Options) { o.ClientID = id }
}

// WithLink supplies the link-layer collaborator. Required — New panics
// without one, since there is no usable default transport for a
// constrained-node client.
func WithLink(l Link) Option {
	return func(o *Options) { o.Link = l }
}

// WithClock overrides the clock, for deterministic tests.
func WithClock(c Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// KeepAlive sets the keep-alive interval advertised in CONNECT and used
// to schedule PINGREQ.
func KeepAlive(d time.Duration) Option {
	return func(o *Options) { o.KeepAlive = d }
}

// ResponseTimeout sets T_RESPONSE, the per-attempt ack wait in unicast/broadcast.
func ResponseTimeout(d time.Duration) Option {
	return func(o *Options) { o.ResponseTimeout = d }
}

// SearchGwJitter sets T_SEARCHGW, the jitter ceiling before a SEARCHGW broadcast.
func SearchGwJitter(d time.Duration) Option {
	return func(o *Options) { o.SearchGwJitter = d }
}

// RetryMax sets the maximum unicast/broadcast retry count.
func RetryMax(n int) Option {
	return func(o *Options) { o.RetryMax = n }
}

// QueueCapacity sets the send queue's bounded capacity.
func QueueCapacity(n int) Option {
	return func(o *Options) { o.QueueCapacity = n }
}

// SetQoS sets the default publish QoS (0 or 1; QoS 2 is a Non-goal).
func SetQoS(q packet.QoS) Option {
	return func(o *Options) { o.QoS = q }
}

// SetRetain sets the default RETAIN flag for publishes.
func SetRetain(retain bool) Option {
	return func(o *Options) { o.Retain = retain }
}

// SetClean sets the CleanSession flag sent in CONNECT.
func SetClean(clean bool) Option {
	return func(o *Options) { o.Clean = clean }
}

// SetWillTopic sets the topic the gateway publishes to on this client's
// behalf if it disconnects uncleanly. Setting a will topic drives the
// CONNECT WILL flag and the WILLTOPIC/WILLMSG sub-handshake.
func SetWillTopic(topic string) Option {
	return func(o *Options) { o.WillTopic = topic }
}

// SetWillMessage sets the payload published for SetWillTopic.
func SetWillMessage(msg string) Option {
	return func(o *Options) { o.WillMessage = msg }
}
