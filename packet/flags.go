package packet

// Flags is the shared MQTT-SN flag byte layout. Bit meaning is constant
// across message types; which bits are meaningful (and must be zero
// otherwise) varies per type via the FlagMask* constants below.
//
//	bit 7:   DUP
//	bits 6-5: QoS (00=0, 01=1, 10=2, 11=-1)
//	bit 4:   RETAIN
//	bit 3:   WILL
//	bit 2:   CLEANSESSION
//	bits 1-0: TopicIdType (00=normal, 01=predefined, 10=short name)
type Flags byte

const (
	flagDUP          = 1 << 7
	flagQoSMask      = 0x60
	flagQoSShift     = 5
	flagRETAIN       = 1 << 4
	flagWILL         = 1 << 3
	flagCLEANSESSION = 1 << 2
	flagTopicIDMask  = 0x03
)

// Per-type permitted-flag masks (spec §4.1). Bits outside the mask must be
// zeroed on encode.
const (
	FlagMaskConnect     = 0x0C
	FlagMaskWillTopic   = 0x70
	FlagMaskSubscribe   = 0xE3
	FlagMaskUnsubscribe = 0xE3
	FlagMaskPublish     = 0xF3
	FlagMaskSuback      = 0x60
)

// QoS levels. QoSMinus1 means "publish without connecting" (predefined
// topic ID, no CONNECT/REGISTER exchange).
type QoS int8

const (
	QoS0     QoS = 0
	QoS1     QoS = 1
	QoS2     QoS = 2
	QoSMinus1 QoS = -1
)

func qosToBits(q QoS) byte {
	switch q {
	case QoS0:
		return 0x00
	case QoS1:
		return 0x01 << flagQoSShift
	case QoS2:
		return 0x02 << flagQoSShift
	case QoSMinus1:
		return 0x03 << flagQoSShift
	default:
		return 0x00
	}
}

func bitsToQoS(b byte) QoS {
	switch (b & flagQoSMask) >> flagQoSShift {
	case 0x00:
		return QoS0
	case 0x01:
		return QoS1
	case 0x02:
		return QoS2
	default:
		return QoSMinus1
	}
}

// TopicIDType distinguishes how a topic is addressed on the wire.
type TopicIDType byte

const (
	TopicIDNormal     TopicIDType = 0x00
	TopicIDPredefined TopicIDType = 0x01
	TopicIDShort      TopicIDType = 0x02
)

func (f Flags) DUP() bool   { return byte(f)&flagDUP != 0 }
func (f Flags) QoS() QoS    { return bitsToQoS(byte(f)) }
func (f Flags) Retain() bool { return byte(f)&flagRETAIN != 0 }
func (f Flags) Will() bool  { return byte(f)&flagWILL != 0 }
func (f Flags) CleanSession() bool { return byte(f)&flagCLEANSESSION != 0 }
func (f Flags) TopicIDType() TopicIDType { return TopicIDType(byte(f) & flagTopicIDMask) }

// NewFlags builds a flag byte from its components, masking to mask.
func NewFlags(dup bool, qos QoS, retain, will, clean bool, idType TopicIDType, mask byte) Flags {
	var b byte
	if dup {
		b |= flagDUP
	}
	b |= qosToBits(qos)
	if retain {
		b |= flagRETAIN
	}
	if will {
		b |= flagWILL
	}
	if clean {
		b |= flagCLEANSESSION
	}
	b |= byte(idType) & flagTopicIDMask
	return Flags(b & mask)
}
