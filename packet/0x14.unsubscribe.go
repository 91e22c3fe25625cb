package packet

import "io"

// Unsubscribe cancels a prior subscription, addressed the same way as
// SUBSCRIBE.
//
//	body: flags:u8, msg_id:u16, {topic_id:u16 | topic_name:bytes-to-end}
type Unsubscribe struct {
	Flags     Flags
	MsgID     uint16
	TopicID   uint16
	TopicName MqString
}

func (m *Unsubscribe) Kind() byte { return UNSUBSCRIBE }

func (m *Unsubscribe) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskUnsubscribe
	body := make([]byte, 3, 5+m.TopicName.Len())
	body[0] = flags
	i2b(body[1:3], m.MsgID)
	if Flags(flags).TopicIDType() == TopicIDNormal {
		body = append(body, m.TopicName.Bytes()...)
	} else {
		body = appendU16(body, m.TopicID)
	}
	return packFrame(w, UNSUBSCRIBE, body)
}

func (m *Unsubscribe) Unpack(body []byte) error {
	if len(body) < 3 {
		return NewDecodeError("UNSUBSCRIBE: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskUnsubscribe)
	m.MsgID = b2i(body[1:3])
	if m.Flags.TopicIDType() == TopicIDNormal {
		m.TopicName = Borrow(body[3:])
	} else {
		if len(body) < 5 {
			return NewDecodeError("UNSUBSCRIBE: body too short for topic ID")
		}
		m.TopicID = b2i(body[3:5])
	}
	return nil
}
