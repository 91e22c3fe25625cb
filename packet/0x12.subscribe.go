package packet

import "io"

// Subscribe requests delivery of a topic, addressed either by name (normal
// topic ID type) or by a 2-byte ID (predefined or short-name types).
//
//	body: flags:u8, msg_id:u16, {topic_id:u16 | topic_name:bytes-to-end}
type Subscribe struct {
	Flags     Flags
	MsgID     uint16
	TopicID   uint16   // valid when Flags.TopicIDType() != TopicIDNormal
	TopicName MqString // valid when Flags.TopicIDType() == TopicIDNormal
}

func (m *Subscribe) Kind() byte { return SUBSCRIBE }

func (m *Subscribe) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskSubscribe
	body := make([]byte, 3, 5+m.TopicName.Len())
	body[0] = flags
	i2b(body[1:3], m.MsgID)
	if Flags(flags).TopicIDType() == TopicIDNormal {
		body = append(body, m.TopicName.Bytes()...)
	} else {
		body = appendU16(body, m.TopicID)
	}
	return packFrame(w, SUBSCRIBE, body)
}

func (m *Subscribe) Unpack(body []byte) error {
	if len(body) < 3 {
		return NewDecodeError("SUBSCRIBE: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskSubscribe)
	m.MsgID = b2i(body[1:3])
	if m.Flags.TopicIDType() == TopicIDNormal {
		m.TopicName = Borrow(body[3:])
	} else {
		if len(body) < 5 {
			return NewDecodeError("SUBSCRIBE: body too short for topic ID")
		}
		m.TopicID = b2i(body[3:5])
	}
	return nil
}
