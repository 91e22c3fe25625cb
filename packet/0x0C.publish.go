package packet

import "io"

// Publish carries application data addressed by topic ID (or, with
// TopicIDType short, a 2-character name packed into the same field).
//
//	body: flags:u8, topic_id:u16, msg_id:u16, data:bytes-to-end
type Publish struct {
	Flags   Flags
	TopicID uint16
	MsgID   uint16
	Data    MqString
}

func (m *Publish) Kind() byte { return PUBLISH }

func (m *Publish) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskPublish
	body := make([]byte, 5, 5+m.Data.Len())
	body[0] = flags
	i2b(body[1:3], m.TopicID)
	i2b(body[3:5], m.MsgID)
	body = append(body, m.Data.Bytes()...)
	return packFrame(w, PUBLISH, body)
}

func (m *Publish) Unpack(body []byte) error {
	if len(body) < 5 {
		return NewDecodeError("PUBLISH: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskPublish)
	m.TopicID = b2i(body[1:3])
	m.MsgID = b2i(body[3:5])
	m.Data = Borrow(body[5:])
	return nil
}
