package packet

import "io"

// Register asks the gateway to assign a numeric topic ID to topic_name,
// or (gateway to client) informs the client of an ID the gateway has
// assigned unprompted.
//
//	body: topic_id:u16, msg_id:u16, topic_name:bytes-to-end
type Register struct {
	TopicID   uint16
	MsgID     uint16
	TopicName MqString
}

func (m *Register) Kind() byte { return REGISTER }

func (m *Register) Pack(w io.Writer) error {
	body := make([]byte, 4, 4+m.TopicName.Len())
	i2b(body[0:2], m.TopicID)
	i2b(body[2:4], m.MsgID)
	body = append(body, m.TopicName.Bytes()...)
	return packFrame(w, REGISTER, body)
}

func (m *Register) Unpack(body []byte) error {
	if len(body) < 4 {
		return NewDecodeError("REGISTER: body too short")
	}
	m.TopicID = b2i(body[0:2])
	m.MsgID = b2i(body[2:4])
	m.TopicName = Borrow(body[4:])
	return nil
}
