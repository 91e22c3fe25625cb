package packet

import "io"

// PubAck acknowledges a QoS-1 PUBLISH.
//
//	body: topic_id:u16, msg_id:u16, rc:u8
type PubAck struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *PubAck) Kind() byte { return PUBACK }

func (m *PubAck) Pack(w io.Writer) error {
	body := make([]byte, 5)
	i2b(body[0:2], m.TopicID)
	i2b(body[2:4], m.MsgID)
	body[4] = m.ReturnCode.Code
	return packFrame(w, PUBACK, body)
}

func (m *PubAck) Unpack(body []byte) error {
	if len(body) < 5 {
		return NewDecodeError("PUBACK: body too short")
	}
	m.TopicID = b2i(body[0:2])
	m.MsgID = b2i(body[2:4])
	m.ReturnCode = ReturnCodeFromByte(body[4])
	return nil
}
