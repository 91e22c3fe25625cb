package packet

import "io"

// RegAck acknowledges a REGISTER, carrying the assigned topic ID.
//
//	body: topic_id:u16, msg_id:u16, rc:u8
type RegAck struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *RegAck) Kind() byte { return REGACK }

func (m *RegAck) Pack(w io.Writer) error {
	body := make([]byte, 5)
	i2b(body[0:2], m.TopicID)
	i2b(body[2:4], m.MsgID)
	body[4] = m.ReturnCode.Code
	return packFrame(w, REGACK, body)
}

func (m *RegAck) Unpack(body []byte) error {
	if len(body) < 5 {
		return NewDecodeError("REGACK: body too short")
	}
	m.TopicID = b2i(body[0:2])
	m.MsgID = b2i(body[2:4])
	m.ReturnCode = ReturnCodeFromByte(body[4])
	return nil
}
