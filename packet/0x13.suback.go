package packet

import "io"

// SubAck acknowledges a SUBSCRIBE, carrying the topic ID the gateway
// assigned (meaningful only when the SUBSCRIBE addressed by name).
//
//	body: flags:u8, topic_id:u16, msg_id:u16, rc:u8
//
// The reference implementation this client is modeled on reads the return
// code from the wrong offset (5 instead of 6, counting from the type
// byte); this codec uses the layout above, which places rc after flags,
// topic_id and msg_id (body offset 5, frame offset 7).
type SubAck struct {
	Flags      Flags
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *SubAck) Kind() byte { return SUBACK }

func (m *SubAck) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskSuback
	body := make([]byte, 6)
	body[0] = flags
	i2b(body[1:3], m.TopicID)
	i2b(body[3:5], m.MsgID)
	body[5] = m.ReturnCode.Code
	return packFrame(w, SUBACK, body)
}

func (m *SubAck) Unpack(body []byte) error {
	if len(body) < 6 {
		return NewDecodeError("SUBACK: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskSuback)
	m.TopicID = b2i(body[1:3])
	m.MsgID = b2i(body[3:5])
	m.ReturnCode = ReturnCodeFromByte(body[5])
	return nil
}
