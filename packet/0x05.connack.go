package packet

import "io"

// Connack acknowledges a CONNECT.
//
//	body: return_code:u8
type Connack struct {
	ReturnCode ReturnCode
}

func (m *Connack) Kind() byte { return CONNACK }

func (m *Connack) Pack(w io.Writer) error {
	return packFrame(w, CONNACK, []byte{m.ReturnCode.Code})
}

func (m *Connack) Unpack(body []byte) error {
	if len(body) < 1 {
		return NewDecodeError("CONNACK: body too short")
	}
	m.ReturnCode = ReturnCodeFromByte(body[0])
	return nil
}
