package packet

import "io"

// Connect opens a session with the gateway, optionally declaring a will.
//
//	body: flags:u8, protocol_id:u8(=0x01), duration:u16, client_id:string-body
type Connect struct {
	Flags      Flags
	ProtocolID uint8
	Duration   uint16
	ClientID   MqString
}

// ProtocolID01 is the only protocol ID value MQTT-SN v1.2 defines.
const ProtocolID01 uint8 = 0x01

func (m *Connect) Kind() byte { return CONNECT }

func (m *Connect) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskConnect
	body := make([]byte, 0, 4+2+m.ClientID.Len())
	body = append(body, flags, ProtocolID01)
	body = appendU16(body, m.Duration)
	body = append(body, encodeLengthPrefixed(m.ClientID)...)
	return packFrame(w, CONNECT, body)
}

func (m *Connect) Unpack(body []byte) error {
	if len(body) < 4 {
		return NewDecodeError("CONNECT: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskConnect)
	m.ProtocolID = body[1]
	m.Duration = b2i(body[2:4])
	id, _, err := decodeLengthPrefixed(body[4:])
	if err != nil {
		return err
	}
	m.ClientID = id
	return nil
}
