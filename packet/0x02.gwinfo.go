package packet

import "io"

// GwInfo answers a SEARCHGW, identifying a gateway by its 8-bit ID. The
// sender's link-layer address (not carried in this body) is how the
// client actually learns the gateway's reachable address; see the
// inbound dispatcher, which reads it from the frame envelope.
//
//	body: gw_id:u8
type GwInfo struct {
	GwID uint8
}

func (m *GwInfo) Kind() byte { return GWINFO }

func (m *GwInfo) Pack(w io.Writer) error {
	return packFrame(w, GWINFO, []byte{m.GwID})
}

func (m *GwInfo) Unpack(body []byte) error {
	if len(body) < 1 {
		return NewDecodeError("GWINFO: body too short")
	}
	m.GwID = body[0]
	return nil
}
