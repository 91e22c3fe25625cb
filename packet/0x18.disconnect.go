package packet

import "io"

// Disconnect ends a session. A client sends it voluntarily; a gateway may
// send it to reject or terminate a session, optionally with a sleep
// duration. The duration field is optional on the wire.
//
//	body: duration:u16 (optional; may be empty on gateway to client)
type Disconnect struct {
	HasDuration bool
	Duration    uint16
}

func (m *Disconnect) Kind() byte { return DISCONNECT }

func (m *Disconnect) Pack(w io.Writer) error {
	if !m.HasDuration {
		return packFrame(w, DISCONNECT, nil)
	}
	body := make([]byte, 2)
	i2b(body, m.Duration)
	return packFrame(w, DISCONNECT, body)
}

func (m *Disconnect) Unpack(body []byte) error {
	if len(body) == 0 {
		m.HasDuration = false
		return nil
	}
	if len(body) < 2 {
		return NewDecodeError("DISCONNECT: truncated duration")
	}
	m.HasDuration = true
	m.Duration = b2i(body[0:2])
	return nil
}
