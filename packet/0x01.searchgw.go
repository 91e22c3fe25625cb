package packet

import "io"

// SearchGW is broadcast by a client searching for a gateway.
//
//	body: radius:u8
type SearchGW struct {
	Radius uint8
}

func (m *SearchGW) Kind() byte { return SEARCHGW }

func (m *SearchGW) Pack(w io.Writer) error {
	return packFrame(w, SEARCHGW, []byte{m.Radius})
}

func (m *SearchGW) Unpack(body []byte) error {
	if len(body) < 1 {
		return NewDecodeError("SEARCHGW: body too short")
	}
	m.Radius = body[0]
	return nil
}
