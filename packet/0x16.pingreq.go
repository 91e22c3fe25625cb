package packet

import "io"

// PingReq is sent by the client to keep its session alive, or by the
// gateway ("is-alive?") in which case the client must reply. The client
// ID body is populated only when the client itself sends it unprompted;
// the spec's own "may be empty from server side" note describes
// gateway-originated PINGREQ.
//
//	body: client_id:bytes-to-end (may be empty)
type PingReq struct {
	ClientID MqString
}

func (m *PingReq) Kind() byte { return PINGREQ }

func (m *PingReq) Pack(w io.Writer) error {
	return packFrame(w, PINGREQ, m.ClientID.Bytes())
}

func (m *PingReq) Unpack(body []byte) error {
	m.ClientID = Borrow(body)
	return nil
}
