package packet

import "io"

// WillMsg carries the client's will message in response to WILLMSGREQ.
// Like CONNECT's client ID and WILLTOPIC's will topic, the will message
// is itself length-prefixed on the wire rather than running to the end
// of the frame.
//
//	body: will_msg:string-with-length-prefix
type WillMsg struct {
	WillMsg MqString
}

func (m *WillMsg) Kind() byte { return WILLMSG }

func (m *WillMsg) Pack(w io.Writer) error {
	return packFrame(w, WILLMSG, encodeLengthPrefixed(m.WillMsg))
}

func (m *WillMsg) Unpack(body []byte) error {
	s, _, err := decodeLengthPrefixed(body)
	if err != nil {
		return err
	}
	m.WillMsg = s
	return nil
}
