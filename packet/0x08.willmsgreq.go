package packet

import "io"

// WillMsgReq asks the client to supply its will message. Empty body.
type WillMsgReq struct{}

func (m *WillMsgReq) Kind() byte { return WILLMSGREQ }

func (m *WillMsgReq) Pack(w io.Writer) error {
	return packFrame(w, WILLMSGREQ, nil)
}

func (m *WillMsgReq) Unpack(body []byte) error {
	return nil
}
