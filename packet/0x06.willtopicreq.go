package packet

import "io"

// WillTopicReq asks the client to supply its will topic. Empty body.
type WillTopicReq struct{}

func (m *WillTopicReq) Kind() byte { return WILLTOPICREQ }

func (m *WillTopicReq) Pack(w io.Writer) error {
	return packFrame(w, WILLTOPICREQ, nil)
}

func (m *WillTopicReq) Unpack(body []byte) error {
	return nil
}
