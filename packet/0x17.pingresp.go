package packet

import "io"

// PingResp answers a PINGREQ. Empty body.
type PingResp struct{}

func (m *PingResp) Kind() byte { return PINGRESP }

func (m *PingResp) Pack(w io.Writer) error {
	return packFrame(w, PINGRESP, nil)
}

func (m *PingResp) Unpack(body []byte) error {
	return nil
}
