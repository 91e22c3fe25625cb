package packet

import "io"

// WillTopic carries the client's will topic in response to WILLTOPICREQ.
//
//	body: flags:u8, will_topic:string-body
type WillTopic struct {
	Flags     Flags
	WillTopic MqString
}

func (m *WillTopic) Kind() byte { return WILLTOPIC }

func (m *WillTopic) Pack(w io.Writer) error {
	flags := byte(m.Flags) & FlagMaskWillTopic
	body := make([]byte, 0, 1+2+m.WillTopic.Len())
	body = append(body, flags)
	body = append(body, encodeLengthPrefixed(m.WillTopic)...)
	return packFrame(w, WILLTOPIC, body)
}

func (m *WillTopic) Unpack(body []byte) error {
	if len(body) < 1 {
		return NewDecodeError("WILLTOPIC: body too short")
	}
	m.Flags = Flags(body[0] & FlagMaskWillTopic)
	wt, _, err := decodeLengthPrefixed(body[1:])
	if err != nil {
		return err
	}
	m.WillTopic = wt
	return nil
}
