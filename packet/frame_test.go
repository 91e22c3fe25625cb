package packet

import (
	"bytes"
	"testing"
)

// TestRoundTrip covers invariant 1 from spec.md §8: decode(encode(M)) == M,
// checked by re-encoding the decoded message and comparing the bytes,
// since Message values aren't comparable with ==.
func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
	}{
		{"Advertise", &Advertise{GwID: 7, Duration: 900}},
		{"SearchGW", &SearchGW{Radius: 2}},
		{"GwInfo", &GwInfo{GwID: 7}},
		{"Connect", &Connect{Flags: NewFlags(false, QoS0, false, true, true, TopicIDNormal, FlagMaskConnect), Duration: 60, ClientID: OwnString("C1")}},
		{"Connack", &Connack{ReturnCode: Accepted}},
		{"WillTopicReq", &WillTopicReq{}},
		{"WillTopic", &WillTopic{Flags: NewFlags(false, QoS1, false, false, false, TopicIDNormal, FlagMaskWillTopic), WillTopic: OwnString("lwt/topic")}},
		{"WillMsgReq", &WillMsgReq{}},
		{"WillMsg", &WillMsg{WillMsg: OwnString("goodbye")}},
		{"Register", &Register{TopicID: 0, MsgID: 1, TopicName: OwnString("a/b")}},
		{"RegAck", &RegAck{TopicID: 42, MsgID: 1, ReturnCode: Accepted}},
		{"Publish", &Publish{Flags: NewFlags(false, QoS0, false, false, false, TopicIDNormal, FlagMaskPublish), TopicID: 42, MsgID: 5, Data: OwnString("hi")}},
		{"PubAck", &PubAck{TopicID: 42, MsgID: 5, ReturnCode: Accepted}},
		{"Subscribe-byname", &Subscribe{Flags: NewFlags(false, QoS1, false, false, false, TopicIDNormal, FlagMaskSubscribe), MsgID: 9, TopicName: OwnString("a/+")}},
		{"Subscribe-byid", &Subscribe{Flags: NewFlags(false, QoS1, false, false, false, TopicIDPredefined, FlagMaskSubscribe), MsgID: 9, TopicID: 3}},
		{"SubAck", &SubAck{Flags: NewFlags(false, QoS1, false, false, false, 0, FlagMaskSuback), TopicID: 42, MsgID: 9, ReturnCode: Accepted}},
		{"Unsubscribe", &Unsubscribe{Flags: NewFlags(false, QoS1, false, false, false, TopicIDNormal, FlagMaskUnsubscribe), MsgID: 10, TopicName: OwnString("a/+")}},
		{"UnsubAck", &UnsubAck{MsgID: 10}},
		{"PingReq", &PingReq{ClientID: OwnString("C1")}},
		{"PingReq-empty", &PingReq{}},
		{"PingResp", &PingResp{}},
		{"Disconnect-none", &Disconnect{}},
		{"Disconnect-duration", &Disconnect{HasDuration: true, Duration: 600}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tc.msg.Pack(&buf); err != nil {
				t.Fatalf("Pack: %v", err)
			}
			decoded, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if decoded.Kind() != tc.msg.Kind() {
				t.Fatalf("kind mismatch: got 0x%02X want 0x%02X", decoded.Kind(), tc.msg.Kind())
			}

			var rebuf bytes.Buffer
			if err := decoded.Pack(&rebuf); err != nil {
				t.Fatalf("re-Pack: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), rebuf.Bytes()) {
				t.Fatalf("round trip mismatch:\n  first:  % X\n  second: % X", buf.Bytes(), rebuf.Bytes())
			}
		})
	}
}

// TestDecodeByteExact covers invariant 2: encode(decode(F)) == F for a
// well-formed frame built by hand.
func TestDecodeByteExact(t *testing.T) {
	frame := []byte{0x03, 0x02, 0x07} // GWINFO gw_id=7
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf bytes.Buffer
	if err := msg.Pack(&buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if !bytes.Equal(frame, buf.Bytes()) {
		t.Fatalf("got % X want % X", buf.Bytes(), frame)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0x01}},
		{"declared length exceeds buffer", []byte{0x05, 0x02, 0x07}},
		{"unknown type", []byte{0x03, 0xFF, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.buf); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

// TestScenarioSearch covers spec.md §8 scenario 1's literal bytes.
func TestScenarioSearch(t *testing.T) {
	var buf bytes.Buffer
	sg := &SearchGW{Radius: 2}
	if err := sg.Pack(&buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{0x03, 0x01, 0x02}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X want % X", buf.Bytes(), want)
	}

	msg, err := Decode([]byte{0x03, 0x02, 0x07})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gi, ok := msg.(*GwInfo)
	if !ok {
		t.Fatalf("expected *GwInfo, got %T", msg)
	}
	if gi.GwID != 7 {
		t.Fatalf("got gw_id=%d want 7", gi.GwID)
	}
}

// TestScenarioConnect covers spec.md §8 scenario 2's literal bytes.
func TestScenarioConnect(t *testing.T) {
	c := &Connect{Duration: 60, ClientID: OwnString("C1")}
	var buf bytes.Buffer
	if err := c.Pack(&buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{0x0A, 0x04, 0x00, 0x01, 0x00, 0x3C, 0x00, 0x02, 'C', '1'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X want % X", buf.Bytes(), want)
	}
}

// TestScenarioPublishByName covers spec.md §8 scenario 3's REGACK and
// PUBLISH literal bytes.
func TestScenarioPublishByName(t *testing.T) {
	msg, err := Decode([]byte{0x07, 0x0B, 0x00, 0x2A, 0x00, 0x01, 0x00})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ra, ok := msg.(*RegAck)
	if !ok {
		t.Fatalf("expected *RegAck, got %T", msg)
	}
	if ra.TopicID != 42 || ra.MsgID != 1 || !ra.ReturnCode.Accepted() {
		t.Fatalf("unexpected RegAck: %+v", ra)
	}

	p := &Publish{TopicID: ra.TopicID, MsgID: 1, Data: OwnString("hi")}
	var buf bytes.Buffer
	if err := p.Pack(&buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{0x09, 0x0C, 0x00, 0x00, 0x2A, 0x00, 0x01, 'h', 'i'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X want % X", buf.Bytes(), want)
	}
}

func TestFlagMasking(t *testing.T) {
	f := NewFlags(true, QoS1, true, true, true, TopicIDPredefined, FlagMaskConnect)
	if byte(f) != byte(FlagMaskConnect)&byte(NewFlags(true, QoS1, true, true, true, TopicIDPredefined, 0xFF)) {
		t.Fatalf("mask not applied: got 0x%02X", byte(f))
	}
	if f.Will() != true {
		t.Fatalf("expected will bit set within connect mask")
	}
	if f.QoS() != QoS0 {
		t.Fatalf("connect mask excludes QoS bits, want QoS0 got %v", f.QoS())
	}
}

func BenchmarkPublishPack(b *testing.B) {
	p := &Publish{TopicID: 42, MsgID: 1, Data: OwnString("hello world")}
	var buf bytes.Buffer
	for i := 0; i < b.N; i++ {
		buf.Reset()
		_ = p.Pack(&buf)
	}
}

func BenchmarkDecode(b *testing.B) {
	frame := []byte{0x09, 0x0C, 0x00, 0x00, 0x2A, 0x00, 0x01, 'h', 'i'}
	for i := 0; i < b.N; i++ {
		_, _ = Decode(frame)
	}
}
