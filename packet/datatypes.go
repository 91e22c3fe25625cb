package packet

import (
	"bytes"
	"encoding/binary"
)

// MaxMessageLength is the largest frame the codec will produce or accept:
// byte 0 carries the total length as a single octet, so no frame this
// codec emits or parses may exceed it.
const MaxMessageLength = 255

// MqString is a byte string, optionally length-prefixed on the wire
// depending on the field (see each message type's Pack/Unpack).
//
// Two constructors stand in for one mutable type with conflated ownership:
// Borrow views bytes owned by someone else (typically a received frame's
// buffer) without copying; Own copies the bytes so the value's lifetime is
// independent of its source. A Topic registry entry must hold an owned
// MqString, never a borrowed one, since the receive buffer it might
// otherwise alias is reused for the next inbound frame.
type MqString struct {
	b        []byte
	borrowed bool
}

// Borrow wraps b without copying. The caller must guarantee b is not
// mutated or reused while the returned MqString, or anything derived from
// it, is still alive.
func Borrow(b []byte) MqString {
	return MqString{b: b, borrowed: true}
}

// Own copies b so the returned MqString has an independent lifetime.
func Own(b []byte) MqString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return MqString{b: cp}
}

// OwnString is Own for a Go string argument.
func OwnString(s string) MqString {
	return Own([]byte(s))
}

// IsBorrowed reports whether the bytes are a view over someone else's buffer.
func (s MqString) IsBorrowed() bool { return s.borrowed }

// ToOwned returns s unchanged if already owned, else a copy that owns its bytes.
func (s MqString) ToOwned() MqString {
	if !s.borrowed {
		return s
	}
	return Own(s.b)
}

func (s MqString) Bytes() []byte        { return s.b }
func (s MqString) String() string       { return string(s.b) }
func (s MqString) Len() int             { return len(s.b) }
func (s MqString) Equal(o MqString) bool { return bytes.Equal(s.b, o.b) }

// i2b writes v into dst[0:2] big-endian. dst must have len(dst) >= 2.
func i2b(dst []byte, v uint16) {
	binary.BigEndian.PutUint16(dst, v)
}

// b2i reads a big-endian uint16 from the first 2 bytes of b.
func b2i(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// appendU16 appends the big-endian encoding of v to dst.
func appendU16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

// encodeLengthPrefixed writes a 2-byte big-endian length followed by the
// raw bytes of s. Used by the wire fields that carry an explicit length
// alongside the message's own total-length header byte: CONNECT's client
// ID, WILLTOPIC's will topic and WILLMSG's will message.
func encodeLengthPrefixed(s MqString) []byte {
	out := make([]byte, 2+s.Len())
	i2b(out, uint16(s.Len()))
	copy(out[2:], s.Bytes())
	return out
}

// decodeLengthPrefixed reads a 2-byte length then that many bytes from buf,
// returning a borrowed MqString and the remainder of buf after it.
func decodeLengthPrefixed(buf []byte) (MqString, []byte, error) {
	if len(buf) < 2 {
		return MqString{}, nil, NewDecodeError("length-prefixed string: truncated length field")
	}
	n := int(b2i(buf[0:2]))
	if len(buf) < 2+n {
		return MqString{}, nil, NewDecodeError("length-prefixed string: declared length exceeds remaining bytes")
	}
	return Borrow(buf[2 : 2+n]), buf[2+n:], nil
}
