package mqttsn

import "fmt"

// ErrKind tags the client-level error taxonomy from spec.md §7. It is not
// the error type itself — see ClientError — so callers can still compare
// with errors.Is against the package-level sentinels below.
type ErrKind int

const (
	KindQueueFull ErrKind = iota + 1
	KindNoTopicID
	KindNotConnected
	KindRetryOver
	KindRejected
	KindPingRespTimeout
	KindOutOfMemory
	KindDecodeError
)

func (k ErrKind) String() string {
	switch k {
	case KindQueueFull:
		return "QueueFull"
	case KindNoTopicID:
		return "NoTopicId"
	case KindNotConnected:
		return "NotConnected"
	case KindRetryOver:
		return "RetryOver"
	case KindRejected:
		return "Rejected"
	case KindPingRespTimeout:
		return "PingRespTimeout"
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindDecodeError:
		return "DecodeError"
	default:
		return "Unknown"
	}
}

// ClientError is the client's error type, implementing error via a
// message derived from its Kind, following the teacher's named
// struct-implementing-error idiom (packet.ReasonCode).
type ClientError struct {
	Kind ErrKind
	Msg  string
}

func (e *ClientError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("mqttsn: %s", e.Kind)
	}
	return fmt.Sprintf("mqttsn: %s: %s", e.Kind, e.Msg)
}

// Is makes ClientError comparable via errors.Is against a sentinel of the
// same Kind, regardless of Msg.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind ErrKind, msg string) *ClientError {
	return &ClientError{Kind: kind, Msg: msg}
}

// Sentinel errors for errors.Is comparisons. Msg is empty; wrap with
// newErr(kind, "...") when a specific error needs detail.
var (
	ErrQueueFull       = &ClientError{Kind: KindQueueFull}
	ErrNoTopicID       = &ClientError{Kind: KindNoTopicID}
	ErrNotConnected    = &ClientError{Kind: KindNotConnected}
	ErrRetryOver       = &ClientError{Kind: KindRetryOver}
	ErrRejected        = &ClientError{Kind: KindRejected}
	ErrPingRespTimeout = &ClientError{Kind: KindPingRespTimeout}
	ErrOutOfMemory     = &ClientError{Kind: KindOutOfMemory}
	ErrDecode          = &ClientError{Kind: KindDecodeError}
)
