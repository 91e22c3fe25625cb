package topic

import (
	"testing"

	"github.com/golang-io/mqttsn/packet"
)

func TestAddIdempotent(t *testing.T) {
	tbl := NewTable(0)
	a := tbl.Add(packet.OwnString("a/b"))
	b := tbl.Add(packet.OwnString("a/b"))
	if a != b {
		t.Fatalf("Add should be idempotent, got two distinct entries")
	}
	if tbl.Len() != 1 {
		t.Fatalf("got %d entries, want 1", tbl.Len())
	}
}

func TestFindByNameAndID(t *testing.T) {
	tbl := NewTable(0)
	tbl.Add(packet.OwnString("a/b"))
	tbl.SetID("a/b", 42)

	if e := tbl.FindByName("a/b"); e == nil || e.ID != 42 {
		t.Fatalf("FindByName: got %+v", e)
	}
	if e := tbl.FindByID(42); e == nil || e.Name.String() != "a/b" {
		t.Fatalf("FindByID: got %+v", e)
	}
	if e := tbl.FindByID(0); e != nil {
		t.Fatalf("FindByID(0) should never match, got %+v", e)
	}
}

// TestWildcardMatch covers spec.md §8 invariant 6.
func TestWildcardMatch(t *testing.T) {
	cases := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"a/+", "a/b", true},
		{"a/+", "a/b/c", false},
		{"a/#", "a/b", true},
		{"a/#", "a/b/c", true},
		// Match only considers wildcard templates; a plain entry is never
		// returned, even for an exact name.
		{"a/b", "a/b", false},
		{"a/b", "a/c", false},
	}
	for _, tc := range cases {
		t.Run(tc.pattern+"_"+tc.candidate, func(t *testing.T) {
			tbl := NewTable(0)
			tbl.SetCallback(tc.pattern, func([]byte) int32 { return 1 })
			tbl.Add(packet.OwnString(tc.pattern))
			tbl.SetCallback(tc.pattern, func([]byte) int32 { return 1 })
			got := tbl.Match(tc.candidate) != nil
			if got != tc.want {
				t.Fatalf("Match(%q) against pattern %q = %v, want %v", tc.candidate, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestAdoptWildcardClonesCallback(t *testing.T) {
	tbl := NewTable(0)
	tbl.Add(packet.OwnString("a/+"))
	tbl.SetCallback("a/+", func(data []byte) int32 { return int32(len(data)) })

	adopted := tbl.AdoptWildcard("a/b", 7)
	if adopted == nil {
		t.Fatalf("expected wildcard adoption")
	}
	if adopted.ID != 7 {
		t.Fatalf("got id=%d want 7", adopted.ID)
	}
	if got := tbl.ExecCallback(7, []byte("xyz")); got != 3 {
		t.Fatalf("callback not carried over: got %d want 3", got)
	}
}

func TestExecCallbackMissing(t *testing.T) {
	tbl := NewTable(0)
	if got := tbl.ExecCallback(99, nil); got != 0 {
		t.Fatalf("got %d want 0 for missing id", got)
	}
}

func TestGrowBeyondInitialCapacity(t *testing.T) {
	tbl := NewTable(2)
	for i := 0; i < 10; i++ {
		tbl.Add(packet.OwnString(string(rune('a' + i))))
	}
	if tbl.Len() != 10 {
		t.Fatalf("got %d entries, want 10", tbl.Len())
	}
}
