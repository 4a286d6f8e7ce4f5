package logger

import "testing"

func TestSanitizeKVsRedactsTokens(t *testing.T) {
	got := sanitizeKVs([]any{"trip_id", "t-1", "owner_token", "abc", "X-Trip-Token", "def", "dangling"})

	want := []any{"trip_id", "t-1", "owner_token", "[REDACTED]", "X-Trip-Token", "[REDACTED]", "dangling"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kv[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) returned nil")
	}
	l := NewNop()
	if OrNop(l) != l {
		t.Fatalf("OrNop should return the given logger")
	}
}
