package catalogid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		if !strings.HasPrefix(id, "med_") {
			t.Fatalf("New() = %q, want med_ prefix", id)
		}
		if len(id) != len("med_")+26 {
			t.Fatalf("New() length = %d, want %d", len(id), len("med_")+26)
		}
		if seen[id] {
			t.Fatalf("New() returned duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "generated id", value: New(), want: true},
		{name: "empty string", value: "", want: false},
		{name: "missing prefix", value: "01hv3b2c4d5e6f7g8h9j0k1m2n", want: false},
		{name: "wrong prefix", value: "usr_01hv3b2c4d5e6f7g8h9j0k1m2n", want: false},
		{name: "prefix only", value: "med_", want: false},
		{name: "garbage after prefix", value: "med_not-a-ulid", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.value); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	id := New()
	parsed, err := Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", id, err)
	}
	if got := "med_" + strings.ToLower(parsed.String()); got != id {
		t.Errorf("round trip = %q, want %q", got, id)
	}
}
