package memreporter

import "testing"

func TestResidentSetSize(t *testing.T) {
	rss, err := New().ResidentSetSize()
	if err != nil {
		t.Skipf("memory info unavailable on this platform: %v", err)
	}
	if rss == 0 {
		t.Error("expected non-zero resident set size")
	}
}

func TestFormat(t *testing.T) {
	tests := map[uint64]string{
		0:                   "0.0000MB",
		1024 * 1024:         "1.0000MB",
		3 * 1024 * 1024 / 2: "1.5000MB",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%d) = %s, want %s", in, got, want)
		}
	}
}
