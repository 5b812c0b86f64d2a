package batch

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rivers of Europe", "Rivers_of_Europe"},
		{"Magyar történelem!", "Magyar_t_rt_nelem"},
		{"  spaced  out  ", "spaced_out"},
		{"___", "quiz"},
		{"", "quiz"},
		{"already-safe_name2", "already-safe_name2"},
		{"a/b\\c:d", "a_b_c_d"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamer_CollisionSuffix(t *testing.T) {
	n := NewNamer()
	if got := n.Next("Rivers"); got != "Rivers" {
		t.Fatalf("first use: %q", got)
	}
	if got := n.Next("Rivers"); got != "Rivers_2" {
		t.Fatalf("second use: %q", got)
	}
	if got := n.Next("Rivers!"); got != "Rivers_3" {
		t.Fatalf("sanitized collision: %q", got)
	}
	if got := n.Next("Lakes"); got != "Lakes" {
		t.Fatalf("unrelated name: %q", got)
	}
}

func TestNamer_SuffixedStemsAreReserved(t *testing.T) {
	n := NewNamer()
	got := []string{n.Next("a"), n.Next("a"), n.Next("a_2")}
	want := []string{"a", "a_2", "a_2_2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stem %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}

	n = NewNamer()
	got = []string{n.Next("a_2"), n.Next("a"), n.Next("a")}
	want = []string{"a_2", "a", "a_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stem %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}
