package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []int{1, 2, 3}
	def := []int{9}
	got := IfEmpty(in, def)
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	def2 := []string{"x"}
	got2 := IfEmpty(empty, def2)
	if len(got2) != 1 || got2[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestEmptyToNil(t *testing.T) {
	t.Parallel()
	if got := EmptyToNil("  \t "); got != "" {
		t.Fatalf("EmptyToNil(blank) = %q, want empty", got)
	}
	if got := EmptyToNil(" x "); got != " x " {
		t.Fatalf("EmptyToNil = %q, want unchanged", got)
	}
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()
	p := Ptr("abc")
	if p == nil || *p != "abc" {
		t.Fatalf("Ptr = %v", p)
	}
	if got := Deref(p); got != "abc" {
		t.Fatalf("Deref = %q", got)
	}
	if got := Deref(nil); got != "" {
		t.Fatalf("Deref(nil) = %q, want empty", got)
	}
}
