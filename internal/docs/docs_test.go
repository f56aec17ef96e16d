package docs

import "testing"

func TestTopicsAndGet(t *testing.T) {
	topics := Topics()
	want := map[string]bool{"board": false, "keys": false, "storage": false}
	for _, tp := range topics {
		if _, ok := want[tp]; ok {
			want[tp] = true
		}
	}
	for tp, found := range want {
		if !found {
			t.Fatalf("missing topic %q in %v", tp, topics)
		}
	}

	if s, ok := Get(" KEYS "); !ok || s == "" {
		t.Fatalf("expected keys topic, ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected no topic for %q", bad)
		}
	}
}
