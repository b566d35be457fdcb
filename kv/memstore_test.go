package kv

import "testing"

func TestMemStoreGetSetDelete(t *testing.T) {
	s := NewMemStore()

	if _, ok, err := s.Get([]byte("a")); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get([]byte("a"))
	if err != nil || !ok || string(v) != "1" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	if err := s.Delete([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get([]byte("a")); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemStoreScanOrdersByKeyAndStopsAtPrefix(t *testing.T) {
	s := NewMemStore()
	for _, kv := range [][2]string{
		{"a/2", "x"}, {"a/1", "y"}, {"a/3", "z"}, {"b/1", "n"},
	} {
		if err := s.Set([]byte(kv[0]), []byte(kv[1])); err != nil {
			t.Fatal(err)
		}
	}

	it, err := s.Scan([]byte("a/"))
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	var got []string
	for it.Next() {
		got = append(got, string(it.Key()))
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{"a/1", "a/2", "a/3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
