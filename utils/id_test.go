package utils

import "testing"

func TestGenerateRandomID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateRandomID()
		if err != nil {
			t.Fatalf("GenerateRandomID returned error: %v", err)
		}
		if len(id) != 32 {
			t.Fatalf("id %q has length %d, want 32", id, len(id))
		}
		if seen[id] {
			t.Fatalf("id %q generated twice", id)
		}
		seen[id] = true
	}
}
