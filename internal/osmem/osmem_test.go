package osmem

import "testing"

func TestGrowPreservesAndZeroes(t *testing.T) {
	r := New()
	defer r.Close()

	data, err := r.Grow(nil, 4096)
	if err != nil {
		t.Fatalf("initial Grow: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("len = %d, want 4096", len(data))
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("fresh region not zeroed at %d", i)
		}
	}

	data[0] = 0xaa
	data[4095] = 0xbb

	grown, err := r.Grow(data, 128<<10)
	if err != nil {
		t.Fatalf("second Grow: %v", err)
	}
	if len(grown) != 128<<10 {
		t.Fatalf("len = %d, want %d", len(grown), 128<<10)
	}
	if grown[0] != 0xaa || grown[4095] != 0xbb {
		t.Fatalf("contents not preserved across grow")
	}
	for i := 4096; i < len(grown); i += 512 {
		if grown[i] != 0 {
			t.Fatalf("extension not zeroed at %d", i)
		}
	}
}

func TestGrowSameSizeIsStable(t *testing.T) {
	r := New()
	defer r.Close()

	data, err := r.Grow(nil, 8192)
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	data[100] = 0x42

	again, err := r.Grow(data, 8192)
	if err != nil {
		t.Fatalf("re-Grow: %v", err)
	}
	if again[100] != 0x42 {
		t.Fatalf("no-op grow lost contents")
	}
}

func TestCloseThenReuse(t *testing.T) {
	r := New()
	if _, err := r.Grow(nil, 4096); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := r.Grow(nil, 4096)
	if err != nil {
		t.Fatalf("Grow after Close: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("len = %d after reuse", len(data))
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
