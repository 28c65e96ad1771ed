package alloc

import "testing"

func TestSizeClass(t *testing.T) {
	tests := []struct {
		size uint64
		want int
	}{
		{32, 0},
		{40, 0},
		{63, 0},
		{64, 1},
		{127, 1},
		{128, 2},
		{256, 3},
		{512, 4},
		{1024, 5},
		{2048, 6},
		{4096, 7},
		{8192, 8},
		{16384, 9},
		{32768, 10},
		{65535, 10},
		{65536, 11},
		{1 << 30, 11},
	}
	for _, tt := range tests {
		if got := SizeClass(tt.size); got != tt.want {
			t.Errorf("SizeClass(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestClassFloor(t *testing.T) {
	if got := ClassFloor(0); got != 32 {
		t.Errorf("ClassFloor(0) = %d, want 32", got)
	}
	if got := ClassFloor(1); got != 64 {
		t.Errorf("ClassFloor(1) = %d, want 64", got)
	}
	if got := ClassFloor(NumSizeClasses - 1); got != 65536 {
		t.Errorf("ClassFloor(11) = %d, want 65536", got)
	}
}

func TestSizeClass_ConsistentWithFloors(t *testing.T) {
	for c := 0; c < NumSizeClasses; c++ {
		floor := ClassFloor(c)
		if got := SizeClass(floor); got != c {
			t.Errorf("SizeClass(ClassFloor(%d)=%d) = %d", c, floor, got)
		}
		// The last size before the next floor still belongs to c.
		if c < NumSizeClasses-1 {
			if got := SizeClass(2*floor - 1); got != c {
				t.Errorf("SizeClass(%d) = %d, want %d", 2*floor-1, got, c)
			}
		}
	}
}
