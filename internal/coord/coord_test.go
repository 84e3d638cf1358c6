package coord

import "testing"

func TestSplitNegativeAxes(t *testing.T) {
	cases := []struct {
		wx    int32
		chunk int32
		local uint8
	}{
		{0, 0, 0},
		{15, 0, 15},
		{16, 1, 0},
		{-1, -1, 15},
		{-16, -1, 0},
		{-17, -2, 15},
		{31, 1, 15},
		{-33, -3, 15},
	}
	for _, c := range cases {
		cp, l := Split(c.wx, 0, 0)
		if cp.X != c.chunk || l.X != c.local {
			t.Errorf("Split(%d): got chunk %d local %d, want chunk %d local %d",
				c.wx, cp.X, l.X, c.chunk, c.local)
		}
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for wx := int32(-40); wx <= 40; wx++ {
		for wy := int32(-20); wy <= 20; wy += 7 {
			cp, l := Split(wx, wy, -wx)
			gx, gy, gz := Join(cp, l)
			if gx != wx || gy != wy || gz != -wx {
				t.Fatalf("roundtrip (%d,%d,%d): got (%d,%d,%d)", wx, wy, -wx, gx, gy, gz)
			}
		}
	}
}

func TestLocalIndexIsBijective(t *testing.T) {
	seen := make(map[int]bool, ChunkVolume)
	for y := 0; y < ChunkSize; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				i := (Local{uint8(x), uint8(y), uint8(z)}).Index()
				if i < 0 || i >= ChunkVolume {
					t.Fatalf("index out of range: %d", i)
				}
				if seen[i] {
					t.Fatalf("duplicate index %d at (%d,%d,%d)", i, x, y, z)
				}
				seen[i] = true
			}
		}
	}
}

func TestColumnDistSq(t *testing.T) {
	a := ColumnPos{0, 0}
	b := ColumnPos{-3, 4}
	if got := a.DistSq(b); got != 25 {
		t.Fatalf("DistSq: got %d, want 25", got)
	}
}
