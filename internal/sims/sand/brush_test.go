package sand

import (
	"bytes"
	"testing"
)

func TestBrushSizeClamped(t *testing.T) {
	if b := NewBrush(0); b.Size != 1 {
		t.Fatalf("size 0 clamped to %d", b.Size)
	}
	if b := NewBrush(1000); b.Size != maxBrushSize {
		t.Fatalf("size 1000 clamped to %d", b.Size)
	}
	b := NewBrush(1)
	b.Shrink()
	if b.Size != 1 {
		t.Fatalf("shrink below 1 gave %d", b.Size)
	}
	b.Grow()
	b.Grow()
	if b.Size != 3 {
		t.Fatalf("grow twice gave %d", b.Size)
	}
}

func TestBrushMaterialCycles(t *testing.T) {
	b := NewBrush(1)
	if b.Material() != Sand {
		t.Fatalf("default material %v", b.Material())
	}
	b.PrevMaterial()
	if got := b.PrevMaterial(); got != Wood {
		t.Fatalf("cycling back from Empty gave %v, want Wood", got)
	}
	if got := b.NextMaterial(); got != Empty {
		t.Fatalf("cycling forward from Wood gave %v, want Empty", got)
	}
	for range Materials() {
		b.NextMaterial()
	}
	if b.Material() != Empty {
		t.Fatalf("full cycle ended on %v", b.Material())
	}
	if !b.ToggleFire() || b.ToggleFire() {
		t.Fatal("ToggleFire should alternate")
	}

	b.MaterialIndex = 99
	if b.Material() != Empty || b.MaterialIndex != 99 {
		t.Fatalf("reading an out of range brush changed it: %v, index %d", b.Material(), b.MaterialIndex)
	}
	if got := b.NextMaterial(); !got.Valid() || b.MaterialIndex < 0 || b.MaterialIndex >= len(Materials()) {
		t.Fatalf("NextMaterial left index %d", b.MaterialIndex)
	}
	b.MaterialIndex = -7
	if got := b.PrevMaterial(); !got.Valid() || b.MaterialIndex < 0 || b.MaterialIndex >= len(Materials()) {
		t.Fatalf("PrevMaterial left index %d", b.MaterialIndex)
	}
}

func TestEraseLineIgnoresFireMode(t *testing.T) {
	m, env := newTestMatrix(10, 10)
	m.Brush.Size = 1
	for x := 0; x < 5; x++ {
		m.SetCell(env, Pt(x, 4), Wood)
	}
	m.Brush.PlaceFire = true
	m.EraseLine(env, 0, 4, 2, 4)

	for x := 0; x <= 2; x++ {
		if _, ok := m.CellAt(Pt(x, 4)); ok {
			t.Fatalf("erase in fire mode left a cell at x=%d", x)
		}
	}
	for x := 3; x < 5; x++ {
		if c, ok := m.CellAt(Pt(x, 4)); !ok || c.OnFire {
			t.Fatalf("cell outside the stroke changed at x=%d: %+v", x, c)
		}
	}
	if !m.Brush.PlaceFire {
		t.Fatal("erasing must not change the brush mode")
	}
}

func TestDrawBrushStampsSquare(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{1, 1},
		{3, 9},
		{4, 16},
	}
	for _, tc := range cases {
		m, env := newTestMatrix(16, 16)
		m.Brush.Size = tc.size
		m.DrawBrush(env, Pt(8, 8), Rock)
		if got := m.Grid().Len(); got != tc.want {
			t.Fatalf("size %d stamped %d cells, want %d", tc.size, got, tc.want)
		}
	}

	m, env := newTestMatrix(16, 16)
	m.Brush.Size = 5
	m.DrawBrush(env, Pt(0, 0), Rock)
	if got := m.Grid().Len(); got != 9 {
		t.Fatalf("corner stamp kept %d cells, want 9", got)
	}
	m.Brush.Size = 3
	m.DrawBrush(env, Pt(0, 0), Empty)
	if got := m.Grid().Len(); got != 5 {
		t.Fatalf("erasing left %d cells, want 5", got)
	}
}

func TestDrawBrushIgnites(t *testing.T) {
	m, env := newTestMatrix(8, 8)
	m.SetCell(env, Pt(3, 3), Wood)
	m.SetCell(env, Pt(4, 3), Rock)
	m.Brush.Size = 3
	m.Brush.PlaceFire = true
	m.DrawBrush(env, Pt(3, 3), Sand)

	if m.Grid().Len() != 2 {
		t.Fatal("fire mode must not paint material")
	}
	if c, _ := m.CellAt(Pt(3, 3)); !c.OnFire {
		t.Fatal("wood under the brush should burn")
	}
	if c, _ := m.CellAt(Pt(4, 3)); c.OnFire {
		t.Fatal("rock must not burn")
	}
}

func TestSetLineStopsAtEdge(t *testing.T) {
	m, env := newTestMatrix(10, 10)
	m.Brush.Size = 1
	m.SetLine(env, 0, 0, 20, 0, Rock)
	if got := m.Grid().Len(); got != 10 {
		t.Fatalf("line painted %d cells, want 10", got)
	}

	m.Clear()
	m.SetLine(env, -5, -5, 3, 3, Rock)
	for i := 0; i <= 3; i++ {
		if _, ok := m.CellAt(Pt(i, i)); !ok {
			t.Fatalf("missing diagonal cell (%d,%d)", i, i)
		}
	}
	if got := m.Grid().Len(); got != 4 {
		t.Fatalf("clamped line painted %d cells, want 4", got)
	}
}

func TestDraw(t *testing.T) {
	m, env := newTestMatrix(4, 2)
	m.SetCell(env, Pt(1, 1), Rock)
	buf := make([]byte, 4*4*2)
	m.Draw(buf)

	bg := Empty.Props().Color
	if !bytes.Equal(buf[0:4], []byte{bg.R, bg.G, bg.B, bg.A}) {
		t.Fatalf("empty pixel = %v", buf[0:4])
	}
	rock := Rock.Props().Color
	o := (1*4 + 1) * 4
	if !bytes.Equal(buf[o:o+4], []byte{rock.R, rock.G, rock.B, rock.A}) {
		t.Fatalf("rock pixel = %v", buf[o:o+4])
	}

	m.Update(env)
	m.DebugChunks = true
	m.Draw(buf)
	hl := ChunkHighlight
	if !bytes.Equal(buf[o:o+4], []byte{hl.R, hl.G, hl.B, hl.A}) {
		t.Fatalf("active chunk pixel = %v", buf[o:o+4])
	}

	short := make([]byte, 7)
	m.Draw(short)
	if !bytes.Equal(short, make([]byte, 7)) {
		t.Fatal("short buffer must be left untouched")
	}
}
