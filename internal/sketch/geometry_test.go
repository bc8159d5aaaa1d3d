package sketch

import "testing"

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("north")
	if !ok || d != North {
		t.Errorf("north: got %v ok=%v", d, ok)
	}
	d, ok = ParseDirection(" East ")
	if !ok || d != East {
		t.Errorf("padded east: got %v ok=%v", d, ok)
	}
	if _, ok := ParseDirection("up"); ok {
		t.Error("expected unknown direction to fail")
	}
	if _, ok := ParseDirection(""); ok {
		t.Error("expected empty direction to fail")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{{North, South}, {South, North}, {East, West}, {West, East}}
	for _, p := range pairs {
		if got := p[0].Opposite(); got != p[1] {
			t.Errorf("opposite of %v: got %v, want %v", p[0], got, p[1])
		}
	}
}

func TestDirectionFromWallIndex(t *testing.T) {
	want := []Direction{North, East, South, West}
	for i, w := range want {
		got, ok := DirectionFromWallIndex(i)
		if !ok || got != w {
			t.Errorf("index %d: got %v ok=%v, want %v", i, got, ok, w)
		}
	}
	if _, ok := DirectionFromWallIndex(4); ok {
		t.Error("index 4 should not resolve")
	}
	if _, ok := DirectionFromWallIndex(-1); ok {
		t.Error("index -1 should not resolve")
	}
}

func TestRectWallEndpoints(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 60}

	a, b := r.Wall(North)
	if a != (Point{10, 20}) || b != (Point{110, 20}) {
		t.Errorf("north wall: got %v-%v", a, b)
	}
	a, b = r.Wall(East)
	if a != (Point{110, 20}) || b != (Point{110, 80}) {
		t.Errorf("east wall: got %v-%v", a, b)
	}

	if got := r.WallLength(South); got != 100 {
		t.Errorf("south wall length: got %v, want 100", got)
	}
	if got := r.WallLength(West); got != 60 {
		t.Errorf("west wall length: got %v, want 60", got)
	}
}

func TestRectOverlapsSharedEdge(t *testing.T) {
	a := Rect{0, 0, 48, 40}
	b := Rect{48, 0, 40, 40} // flush on a's east wall
	if a.overlaps(b) {
		t.Error("rooms sharing an edge must not count as overlapping")
	}
	c := Rect{47, 0, 40, 40}
	if !a.overlaps(c) {
		t.Error("one pixel of interior intersection must count as overlapping")
	}
}

func TestHitTestWall(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 60}

	hit, ok := HitTestWall(r, Point{50, 3}, 8)
	if !ok || hit.Wall != North {
		t.Fatalf("near north wall: got %+v ok=%v", hit, ok)
	}
	if hit.Offset != 0.5 {
		t.Errorf("north offset: got %v, want 0.5", hit.Offset)
	}

	hit, ok = HitTestWall(r, Point{97, 30}, 8)
	if !ok || hit.Wall != East {
		t.Fatalf("near east wall: got %+v ok=%v", hit, ok)
	}
	if hit.Offset != 0.5 {
		t.Errorf("east offset: got %v, want 0.5", hit.Offset)
	}

	if _, ok := HitTestWall(r, Point{50, 30}, 8); ok {
		t.Error("room center should not hit any wall")
	}
	if _, ok := HitTestWall(r, Point{50, -9}, 8); ok {
		t.Error("point beyond tolerance should not hit")
	}

	// corner ties resolve to the first wall in north/east/south/west order
	hit, ok = HitTestWall(r, Point{0, 0}, 8)
	if !ok || hit.Wall != North {
		t.Errorf("corner tie: got %+v ok=%v, want north", hit, ok)
	}
}
