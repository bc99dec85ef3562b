package yuletide

import "testing"

func TestCursorDustLifecycle(t *testing.T) {
	d := NewCursorDust(testRand())
	d.Move(100, 100)
	if d.Count() != dustPerMove {
		t.Fatalf("Count = %d, want %d", d.Count(), dustPerMove)
	}
	size := d.motes.motes[0].size

	d.Update()
	assertWithin(t, "life", d.motes.motes[0].life, 1-dustDecay, 1e-12)
	assertWithin(t, "size", d.motes.motes[0].size, size*dustShrink, 1e-12)

	for i := 0; i < 60; i++ {
		d.Update()
	}
	if d.Count() != 0 {
		t.Errorf("Count = %d after 61 updates, want 0", d.Count())
	}
}

func TestCursorDustWarmColors(t *testing.T) {
	d := NewCursorDust(testRand())
	for i := 0; i < 20; i++ {
		d.Move(float64(i), 0)
	}
	for i, m := range d.motes.motes {
		if m.color.R < m.color.B {
			t.Fatalf("mote %d color %+v is not warm", i, m.color)
		}
		if m.vx < -0.75 || m.vx > 0.75 || m.vy < -0.75 || m.vy > 0.75 {
			t.Fatalf("mote %d velocity (%v, %v) outside ±0.75", i, m.vx, m.vy)
		}
	}
}

func TestCursorDustDraw(t *testing.T) {
	d := NewCursorDust(testRand())
	d.Move(10, 10)
	rec := newRecordSurface(100, 100)
	d.Draw(rec)
	if rec.count("circle") != dustPerMove || rec.count("glow") != dustPerMove {
		t.Errorf("calls %v, want %d circles and glows", rec.calls, dustPerMove)
	}
	d.Draw(nil)
}
