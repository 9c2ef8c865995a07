package gesture

import "testing"

func TestClassifyZone_Bands(t *testing.T) {
	const w, h = 1080.0, 1920.0

	// Left 20% is brightness
	if z := ClassifyZone(0.1*w, 960, w, h); z != ZoneBrightness {
		t.Errorf("x=0.1*w: expected brightness, got %s", z)
	}

	// Right 20% is volume
	if z := ClassifyZone(0.9*w, 960, w, h); z != ZoneVolume {
		t.Errorf("x=0.9*w: expected volume, got %s", z)
	}

	// Middle 60% is seek
	if z := ClassifyZone(0.5*w, 960, w, h); z != ZoneSeek {
		t.Errorf("x=0.5*w: expected seek, got %s", z)
	}
}

func TestClassifyZone_Deterministic(t *testing.T) {
	const w, h = 1080.0, 1920.0

	// Pure function: repeated calls with the same inputs always agree
	first := ClassifyZone(100, 960, w, h)
	for i := 0; i < 100; i++ {
		if z := ClassifyZone(100, 960, w, h); z != first {
			t.Fatalf("classification changed between calls: %s != %s", z, first)
		}
	}
}

func TestClassifyZone_OutOfBoundsClamps(t *testing.T) {
	const w, h = 1080.0, 1920.0

	if z := ClassifyZone(-50, 960, w, h); z != ZoneBrightness {
		t.Errorf("negative x should clamp to brightness, got %s", z)
	}
	if z := ClassifyZone(w+50, 960, w, h); z != ZoneVolume {
		t.Errorf("x past width should clamp to volume, got %s", z)
	}
}

func TestClassifyZone_ZeroViewport(t *testing.T) {
	if z := ClassifyZone(100, 100, 0, 0); z != ZoneNone {
		t.Errorf("zero viewport should classify as none, got %s", z)
	}
	if z := ClassifyZone(100, 100, 1080, 0); z != ZoneNone {
		t.Errorf("zero height should classify as none, got %s", z)
	}
}

func TestClassifyZone_FullHeight(t *testing.T) {
	const w, h = 1080.0, 1920.0

	// Bands span the full viewport height
	for _, y := range []float64{0, h / 2, h} {
		if z := ClassifyZone(100, y, w, h); z != ZoneBrightness {
			t.Errorf("y=%f: expected brightness, got %s", y, z)
		}
	}
}

func TestZoneConfig_CustomFractions(t *testing.T) {
	c := ZoneConfig{LeftFraction: 0.3, RightFraction: 0.3}
	const w, h = 1000.0, 1000.0

	if z := c.Classify(250, 500, w, h); z != ZoneBrightness {
		t.Errorf("x=250 with 30%% band: expected brightness, got %s", z)
	}
	if z := c.Classify(750, 500, w, h); z != ZoneVolume {
		t.Errorf("x=750 with 30%% band: expected volume, got %s", z)
	}
	if z := c.Classify(500, 500, w, h); z != ZoneSeek {
		t.Errorf("x=500: expected seek, got %s", z)
	}
}
