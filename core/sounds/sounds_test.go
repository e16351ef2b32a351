package sounds

import (
	"testing"

	"github.com/bnavac/soundscape/core/geo"
)

func TestGlyphSound(t *testing.T) {
	sound := Glyph(GlyphPOISense)

	if sound.Kind() != KindGlyph {
		t.Fatalf("expected glyph kind, got %q", sound.Kind())
	}
	if sound.Glyph() != GlyphPOISense {
		t.Fatalf("expected glyph asset %q, got %q", GlyphPOISense, sound.Glyph())
	}
	if sound.Location() != nil {
		t.Fatalf("expected glyph sound to carry no location")
	}
}

func TestSpokenAtCopiesLocation(t *testing.T) {
	location := geo.Location{Latitude: 1, Longitude: 2}
	sound := SpokenAt("a cafe", location)

	got := sound.Location()
	if got == nil {
		t.Fatalf("expected spatialized sound to expose a location")
	}
	got.Latitude = 99
	if second := sound.Location(); second.Latitude != 1 {
		t.Fatalf("expected location mutation to not leak into sound, got latitude %f", second.Latitude)
	}
}

func TestLayeredEnforcesBounds(t *testing.T) {
	if _, err := Layered(); err == nil {
		t.Fatalf("expected error for empty layered sound")
	}

	layers := []Sound{Glyph("a"), Glyph("b"), Glyph("c"), Glyph("d"), Glyph("e")}
	if _, err := Layered(layers...); err == nil {
		t.Fatalf("expected error for layered sound above %d layers", MaxLayers)
	}

	sound, err := Layered(Glyph("a"), Spoken("b"))
	if err != nil {
		t.Fatalf("expected layered sound to build, got %v", err)
	}
	if len(sound.Layers()) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(sound.Layers()))
	}
}

func TestLayersAreCopied(t *testing.T) {
	original := []Sound{Glyph("a"), Glyph("b")}
	sound, err := Layered(original...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	original[0] = Spoken("mutated")
	if layers := sound.Layers(); layers[0].Kind() != KindGlyph {
		t.Fatalf("expected layered sound to be unaffected by caller mutation")
	}

	exposed := sound.Layers()
	exposed[1] = Spoken("mutated")
	if layers := sound.Layers(); layers[1].Kind() != KindGlyph {
		t.Fatalf("expected Layers to return a defensive copy")
	}
}
