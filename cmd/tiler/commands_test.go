package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func writeTestInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	if err := imaging.Save(imaging.New(32, 24, color.NRGBA{R: 80, G: 120, B: 200, A: 255}), path); err != nil {
		t.Fatalf("save input: %v", err)
	}
	return path
}

func testTileFlags() tileFlags {
	return tileFlags{
		MinScale:    1.2,
		MaxScale:    1.6,
		Seed:        1,
		Filter:      "lanczos",
		InputFilter: "lanczos",
	}
}

func TestGIFCmd_RejectsBadFPSUpFront(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	cmd := &GIFCmd{
		Input:     writeTestInput(t),
		Output:    out,
		Frames:    3,
		Tiles:     2,
		FPS:       0,
		TileSize:  0.2,
		tileFlags: testTileFlags(),
	}
	err := cmd.Run()
	if err == nil {
		t.Fatal("fps 0 should fail")
	}
	if !strings.Contains(err.Error(), "fps") {
		t.Errorf("error %q does not name the fps flag", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("no output should be written; stat err = %v", statErr)
	}
}

func TestGIFCmd_RejectsNonGIFOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	cmd := &GIFCmd{
		Input:     writeTestInput(t),
		Output:    out,
		Frames:    3,
		Tiles:     2,
		FPS:       6,
		TileSize:  0.2,
		tileFlags: testTileFlags(),
	}
	err := cmd.Run()
	if err == nil {
		t.Fatal("non-gif output extension should fail")
	}
	if !strings.Contains(err.Error(), ".gif") {
		t.Errorf("error %q does not explain the extension requirement", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("no output should be written; stat err = %v", statErr)
	}
}

func TestGIFCmd_WritesGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	cmd := &GIFCmd{
		Input:     writeTestInput(t),
		Output:    out,
		Frames:    2,
		Tiles:     2,
		FPS:       6,
		TileSize:  0.2,
		tileFlags: testTileFlags(),
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}
