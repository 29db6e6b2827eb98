package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertPPM(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.ppm")
	ppm := "P3\n2 1\n255\n255 0 0   0 0 255\n"
	if err := os.WriteFile(src, []byte(ppm), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "frame.png")
	if err := convert(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("got bounds %v, want 2x1", b)
	}
}

func TestConvertRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.ppm")
	if err := os.WriteFile(src, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "broken.png")
	if err := convert(src, dst); err == nil {
		t.Fatal("expected a decode error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("failed conversion left an output file behind")
	}
}
