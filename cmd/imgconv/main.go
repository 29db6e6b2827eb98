// Command imgconv batch-converts the raster files a brush engine run
// leaves behind into PNG: every file in a directory whose extension is
// on the list is decoded and re-encoded as PNG next to the source,
// with a per-file success or failure line.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	_ "strokeviz/internal/netpbm"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the images to convert")
	exts := flag.String("ext", "ppm,bmp", "comma-separated list of extensions to convert")
	flag.Parse()

	want := map[string]bool{}
	for _, e := range strings.Split(*exts, ",") {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e != "" {
			want["."+strings.ToLower(e)] = true
		}
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	converted, failed := 0, 0
	for _, e := range entries {
		if e.IsDir() || !want[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		src := filepath.Join(*dir, e.Name())
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".png"
		if err := convert(src, dst); err != nil {
			fmt.Printf("error: %s: %v\n", src, err)
			failed++
			continue
		}
		fmt.Printf("converted %s -> %s\n", src, dst)
		converted++
	}

	fmt.Printf("%d converted, %d failed\n", converted, failed)
	if converted == 0 {
		os.Exit(1)
	}
}

// convert decodes src through the registered image formats and writes
// it to dst as PNG.
func convert(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
