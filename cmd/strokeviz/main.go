package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	isatty "github.com/mattn/go-isatty"

	"strokeviz/internal/dump"
	"strokeviz/internal/export"
	"strokeviz/internal/scene"
	"strokeviz/internal/tui"
)

func main() {
	save := flag.String("save", "", "write an annotated PNG to this path instead of opening the viewer")
	width := flag.Int("width", export.DefaultWidth, "exported image width in pixels")
	height := flag.Int("height", export.DefaultHeight, "exported image height in pixels")
	margin := flag.Float64("margin", scene.DefaultMargin, "view padding around the data extent, in data units")
	grid := flag.Bool("grid", true, "draw the coordinate grid")
	flag.Parse()

	text, fromFile, err := collect(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	sc, err := scene.Build(dump.ExtractStrokes(text), scene.Options{Margin: *margin})
	if err != nil {
		fmt.Fprintln(os.Stderr, "no Bézier segments found in input")
		os.Exit(1)
	}

	if *save != "" {
		if err := export.PNG(sc, *save, export.Options{Width: *width, Height: *height, Grid: *grid}); err != nil {
			log.Fatal(err)
		}
		return
	}

	if os.Getenv("STROKEVIZ_DEBUG") != "" {
		f, err := tea.LogToFile("strokeviz-debug.log", "strokeviz")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	var progOpts []tea.ProgramOption
	if !fromFile && !isatty.IsTerminal(os.Stdin.Fd()) {
		// the dump came down stdin; take key input from the terminal
		if tty, err := os.Open("/dev/tty"); err == nil {
			defer tty.Close()
			progOpts = append(progOpts, tea.WithInput(tty))
		}
	}
	if err := tui.Show(sc, tui.Options{Margin: *margin, Grid: *grid}, progOpts...); err != nil {
		log.Fatal(err)
	}
}

// collect returns the dump text from the positional file argument if
// given, otherwise from stdin until the END sentinel or EOF.
func collect(path string) (text string, fromFile bool, err error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", true, err
		}
		return string(b), true, nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Println("Paste your Bézier data. When done, type a line with only 'END' and press Enter.")
	}
	text, err = dump.Read(os.Stdin)
	if err != nil {
		return "", false, fmt.Errorf("reading input: %w", err)
	}
	return text, false, nil
}
