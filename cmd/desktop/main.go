package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"gobfal/pkg/bf"
	"gobfal/pkg/bfal"
)

const (
	screenWidth  = 640
	screenHeight = 480

	cellsPerRow   = 16
	shownCells    = 64
	stepsPerFrame = 256
)

// Game steps the interpreter a slice at a time and draws the head of the
// tape plus the program output each frame.
type Game struct {
	ip     *bf.Interpreter
	out    bytes.Buffer
	runErr error
}

func (g *Game) Update() error {
	if g.runErr != nil {
		return nil
	}
	for i := 0; i < stepsPerFrame; i++ {
		if g.ip.Halted() {
			break
		}
		if err := g.ip.Step(); err != nil {
			g.runErr = err
			break
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	tape := g.ip.Tape()
	ptr := g.ip.Pointer()

	for i := 0; i < shownCells && i < len(tape); i++ {
		x := (i%cellsPerRow)*38 + 8
		y := (i/cellsPerRow)*28 + 8
		marker := " "
		if i == ptr {
			marker = ">"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%3d", marker, tape[i]), x, y)
	}

	statusY := (shownCells/cellsPerRow)*28 + 24
	status := "running"
	switch {
	case g.runErr != nil:
		status = "error: " + g.runErr.Error()
	case g.ip.Halted():
		status = "halted"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, statusY)

	for i, row := range wrapOutput(g.out.String(), 76) {
		ebitenutil.DebugPrintAt(screen, row, 8, statusY+24+i*16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// wrapOutput splits printable output into fixed-width rows, dropping
// control bytes that DebugPrint cannot render.
func wrapOutput(s string, width int) []string {
	var rows []string
	row := make([]byte, 0, width)
	flush := func() {
		if len(row) > 0 {
			rows = append(rows, string(row))
			row = row[:0]
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || len(row) >= width {
			flush()
			if c == '\n' {
				continue
			}
		}
		if c < 32 || c > 126 {
			continue
		}
		row = append(row, c)
	}
	flush()
	return rows
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop <source.bfal>")
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read source file: %v", err)
	}

	code, err := bfal.Compile(string(source))
	if err != nil {
		log.Fatalf("compilation failed: %v", err)
	}

	g := &Game{ip: bf.New(bf.DefaultMemorySize)}
	g.ip.SetStreams(nil, &g.out)
	if err := g.ip.Load(code); err != nil {
		log.Fatalf("invalid brainfuck program: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("BFAL tape viewer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
