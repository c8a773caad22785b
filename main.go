package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gobfal/pkg/bf"
	"gobfal/pkg/bfal"
)

func main() {
	inPath := flag.String("in", "", "input assembly file path")
	outPath := flag.String("out", "", "output brainfuck file path (default: input with .bf extension)")
	runProgram := flag.Bool("run", false, "run the compiled output on the interpreter")
	runBFPath := flag.String("run-bf", "", "run an existing brainfuck file on the interpreter")
	memSize := flag.Int("mem", bf.DefaultMemorySize, "interpreter tape size in cells")
	flag.Parse()

	if *runProgram && *runBFPath != "" {
		fmt.Fprintln(os.Stderr, "use either -run or -run-bf, not both")
		os.Exit(2)
	}

	compiled := ""
	if *inPath != "" {
		source, err := os.ReadFile(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
			os.Exit(1)
		}

		compiled, err = bfal.Compile(string(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
			os.Exit(1)
		}

		output := *outPath
		if output == "" {
			output = defaultOutputPath(*inPath)
		}
		if err := os.WriteFile(output, []byte(compiled), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output file %q: %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("compiled %d opcodes -> %s\n", len(compiled), output)
	}

	if *inPath == "" && *runBFPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to compile, -run to run compiled output, or -run-bf <file> to run an existing program")
		flag.Usage()
		os.Exit(2)
	}

	program := compiled
	if *runBFPath != "" {
		data, err := os.ReadFile(*runBFPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read brainfuck file %q: %v\n", *runBFPath, err)
			os.Exit(1)
		}
		program = string(data)
	} else if !*runProgram {
		return
	} else if *inPath == "" {
		fmt.Fprintln(os.Stderr, "-run requires -in, or use -run-bf <file>")
		os.Exit(2)
	}

	ip := bf.New(*memSize)
	ip.SetStreams(os.Stdin, os.Stdout)
	if err := ip.Load(program); err != nil {
		fmt.Fprintf(os.Stderr, "invalid brainfuck program: %v\n", err)
		os.Exit(1)
	}
	if err := ip.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		os.Exit(1)
	}
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".bf"
	}
	return strings.TrimSuffix(inPath, ext) + ".bf"
}
