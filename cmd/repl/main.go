package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"gobfal/pkg/bf"
	"gobfal/pkg/bfal"
)

const (
	historyFile = ".bfal_history"
	prompt      = "bfal> "
)

const helpText = `Lines are appended to the current program. Commands:
  :run     compile the program and run it
  :bf      show the compiled brainfuck code
  :list    show the program
  :reset   discard the program
  :quit    exit
`

func main() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("BFAL REPL. Ctrl+D exits, :help lists commands.")

	var program []string
	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			break
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if !runCommand(trimmed, &program) {
				break
			}
			continue
		}

		// Validate eagerly so mistakes surface on the offending line; an
		// unclosed block is fine mid-session.
		candidate := append(append([]string{}, program...), input)
		if _, err := bfal.Parse(strings.Join(candidate, "\n")); err != nil && !isUnclosedBlock(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		program = candidate
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

func runCommand(cmd string, program *[]string) bool {
	switch cmd {
	case ":quit", ":q":
		return false

	case ":help":
		fmt.Print(helpText)

	case ":list":
		for _, l := range *program {
			fmt.Println(l)
		}

	case ":reset":
		*program = nil

	case ":bf", ":run":
		code, err := bfal.Compile(strings.Join(*program, "\n"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			break
		}
		if cmd == ":bf" {
			fmt.Println(code)
			break
		}

		var out bytes.Buffer
		ip := bf.New(bf.DefaultMemorySize)
		ip.SetStreams(os.Stdin, &out)
		if err = ip.Load(code); err == nil {
			err = ip.Run()
		}
		os.Stdout.Write(out.Bytes())
		if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
			fmt.Println()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "runtime error:", err)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown command", cmd)
	}
	return true
}

func isUnclosedBlock(err error) bool {
	var pe *bfal.ParseError
	return errors.As(err, &pe) && strings.HasPrefix(pe.Reason, "unclosed")
}
