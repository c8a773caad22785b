package bfal

import (
	"strings"
	"testing"
)

func benchSource() string {
	var b strings.Builder
	b.WriteString("ALIAS COUNT R0\nALIAS ACC R1\n")
	b.WriteString("SET COUNT 200\n")
	b.WriteString("WHILE NZR COUNT\n")
	for i := 0; i < 8; i++ {
		b.WriteString("INC ACC 3\n")
		b.WriteString("IF NEQ ACC 100\nDEC ACC\nENDIF\n")
	}
	b.WriteString("DEC COUNT\nENDWHILE\n")
	b.WriteString(`PRT "done\n"` + "\n")
	return b.String()
}

func BenchmarkCompile(b *testing.B) {
	src := benchSource()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	src := benchSource()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}
