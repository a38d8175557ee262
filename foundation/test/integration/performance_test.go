// File: performance_test.go
// Title: Lox Pipeline Benchmarks
// Description: Benchmarks for scanning, parsing and running generated
//              programs of increasing size.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial performance benchmarks
// - 2025-10-17 v0.2.0: Pipeline benchmarks

package integration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/foundation/lox/environment"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// generateProgram builds n statement groups mixing declarations,
// arithmetic, string concatenation and printing
func generateProgram(n int) string {
	var b strings.Builder
	b.WriteString("var total = 0;\nvar label = \"sum\";\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "var v%d = (%d + 2) * 3 - %d / 4;\n", i, i, i)
		fmt.Fprintf(&b, "total = total + v%d;\n", i)
		fmt.Fprintf(&b, "label = label + \"!\";\n")
	}
	b.WriteString("print total;\nprint label == \"sum\";\n")
	return b.String()
}

func newBenchEngine(b *testing.B) *mdwlox.Engine {
	b.Helper()
	engine, err := mdwlox.NewEngine(mdwlox.Options{Logger: mdwlog.NewNop(), Stdout: io.Discard})
	if err != nil {
		b.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

var sizes = []int{10, 100, 1000}

func BenchmarkScan(b *testing.B) {
	for _, n := range sizes {
		source := generateProgram(n)
		b.Run(fmt.Sprintf("statements_%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(source)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				scanner.Scan(source)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	engine := newBenchEngine(b)
	for _, n := range sizes {
		source := generateProgram(n)
		b.Run(fmt.Sprintf("statements_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := engine.Parse(source); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRun(b *testing.B) {
	engine := newBenchEngine(b)
	ctx := context.Background()
	for _, n := range sizes {
		source := generateProgram(n)
		b.Run(fmt.Sprintf("statements_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := engine.Run(ctx, source, environment.New()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSessionIncremental(b *testing.B) {
	session := newBenchEngine(b).NewSession("bench")
	ctx := context.Background()
	if _, err := session.Run(ctx, "var counter = 0;"); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Run(ctx, "counter = counter + 1;"); err != nil {
			b.Fatal(err)
		}
	}
}
