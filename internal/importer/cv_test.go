package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanText_WordBoundaries(t *testing.T) {
	known := []string{"Go", "Java", "JavaScript", "Rust"}
	text := "Five years of JavaScript and Go. Also dabbled in Rustlang tooling."

	got := ScanText(text, known)
	// "Java" must not fire inside "JavaScript", nor "Rust" inside "Rustlang".
	require.Equal(t, []string{"Go", "JavaScript"}, got)
}

func TestScanText_CaseInsensitiveKeepsCatalogSpelling(t *testing.T) {
	got := ScanText("experienced in POSTGRES and golang", []string{"Postgres", "Golang"})
	require.Equal(t, []string{"Golang", "Postgres"}, got)
}

func TestScanText_SymbolNames(t *testing.T) {
	known := []string{"C++", "C#", "Node.js"}
	text := "Backend services in C++ and node.js."

	got := ScanText(text, known)
	require.Equal(t, []string{"C++", "Node.js"}, got)
}

func TestScanText_DeduplicatesAndSorts(t *testing.T) {
	got := ScanText("Go Go Go, redis, Redis", []string{"Redis", "Go"})
	require.Equal(t, []string{"Go", "Redis"}, got)
}

func TestScanText_EmptyInputs(t *testing.T) {
	require.Empty(t, ScanText("", []string{"Go"}))
	require.Empty(t, ScanText("some text", nil))
	require.Empty(t, ScanText("   ", []string{"Go"}))
}
