// assets/embed.go
//
// Embedded game data. The default word bank ships inside the binary so the
// server and the terminal client run without any files on disk.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed wordbank.txt
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file,
// trimmed and uppercased.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// WordBank returns the embedded default word bank.
func WordBank() ([]string, error) {
	return readLines("wordbank.txt")
}
