// Package assets holds the files compiled into the server binary:
// the default word bank and the browser frontend.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed wordbank.txt static
var FS embed.FS

// readLines returns the trimmed, non-comment lines of an embedded file.
// Case is preserved; words are compared byte for byte.
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
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordBank returns the embedded default word bank in file order.
func WordBank() ([]string, error) {
	return readLines("wordbank.txt")
}

// Static returns the frontend files rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		// static is embedded above; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
