// internal/words/words.go
//
// Word Bank management.
//
// Responsibilities:
//   - Load the fixed vocabulary once at startup, from (in priority order)
//     an explicit list, a file, or the embedded default.
//   - Keep the bank ordered and read-only; Bank() hands out copies.
//   - Reject blank and duplicate entries so every game can index by word.
//
// Words are compared byte for byte: "DÜ" and "DU" and "dü" are all distinct.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordmatch/assets"
)

var (
	ErrEmptyBank     = errors.New("words: bank is empty")
	ErrDuplicateWord = errors.New("words: duplicate word")
)

// Source selects where the bank comes from. List wins over File;
// if both are empty the embedded default is used.
type Source struct {
	List []string
	File string
}

var (
	initOnce   sync.Once
	bank       []string
	initialErr error
)

// Init loads the process-wide bank exactly once.
func Init(src Source) error {
	initOnce.Do(func() {
		list, err := Load(src)
		if err != nil {
			initialErr = err
			return
		}
		bank = list
	})
	return initialErr
}

// Load resolves src into a validated word list without touching package state.
func Load(src Source) ([]string, error) {
	var (
		list []string
		err  error
	)
	switch {
	case len(src.List) > 0:
		list = normalize(src.List)
	case src.File != "":
		list, err = readWordFile(src.File)
	default:
		list, err = assets.WordBank()
	}
	if err != nil {
		return nil, err
	}
	if err := validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func validate(list []string) error {
	if len(list) == 0 {
		return ErrEmptyBank
	}
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateWord, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// Bank returns a copy of the loaded bank in its configured order.
func Bank() []string {
	return append([]string(nil), bank...)
}

// Stats returns the number of loaded words.
func Stats() int { return len(bank) }
