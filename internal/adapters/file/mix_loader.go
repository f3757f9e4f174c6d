package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// LoadMix reads a composition: one amount per line. Blank lines and lines
// starting with '#' are skipped.
func LoadMix(r io.Reader) (*domain.Mix, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		amount, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, text, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("line %d: negative amount %g", line, amount)
		}
		values = append(values, amount)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mix: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("mix has no amounts")
	}
	return domain.NewMix(values...), nil
}

// LoadMixFile opens path and parses it with LoadMix.
func LoadMixFile(path string) (*domain.Mix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mix file: %w", err)
	}
	defer f.Close()

	m, err := LoadMix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
