package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path whose
// level is at least as severe as minLevel. Lines without a level= field are
// kept. A missing file yields no lines.
func Read(path string, maxLines int, minLevel logrus.Level) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !Passes(line, minLevel) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Passes reports whether a logrus text-format line is at least as severe
// as minLevel.
func Passes(line string, minLevel logrus.Level) bool {
	lvl, ok := LineLevel(line)
	if !ok {
		return true
	}
	// logrus levels are ordered from panic (0) to trace (6).
	return lvl <= minLevel
}

// LineLevel extracts the level= field of a logrus text-format line.
func LineLevel(line string) (logrus.Level, bool) {
	at := strings.Index(line, "level=")
	if at < 0 {
		return 0, false
	}
	value := line[at+len("level="):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}
	lvl, err := logrus.ParseLevel(strings.Trim(value, `"`))
	if err != nil {
		return 0, false
	}
	return lvl, true
}
