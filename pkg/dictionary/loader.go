/*
Package dictionary feeds plain text word lists into a matcher.

Each file is read line by line and every whitespace separated token is handed
to the matcher, which applies its own length gate. A Loader can cap the total
number of tokens it will feed across all files with maxWords.
*/
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
)

// WordSink receives tokens from a Loader. suggest.PrefixMatches satisfies it.
type WordSink interface {
	Load(strs ...string) int
	Size() int
}

// LoadStats summarizes one LoadFiles call.
type LoadStats struct {
	Files  int // files read without error
	Tokens int // tokens handed to the sink
	Size   int // sink size afterwards
}

// Loader reads word lists into a WordSink
type Loader struct {
	sink     WordSink
	maxWords int
	fed      int
}

// NewLoader creates a loader. A maxWords of 0 means no limit.
func NewLoader(sink WordSink, maxWords int) *Loader {
	if maxWords < 0 {
		maxWords = 0
	}
	return &Loader{sink: sink, maxWords: maxWords}
}

// Remaining returns how many more tokens may be fed, or -1 when unlimited.
func (l *Loader) Remaining() int {
	if l.maxWords == 0 {
		return -1
	}
	return l.maxWords - l.fed
}

// LoadReader feeds every token in r and returns how many were fed.
// Lines of any length are accepted.
func (l *Loader) LoadReader(r io.Reader) (int, error) {
	reader := bufio.NewReader(r)
	count := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return count, fmt.Errorf("failed to read word list: %w", err)
		}
		fields := strings.Fields(line)
		if left := l.Remaining(); left >= 0 && len(fields) > left {
			fields = fields[:left]
		}
		if len(fields) > 0 {
			l.sink.Load(fields...)
			l.fed += len(fields)
			count += len(fields)
		}
		if l.Remaining() == 0 {
			log.Debugf("Word limit of %d reached", l.maxWords)
			return count, nil
		}
		if err != nil {
			return count, nil
		}
	}
}

// LoadFile validates and reads a single .txt word list
func (l *Loader) LoadFile(path string) (int, error) {
	if err := ValidateFileFormat(path, FormatText); err != nil {
		return 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	n, err := l.LoadReader(file)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d tokens from %s", n, path)
	return n, nil
}

// LoadFiles reads every path in order. A failing file does not stop the
// others, all failures are returned together.
func (l *Loader) LoadFiles(paths ...string) (LoadStats, error) {
	var stats LoadStats
	var result error
	for _, path := range paths {
		if l.Remaining() == 0 {
			log.Warnf("Skipping %s, word limit reached", path)
			continue
		}
		n, err := l.LoadFile(path)
		stats.Tokens += n
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		stats.Files++
	}
	stats.Size = l.sink.Size()
	return stats, result
}
