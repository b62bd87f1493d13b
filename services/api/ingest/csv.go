package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVSource reads a delimited text file. The delimiter is sniffed from the
// header line among comma, semicolon and tab.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string { return filepath.Base(s.Path) }

func (s *CSVSource) ReadTable(ctx context.Context) (Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}

	r := csv.NewReader(br)
	r.Comma = sniffDelimiter(string(first))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{Name: s.Name()}, nil
		}
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	t := Table{Name: s.Name(), Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read record: %w", err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func sniffDelimiter(sample string) rune {
	line, _, _ := strings.Cut(sample, "\n")
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
