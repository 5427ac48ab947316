package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/common"
)

const (
	// maxKeptErrors bounds LoadResult.Errors; the count is always exact.
	maxKeptErrors = 5
	// maxRowBytes is far above any "<timestamp>,<value>" row. Longer lines
	// are malformed and only their first maxRowText bytes are kept.
	maxRowBytes = 4096
	maxRowText  = 64
)

var (
	ErrStrict     = errors.New("malformed row in strict mode")
	errRowTooLong = errors.New("row too long")
)

// RowError describes one row that could not be decoded.
type RowError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: malformed row %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoadResult reports what happened while loading one channel file.
type LoadResult struct {
	Path      string
	Missing   bool
	Rows      int
	Malformed int
	Errors    []*RowError
}

// Load reads a "<timestamp>,<value>" file from dir. A missing file is not
// an error: it yields an empty series with Missing set. Malformed rows are
// skipped and counted unless strict is set, in which case the first one
// aborts the load.
func Load(dir, file string, strict bool) (common.Series, LoadResult, error) {
	path := filepath.Join(dir, file)
	res := LoadResult{Path: path}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		glog.Warningf("File %s does not exist.", path)
		res.Missing = true
		return common.Series{}, res, nil
	} else if err != nil {
		return common.Series{}, res, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f, path, strict, &res)
	if err != nil {
		return common.Series{}, res, err
	}
	if res.Malformed > 0 {
		glog.Warningf("%s: skipped %d malformed rows of %d", path, res.Malformed, res.Rows)
	}
	return s, res, nil
}

// Decode parses rows from r, filling res with row and error counts. name is
// used in error messages only.
func Decode(r io.Reader, name string, strict bool, res *LoadResult) (common.Series, error) {
	var s common.Series
	br := bufio.NewReaderSize(r, maxRowBytes)
	line := 0
	for {
		raw, long, err := readRow(br)
		if err == io.EOF {
			break
		} else if err != nil {
			return common.Series{}, fmt.Errorf("read %s: %w", name, err)
		}
		line++
		text := strings.TrimSpace(raw)
		if text == "" && !long {
			continue
		}
		res.Rows++

		var x, y float64
		if long {
			err = errRowTooLong
		} else {
			x, y, err = decodeRow(text)
		}
		if err != nil {
			rerr := &RowError{File: name, Line: line, Text: text, Err: err}
			if strict {
				return common.Series{}, fmt.Errorf("%w: %w", ErrStrict, rerr)
			}
			res.Malformed++
			if len(res.Errors) < maxKeptErrors {
				res.Errors = append(res.Errors, rerr)
			}
			continue
		}
		s.Add(x, y)
	}
	return s, nil
}

// readRow returns the next line of br without its terminator. A line longer
// than maxRowBytes is consumed whole and returned truncated with long set.
func readRow(br *bufio.Reader) (row string, long bool, err error) {
	var b []byte
	for {
		chunk, more, rerr := br.ReadLine()
		if rerr == io.EOF && (len(b) > 0 || long) {
			return string(b), long, nil
		} else if rerr != nil {
			return "", false, rerr
		}
		if !long {
			b = append(b, chunk...)
			if len(b) > maxRowBytes {
				b, long = b[:maxRowText], true
			}
		}
		if !more {
			return string(b), long, nil
		}
	}
}

func decodeRow(text string) (x, y float64, err error) {
	cols := strings.Split(text, ",")
	if len(cols) < 2 {
		return 0, 0, fmt.Errorf("want 2 columns, got %d", len(cols))
	}
	if x, err = parseFinite(cols[0]); err != nil {
		return 0, 0, err
	}
	if y, err = parseFinite(cols[1]); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseFinite(col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", strings.TrimSpace(col))
	}
	return v, nil
}
