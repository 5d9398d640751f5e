// Package pages resolves a word index to the printed page that contains it.
//
// The lookup table ships as an embedded CSV asset with an "index,page" header
// and one row per word index in 1..models.MaxWordIndex.
package pages

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"wordraffle/internal/models"
)

//go:embed pages.csv
var pagesCSV string

var (
	ErrMissingIndex   = errors.New("page table is missing an index")
	ErrDuplicateIndex = errors.New("page table has a duplicate index")
	ErrIndexRange     = errors.New("page table index out of range")
	ErrBadPage        = errors.New("page table has an invalid page number")
	ErrPageOrder      = errors.New("page table pages decrease")
)

// Table is an immutable word index to page mapping.
type Table struct {
	pages []int // pages[i] is the page of word index i; pages[0] is unused
}

// Load parses a page table from r and checks that it covers every index.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read page table header: %w", err)
	}
	if strings.ToLower(header[0]) != "index" || strings.ToLower(header[1]) != "page" {
		return nil, fmt.Errorf("unexpected page table header %v", header)
	}

	pages := make([]int, models.MaxWordIndex+1)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read page table: %w", err)
		}

		index, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parse index %q: %w", record[0], err)
		}
		if index < 1 || index > models.MaxWordIndex {
			return nil, fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		if pages[index] != 0 {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, index)
		}
		page, err := strconv.Atoi(record[1])
		if err != nil || page < 1 {
			return nil, fmt.Errorf("%w: index %d page %q", ErrBadPage, index, record[1])
		}
		pages[index] = page
	}

	for i := 1; i <= models.MaxWordIndex; i++ {
		if pages[i] == 0 {
			return nil, fmt.Errorf("%w: %d", ErrMissingIndex, i)
		}
		if i > 1 && pages[i] < pages[i-1] {
			return nil, fmt.Errorf("%w at index %d", ErrPageOrder, i)
		}
	}
	return &Table{pages: pages}, nil
}

// Page returns the page number for a word index.
func (t *Table) Page(index int) (int, bool) {
	if index < 1 || index >= len(t.pages) {
		return 0, false
	}
	return t.pages[index], true
}

// MustPage is Page for indices that were already validated.
func (t *Table) MustPage(index int) int {
	page, ok := t.Page(index)
	if !ok {
		panic(fmt.Sprintf("pages: index %d out of range", index))
	}
	return page
}

// Len returns the number of indices in the table.
func (t *Table) Len() int {
	return len(t.pages) - 1
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(strings.NewReader(pagesCSV))
})

// Default returns the table parsed from the embedded asset. The asset is
// parsed once per process.
func Default() (*Table, error) {
	return defaultTable()
}
