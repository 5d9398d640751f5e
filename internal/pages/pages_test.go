package pages

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"wordraffle/internal/models"
)

func buildCSV(rows func(i int) string) string {
	var b strings.Builder
	b.WriteString("index,page\n")
	for i := 1; i <= models.MaxWordIndex; i++ {
		if row := rows(i); row != "" {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func TestDefault(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Expected embedded table to load, but got %v", err)
	}
	if table.Len() != models.MaxWordIndex {
		t.Fatalf("Expected %d indices, but got %d", models.MaxWordIndex, table.Len())
	}

	fixtures := map[int]int{
		1:    14,
		5:    14,
		6:    15,
		10:   16,
		1928: 442,
		2027: 464,
	}
	for index, want := range fixtures {
		if got := table.MustPage(index); got != want {
			t.Errorf("Expected index %d on page %d, but got %d", index, want, got)
		}
	}

	again, _ := Default()
	if again != table {
		t.Error("Expected Default to return the same table on every call")
	}
}

func TestTable_Page(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{0, -1, models.MaxWordIndex + 1} {
		if _, ok := table.Page(index); ok {
			t.Errorf("Expected index %d to be out of range", index)
		}
	}

	t.Run("MustPage panics out of range", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected a panic for index 0")
			}
		}()
		table.MustPage(0)
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "missing index",
			data: buildCSV(func(i int) string {
				if i == 700 {
					return ""
				}
				return fmt.Sprintf("%d,%d", i, i)
			}),
			want: ErrMissingIndex,
		},
		{
			name: "duplicate index",
			data: buildCSV(func(i int) string {
				if i == 3 {
					return "2,2"
				}
				return fmt.Sprintf("%d,%d", i, i)
			}),
			want: ErrDuplicateIndex,
		},
		{
			name: "index out of range",
			data: buildCSV(func(i int) string { return fmt.Sprintf("%d,%d", i, i) }) + "2028,3000\n",
			want: ErrIndexRange,
		},
		{
			name: "zero page",
			data: buildCSV(func(i int) string {
				if i == 10 {
					return "10,0"
				}
				return fmt.Sprintf("%d,%d", i, i)
			}),
			want: ErrBadPage,
		},
		{
			name: "decreasing pages",
			data: buildCSV(func(i int) string {
				if i == 50 {
					return "50,1"
				}
				return fmt.Sprintf("%d,%d", i, i)
			}),
			want: ErrPageOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, but got %v", tt.want, err)
			}
		})
	}

	t.Run("bad header", func(t *testing.T) {
		if _, err := Load(strings.NewReader("word,page\n1,1\n")); err == nil {
			t.Fatal("Expected an error for a bad header, but got nil")
		}
	})

	t.Run("valid table", func(t *testing.T) {
		table, err := Load(strings.NewReader(buildCSV(func(i int) string {
			return fmt.Sprintf("%d, %d", i, 100+i/10)
		})))
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if got := table.MustPage(2027); got != 302 {
			t.Errorf("Expected page 302, but got %d", got)
		}
	})
}
