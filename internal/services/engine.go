package services

import (
	"math"
	"time"

	"wordraffle/internal/models"
	"wordraffle/internal/pages"
	"wordraffle/internal/random"
)

// RaffleEngine draws a contiguous word range and a study direction.
type RaffleEngine struct {
	rnd   random.Source
	pages *pages.Table
	now   func() time.Time
}

// NewRaffleEngine creates a RaffleEngine over the given random source and
// page table.
func NewRaffleEngine(rnd random.Source, table *pages.Table) *RaffleEngine {
	return &RaffleEngine{rnd: rnd, pages: table, now: time.Now}
}

// Draw picks a range of n words. The upper bound of the start draw keeps the
// range inside the vocabulary, so n = MaxWordIndex always yields 1..MaxWordIndex.
func (e *RaffleEngine) Draw(n int) (*models.RaffleResult, error) {
	input := models.RaffleInput{NumberOfWords: n}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	maxStart := models.MaxWordIndex - n + 1
	start := int(math.Floor(e.rnd.Float64()*float64(maxStart))) + 1
	end := start + n - 1
	// u >= 0.5 rounds up to mode 1.
	mode := models.Mode(math.Round(e.rnd.Float64()))

	return &models.RaffleResult{
		StartNumber:   start,
		EndNumber:     end,
		NumberOfWords: n,
		StartPage:     e.pages.MustPage(start),
		EndPage:       e.pages.MustPage(end),
		Mode:          mode,
		Direction:     mode.Direction(),
		DrawnAt:       e.now(),
	}, nil
}
