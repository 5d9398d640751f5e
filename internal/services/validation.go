package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"wordraffle/internal/models"
)

// Validation errors. The messages are shown next to the input field as is.
var (
	ErrRequired   = errors.New("入力必須です")
	ErrNotNumber  = errors.New("数字を入力してください")
	ErrNotInteger = errors.New("整数値を入力してください")
	ErrTooSmall   = errors.New("1以上にしてください")
	ErrTooLarge   = errors.New("2027以下にしてください")
)

// ValidateNumberOfWords coerces raw form text to a word count in
// [1, models.MaxWordIndex].
func ValidateNumberOfWords(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrRequired
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrNotNumber
	}
	if math.IsNaN(f) {
		return 0, ErrNotNumber
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrNotInteger
	}

	// Clamp before converting so huge values cannot overflow int; the bounds
	// are then reported by the range check.
	f = math.Max(0, math.Min(f, models.MaxWordIndex+1))
	input := models.RaffleInput{NumberOfWords: int(f)}
	if err := validateInput(&input); err != nil {
		return 0, err
	}
	return input.NumberOfWords, nil
}

// validateInput checks the binding tags of a RaffleInput with gin's validator.
func validateInput(input *models.RaffleInput) error {
	err := binding.Validator.ValidateStruct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "min":
				return ErrTooSmall
			case "max":
				return ErrTooLarge
			}
		}
	}
	return err
}

// ErrorCode returns a short machine-readable name for a validation error,
// or "" when err is not one.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRequired):
		return "required"
	case errors.Is(err, ErrNotNumber):
		return "not_number"
	case errors.Is(err, ErrNotInteger):
		return "not_integer"
	case errors.Is(err, ErrTooSmall):
		return "too_small"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	default:
		return ""
	}
}

// IsValidationError reports whether err came from input validation.
func IsValidationError(err error) bool {
	return ErrorCode(err) != ""
}
