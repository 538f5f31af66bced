// Package validation checks game fields and session dates. Every function is
// pure and safe for concurrent use; rejected input is reported as false,
// never as an error.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/inudochi/gameshelf/internal/domain"
)

// ErrInvalid marks input rejected by a validation rule.
var ErrInvalid = errors.New("invalid game input")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

type gameInput struct {
	Title      string `validate:"required"`
	Genre      string `validate:"required,genre"`
	MinPlayers int    `validate:"min=1"`
	MaxPlayers int    `validate:"min=1,gtefield=MinPlayers"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		err := validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return domain.IsGenre(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("validation: register genre rule: %v", err))
		}
	})
	return validate
}

// ValidateGameInput reports whether the fields describe a storable game.
func ValidateGameInput(title, genre string, minPlayers, maxPlayers int) bool {
	in := gameInput{
		Title:      strings.TrimSpace(title),
		Genre:      genre,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
	}
	return getValidator().Struct(&in) == nil
}

// ValidateGame applies ValidateGameInput to a whole record.
func ValidateGame(g domain.Game) bool {
	return ValidateGameInput(g.Title, g.Genre, g.MinPlayers, g.MaxPlayers)
}

// ValidateDate reports whether date falls on today or later.
func ValidateDate(date time.Time) bool {
	return ValidateDateAt(date, time.Now())
}

// ValidateDateAt compares calendar days in now's location.
func ValidateDateAt(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	return !startOfDay(date.In(now.Location())).Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
