package binder

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bookswap/bookswap/pkg/models"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 4

// passwordValidator requires at least minPasswordLength characters that aren't
// all whitespace. Pointer fields are dereferenced by the validator, so nil
// pointers never reach this function.
func passwordValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return false
	}
	return utf8.RuneCountInString(value) >= minPasswordLength
}

// conditionValidator ensures the value is one of the known book conditions.
func conditionValidator(fl validator.FieldLevel) bool {
	return slices.Contains(models.BookConditions, fl.Field().String())
}
