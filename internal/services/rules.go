package services

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlank complements validation.Required, which accepts whitespace.
var notBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.ErrRequired,
)
