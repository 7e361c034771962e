package validate

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// Collect drops the nil results of the helpers above.
func Collect(fields ...*ErrField) error {
	var out Errs
	for _, f := range fields {
		if f != nil {
			out = append(out, *f)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FromError extracts field errors from Errs or from ozzo validation errors,
// sorted by field name. ok is false for any other error.
func FromError(err error) (Errs, bool) {
	var errs Errs
	if errors.As(err, &errs) {
		return errs, true
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(Errs, 0, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out = append(out, ErrField{Field: field, Msg: ferr.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, true
}
