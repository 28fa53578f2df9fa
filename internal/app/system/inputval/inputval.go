// Package inputval validates form input structs using struct tags.
//
// Handlers declare a small input struct per form with `validate` rules and a
// human-facing `label`, then call Validate and re-render the form with
// Result.First() when it fails:
//
//	type createPostInput struct {
//	    Text string `validate:"required" label:"Text"`
//	}
//
//	if res := inputval.Validate(createPostInput{Text: text}); res.HasErrors() {
//	    h.reRenderWithError(w, r, data, res.First())
//	    return
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their `label` tag so messages read naturally.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if label := fld.Tag.Get("label"); label != "" {
				return label
			}
			return fld.Name
		})
	})
	return v
}

// Result holds validation failures in declaration order.
type Result struct {
	errs []string
}

// HasErrors reports whether any field failed validation.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first failure message, or "" when valid.
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0]
}

// All returns every failure message.
func (r Result) All() []string { return r.errs }

// Validate checks a form input struct against its `validate` tags.
func Validate(input any) Result {
	err := instance().Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{errs: []string{"Invalid input."}}
	}

	var res Result
	for _, fe := range verrs {
		res.errs = append(res.errs, message(fe))
	}
	return res
}

// message turns a field error into a short human-readable sentence.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "alphanum":
		return fmt.Sprintf("%s may only contain letters and digits.", field)
	default:
		return fmt.Sprintf("%s is invalid (%s).", field, fe.Tag())
	}
}

// NonEmpty reports whether s has content after trimming. Convenience for
// handlers that validate a single text field without an input struct.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
