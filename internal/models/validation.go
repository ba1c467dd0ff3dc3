package models

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength    = 100
	MaxMessageLength = 1000
	// MinMessageLength is only enforced by the submission form.
	MinMessageLength = 10

	MsgRequiredFields = "Name, message, and rating are required fields"
	MsgRatingRange    = "Rating must be between 1 and 5"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("wholenumber", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})
	return v
}

// FieldError describes one failed rule for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of ValidateFeedback. An empty result means
// the input is acceptable.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Has reports whether field failed rule.
func (r ValidationResult) Has(field, rule string) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Rule == rule {
			return true
		}
	}
	return false
}

func (r ValidationResult) MissingRequired() bool {
	for _, e := range r.Errors {
		if e.Rule == "required" {
			return true
		}
	}
	return false
}

func (r ValidationResult) RatingOutOfRange() bool {
	return r.Has("rating", "min") || r.Has("rating", "max")
}

func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// Message joins every field message into one line.
func (r ValidationResult) Message() string {
	return strings.Join(r.Messages(), ", ")
}

type validateOptions struct {
	minMessageLength int
}

type ValidateOption func(*validateOptions)

// WithMinMessageLength adds a minimum length rule for the message.
func WithMinMessageLength(n int) ValidateOption {
	return func(o *validateOptions) {
		o.minMessageLength = n
	}
}

// ValidateFeedback checks a submission after trimming its text fields. The
// same rules back the HTTP layer, the repository and the submission form.
func ValidateFeedback(in FeedbackInput, opts ...ValidateOption) ValidationResult {
	var o validateOptions
	for _, opt := range opts {
		opt(&o)
	}

	in = in.Trimmed()
	var result ValidationResult

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			result.Errors = append(result.Errors, FieldError{Field: "", Rule: "invalid", Message: err.Error()})
			return result
		}
		for _, fe := range verrs {
			result.Errors = append(result.Errors, FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
	}

	if o.minMessageLength > 0 && in.Message != "" && utf8.RuneCountInString(in.Message) < o.minMessageLength {
		result.Errors = append(result.Errors, FieldError{
			Field:   "message",
			Rule:    "min",
			Message: fmt.Sprintf("Message must be at least %d characters long", o.minMessageLength),
		})
	}

	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "name.required":
		return "Name is required"
	case "message.required":
		return "Message is required"
	case "rating.required":
		return "Rating is required"
	case "name.max":
		return "Name cannot exceed 100 characters"
	case "message.max":
		return "Message cannot exceed 1000 characters"
	case "rating.min", "rating.max":
		return MsgRatingRange
	case "rating.wholenumber":
		return "Rating must be a whole number"
	}
	return fe.Error()
}
