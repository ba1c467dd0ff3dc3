package ui

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/developia-II/feedback-collector/internal/client"
	"github.com/developia-II/feedback-collector/internal/models"
)

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is the banner shown under the form after a submission attempt.
type Notice struct {
	Kind    string
	Message string
}

// Dispatcher receives controller events. *client.Controller implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev client.Event) client.Result
}

// Form holds the submission form fields. Rating 0 means no star selected.
type Form struct {
	Name    string
	Message string
	Rating  int
	Notice  Notice
}

func (f *Form) input() models.FeedbackInput {
	in := models.FeedbackInput{Name: f.Name, Message: f.Message}
	if f.Rating > 0 {
		in.Rating = models.RatingPtr(float64(f.Rating))
	}
	return in
}

// Validate returns the first problem with the form, or "" when it can be sent.
// Checks run in order: name, message, rating, message length.
func (f *Form) Validate() string {
	res := models.ValidateFeedback(f.input(), models.WithMinMessageLength(models.MinMessageLength))
	switch {
	case res.OK():
		return ""
	case res.Has("name", "required"):
		return "Please enter your name"
	case res.Has("message", "required"):
		return "Please enter your message"
	case res.Has("rating", "required"):
		return "Please select a rating"
	case res.Has("message", "min"):
		return fmt.Sprintf("Message must be at least %d characters long", models.MinMessageLength)
	default:
		return res.Errors[0].Message
	}
}

// Submit validates locally and, when the form is acceptable, dispatches it.
// Fields are cleared on success. It reports whether the submission succeeded.
func (f *Form) Submit(ctx context.Context, d Dispatcher) bool {
	if msg := f.Validate(); msg != "" {
		f.Notice = Notice{Kind: NoticeError, Message: msg}
		return false
	}

	res := d.Dispatch(ctx, client.SubmitRequested{Input: f.input()})
	if !res.Success {
		f.Notice = Notice{Kind: NoticeError, Message: res.Message}
		return false
	}

	*f = Form{Notice: Notice{Kind: NoticeSuccess, Message: res.Message}}
	return true
}

func (f *Form) CharCount() string {
	return fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(f.Message), models.MaxMessageLength)
}

func (f *Form) RatingLabel() string {
	switch f.Rating {
	case 0:
		return ""
	case 5:
		return "Excellent!"
	case 4:
		return "Very Good!"
	case 3:
		return "Good!"
	case 2:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// Stars reports, for each of the five rating buttons, whether it is lit.
func (f *Form) Stars() []StarButton {
	return starButtons(f.Rating)
}

type StarButton struct {
	Value   int
	Lit     bool
	Checked bool
}

func starButtons(rating int) []StarButton {
	out := make([]StarButton, 5)
	for i := range out {
		out[i] = StarButton{Value: i + 1, Lit: i < rating, Checked: i+1 == rating}
	}
	return out
}
