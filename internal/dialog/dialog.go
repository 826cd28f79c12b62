// Package dialog describes the modal overlays rendered by the console.
// A dialog is always reached by URL, so closing it is a navigation.
package dialog

import "net/http"

// Kind distinguishes how a dialog treats an outside click.
type Kind int

const (
	// Confirm asks before a mutation; an outside click cancels.
	Confirm Kind = iota
	// Result shows the outcome of an action; an outside click acknowledges.
	Result
	// Detail shows a record read-only; an outside click acknowledges.
	Detail
)

func (k Kind) String() string {
	switch k {
	case Confirm:
		return "confirm"
	case Result:
		return "result"
	case Detail:
		return "detail"
	}
	return "unknown"
}

// Informational reports whether the dialog only presents information.
func (k Kind) Informational() bool {
	return k != Confirm
}

// Target is where a dialog button leads.
type Target struct {
	Label  string
	URL    string
	Method string
}

// Post reports whether the target submits a form.
func (t Target) Post() bool {
	return t.Method == http.MethodPost
}

// Dialog is the view state of one modal.
type Dialog struct {
	Kind    Kind
	Title   string
	Message string
	// Confirm is the primary action: the mutation for a confirm dialog,
	// the acknowledgement otherwise.
	Confirm Target
	// Cancel is absent on informational dialogs.
	Cancel *Target
}

// NewConfirm builds a confirm dialog that POSTs to action or returns to back.
func NewConfirm(title, message, label, action, back string) Dialog {
	return Dialog{
		Kind:    Confirm,
		Title:   title,
		Message: message,
		Confirm: Target{Label: label, URL: action, Method: http.MethodPost},
		Cancel:  &Target{Label: "Cancel", URL: back, Method: http.MethodGet},
	}
}

// NewResult builds a result dialog acknowledged by navigating to next.
func NewResult(title, message, next string) Dialog {
	return Dialog{
		Kind:    Result,
		Title:   title,
		Message: message,
		Confirm: Target{Label: "OK", URL: next, Method: http.MethodGet},
	}
}

// NewDetail builds a detail dialog closed by navigating to back.
func NewDetail(title, back string) Dialog {
	return Dialog{
		Kind:    Detail,
		Title:   title,
		Confirm: Target{Label: "Close", URL: back, Method: http.MethodGet},
	}
}

// Backdrop is where an outside click leads.
func (d Dialog) Backdrop() Target {
	if d.Kind == Confirm && d.Cancel != nil {
		return *d.Cancel
	}
	if d.Confirm.Post() {
		// never mutate on an outside click
		return Target{URL: d.Confirm.URL, Method: http.MethodGet}
	}
	return d.Confirm
}

// Refused is a confirm dialog whose action the record's state forbids.
// It only offers to go back.
func Refused(title, message, back string) Dialog {
	return Dialog{
		Kind:    Result,
		Title:   title,
		Message: message,
		Confirm: Target{Label: "Close", URL: back, Method: http.MethodGet},
	}
}
