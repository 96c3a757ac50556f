package domain

// FormState is the state of a form-bearing page.
type FormState string

const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSuccess    FormState = "success"
	FormError      FormState = "error"
)

// Form drives idle -> submitting -> (success | error). Errors are
// recoverable. Success is terminal when the form was created terminal.
type Form struct {
	State    FormState
	Message  string
	terminal bool
}

// NewForm returns an idle form. When terminal is set, success closes the
// form for the rest of the page instance.
func NewForm(terminal bool) Form {
	return Form{State: FormIdle, terminal: terminal}
}

// Begin moves the form to submitting.
func (f *Form) Begin() error {
	switch {
	case f.State == FormSubmitting:
		return ErrRequestInFlight
	case f.State == FormSuccess && f.terminal:
		return ErrFormClosed
	}
	f.State = FormSubmitting
	f.Message = ""
	return nil
}

func (f *Form) Succeed(msg string) {
	f.State = FormSuccess
	f.Message = msg
}

func (f *Form) Fail(msg string) {
	f.State = FormError
	f.Message = msg
}

// Disabled reports whether inputs and the submit control are disabled.
func (f Form) Disabled() bool {
	return f.State == FormSubmitting || (f.State == FormSuccess && f.terminal)
}

func (f Form) Failed() bool { return f.State == FormError }

func (f Form) Succeeded() bool { return f.State == FormSuccess }
