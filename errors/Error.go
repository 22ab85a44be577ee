package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       ErrDataI
}

type Interface interface {
	Error() string
	Is(target error) bool
	As(target interface{}) bool
	Unwrap() error

	Code() ERR
	Message() string
	WrappedErr() error
	Data() ErrDataI
}

// Error renders "CODE (n): message", followed by the attached data in brackets and the
// wrapped error after an arrow.
func (e *Error) Error() string {
	// predefined and wrapped errors can be nil
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "%s (%d): %s", e.code, int32(e.code), e.message)

	if e.data != nil {
		if dataMsg := strings.TrimSpace(e.data.Error()); dataMsg != "" {
			sb.WriteString(" [" + dataMsg + "]")
		}
	}

	if e.wrappedErr != nil {
		sb.WriteString(" -> " + e.wrappedErr.Error())
	}

	return sb.String()
}

// Is reports whether error codes match.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	if e.code == targetError.code {
		return true
	}

	if e.wrappedErr == nil {
		return false
	}

	// Unwrap the current error and recursively call Is on the unwrapped error
	if unwrapped := errors.Unwrap(e); unwrapped != nil {
		if ue, ok := unwrapped.(*Error); ok {
			return ue.Is(target)
		}
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	// check if Data matches the target type
	if e.data != nil {
		if data, ok := e.data.(error); ok && errors.As(data, target) {
			return true
		}
	}

	if e.wrappedErr != nil {
		// use reflect to see if the value is nil. If it is, return false
		if v := reflect.ValueOf(e.wrappedErr); v.Kind() == reflect.Ptr && v.IsNil() {
			return false
		}

		return errors.As(e.wrappedErr, target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Data() ErrDataI {
	if e == nil {
		return nil
	}

	return e.data
}

func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = &ErrData{}
	}

	var data *ErrData
	if errors.As(e.data, &data) {
		data.SetData(key, value)
	}
}

func (e *Error) GetData(key string) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.GetData(key)
}

// New creates an error with the given code. A trailing error parameter is wrapped, the
// remaining parameters format the message.
func New(code ERR, message string, params ...interface{}) *Error {
	var wErr error

	// Extract the wrapped error, if present
	if len(params) > 0 {
		lastParam := params[len(params)-1]

		switch err := lastParam.(type) {
		case *Error:
			wErr = err
			params = params[:len(params)-1]
		case error:
			wErr = &Error{code: ERR_ERROR, message: err.Error()}
			params = params[:len(params)-1]
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	if _, ok := ERR_name[int32(code)]; !ok {
		return &Error{
			code:       code,
			message:    "invalid error code",
			wrappedErr: wErr,
		}
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wErr,
	}
}

// NewWithData creates an error that carries structured data alongside the message.
func NewWithData(code ERR, data ErrDataI, message string, params ...interface{}) *Error {
	e := New(code, message, params...)
	e.data = data

	return e
}

func Join(errs ...error) error {
	var messages []string

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return errors.New(strings.Join(messages, ", "))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func AsData(err error, target interface{}) bool {
	// cycle through the wrapped errors and check if any of them match the target
	if castedErr, ok := err.(*Error); ok {
		if castedErr.data != nil {
			if data, ok := castedErr.data.(error); ok && errors.As(data, target) {
				return true
			}
		}

		if castedErr.wrappedErr != nil {
			return AsData(castedErr.wrappedErr, target)
		}
	}

	return false
}

func As(err error, target any) bool {
	if castedErr, ok := err.(*Error); ok {
		if castedErr.As(target) {
			return true
		}

		if castedErr.wrappedErr != nil {
			return errors.As(castedErr.wrappedErr, target)
		}
	}

	return errors.As(err, target)
}
