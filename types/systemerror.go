package types

import (
	"fmt"
	"reflect"
)

// SystemError is the transport tier of a QuerierResult. At most one variant is
// set; the JSON form is the variant under its snake_case name.
type SystemError struct {
	InvalidRequest     *InvalidRequest     `json:"invalid_request,omitempty"`
	InvalidResponse    *InvalidResponse    `json:"invalid_response,omitempty"`
	NoSuchContract     *NoSuchContract     `json:"no_such_contract,omitempty"`
	NoSuchCode         *NoSuchCode         `json:"no_such_code,omitempty"`
	Unknown            *Unknown            `json:"unknown,omitempty"`
	UnsupportedRequest *UnsupportedRequest `json:"unsupported_request,omitempty"`
}

// Variant returns the set variant, or nil for an empty SystemError.
func (a SystemError) Variant() error {
	v := reflect.ValueOf(a)
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); !f.IsNil() {
			return f.Interface().(error)
		}
	}
	return nil
}

func (a SystemError) Error() string {
	if v := a.Variant(); v != nil {
		return v.Error()
	}
	return "empty system error"
}

// InvalidRequest is returned when the request envelope cannot be decoded.
// Request carries the original bytes, unchanged.
type InvalidRequest struct {
	Err     string `json:"error"`
	Request []byte `json:"request"`
}

func (e InvalidRequest) Error() string {
	return fmt.Sprintf("invalid request: %s - original request: %s", e.Err, e.Request)
}

// InvalidResponse is a reply a caller could not decode into what it asked for.
type InvalidResponse struct {
	Err      string `json:"error"`
	Response []byte `json:"response"`
}

func (e InvalidResponse) Error() string {
	return fmt.Sprintf("invalid response: %s - original response: %s", e.Err, e.Response)
}

// NoSuchContract is returned for wasm queries against an address nothing is registered at.
type NoSuchContract struct {
	Addr string `json:"addr,omitempty"`
}

func (e NoSuchContract) Error() string {
	return "no such contract: " + e.Addr
}

// NoSuchCode is returned for code info queries. An ensemble registers contract
// instances directly, so it stores no code.
type NoSuchCode struct {
	CodeID uint64 `json:"code_id,omitempty"`
}

func (e NoSuchCode) Error() string {
	return fmt.Sprintf("no such code: %d", e.CodeID)
}

type Unknown struct{}

func (Unknown) Error() string {
	return "unknown system error"
}

// UnsupportedRequest is returned for request shapes that are recognised but not served.
type UnsupportedRequest struct {
	Kind string `json:"kind,omitempty"`
}

func (e UnsupportedRequest) Error() string {
	return "unsupported request: " + e.Kind
}

// ToSystemError returns err as a SystemError when err is one, or is one of its
// variants by value or pointer. Anything else, including a nil pointer, gives nil.
//
// Wrapped errors are not unwrapped. A contract that fails with a wrapped
// NoSuchContract has failed at the application level, and must stay there.
func ToSystemError(err error) *SystemError {
	switch t := err.(type) {
	case nil:
		return nil
	case SystemError:
		return &t
	case *SystemError:
		return t
	}

	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
	} else {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}

	var out SystemError
	fields := reflect.ValueOf(&out).Elem()
	for i := 0; i < fields.NumField(); i++ {
		if fields.Field(i).Type() == v.Type() {
			fields.Field(i).Set(v)
			return &out
		}
	}
	return nil
}
