/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package errors provides the error kinds and error carriers shared by the
// dxcal packages.
//
// Two layers are defined here. The sentinel values (ErrBadLength,
// ErrOutOfRange, ErrInvalidCalendarDate, ErrNotAbsolute, ErrUnreachable)
// name the kind of failure and are matched with errors.Is. The struct types
// (ParseError, MarshalError, UnmarshalError, ValidationError) carry the
// details of a particular failure: which type, which field, which input.
// ParseError and ValidationError unwrap to the sentinel they were built
// with, so callers can match the kind without caring about the carrier:
//
//	ts, err := stamp.ParseTimestamp("2021133100")
//	if errors.Is(err, dxerrors.ErrOutOfRange) {
//	    var ve *dxerrors.ValidationError
//	    if errors.As(err, &ve) {
//	        fmt.Println(ve.Field) // "Month"
//	    }
//	}
//
// All errors are synchronous and local. Nothing in dxcal retries or partially
// recovers; the caller fixes the input and constructs the value again.
//
// # Error Types
//
//   - ParseError
//     Returned when textual input cannot be interpreted (packed timestamps,
//     enum names, operands).
//
//   - MarshalError
//     Returned when an invalid enum-like value is about to be serialized.
//
//   - UnmarshalError
//     Returned when a JSON or YAML payload cannot be decoded into a value.
//
//   - ValidationError
//     Returned when a value violates an invariant: a field out of range, a
//     calendar date that does not exist, a partial value used as an instant.
package errors

import (
	"errors"
	"strconv"
)

var (
	// ErrBadLength reports packed text that is not exactly ten ASCII digits.
	ErrBadLength = errors.New("packed value must be exactly 10 digits (YYYYMMDDHH)")

	// ErrOutOfRange reports a field outside of its declared bounds.
	ErrOutOfRange = errors.New("field out of range")

	// ErrInvalidCalendarDate reports a year/month/day/hour combination that
	// does not exist on the proleptic Gregorian calendar, or an arithmetic
	// result outside of the supported years.
	ErrInvalidCalendarDate = errors.New("invalid calendar date")

	// ErrNotAbsolute reports a value that lacks the fields needed to be
	// converted to an absolute instant.
	ErrNotAbsolute = errors.New("value is not an absolute timestamp")

	// ErrUnreachable reports an iteration target that cannot be reached by
	// stepping forward one hour at a time.
	ErrUnreachable = errors.New("end is not reachable by forward hourly stepping")
)

// ParseError is returned when parsing a string into a typed value fails.
//
// Type identifies the logical type being parsed (for example, "Timestamp"
// or "Overflow"), and Value contains the exact string that could not be
// interpreted. Err, when set, is the error kind (for example ErrBadLength)
// and is returned by Unwrap.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Timestamp").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string

	// Err is the underlying kind of failure. May be nil.
	Err error
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxcal: invalid {Type} value: {Value}"
//	"dxcal: invalid {Type} value {Value}: {Err}" (when Err is set)
func (e *ParseError) Error() string {
	if e.Err != nil {
		return "dxcal: invalid " + e.Type + " value " + strconv.Quote(e.Value) + ": " + e.Err.Error()
	}
	return "dxcal: invalid " + e.Type + " value: " + e.Value
}

// Unwrap returns the error kind carried by the ParseError.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// Type identifies the logical type being marshaled (for example, "Field"), and
// Value contains the underlying numeric value that was deemed invalid. In most
// cases a MarshalError indicates a programming error, such as an enum value
// built by conversion from an unchecked integer.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxcal: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxcal: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the
// original raw payload (nil for YAML nodes), and Reason provides a
// human-readable description of what went wrong.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The Data field is not included in the formatted message; callers can log
// it separately when appropriate.
func (e *UnmarshalError) Error() string {
	return "dxcal: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a value fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Timestamp"), Field optionally identifies which field failed validation
// (for example, "Month"), Reason provides a human-readable explanation, and
// Value optionally contains the problematic value. Err is the error kind
// (ErrOutOfRange, ErrInvalidCalendarDate, ErrNotAbsolute ...) and is
// returned by Unwrap.
//
// # Example
//
//	if t.Month > 12 {
//	    return &errors.ValidationError{
//	        Type:   "Timestamp",
//	        Field:  "Month",
//	        Reason: "must be within [0, 12]",
//	        Value:  t.Month,
//	        Err:    errors.ErrOutOfRange,
//	    }
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any

	// Err is the underlying kind of failure. May be nil.
	Err error
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxcal: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxcal: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxcal: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxcal: invalid " + e.Type + ": " + e.Reason
}

// Unwrap returns the error kind carried by the ValidationError.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
