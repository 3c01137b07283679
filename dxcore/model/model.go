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

// Package model defines the contracts every dxcal value type implements.
//
// Timestamps, offsets, field names, overflow policies and configuration
// documents all cross the same boundaries: they are parsed from packed text
// or files, validated, logged and written back out as JSON or YAML. The
// Model interface bundles those capabilities so that the generic helpers in
// this package (ValidateAll, SafeString, ToJSON, ToYAML) work uniformly across them, and so that a type missing
// one of them fails to compile at its `var _ model.Model` check.
//
// dxcal model types are immutable values. Methods MUST NOT mutate the
// receiver except for the Unmarshal* methods, which are not safe for
// concurrent use.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all contracts required for dxcal
// value types.
//
// Example implementation:
//
//	type Window struct {
//	    Start stamp.Timestamp
//	    Span  stamp.Offset
//	}
//
//	func (w Window) Validate() error     { return w.Start.Validate() }
//	func (w Window) TypeName() string    { return "Window" }
//	func (w Window) IsZero() bool        { return w.Start.IsZero() && w.Span.IsZero() }
//	func (w Window) Redacted() string    { return w.String() }
//	func (w Window) String() string      { return w.Start.String() + "+" + w.Span.String() }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ model.Model = (*Window)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that check their own
// invariants.
//
// Validate MUST be fast, deterministic and free of side effects: no I/O, no
// logging. It returns nil if and only if the value satisfies every invariant
// of its type. Failures SHOULD be reported with the typed errors of
// dxcore/errors so that callers can match the error kind with errors.Is;
// for example an hour of 24 yields a *ValidationError wrapping
// ErrOutOfRange with Field "Hour".
//
// Validate checks what the type itself guarantees and nothing more. A
// Timestamp validates the bounds of its packed fields; whether the date
// exists on the calendar is a separate question answered by Timestamp.Time.
type Validatable interface {
	// Validate returns nil if the value is valid, or an error describing
	// the first or every violated invariant.
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Marshal methods SHOULD call Validate first and refuse to encode an invalid
// value. Unmarshal methods MUST reject input that would produce an invalid
// value and MUST NOT leave the receiver half-written on error. A value
// marshaled and unmarshaled again MUST compare equal to the original.
//
// Scalars that carry leading zeros, such as the packed YYYYMMDDHH form,
// SHOULD be emitted as quoted YAML strings so that YAML readers do not
// reinterpret them as integers.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that render themselves for humans
// and for logs.
//
// String returns the canonical text form. Redacted returns the form safe to
// write to production logs. No dxcal value carries secrets, so most types
// return the same text from both, but callers that log SHOULD still prefer
// Redacted (see SafeString).
type Loggable interface {
	// Redacted returns a representation safe for production logs.
	Redacted() string

	// String returns the canonical text representation.
	String() string
}

// Identifiable defines the contract for types that report a canonical type
// name. The name is constant per type, CamelCase and without package
// prefix ("Timestamp", "Offset", "Config"). It is used as the Type of
// dxcore/errors values and as a structured logging attribute.
type Identifiable interface {
	// TypeName returns the canonical name of the type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// hold their zero value.
//
// IsZero MUST be cheap and MUST NOT allocate. Note that zero does not imply
// invalid: the zero Overflow is the Clamp policy, and the zero Timestamp
// "0000000000" is within the packed bounds.
type ZeroCheckable interface {
	// IsZero reports whether the value is the zero value of its type.
	IsZero() bool
}

// Comparable defines the contract for types with a hand-written equality.
// Equal MUST be reflexive, symmetric and transitive over valid values.
type Comparable[T any] interface {
	// Equal reports whether the receiver and other represent the same value.
	Equal(other T) bool
}
