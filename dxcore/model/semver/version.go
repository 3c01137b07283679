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

// Package semver provides the Version type dxcal uses to stamp the schema of
// its configuration files. It wraps github.com/blang/semver/v4 so that
// parsing and precedence follow SemVer 2.0.0 exactly.
package semver

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Version is a SemVer 2.0.0 version: Major.Minor.Patch[-Prerelease][+Metadata].
//
// A configuration file declares the schema it was written against as a
// Version. Readers accept any file whose Major matches their own and whose
// Minor is not newer (see Compatible): new minor versions may add keys that
// an older reader would reject.
//
// The zero value is 0.0.0 and stands for "not declared".
type Version struct {
	// Major changes when a key is removed or changes meaning.
	Major int

	// Minor changes when keys are added.
	Minor int

	// Patch changes for fixes that do not alter the set of keys.
	Patch int

	// Prerelease is the optional dot-separated identifier after '-', such
	// as "rc.1". It lowers precedence: 1.0.0-rc.1 < 1.0.0.
	Prerelease string

	// Metadata is the optional dot-separated build identifier after '+'.
	// It never affects precedence.
	Metadata string
}

// Compile-time check that Version implements model.Model interface.
var _ model.Model = (*Version)(nil)

// ParseVersion parses a SemVer 2.0.0 string. A leading "v" is tolerated:
//
//	ParseVersion("1.2.3")          -> Version{Major: 1, Minor: 2, Patch: 3}
//	ParseVersion("v1.0.0-rc.1")    -> Version{1, 0, 0, "rc.1", ""}
//	ParseVersion("1.0.0+20251017") -> Version{1, 0, 0, "", "20251017"}
//
// Malformed input yields a *ParseError wrapping the underlying cause.
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.Parse(strings.TrimPrefix(s, "v"))
	if err != nil {
		return Version{}, &dxerrors.ParseError{Type: "Version", Value: s, Err: err}
	}
	return fromBlangSemver(bv), nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("semver: MustParseVersion(%q): %v", s, err))
	}
	return v
}

// String returns the canonical text of v, for example "1.0.0-rc.1+build.5".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

func (v Version) toBlangSemver() (bsemver.Version, error) {
	return bsemver.Parse(v.String())
}

func fromBlangSemver(bv bsemver.Version) Version {
	var prerelease string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		prerelease = strings.Join(parts, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: prerelease,
		Metadata:   strings.Join(bv.Build, "."),
	}
}

// Validate reports a *ValidationError when a component is negative or the
// prerelease or metadata identifiers are not valid SemVer.
func (v Version) Validate() error {
	for _, c := range []struct {
		name  string
		value int
	}{{"Major", v.Major}, {"Minor", v.Minor}, {"Patch", v.Patch}} {
		if c.value < 0 {
			return &dxerrors.ValidationError{
				Type:   "Version",
				Field:  c.name,
				Reason: fmt.Sprintf("must be non-negative, got %d", c.value),
				Value:  c.value,
			}
		}
	}

	if _, err := v.toBlangSemver(); err != nil {
		return &dxerrors.ValidationError{Type: "Version", Reason: err.Error(), Value: v.String(), Err: err}
	}
	return nil
}

// IsZero reports whether v is exactly 0.0.0 with no prerelease or metadata.
func (v Version) IsZero() bool {
	return v == Version{}
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// Redacted returns the same string as String.
func (v Version) Redacted() string {
	return v.String()
}

// Compare orders v and other by SemVer precedence, returning -1, 0 or +1.
// Build metadata is ignored. If either side does not validate, only the
// numeric core is compared.
func (v Version) Compare(other Version) int {
	bv, errV := v.toBlangSemver()
	bo, errO := other.toBlangSemver()
	if errV != nil || errO != nil {
		return cmp.Or(
			cmp.Compare(v.Major, other.Major),
			cmp.Compare(v.Minor, other.Minor),
			cmp.Compare(v.Patch, other.Patch),
		)
	}
	return bv.Compare(bo)
}

// Less reports whether v has lower precedence than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other have the same precedence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Compatible reports whether a document declaring schema v can be read by a
// reader that supports schema reader: same major version, and a minor
// version no newer than the reader's.
func (v Version) Compatible(reader Version) bool {
	return v.Major == reader.Major && v.Minor <= reader.Minor
}

// MarshalJSON encodes a valid Version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string via ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes a valid Version as a quoted scalar, so that "1.0"
// style readers never see a float.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Tag: "!!str", Value: v.String()}, nil
}

// UnmarshalYAML decodes a scalar via ParseVersion.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: err.Error()}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which lets the version
// come from an environment variable.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
