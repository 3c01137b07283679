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

package main

import (
	"fmt"

	"cloudeng.io/logging"
	"dirpx.dev/dxcal/dxcore/config"
	"dirpx.dev/dxcal/dxcore/model"
	"gopkg.in/yaml.v3"
)

// print writes one result in the configured format. Model values are
// validated before they are encoded.
func (m *metadata) print(v any) error {
	mv, isModel := v.(model.Model)

	switch m.config.Format {
	case config.FormatJSON:
		f := logging.NewJSONFormatter(m.w, "", "  ")
		if !isModel {
			return f.Format(v)
		}
		data, err := model.ToJSON(mv)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	case config.FormatYAML:
		if isModel {
			data, err := model.ToYAML(mv)
			if err != nil {
				return err
			}
			_, err = m.w.Write(data)
			return err
		}
		enc := yaml.NewEncoder(m.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(m.w, v)
		return err
	}
}

// printList writes a list of results: one per line as text, or a single
// JSON or YAML sequence.
func printList[T any](m *metadata, list []T) error {
	if m.config.Format != config.FormatText {
		return m.print(list)
	}
	for _, v := range list {
		if _, err := fmt.Fprintln(m.w, v); err != nil {
			return err
		}
	}
	return nil
}
