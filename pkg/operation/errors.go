// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

// 🧩 TemplateError reports a replacement template that could not be
// resolved. It matches ErrTemplateUnavailable and the underlying cause.
type TemplateError struct {
	Rule   string
	Source string
	Err    error
}

func (e *TemplateError) Error() string {
	msg := ErrTemplateUnavailable.Error() + ": rule " + e.Rule
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *TemplateError) Unwrap() []error {
	return []error{ErrTemplateUnavailable, e.Err}
}
