/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modelspec

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// documentSchema is the JSON Schema every stored document must satisfy.
// Structural constraints the schema cannot express (id uniqueness, link
// endpoints, valuation arity) are covered by Document.Check.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Kripke model document",
  "type": "object",
  "required": ["name", "vars", "states", "links"],
  "additionalProperties": false,
  "properties": {
    "name": { "type": "string" },
    "vars": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" }
    },
    "varCount": { "type": "integer", "minimum": 0 },
    "nextId": { "type": "integer", "minimum": 0 },
    "states": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "x", "y", "vals"],
        "additionalProperties": false,
        "properties": {
          "id": { "type": "integer", "minimum": 0 },
          "x": { "type": "number" },
          "y": { "type": "number" },
          "vals": { "type": "array", "items": { "type": "boolean" } },
          "reflexive": { "type": "boolean" }
        }
      }
    },
    "links": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["source", "target"],
        "additionalProperties": false,
        "properties": {
          "source": { "type": "integer", "minimum": 0 },
          "target": { "type": "integer", "minimum": 0 },
          "left": { "type": "boolean" },
          "right": { "type": "boolean" }
        }
      }
    }
  }
}`

// validateJSON checks raw document bytes against the embedded schema.
func validateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("document does not conform to schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
