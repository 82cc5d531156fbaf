package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema describes the persisted profile document. Every field is
// optional; types are checked so a corrupt field is caught before decode.
const documentSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"theme": {"type": "string"},
		"stats": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"correct": {"type": "integer"},
					"wrong": {"type": "integer"},
					"lastSeenMs": {"type": "integer"}
				}
			}
		},
		"unmasteredQueue": {"type": "array", "items": {"type": "string"}},
		"cycleQueue": {"type": "array", "items": {"type": "string"}},
		"lastMissed": {"type": "array", "items": {"type": "string"}},
		"best": {
			"type": "object",
			"properties": {
				"bestStreak": {"type": "integer"},
				"bestPercent": {"type": "integer"},
				"bestAvgTimeSec": {"type": ["integer", "null"]}
			}
		},
		"previous": {
			"type": "object",
			"properties": {
				"percent": {"type": "integer"},
				"avgTimeSec": {"type": ["integer", "null"]},
				"maxStreak": {"type": "integer"}
			}
		},
		"achievements": {"type": "array", "items": {"type": "integer"}},
		"gamesPlayed": {"type": "integer"},
		"globalStreak": {"type": "integer"},
		"createdAtMs": {"type": "integer"},
		"updatedAtMs": {"type": "integer"}
	}
}`

var (
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
	compileSchemaOnce sync.Once
)

func schema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		var doc any
		if err := json.Unmarshal([]byte(documentSchema), &doc); err != nil {
			compiledSchemaErr = fmt.Errorf("parse profile schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://profile.json", doc); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = c.Compile("schema://profile.json")
	})
	return compiledSchema, compiledSchemaErr
}

// Encode serializes a profile to its persisted JSON document.
func Encode(p *Profile) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return raw, nil
}

// Decode parses a persisted profile document into a typed Profile with
// defaults substituted for anything missing or corrupt. It never fails on
// bad content: an unreadable document yields a fresh profile named name.
//
// All "trust but verify" handling lives here. Fast path: the document
// validates against the schema and unmarshals directly. Salvage path: the
// document is structurally off, so a partial unmarshal keeps whatever
// fields decode cleanly. Either way Sanitize enforces value invariants,
// and queues must be rebuilt from Stats by the caller.
func Decode(name string, raw []byte) *Profile {
	p := New(name)
	if len(raw) == 0 {
		return p
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return p
	}
	if s, serr := schema(); serr == nil {
		if verr := s.Validate(parsed); verr != nil {
			return salvage(name, raw)
		}
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return salvage(name, raw)
	}
	if p.Name == "" {
		p.Name = name
	}
	p.Sanitize()
	return p
}

// salvage keeps cleanly-decoding fields from a document that failed schema
// validation. encoding/json fills everything before the first type
// mismatch and reports it as an UnmarshalTypeError, so per-field damage
// does not discard the rest of the record.
func salvage(name string, raw []byte) *Profile {
	p := New(name)
	err := json.Unmarshal(raw, p)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return New(name)
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.CreatedAtMs == 0 || p.UpdatedAtMs == 0 {
		fresh := New(name)
		if p.CreatedAtMs == 0 {
			p.CreatedAtMs = fresh.CreatedAtMs
		}
		if p.UpdatedAtMs == 0 {
			p.UpdatedAtMs = fresh.UpdatedAtMs
		}
	}
	p.Sanitize()
	return p
}
