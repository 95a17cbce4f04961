package model

import (
	"bytes"
	"encoding/json"
)

// Skills is the skills list of a profile request body.
//
// Decoding never fails: a value that is not an array of strings (e.g.
// "skills": "Go") is kept and marked invalid, so the `isarray` rule can
// report it together with every other failing field instead of aborting
// the whole body.
type Skills struct {
	values  []string
	invalid bool
}

// NewSkills returns a valid list holding values, in order.
func NewSkills(values ...string) Skills {
	return Skills{values: values}
}

// Values returns the skills in order; never nil.
func (s Skills) Values() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}

// Valid reports whether the decoded value was an array of strings.
// An absent or null value is valid and means no skills.
func (s Skills) Valid() bool {
	return !s.invalid
}

func (s *Skills) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Skills{}
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		*s = Skills{invalid: true}
		return nil
	}
	*s = Skills{values: values}
	return nil
}

func (s Skills) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}
