package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue encodes v for a jsonb column. Empty lists are stored as "[]".
func jsonValue(v any, empty bool) (driver.Value, error) {
	if empty {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// scanJSON decodes a jsonb column into dest. SQLite hands back strings,
// PostgreSQL hands back bytes.
func scanJSON(value any, dest any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name" binding:"required" validate:"required"`
	Quantity string `json:"quantity" binding:"required"`
}

type Ingredients []Ingredient

func (i Ingredients) Value() (driver.Value, error) {
	return jsonValue(i, len(i) == 0)
}

func (i *Ingredients) Scan(value any) error {
	*i = Ingredients{}
	return scanJSON(value, i)
}

// Step is one numbered instruction.
type Step struct {
	StepNumber  int    `json:"stepNumber"`
	Instruction string `json:"instruction" binding:"required" validate:"required"`
}

type Steps []Step

func (s Steps) Value() (driver.Value, error) {
	return jsonValue(s, len(s) == 0)
}

func (s *Steps) Scan(value any) error {
	*s = Steps{}
	return scanJSON(value, s)
}

// Numbered returns a copy with step numbers filled in by position where
// the caller left them unset.
func (s Steps) Numbered() Steps {
	out := make(Steps, len(s))
	for i, step := range s {
		if step.StepNumber <= 0 {
			step.StepNumber = i + 1
		}
		out[i] = step
	}
	return out
}
