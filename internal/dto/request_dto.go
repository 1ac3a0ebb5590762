package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CategoryID is a category reference sent by clients either as a number or
// as a numeric string. The zero value, "0" and null all mean "no category".
type CategoryID string

func (c *CategoryID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CategoryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("category id must be a number or a string: %w", err)
	}
	*c = CategoryID(n.String())
	return nil
}

// IsSet reports whether the reference names a category at all.
func (c CategoryID) IsSet() bool {
	return c != "" && c != "0"
}

// Uint parses the reference as a store id.
func (c CategoryID) Uint() (uint, error) {
	v, err := strconv.ParseUint(string(c), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid category id %q: %w", string(c), err)
	}
	return uint(v), nil
}

// Difficulty accepts a number or a numeric string, since form clients send
// field values as text. null leaves it at zero.
type Difficulty int

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("difficulty must be an integer: %w", err)
	}
	*d = Difficulty(v)
	return nil
}

// QuestionCreateOrSearchRequest is the body of POST /questions. A non-empty
// Search turns the call into a search; otherwise the remaining fields
// describe the question to create.
type QuestionCreateOrSearchRequest struct {
	Search     string     `json:"search"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   CategoryID `json:"category" swaggertype:"string"`
	Difficulty Difficulty `json:"difficulty" swaggertype:"integer"`
}

type QuizCategory struct {
	ID   CategoryID `json:"id" swaggertype:"string"`
	Type string     `json:"type,omitempty"`
}

// PlayRequest is the body of POST /play.
type PlayRequest struct {
	QuizCategory      QuizCategory `json:"quiz_category"`
	PreviousQuestions []uint       `json:"previous_questions"`
}
