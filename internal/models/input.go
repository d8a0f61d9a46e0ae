// internal/models/input.go
package models

// Option is a selectable reply offered with a bot message. Label is shown to
// the user; Value is the machine value sent back when the option is picked.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// UserInput is one user turn. Value is set when the user picked an Option,
// Text carries what was typed or the picked option's label.
type UserInput struct {
	Text  string `json:"text"`
	Value string `json:"value,omitempty"`
}

// Display returns the text to show in the transcript for this turn.
func (in UserInput) Display() string {
	if in.Text != "" {
		return in.Text
	}
	return in.Value
}
