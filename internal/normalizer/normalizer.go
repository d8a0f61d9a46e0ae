// Package normalizer turns raw user turns into typed values for the active
// conversation slot. Every function is pure and reports ok=false when the
// input does not yield a usable value.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"loan-saarthi/internal/models"
)

// Machine values carried by the options the assistant offers.
const (
	ValueYes       = "yes"
	ValueNo        = "no"
	ValueDirectory = "directory"
	ValueRestart   = "restart"
	ValueEnd       = "end"

	profileValuePrefix = "profile:"
)

var (
	nonDigits    = regexp.MustCompile(`[^0-9]`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	leadingInt   = regexp.MustCompile(`^[+-]?[0-9]+`)
)

// Limits bounds numeric answers so downstream arithmetic stays in range.
type Limits struct {
	MaxAmount       int64 `mapstructure:"max_amount" json:"maxAmount"`
	MaxTenureMonths int   `mapstructure:"max_tenure_months" json:"maxTenureMonths"`
	MaxSalary       int64 `mapstructure:"max_salary" json:"maxSalary"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxAmount:       100000000,
		MaxTenureMonths: 60,
		MaxSalary:       100000000,
	}
}

// ProfileValue builds the option value for a directory entry.
func ProfileValue(id string) string {
	return profileValuePrefix + id
}

// Affirmative reports whether the greeting reply accepts the offer.
func Affirmative(in models.UserInput) bool {
	switch in.Value {
	case ValueYes:
		return true
	case ValueNo:
		return false
	}
	text := strings.ToLower(in.Text)
	return strings.Contains(text, "yes") || strings.Contains(text, "go")
}

// Purpose returns the loan purpose verbatim.
func Purpose(in models.UserInput) (string, bool) {
	purpose := strings.TrimSpace(in.Text)
	if purpose == "" {
		purpose = strings.TrimSpace(in.Value)
	}
	return purpose, purpose != ""
}

// Identity is the outcome of an identification turn: either a request to
// browse the directory or a selector to look up.
type Identity struct {
	Directory bool
	Selector  models.Selector
}

// Identification recognizes a directory request, a directory pick or a
// ten-digit mobile number.
func Identification(in models.UserInput) (Identity, bool) {
	if in.Value == ValueDirectory || strings.EqualFold(strings.TrimSpace(in.Text), "Select User from Database") {
		return Identity{Directory: true}, true
	}
	if id, found := strings.CutPrefix(in.Value, profileValuePrefix); found && id != "" {
		return Identity{Selector: models.Selector{Kind: models.SelectByID, Key: id}}, true
	}
	if phone, ok := Phone(in.Display()); ok {
		return Identity{Selector: models.Selector{Kind: models.SelectByPhone, Key: phone}}, true
	}
	return Identity{}, false
}

// Phone strips everything but digits and accepts exactly ten of them.
func Phone(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(raw, "")
	return digits, phonePattern.MatchString(digits)
}

// Amount resolves the requested loan amount.
func Amount(in models.UserInput, limits Limits) (int64, bool) {
	amount, ok := numericValue(in.Value)
	if !ok {
		amount = cannedOrDigits(in.Text, amountLabels)
	}
	return amount, amount > 0 && withinLimit(amount, limits.MaxAmount)
}

// Tenure reads the leading integer of the reply as months, so "24 Months"
// yields 24.
func Tenure(in models.UserInput, limits Limits) (int, bool) {
	if v, ok := numericValue(in.Value); ok {
		return int(v), v > 0 && withinLimit(v, int64(limits.MaxTenureMonths))
	}
	match := leadingInt.FindString(strings.TrimSpace(in.Text))
	if match == "" {
		return 0, false
	}
	months, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return months, months > 0 && withinLimit(int64(months), int64(limits.MaxTenureMonths))
}

// Salary resolves the declared monthly in-hand salary. Bucket labels map to
// their midpoints.
func Salary(in models.UserInput, limits Limits) (int64, bool) {
	salary, ok := numericValue(in.Value)
	if !ok {
		salary = cannedOrDigits(in.Text, salaryLabels)
	}
	return salary, salary > 0 && withinLimit(salary, limits.MaxSalary)
}

// Restart reports whether a decision-phase reply asks to start over.
func Restart(in models.UserInput) bool {
	return in.Value == ValueRestart || strings.EqualFold(strings.TrimSpace(in.Text), "restart")
}

type cannedLabel struct {
	substr string
	value  int64
}

// Checked in order; the first substring hit wins.
var amountLabels = []cannedLabel{
	{"50,000", 50000},
	{"1,00,000", 100000},
	{"5,00,000", 500000},
}

var salaryLabels = []cannedLabel{
	{"<", 15000},
	{"20,000", 35000},
	{"50,000", 75000},
	{">", 150000},
}

func cannedOrDigits(text string, labels []cannedLabel) int64 {
	for _, l := range labels {
		if strings.Contains(text, l.substr) {
			return l.value
		}
	}
	v, err := strconv.ParseInt(nonDigits.ReplaceAllString(text, ""), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func numericValue(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func withinLimit(v, max int64) bool {
	return max <= 0 || v <= max
}
