package models

import "strconv"

// FormatRupees renders an amount with the Indian digit grouping, e.g.
// 500000 becomes "₹5,00,000".
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	out := sign + "₹"
	for _, g := range groups {
		out += g + ","
	}
	return out + tail
}
