// Package notify tells applicants about sanctioned loans.
package notify

import (
	"context"
	"time"
)

// Notice describes a sanctioned loan.
type Notice struct {
	SessionID     string    `json:"sessionId"`
	ApplicantID   string    `json:"applicantId"`
	ApplicantName string    `json:"applicantName"`
	Phone         string    `json:"phone"`
	Amount        int64     `json:"amount"`
	TenureMonths  int       `json:"tenureMonths"`
	EMI           int64     `json:"emi"`
	IssuedAt      time.Time `json:"issuedAt"`
}

type Notifier interface {
	SanctionIssued(ctx context.Context, n Notice) error
}

// NopNotifier drops every notice.
type NopNotifier struct{}

func (NopNotifier) SanctionIssued(context.Context, Notice) error { return nil }
