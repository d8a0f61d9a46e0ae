package transcript

import (
	"time"

	"loan-saarthi/internal/models"
)

type Kind string

const (
	KindBot    Kind = "bot"
	KindUser   Kind = "user"
	KindSystem Kind = "system"
)

// Agent tags the persona speaking a bot message.
type Agent string

const (
	AgentMaster      Agent = "Master"
	AgentSales       Agent = "Sales"
	AgentUnderwriter Agent = "Underwriter"
)

type CardKind string

const (
	CardApproval      CardKind = "approval"
	CardUploadRequest CardKind = "upload_request"
)

// Card is a structured attachment rendered as a widget instead of text.
type Card struct {
	Kind         CardKind `json:"kind"`
	Amount       int64    `json:"amount,omitempty"`
	TenureMonths int      `json:"tenureMonths,omitempty"`
	EMI          int64    `json:"emi,omitempty"`
	Document     string   `json:"document,omitempty"`
}

// Entry is one transcript line. Seq and At are assigned on append; Seq is
// the entry's 0-based offset, the cursor accepted by Log.Since and by
// GET /api/v1/sessions/{id}/transcript?offset=.
type Entry struct {
	Seq     int             `json:"seq"`
	Kind    Kind            `json:"kind"`
	Text    string          `json:"text"`
	Agent   Agent           `json:"agent,omitempty"`
	Options []models.Option `json:"options,omitempty"`
	Card    *Card           `json:"card,omitempty"`
	At      time.Time       `json:"at"`
}

func Bot(agent Agent, text string, options ...models.Option) Entry {
	return Entry{Kind: KindBot, Agent: agent, Text: text, Options: options}
}

func User(text string) Entry {
	return Entry{Kind: KindUser, Text: text}
}

func System(text string) Entry {
	return Entry{Kind: KindSystem, Text: text}
}

func SystemCard(card Card) Entry {
	return Entry{Kind: KindSystem, Text: string(card.Kind), Card: &card}
}
