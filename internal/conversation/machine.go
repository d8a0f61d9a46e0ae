// Package conversation drives a loan conversation through its phases. Every
// operation is a pure transition from a State and a user turn to a new State
// plus the ordered steps the presentation plays back.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/models"
	"loan-saarthi/internal/normalizer"
	"loan-saarthi/internal/profiles"
	"loan-saarthi/internal/transcript"
	"loan-saarthi/internal/underwriting"
)

// Delays are the nominal presentation pauses inserted between entries.
type Delays struct {
	Typing   time.Duration `mapstructure:"typing"`
	Handoff  time.Duration `mapstructure:"handoff"`
	Thinking time.Duration `mapstructure:"thinking"`
	Sanction time.Duration `mapstructure:"sanction"`
	FollowUp time.Duration `mapstructure:"follow_up"`
	Card     time.Duration `mapstructure:"card"`
}

func DefaultDelays() Delays {
	return Delays{
		Typing:   1000 * time.Millisecond,
		Handoff:  800 * time.Millisecond,
		Thinking: 1000 * time.Millisecond,
		Sanction: 1500 * time.Millisecond,
		FollowUp: 800 * time.Millisecond,
		Card:     1000 * time.Millisecond,
	}
}

// Reprompt reasons reported on Result when a turn was not accepted.
const (
	RepromptEmptyPurpose     = "empty_purpose"
	RepromptInvalidPhone     = "invalid_phone"
	RepromptProfileNotFound  = "profile_not_found"
	RepromptStoreUnavailable = "store_unavailable"
	RepromptProfileMissing   = "profile_missing"
	RepromptInvalidAmount    = "invalid_amount"
	RepromptInvalidTenure    = "invalid_tenure"
	RepromptInvalidSalary    = "invalid_salary"
	RepromptDocumentRequired = "document_required"
)

// Result is the outcome of one transition.
type Result struct {
	State       State             `json:"state"`
	Steps       []transcript.Step `json:"steps"`
	Transitions []Transition      `json:"transitions,omitempty"`
	Reprompt    string            `json:"reprompt,omitempty"`
	// Ignored is set when the turn had no effect, e.g. input after the end.
	Ignored bool `json:"ignored,omitempty"`
}

// Entries returns the transcript entries the transition produces.
func (r Result) Entries() []transcript.Entry {
	return transcript.Entries(r.Steps)
}

// Prompt returns the last bot message of the transition, which carries the
// options the user may pick next.
func (r Result) Prompt() (transcript.Entry, bool) {
	entries := r.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == transcript.KindBot {
			return entries[i], true
		}
	}
	return transcript.Entry{}, false
}

// Sanctioned reports whether this transition issued the final approval.
func (r Result) Sanctioned() bool {
	for _, t := range r.Transitions {
		if t.To == PhaseDecision {
			return r.State.Sanction != nil
		}
	}
	return false
}

type Machine struct {
	store  profiles.Store
	policy underwriting.Policy
	limits normalizer.Limits
	delays Delays
	now    func() time.Time
	logger logger.Logger
}

func NewMachine(store profiles.Store, policy underwriting.Policy, limits normalizer.Limits, delays Delays, now func() time.Time, log logger.Logger) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{
		store:  store,
		policy: policy,
		limits: limits,
		delays: delays,
		now:    now,
		logger: log.WithFields(map[string]interface{}{"component": "conversation-machine"}),
	}
}

// Start opens a conversation with the greeting.
func (m *Machine) Start() Result {
	t := m.begin(NewState())
	m.greet(t)
	return t.result()
}

// Advance applies one user turn. It is total: every input yields a Result,
// re-prompting when the input cannot be used.
func (m *Machine) Advance(ctx context.Context, st State, in models.UserInput) Result {
	if st.Phase == PhaseEnded || st.Phase == PhaseUnderwriting {
		return Result{State: st, Ignored: true}
	}

	t := m.begin(st)
	switch st.Phase {
	case PhaseGreeting:
		m.onGreeting(t, in)
	case PhasePurpose:
		m.onPurpose(t, in)
	case PhaseIdentification:
		m.onIdentification(ctx, t, in)
	case PhaseRequirements:
		m.onRequirements(t, in)
	case PhaseSalarySlip:
		t.user(in.Display())
		t.reprompt = RepromptDocumentRequired
		t.bot(transcript.AgentUnderwriter, uploadReminder)
	case PhaseDecision:
		m.onDecision(t, in)
	default:
		return Result{State: st, Ignored: true}
	}

	if t.reprompt != "" {
		m.logger.Debug("input re-prompted", map[string]interface{}{
			"phase":  string(st.Phase),
			"reason": t.reprompt,
		})
	}
	return t.result()
}

// SubmitDocument handles the salary-slip upload signal. Outside the
// salary-slip phase it is ignored.
func (m *Machine) SubmitDocument(st State) Result {
	if st.Phase != PhaseSalarySlip || st.Verdict == nil {
		return Result{State: st, Ignored: true}
	}

	t := m.begin(st)
	t.system(slipVerified)
	t.wait(transcript.PauseThinking, m.delays.Card)
	t.moveTo(PhaseDecision)
	m.approve(t, *st.Verdict)
	return t.result()
}

// Restart discards everything collected and greets again. The transcript is
// kept; a system note marks the restart.
func (m *Machine) Restart(st State) Result {
	t := m.begin(st)
	t.state = NewState()
	if st.Phase != PhaseGreeting {
		t.transitions = append(t.transitions, Transition{From: st.Phase, To: PhaseGreeting})
	}
	t.system(restartedNote)
	m.greet(t)
	return t.result()
}

func (m *Machine) greet(t *turn) {
	t.bot(transcript.AgentMaster, greetingText, greetingOptions...)
}

func (m *Machine) onGreeting(t *turn, in models.UserInput) {
	t.user(in.Display())
	if !normalizer.Affirmative(in) {
		t.bot(transcript.AgentMaster, farewellText)
		t.moveTo(PhaseEnded)
		return
	}

	t.moveTo(PhasePurpose)
	t.handoff(transcript.AgentMaster, transcript.AgentSales)
	t.bot(transcript.AgentSales, purposePrompt, purposeOptions...)
}

func (m *Machine) onPurpose(t *turn, in models.UserInput) {
	purpose, ok := normalizer.Purpose(in)
	if !ok {
		t.reprompt = RepromptEmptyPurpose
		t.bot(transcript.AgentSales, purposePrompt, purposeOptions...)
		return
	}

	t.user(in.Display())
	t.state.Request.Purpose = purpose
	t.moveTo(PhaseIdentification)
	t.bot(transcript.AgentSales, identifyPrompt, directoryOption)
}

func (m *Machine) onIdentification(ctx context.Context, t *turn, in models.UserInput) {
	id, ok := normalizer.Identification(in)
	if !ok {
		t.user(in.Display())
		t.reprompt = RepromptInvalidPhone
		t.bot(transcript.AgentSales, invalidNumber, directoryOption)
		return
	}

	if id.Directory {
		t.user(in.Display())
		list, err := m.store.List(ctx)
		if err != nil {
			m.storeUnavailable(t, err)
			return
		}
		t.bot(transcript.AgentSales, directoryPrompt, profileOptions(list)...)
		return
	}

	profile, err := m.store.Find(ctx, id.Selector)
	if err != nil {
		t.user(in.Display())
		if errors.Is(err, profiles.ErrNotFound) {
			t.reprompt = RepromptProfileNotFound
			t.bot(transcript.AgentSales, unknownNumber, directoryOption)
			return
		}
		m.storeUnavailable(t, err)
		return
	}

	if id.Selector.Kind == models.SelectByID {
		t.user("My mobile number is " + profile.Phone)
	} else {
		t.user(in.Display())
	}
	t.state.Profile = &profile
	t.thinking(fmt.Sprintf("Fetching details for %s...", profile.Phone))
	t.moveTo(PhaseRequirements)
	t.bot(transcript.AgentSales, welcomeText(profile), amountOptions...)
}

func (m *Machine) storeUnavailable(t *turn, err error) {
	m.logger.Warn("profile store unavailable", map[string]interface{}{"error": err})
	t.reprompt = RepromptStoreUnavailable
	t.bot(transcript.AgentSales, storeDown, directoryOption)
}

func (m *Machine) onRequirements(t *turn, in models.UserInput) {
	t.user(in.Display())
	if t.state.Profile == nil {
		m.logger.Warn("requirements reached without a profile", nil)
		t.reprompt = RepromptProfileMissing
		t.bot(transcript.AgentSales, profileMissing)
		return
	}

	switch t.state.Request.NextSlot() {
	case models.SlotAmount:
		amount, ok := normalizer.Amount(in, m.limits)
		if !ok {
			t.reprompt = RepromptInvalidAmount
			t.bot(transcript.AgentSales, invalidAmount)
			return
		}
		t.state.Request.Amount = amount
		t.bot(transcript.AgentSales, tenurePrompt, tenureOptions...)

	case models.SlotTenure:
		months, ok := normalizer.Tenure(in, m.limits)
		if !ok {
			t.reprompt = RepromptInvalidTenure
			t.bot(transcript.AgentSales, invalidTenure, tenureOptions...)
			return
		}
		t.state.Request.TenureMonths = months
		t.bot(transcript.AgentSales, salaryPrompt, salaryOptions...)

	case models.SlotSalary:
		salary, ok := normalizer.Salary(in, m.limits)
		if !ok {
			t.reprompt = RepromptInvalidSalary
			t.bot(transcript.AgentSales, invalidSalary, salaryOptions...)
			return
		}
		t.state.Request.DeclaredMonthlySalary = salary
		m.underwrite(t)

	default:
		m.underwrite(t)
	}
}

func (m *Machine) underwrite(t *turn) {
	t.moveTo(PhaseUnderwriting)
	t.handoff(transcript.AgentSales, transcript.AgentUnderwriter)
	t.system(underwritingLog)
	t.thinking("Verifying KYC status...")
	t.thinking(fmt.Sprintf("Checking Credit Bureau Score for %s...", t.state.Profile.DisplayName))

	verdict := m.policy.Decide(*t.state.Profile, t.state.Request)
	t.state.Verdict = &verdict

	switch verdict.Kind {
	case models.VerdictRejected:
		t.thinking("Evaluating Risk Parameters...")
		t.moveTo(PhaseDecision)
		t.bot(transcript.AgentUnderwriter, rejectionText(verdict.Reason), endChatOption, restartOption)

	case models.VerdictInstant:
		t.system("Generating Sanction Letter...")
		t.wait(transcript.PauseThinking, m.delays.Sanction)
		t.moveTo(PhaseDecision)
		m.approve(t, verdict)

	case models.VerdictConditional:
		t.moveTo(PhaseSalarySlip)
		t.bot(transcript.AgentUnderwriter, conditionalText(t.state.Profile.PreApprovedLimit))
		t.wait(transcript.PauseTyping, m.delays.FollowUp)
		t.bot(transcript.AgentUnderwriter, uploadPrompt)
		t.say(transcript.SystemCard(transcript.Card{
			Kind:     transcript.CardUploadRequest,
			Document: verdict.RequiredDocument,
		}))

	case models.VerdictEmiTooHigh:
		t.moveTo(PhaseDecision)
		t.bot(transcript.AgentUnderwriter, emiTooHighText(verdict.EMI), restartOption)
	}
}

func (m *Machine) approve(t *turn, v models.Verdict) {
	sanction, ok := m.policy.Sanction(v)
	if !ok {
		m.logger.Error("sanction requested for non-approving verdict", map[string]interface{}{
			"verdict": string(v.Kind),
		})
		return
	}
	sanction.IssuedAt = m.now().UTC()
	t.state.Sanction = &sanction

	t.bot(transcript.AgentUnderwriter, approvedText(sanction.Amount))
	t.wait(transcript.PauseThinking, m.delays.Card)
	t.say(transcript.SystemCard(transcript.Card{
		Kind:         transcript.CardApproval,
		Amount:       sanction.Amount,
		TenureMonths: sanction.TenureMonths,
		EMI:          sanction.EMI,
	}))
}

func (m *Machine) onDecision(t *turn, in models.UserInput) {
	if normalizer.Restart(in) {
		restarted := m.Restart(t.state)
		t.user(in.Display())
		t.state = restarted.State
		t.transitions = append(t.transitions, restarted.Transitions...)
		t.steps = append(t.steps, restarted.Steps...)
		return
	}

	t.user(in.Display())
	t.bot(transcript.AgentMaster, closingText)
	t.moveTo(PhaseEnded)
}

// turn accumulates the steps of one transition.
type turn struct {
	delays      Delays
	state       State
	steps       []transcript.Step
	transitions []Transition
	reprompt    string
}

func (m *Machine) begin(st State) *turn {
	return &turn{delays: m.delays, state: st}
}

func (t *turn) result() Result {
	return Result{
		State:       t.state,
		Steps:       t.steps,
		Transitions: t.transitions,
		Reprompt:    t.reprompt,
	}
}

func (t *turn) moveTo(p Phase) {
	if t.state.Phase == p {
		return
	}
	t.transitions = append(t.transitions, Transition{From: t.state.Phase, To: p})
	t.state.Phase = p
}

func (t *turn) say(e transcript.Entry) {
	t.steps = append(t.steps, transcript.Say(e))
}

func (t *turn) wait(name string, d time.Duration) {
	t.steps = append(t.steps, transcript.Wait(name, d))
}

func (t *turn) user(text string) {
	t.say(transcript.User(text))
}

func (t *turn) system(text string) {
	t.say(transcript.System(text))
}

func (t *turn) bot(agent transcript.Agent, text string, options ...models.Option) {
	t.wait(transcript.PauseTyping, t.delays.Typing)
	t.say(transcript.Bot(agent, text, options...))
}

func (t *turn) handoff(from, to transcript.Agent) {
	t.system(handoffNote(from, to))
	t.wait(transcript.PauseHandoff, t.delays.Handoff)
}

func (t *turn) thinking(text string) {
	t.system(text)
	t.wait(transcript.PauseThinking, t.delays.Thinking)
}
