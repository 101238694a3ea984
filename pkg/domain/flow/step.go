package flow

// Step is one stage of the purchase flow. The flow is strictly linear:
// plan-selection -> user-info -> kyc -> payment -> confirmation.
type Step string

const (
	StepPlanSelection Step = "plan-selection"
	StepUserInfo      Step = "user-info"
	StepKYC           Step = "kyc"
	StepPayment       Step = "payment"
	StepConfirmation  Step = "confirmation"
)

// ParseStep maps a path segment to a Step. It accepts both the canonical
// names and the short "plan" alias used in purchase URLs.
func ParseStep(s string) (Step, bool) {
	switch s {
	case "plan", string(StepPlanSelection):
		return StepPlanSelection, true
	case string(StepUserInfo):
		return StepUserInfo, true
	case string(StepKYC):
		return StepKYC, true
	case string(StepPayment):
		return StepPayment, true
	case string(StepConfirmation):
		return StepConfirmation, true
	}
	return "", false
}

// forward is the transition table. Each entry names the only step reachable
// from its key and the guard that must pass before moving there. The guard
// for the kyc -> payment edge covers document checks only; profile creation
// is sequenced by the purchase service before it commits the transition.
var forward = map[Step]transition{
	StepPlanSelection: {next: StepUserInfo, guard: (*State).guardPlanSelected},
	StepUserInfo:      {next: StepKYC, guard: (*State).guardUserInfo},
	StepKYC:           {next: StepPayment, guard: (*State).guardKYC},
	StepPayment:       {next: StepConfirmation, guard: (*State).guardPayment},
}

// backward allows stepping back to the immediately preceding step only.
// plan-selection has nothing before it and confirmation is terminal.
var backward = map[Step]Step{
	StepUserInfo: StepPlanSelection,
	StepKYC:      StepUserInfo,
	StepPayment:  StepKYC,
}

type transition struct {
	next  Step
	guard func(*State) error
}
