// Package flow owns the purchase flow state machine: the per-project
// transaction state, the step transition table and the guards that gate each
// transition. Guard failures are blocking but never destructive; the state is
// left exactly as it was.
package flow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/domain/scheme"
)

var (
	// ErrNoPlanSelected is returned when advancing past plan selection
	// without a plan.
	ErrNoPlanSelected = errors.New("no plan selected")

	// ErrKYCNotAccepted is returned when the KYC declaration is unchecked.
	ErrKYCNotAccepted = errors.New("kyc declaration not accepted")

	// ErrJointKYCNotAccepted is returned when a joint holder has not accepted
	// the KYC declaration.
	ErrJointKYCNotAccepted = errors.New("joint holder has not accepted kyc declaration")

	// ErrMissingDocument is returned when a required KYC document has not
	// been uploaded.
	ErrMissingDocument = errors.New("required kyc document missing")

	// ErrPaymentBelowMinimum is returned when the custom payment is below the
	// plan's minimum.
	ErrPaymentBelowMinimum = errors.New("payment amount below plan minimum")

	// ErrTerminalStep is returned when advancing from confirmation.
	ErrTerminalStep = errors.New("flow already at terminal step")

	// ErrCannotStepBack is returned for a backward move the flow does not allow.
	ErrCannotStepBack = errors.New("cannot step back from this step")

	// ErrFastPathUnavailable is returned when the existing-profiles shortcut
	// is requested but its preconditions do not hold.
	ErrFastPathUnavailable = errors.New("existing profile fast path unavailable")
)

// State is the whole in-progress purchase transaction for one project. It is
// owned by the purchase service, snapshotted to the flow store on every
// change and restored before serving.
type State struct {
	ProjectID           string                `json:"project_id"`
	CurrentStep         Step                  `json:"current_step"`
	SelectedPlan        *scheme.PlanSelection `json:"selected_plan,omitempty"`
	SelectedUnits       int                   `json:"selected_units"`
	Accounts            []kyc.Account         `json:"accounts"`
	KYCDocuments        map[string]string     `json:"kyc_documents,omitempty"`
	KYCAccepted         bool                  `json:"kyc_accepted"`
	JointKYCAccepted    []bool                `json:"joint_kyc_accepted"`
	CustomPayment       int64                 `json:"custom_payment"`
	UserProfileIDs      []uuid.UUID           `json:"user_profile_ids,omitempty"`
	UseExistingProfiles bool                  `json:"use_existing_profiles"`
}

// NewState starts a fresh flow for the given project at plan selection.
func NewState(projectID string) *State {
	return &State{
		ProjectID:    projectID,
		CurrentStep:  StepPlanSelection,
		KYCDocuments: map[string]string{},
	}
}

// SelectPlan records the derived plan and unit count and resets the custom
// payment to the plan's minimum.
func (s *State) SelectPlan(p *scheme.PlanSelection) {
	s.SelectedPlan = p
	s.SelectedUnits = p.Units
	s.CustomPayment = p.PaymentAmount
}

// SetCustomPayment stores the user-adjusted payment amount. The value is kept
// even when too low so the user does not lose input; the payment guard blocks
// the flow from moving on until it clears the minimum.
func (s *State) SetCustomPayment(amount int64) {
	s.CustomPayment = amount
}

// SetAccounts replaces the parties of the purchase, enforcing the one-primary
// invariant and renormalising the joint acceptance flags so their count
// always equals the number of joint holders. Acceptance already given is
// preserved positionally.
func (s *State) SetAccounts(accounts []kyc.Account) error {
	if err := kyc.ValidateParties(accounts); err != nil {
		return err
	}
	s.Accounts = accounts
	s.normalizeJointAcceptance()
	return nil
}

// SetJointKYCAccepted flips the acceptance flag of one joint holder.
func (s *State) SetJointKYCAccepted(index int, accepted bool) error {
	if index < 0 || index >= len(s.JointKYCAccepted) {
		return fmt.Errorf("joint holder index %d out of range", index)
	}
	s.JointKYCAccepted[index] = accepted
	return nil
}

func (s *State) normalizeJointAcceptance() {
	joints := len(kyc.Joints(s.Accounts))
	accepted := make([]bool, joints)
	copy(accepted, s.JointKYCAccepted)
	s.JointKYCAccepted = accepted
}

// ValidPaymentAmount reports whether the custom payment clears the selected
// plan's minimum. Equality is acceptable.
func (s *State) ValidPaymentAmount() bool {
	return s.SelectedPlan != nil && s.CustomPayment >= s.SelectedPlan.MinPayment
}

// ValidateUserInfo runs the user-info gate over every party: completeness,
// phone and bank formats, accepted terms and the verification flags matching
// each party's user type.
func (s *State) ValidateUserInfo() error {
	if err := kyc.ValidateParties(s.Accounts); err != nil {
		return err
	}
	for i := range s.Accounts {
		if err := s.Accounts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKYC runs the kyc gate: the declaration is accepted, the primary's
// required documents are uploaded, and every joint holder has accepted and
// uploaded its documents under the per-index key.
func (s *State) ValidateKYC() error {
	if !s.KYCAccepted {
		return ErrKYCNotAccepted
	}
	primary := kyc.Primary(s.Accounts)
	if primary == nil {
		return kyc.ErrNoPrimaryAccount
	}
	for _, doc := range primary.RequiredDocuments() {
		if s.KYCDocuments[string(doc)] == "" {
			return fmt.Errorf("%w: %s", ErrMissingDocument, doc)
		}
	}
	joints := kyc.Joints(s.Accounts)
	for i := range joints {
		if i >= len(s.JointKYCAccepted) || !s.JointKYCAccepted[i] {
			return fmt.Errorf("%w: joint holder %d", ErrJointKYCNotAccepted, i+1)
		}
		for _, doc := range joints[i].RequiredDocuments() {
			key := JointDocumentKey(i+1, doc)
			if s.KYCDocuments[key] == "" {
				return fmt.Errorf("%w: %s", ErrMissingDocument, key)
			}
		}
	}
	return nil
}

// JointDocumentKey names the upload slot of one joint holder's document,
// e.g. joint1Pan for the first joint holder's PAN card.
func JointDocumentKey(n int, doc kyc.DocumentType) string {
	titled := map[kyc.DocumentType]string{
		kyc.DocumentPAN:      "Pan",
		kyc.DocumentAadhaar:  "Aadhar",
		kyc.DocumentGST:      "Gst",
		kyc.DocumentPassport: "Passport",
		kyc.DocumentPhoto:    "Photo",
	}
	return fmt.Sprintf("joint%d%s", n, titled[doc])
}

func (s *State) guardPlanSelected() error {
	if s.SelectedPlan == nil {
		return ErrNoPlanSelected
	}
	return nil
}

func (s *State) guardUserInfo() error {
	return s.ValidateUserInfo()
}

func (s *State) guardKYC() error {
	return s.ValidateKYC()
}

func (s *State) guardPayment() error {
	if !s.ValidPaymentAmount() {
		return ErrPaymentBelowMinimum
	}
	return nil
}

// CanAdvance runs the guard of the current step's forward transition without
// moving. The purchase service uses it to validate before running the
// side-effecting part of a transition.
func (s *State) CanAdvance() error {
	t, ok := forward[s.CurrentStep]
	if !ok {
		return ErrTerminalStep
	}
	return t.guard(s)
}

// Advance moves the flow one step forward if the transition's guard passes.
// A failed guard leaves the state untouched.
func (s *State) Advance() error {
	t, ok := forward[s.CurrentStep]
	if !ok {
		return ErrTerminalStep
	}
	if err := t.guard(s); err != nil {
		return err
	}
	s.CurrentStep = t.next
	return nil
}

// Back moves to the immediately preceding step. Only user-info, kyc and
// payment can step back; no state is discarded by going back.
func (s *State) Back() error {
	prev, ok := backward[s.CurrentStep]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCannotStepBack, s.CurrentStep)
	}
	s.CurrentStep = prev
	return nil
}

// SkipToPayment is the existing-profiles shortcut: a direct jump from
// user-info to payment that short-circuits the user-info and kyc gates for
// this jump only. It is available only once the backend has reported
// previously verified profiles for the investor.
func (s *State) SkipToPayment() error {
	if s.CurrentStep != StepUserInfo || !s.UseExistingProfiles {
		return ErrFastPathUnavailable
	}
	s.CurrentStep = StepPayment
	return nil
}

// Resume places a restored or fresh flow at the requested step when that step
// is plausible for the state, mirroring URL-derived initial state: an invalid
// or premature step silently falls back to the current one.
func (s *State) Resume(step Step) {
	if s.reachable(step) {
		s.CurrentStep = step
	}
}

// reachable reports whether the flow could legally sit at the given step:
// every forward guard on the way there must pass.
func (s *State) reachable(step Step) bool {
	probe := *s
	probe.CurrentStep = StepPlanSelection
	for probe.CurrentStep != step {
		if probe.Advance() != nil {
			return false
		}
	}
	return true
}
