// Package purchase owns the purchase flow: it is the single writer of the
// per-project snapshot slot and the only place transitions are committed.
// Guards live on the domain state; this service adds the side effects a
// transition carries (profile creation, payment confirmation, persistence)
// and snapshots the state after every change.
package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/domain/flow"
	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/flowstore"
	"github.com/propvest/propvest/pkg/provider"
	"github.com/propvest/propvest/pkg/repository"
)

// Service orchestrates the purchase flow for all projects.
type Service struct {
	store    flowstore.Store
	uow      repository.UnitOfWork
	profiles provider.ProfileCreator
	verifier provider.DocumentVerifier
	payments provider.PaymentConfirmer
	planCfg  scheme.PlanConfig
	logger   *slog.Logger
}

// New wires a purchase service.
func New(
	store flowstore.Store,
	uow repository.UnitOfWork,
	profiles provider.ProfileCreator,
	verifier provider.DocumentVerifier,
	payments provider.PaymentConfirmer,
	planCfg scheme.PlanConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		uow:      uow,
		profiles: profiles,
		verifier: verifier,
		payments: payments,
		planCfg:  planCfg,
		logger:   logger,
	}
}

// Resume restores the project's snapshot, or starts a fresh flow when none
// exists. A step hint (from the request path) places the flow there only
// when the restored state could legally sit at that step.
func (s *Service) Resume(
	ctx context.Context,
	projectID string,
	stepHint string,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if stepHint != "" {
		if step, ok := flow.ParseStep(stepHint); ok {
			st.Resume(step)
		}
	}
	return st, s.save(ctx, st)
}

// Get returns the current flow state without mutating it, starting fresh
// when no snapshot exists.
func (s *Service) Get(ctx context.Context, projectID string) (*flow.State, error) {
	return s.load(ctx, projectID)
}

// SelectPlan derives a plan from the scheme and unit count and records it on
// the flow. Changing units re-derives the plan from the same scheme.
func (s *Service) SelectPlan(
	ctx context.Context,
	projectID string,
	schemeID uuid.UUID,
	units int,
) (*flow.State, error) {
	read, err := s.uow.Schemes().Get(ctx, schemeID)
	if err != nil {
		return nil, fmt.Errorf("loading scheme %s: %w", schemeID, err)
	}
	sch, err := HydrateScheme(read)
	if err != nil {
		return nil, err
	}
	plan, err := scheme.BuildPlan(sch, units, s.planCfg)
	if err != nil {
		return nil, err
	}

	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	st.SelectPlan(plan)
	return st, s.save(ctx, st)
}

// SetPaymentAmount stores the user-adjusted payment. Amounts below the
// plan's minimum are rejected and the snapshot is left untouched.
func (s *Service) SetPaymentAmount(
	ctx context.Context,
	projectID string,
	amount int64,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if st.SelectedPlan == nil {
		return nil, flow.ErrNoPlanSelected
	}
	if amount < st.SelectedPlan.MinPayment {
		return nil, flow.ErrPaymentBelowMinimum
	}
	st.SetCustomPayment(amount)
	return st, s.save(ctx, st)
}

// SetAccounts replaces the purchase's parties.
func (s *Service) SetAccounts(
	ctx context.Context,
	projectID string,
	accounts []kyc.Account,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := st.SetAccounts(accounts); err != nil {
		return nil, err
	}
	return st, s.save(ctx, st)
}

// KYCUpdate carries the mutable inputs of the kyc step. Documents merge into
// the existing upload set; nil leaves the acceptance flags alone.
type KYCUpdate struct {
	KYCAccepted      *bool
	JointKYCAccepted []bool
	Documents        map[string]string
}

// UpdateKYC applies declaration flags and document uploads to the flow.
func (s *Service) UpdateKYC(
	ctx context.Context,
	projectID string,
	update KYCUpdate,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if update.KYCAccepted != nil {
		st.KYCAccepted = *update.KYCAccepted
	}
	for i, accepted := range update.JointKYCAccepted {
		if i >= len(st.JointKYCAccepted) {
			break
		}
		st.JointKYCAccepted[i] = accepted
	}
	if st.KYCDocuments == nil {
		st.KYCDocuments = map[string]string{}
	}
	for key, ref := range update.Documents {
		st.KYCDocuments[key] = ref
	}
	return st, s.save(ctx, st)
}

// VerifyDocument runs one identity document through the external verifier
// and, on success, sets the matching verification flag on the indexed party.
// A rejection surfaces as ErrDocumentRejected with the flag left unset;
// the user may retry.
func (s *Service) VerifyDocument(
	ctx context.Context,
	projectID string,
	accountIndex int,
	doc kyc.DocumentType,
	number string,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if accountIndex < 0 || accountIndex >= len(st.Accounts) {
		return nil, fmt.Errorf("account index %d out of range", accountIndex)
	}
	ok, err := s.verifier.VerifyDocument(ctx, doc, number)
	if err != nil {
		return nil, fmt.Errorf("verifying %s: %w", doc, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentRejected, doc)
	}
	acc := &st.Accounts[accountIndex]
	switch doc {
	case kyc.DocumentPAN:
		acc.Verified.PAN = true
	case kyc.DocumentAadhaar:
		acc.Verified.Aadhaar = true
	case kyc.DocumentGST:
		acc.Verified.GST = true
	case kyc.DocumentPassport:
		acc.Verified.Passport = true
	}
	return st, s.save(ctx, st)
}

// CheckExistingProfiles asks the backend for previously verified profiles of
// the investor. When any exist, their ids are adopted and the flow is marked
// for the user-info -> payment fast path.
func (s *Service) CheckExistingProfiles(
	ctx context.Context,
	projectID string,
	userID uuid.UUID,
) (*flow.State, []*dto.ProfileRead, error) {
	existing, err := s.uow.Profiles().ListVerifiedByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing profiles: %w", err)
	}
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		st.UseExistingProfiles = true
		st.UserProfileIDs = st.UserProfileIDs[:0]
		for _, p := range existing {
			st.UserProfileIDs = append(st.UserProfileIDs, p.ID)
		}
		if err := s.save(ctx, st); err != nil {
			return nil, nil, err
		}
	}
	return st, existing, nil
}

// Next advances the flow one step. The kyc -> payment transition creates one
// profile per party through the external port, primary first, strictly one
// at a time: a failure aborts the transition, keeps the ids collected so far
// and leaves the flow on kyc. From user-info the existing-profiles fast path
// jumps straight to payment when armed.
func (s *Service) Next(
	ctx context.Context,
	projectID string,
	userID uuid.UUID,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if st.CurrentStep == flow.StepUserInfo && st.UseExistingProfiles {
		if err := st.SkipToPayment(); err != nil {
			return nil, err
		}
		return st, s.save(ctx, st)
	}

	if st.CurrentStep == flow.StepKYC {
		if err := st.CanAdvance(); err != nil {
			return nil, err
		}
		if err := s.createProfiles(ctx, st, userID); err != nil {
			// keep ids collected before the failure
			if saveErr := s.save(ctx, st); saveErr != nil {
				s.logger.Error("saving flow after profile failure",
					"project_id", projectID, "error", saveErr)
			}
			return nil, err
		}
	}

	if err := st.Advance(); err != nil {
		return nil, err
	}
	return st, s.save(ctx, st)
}

// Back steps the flow back to the immediately preceding step.
func (s *Service) Back(ctx context.Context, projectID string) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := st.Back(); err != nil {
		return nil, err
	}
	return st, s.save(ctx, st)
}

// ConfirmPayment completes the purchase: the provider confirms the payment
// reference, the purchased unit and its first payment are written atomically,
// the flow reaches confirmation and the snapshot slot is cleared.
func (s *Service) ConfirmPayment(
	ctx context.Context,
	projectID string,
	userID uuid.UUID,
	paymentRef string,
) (*flow.State, error) {
	st, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if st.CurrentStep != flow.StepPayment {
		return nil, fmt.Errorf("%w: flow is on %s", ErrNotAtPayment, st.CurrentStep)
	}
	if !st.ValidPaymentAmount() {
		return nil, flow.ErrPaymentBelowMinimum
	}

	if err := s.payments.ConfirmPayment(ctx, paymentRef, st.CustomPayment); err != nil {
		return nil, fmt.Errorf("confirming payment: %w", err)
	}

	unitID := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Units().Create(ctx, dto.UnitCreate{
			ID:              unitID,
			UserID:          userID,
			ProjectID:       projectID,
			SchemeID:        st.SelectedPlan.PlanID,
			Units:           st.SelectedUnits,
			TotalInvestment: st.SelectedPlan.Price,
			PaymentStatus:   "ongoing",
			UnitStatus:      "booked",
		}); err != nil {
			return err
		}
		return uow.Payments().Create(ctx, dto.PaymentCreate{
			ID:                uuid.New(),
			UnitID:            unitID,
			Amount:            st.CustomPayment,
			Status:            "completed",
			InstallmentNumber: 1,
			PaymentRef:        paymentRef,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("finalizing purchase: %w", err)
	}

	if err := st.Advance(); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, projectID); err != nil {
		s.logger.Warn("clearing flow snapshot", "project_id", projectID, "error", err)
	}
	s.logger.Info("purchase confirmed",
		"project_id", projectID, "unit_id", unitID, "amount", st.CustomPayment)
	return st, nil
}

// Abandon clears the project's snapshot, forgetting the in-progress flow.
func (s *Service) Abandon(ctx context.Context, projectID string) error {
	return s.store.Delete(ctx, projectID)
}

// createProfiles issues one creation call per party, primary first, then
// joints in declaration order. Fail-fast: the first error stops the
// sequence; profiles already created are not rolled back.
func (s *Service) createProfiles(
	ctx context.Context,
	st *flow.State,
	userID uuid.UUID,
) error {
	primary := kyc.Primary(st.Accounts)
	ordered := append([]kyc.Account{*primary}, kyc.Joints(st.Accounts)...)

	for i := range ordered {
		id, err := s.profiles.CreateProfile(
			ctx, profileCreateFrom(&ordered[i], userID, st.ProjectID))
		if err != nil {
			s.logger.Error("profile creation failed",
				"project_id", st.ProjectID, "party", ordered[i].Role, "index", i,
				"created_so_far", len(st.UserProfileIDs), "error", err)
			return fmt.Errorf("%w (%s, party %d): %v",
				ErrProfileCreation, ordered[i].Role, i+1, err)
		}
		st.UserProfileIDs = append(st.UserProfileIDs, id)
	}
	return nil
}

func profileCreateFrom(a *kyc.Account, userID uuid.UUID, projectID string) dto.ProfileCreate {
	return dto.ProfileCreate{
		ID:             uuid.New(),
		UserID:         userID,
		ProjectID:      projectID,
		Role:           string(a.Role),
		Surname:        a.Surname,
		Name:           a.Name,
		DOB:            a.DOB,
		Email:          a.Email,
		Phone:          a.Phone,
		Street:         a.PresentAddress.Street,
		City:           a.PresentAddress.City,
		Occupation:     a.Occupation,
		AnnualIncome:   a.AnnualIncome,
		UserType:       string(a.UserType),
		PANNumber:      a.PANNumber,
		AadhaarNumber:  a.AadhaarNumber,
		GSTNumber:      a.GSTNumber,
		PassportNumber: a.PassportNumber,
		AccountNumber:  a.Bank.AccountNumber,
		IFSCCode:       a.Bank.IFSCCode,
		Verified:       a.IdentityVerified(),
	}
}

func (s *Service) load(ctx context.Context, projectID string) (*flow.State, error) {
	st, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading flow snapshot: %w", err)
	}
	if st == nil {
		st = flow.NewState(projectID)
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, st *flow.State) error {
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("saving flow snapshot: %w", err)
	}
	return nil
}
