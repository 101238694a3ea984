package purchase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propvest/propvest/infra/flowstore"
	"github.com/propvest/propvest/pkg/domain/flow"
	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/repository"
	"github.com/propvest/propvest/pkg/repository/payment"
	"github.com/propvest/propvest/pkg/repository/profile"
	schemerepo "github.com/propvest/propvest/pkg/repository/scheme"
	"github.com/propvest/propvest/pkg/repository/unit"
	"github.com/propvest/propvest/pkg/service/purchase"
)

// --- fakes ---

type fakeSchemeRepo struct {
	rows map[uuid.UUID]*dto.SchemeRead
}

func (f *fakeSchemeRepo) Create(_ context.Context, create dto.SchemeCreate) error {
	f.rows[create.ID] = &dto.SchemeRead{
		ID:                 create.ID,
		ProjectID:          create.ProjectID,
		SchemeType:         create.SchemeType,
		AreaSqft:           create.AreaSqft,
		BookingAdvance:     create.BookingAdvance,
		TotalInstallments:  create.TotalInstallments,
		MonthlyInstallment: create.MonthlyInstallment,
		RentalStartMonth:   create.RentalStartMonth,
		MonthlyRental:      create.MonthlyRental,
	}
	return nil
}

func (f *fakeSchemeRepo) Get(_ context.Context, id uuid.UUID) (*dto.SchemeRead, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, scheme.ErrSchemeNotFound
	}
	return row, nil
}

func (f *fakeSchemeRepo) ListByProject(_ context.Context, projectID string) ([]*dto.SchemeRead, error) {
	var out []*dto.SchemeRead
	for _, row := range f.rows {
		if row.ProjectID == projectID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	verified []*dto.ProfileRead
}

func (f *fakeProfileRepo) Create(context.Context, dto.ProfileCreate) error { return nil }

func (f *fakeProfileRepo) Get(context.Context, uuid.UUID) (*dto.ProfileRead, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListVerifiedByUser(context.Context, uuid.UUID) ([]*dto.ProfileRead, error) {
	return f.verified, nil
}

type fakeUnitRepo struct {
	created []dto.UnitCreate
}

func (f *fakeUnitRepo) Create(_ context.Context, create dto.UnitCreate) error {
	f.created = append(f.created, create)
	return nil
}

func (f *fakeUnitRepo) Get(context.Context, uuid.UUID) (*dto.UnitRead, error) { return nil, nil }

func (f *fakeUnitRepo) ListByUser(context.Context, uuid.UUID) ([]*dto.UnitRead, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	created   []dto.PaymentCreate
	createErr error
}

func (f *fakePaymentRepo) Create(_ context.Context, create dto.PaymentCreate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, create)
	return nil
}

func (f *fakePaymentRepo) ListByUnit(context.Context, uuid.UUID) ([]*dto.PaymentRead, error) {
	return nil, nil
}

// fakeUOW hands out the same fake repos inside and outside Do. A Do whose
// function errors discards the unit rows written during it, approximating a
// rollback closely enough for the service tests.
type fakeUOW struct {
	schemes  *fakeSchemeRepo
	profiles *fakeProfileRepo
	units    *fakeUnitRepo
	payments *fakePaymentRepo
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{
		schemes:  &fakeSchemeRepo{rows: map[uuid.UUID]*dto.SchemeRead{}},
		profiles: &fakeProfileRepo{},
		units:    &fakeUnitRepo{},
		payments: &fakePaymentRepo{},
	}
}

func (f *fakeUOW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	unitsBefore := len(f.units.created)
	paymentsBefore := len(f.payments.created)
	if err := fn(f); err != nil {
		f.units.created = f.units.created[:unitsBefore]
		f.payments.created = f.payments.created[:paymentsBefore]
		return err
	}
	return nil
}

func (f *fakeUOW) Schemes() schemerepo.Repository { return f.schemes }
func (f *fakeUOW) Profiles() profile.Repository   { return f.profiles }
func (f *fakeUOW) Units() unit.Repository         { return f.units }
func (f *fakeUOW) Payments() payment.Repository   { return f.payments }

// fakeProfileCreator returns fresh ids until the call at failAt, which
// errors. failAt -1 never fails. Calls are recorded in issue order.
type fakeProfileCreator struct {
	failAt int
	calls  []dto.ProfileCreate
}

func (f *fakeProfileCreator) CreateProfile(
	_ context.Context,
	create dto.ProfileCreate,
) (uuid.UUID, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, create)
	if f.failAt >= 0 && idx == f.failAt {
		return uuid.Nil, errors.New("profile backend unavailable")
	}
	return uuid.New(), nil
}

type fakeVerifier struct {
	ok    bool
	err   error
	calls int
}

func (f *fakeVerifier) VerifyDocument(
	context.Context,
	kyc.DocumentType,
	string,
) (bool, error) {
	f.calls++
	return f.ok, f.err
}

type fakePaymentConfirmer struct {
	err     error
	refs    []string
	amounts []int64
}

func (f *fakePaymentConfirmer) ConfirmPayment(
	_ context.Context,
	paymentRef string,
	amount int64,
) error {
	if f.err != nil {
		return f.err
	}
	f.refs = append(f.refs, paymentRef)
	f.amounts = append(f.amounts, amount)
	return nil
}

// --- wiring ---

type harness struct {
	svc      *purchase.Service
	store    *flowstore.MemoryStore
	uow      *fakeUOW
	profiles *fakeProfileCreator
	verifier *fakeVerifier
	payments *fakePaymentConfirmer
}

func newHarness() *harness {
	h := &harness{
		store:    flowstore.NewMemoryStore(),
		uow:      newFakeUOW(),
		profiles: &fakeProfileCreator{failAt: -1},
		verifier: &fakeVerifier{ok: true},
		payments: &fakePaymentConfirmer{},
	}
	h.svc = purchase.New(
		h.store,
		h.uow,
		h.profiles,
		h.verifier,
		h.payments,
		scheme.DefaultPlanConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return h
}

func (h *harness) seedInstallmentScheme(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	installments := 60
	monthly := int64(25000)
	require.NoError(t, h.uow.schemes.Create(context.Background(), dto.SchemeCreate{
		ID:                 id,
		ProjectID:          "P123",
		SchemeType:         string(scheme.TypeInstallment),
		AreaSqft:           600,
		TotalInstallments:  &installments,
		MonthlyInstallment: &monthly,
	}))
	return id
}

func verifiedAccount(role kyc.Role) kyc.Account {
	return kyc.Account{
		Role:    role,
		Surname: "Sharma",
		Name:    "Priya",
		DOB:     "1988-04-02",
		Email:   "priya@example.com",
		Phone:   "9876543210",
		PresentAddress: kyc.Address{
			Street: "12 MG Road",
			City:   "Pune",
		},
		Occupation:    "engineer",
		AnnualIncome:  "10-25L",
		UserType:      kyc.UserTypeIndividual,
		PANNumber:     "ABCDE1234F",
		AadhaarNumber: "234567890123",
		Bank: kyc.BankDetails{
			AccountNumber: "123456789012",
			IFSCCode:      "HDFC0001234",
		},
		TermsAccepted: true,
		Verified:      kyc.Verification{PAN: true, Aadhaar: true},
	}
}

// atKYC drives a flow through plan selection and user info up to the kyc
// step, with declarations accepted and all documents uploaded, then saves it.
func (h *harness) atKYC(t *testing.T, joints int) *flow.State {
	t.Helper()
	ctx := context.Background()
	schemeID := h.seedInstallmentScheme(t)

	st, err := h.svc.SelectPlan(ctx, "P123", schemeID, 1)
	require.NoError(t, err)
	require.NoError(t, st.Advance())

	accounts := []kyc.Account{verifiedAccount(kyc.RolePrimary)}
	for i := 0; i < joints; i++ {
		accounts = append(accounts, verifiedAccount(kyc.RoleJoint))
	}
	require.NoError(t, st.SetAccounts(accounts))
	require.NoError(t, st.Advance())

	st.KYCAccepted = true
	st.KYCDocuments["pan"] = "s3://docs/pan.pdf"
	st.KYCDocuments["aadhar"] = "s3://docs/aadhar.pdf"
	st.KYCDocuments["photo"] = "s3://docs/photo.jpg"
	for i := 1; i <= joints; i++ {
		require.NoError(t, st.SetJointKYCAccepted(i-1, true))
		st.KYCDocuments[flow.JointDocumentKey(i, kyc.DocumentPAN)] = "s3://docs/jpan.pdf"
		st.KYCDocuments[flow.JointDocumentKey(i, kyc.DocumentAadhaar)] = "s3://docs/jaadhar.pdf"
		st.KYCDocuments[flow.JointDocumentKey(i, kyc.DocumentPhoto)] = "s3://docs/jphoto.jpg"
	}
	require.NoError(t, h.store.Save(ctx, st))
	return st
}

func (h *harness) atPayment(t *testing.T) *flow.State {
	t.Helper()
	ctx := context.Background()
	h.atKYC(t, 0)
	st, err := h.svc.Next(ctx, "P123", uuid.New())
	require.NoError(t, err)
	require.Equal(t, flow.StepPayment, st.CurrentStep)
	return st
}

// --- tests ---

func TestSelectPlanDerivesFromScheme(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	schemeID := h.seedInstallmentScheme(t)

	st, err := h.svc.SelectPlan(ctx, "P123", schemeID, 1)
	require.NoError(t, err)
	require.NotNil(t, st.SelectedPlan)
	assert.Equal(t, scheme.PlanInstallment, st.SelectedPlan.Type)
	assert.Equal(t, int64(1_500_000), st.SelectedPlan.Price)
	assert.Equal(t, int64(50_000), st.SelectedPlan.MinPayment, "floor applies to one unit")
	assert.Equal(t, int64(50_000), st.CustomPayment)

	// snapshot written
	saved, err := h.store.Load(ctx, "P123")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, st.SelectedPlan.PlanID, saved.SelectedPlan.PlanID)
}

func TestSelectPlanUnknownScheme(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.SelectPlan(context.Background(), "P123", uuid.New(), 1)
	assert.ErrorIs(t, err, scheme.ErrSchemeNotFound)
}

func TestSetPaymentAmount(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	schemeID := h.seedInstallmentScheme(t)

	_, err := h.svc.SelectPlan(ctx, "P123", schemeID, 1)
	require.NoError(t, err)

	_, err = h.svc.SetPaymentAmount(ctx, "P123", 49_999)
	assert.ErrorIs(t, err, flow.ErrPaymentBelowMinimum)

	// rejection leaves the snapshot at the plan minimum
	saved, err := h.store.Load(ctx, "P123")
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), saved.CustomPayment)

	st, err := h.svc.SetPaymentAmount(ctx, "P123", 75_000)
	require.NoError(t, err)
	assert.Equal(t, int64(75_000), st.CustomPayment)
}

func TestSetPaymentAmountWithoutPlan(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.SetPaymentAmount(context.Background(), "P123", 60_000)
	assert.ErrorIs(t, err, flow.ErrNoPlanSelected)
}

func TestNextCreatesProfilesPrimaryFirst(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	h.atKYC(t, 2)

	st, err := h.svc.Next(ctx, "P123", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, flow.StepPayment, st.CurrentStep)
	assert.Len(t, st.UserProfileIDs, 3)

	require.Len(t, h.profiles.calls, 3)
	assert.Equal(t, string(kyc.RolePrimary), h.profiles.calls[0].Role)
	assert.Equal(t, string(kyc.RoleJoint), h.profiles.calls[1].Role)
	assert.Equal(t, string(kyc.RoleJoint), h.profiles.calls[2].Role)
}

func TestNextJointProfileFailureStopsSequence(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.profiles.failAt = 1 // first joint
	ctx := context.Background()
	h.atKYC(t, 2)

	_, err := h.svc.Next(ctx, "P123", uuid.New())
	require.ErrorIs(t, err, purchase.ErrProfileCreation)

	// the primary's id is kept, no call is issued after the failure, and
	// the persisted flow stays on kyc
	assert.Len(t, h.profiles.calls, 2)
	saved, loadErr := h.store.Load(ctx, "P123")
	require.NoError(t, loadErr)
	assert.Equal(t, flow.StepKYC, saved.CurrentStep)
	assert.Len(t, saved.UserProfileIDs, 1)
}

func TestNextBlockedByIncompleteKYC(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	st := h.atKYC(t, 0)
	st.KYCAccepted = false
	require.NoError(t, h.store.Save(ctx, st))

	_, err := h.svc.Next(ctx, "P123", uuid.New())
	require.ErrorIs(t, err, flow.ErrKYCNotAccepted)
	assert.Empty(t, h.profiles.calls, "guard failure must not reach the profile backend")
}

func TestResumeRestoresSnapshot(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	want := h.atKYC(t, 1)

	st, err := h.svc.Resume(ctx, "P123", "")
	require.NoError(t, err)
	assert.Equal(t, flow.StepKYC, st.CurrentStep)
	assert.Equal(t, want.Accounts, st.Accounts)
}

func TestResumeStepHint(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	h.atKYC(t, 0)

	// stepping back to user-info through the hint is legal
	st, err := h.svc.Resume(ctx, "P123", "user-info")
	require.NoError(t, err)
	assert.Equal(t, flow.StepUserInfo, st.CurrentStep)

	// jumping ahead of the guards is not
	st, err = h.svc.Resume(ctx, "fresh", "payment")
	require.NoError(t, err)
	assert.Equal(t, flow.StepPlanSelection, st.CurrentStep)
}

func TestUpdateKYCMergesDocuments(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()

	accepted := true
	st, err := h.svc.UpdateKYC(ctx, "P123", purchase.KYCUpdate{
		KYCAccepted: &accepted,
		Documents:   map[string]string{"pan": "s3://docs/pan.pdf"},
	})
	require.NoError(t, err)
	assert.True(t, st.KYCAccepted)

	st, err = h.svc.UpdateKYC(ctx, "P123", purchase.KYCUpdate{
		Documents: map[string]string{"photo": "s3://docs/photo.jpg"},
	})
	require.NoError(t, err)
	assert.True(t, st.KYCAccepted, "nil flag leaves acceptance alone")
	assert.Equal(t, "s3://docs/pan.pdf", st.KYCDocuments["pan"])
	assert.Equal(t, "s3://docs/photo.jpg", st.KYCDocuments["photo"])
}

func TestVerifyDocument(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()

	st, err := h.svc.SetAccounts(ctx, "P123", []kyc.Account{verifiedAccount(kyc.RolePrimary)})
	require.NoError(t, err)
	st.Accounts[0].Verified = kyc.Verification{}
	require.NoError(t, h.store.Save(ctx, st))

	st, err = h.svc.VerifyDocument(ctx, "P123", 0, kyc.DocumentPAN, "ABCDE1234F")
	require.NoError(t, err)
	assert.True(t, st.Accounts[0].Verified.PAN)
	assert.False(t, st.Accounts[0].Verified.Aadhaar)
}

func TestVerifyDocumentRejected(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.verifier.ok = false
	ctx := context.Background()

	_, err := h.svc.SetAccounts(ctx, "P123", []kyc.Account{verifiedAccount(kyc.RolePrimary)})
	require.NoError(t, err)

	_, err = h.svc.VerifyDocument(ctx, "P123", 0, kyc.DocumentPAN, "ABCDE1234F")
	require.ErrorIs(t, err, purchase.ErrDocumentRejected)

	saved, loadErr := h.store.Load(ctx, "P123")
	require.NoError(t, loadErr)
	assert.False(t, saved.Accounts[0].Verified.PAN, "rejection leaves the flag unset")
}

func TestVerifyDocumentIndexOutOfRange(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.VerifyDocument(context.Background(), "P123", 3, kyc.DocumentPAN, "X")
	require.Error(t, err)
	assert.Zero(t, h.verifier.calls)
}

func TestCheckExistingProfilesArmsFastPath(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	existing := []*dto.ProfileRead{
		{ID: uuid.New(), UserID: userID, Role: "primary", Verified: true},
		{ID: uuid.New(), UserID: userID, Role: "joint", Verified: true},
	}
	h.uow.profiles.verified = existing

	schemeID := h.seedInstallmentScheme(t)
	_, err := h.svc.SelectPlan(ctx, "P123", schemeID, 1)
	require.NoError(t, err)
	_, err = h.svc.Next(ctx, "P123", userID) // -> user-info
	require.NoError(t, err)

	st, profiles, err := h.svc.CheckExistingProfiles(ctx, "P123", userID)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.True(t, st.UseExistingProfiles)
	assert.Equal(t, []uuid.UUID{existing[0].ID, existing[1].ID}, st.UserProfileIDs)

	// Next now jumps straight to payment without touching the profile port
	st, err = h.svc.Next(ctx, "P123", userID)
	require.NoError(t, err)
	assert.Equal(t, flow.StepPayment, st.CurrentStep)
	assert.Empty(t, h.profiles.calls)
}

func TestCheckExistingProfilesNoneFound(t *testing.T) {
	t.Parallel()
	h := newHarness()

	st, profiles, err := h.svc.CheckExistingProfiles(context.Background(), "P123", uuid.New())
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.False(t, st.UseExistingProfiles)
}

func TestConfirmPayment(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	h.atPayment(t)

	st, err := h.svc.ConfirmPayment(ctx, "P123", userID, "pay_abc123")
	require.NoError(t, err)
	assert.Equal(t, flow.StepConfirmation, st.CurrentStep)

	require.Len(t, h.uow.units.created, 1)
	u := h.uow.units.created[0]
	assert.Equal(t, userID, u.UserID)
	assert.Equal(t, "P123", u.ProjectID)
	assert.Equal(t, "booked", u.UnitStatus)

	require.Len(t, h.uow.payments.created, 1)
	p := h.uow.payments.created[0]
	assert.Equal(t, u.ID, p.UnitID)
	assert.Equal(t, int64(50_000), p.Amount)
	assert.Equal(t, "pay_abc123", p.PaymentRef)
	assert.Equal(t, 1, p.InstallmentNumber)

	assert.Equal(t, []int64{50_000}, h.payments.amounts)

	// slot cleared: mounting the project again starts a fresh flow
	saved, err := h.store.Load(ctx, "P123")
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestConfirmPaymentNotAtPaymentStep(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	h.atKYC(t, 0)

	_, err := h.svc.ConfirmPayment(ctx, "P123", uuid.New(), "pay_abc123")
	assert.ErrorIs(t, err, purchase.ErrNotAtPayment)
	assert.Empty(t, h.payments.refs)
}

func TestConfirmPaymentProviderFailure(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.payments.err = errors.New("gateway timeout")
	ctx := context.Background()
	h.atPayment(t)

	_, err := h.svc.ConfirmPayment(ctx, "P123", uuid.New(), "pay_abc123")
	require.Error(t, err)
	assert.Empty(t, h.uow.units.created)
	assert.Empty(t, h.uow.payments.created)

	// the flow stays on payment for a retry
	saved, loadErr := h.store.Load(ctx, "P123")
	require.NoError(t, loadErr)
	assert.Equal(t, flow.StepPayment, saved.CurrentStep)
}

func TestConfirmPaymentRollsBackOnWriteFailure(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.uow.payments.createErr = errors.New("constraint violation")
	ctx := context.Background()
	h.atPayment(t)

	_, err := h.svc.ConfirmPayment(ctx, "P123", uuid.New(), "pay_abc123")
	require.Error(t, err)
	assert.Empty(t, h.uow.units.created, "unit row must not survive a failed transaction")
}

func TestAbandon(t *testing.T) {
	t.Parallel()
	h := newHarness()
	ctx := context.Background()
	h.atKYC(t, 0)

	require.NoError(t, h.svc.Abandon(ctx, "P123"))
	saved, err := h.store.Load(ctx, "P123")
	require.NoError(t, err)
	assert.Nil(t, saved)
}
