// Package testutils provides the in-memory wiring the webapi tests run
// against: a map-backed unit of work, mock providers and a fully configured
// Fiber app.
package testutils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	infraflowstore "github.com/propvest/propvest/infra/flowstore"
	infraprovider "github.com/propvest/propvest/infra/provider"
	"github.com/propvest/propvest/pkg/app"
	"github.com/propvest/propvest/pkg/config"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/repository"
	"github.com/propvest/propvest/pkg/repository/payment"
	"github.com/propvest/propvest/pkg/repository/profile"
	"github.com/propvest/propvest/pkg/repository/scheme"
	"github.com/propvest/propvest/pkg/repository/unit"
	"github.com/propvest/propvest/webapi"
)

// MemoryUoW is a map-backed repository.UnitOfWork for handler tests. Do is
// not transactional; tests that need rollback semantics assert at the
// service layer instead.
type MemoryUoW struct {
	mu           sync.Mutex
	SchemeRows   map[uuid.UUID]*dto.SchemeRead
	ProfileRows  map[uuid.UUID]*dto.ProfileRead
	UnitRows     map[uuid.UUID]*dto.UnitRead
	PaymentRows  map[uuid.UUID]*dto.PaymentRead
	paymentOrder []uuid.UUID
}

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		SchemeRows:  map[uuid.UUID]*dto.SchemeRead{},
		ProfileRows: map[uuid.UUID]*dto.ProfileRead{},
		UnitRows:    map[uuid.UUID]*dto.UnitRead{},
		PaymentRows: map[uuid.UUID]*dto.PaymentRead{},
	}
}

// Do implements repository.UnitOfWork.
func (m *MemoryUoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

// Schemes implements repository.UnitOfWork.
func (m *MemoryUoW) Schemes() scheme.Repository { return &memSchemes{m} }

// Profiles implements repository.UnitOfWork.
func (m *MemoryUoW) Profiles() profile.Repository { return &memProfiles{m} }

// Units implements repository.UnitOfWork.
func (m *MemoryUoW) Units() unit.Repository { return &memUnits{m} }

// Payments implements repository.UnitOfWork.
func (m *MemoryUoW) Payments() payment.Repository { return &memPayments{m} }

type memSchemes struct{ u *MemoryUoW }

func (r *memSchemes) Create(_ context.Context, create dto.SchemeCreate) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.SchemeRows[create.ID] = &dto.SchemeRead{
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

func (r *memSchemes) Get(_ context.Context, id uuid.UUID) (*dto.SchemeRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.u.SchemeRows[id], nil
}

func (r *memSchemes) ListByProject(_ context.Context, projectID string) ([]*dto.SchemeRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*dto.SchemeRead
	for _, row := range r.u.SchemeRows {
		if row.ProjectID == projectID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memProfiles struct{ u *MemoryUoW }

func (r *memProfiles) Create(_ context.Context, create dto.ProfileCreate) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.ProfileRows[create.ID] = &dto.ProfileRead{
		ID:        create.ID,
		UserID:    create.UserID,
		Role:      create.Role,
		Surname:   create.Surname,
		Name:      create.Name,
		UserType:  create.UserType,
		Verified:  create.Verified,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *memProfiles) Get(_ context.Context, id uuid.UUID) (*dto.ProfileRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.u.ProfileRows[id], nil
}

func (r *memProfiles) ListVerifiedByUser(_ context.Context, userID uuid.UUID) ([]*dto.ProfileRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*dto.ProfileRead
	for _, row := range r.u.ProfileRows {
		if row.UserID == userID && row.Verified {
			out = append(out, row)
		}
	}
	return out, nil
}

type memUnits struct{ u *MemoryUoW }

func (r *memUnits) Create(_ context.Context, create dto.UnitCreate) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.UnitRows[create.ID] = &dto.UnitRead{
		ID:              create.ID,
		UserID:          create.UserID,
		ProjectID:       create.ProjectID,
		SchemeID:        create.SchemeID,
		Units:           create.Units,
		TotalInvestment: create.TotalInvestment,
		PaymentStatus:   create.PaymentStatus,
		UnitStatus:      create.UnitStatus,
		CreatedAt:       time.Now(),
	}
	return nil
}

func (r *memUnits) Get(_ context.Context, id uuid.UUID) (*dto.UnitRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.u.UnitRows[id], nil
}

func (r *memUnits) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.UnitRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*dto.UnitRead
	for _, row := range r.u.UnitRows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memPayments struct{ u *MemoryUoW }

func (r *memPayments) Create(_ context.Context, create dto.PaymentCreate) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.PaymentRows[create.ID] = &dto.PaymentRead{
		ID:                create.ID,
		UnitID:            create.UnitID,
		Amount:            create.Amount,
		Status:            create.Status,
		InstallmentNumber: create.InstallmentNumber,
		PenaltyAmount:     create.PenaltyAmount,
		RebateAmount:      create.RebateAmount,
		PaymentRef:        create.PaymentRef,
		CreatedAt:         time.Now(),
	}
	r.u.paymentOrder = append(r.u.paymentOrder, create.ID)
	return nil
}

func (r *memPayments) ListByUnit(_ context.Context, unitID uuid.UUID) ([]*dto.PaymentRead, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*dto.PaymentRead
	for _, id := range r.u.paymentOrder {
		if row := r.u.PaymentRows[id]; row != nil && row.UnitID == unitID {
			out = append(out, row)
		}
	}
	return out, nil
}

// TestApp bundles the wired Fiber app and its backing fakes.
type TestApp struct {
	Fiber *fiber.App
	App   *app.App
	Uow   *MemoryUoW
}

// NewTestApp wires a full API instance on in-memory infrastructure.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()
	cfg := &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Plan: &config.Plan{
			MinPaymentFloor:           50000,
			InstallmentRentalFactor:   0.30,
			SinglePaymentRentalFactor: 0.01,
			SnapshotTTL:               time.Hour,
		},
	}
	uow := NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := &app.Deps{
		Uow:            uow,
		FlowStore:      infraflowstore.NewMemoryStore(),
		ProfileCreator: infraprovider.NewDBProfileCreator(uow, logger),
		Verifier:       infraprovider.NewMockDocumentVerifier(),
		Payments:       infraprovider.NewMockPaymentConfirmer(),
		Logger:         logger,
	}
	application := app.New(deps, cfg)
	return &TestApp{
		Fiber: webapi.SetupApp(application),
		App:   application,
		Uow:   uow,
	}
}

// Token signs a bearer token for the given investor.
func (ta *TestApp) Token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := ta.App.AuthService.GenerateToken(userID, "test@example.com")
	require.NoError(t, err)
	return token
}

// MakeRequest issues one request against the app and returns the response.
func (ta *TestApp) MakeRequest(
	t *testing.T,
	method, path, body, token string,
) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}
