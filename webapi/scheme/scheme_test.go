package scheme_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/webapi/testutils"
)

func seedScheme(t *testing.T, ta *testutils.TestApp, projectID string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	installments := 60
	monthly := int64(25000)
	require.NoError(t, ta.Uow.Schemes().Create(context.Background(), dto.SchemeCreate{
		ID:                 id,
		ProjectID:          projectID,
		SchemeType:         "installment",
		AreaSqft:           600,
		TotalInstallments:  &installments,
		MonthlyInstallment: &monthly,
	}))
	return id
}

func TestListSchemes(t *testing.T) {
	ta := testutils.NewTestApp(t)
	seedScheme(t, ta, "P123")
	seedScheme(t, ta, "P123")
	seedScheme(t, ta, "P999")
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "GET", "/projects/P123/schemes", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
}

func TestListSchemesUnauthorized(t *testing.T) {
	ta := testutils.NewTestApp(t)

	resp := ta.MakeRequest(t, "GET", "/projects/P123/schemes", "", "")
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestPreviewPlan(t *testing.T) {
	ta := testutils.NewTestApp(t)
	id := seedScheme(t, ta, "P123")
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "GET",
		fmt.Sprintf("/schemes/%s/plan?units=2", id), "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Price      int64 `json:"price"`
			MinPayment int64 `json:"min_payment"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(3_000_000), body.Data.Price)
	assert.Equal(t, int64(50_000), body.Data.MinPayment)
}

func TestPreviewPlanUnknownScheme(t *testing.T) {
	ta := testutils.NewTestApp(t)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "GET",
		fmt.Sprintf("/schemes/%s/plan", uuid.New()), "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
