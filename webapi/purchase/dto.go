package purchase

import "github.com/propvest/propvest/pkg/domain/kyc"

//revive:disable

// ResumeRequest optionally names the step the client's URL pointed at.
type ResumeRequest struct {
	Step string `json:"step" validate:"omitempty,oneof=plan-selection plan user-info kyc payment confirmation"`
}

// SelectPlanRequest selects a scheme and unit count for the flow.
type SelectPlanRequest struct {
	SchemeID string `json:"scheme_id" validate:"required,uuid4"`
	Units    int    `json:"units" validate:"required,gt=0"`
}

// PaymentAmountRequest sets the user-adjusted payment amount.
type PaymentAmountRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// AccountsRequest replaces the purchase's parties.
type AccountsRequest struct {
	Accounts []kyc.Account `json:"accounts" validate:"required,min=1"`
}

// KYCRequest applies declaration flags and document uploads. Nil flags leave
// the stored values alone; documents merge into the upload set.
type KYCRequest struct {
	KYCAccepted      *bool             `json:"kyc_accepted"`
	JointKYCAccepted []bool            `json:"joint_kyc_accepted"`
	Documents        map[string]string `json:"documents"`
}

// ConfirmPaymentRequest carries the gateway's payment reference.
type ConfirmPaymentRequest struct {
	PaymentRef string `json:"payment_ref" validate:"required,min=2,max=64"`
}
