package payment

// InitializeRequest starts a hosted-payment transaction. Amount is in
// whole naira; the gateway wire format wants kobo.
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callbackUrl"`
}

// InitializeResponse carries the hosted payment page to redirect to.
type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyResult is the gateway's view of a transaction after lookup.
// Amount is converted back to whole naira.
type VerifyResult struct {
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

const StatusSuccess = "success"
