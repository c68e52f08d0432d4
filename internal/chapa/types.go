package chapa

// InitializeRequest is the body of POST /transaction/initialize. TxRef is
// always the registration's own ID so the callback can be correlated back.
type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url"`
}

// InitializeResponse carries the hosted checkout URL the client is
// redirected to.
type InitializeResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    InitializeData `json:"data"`
}

type InitializeData struct {
	CheckoutURL string `json:"checkout_url"`
}

// VerifyResponse is the server-to-server verification result for one
// tx_ref. Data.Status is the authoritative payment outcome.
type VerifyResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

type VerifyData struct {
	Status      string  `json:"status"`
	ID          string  `json:"id"`
	PaymentType string  `json:"payment_type"`
	Amount      float64 `json:"amount"`
}

// StatusSuccess is the value both envelope and data statuses take on a
// successful transaction.
const StatusSuccess = "success"
