package checkout

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Service talks to the hosted payment provider. The provider owns the whole
// payment flow: we forward plan + contact details, redirect the user to the
// returned URL and consume the signed webhook afterwards.
type Service struct {
	Client     *http.Client
	APIKey     string
	PrivateKey string
	BaseURL    string
}

func NewService(apiKey, privateKey, baseURL string) *Service {
	return &Service{
		Client:     &http.Client{Timeout: 15 * time.Second},
		APIKey:     apiKey,
		PrivateKey: privateKey,
		BaseURL:    baseURL,
	}
}

type sessionRequest struct {
	PlanID        string `json:"plan_id"`
	MerchantRef   string `json:"merchant_ref"`
	Amount        int64  `json:"amount"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CallbackURL   string `json:"callback_url"`
	ReturnURL     string `json:"return_url"`
	ExpiredTime   int64  `json:"expired_time"` // unix timestamp
	Signature     string `json:"signature"`
}

type SessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Reference   string `json:"reference"`
		MerchantRef string `json:"merchant_ref"`
		CheckoutURL string `json:"checkout_url"`
		Amount      int64  `json:"amount"`
	} `json:"data"`
}

// CreateSession opens a hosted checkout session for the plan and returns the
// provider response including the redirect URL.
func (s *Service) CreateSession(plan Plan, merchantRef, customerName, customerEmail, callbackURL, returnURL string) (*SessionResponse, error) {
	// HMAC-SHA256( plan_id + merchant_ref + amount, private_key )
	sigData := fmt.Sprintf("%s%s%d", plan.ID, merchantRef, plan.Amount)

	reqBody := sessionRequest{
		PlanID:        plan.ID,
		MerchantRef:   merchantRef,
		Amount:        plan.Amount,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CallbackURL:   callbackURL,
		ReturnURL:     returnURL,
		ExpiredTime:   time.Now().Add(24 * time.Hour).Unix(),
		Signature:     s.sign(sigData),
	}

	var out SessionResponse
	if err := s.post("/checkout/session", reqBody, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("checkout provider error: %s", out.Message)
	}
	return &out, nil
}

type portalRequest struct {
	CustomerEmail string `json:"customer_email"`
	ReturnURL     string `json:"return_url"`
	Signature     string `json:"signature"`
}

type PortalResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		PortalURL string `json:"portal_url"`
	} `json:"data"`
}

// CreatePortalSession opens the hosted billing portal for an existing
// customer.
func (s *Service) CreatePortalSession(customerEmail, returnURL string) (*PortalResponse, error) {
	reqBody := portalRequest{
		CustomerEmail: customerEmail,
		ReturnURL:     returnURL,
		Signature:     s.sign(customerEmail),
	}

	var out PortalResponse
	if err := s.post("/billing/portal", reqBody, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("checkout provider error: %s", out.Message)
	}
	return &out, nil
}

func (s *Service) post(path string, body any, dest any) error {
	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequest(http.MethodPost, s.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}
	return nil
}

func (s *Service) sign(data string) string {
	h := hmac.New(sha256.New, []byte(s.PrivateKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateSignature checks the webhook signature:
// HMAC-SHA256( raw_body, private_key ).
func (s *Service) ValidateSignature(incomingSig string, body []byte) bool {
	h := hmac.New(sha256.New, []byte(s.PrivateKey))
	h.Write(body)
	calculated := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(calculated), []byte(incomingSig))
}
