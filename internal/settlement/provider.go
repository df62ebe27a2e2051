package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/ethereum/go-ethereum/common/math"
)

// Provider is the external settlement service that holds payment sessions
type Provider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	UpdatePaymentTransaction(ctx context.Context, params UpdatePaymentParams) (*UpdatePaymentResult, error)
}

// CreateSessionParams is the body of a session creation request
type CreateSessionParams struct {
	ChainID         string      `json:"chainId"`
	PaymentCurrency string      `json:"paymentCurrency"`
	PaymentAmount   json.Number `json:"paymentAmount"`
	Address         string      `json:"address"`
}

// Transaction is a provider transaction descriptor. Value is hex encoded.
type Transaction struct {
	ChainID string `json:"chainId"`
	To      string `json:"to,omitempty"`
	Input   string `json:"input,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Unsigned converts the descriptor into the model form
func (t *Transaction) Unsigned() (*model.UnsignedTransaction, error) {
	tx := &model.UnsignedTransaction{
		ChainID: t.ChainID,
		To:      t.To,
		Data:    t.Input,
	}
	if t.Value == "" {
		return tx, nil
	}
	v, err := decodeQuantity(t.Value)
	if err != nil {
		return nil, err
	}
	tx.Value = v
	return tx, nil
}

// decodeQuantity parses a 0x-prefixed hex quantity. Leading zero digits are
// accepted since providers pad values.
func decodeQuantity(s string) (*big.Int, error) {
	if !has0xPrefix(s) {
		return nil, fmt.Errorf("decode transaction value %q: missing 0x prefix", s)
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("decode transaction value %q: invalid hex quantity", s)
	}
	return v, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Session is the provider's record of one payment attempt
type Session struct {
	SessionID                string       `json:"sessionId"`
	PaymentChainID           string       `json:"paymentChainId,omitempty"`
	PaymentCurrency          string       `json:"paymentCurrency,omitempty"`
	PaymentAmount            json.Number  `json:"paymentAmount,omitempty"`
	UnsignedTransaction      *Transaction `json:"unsignedTransaction,omitempty"`
	SponsoredTransaction     *Transaction `json:"sponsoredTransaction,omitempty"`
	PaymentTransactionHash   string       `json:"paymentTransactionHash,omitempty"`
	SponsoredTransactionHash string       `json:"sponsoredTransactionHash,omitempty"`
}

// PaymentSession projects the provider record onto the fields status is derived from
func (s *Session) PaymentSession() model.PaymentSession {
	return model.PaymentSession{
		SessionID:                s.SessionID,
		SponsoredTransactionHash: s.SponsoredTransactionHash,
	}
}

// UpdatePaymentParams identifies the payment transaction of a session
type UpdatePaymentParams struct {
	SessionID string `json:"-"`
	Hash      string `json:"hash"`
}

type UpdatePaymentResult struct {
	Success bool `json:"success"`
}
