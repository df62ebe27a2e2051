package model

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// UserRecord represents a social-network account as returned by the identity provider
type UserRecord struct {
	ID                string
	DisplayName       string
	Handle            string
	AvatarURL         string
	Bio               string
	FollowerCount     int
	VerifiedAddresses []string
}

// PaymentIntent is the structured form of one free-text payment instruction
type PaymentIntent struct {
	RawText      string
	Amount       string
	CurrencyCode string
	ChainHint    string // empty when the text named no chain
}

// Chain is a canonical chain known to the registry
type Chain struct {
	ID          string
	DisplayName string
	EVMChainID  int64
}

// CAIP2 returns the chain identifier in eip155 form (e.g. eip155:8453)
func (c Chain) CAIP2() string {
	return fmt.Sprintf("eip155:%d", c.EVMChainID)
}

// CurrencyOnChain is a currency validated against one chain
type CurrencyOnChain struct {
	Code     string
	Symbol   string
	Decimals int32
	Chain    Chain
	AssetID  string // CAIP-19
}

// ResolvedPayment is a PaymentIntent whose currency and chain passed registry validation
type ResolvedPayment struct {
	Intent   PaymentIntent
	Amount   decimal.Decimal
	Chain    Chain
	Currency CurrencyOnChain
}

// UnsignedTransaction is the transaction handed to the payer's wallet for signing
type UnsignedTransaction struct {
	ChainID string // CAIP-2
	To      string
	Data    string
	Value   *big.Int
}

// Status is derived from a PaymentSession, never stored
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
)

// PaymentSession represents one payment attempt held by the settlement provider
type PaymentSession struct {
	SessionID                string
	FromUserID               string
	ToUserID                 string
	RecipientAddress         string
	ChainID                  string
	Currency                 CurrencyOnChain
	RequestedAmount          decimal.Decimal
	ReceivedAmount           decimal.Decimal
	UnsignedTransaction      *UnsignedTransaction
	SponsoredTransactionHash string
}

// Status reports success once the provider has recorded a settlement hash
func (s PaymentSession) Status() Status {
	if s.SponsoredTransactionHash != "" {
		return StatusSuccess
	}
	return StatusPending
}
