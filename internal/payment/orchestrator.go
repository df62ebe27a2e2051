package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Complexlity/paywithglide/internal/metrics"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// receivedDecimals is the precision of the destination asset (ETH)
const receivedDecimals = 18

// Orchestrator creates payment sessions at the settlement provider
type Orchestrator struct {
	provider    settlement.Provider
	destination model.Chain
	logger      *zap.Logger
	metrics     metrics.Recorder
}

// NewOrchestrator creates an orchestrator that pays recipients on destination
func NewOrchestrator(provider settlement.Provider, destination model.Chain, logger *zap.Logger, rec metrics.Recorder) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Orchestrator{
		provider:    provider,
		destination: destination,
		logger:      logger,
		metrics:     rec,
	}
}

// RecipientAddress returns the first valid verified address of u, lower-cased
func RecipientAddress(u model.UserRecord) (string, error) {
	for _, addr := range u.VerifiedAddresses {
		if common.IsHexAddress(addr) {
			return strings.ToLower(common.HexToAddress(addr).Hex()), nil
		}
	}
	return "", model.ErrNoVerifiedAddress
}

// CreateSession opens a session paying recipient the resolved amount. The
// provider is the only store; nothing is kept locally.
func (o *Orchestrator) CreateSession(ctx context.Context, p model.ResolvedPayment, fromID string, recipient model.UserRecord) (*model.PaymentSession, error) {
	address, err := RecipientAddress(recipient)
	if err != nil {
		return nil, err
	}

	labels := map[string]string{"source": "glide"}
	s, err := o.provider.CreateSession(ctx, settlement.CreateSessionParams{
		ChainID:         o.destination.CAIP2(),
		PaymentCurrency: p.Currency.AssetID,
		PaymentAmount:   json.Number(p.Amount.String()),
		Address:         address,
	})
	if err != nil {
		o.metrics.IncCounter(metrics.SessionCreateError, labels)
		return nil, fmt.Errorf("create session: %w", err)
	}
	if s == nil || s.SponsoredTransaction == nil {
		o.metrics.IncCounter(metrics.SessionCreateError, labels)
		return nil, model.ErrSessionCreation
	}

	tx, err := s.SponsoredTransaction.Unsigned()
	if err != nil {
		o.metrics.IncCounter(metrics.SessionCreateError, labels)
		return nil, fmt.Errorf("%w: %w", model.ErrSessionCreation, err)
	}

	o.metrics.IncCounter(metrics.SessionCreated, labels)
	o.logger.Info("payment session created",
		zap.String("session_id", s.SessionID),
		zap.String("from", fromID),
		zap.String("to", recipient.ID),
		zap.String("currency", p.Currency.AssetID),
		zap.String("amount", p.Amount.String()),
	)

	return &model.PaymentSession{
		SessionID:                s.SessionID,
		FromUserID:               fromID,
		ToUserID:                 recipient.ID,
		RecipientAddress:         address,
		ChainID:                  o.destination.ID,
		Currency:                 p.Currency,
		RequestedAmount:          p.Amount,
		ReceivedAmount:           FormatUnits(tx.Value, receivedDecimals),
		UnsignedTransaction:      tx,
		SponsoredTransactionHash: s.SponsoredTransactionHash,
	}, nil
}
