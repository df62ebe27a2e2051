package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Complexlity/paywithglide/internal/metrics"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"go.uber.org/zap"
)

// PollState is where a payment stands after one poll
type PollState string

const (
	PollAwaitingHash PollState = "awaiting-hash"
	PollPending      PollState = "pending"
	PollPendingError PollState = "pending-error"
	PollSettled      PollState = "settled"
)

// PollResult is the outcome of one evaluation. Err is set only for PollPendingError.
type PollResult struct {
	State          PollState
	SettlementHash string
	Err            error
}

// Poller reports a payment transaction to the provider and reads back settlement
type Poller struct {
	provider settlement.Provider
	logger   *zap.Logger
	metrics  metrics.Recorder
}

// NewPoller creates a poller. A nil logger or recorder is replaced with a no-op.
func NewPoller(provider settlement.Provider, logger *zap.Logger, rec metrics.Recorder) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Poller{provider: provider, logger: logger, metrics: rec}
}

// Poll submits txHash for sessionID and re-fetches the session. Only a missing
// hash is returned as an error; provider failures become PollPendingError so the
// caller can offer a retry. Safe to call repeatedly with the same hash.
func (p *Poller) Poll(ctx context.Context, sessionID, txHash string) (PollResult, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return PollResult{State: PollAwaitingHash}, model.ErrMissingHash
	}

	res := p.evaluate(ctx, sessionID, txHash)

	p.metrics.IncCounter(metrics.PollOutcome, map[string]string{"source": "glide", "outcome": string(res.State)})
	if res.Err != nil {
		p.logger.Warn("settlement poll failed",
			zap.String("session_id", sessionID),
			zap.String("tx_hash", txHash),
			zap.Error(res.Err),
		)
	}
	return res, nil
}

func (p *Poller) evaluate(ctx context.Context, sessionID, txHash string) PollResult {
	var updateErr error
	res, err := p.provider.UpdatePaymentTransaction(ctx, settlement.UpdatePaymentParams{
		SessionID: sessionID,
		Hash:      txHash,
	})
	switch {
	case err != nil:
		updateErr = fmt.Errorf("%w: %w", model.ErrUpdateFailed, err)
	case res == nil || !res.Success:
		updateErr = model.ErrUpdateFailed
	}

	// A settled session stays settled even when the update call itself fails.
	s, err := p.provider.GetSession(ctx, sessionID)
	if err != nil {
		if updateErr != nil {
			return PollResult{State: PollPendingError, Err: updateErr}
		}
		return PollResult{State: PollPendingError, Err: fmt.Errorf("%w: %w", model.ErrSessionLookup, err)}
	}
	if s == nil {
		return PollResult{State: PollPendingError, Err: model.ErrSessionLookup}
	}

	session := s.PaymentSession()
	if session.Status() == model.StatusSuccess {
		return PollResult{State: PollSettled, SettlementHash: session.SponsoredTransactionHash}
	}
	if updateErr != nil {
		return PollResult{State: PollPendingError, Err: updateErr}
	}
	return PollResult{State: PollPending}
}
