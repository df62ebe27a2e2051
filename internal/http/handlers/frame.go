package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Complexlity/paywithglide/internal/frame"
	"github.com/Complexlity/paywithglide/internal/intent"
	"github.com/Complexlity/paywithglide/internal/middleware"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/payment"
	"go.uber.org/zap"
)

// User-facing messages
const (
	msgEmptySearch       = "Please enter a username or address."
	msgUserNotFound      = "User not found!"
	msgSearchFailed      = "An error occurred while searching for the user."
	msgRecipientFailed   = "An error occurred while fetching the recipient."
	msgInvalidFormat     = "Invalid input format. Please use the format: " + intent.ExpectedFormat
	msgInvalidPair       = "Invalid currency or chain provided. Please try again."
	msgNoVerifiedAddress = "Recipient has no verified address."
	msgSessionFailed     = "Failed to create Glide session. Please try again."
	msgUnknownSender     = "Could not identify the sender."
	msgSessionNotFound   = "Session not found."
	msgTxFailed          = "Failed to fetch transaction."
	msgMissingHash       = "Missing transaction hash, please try again."

	searchPlaceholder = "dwr.eth or 0xc69...c758"
	amountPlaceholder = "0.1 eth on base or 5 usdc"
	frameTitle        = "Pay with Glide"
)

// UserResolver finds Farcaster users by handle, address or fid
type UserResolver interface {
	Resolve(ctx context.Context, identifier string) (model.UserRecord, error)
	ResolveByID(ctx context.Context, id string) (model.UserRecord, error)
	ResolveMany(ctx context.Context, ids ...string) ([]model.UserRecord, error)
}

// PaymentRegistry validates a parsed amount against the supported chains and currencies
type PaymentRegistry interface {
	Resolve(in model.PaymentIntent) (model.ResolvedPayment, error)
}

// SessionCreator opens a settlement session for a payment
type SessionCreator interface {
	CreateSession(ctx context.Context, p model.ResolvedPayment, fromID string, recipient model.UserRecord) (*model.PaymentSession, error)
}

// TransactionSource supplies the transaction a payer signs
type TransactionSource interface {
	GetUnsignedTransaction(ctx context.Context, sessionID string) (*model.UnsignedTransaction, error)
}

// SettlementPoller reports a payer hash and reads settlement progress
type SettlementPoller interface {
	Poll(ctx context.Context, sessionID, txHash string) (payment.PollResult, error)
}

// FrameConfig holds the URLs and limits the card flow needs
type FrameConfig struct {
	BaseURL         string // absolute origin plus mount path
	ExplorerTxURL   string
	ShareURL        string
	MaxPollFailures int // 0 means never give up
}

// FrameDeps are the collaborators of FrameHandler
type FrameDeps struct {
	Users    UserResolver
	Registry PaymentRegistry
	Sessions SessionCreator
	Handoff  TransactionSource
	Poller   SettlementPoller
	Logger   *zap.Logger
}

// FrameHandler serves the card states of the payment flow
type FrameHandler struct {
	users    UserResolver
	registry PaymentRegistry
	sessions SessionCreator
	handoff  TransactionSource
	poller   SettlementPoller
	cfg      FrameConfig
	logger   *zap.Logger
}

// NewFrameHandler creates a new frame handler
func NewFrameHandler(deps FrameDeps, cfg FrameConfig) *FrameHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameHandler{
		users:    deps.Users,
		registry: deps.Registry,
		sessions: deps.Sessions,
		handoff:  deps.Handoff,
		poller:   deps.Poller,
		cfg:      cfg,
		logger:   logger,
	}
}

func (h *FrameHandler) url(segments ...string) string {
	return joinURL(h.cfg.BaseURL, segments...)
}

func (h *FrameHandler) write(w http.ResponseWriter, card frame.Card) {
	if card.Title == "" {
		card.Title = frameTitle
	}
	if err := frame.Write(w, card); err != nil {
		h.logger.Error("failed to write card", zap.Error(err))
	}
}

func actionFrom(r *http.Request) *frame.Action {
	if a, ok := middleware.GetAction(r.Context()); ok {
		return a
	}
	return &frame.Action{}
}

// HandleInitial handles GET and POST /
func (h *FrameHandler) HandleInitial(w http.ResponseWriter, r *http.Request) {
	h.write(w, frame.Card{
		Image:            h.url("initial-image"),
		InputPlaceholder: searchPlaceholder,
		Buttons: []frame.Button{
			{Label: "Continue", Target: h.url("review")},
		},
		BrowserLocation: h.cfg.ShareURL,
	})
}

// HandleReview handles POST /review
func (h *FrameHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(actionFrom(r).UntrustedData.InputText)
	if query == "" {
		frame.WriteError(w, http.StatusBadRequest, msgEmptySearch)
		return
	}

	user, err := h.users.Resolve(r.Context(), query)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			frame.WriteError(w, http.StatusBadRequest, msgUserNotFound)
			return
		}
		h.logger.Error("user search failed", zap.String("query", query), zap.Error(err))
		frame.WriteError(w, http.StatusBadRequest, msgSearchFailed)
		return
	}

	h.write(w, frame.Card{
		Image:            h.url("review-image", user.ID),
		InputPlaceholder: amountPlaceholder,
		Buttons: []frame.Button{
			{Label: "Back", Target: h.url()},
			{Label: "Review", Target: h.url("send", user.ID)},
		},
	})
}

// HandleSend handles POST /send/{toId}. Text is validated before any upstream call.
func (h *FrameHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	toID := pathParam(r, "toId")

	fid, ok := middleware.GetInteractorFID(ctx)
	if !ok {
		frame.WriteError(w, http.StatusBadRequest, msgUnknownSender)
		return
	}
	fromID := strconv.FormatInt(fid, 10)

	parsed, err := intent.Parse(actionFrom(r).UntrustedData.InputText)
	if err != nil {
		frame.WriteError(w, http.StatusBadRequest, msgInvalidFormat)
		return
	}

	resolved, err := h.registry.Resolve(parsed)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.Is(err, model.ErrUnsupportedCurrency):
			frame.WriteError(w, http.StatusBadRequest, msgInvalidPair)
		case errors.As(err, &verr):
			frame.WriteError(w, http.StatusBadRequest, verr.Message)
		default:
			frame.WriteError(w, http.StatusBadRequest, msgInvalidPair)
		}
		return
	}

	recipient, err := h.users.ResolveByID(ctx, toID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			frame.WriteError(w, http.StatusBadRequest, msgUserNotFound)
			return
		}
		h.logger.Error("recipient lookup failed", zap.String("to", toID), zap.Error(err))
		frame.WriteError(w, http.StatusBadRequest, msgRecipientFailed)
		return
	}

	session, err := h.sessions.CreateSession(ctx, resolved, fromID, recipient)
	if err != nil {
		if errors.Is(err, model.ErrNoVerifiedAddress) {
			frame.WriteError(w, http.StatusBadRequest, msgNoVerifiedAddress)
			return
		}
		h.logger.Error("session creation failed",
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.Error(err),
		)
		frame.WriteError(w, http.StatusBadRequest, msgSessionFailed)
		return
	}

	amount := payment.FormatAmount(resolved.Amount)
	received := payment.FormatAmount(session.ReceivedAmount)

	h.write(w, frame.Card{
		Image:   h.url("send-image", toID, amount, received, resolved.Chain.DisplayName, resolved.Currency.Symbol),
		PostURL: h.url("tx-status", session.SessionID, fromID, toID, received),
		Buttons: []frame.Button{
			{Label: "Back", Target: h.url()},
			{Label: "Send", Action: frame.ActionTx, Target: h.url("send-tx", session.SessionID)},
		},
	})
}

// HandleSendTx handles POST /send-tx/{sessionId}
func (h *FrameHandler) HandleSendTx(w http.ResponseWriter, r *http.Request) {
	sessionID := pathParam(r, "sessionId")

	tx, err := h.handoff.GetUnsignedTransaction(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			frame.WriteError(w, http.StatusNotFound, msgSessionNotFound)
			return
		}
		h.logger.Error("transaction lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		frame.WriteError(w, http.StatusBadGateway, msgTxFailed)
		return
	}

	respondWithJSON(w, http.StatusOK, payment.NewTxResponse(tx))
}

// HandleStatus handles POST /tx-status/{sessionId}/{fromId}/{toId}/{received}
func (h *FrameHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := pathParam(r, "sessionId")
	fromID := pathParam(r, "fromId")
	toID := pathParam(r, "toId")
	received := pathParam(r, "received")

	hash := actionFrom(r).UntrustedData.TransactionID
	if hash == "" {
		hash = r.URL.Query().Get("value")
	}

	res, err := h.poller.Poll(r.Context(), sessionID, hash)
	if err != nil {
		frame.WriteError(w, http.StatusBadRequest, msgMissingHash)
		return
	}

	statusURL := h.url("tx-status", sessionID, fromID, toID, received)

	switch res.State {
	case payment.PollSettled:
		h.write(w, frame.Card{
			Image: h.url("tx-success", fromID, toID, received),
			Buttons: []frame.Button{
				{Label: "View on Explorer", Action: frame.ActionLink, Target: h.cfg.ExplorerTxURL + res.SettlementHash},
				{Label: "Send another", Target: h.url()},
			},
		})
		return

	case payment.PollPendingError:
		failures := failureCount(r) + 1
		if h.cfg.MaxPollFailures > 0 && failures >= h.cfg.MaxPollFailures {
			h.write(w, frame.Card{
				Image: h.url("tx-failed", fromID, toID, received),
				Buttons: []frame.Button{
					{Label: "Try again", Target: statusURL, Value: hash},
				},
			})
			return
		}
		h.writeProcessing(w, statusURL+"?failures="+strconv.Itoa(failures), hash, fromID, toID, received)
		return
	}

	h.writeProcessing(w, statusURL, hash, fromID, toID, received)
}

func (h *FrameHandler) writeProcessing(w http.ResponseWriter, target, hash, fromID, toID, received string) {
	h.write(w, frame.Card{
		Image: h.url("tx-processing", fromID, toID, received),
		Buttons: []frame.Button{
			{Label: "Refresh", Target: target, Value: hash},
		},
	})
}

func failureCount(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("failures"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
