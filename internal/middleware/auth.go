package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Complexlity/paywithglide/internal/frame"
	"github.com/Complexlity/paywithglide/internal/model"
	"go.uber.org/zap"
)

type contextKey string

const (
	actionKey contextKey = "frame_action"
	fidKey    contextKey = "interactor_fid"
)

// MessageVerifier checks the trusted message of a frame action and returns the
// fid that signed it. Rejected messages wrap model.ErrInvalidMessage.
type MessageVerifier interface {
	VerifyMessage(ctx context.Context, messageBytes string) (int64, error)
}

// Interactor decodes the frame action posted by the client and attaches it and
// the interactor fid to the context. When verifier is non-nil the trusted
// message must verify and its fid must match the untrusted one.
func Interactor(verifier MessageVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, err := frame.ParseAction(r)
			if err != nil {
				frame.WriteError(w, http.StatusBadRequest, "Invalid frame action.")
				return
			}

			fid := action.UntrustedData.FID
			if verifier != nil {
				msg := action.TrustedData.MessageBytes
				if msg == "" {
					frame.WriteError(w, http.StatusUnauthorized, "Invalid frame message.")
					return
				}
				trusted, err := verifier.VerifyMessage(r.Context(), msg)
				if err != nil {
					if errors.Is(err, model.ErrInvalidMessage) {
						logger.Debug("frame message rejected", zap.Error(err))
						frame.WriteError(w, http.StatusUnauthorized, "Invalid frame message.")
						return
					}
					logger.Error("frame message verification failed", zap.Error(err))
					frame.WriteError(w, http.StatusBadGateway, "Could not verify frame message.")
					return
				}
				if fid != 0 && trusted != fid {
					logger.Warn("frame fid mismatch",
						zap.Int64("untrusted_fid", fid),
						zap.Int64("trusted_fid", trusted),
					)
					frame.WriteError(w, http.StatusUnauthorized, "Invalid frame message.")
					return
				}
				fid = trusted
			}

			ctx := context.WithValue(r.Context(), actionKey, action)
			ctx = context.WithValue(ctx, fidKey, fid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAction returns the frame action attached by Interactor
func GetAction(ctx context.Context) (*frame.Action, bool) {
	a, ok := ctx.Value(actionKey).(*frame.Action)
	return a, ok
}

// GetInteractorFID returns the fid of the user who pressed the button
func GetInteractorFID(ctx context.Context) (int64, bool) {
	fid, ok := ctx.Value(fidKey).(int64)
	return fid, ok && fid > 0
}

// GetInteractorKey keys rate limits by fid, falling back to the client IP
func GetInteractorKey(r *http.Request) string {
	if fid, ok := GetInteractorFID(r.Context()); ok {
		return "fid:" + strconv.FormatInt(fid, 10)
	}
	return GetIPKey(r)
}
