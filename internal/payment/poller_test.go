package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"github.com/Complexlity/paywithglide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const txHash = "0x5f2a0b5e1c7d0a4e5b2c3d4e5f60718293a4b5c6d7e8f90112233445566778899"

var updateParams = settlement.UpdatePaymentParams{SessionID: "s-1", Hash: txHash}

func TestPoll_MissingHash(t *testing.T) {
	provider := new(testutil.MockProvider)
	p := NewPoller(provider, testutil.NewTestLogger(), nil)

	for _, h := range []string{"", "   "} {
		res, err := p.Poll(context.Background(), "s-1", h)
		assert.ErrorIs(t, err, model.ErrMissingHash)
		assert.Equal(t, PollAwaitingHash, res.State)
	}
	provider.AssertNotCalled(t, "UpdatePaymentTransaction", mock.Anything, mock.Anything)
}

func TestPoll_States(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(p *testutil.MockProvider)
		wantState PollState
		wantErr   error
	}{
		{
			name: "settled",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: true}, nil)
				p.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1", SponsoredTransactionHash: "0xfeed"}, nil)
			},
			wantState: PollSettled,
		},
		{
			name: "pending",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: true}, nil)
				p.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1"}, nil)
			},
			wantState: PollPending,
		},
		{
			name: "update reports failure",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: false}, nil)
				p.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1"}, nil)
			},
			wantState: PollPendingError,
			wantErr:   model.ErrUpdateFailed,
		},
		{
			name: "update errors",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(nil, errors.New("timeout"))
				p.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1"}, nil)
			},
			wantState: PollPendingError,
			wantErr:   model.ErrUpdateFailed,
		},
		{
			name: "lookup fails",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: true}, nil)
				p.On("GetSession", mock.Anything, "s-1").Return(nil, model.ErrSessionNotFound)
			},
			wantState: PollPendingError,
			wantErr:   model.ErrSessionLookup,
		},
		{
			name: "settled despite failed update",
			setup: func(p *testutil.MockProvider) {
				p.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(nil, errors.New("already processed"))
				p.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1", SponsoredTransactionHash: "0xfeed"}, nil)
			},
			wantState: PollSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(testutil.MockProvider)
			tt.setup(provider)
			p := NewPoller(provider, testutil.NewTestLogger(), nil)

			res, err := p.Poll(context.Background(), "s-1", txHash)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, res.State)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			} else {
				assert.NoError(t, res.Err)
			}
			if tt.wantState == PollSettled {
				assert.Equal(t, "0xfeed", res.SettlementHash)
			}
		})
	}
}

func TestPoll_RepeatedSubmissionIsIdempotent(t *testing.T) {
	provider := new(testutil.MockProvider)
	provider.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: true}, nil)
	provider.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1", SponsoredTransactionHash: "0xfeed"}, nil)

	p := NewPoller(provider, testutil.NewTestLogger(), nil)
	first, err := p.Poll(context.Background(), "s-1", txHash)
	require.NoError(t, err)
	second, err := p.Poll(context.Background(), "s-1", txHash)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "UpdatePaymentTransaction", 2)
}

func TestPoll_NeverRevertsOnceSettled(t *testing.T) {
	provider := new(testutil.MockProvider)
	provider.On("UpdatePaymentTransaction", mock.Anything, updateParams).Return(&settlement.UpdatePaymentResult{Success: true}, nil)
	provider.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1"}, nil).Once()
	provider.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{SessionID: "s-1", SponsoredTransactionHash: "0xfeed"}, nil)

	p := NewPoller(provider, testutil.NewTestLogger(), nil)

	res, err := p.Poll(context.Background(), "s-1", txHash)
	require.NoError(t, err)
	assert.Equal(t, PollPending, res.State)

	for i := 0; i < 5; i++ {
		res, err = p.Poll(context.Background(), "s-1", txHash)
		require.NoError(t, err)
		assert.Equal(t, PollSettled, res.State)
	}
}
