package payment

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"github.com/Complexlity/paywithglide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUnsignedTransaction(t *testing.T) {
	provider := new(testutil.MockProvider)
	provider.On("GetSession", mock.Anything, "s-1").Return(&settlement.Session{
		SessionID: "s-1",
		UnsignedTransaction: &settlement.Transaction{
			ChainID: "eip155:10",
			To:      "0xabc",
			Input:   "0xa9059cbb",
			Value:   "0x64",
		},
	}, nil)
	provider.On("GetSession", mock.Anything, "empty").Return(&settlement.Session{SessionID: "empty"}, nil)
	provider.On("GetSession", mock.Anything, "gone").Return(nil, model.ErrSessionNotFound)
	provider.On("GetSession", mock.Anything, "down").Return(nil, errors.New("connection refused"))

	h := NewHandoff(provider)
	ctx := context.Background()

	tx, err := h.GetUnsignedTransaction(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "eip155:10", tx.ChainID)
	assert.Equal(t, "0xa9059cbb", tx.Data)
	assert.Equal(t, int64(100), tx.Value.Int64())

	_, err = h.GetUnsignedTransaction(ctx, "empty")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = h.GetUnsignedTransaction(ctx, "gone")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = h.GetUnsignedTransaction(ctx, "down")
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrSessionNotFound))
}

func TestNewTxResponse(t *testing.T) {
	resp := NewTxResponse(&model.UnsignedTransaction{
		ChainID: "eip155:8453",
		To:      "0xabc",
		Data:    "0x",
		Value:   big.NewInt(1000),
	})

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chainId":"eip155:8453","method":"eth_sendTransaction","params":{"abi":[],"to":"0xabc","data":"0x","value":"1000"}}`, string(b))

	assert.Equal(t, "0", NewTxResponse(&model.UnsignedTransaction{ChainID: "eip155:1"}).Params.Value)
}

func TestDisableAttribution(t *testing.T) {
	inputs := []string{
		`{"chainId":"eip155:8453","method":"eth_sendTransaction","params":{"abi":[],"to":"0xabc","value":"1"}}`,
		`{"chainId":"eip155:8453","attribution":true,"params":{"data":"0x<&>"}}`,
		`{"attribution":false}`,
		`{}`,
		`null`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			out, err := DisableAttribution([]byte(in))
			require.NoError(t, err)

			var before, after map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(in), &before))
			require.NoError(t, json.Unmarshal(out, &after))

			assert.Equal(t, "false", string(after["attribution"]))
			for k, v := range before {
				if k == "attribution" {
					continue
				}
				assert.Equal(t, string(v), string(after[k]), "field %s changed", k)
			}
			assert.Len(t, after, len(before)+boolToInt(before["attribution"] == nil))

			again, err := DisableAttribution(out)
			require.NoError(t, err)
			assert.Equal(t, string(out), string(again))
		})
	}

	_, err := DisableAttribution([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestDisableAttribution_KeepsValueBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested whitespace",
			in:   `{"chainId":"eip155:8453","params": {"to": "0xabc", "value": "1"},"attribution":true}`,
			want: `{"chainId":"eip155:8453","params":{"to": "0xabc", "value": "1"},"attribution":false}`,
		},
		{
			name: "appended when absent",
			in:   `{ "method": "eth_sendTransaction", "params": { "abi": [ ] } }`,
			want: `{"method":"eth_sendTransaction","params":{ "abi": [ ] },"attribution":false}`,
		},
		{
			name: "duplicate flag",
			in:   `{"attribution":true,"chainId":"eip155:1","attribution":"yes"}`,
			want: `{"attribution":false,"chainId":"eip155:1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DisableAttribution([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
