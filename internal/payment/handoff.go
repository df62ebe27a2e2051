package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
)

// Handoff exposes a session's unsigned transaction to the payer's wallet
type Handoff struct {
	provider settlement.Provider
}

// NewHandoff creates a handoff backed by provider
func NewHandoff(provider settlement.Provider) *Handoff {
	return &Handoff{provider: provider}
}

// GetUnsignedTransaction fetches the transaction the payer must sign
func (h *Handoff) GetUnsignedTransaction(ctx context.Context, sessionID string) (*model.UnsignedTransaction, error) {
	s, err := h.provider.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if s == nil || s.UnsignedTransaction == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, model.ErrSessionNotFound)
	}
	return s.UnsignedTransaction.Unsigned()
}

// TxParams are the eth_sendTransaction parameters of a wallet transaction
type TxParams struct {
	ABI   []any  `json:"abi"`
	To    string `json:"to,omitempty"`
	Data  string `json:"data,omitempty"`
	Value string `json:"value"`
}

// TxResponse is the body returned to the client for a transaction button
type TxResponse struct {
	ChainID string   `json:"chainId"`
	Method  string   `json:"method"`
	Params  TxParams `json:"params"`
}

// NewTxResponse builds the wallet payload for tx. Value is a decimal string.
func NewTxResponse(tx *model.UnsignedTransaction) TxResponse {
	value := "0"
	if tx.Value != nil {
		value = tx.Value.String()
	}
	return TxResponse{
		ChainID: tx.ChainID,
		Method:  "eth_sendTransaction",
		Params: TxParams{
			ABI:   []any{},
			To:    tx.To,
			Data:  tx.Data,
			Value: value,
		},
	}
}

// DisableAttribution sets the top-level "attribution" field of a JSON object to
// false. Key order and the bytes of every other value are kept as they were;
// the field is appended when absent.
func DisableAttribution(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if bytes.Equal(trimmed, []byte("null")) {
		return []byte(`{"attribution":false}`), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("decode transaction payload: not a JSON object")
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := false
	n := 0
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode transaction payload: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode transaction payload: unexpected key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode transaction payload: %w", err)
		}

		if key == "attribution" {
			if written {
				continue
			}
			value = json.RawMessage("false")
			written = true
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, key)
		buf.Write(value)
		n++
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode transaction payload: %w", err)
	}

	if !written {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"attribution":false`)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(key)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	buf.WriteByte(':')
}
