package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxActionBytes = 64 << 10

// Action is the body a client posts when a card button is pressed
type Action struct {
	UntrustedData struct {
		FID           int64  `json:"fid"`
		URL           string `json:"url"`
		MessageHash   string `json:"messageHash"`
		ButtonIndex   int    `json:"buttonIndex"`
		InputText     string `json:"inputText"`
		State         string `json:"state"`
		TransactionID string `json:"transactionId"`
		Address       string `json:"address"`
	} `json:"untrustedData"`
	TrustedData struct {
		MessageBytes string `json:"messageBytes"`
	} `json:"trustedData"`
}

// ParseAction decodes the request body. An empty body yields an empty action.
func ParseAction(r *http.Request) (*Action, error) {
	var a Action
	if r.Body == nil {
		return &a, nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxActionBytes)).Decode(&a)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode frame action: %w", err)
	}
	return &a, nil
}
