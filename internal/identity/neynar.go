package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Complexlity/paywithglide/internal/httpx"
	"github.com/Complexlity/paywithglide/internal/model"
)

// Lookup is the identity provider surface the resolver depends on
type Lookup interface {
	SearchByHandle(ctx context.Context, query string) ([]model.UserRecord, error)
	BulkByAddress(ctx context.Context, address string) ([]model.UserRecord, error)
	BulkByID(ctx context.Context, ids ...string) ([]model.UserRecord, error)
}

// neynarUser is the user object returned by the Neynar v2 API
type neynarUser struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	PfpURL      string `json:"pfp_url"`
	Profile     struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	FollowerCount     int `json:"follower_count"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
}

func (u neynarUser) record() model.UserRecord {
	return model.UserRecord{
		ID:                strconv.FormatInt(u.FID, 10),
		DisplayName:       u.DisplayName,
		Handle:            u.Username,
		AvatarURL:         u.PfpURL,
		Bio:               u.Profile.Bio.Text,
		FollowerCount:     u.FollowerCount,
		VerifiedAddresses: u.VerifiedAddresses.EthAddresses,
	}
}

func records(users []neynarUser) []model.UserRecord {
	out := make([]model.UserRecord, 0, len(users))
	for _, u := range users {
		if u.FID == 0 {
			continue
		}
		out = append(out, u.record())
	}
	return out
}

// NeynarClient calls the Neynar v2 user and frame endpoints
type NeynarClient struct {
	http *httpx.Client
}

// NewNeynarClient creates a client authenticated with apiKey
func NewNeynarClient(baseURL, apiKey string, opts ...httpx.Option) *NeynarClient {
	opts = append([]httpx.Option{httpx.WithHeader("api_key", apiKey)}, opts...)
	return &NeynarClient{http: httpx.NewClient("neynar", baseURL, opts...)}
}

// SearchByHandle searches users by username
func (c *NeynarClient) SearchByHandle(ctx context.Context, query string) ([]model.UserRecord, error) {
	var resp struct {
		Result struct {
			Users []neynarUser `json:"users"`
		} `json:"result"`
	}
	if err := c.http.GetJSON(ctx, "/user/search", url.Values{"q": {query}}, &resp); err != nil {
		return nil, fmt.Errorf("search user %q: %w", query, err)
	}
	return records(resp.Result.Users), nil
}

// BulkByAddress returns the users that verified address
func (c *NeynarClient) BulkByAddress(ctx context.Context, address string) ([]model.UserRecord, error) {
	resp := map[string][]neynarUser{}
	if err := c.http.GetJSON(ctx, "/user/bulk-by-address", url.Values{"addresses": {address}}, &resp); err != nil {
		return nil, fmt.Errorf("lookup address %s: %w", address, err)
	}
	if users, ok := resp[strings.ToLower(address)]; ok {
		return records(users), nil
	}
	// keys are normally lower-cased; fall back to any entry
	for _, users := range resp {
		return records(users), nil
	}
	return nil, nil
}

// BulkByID fetches users by fid
func (c *NeynarClient) BulkByID(ctx context.Context, ids ...string) ([]model.UserRecord, error) {
	var resp struct {
		Users []neynarUser `json:"users"`
	}
	if err := c.http.GetJSON(ctx, "/user/bulk", url.Values{"fids": {strings.Join(ids, ",")}}, &resp); err != nil {
		return nil, fmt.Errorf("fetch users %v: %w", ids, err)
	}
	return records(resp.Users), nil
}

// VerifyMessage validates a signed frame message with Neynar and returns the
// fid of the interactor. Rejected messages wrap model.ErrInvalidMessage.
func (c *NeynarClient) VerifyMessage(ctx context.Context, messageBytes string) (int64, error) {
	body := map[string]string{"message_bytes_in_hex": messageBytes}
	var resp struct {
		Valid  bool `json:"valid"`
		Action struct {
			Interactor struct {
				FID int64 `json:"fid"`
			} `json:"interactor"`
		} `json:"action"`
	}
	if err := c.http.PostJSON(ctx, "/frame/validate", body, &resp); err != nil {
		if httpx.IsStatus(err, http.StatusBadRequest) {
			return 0, fmt.Errorf("%w: %w", model.ErrInvalidMessage, err)
		}
		return 0, fmt.Errorf("validate frame message: %w", err)
	}
	if !resp.Valid || resp.Action.Interactor.FID <= 0 {
		return 0, model.ErrInvalidMessage
	}
	return resp.Action.Interactor.FID, nil
}
