package testutil

import (
	"strconv"

	"github.com/Complexlity/paywithglide/internal/model"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a user with one verified address
func NewTestUser(id int64, handle string) model.UserRecord {
	return model.UserRecord{
		ID:                strconv.FormatInt(id, 10),
		DisplayName:       "Test " + handle,
		Handle:            handle,
		AvatarURL:         "https://example.com/" + handle + ".png",
		Bio:               "gm",
		FollowerCount:     1200,
		VerifiedAddresses: []string{"0xC69A0E9b6b2F1aAc6c4E8d2A7c3E4b1D9f0Ac758"},
	}
}
