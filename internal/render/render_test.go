package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Dan", FirstName("Dan Romero"))
	assert.Equal(t, "vitalik.eth", FirstName("vitalik.eth"))
	assert.Equal(t, "", FirstName(""))
	assert.Equal(t, "Ana", FirstName("  Ana   Maria "))
}

func TestTruncateBio(t *testing.T) {
	short := "building things"
	assert.Equal(t, short, TruncateBio(short))

	exact := strings.Repeat("a", 60)
	assert.Equal(t, exact, TruncateBio(exact))

	long := strings.Repeat("a", 70)
	assert.Equal(t, strings.Repeat("a", 60)+"...", TruncateBio(long))

	// 59 ASCII bytes followed by a 4-byte rune straddling the limit
	emoji := strings.Repeat("b", 59) + "🚀" + "tail"
	got := TruncateBio(emoji)
	assert.Equal(t, strings.Repeat("b", 59)+"...", got)
}

func TestFormatFollowers(t *testing.T) {
	tests := map[int]string{
		0:      "0",
		999:    "999",
		1000:   "1.0K",
		1234:   "1.2K",
		250000: "250.0K",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFollowers(in))
	}
}

func TestLogoURL(t *testing.T) {
	assert.Equal(t, "https://x.test/public/usdc.png", LogoURL("https://x.test/public/", "Base", "USDC"))
	assert.Equal(t, "https://x.test/public/zora.png", LogoURL("https://x.test/public", "zora", "imagine"))
	assert.Equal(t, "https://x.test/public/eth.png", LogoURL("https://x.test/public", "unknown", "unknown"))
}

func TestRenderer(t *testing.T) {
	r := NewRenderer("https://x.test/public")

	var buf bytes.Buffer
	require.NoError(t, r.Initial(&buf))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, r.Profile(&buf, Profile{
		AvatarURL: "https://x.test/a.png",
		Name:      "Dan Romero",
		Handle:    "dwr.eth",
		Bio:       "<script>",
		Followers: "250.0K",
		Summary:   &SendSummary{Amount: "5", Currency: "USDC", Chain: "Base", Received: "0.0015"},
	}))
	out := buf.String()
	assert.Contains(t, out, ">Dan<")
	assert.Contains(t, out, "5 USDC")
	assert.Contains(t, out, "https://x.test/public/usdc.png")
	assert.Contains(t, out, "They receive 0.0015 ETH")
	assert.NotContains(t, out, "<script>")

	buf.Reset()
	require.NoError(t, r.Status(&buf, Status{FromName: "Alice A", ToName: "Bob B", Received: "0.5", Label: "Success"}))
	out = buf.String()
	assert.Contains(t, out, ">Alice<")
	assert.Contains(t, out, "0.5 ETH")
	assert.Contains(t, out, "Success")
}
