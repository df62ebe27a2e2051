package render

import "strings"

var chainIcons = map[string]string{
	"ethereum": "ethereum.png",
	"base":     "base.png",
	"optimism": "optimism.png",
	"arbitrum": "arbitrum.png",
	"polygon":  "polygon.png",
	"degen":    "degen.png",
	"zora":     "zora.png",
	"avax":     "avax.png",
	"blast":    "blast.png",
}

var currencyIcons = map[string]string{
	"eth":   "eth.png",
	"usdc":  "usdc.png",
	"usdt":  "usdt.png",
	"dai":   "dai.png",
	"weth":  "weth.png",
	"degen": "degen.png",
	"matic": "polygon.png",
	"avax":  "avax.png",
}

// LogoURL returns the icon for a currency, falling back to the chain icon and
// then to the ETH icon
func LogoURL(assetBase, chain, currency string) string {
	assetBase = strings.TrimRight(assetBase, "/")
	if icon, ok := currencyIcons[strings.ToLower(currency)]; ok {
		return assetBase + "/" + icon
	}
	if icon, ok := chainIcons[strings.ToLower(chain)]; ok {
		return assetBase + "/" + icon
	}
	return assetBase + "/eth.png"
}
