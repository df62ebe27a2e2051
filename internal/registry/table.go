package registry

// ChainSpec is one row of the chain table
type ChainSpec struct {
	ID          string `validate:"required,lowercase"`
	DisplayName string `validate:"required"`
	EVMChainID  int64  `validate:"gt=0"`
}

// Deployment places a currency on a chain. An empty Address means the chain's
// native asset, identified by its SLIP-44 coin type.
type Deployment struct {
	Chain   string `validate:"required"`
	Address string `validate:"omitempty,eth_addr"`
	Slip44  uint32
}

// CurrencySpec is one row of the currency table
type CurrencySpec struct {
	Code        string       `validate:"required,lowercase"`
	Symbol      string       `validate:"required"`
	Decimals    int32        `validate:"gte=0,lte=36"`
	Deployments []Deployment `validate:"required,min=1,dive"`
}

// Table is the data the registry is built from
type Table struct {
	Chains       []ChainSpec       `validate:"required,min=1,dive"`
	Aliases      map[string]string `validate:"required"`
	Currencies   []CurrencySpec    `validate:"required,min=1,dive"`
	DefaultChain string            `validate:"required"`
}

const slip44Ether = 60

// DefaultTable returns the chains and currencies the frame accepts
func DefaultTable() Table {
	return Table{
		DefaultChain: "base",
		Chains: []ChainSpec{
			{ID: "ethereum", DisplayName: "Ethereum", EVMChainID: 1},
			{ID: "base", DisplayName: "Base", EVMChainID: 8453},
			{ID: "optimism", DisplayName: "Optimism", EVMChainID: 10},
			{ID: "arbitrum", DisplayName: "Arbitrum", EVMChainID: 42161},
			{ID: "polygon", DisplayName: "Polygon", EVMChainID: 137},
			{ID: "degen", DisplayName: "Degen", EVMChainID: 666666666},
			{ID: "zora", DisplayName: "Zora", EVMChainID: 7777777},
			{ID: "avax", DisplayName: "Avax", EVMChainID: 43114},
			{ID: "blast", DisplayName: "Blast", EVMChainID: 81457},
		},
		Aliases: map[string]string{
			"eth":      "ethereum",
			"ethereum": "ethereum",
			"mainnet":  "ethereum",
			"base":     "base",
			"op":       "optimism",
			"optimism": "optimism",
			"arb":      "arbitrum",
			"arbitrum": "arbitrum",
			"polygon":  "polygon",
			"degen":    "degen",
			"zora":     "zora",
			"avax":     "avax",
			"blast":    "blast",
		},
		Currencies: []CurrencySpec{
			{
				Code: "eth", Symbol: "ETH", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "ethereum", Slip44: slip44Ether},
					{Chain: "base", Slip44: slip44Ether},
					{Chain: "optimism", Slip44: slip44Ether},
					{Chain: "arbitrum", Slip44: slip44Ether},
					{Chain: "zora", Slip44: slip44Ether},
					{Chain: "blast", Slip44: slip44Ether},
				},
			},
			{
				Code: "usdc", Symbol: "USDC", Decimals: 6,
				Deployments: []Deployment{
					{Chain: "ethereum", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
					{Chain: "base", Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
					{Chain: "optimism", Address: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"},
					{Chain: "arbitrum", Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
					{Chain: "polygon", Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"},
					{Chain: "avax", Address: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"},
				},
			},
			{
				Code: "usdt", Symbol: "USDT", Decimals: 6,
				Deployments: []Deployment{
					{Chain: "ethereum", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
					{Chain: "optimism", Address: "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58"},
					{Chain: "arbitrum", Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9"},
					{Chain: "polygon", Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"},
				},
			},
			{
				Code: "dai", Symbol: "DAI", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "ethereum", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
					{Chain: "base", Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"},
					{Chain: "optimism", Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"},
					{Chain: "arbitrum", Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"},
				},
			},
			{
				Code: "weth", Symbol: "WETH", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "ethereum", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"},
					{Chain: "base", Address: "0x4200000000000000000000000000000000000006"},
					{Chain: "optimism", Address: "0x4200000000000000000000000000000000000006"},
					{Chain: "arbitrum", Address: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"},
				},
			},
			{
				Code: "degen", Symbol: "DEGEN", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "base", Address: "0x4ed4E862860beD51a9570b96d89aF5E1B0Efefed"},
					{Chain: "degen", Slip44: slip44Ether},
				},
			},
			{
				Code: "matic", Symbol: "MATIC", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "polygon", Slip44: 966},
				},
			},
			{
				Code: "avax", Symbol: "AVAX", Decimals: 18,
				Deployments: []Deployment{
					{Chain: "avax", Slip44: 9000},
				},
			},
		},
	}
}
