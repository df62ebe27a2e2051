package registry

import (
	"fmt"
	"strings"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Registry maps chain aliases and currency codes to validated on-chain identifiers.
// It is immutable after New and safe for concurrent use.
type Registry struct {
	chains       map[string]model.Chain
	aliases      map[string]string
	currencies   map[string]map[string]model.CurrencyOnChain // code -> chain id -> pair
	defaultChain model.Chain
}

// New validates t and builds a Registry from it
func New(t Table) (*Registry, error) {
	if err := validator.New().Struct(t); err != nil {
		return nil, fmt.Errorf("invalid registry table: %w", err)
	}

	r := &Registry{
		chains:     make(map[string]model.Chain, len(t.Chains)),
		aliases:    make(map[string]string, len(t.Aliases)),
		currencies: make(map[string]map[string]model.CurrencyOnChain, len(t.Currencies)),
	}

	for _, c := range t.Chains {
		if _, dup := r.chains[c.ID]; dup {
			return nil, fmt.Errorf("duplicate chain %q", c.ID)
		}
		r.chains[c.ID] = model.Chain{ID: c.ID, DisplayName: c.DisplayName, EVMChainID: c.EVMChainID}
	}

	for alias, target := range t.Aliases {
		if _, ok := r.chains[target]; !ok {
			return nil, fmt.Errorf("alias %q points to unknown chain %q", alias, target)
		}
		r.aliases[strings.ToLower(alias)] = target
	}

	def, ok := r.chains[t.DefaultChain]
	if !ok {
		return nil, fmt.Errorf("default chain %q is not in the chain table", t.DefaultChain)
	}
	r.defaultChain = def

	for _, cur := range t.Currencies {
		if _, dup := r.currencies[cur.Code]; dup {
			return nil, fmt.Errorf("duplicate currency %q", cur.Code)
		}
		byChain := make(map[string]model.CurrencyOnChain, len(cur.Deployments))
		for _, d := range cur.Deployments {
			chain, ok := r.chains[d.Chain]
			if !ok {
				return nil, fmt.Errorf("currency %q deployed on unknown chain %q", cur.Code, d.Chain)
			}
			byChain[chain.ID] = model.CurrencyOnChain{
				Code:     cur.Code,
				Symbol:   cur.Symbol,
				Decimals: cur.Decimals,
				Chain:    chain,
				AssetID:  assetID(chain, d),
			}
		}
		r.currencies[cur.Code] = byChain
	}

	return r, nil
}

// MustNew is New for tables known to be valid at compile time
func MustNew(t Table) *Registry {
	r, err := New(t)
	if err != nil {
		panic(err)
	}
	return r
}

// CAIP-19 asset identifier
func assetID(chain model.Chain, d Deployment) string {
	if d.Address == "" {
		return fmt.Sprintf("%s/slip44:%d", chain.CAIP2(), d.Slip44)
	}
	return fmt.Sprintf("%s/erc20:%s", chain.CAIP2(), strings.ToLower(d.Address))
}

// DefaultChain returns the chain used when no alias matches
func (r *Registry) DefaultChain() model.Chain {
	return r.defaultChain
}

// Chain looks up a chain by canonical id
func (r *Registry) Chain(id string) (model.Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

// ResolveChain maps a chain token through the alias table. Unknown and empty
// tokens resolve to the default chain.
func (r *Registry) ResolveChain(token string) model.Chain {
	if id, ok := r.aliases[strings.ToLower(strings.TrimSpace(token))]; ok {
		return r.chains[id]
	}
	return r.defaultChain
}

// Resolve validates a parsed intent against the table
func (r *Registry) Resolve(intent model.PaymentIntent) (model.ResolvedPayment, error) {
	amount, err := decimal.NewFromString(intent.Amount)
	if err != nil || !amount.IsPositive() {
		return model.ResolvedPayment{}, &model.ValidationError{
			Field:   "amount",
			Message: "Amount must be greater than zero.",
		}
	}

	chain := r.ResolveChain(intent.ChainHint)

	byChain, ok := r.currencies[strings.ToLower(intent.CurrencyCode)]
	if !ok {
		return model.ResolvedPayment{}, &model.ValidationError{
			Field:   "currency",
			Message: "Currency not supported.",
		}
	}

	pair, ok := byChain[chain.ID]
	if !ok {
		return model.ResolvedPayment{}, fmt.Errorf("%w: %s on %s", model.ErrUnsupportedCurrency, intent.CurrencyCode, chain.ID)
	}

	return model.ResolvedPayment{
		Intent:   intent,
		Amount:   amount,
		Chain:    chain,
		Currency: pair,
	}, nil
}
