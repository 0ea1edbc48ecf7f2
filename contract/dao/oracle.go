package dao

import "github.com/teia-community/teia-dao/sdk"

// TokenOracle answers token contract view calls. The runtime injects an
// implementation that routes to the registered token contract, tests inject
// fakes.
type TokenOracle interface {
	// GetBalance returns the owner's current balance on the given token
	// contract.
	GetBalance(token, owner sdk.Address) (uint64, error)
	// GetPriorBalance returns the owner's balance at a past block level,
	// optionally limiting the checkpoint scan window.
	GetPriorBalance(ctx *sdk.Context, token, owner sdk.Address, level uint64, maxCheckpoints *uint64) (uint64, error)
}

// RepresentativeDirectory answers community lookups against the
// representatives registry contract.
type RepresentativeDirectory interface {
	// GetRepresentativeCommunity returns the community a wallet represents,
	// or an error when it represents none.
	GetRepresentativeCommunity(registry, member sdk.Address) (string, error)
}
