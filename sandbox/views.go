package sandbox

import (
	"github.com/teia-community/teia-dao/contract/representatives"
	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/sdk"
)

// Views answers on-chain view calls by reading the target contract's
// storage directly. Inside a transaction they run over the staged overlay,
// so a view sees the transaction's own writes, like host chain views do.
type Views struct {
	state sdk.State
}

// GetBalance implements dao.TokenOracle.
func (v *Views) GetBalance(tokenAddr, owner sdk.Address) (uint64, error) {
	return token.New(contractState(v.state, tokenAddr)).GetBalance(owner, token.TokenID)
}

// GetPriorBalance implements dao.TokenOracle.
func (v *Views) GetPriorBalance(ctx *sdk.Context, tokenAddr, owner sdk.Address, level uint64, maxCheckpoints *uint64) (uint64, error) {
	return token.New(contractState(v.state, tokenAddr)).GetPriorBalance(ctx, owner, token.TokenID, level, maxCheckpoints)
}

// GetRepresentativeCommunity implements dao.RepresentativeDirectory.
func (v *Views) GetRepresentativeCommunity(registry, member sdk.Address) (string, error) {
	return representatives.New(contractState(v.state, registry)).GetRepresentativeCommunity(member)
}
