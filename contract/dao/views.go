package dao

import "github.com/teia-community/teia-dao/sdk"

// GetProposalCount returns how many proposals have been created.
func (c *Contract) GetProposalCount() (uint64, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	return cfg.Counter, nil
}

// GetProposal returns one proposal by id.
func (c *Contract) GetProposal(id uint64) (*Proposal, error) {
	return c.loadProposal(id)
}

// GetVote returns a token holder's ballot on a proposal.
func (c *Contract) GetVote(id uint64, voter sdk.Address) (*TokenVoteRecord, error) {
	record, ok := c.loadTokenVote(id, voter)
	if !ok {
		return nil, sdk.Fail(sdk.ErrNotFound, ErrInexistentVote)
	}
	return record, nil
}

// GetRepresentativeVote returns a community's ballot on a proposal.
func (c *Contract) GetRepresentativeVote(id uint64, community string) (*RepresentativeVoteRecord, error) {
	record, ok := c.loadRepresentativeVote(id, community)
	if !ok {
		return nil, sdk.Fail(sdk.ErrNotFound, ErrInexistentVote)
	}
	return record, nil
}

// HasVoted reports whether a wallet already cast a token vote on a proposal.
func (c *Contract) HasVoted(id uint64, voter sdk.Address) bool {
	_, ok := c.loadTokenVote(id, voter)
	return ok
}

// GetQuorum returns the current quorum.
func (c *Contract) GetQuorum() (uint64, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	return cfg.Quorum, nil
}

// GetGovernanceParameters returns the current parameter record.
func (c *Contract) GetGovernanceParameters() (GovernanceParameters, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return GovernanceParameters{}, err
	}
	return cfg.Parameters, nil
}

// Administrator returns the current administrator address.
func (c *Contract) Administrator() (sdk.Address, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Administrator, nil
}

// Metadata reads one contract metadata entry.
func (c *Contract) Metadata(key string) (string, bool) {
	raw := c.state.Get(metadataKey(key))
	if raw == nil {
		return "", false
	}
	return *raw, true
}
