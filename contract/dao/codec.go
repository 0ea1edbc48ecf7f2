package dao

import (
	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/sdk"
)

func encodeParameters(w *sdk.Writer, p GovernanceParameters) {
	w.Byte(byte(p.VoteMethod))
	w.Uint64(p.VotePeriod)
	w.Uint64(p.WaitPeriod)
	w.Uint64(p.EscrowAmount)
	w.Uint64(p.EscrowReturn)
	w.Uint64(p.MinAmount)
	w.Uint64(p.Supermajority)
	w.Uint64(p.RepresentativesShare)
	w.Uint64(p.QuorumUpdatePeriod)
	w.Uint64(p.QuorumUpdate)
	w.Uint64(p.QuorumMaxChange)
	w.Uint64(p.MinQuorum)
	w.Uint64(p.MaxQuorum)
}

func decodeParameters(r *sdk.Reader) GovernanceParameters {
	return GovernanceParameters{
		VoteMethod:           VoteMethod(r.Byte()),
		VotePeriod:           r.Uint64(),
		WaitPeriod:           r.Uint64(),
		EscrowAmount:         r.Uint64(),
		EscrowReturn:         r.Uint64(),
		MinAmount:            r.Uint64(),
		Supermajority:        r.Uint64(),
		RepresentativesShare: r.Uint64(),
		QuorumUpdatePeriod:   r.Uint64(),
		QuorumUpdate:         r.Uint64(),
		QuorumMaxChange:      r.Uint64(),
		MinQuorum:            r.Uint64(),
		MaxQuorum:            r.Uint64(),
	}
}

func encodeSummary(w *sdk.Writer, s VotesSummary) {
	w.Uint64(s.Positive)
	w.Uint64(s.Negative)
	w.Uint64(s.Abstain)
	w.Uint64(s.Total)
	w.Uint64(s.Participation)
}

func decodeSummary(r *sdk.Reader) VotesSummary {
	return VotesSummary{
		Positive:      r.Uint64(),
		Negative:      r.Uint64(),
		Abstain:       r.Uint64(),
		Total:         r.Uint64(),
		Participation: r.Uint64(),
	}
}

func encodeMutezTransfers(w *sdk.Writer, transfers []treasury.MutezDistribution) {
	w.VarUint(uint64(len(transfers)))
	for _, d := range transfers {
		w.Mutez(d.Amount)
		w.Address(d.Destination)
	}
}

func decodeMutezTransfers(r *sdk.Reader) []treasury.MutezDistribution {
	n := r.Count()
	if n == 0 {
		return nil
	}
	transfers := make([]treasury.MutezDistribution, 0, n)
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		transfers = append(transfers, treasury.MutezDistribution{
			Amount:      r.Mutez(),
			Destination: r.Address(),
		})
	}
	return transfers
}

func encodeTokenTransfers(w *sdk.Writer, transfer *treasury.TokenTransfer) {
	if transfer == nil {
		w.Bool(false)
		return
	}
	w.Bool(true)
	w.Address(transfer.Token)
	w.Uint64(transfer.TokenID)
	w.VarUint(uint64(len(transfer.Distributions)))
	for _, d := range transfer.Distributions {
		w.Uint64(d.Amount)
		w.Address(d.Destination)
	}
}

func decodeTokenTransfers(r *sdk.Reader) *treasury.TokenTransfer {
	if !r.Bool() {
		return nil
	}
	transfer := &treasury.TokenTransfer{
		Token:   r.Address(),
		TokenID: r.Uint64(),
	}
	n := r.Count()
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		transfer.Distributions = append(transfer.Distributions, treasury.TokenDistribution{
			Amount:      r.Uint64(),
			Destination: r.Address(),
		})
	}
	return transfer
}

func encodeProposal(w *sdk.Writer, p *Proposal) {
	w.String(p.Title)
	w.String(p.Description)
	w.Byte(byte(p.Kind))
	encodeMutezTransfers(w, p.MutezTransfers)
	encodeTokenTransfers(w, p.TokenTransfers)
	sdk.EncodeOperations(w, p.LambdaOps)
	w.Address(p.Issuer)
	w.Time(p.Timestamp)
	w.Uint64(p.Level)
	w.Uint64(p.Quorum)
	w.Uint64(p.EscrowAmount)
	encodeParameters(w, p.Parameters)
	w.Byte(byte(p.Status))
	encodeSummary(w, p.TokenVotes)
	encodeSummary(w, p.RepresentativesVotes)
}

func decodeProposal(r *sdk.Reader) *Proposal {
	p := &Proposal{
		Title:          r.String(),
		Description:    r.String(),
		Kind:           ProposalKind(r.Byte()),
		MutezTransfers: decodeMutezTransfers(r),
		TokenTransfers: decodeTokenTransfers(r),
		LambdaOps:      sdk.DecodeOperations(r),
		Issuer:         r.Address(),
		Timestamp:      r.Time(),
		Level:          r.Uint64(),
		Quorum:         r.Uint64(),
		EscrowAmount:   r.Uint64(),
		Parameters:     decodeParameters(r),
	}
	p.Status = ProposalStatus(r.Byte())
	p.TokenVotes = decodeSummary(r)
	p.RepresentativesVotes = decodeSummary(r)
	return p
}

func (c *Contract) loadConfig() (*Config, error) {
	raw := c.state.Get(configKey())
	if raw == nil {
		return nil, sdk.Fail(sdk.ErrState, ErrNotDAOOrAdmin)
	}
	r := sdk.NewReader([]byte(*raw))
	cfg := &Config{
		Administrator:         r.Address(),
		ProposedAdministrator: r.Address(),
		Treasury:              r.Address(),
		Token:                 r.Address(),
		Representatives:       r.Address(),
		Guardians:             r.Address(),
		Quorum:                r.Uint64(),
		LastQuorumUpdate:      r.Time(),
		Parameters:            decodeParameters(r),
		Counter:               r.Uint64(),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Contract) saveConfig(cfg *Config) {
	w := sdk.NewWriter()
	w.Address(cfg.Administrator)
	w.Address(cfg.ProposedAdministrator)
	w.Address(cfg.Treasury)
	w.Address(cfg.Token)
	w.Address(cfg.Representatives)
	w.Address(cfg.Guardians)
	w.Uint64(cfg.Quorum)
	w.Time(cfg.LastQuorumUpdate)
	encodeParameters(w, cfg.Parameters)
	w.Uint64(cfg.Counter)
	c.state.Set(configKey(), string(w.Bytes()))
}

func (c *Contract) loadProposal(id uint64) (*Proposal, error) {
	raw := c.state.Get(proposalKey(id))
	if raw == nil {
		return nil, sdk.Fail(sdk.ErrNotFound, ErrInexistentProposal)
	}
	r := sdk.NewReader([]byte(*raw))
	p := decodeProposal(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Contract) saveProposal(id uint64, p *Proposal) {
	w := sdk.NewWriter()
	encodeProposal(w, p)
	c.state.Set(proposalKey(id), string(w.Bytes()))
}

func (c *Contract) loadTokenVote(id uint64, voter sdk.Address) (*TokenVoteRecord, bool) {
	raw := c.state.Get(tokenVoteKey(id, voter))
	if raw == nil {
		return nil, false
	}
	r := sdk.NewReader([]byte(*raw))
	record := &TokenVoteRecord{Vote: VoteKind(r.Byte()), Weight: r.Uint64()}
	if r.Err() != nil {
		return nil, false
	}
	return record, true
}

func (c *Contract) saveTokenVote(id uint64, voter sdk.Address, record TokenVoteRecord) {
	w := sdk.NewWriter()
	w.Byte(byte(record.Vote))
	w.Uint64(record.Weight)
	c.state.Set(tokenVoteKey(id, voter), string(w.Bytes()))
}

func (c *Contract) loadRepresentativeVote(id uint64, community string) (*RepresentativeVoteRecord, bool) {
	raw := c.state.Get(representativeVoteKey(id, community))
	if raw == nil {
		return nil, false
	}
	r := sdk.NewReader([]byte(*raw))
	record := &RepresentativeVoteRecord{Vote: VoteKind(r.Byte()), Representative: r.Address()}
	if r.Err() != nil {
		return nil, false
	}
	return record, true
}

func (c *Contract) saveRepresentativeVote(id uint64, community string, record RepresentativeVoteRecord) {
	w := sdk.NewWriter()
	w.Byte(byte(record.Vote))
	w.Address(record.Representative)
	c.state.Set(representativeVoteKey(id, community), string(w.Bytes()))
}
