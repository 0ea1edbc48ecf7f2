// Package dao implements the Teia community governance contract: proposal
// lifecycle, token holder and representative voting, escrow settlement and
// the self-adjusting quorum.
package dao

import (
	"time"

	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/sdk"
)

// Contract is the DAO governance contract.
type Contract struct {
	state     sdk.State
	oracle    TokenOracle
	directory RepresentativeDirectory
}

// New wraps an already originated governance state.
func New(state sdk.State, oracle TokenOracle, directory RepresentativeDirectory) *Contract {
	return &Contract{state: state, oracle: oracle, directory: directory}
}

// Originate writes the initial governance configuration.
func Originate(state sdk.State, oracle TokenOracle, directory RepresentativeDirectory,
	administrator, treasuryAddr, tokenAddr, representatives, guardians sdk.Address,
	quorum uint64, parameters GovernanceParameters, now time.Time) (*Contract, error) {
	if err := parameters.Validate(); err != nil {
		return nil, err
	}
	if quorum < parameters.MinQuorum || quorum > parameters.MaxQuorum {
		return nil, sdk.Fail(sdk.ErrValidation, ErrWrongParameters)
	}
	c := New(state, oracle, directory)
	c.saveConfig(&Config{
		Administrator:    administrator,
		Treasury:         treasuryAddr,
		Token:            tokenAddr,
		Representatives:  representatives,
		Guardians:        guardians,
		Quorum:           quorum,
		LastQuorumUpdate: now,
		Parameters:       parameters,
	})
	return c, nil
}

// ProposalRequest carries the caller side of a new proposal. Exactly one
// payload field matching Kind may be set.
type ProposalRequest struct {
	Title          string
	Description    string
	Kind           ProposalKind
	MutezTransfers []treasury.MutezDistribution
	TokenTransfers *treasury.TokenTransfer
	LambdaOps      []sdk.Operation
}

func (req *ProposalRequest) validate() error {
	ok := false
	switch req.Kind {
	case KindText:
		ok = len(req.MutezTransfers) == 0 && req.TokenTransfers == nil && len(req.LambdaOps) == 0
	case KindTransferMutez:
		ok = len(req.MutezTransfers) > 0 && req.TokenTransfers == nil && len(req.LambdaOps) == 0
	case KindTransferToken:
		ok = req.TokenTransfers != nil && len(req.TokenTransfers.Distributions) > 0 &&
			len(req.MutezTransfers) == 0 && len(req.LambdaOps) == 0
	case KindLambda:
		ok = len(req.LambdaOps) > 0 && len(req.MutezTransfers) == 0 && req.TokenTransfers == nil
	}
	if !ok {
		return sdk.Fail(sdk.ErrValidation, ErrWrongParameters)
	}
	return nil
}

// CreateProposal stores a new open proposal, snapshotting the current
// governance parameters and quorum. When the parameters require an escrow,
// the issuer's tokens are pulled into the DAO's custody.
func (c *Contract) CreateProposal(ctx *sdk.Context, req ProposalRequest) ([]sdk.Operation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := c.checkIsMember(ctx, cfg); err != nil {
		return nil, err
	}

	p := &Proposal{
		Title:          req.Title,
		Description:    req.Description,
		Kind:           req.Kind,
		MutezTransfers: req.MutezTransfers,
		TokenTransfers: req.TokenTransfers,
		LambdaOps:      req.LambdaOps,
		Issuer:         ctx.Sender,
		Timestamp:      ctx.Now,
		Level:          ctx.Level,
		Quorum:         cfg.Quorum,
		EscrowAmount:   cfg.Parameters.EscrowAmount,
		Parameters:     cfg.Parameters,
		Status:         StatusOpen,
	}
	c.saveProposal(cfg.Counter, p)
	cfg.Counter++
	c.saveConfig(cfg)

	var ops []sdk.Operation
	if p.EscrowAmount > 0 {
		// The DAO must be an approved operator of the issuer for this
		// to succeed.
		ops = append(ops, escrowTransfer(cfg.Token, ctx.Sender, ctx.Self, p.EscrowAmount))
	}
	return ops, nil
}

// TokenVote casts a token holder ballot. The weight comes from the voter's
// balance at the proposal's creation level, so buying tokens after a
// proposal is published gives no extra voting power on it.
func (c *Contract) TokenVote(ctx *sdk.Context, id uint64, vote VoteKind, maxCheckpoints *uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p, err := c.loadProposal(id)
	if err != nil {
		return err
	}
	if p.Status != StatusOpen {
		return sdk.Fail(sdk.ErrState, ErrStatusNotOpen)
	}
	if !ctx.Now.Before(p.VotingDeadline()) {
		return sdk.Fail(sdk.ErrTiming, ErrClosedProposal)
	}
	if _, voted := c.loadTokenVote(id, ctx.Sender); voted {
		return sdk.Fail(sdk.ErrState, ErrAlreadyVoted)
	}

	balance, err := c.oracle.GetPriorBalance(ctx, cfg.Token, ctx.Sender, p.Level, maxCheckpoints)
	if err != nil {
		return err
	}
	if ctx.Sender == p.Issuer {
		// The issuer's escrowed tokens still count toward their own
		// proposal.
		balance += p.EscrowAmount
	}
	if balance == 0 {
		return sdk.Fail(sdk.ErrValidation, ErrZeroBalance)
	}
	if balance < p.Parameters.MinAmount {
		return sdk.Fail(sdk.ErrValidation, ErrInsufficientBalance)
	}

	weight := voteWeight(p.Parameters.VoteMethod, balance)
	p.TokenVotes.add(vote, weight)
	c.saveProposal(id, p)
	c.saveTokenVote(id, ctx.Sender, TokenVoteRecord{Vote: vote, Weight: weight})
	return nil
}

// RepresentativesVote casts a community ballot. Only the representatives
// registry contract may call it, and each community votes at most once per
// proposal no matter which wallet currently represents it.
func (c *Contract) RepresentativesVote(ctx *sdk.Context, id uint64, vote VoteKind, representative sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Representatives {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotRepresentatives)
	}
	p, err := c.loadProposal(id)
	if err != nil {
		return err
	}
	if p.Status != StatusOpen {
		return sdk.Fail(sdk.ErrState, ErrStatusNotOpen)
	}
	if !ctx.Now.Before(p.VotingDeadline()) {
		return sdk.Fail(sdk.ErrTiming, ErrClosedProposal)
	}

	community, err := c.directory.GetRepresentativeCommunity(cfg.Representatives, representative)
	if err != nil {
		return err
	}
	if _, voted := c.loadRepresentativeVote(id, community); voted {
		return sdk.Fail(sdk.ErrState, ErrAlreadyVoted)
	}

	// Each community ballot counts as one unit, the bloc is rescaled
	// against the quorum at evaluation time.
	p.RepresentativesVotes.add(vote, 1)
	c.saveProposal(id, p)
	c.saveRepresentativeVote(id, community, RepresentativeVoteRecord{Vote: vote, Representative: representative})
	return nil
}

// CancelProposal cancels an open or approved proposal. The issuer may cancel
// their own open proposal, guardians may also cancel approved ones to block
// a payload before execution. Escrow is settled only when cancelling from
// open, evaluation already settled it for approved proposals.
func (c *Contract) CancelProposal(ctx *sdk.Context, id uint64, returnEscrow bool) ([]sdk.Operation, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := c.loadProposal(id)
	if err != nil {
		return nil, err
	}
	if ctx.Sender != p.Issuer && ctx.Sender != cfg.Guardians {
		return nil, sdk.Fail(sdk.ErrAuthorization, ErrNotIssuerOrGuardian)
	}
	if p.Status != StatusOpen && p.Status != StatusApproved {
		return nil, sdk.Fail(sdk.ErrState, ErrStatusNotOpen)
	}
	if p.Status == StatusApproved && ctx.Sender != cfg.Guardians {
		return nil, sdk.Fail(sdk.ErrAuthorization, ErrNotIssuerOrGuardian)
	}

	var ops []sdk.Operation
	if p.Status == StatusOpen && p.EscrowAmount > 0 {
		destination := p.Issuer
		if !returnEscrow {
			destination = cfg.Treasury
		}
		ops = append(ops, escrowTransfer(cfg.Token, ctx.Self, destination, p.EscrowAmount))
	}
	p.Status = StatusCancelled
	c.saveProposal(id, p)
	return ops, nil
}

// EvaluateVotingResult closes the voting window of a proposal: scales the
// representative bloc against the snapshotted quorum, decides pass or fail
// with the supermajority and quorum rules, settles the escrow and, after a
// supermajority pass, recalibrates the quorum from the observed turnout.
func (c *Contract) EvaluateVotingResult(ctx *sdk.Context, id uint64) ([]sdk.Operation, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := c.checkIsMember(ctx, cfg); err != nil {
		return nil, err
	}
	p, err := c.loadProposal(id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusOpen {
		return nil, sdk.Fail(sdk.ErrState, ErrStatusNotOpen)
	}
	if !ctx.Now.After(p.VotingDeadline()) {
		return nil, sdk.Fail(sdk.ErrTiming, ErrOpenProposal)
	}

	// The whole representative bloc weighs a fixed share of the quorum
	// snapshotted at creation, distributed over the ballots actually cast.
	repsTotal := p.Quorum * p.Parameters.RepresentativesShare / 100
	repsCast := p.RepresentativesVotes.Total
	if repsCast == 0 {
		repsCast = 1
	}
	repsPositive := repsTotal * p.RepresentativesVotes.Positive / repsCast
	repsNegative := repsTotal * p.RepresentativesVotes.Negative / repsCast

	total := p.TokenVotes.Total + repsTotal
	positive := p.TokenVotes.Positive + repsPositive
	negative := p.TokenVotes.Negative + repsNegative

	passedSupermajority := positive > (positive+negative)*p.Parameters.Supermajority/100
	passedQuorum := total > p.Quorum

	var ops []sdk.Operation
	if p.EscrowAmount > 0 {
		destination := cfg.Treasury
		if positive > (positive+negative)*p.Parameters.EscrowReturn/100 {
			destination = p.Issuer
		}
		ops = append(ops, escrowTransfer(cfg.Token, ctx.Self, destination, p.EscrowAmount))
	}

	if passedSupermajority && passedQuorum {
		p.Status = StatusApproved
	} else {
		p.Status = StatusRejected
	}
	c.saveProposal(id, p)

	// Only supermajority passes move the quorum, so vote spam cannot
	// drag it down.
	if passedSupermajority && ctx.Now.After(cfg.LastQuorumUpdate.Add(days(cfg.Parameters.QuorumUpdatePeriod))) {
		cfg.Quorum = nextQuorum(cfg.Quorum, total, &cfg.Parameters)
		cfg.LastQuorumUpdate = ctx.Now
		c.saveConfig(cfg)
	}
	return ops, nil
}

// nextQuorum blends the old quorum with the observed turnout and clamps the
// result, first to the allowed relative change and then to the absolute
// bounds.
func nextQuorum(old, total uint64, p *GovernanceParameters) uint64 {
	quorum := (old*(100-p.QuorumUpdate) + total*p.QuorumUpdate) / 100
	ceiling := old * (100 + p.QuorumMaxChange) / 100
	floor := old * (100 - p.QuorumMaxChange) / 100
	if quorum > ceiling {
		quorum = ceiling
	}
	if quorum < floor {
		quorum = floor
	}
	if quorum < p.MinQuorum {
		quorum = p.MinQuorum
	}
	if quorum > p.MaxQuorum {
		quorum = p.MaxQuorum
	}
	return quorum
}

// ExecuteProposal runs an approved proposal once the waiting period has
// elapsed. The wait is a timelock, guardians can still cancel during it.
func (c *Contract) ExecuteProposal(ctx *sdk.Context, id uint64) ([]sdk.Operation, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := c.checkIsMember(ctx, cfg); err != nil {
		return nil, err
	}
	p, err := c.loadProposal(id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusApproved {
		return nil, sdk.Fail(sdk.ErrState, ErrStatusNotApproved)
	}
	if !ctx.Now.After(p.ExecutionGate()) {
		return nil, sdk.Fail(sdk.ErrTiming, ErrWaitingProposal)
	}

	p.Status = StatusExecuted
	c.saveProposal(id, p)

	switch p.Kind {
	case KindTransferMutez:
		payload := treasury.EncodeMutezDistributions(p.MutezTransfers)
		return []sdk.Operation{sdk.Call(cfg.Treasury, treasury.EntryTransferMutez, payload)}, nil
	case KindTransferToken:
		payload := treasury.EncodeTokenTransfer(*p.TokenTransfers)
		return []sdk.Operation{sdk.Call(cfg.Treasury, treasury.EntryTransferToken, payload)}, nil
	case KindLambda:
		return p.LambdaOps, nil
	default:
		return nil, nil
	}
}

// checkIsMember verifies the sender holds tokens or is the representatives
// registry contract.
func (c *Contract) checkIsMember(ctx *sdk.Context, cfg *Config) error {
	if ctx.Sender == cfg.Representatives {
		return nil
	}
	balance, err := c.oracle.GetBalance(cfg.Token, ctx.Sender)
	if err != nil {
		return err
	}
	if balance == 0 {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotMember)
	}
	return nil
}

// escrowTransfer builds the token operation that moves escrowed editions
// between the issuer, the DAO and the treasury.
func escrowTransfer(tokenAddr, from, to sdk.Address, amount uint64) sdk.Operation {
	payload := token.EncodeTransferBatch([]token.TransferItem{{
		From: from,
		Txs:  []token.TransferTx{{To: to, TokenID: token.TokenID, Amount: amount}},
	}})
	return sdk.Call(tokenAddr, token.EntryTransfer, payload)
}
