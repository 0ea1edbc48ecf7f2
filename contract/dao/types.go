package dao

import (
	"time"

	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/sdk"
)

// Error codes returned by the governance contract.
const (
	ErrNotMember           = "DAO_NOT_MEMBER"
	ErrInexistentProposal  = "DAO_INEXISTENT_PROPOSAL"
	ErrClosedProposal      = "DAO_CLOSED_PROPOSAL"
	ErrAlreadyVoted        = "DAO_ALREADY_VOTED"
	ErrZeroBalance         = "DAO_ZERO_BALANCE"
	ErrInsufficientBalance = "DAO_INSUFFICIENT_BALANCE"
	ErrNotRepresentatives  = "DAO_NOT_REPRESENTATIVES"
	ErrStatusNotOpen       = "DAO_STATUS_NOT_OPEN"
	ErrOpenProposal        = "DAO_OPEN_PROPOSAL"
	ErrStatusNotApproved   = "DAO_STATUS_NOT_APPROVED"
	ErrWaitingProposal     = "DAO_WAITING_PROPOSAL"
	ErrNotIssuerOrGuardian = "DAO_NOT_ISSUER_OR_GUARDIANS"
	ErrNotDAOOrAdmin       = "DAO_NOT_DAO_OR_ADMIN"
	ErrNoNewAdmin          = "DAO_NO_NEW_ADMIN"
	ErrNotProposedAdmin    = "DAO_NOT_PROPOSED_ADMIN"
	ErrWrongParameters     = "DAO_WRONG_PARAMETERS"
	ErrInexistentVote      = "DAO_INEXISTENT_VOTE"
	ErrInvalidEntrypoint   = "DAO_INVALID_ENTRYPOINT"
)

// VoteKind is a single ballot option.
type VoteKind byte

const (
	VoteYes VoteKind = iota
	VoteNo
	VoteAbstain
)

// VoteMethod selects how token balances translate into vote weight.
type VoteMethod byte

const (
	VoteMethodLinear VoteMethod = iota
	VoteMethodQuadratic
)

// ProposalKind tags the proposal payload union.
type ProposalKind byte

const (
	KindText ProposalKind = iota
	KindTransferMutez
	KindTransferToken
	KindLambda
)

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus byte

const (
	StatusOpen ProposalStatus = iota
	StatusCancelled
	StatusApproved
	StatusExecuted
	StatusRejected
)

func (s ProposalStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusCancelled:
		return "cancelled"
	case StatusApproved:
		return "approved"
	case StatusExecuted:
		return "executed"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// VotesSummary accumulates one tally path of a proposal. All fields except
// Participation carry vote weight, Participation counts voters.
type VotesSummary struct {
	Positive      uint64
	Negative      uint64
	Abstain       uint64
	Total         uint64
	Participation uint64
}

func (s *VotesSummary) add(vote VoteKind, weight uint64) {
	switch vote {
	case VoteYes:
		s.Positive += weight
	case VoteNo:
		s.Negative += weight
	case VoteAbstain:
		s.Abstain += weight
	}
	s.Total += weight
	s.Participation++
}

// GovernanceParameters is the versioned parameter record. Periods are
// expressed in days, thresholds and rates in integer percent.
type GovernanceParameters struct {
	VoteMethod           VoteMethod
	VotePeriod           uint64
	WaitPeriod           uint64
	EscrowAmount         uint64
	EscrowReturn         uint64
	MinAmount            uint64
	Supermajority        uint64
	RepresentativesShare uint64
	QuorumUpdatePeriod   uint64
	QuorumUpdate         uint64
	QuorumMaxChange      uint64
	MinQuorum            uint64
	MaxQuorum            uint64
}

// Validate rejects parameter records that could never govern anything.
func (p *GovernanceParameters) Validate() error {
	switch {
	case p.VoteMethod != VoteMethodLinear && p.VoteMethod != VoteMethodQuadratic:
	case p.VotePeriod == 0:
	case p.EscrowReturn > 100:
	case p.Supermajority == 0 || p.Supermajority > 100:
	case p.RepresentativesShare > 100:
	case p.QuorumUpdate > 100:
	case p.QuorumMaxChange > 100:
	case p.MinQuorum == 0 || p.MinQuorum > p.MaxQuorum:
	default:
		return nil
	}
	return sdk.Fail(sdk.ErrValidation, ErrWrongParameters)
}

// Proposal is one governance proposal. Only Status and the two vote
// summaries mutate after creation.
type Proposal struct {
	Title       string
	Description string
	Kind        ProposalKind

	// Payload fields, one of which is set depending on Kind.
	MutezTransfers []treasury.MutezDistribution
	TokenTransfers *treasury.TokenTransfer
	LambdaOps      []sdk.Operation

	Issuer    sdk.Address
	Timestamp time.Time
	Level     uint64

	// Snapshots taken at creation time so later parameter changes never
	// touch in-flight proposals.
	Quorum       uint64
	EscrowAmount uint64
	Parameters   GovernanceParameters

	Status               ProposalStatus
	TokenVotes           VotesSummary
	RepresentativesVotes VotesSummary
}

// VotingDeadline is the end of the proposal's voting window.
func (p *Proposal) VotingDeadline() time.Time {
	return p.Timestamp.Add(days(p.Parameters.VotePeriod))
}

// ExecutionGate is the earliest time the proposal can be executed.
func (p *Proposal) ExecutionGate() time.Time {
	return p.Timestamp.Add(days(p.Parameters.VotePeriod + p.Parameters.WaitPeriod))
}

func days(n uint64) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// TokenVoteRecord is a token holder's ballot, weight frozen at vote time.
type TokenVoteRecord struct {
	Vote   VoteKind
	Weight uint64
}

// RepresentativeVoteRecord is a community's ballot together with the wallet
// that cast it.
type RepresentativeVoteRecord struct {
	Vote           VoteKind
	Representative sdk.Address
}

// Config is the contract-level storage record.
type Config struct {
	Administrator         sdk.Address
	ProposedAdministrator sdk.Address
	Treasury              sdk.Address
	Token                 sdk.Address
	Representatives       sdk.Address
	Guardians             sdk.Address
	Quorum                uint64
	LastQuorumUpdate      time.Time
	Parameters            GovernanceParameters
	Counter               uint64
}
