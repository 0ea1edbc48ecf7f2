package dao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/sdk"
)

var (
	adminAddr    = sdk.Address("tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb")
	user1        = sdk.Address("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb")
	user2        = sdk.Address("tz1QK2zq6fcJcV3Ctqm2VCcLHYS2S8TWdzEP")
	user3        = sdk.Address("tz1hNVs94TTjZh6BZ1PM5HL83A7aqZvRTMmo")
	outsider     = sdk.Address("tz1bmyy6QX9HVf7EnBJ6avmWZJbPYGAgXhbH")
	rep1         = sdk.Address("tz1fzLQzbZybPNppzdbYjFAJVLFzfKTE9NvF")
	rep2         = sdk.Address("tz1g6qHFMQVmPHEbBFk9zpHVEMTRn89CUGq2")
	daoAddr      = sdk.Address("KT1QmSmQ8Mj8JHNKKQmepFqQZy7kDWQ1ek69")
	tokenAddr    = sdk.Address("KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV")
	treasuryAddr = sdk.Address("KT1PywCskiwzYyUyLKdb5pYaN5z7qLaDW6sW")
	repsAddr     = sdk.Address("KT1J9HnWVzqGvMaiyVPejv1i3N9twmaXulSv")
	guardians    = sdk.Address("KT1XprVSbSAFk873Bf6AVTvyDbo6RpyF8A6d")
)

var genesis = time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

type fakeOracle struct {
	current map[sdk.Address]uint64
	prior   map[sdk.Address]uint64
}

func (f *fakeOracle) GetBalance(_, owner sdk.Address) (uint64, error) {
	return f.current[owner], nil
}

func (f *fakeOracle) GetPriorBalance(ctx *sdk.Context, _, owner sdk.Address, level uint64, _ *uint64) (uint64, error) {
	if level >= ctx.Level {
		return 0, sdk.Fail(sdk.ErrTiming, token.ErrWrongLevel)
	}
	return f.prior[owner], nil
}

type fakeDirectory struct {
	communities map[sdk.Address]string
}

func (f *fakeDirectory) GetRepresentativeCommunity(_, member sdk.Address) (string, error) {
	community, ok := f.communities[member]
	if !ok {
		return "", sdk.Fail(sdk.ErrNotFound, "REPS_NOT_REPRESENTATIVE")
	}
	return community, nil
}

func testParameters() GovernanceParameters {
	return GovernanceParameters{
		VoteMethod:           VoteMethodLinear,
		VotePeriod:           5,
		WaitPeriod:           2,
		EscrowAmount:         10,
		EscrowReturn:         40,
		MinAmount:            1,
		Supermajority:        60,
		RepresentativesShare: 30,
		QuorumUpdatePeriod:   3,
		QuorumUpdate:         20,
		QuorumMaxChange:      20,
		MinQuorum:            100,
		MaxQuorum:            1300,
	}
}

type fixture struct {
	dao       *Contract
	oracle    *fakeOracle
	directory *fakeDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	oracle := &fakeOracle{
		// The escrow has already left the issuer's balance by the time
		// checkpoints are queried, hence 290 for user1.
		current: map[sdk.Address]uint64{user1: 290, user2: 400, user3: 5},
		prior:   map[sdk.Address]uint64{user1: 290, user2: 400, user3: 5},
	}
	directory := &fakeDirectory{communities: map[sdk.Address]string{
		rep1: "UK",
		rep2: "Brazil",
	}}
	dao, err := Originate(sdk.NewMemState(), oracle, directory,
		adminAddr, treasuryAddr, tokenAddr, repsAddr, guardians,
		800, testParameters(), genesis)
	require.NoError(t, err)
	return &fixture{dao: dao, oracle: oracle, directory: directory}
}

func at(sender sdk.Address, level uint64, elapsed time.Duration) *sdk.Context {
	return &sdk.Context{Sender: sender, Self: daoAddr, Level: level, Now: genesis.Add(elapsed)}
}

func (f *fixture) createText(t *testing.T, issuer sdk.Address) uint64 {
	t.Helper()
	ops, err := f.dao.CreateProposal(at(issuer, 10, 0), ProposalRequest{
		Title:       "A text proposal",
		Description: "ipfs://QmText",
		Kind:        KindText,
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	count, err := f.dao.GetProposalCount()
	require.NoError(t, err)
	return count - 1
}

func day(n uint64) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func TestCreateProposal(t *testing.T) {
	f := newFixture(t)

	ops, err := f.dao.CreateProposal(at(user1, 10, 0), ProposalRequest{
		Title:       "Fund artists",
		Description: "ipfs://QmFund",
		Kind:        KindTransferMutez,
		MutezTransfers: []treasury.MutezDistribution{
			{Amount: 1000, Destination: user2},
		},
	})
	require.NoError(t, err)

	// The escrow is pulled from the issuer into the DAO's custody.
	require.Len(t, ops, 1)
	assert.Equal(t, tokenAddr, ops[0].Target)
	assert.Equal(t, token.EntryTransfer, ops[0].Entry)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, user1, batch[0].From)
	assert.Equal(t, daoAddr, batch[0].Txs[0].To)
	assert.Equal(t, uint64(10), batch[0].Txs[0].Amount)

	p, err := f.dao.GetProposal(0)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, p.Status)
	assert.Equal(t, user1, p.Issuer)
	assert.Equal(t, uint64(800), p.Quorum)
	assert.Equal(t, uint64(10), p.EscrowAmount)
	assert.Equal(t, uint64(10), p.Level)
}

func TestCreateProposalNotMember(t *testing.T) {
	f := newFixture(t)

	_, err := f.dao.CreateProposal(at(outsider, 10, 0), ProposalRequest{
		Title: "nope", Kind: KindText,
	})
	require.Error(t, err)
	assert.Equal(t, ErrNotMember, sdk.FailCode(err))
}

func TestCreateProposalPayloadMismatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.dao.CreateProposal(at(user1, 10, 0), ProposalRequest{
		Title: "text with a payload",
		Kind:  KindText,
		MutezTransfers: []treasury.MutezDistribution{
			{Amount: 1, Destination: user2},
		},
	})
	require.Error(t, err)
	assert.Equal(t, ErrWrongParameters, sdk.FailCode(err))
}

func TestTokenVote(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))

	record, err := f.dao.GetVote(id, user2)
	require.NoError(t, err)
	assert.Equal(t, VoteYes, record.Vote)
	assert.Equal(t, uint64(400), record.Weight)
	assert.True(t, f.dao.HasVoted(id, user2))

	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), p.TokenVotes.Positive)
	assert.Equal(t, uint64(400), p.TokenVotes.Total)
	assert.Equal(t, uint64(1), p.TokenVotes.Participation)

	// The issuer's escrowed tokens still count toward their own proposal.
	require.NoError(t, f.dao.TokenVote(at(user1, 11, day(1)), id, VoteYes, nil))
	record, err = f.dao.GetVote(id, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), record.Weight)
}

func TestTokenVoteGuards(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	// No second vote from the same wallet.
	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	err := f.dao.TokenVote(at(user2, 12, day(1)), id, VoteNo, nil)
	require.Error(t, err)
	assert.Equal(t, ErrAlreadyVoted, sdk.FailCode(err))

	// No votes without a balance at the proposal level.
	err = f.dao.TokenVote(at(outsider, 11, day(1)), id, VoteYes, nil)
	require.Error(t, err)
	assert.Equal(t, ErrZeroBalance, sdk.FailCode(err))

	// No votes after the window closes.
	err = f.dao.TokenVote(at(user3, 20, day(5)), id, VoteYes, nil)
	require.Error(t, err)
	assert.Equal(t, ErrClosedProposal, sdk.FailCode(err))
	assert.Equal(t, sdk.ErrTiming, sdk.FailKind(err))

	// Unknown proposals fail cleanly.
	err = f.dao.TokenVote(at(user3, 11, day(1)), 99, VoteYes, nil)
	require.Error(t, err)
	assert.Equal(t, ErrInexistentProposal, sdk.FailCode(err))
}

func TestTokenVoteMinimumAmount(t *testing.T) {
	f := newFixture(t)
	params := testParameters()
	params.MinAmount = 100
	require.NoError(t, f.dao.SetGovernanceParameters(at(adminAddr, 9, 0), params))

	id := f.createText(t, user1)
	err := f.dao.TokenVote(at(user3, 11, day(1)), id, VoteYes, nil)
	require.Error(t, err)
	assert.Equal(t, ErrInsufficientBalance, sdk.FailCode(err))
}

func TestTokenVoteQuadratic(t *testing.T) {
	f := newFixture(t)
	params := testParameters()
	params.VoteMethod = VoteMethodQuadratic
	require.NoError(t, f.dao.SetGovernanceParameters(at(adminAddr, 9, 0), params))

	f.oracle.prior[user2] = 1000000
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	record, err := f.dao.GetVote(id, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), record.Weight)
}

func TestRepresentativesVote(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	// Only the registry contract may forward ballots.
	err := f.dao.RepresentativesVote(at(rep1, 11, day(1)), id, VoteYes, rep1)
	require.Error(t, err)
	assert.Equal(t, ErrNotRepresentatives, sdk.FailCode(err))

	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 11, day(1)), id, VoteYes, rep1))
	record, err := f.dao.GetRepresentativeVote(id, "UK")
	require.NoError(t, err)
	assert.Equal(t, VoteYes, record.Vote)
	assert.Equal(t, rep1, record.Representative)

	// The community, not the wallet, is the dedup key.
	f.directory.communities[user3] = "UK"
	err = f.dao.RepresentativesVote(at(repsAddr, 12, day(1)), id, VoteNo, user3)
	require.Error(t, err)
	assert.Equal(t, ErrAlreadyVoted, sdk.FailCode(err))

	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(1)), id, VoteAbstain, rep2))
	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.RepresentativesVotes.Positive)
	assert.Equal(t, uint64(1), p.RepresentativesVotes.Abstain)
	assert.Equal(t, uint64(2), p.RepresentativesVotes.Total)
}

func TestEvaluateApproved(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user1, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.TokenVote(at(user3, 11, day(1)), id, VoteNo, nil))
	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(2)), id, VoteYes, rep1))
	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(2)), id, VoteAbstain, rep2))

	// Too early, the voting window is still open.
	_, err := f.dao.EvaluateVotingResult(at(user2, 15, day(4)), id)
	require.Error(t, err)
	assert.Equal(t, ErrOpenProposal, sdk.FailCode(err))

	ops, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)

	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, p.Status)

	// Positive share is well above the escrow return threshold, so the
	// escrow goes back to the issuer.
	require.Len(t, ops, 1)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, daoAddr, batch[0].From)
	assert.Equal(t, user1, batch[0].Txs[0].To)
	assert.Equal(t, uint64(10), batch[0].Txs[0].Amount)

	// Token total 705 plus the representative bloc 800*30/100 = 945;
	// blended quorum (800*80 + 945*20) / 100 = 829.
	quorum, err := f.dao.GetQuorum()
	require.NoError(t, err)
	assert.Equal(t, uint64(829), quorum)
}

func TestEvaluateRejectedOnQuorum(t *testing.T) {
	f := newFixture(t)
	f.oracle.prior[user1] = 90
	f.oracle.prior[user2] = 200
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user1, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.TokenVote(at(user3, 11, day(1)), id, VoteNo, nil))
	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(2)), id, VoteAbstain, rep1))
	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(2)), id, VoteYes, rep2))

	ops, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)

	// Total 305 + 240 = 545 misses the quorum of 800.
	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, p.Status)

	// The supermajority still passed, so the escrow returns to the
	// issuer and the quorum recalibrates to (800*80 + 545*20)/100.
	require.Len(t, ops, 1)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, user1, batch[0].Txs[0].To)

	quorum, err := f.dao.GetQuorum()
	require.NoError(t, err)
	assert.Equal(t, uint64(749), quorum)
}

func TestEvaluateForfeitsEscrow(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteNo, nil))

	ops, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)

	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, p.Status)

	// All negative votes, the escrow is forfeited to the treasury.
	require.Len(t, ops, 1)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, treasuryAddr, batch[0].Txs[0].To)

	// Rejections without a supermajority never move the quorum.
	quorum, err := f.dao.GetQuorum()
	require.NoError(t, err)
	assert.Equal(t, uint64(800), quorum)
}

func TestEvaluateNoRepresentativeBallots(t *testing.T) {
	f := newFixture(t)
	f.oracle.prior[user2] = 1200
	id := f.createText(t, user1)

	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))

	_, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)

	// The untouched bloc still counts toward the total: 1200 + 240.
	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, p.Status)
}

func TestQuorumUpdateCadenceAndClamp(t *testing.T) {
	f := newFixture(t)
	f.oracle.prior[user2] = 1200

	// First pass moves the quorum and stamps the update time.
	id := f.createText(t, user1)
	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	_, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)
	quorum, err := f.dao.GetQuorum()
	require.NoError(t, err)
	// Blend (800*80 + 1440*20)/100 = 928 stays within the 20% change cap.
	assert.Equal(t, uint64(928), quorum)

	// A second pass compounds from the stamped update time. The new
	// proposal snapshots the 928 quorum, so its bloc is 928*30/100 = 278
	// and the blend is (928*80 + 1478*20)/100 = 1038.
	ops, err := f.dao.CreateProposal(at(user1, 30, day(6)), ProposalRequest{Title: "again", Kind: KindText})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.NoError(t, f.dao.TokenVote(at(user2, 31, day(7)), 1, VoteYes, nil))
	_, err = f.dao.EvaluateVotingResult(at(user2, 40, day(12)), 1)
	require.NoError(t, err)
	quorum, err = f.dao.GetQuorum()
	require.NoError(t, err)
	assert.Equal(t, uint64(1038), quorum)
}

func TestQuorumMaxChangeClamp(t *testing.T) {
	params := testParameters()
	assert.Equal(t, uint64(960), nextQuorum(800, 5000, &params))
	assert.Equal(t, uint64(640), nextQuorum(800, 0, &params))
	// Absolute bounds win over the relative clamp.
	assert.Equal(t, uint64(1300), nextQuorum(1290, 100000, &params))
	assert.Equal(t, uint64(100), nextQuorum(110, 0, &params))
}

func TestCancelProposal(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	// Strangers cannot cancel.
	_, err := f.dao.CancelProposal(at(user2, 11, day(1)), id, true)
	require.Error(t, err)
	assert.Equal(t, ErrNotIssuerOrGuardian, sdk.FailCode(err))

	// The issuer cancels and asks for the escrow back.
	ops, err := f.dao.CancelProposal(at(user1, 11, day(1)), id, true)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, daoAddr, batch[0].From)
	assert.Equal(t, user1, batch[0].Txs[0].To)

	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, p.Status)

	// Cancelled is terminal.
	_, err = f.dao.CancelProposal(at(user1, 12, day(1)), id, true)
	require.Error(t, err)
	assert.Equal(t, ErrStatusNotOpen, sdk.FailCode(err))
	err = f.dao.TokenVote(at(user2, 12, day(1)), id, VoteYes, nil)
	require.Error(t, err)
	assert.Equal(t, ErrStatusNotOpen, sdk.FailCode(err))
}

func TestCancelForfeitsEscrow(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	ops, err := f.dao.CancelProposal(at(guardians, 11, day(1)), id, false)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, treasuryAddr, batch[0].Txs[0].To)
}

func (f *fixture) approve(t *testing.T, id uint64) {
	t.Helper()
	require.NoError(t, f.dao.TokenVote(at(user1, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(1)), id, VoteYes, nil))
	require.NoError(t, f.dao.RepresentativesVote(at(repsAddr, 12, day(2)), id, VoteYes, rep1))
	_, err := f.dao.EvaluateVotingResult(at(user2, 20, day(6)), id)
	require.NoError(t, err)
	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, p.Status)
}

func TestGuardianCancelApproved(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)
	f.approve(t, id)

	// The issuer cannot cancel anymore.
	_, err := f.dao.CancelProposal(at(user1, 21, day(6)), id, true)
	require.Error(t, err)
	assert.Equal(t, ErrNotIssuerOrGuardian, sdk.FailCode(err))

	// Guardians can, and evaluation already settled the escrow so no
	// token operation is emitted a second time.
	ops, err := f.dao.CancelProposal(at(guardians, 21, day(6)), id, true)
	require.NoError(t, err)
	assert.Empty(t, ops)

	p, err := f.dao.GetProposal(id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, p.Status)

	// Cancelled proposals can never be executed.
	_, err = f.dao.ExecuteProposal(at(user2, 30, day(10)), id)
	require.Error(t, err)
	assert.Equal(t, ErrStatusNotApproved, sdk.FailCode(err))
}

func TestExecuteProposal(t *testing.T) {
	f := newFixture(t)
	ops, err := f.dao.CreateProposal(at(user1, 10, 0), ProposalRequest{
		Title: "Pay the server bill",
		Kind:  KindTransferMutez,
		MutezTransfers: []treasury.MutezDistribution{
			{Amount: 5000, Destination: user3},
		},
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	f.approve(t, 0)

	// The timelock holds until vote period plus wait period have passed.
	_, err = f.dao.ExecuteProposal(at(user2, 21, day(6)), 0)
	require.Error(t, err)
	assert.Equal(t, ErrWaitingProposal, sdk.FailCode(err))
	assert.Equal(t, sdk.ErrTiming, sdk.FailKind(err))

	ops, err = f.dao.ExecuteProposal(at(user2, 30, day(8)), 0)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, treasuryAddr, ops[0].Target)
	assert.Equal(t, treasury.EntryTransferMutez, ops[0].Entry)

	p, err := f.dao.GetProposal(0)
	require.NoError(t, err)
	assert.Equal(t, StatusExecuted, p.Status)

	// Executed is terminal.
	_, err = f.dao.ExecuteProposal(at(user2, 31, day(9)), 0)
	require.Error(t, err)
	assert.Equal(t, ErrStatusNotApproved, sdk.FailCode(err))
}

func TestExecuteLambdaProposal(t *testing.T) {
	f := newFixture(t)

	// A self-amendment: the DAO lowers its own quorum through a lambda
	// proposal targeting its own entry point.
	ops, err := f.dao.CreateProposal(at(user1, 10, 0), ProposalRequest{
		Title: "Lower the quorum",
		Kind:  KindLambda,
		LambdaOps: []sdk.Operation{
			sdk.Call(daoAddr, EntrySetQuorum, EncodeQuorum(500)),
		},
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	f.approve(t, 0)

	ops, err = f.dao.ExecuteProposal(at(user2, 30, day(8)), 0)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, daoAddr, ops[0].Target)
	assert.Equal(t, EntrySetQuorum, ops[0].Entry)

	// Dispatching the scheduled operation back into the DAO applies the
	// change, the sender now being the DAO itself.
	_, err = f.dao.Invoke(at(daoAddr, 31, day(8)), ops[0].Entry, ops[0].Payload)
	require.NoError(t, err)
	quorum, err := f.dao.GetQuorum()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), quorum)
}

func TestSetEntriesAuthorization(t *testing.T) {
	f := newFixture(t)

	err := f.dao.SetTreasury(at(user1, 10, 0), user1)
	require.Error(t, err)
	assert.Equal(t, ErrNotDAOOrAdmin, sdk.FailCode(err))

	require.NoError(t, f.dao.SetGuardians(at(adminAddr, 10, 0), user3))

	err = f.dao.SetQuorum(at(adminAddr, 10, 0), 99)
	require.Error(t, err)
	assert.Equal(t, ErrWrongParameters, sdk.FailCode(err))

	params := testParameters()
	params.Supermajority = 101
	err = f.dao.SetGovernanceParameters(at(adminAddr, 10, 0), params)
	require.Error(t, err)
	assert.Equal(t, ErrWrongParameters, sdk.FailCode(err))
}

func TestParameterSnapshotIsolation(t *testing.T) {
	f := newFixture(t)
	id := f.createText(t, user1)

	// Shorten the voting period after creation, the open proposal keeps
	// its five day window.
	params := testParameters()
	params.VotePeriod = 1
	require.NoError(t, f.dao.SetGovernanceParameters(at(adminAddr, 10, 0), params))

	require.NoError(t, f.dao.TokenVote(at(user2, 11, day(4)), id, VoteYes, nil))
}

func TestAdministratorHandover(t *testing.T) {
	f := newFixture(t)

	err := f.dao.AcceptAdministrator(at(user1, 10, 0))
	require.Error(t, err)
	assert.Equal(t, ErrNoNewAdmin, sdk.FailCode(err))

	require.NoError(t, f.dao.TransferAdministrator(at(adminAddr, 10, 0), user1))
	err = f.dao.AcceptAdministrator(at(user2, 10, 0))
	require.Error(t, err)
	assert.Equal(t, ErrNotProposedAdmin, sdk.FailCode(err))

	require.NoError(t, f.dao.AcceptAdministrator(at(user1, 10, 0)))
	current, err := f.dao.Administrator()
	require.NoError(t, err)
	assert.Equal(t, user1, current)
}

func TestProposalRoundtrip(t *testing.T) {
	f := newFixture(t)

	transfer := &treasury.TokenTransfer{
		Token:   tokenAddr,
		TokenID: token.TokenID,
		Distributions: []treasury.TokenDistribution{
			{Amount: 7, Destination: user2},
			{Amount: 3, Destination: user3},
		},
	}
	_, err := f.dao.CreateProposal(at(user1, 10, 0), ProposalRequest{
		Title:          "Token grant",
		Description:    "ipfs://QmGrant",
		Kind:           KindTransferToken,
		TokenTransfers: transfer,
	})
	require.NoError(t, err)

	p, err := f.dao.GetProposal(0)
	require.NoError(t, err)
	assert.Equal(t, "Token grant", p.Title)
	require.NotNil(t, p.TokenTransfers)
	assert.Equal(t, transfer.Distributions, p.TokenTransfers.Distributions)
	assert.Equal(t, testParameters(), p.Parameters)
}

func TestInvokeDispatch(t *testing.T) {
	f := newFixture(t)

	ops, err := f.dao.Invoke(at(user1, 10, 0), EntryCreateProposal, EncodeCreateProposal(ProposalRequest{
		Title: "via invoke", Kind: KindText,
	}))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	_, err = f.dao.Invoke(at(user2, 11, day(1)), EntryTokenVote, EncodeTokenVote(0, VoteYes, nil))
	require.NoError(t, err)
	assert.True(t, f.dao.HasVoted(0, user2))

	_, err = f.dao.Invoke(at(user1, 11, day(1)), "does_not_exist", nil)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidEntrypoint, sdk.FailCode(err))
}
