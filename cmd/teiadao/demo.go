package main

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/teia-community/teia-dao/contract/dao"
	"github.com/teia-community/teia-dao/contract/representatives"
	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/repo"
	"github.com/teia-community/teia-dao/sandbox"
	"github.com/teia-community/teia-dao/sdk"
	"github.com/teia-community/teia-dao/storage"
)

// well-known sandbox addresses for the demo chain
var (
	demoTokenAddr    = sdk.Address("KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV")
	demoDAOAddr      = sdk.Address("KT1QmSmQ8Mj8JHNKKQmepFqQZy7kDWQ1ek69")
	demoTreasuryAddr = sdk.Address("KT1PywCskiwzYyUyLKdb5pYaN5z7qLaDW6sW")
	demoRepsAddr     = sdk.Address("KT1J9HnWVzqGvMaiyVPejv1i3N9twmaXulSv")

	demoVoter1    = sdk.Address("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb")
	demoVoter2    = sdk.Address("tz1QK2zq6fcJcV3Ctqm2VCcLHYS2S8TWdzEP")
	demoVoter3    = sdk.Address("tz1hNVs94TTjZh6BZ1PM5HL83A7aqZvRTMmo")
	demoRecipient = sdk.Address("tz1bmyy6QX9HVf7EnBJ6avmWZJbPYGAgXhbH")
)

func demo(ctx *cli.Context) error {
	r, err := repo.Load(ctx.String("repo"))
	if err != nil {
		return err
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(r.Config.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetReportCaller(r.Config.Log.ReportCaller)

	params, err := r.Config.Governance.Parameters()
	if err != nil {
		return err
	}

	// The demo chain is throwaway, so the state database lives in memory.
	store, err := storage.Open("", log)
	if err != nil {
		return err
	}
	defer store.Close()

	clock := clockwork.NewFakeClockAt(time.Now())
	ch := sandbox.New(store, sandbox.WithClock(clock), sandbox.WithLogger(log))

	admin := sdk.Address(r.Config.Accounts.Administrator)
	reps := make([]representatives.Representative, 0, len(r.Config.Accounts.Representatives))
	for _, rep := range r.Config.Accounts.Representatives {
		reps = append(reps, representatives.Representative{
			Address:   sdk.Address(rep.Address),
			Community: rep.Community,
		})
	}

	err = sandbox.Deploy(ch, sandbox.DeployParams{
		Administrator:       admin,
		TokenAddr:           demoTokenAddr,
		DAOAddr:             demoDAOAddr,
		TreasuryAddr:        demoTreasuryAddr,
		RepresentativesAddr: demoRepsAddr,
		Guardians:           sdk.Address(r.Config.Accounts.Guardians),
		MaxSupply:           r.Config.Token.MaxSupply,
		MaxShare:            r.Config.Token.MaxShare,
		Quorum:              r.Config.Governance.Quorum,
		Parameters:          params,
		Representatives:     reps,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"token":           demoTokenAddr,
		"dao":             demoDAOAddr,
		"treasury":        demoTreasuryAddr,
		"representatives": demoRepsAddr,
	}).Info("contracts deployed")

	// Hand out voting power and let the DAO take the proposal escrow from
	// the issuer.
	quorum := r.Config.Governance.Quorum
	err = ch.Call(admin, demoTokenAddr, token.EntryMint, token.EncodeMintBatch([]token.MintItem{
		{To: demoVoter1, TokenID: token.TokenID, Amount: quorum},
		{To: demoVoter2, TokenID: token.TokenID, Amount: quorum / 2},
		{To: demoVoter3, TokenID: token.TokenID, Amount: quorum / 4},
	}), 0)
	if err != nil {
		return err
	}
	err = ch.Call(demoVoter1, demoTokenAddr, token.EntryUpdateOperators, token.EncodeOperatorUpdates([]token.OperatorUpdate{
		{Add: true, Owner: demoVoter1, Operator: demoDAOAddr, TokenID: token.TokenID},
	}), 0)
	if err != nil {
		return err
	}
	ch.Fund(demoTreasuryAddr, 2_000_000)

	payload := dao.EncodeCreateProposal(dao.ProposalRequest{
		Title:       "Demo grant",
		Description: "ipfs://QmDemoProposal",
		Kind:        dao.KindTransferMutez,
		MutezTransfers: []treasury.MutezDistribution{
			{Amount: 1_000_000, Destination: demoRecipient},
		},
	})
	if err := ch.Call(demoVoter1, demoDAOAddr, dao.EntryCreateProposal, payload, 0); err != nil {
		return err
	}
	log.WithField("issuer", demoVoter1).Info("proposal 0 created, escrow taken")

	for _, vote := range []struct {
		voter sdk.Address
		kind  dao.VoteKind
	}{
		{demoVoter1, dao.VoteYes},
		{demoVoter2, dao.VoteYes},
		{demoVoter3, dao.VoteAbstain},
	} {
		if err := ch.Call(vote.voter, demoDAOAddr, dao.EntryTokenVote, dao.EncodeTokenVote(0, vote.kind, nil), 0); err != nil {
			return err
		}
	}
	for _, rep := range reps {
		err := ch.Call(rep.Address, demoRepsAddr, representatives.EntryVoteDAOProposal, representatives.EncodeVote(0, dao.VoteYes), 0)
		if err != nil {
			return err
		}
	}
	log.Info("token and representative votes cast")

	clock.Advance(time.Duration(params.VotePeriod+1) * 24 * time.Hour)
	if err := ch.Call(demoVoter2, demoDAOAddr, dao.EntryEvaluateVotingResult, dao.EncodeProposalID(0), 0); err != nil {
		return err
	}

	views := ch.Views()
	daoContract := dao.New(ch.StateFor(demoDAOAddr), views, views)
	proposal, err := daoContract.GetProposal(0)
	if err != nil {
		return err
	}
	newQuorum, err := daoContract.GetQuorum()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"status":   proposal.Status.String(),
		"positive": proposal.TokenVotes.Positive,
		"total":    proposal.TokenVotes.Total,
		"quorum":   newQuorum,
	}).Info("voting result evaluated")

	if proposal.Status != dao.StatusApproved {
		log.Info("proposal did not pass, nothing to execute")
		return nil
	}

	clock.Advance(time.Duration(params.WaitPeriod+1) * 24 * time.Hour)
	if err := ch.Call(demoVoter2, demoDAOAddr, dao.EntryExecuteProposal, dao.EncodeProposalID(0), 0); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"recipient": demoRecipient,
		"paid":      ch.BalanceOf(demoRecipient),
		"treasury":  ch.BalanceOf(demoTreasuryAddr),
	}).Info("proposal executed, treasury paid out")

	return nil
}
