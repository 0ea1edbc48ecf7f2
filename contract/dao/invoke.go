package dao

import "github.com/teia-community/teia-dao/sdk"

// Entry point names understood by Invoke.
const (
	EntryCreateProposal          = "create_proposal"
	EntryTokenVote               = "token_vote"
	EntryRepresentativesVote     = "representatives_vote"
	EntryCancelProposal          = "cancel_proposal"
	EntryEvaluateVotingResult    = "evaluate_voting_result"
	EntryExecuteProposal         = "execute_proposal"
	EntrySetTreasury             = "set_treasury"
	EntrySetRepresentatives      = "set_representatives"
	EntrySetGuardians            = "set_guardians"
	EntrySetQuorum               = "set_quorum"
	EntrySetGovernanceParameters = "set_governance_parameters"
	EntryTransferAdministrator   = "transfer_administrator"
	EntryAcceptAdministrator     = "accept_administrator"
	EntrySetMetadata             = "set_metadata"
)

// Invoke dispatches an incoming call to the matching entry point.
func (c *Contract) Invoke(ctx *sdk.Context, entry string, payload []byte) ([]sdk.Operation, error) {
	switch entry {
	case EntryCreateProposal:
		req, err := DecodeCreateProposal(payload)
		if err != nil {
			return nil, err
		}
		return c.CreateProposal(ctx, req)
	case EntryTokenVote:
		id, vote, maxCheckpoints, err := DecodeTokenVote(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.TokenVote(ctx, id, vote, maxCheckpoints)
	case EntryRepresentativesVote:
		id, vote, representative, err := DecodeRepresentativesVote(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.RepresentativesVote(ctx, id, vote, representative)
	case EntryCancelProposal:
		id, returnEscrow, err := DecodeCancelProposal(payload)
		if err != nil {
			return nil, err
		}
		return c.CancelProposal(ctx, id, returnEscrow)
	case EntryEvaluateVotingResult:
		id, err := DecodeProposalID(payload)
		if err != nil {
			return nil, err
		}
		return c.EvaluateVotingResult(ctx, id)
	case EntryExecuteProposal:
		id, err := DecodeProposalID(payload)
		if err != nil {
			return nil, err
		}
		return c.ExecuteProposal(ctx, id)
	case EntrySetTreasury:
		addr, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetTreasury(ctx, addr)
	case EntrySetRepresentatives:
		addr, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetRepresentatives(ctx, addr)
	case EntrySetGuardians:
		addr, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetGuardians(ctx, addr)
	case EntrySetQuorum:
		quorum, err := DecodeQuorum(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetQuorum(ctx, quorum)
	case EntrySetGovernanceParameters:
		parameters, err := DecodeGovernanceParameters(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetGovernanceParameters(ctx, parameters)
	case EntryTransferAdministrator:
		addr, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.TransferAdministrator(ctx, addr)
	case EntryAcceptAdministrator:
		return nil, c.AcceptAdministrator(ctx)
	case EntrySetMetadata:
		key, value, err := DecodeMetadataEntry(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetMetadata(ctx, key, value)
	default:
		return nil, sdk.Fail(sdk.ErrValidation, ErrInvalidEntrypoint)
	}
}
