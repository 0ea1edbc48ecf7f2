package representatives

import (
	"github.com/teia-community/teia-dao/contract/dao"
	"github.com/teia-community/teia-dao/sdk"
)

// Entry point names understood by Invoke.
const (
	EntryVoteDAOProposal             = "vote_dao_proposal"
	EntryUpdateRepresentativeAddress = "update_representative_address"
	EntryAddRepresentative           = "add_representative"
	EntryRemoveRepresentative        = "remove_representative"
	EntrySetDAO                      = "set_dao"
)

// EncodeVote packs the vote_dao_proposal payload.
func EncodeVote(id uint64, vote dao.VoteKind) []byte {
	w := sdk.NewWriter()
	w.Uint64(id)
	w.Byte(byte(vote))
	return w.Bytes()
}

func DecodeVote(data []byte) (uint64, dao.VoteKind, error) {
	r := sdk.NewReader(data)
	id := r.Uint64()
	vote := dao.VoteKind(r.Byte())
	if err := r.Err(); err != nil {
		return 0, 0, err
	}
	return id, vote, nil
}

// EncodeRepresentative packs an add or remove payload.
func EncodeRepresentative(member Representative) []byte {
	w := sdk.NewWriter()
	w.Address(member.Address)
	w.String(member.Community)
	return w.Bytes()
}

func DecodeRepresentative(data []byte) (Representative, error) {
	r := sdk.NewReader(data)
	member := Representative{Address: r.Address(), Community: r.String()}
	if err := r.Err(); err != nil {
		return Representative{}, err
	}
	return member, nil
}

// EncodeAddress packs a single address payload.
func EncodeAddress(a sdk.Address) []byte {
	w := sdk.NewWriter()
	w.Address(a)
	return w.Bytes()
}

func DecodeAddress(data []byte) (sdk.Address, error) {
	r := sdk.NewReader(data)
	a := r.Address()
	if err := r.Err(); err != nil {
		return "", err
	}
	return a, nil
}

// Invoke dispatches an incoming call to the matching entry point.
func (c *Contract) Invoke(ctx *sdk.Context, entry string, payload []byte) ([]sdk.Operation, error) {
	switch entry {
	case EntryVoteDAOProposal:
		id, vote, err := DecodeVote(payload)
		if err != nil {
			return nil, err
		}
		return c.VoteDAOProposal(ctx, id, vote)
	case EntryUpdateRepresentativeAddress:
		newAddress, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.UpdateRepresentativeAddress(ctx, newAddress)
	case EntryAddRepresentative:
		member, err := DecodeRepresentative(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.AddRepresentative(ctx, member)
	case EntryRemoveRepresentative:
		member, err := DecodeRepresentative(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.RemoveRepresentative(ctx, member)
	case EntrySetDAO:
		newDAO, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetDAO(ctx, newDAO)
	default:
		return nil, sdk.Fail(sdk.ErrValidation, ErrInvalidEntrypoint)
	}
}
