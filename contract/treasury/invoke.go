package treasury

import "github.com/teia-community/teia-dao/sdk"

// Entry point names understood by Invoke.
const (
	EntryTransferMutez = "transfer_mutez"
	EntryTransferToken = "transfer_token"
	EntrySetDAO        = "set_dao"
	EntrySetMetadata   = "set_metadata"
	// EntryDefault accepts plain mutez deposits.
	EntryDefault = "default"
)

// Invoke dispatches an incoming call to the matching entry point.
func (c *Contract) Invoke(ctx *sdk.Context, entry string, payload []byte) ([]sdk.Operation, error) {
	switch entry {
	case EntryTransferMutez:
		distributions, err := DecodeMutezDistributions(payload)
		if err != nil {
			return nil, err
		}
		return c.TransferMutez(ctx, distributions)
	case EntryTransferToken:
		transfer, err := DecodeTokenTransfer(payload)
		if err != nil {
			return nil, err
		}
		return c.TransferToken(ctx, transfer)
	case EntrySetDAO:
		dao, err := DecodeDAOAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetDAO(ctx, dao)
	case EntrySetMetadata:
		key, value, err := DecodeMetadataEntry(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SetMetadata(ctx, key, value)
	case EntryDefault:
		// Deposits need no bookkeeping, the host tracks contract balances.
		return nil, nil
	default:
		return nil, sdk.Fail(sdk.ErrValidation, ErrInvalidEntrypoint)
	}
}
