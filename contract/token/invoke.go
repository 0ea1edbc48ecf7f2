package token

import "github.com/teia-community/teia-dao/sdk"

// Entry point names understood by Invoke.
const (
	EntryMint                    = "mint"
	EntryTransfer                = "transfer"
	EntryUpdateOperators         = "update_operators"
	EntryAddMaxShareException    = "add_max_share_exception"
	EntryRemoveMaxShareException = "remove_max_share_exception"
	EntryTransferAdministrator   = "transfer_administrator"
	EntryAcceptAdministrator     = "accept_administrator"
	EntrySetMetadata             = "set_metadata"
)

// Invoke dispatches an incoming call to the matching entry point. Token entry
// points never emit follow-up operations.
func (c *Contract) Invoke(ctx *sdk.Context, entry string, payload []byte) ([]sdk.Operation, error) {
	switch entry {
	case EntryMint:
		mints, err := DecodeMintBatch(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.Mint(ctx, mints)
	case EntryTransfer:
		batch, err := DecodeTransferBatch(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.Transfer(ctx, batch)
	case EntryUpdateOperators:
		updates, err := DecodeOperatorUpdates(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.UpdateOperators(ctx, updates)
	case EntryAddMaxShareException:
		owner, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.AddMaxShareException(ctx, owner)
	case EntryRemoveMaxShareException:
		owner, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.RemoveMaxShareException(ctx, owner)
	case EntryTransferAdministrator:
		proposed, err := DecodeAddress(payload)
		if err != nil {
			return nil, err
		}
		return nil, c.TransferAdministrator(ctx, proposed)
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
