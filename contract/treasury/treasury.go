// Package treasury holds the community funds and releases them only on
// behalf of the DAO governance contract.
package treasury

import (
	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/sdk"
)

const (
	ErrNotDAO            = "TREASURY_NOT_DAO"
	ErrInvalidEntrypoint = "TREASURY_INVALID_ENTRYPOINT"
)

const (
	kConfig   byte = 0x01
	kMetadata byte = 0x02
)

// MutezDistribution sends Amount mutez to Destination.
type MutezDistribution struct {
	Amount      sdk.Mutez
	Destination sdk.Address
}

// TokenDistribution sends Amount token editions to Destination.
type TokenDistribution struct {
	Amount      uint64
	Destination sdk.Address
}

// TokenTransfer describes a token payout from the treasury.
type TokenTransfer struct {
	Token         sdk.Address
	TokenID       uint64
	Distributions []TokenDistribution
}

// Contract is the DAO treasury.
type Contract struct {
	state sdk.State
}

func New(state sdk.State) *Contract {
	return &Contract{state: state}
}

// Originate writes the initial DAO address and returns the contract.
func Originate(state sdk.State, dao sdk.Address) *Contract {
	c := &Contract{state: state}
	c.saveDAO(dao)
	return c
}

// TransferMutez pays out mutez to a list of destinations. Only the DAO can
// call it.
func (c *Contract) TransferMutez(ctx *sdk.Context, distributions []MutezDistribution) ([]sdk.Operation, error) {
	if err := c.requireDAO(ctx); err != nil {
		return nil, err
	}
	ops := make([]sdk.Operation, 0, len(distributions))
	for _, d := range distributions {
		ops = append(ops, sdk.Send(d.Destination, d.Amount))
	}
	return ops, nil
}

// TransferToken pays out token editions held by the treasury. Only the DAO
// can call it.
func (c *Contract) TransferToken(ctx *sdk.Context, transfer TokenTransfer) ([]sdk.Operation, error) {
	if err := c.requireDAO(ctx); err != nil {
		return nil, err
	}
	txs := make([]token.TransferTx, 0, len(transfer.Distributions))
	for _, d := range transfer.Distributions {
		txs = append(txs, token.TransferTx{
			To:      d.Destination,
			TokenID: transfer.TokenID,
			Amount:  d.Amount,
		})
	}
	payload := token.EncodeTransferBatch([]token.TransferItem{{From: ctx.Self, Txs: txs}})
	return []sdk.Operation{sdk.Call(transfer.Token, token.EntryTransfer, payload)}, nil
}

// SetDAO points the treasury at a new DAO contract. Only the current DAO can
// call it.
func (c *Contract) SetDAO(ctx *sdk.Context, dao sdk.Address) error {
	if err := c.requireDAO(ctx); err != nil {
		return err
	}
	c.saveDAO(dao)
	return nil
}

// SetMetadata writes one contract metadata entry. Only the DAO can call it.
func (c *Contract) SetMetadata(ctx *sdk.Context, key, value string) error {
	if err := c.requireDAO(ctx); err != nil {
		return err
	}
	buf := make([]byte, 0, 1+len(key))
	buf = append(buf, kMetadata)
	c.state.Set(string(append(buf, key...)), value)
	return nil
}

// DAO returns the governance contract the treasury obeys.
func (c *Contract) DAO() (sdk.Address, error) {
	raw := c.state.Get(string([]byte{kConfig}))
	if raw == nil {
		return "", sdk.Fail(sdk.ErrState, ErrNotDAO)
	}
	r := sdk.NewReader([]byte(*raw))
	dao := r.Address()
	if err := r.Err(); err != nil {
		return "", err
	}
	return dao, nil
}

func (c *Contract) requireDAO(ctx *sdk.Context) error {
	dao, err := c.DAO()
	if err != nil {
		return err
	}
	if ctx.Sender != dao {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotDAO)
	}
	return nil
}

func (c *Contract) saveDAO(dao sdk.Address) {
	w := sdk.NewWriter()
	w.Address(dao)
	c.state.Set(string([]byte{kConfig}), string(w.Bytes()))
}
