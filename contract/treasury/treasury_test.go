package treasury

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/sdk"
)

var (
	daoAddr      = sdk.Address("KT1QmSmQ8Mj8JHNKKQmepFqQZy7kDWQ1ek69")
	treasuryAddr = sdk.Address("KT1PywCskiwzYyUyLKdb5pYaN5z7qLaDW6sW")
	tokenAddr    = sdk.Address("KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV")
	recipient    = sdk.Address("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb")
)

func daoCtx() *sdk.Context {
	return &sdk.Context{Sender: daoAddr, Self: treasuryAddr, Level: 10}
}

func TestTransferMutez(t *testing.T) {
	c := Originate(sdk.NewMemState(), daoAddr)

	ops, err := c.TransferMutez(daoCtx(), []MutezDistribution{
		{Amount: 100, Destination: recipient},
		{Amount: 50, Destination: daoAddr},
	})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, recipient, ops[0].Target)
	assert.Equal(t, sdk.Mutez(100), ops[0].Amount)
	assert.Equal(t, sdk.Mutez(50), ops[1].Amount)
}

func TestTransferMutezOnlyDAO(t *testing.T) {
	c := Originate(sdk.NewMemState(), daoAddr)

	_, err := c.TransferMutez(&sdk.Context{Sender: recipient, Self: treasuryAddr}, []MutezDistribution{
		{Amount: 100, Destination: recipient},
	})
	require.Error(t, err)
	assert.Equal(t, ErrNotDAO, sdk.FailCode(err))
	assert.Equal(t, sdk.ErrAuthorization, sdk.FailKind(err))
}

func TestTransferToken(t *testing.T) {
	c := Originate(sdk.NewMemState(), daoAddr)

	ops, err := c.TransferToken(daoCtx(), TokenTransfer{
		Token:   tokenAddr,
		TokenID: token.TokenID,
		Distributions: []TokenDistribution{
			{Amount: 5, Destination: recipient},
		},
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, tokenAddr, ops[0].Target)
	assert.Equal(t, token.EntryTransfer, ops[0].Entry)

	batch, err := token.DecodeTransferBatch(ops[0].Payload)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, treasuryAddr, batch[0].From)
	require.Len(t, batch[0].Txs, 1)
	assert.Equal(t, recipient, batch[0].Txs[0].To)
	assert.Equal(t, uint64(5), batch[0].Txs[0].Amount)
}

func TestSetDAO(t *testing.T) {
	c := Originate(sdk.NewMemState(), daoAddr)

	next := sdk.Address("KT1J9HnWVzqGvMaiyVPejv1i3N9twmaXulSv")
	require.NoError(t, c.SetDAO(daoCtx(), next))

	current, err := c.DAO()
	require.NoError(t, err)
	assert.Equal(t, next, current)

	// The old DAO has no power over the treasury anymore.
	err = c.SetDAO(daoCtx(), daoAddr)
	require.Error(t, err)
	assert.Equal(t, ErrNotDAO, sdk.FailCode(err))
}

func TestInvokeDispatch(t *testing.T) {
	c := Originate(sdk.NewMemState(), daoAddr)

	ops, err := c.Invoke(daoCtx(), EntryTransferMutez, EncodeMutezDistributions([]MutezDistribution{
		{Amount: 10, Destination: recipient},
	}))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	// Deposits are accepted without any payload.
	ops, err = c.Invoke(&sdk.Context{Sender: recipient, Self: treasuryAddr, Amount: 1000}, EntryDefault, nil)
	require.NoError(t, err)
	assert.Empty(t, ops)

	_, err = c.Invoke(daoCtx(), "does_not_exist", nil)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidEntrypoint, sdk.FailCode(err))
}
