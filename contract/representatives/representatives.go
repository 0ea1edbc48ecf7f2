// Package representatives keeps the registry of community representatives
// and forwards their ballots to the DAO governance contract.
package representatives

import (
	"github.com/teia-community/teia-dao/contract/dao"
	"github.com/teia-community/teia-dao/sdk"
)

const (
	ErrNotRepresentative  = "REPS_NOT_REPRESENTATIVE"
	ErrNotDAO             = "REPS_NOT_DAO"
	ErrAddressExists      = "REPS_ADDRESS_EXISTS"
	ErrCommunityExists    = "REPS_COMMUNITY_EXISTS"
	ErrWrongAddress       = "REPS_WRONG_ADDRESS"
	ErrWrongCommunity     = "REPS_WRONG_COMMUNITY"
	ErrLastRepresentative = "REPS_LAST_REPRESENTATIVE"
	ErrInvalidEntrypoint  = "REPS_INVALID_ENTRYPOINT"
)

const (
	kConfig byte = 0x01
	// kRepresentative maps a wallet to its community.
	kRepresentative byte = 0x02
	// kCommunity maps a community back to its wallet so each community has
	// exactly one representative.
	kCommunity byte = 0x03
)

// Representative pairs a wallet with the community it represents.
type Representative struct {
	Address   sdk.Address
	Community string
}

// Contract is the representatives registry.
type Contract struct {
	state sdk.State
}

func New(state sdk.State) *Contract {
	return &Contract{state: state}
}

// Originate writes the DAO address and the initial representative set.
func Originate(state sdk.State, daoAddr sdk.Address, members []Representative) *Contract {
	c := &Contract{state: state}
	c.saveConfig(daoAddr, uint64(len(members)))
	for _, m := range members {
		c.state.Set(representativeKey(m.Address), m.Community)
		c.state.Set(communityKey(m.Community), m.Address.String())
	}
	return c
}

// VoteDAOProposal forwards the sender's ballot to the governance contract.
// The DAO accepts the call because it originates from this registry.
func (c *Contract) VoteDAOProposal(ctx *sdk.Context, id uint64, vote dao.VoteKind) ([]sdk.Operation, error) {
	if _, err := c.GetRepresentativeCommunity(ctx.Sender); err != nil {
		return nil, err
	}
	daoAddr, _, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	payload := dao.EncodeRepresentativesVote(id, vote, ctx.Sender)
	return []sdk.Operation{sdk.Call(daoAddr, dao.EntryRepresentativesVote, payload)}, nil
}

// UpdateRepresentativeAddress moves the sender's registration to a new
// wallet. The community keeps its vote identity.
func (c *Contract) UpdateRepresentativeAddress(ctx *sdk.Context, newAddress sdk.Address) error {
	community, err := c.GetRepresentativeCommunity(ctx.Sender)
	if err != nil {
		return err
	}
	if c.state.Get(representativeKey(newAddress)) != nil {
		return sdk.Fail(sdk.ErrValidation, ErrAddressExists)
	}
	c.state.Delete(representativeKey(ctx.Sender))
	c.state.Set(representativeKey(newAddress), community)
	c.state.Set(communityKey(community), newAddress.String())
	return nil
}

// AddRepresentative registers a new community representative. Only the DAO
// can call it.
func (c *Contract) AddRepresentative(ctx *sdk.Context, member Representative) error {
	daoAddr, count, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != daoAddr {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotDAO)
	}
	if c.state.Get(representativeKey(member.Address)) != nil {
		return sdk.Fail(sdk.ErrValidation, ErrAddressExists)
	}
	if c.state.Get(communityKey(member.Community)) != nil {
		return sdk.Fail(sdk.ErrValidation, ErrCommunityExists)
	}
	c.state.Set(representativeKey(member.Address), member.Community)
	c.state.Set(communityKey(member.Community), member.Address.String())
	c.saveConfig(daoAddr, count+1)
	return nil
}

// RemoveRepresentative removes a community representative. Only the DAO can
// call it, and the last representative can never be removed.
func (c *Contract) RemoveRepresentative(ctx *sdk.Context, member Representative) error {
	daoAddr, count, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != daoAddr {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotDAO)
	}
	registered := c.state.Get(representativeKey(member.Address))
	if registered == nil {
		return sdk.Fail(sdk.ErrNotFound, ErrWrongAddress)
	}
	if *registered != member.Community {
		return sdk.Fail(sdk.ErrValidation, ErrWrongCommunity)
	}
	if count <= 1 {
		return sdk.Fail(sdk.ErrState, ErrLastRepresentative)
	}
	c.state.Delete(representativeKey(member.Address))
	c.state.Delete(communityKey(member.Community))
	c.saveConfig(daoAddr, count-1)
	return nil
}

// SetDAO points the registry at a new governance contract. Only the current
// DAO can call it.
func (c *Contract) SetDAO(ctx *sdk.Context, newDAO sdk.Address) error {
	daoAddr, count, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != daoAddr {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotDAO)
	}
	c.saveConfig(newDAO, count)
	return nil
}

// GetRepresentativeCommunity returns the community a wallet represents.
func (c *Contract) GetRepresentativeCommunity(member sdk.Address) (string, error) {
	community := c.state.Get(representativeKey(member))
	if community == nil {
		return "", sdk.Fail(sdk.ErrNotFound, ErrNotRepresentative)
	}
	return *community, nil
}

// CountRepresentatives returns how many communities are registered.
func (c *Contract) CountRepresentatives() (uint64, error) {
	_, count, err := c.loadConfig()
	return count, err
}

// DAO returns the governance contract the registry forwards to.
func (c *Contract) DAO() (sdk.Address, error) {
	daoAddr, _, err := c.loadConfig()
	return daoAddr, err
}

func (c *Contract) loadConfig() (sdk.Address, uint64, error) {
	raw := c.state.Get(string([]byte{kConfig}))
	if raw == nil {
		return "", 0, sdk.Fail(sdk.ErrState, ErrNotDAO)
	}
	r := sdk.NewReader([]byte(*raw))
	daoAddr := r.Address()
	count := r.Uint64()
	if err := r.Err(); err != nil {
		return "", 0, err
	}
	return daoAddr, count, nil
}

func (c *Contract) saveConfig(daoAddr sdk.Address, count uint64) {
	w := sdk.NewWriter()
	w.Address(daoAddr)
	w.Uint64(count)
	c.state.Set(string([]byte{kConfig}), string(w.Bytes()))
}

func representativeKey(member sdk.Address) string {
	buf := make([]byte, 0, 1+len(member))
	buf = append(buf, kRepresentative)
	return string(append(buf, member.String()...))
}

func communityKey(community string) string {
	buf := make([]byte, 0, 1+len(community))
	buf = append(buf, kCommunity)
	return string(append(buf, community...))
}
