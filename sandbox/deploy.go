package sandbox

import (
	"github.com/teia-community/teia-dao/contract/dao"
	"github.com/teia-community/teia-dao/contract/representatives"
	"github.com/teia-community/teia-dao/contract/token"
	"github.com/teia-community/teia-dao/contract/treasury"
	"github.com/teia-community/teia-dao/sdk"
)

// DeployParams describes a full DAO deployment: the four contract addresses,
// the token caps and the initial governance setup.
type DeployParams struct {
	Administrator sdk.Address

	TokenAddr           sdk.Address
	DAOAddr             sdk.Address
	TreasuryAddr        sdk.Address
	RepresentativesAddr sdk.Address
	Guardians           sdk.Address

	MaxSupply uint64
	MaxShare  uint64

	Quorum     uint64
	Parameters dao.GovernanceParameters

	Representatives []representatives.Representative
}

// Deploy originates the token, treasury, representatives registry and the
// governance contract and registers them on the chain.
func Deploy(ch *Chain, p DeployParams) error {
	token.Originate(ch.StateFor(p.TokenAddr), p.Administrator, p.MaxSupply, p.MaxShare)
	treasury.Originate(ch.StateFor(p.TreasuryAddr), p.DAOAddr)
	representatives.Originate(ch.StateFor(p.RepresentativesAddr), p.DAOAddr, p.Representatives)
	views := ch.Views()
	_, err := dao.Originate(ch.StateFor(p.DAOAddr), views, views,
		p.Administrator, p.TreasuryAddr, p.TokenAddr, p.RepresentativesAddr, p.Guardians,
		p.Quorum, p.Parameters, ch.Clock().Now())
	if err != nil {
		return err
	}

	ch.Register(p.TokenAddr, func(state sdk.State, _ *Views) sdk.Contract {
		return token.New(state)
	})
	ch.Register(p.TreasuryAddr, func(state sdk.State, _ *Views) sdk.Contract {
		return treasury.New(state)
	})
	ch.Register(p.RepresentativesAddr, func(state sdk.State, _ *Views) sdk.Contract {
		return representatives.New(state)
	})
	ch.Register(p.DAOAddr, func(state sdk.State, views *Views) sdk.Contract {
		return dao.New(state, views, views)
	})
	return nil
}
