package repo

import (
	"github.com/pkg/errors"

	"github.com/teia-community/teia-dao/contract/dao"
)

type Config struct {
	RepoRoot string `mapstructure:"-" toml:"-"`

	// DataDir holds the Badger state database, relative to the repo root.
	// An empty value keeps everything in memory.
	DataDir string `mapstructure:"data_dir" toml:"data_dir"`

	Log        Log        `mapstructure:"log" toml:"log"`
	Token      Token      `mapstructure:"token" toml:"token"`
	Governance Governance `mapstructure:"governance" toml:"governance"`
	Accounts   Accounts   `mapstructure:"accounts" toml:"accounts"`
}

type Log struct {
	Level        string `mapstructure:"level" toml:"level"`
	ReportCaller bool   `mapstructure:"report_caller" toml:"report_caller"`
}

type Token struct {
	MaxSupply uint64 `mapstructure:"max_supply" toml:"max_supply"`
	// MaxShare caps any single balance, 0 disables the check.
	MaxShare uint64 `mapstructure:"max_share" toml:"max_share"`
}

type Governance struct {
	Quorum uint64 `mapstructure:"quorum" toml:"quorum"`
	// VoteMethod is "linear" or "quadratic".
	VoteMethod           string `mapstructure:"vote_method" toml:"vote_method"`
	VotePeriodDays       uint64 `mapstructure:"vote_period_days" toml:"vote_period_days"`
	WaitPeriodDays       uint64 `mapstructure:"wait_period_days" toml:"wait_period_days"`
	EscrowAmount         uint64 `mapstructure:"escrow_amount" toml:"escrow_amount"`
	EscrowReturn         uint64 `mapstructure:"escrow_return" toml:"escrow_return"`
	MinAmount            uint64 `mapstructure:"min_amount" toml:"min_amount"`
	Supermajority        uint64 `mapstructure:"supermajority" toml:"supermajority"`
	RepresentativesShare uint64 `mapstructure:"representatives_share" toml:"representatives_share"`
	QuorumUpdatePeriod   uint64 `mapstructure:"quorum_update_period_days" toml:"quorum_update_period_days"`
	QuorumUpdate         uint64 `mapstructure:"quorum_update" toml:"quorum_update"`
	QuorumMaxChange      uint64 `mapstructure:"quorum_max_change" toml:"quorum_max_change"`
	MinQuorum            uint64 `mapstructure:"min_quorum" toml:"min_quorum"`
	MaxQuorum            uint64 `mapstructure:"max_quorum" toml:"max_quorum"`
}

type Representative struct {
	Address   string `mapstructure:"address" toml:"address"`
	Community string `mapstructure:"community" toml:"community"`
}

type Accounts struct {
	Administrator   string           `mapstructure:"administrator" toml:"administrator"`
	Guardians       string           `mapstructure:"guardians" toml:"guardians"`
	Representatives []Representative `mapstructure:"representatives" toml:"representatives"`
}

// Parameters converts the config section into the governance parameter set the
// DAO contract works with.
func (g Governance) Parameters() (dao.GovernanceParameters, error) {
	var method dao.VoteMethod
	switch g.VoteMethod {
	case "linear":
		method = dao.VoteMethodLinear
	case "quadratic":
		method = dao.VoteMethodQuadratic
	default:
		return dao.GovernanceParameters{}, errors.Errorf("unknown vote method %q", g.VoteMethod)
	}

	params := dao.GovernanceParameters{
		VoteMethod:           method,
		VotePeriod:           g.VotePeriodDays,
		WaitPeriod:           g.WaitPeriodDays,
		EscrowAmount:         g.EscrowAmount,
		EscrowReturn:         g.EscrowReturn,
		MinAmount:            g.MinAmount,
		Supermajority:        g.Supermajority,
		RepresentativesShare: g.RepresentativesShare,
		QuorumUpdatePeriod:   g.QuorumUpdatePeriod,
		QuorumUpdate:         g.QuorumUpdate,
		QuorumMaxChange:      g.QuorumMaxChange,
		MinQuorum:            g.MinQuorum,
		MaxQuorum:            g.MaxQuorum,
	}
	if err := params.Validate(); err != nil {
		return dao.GovernanceParameters{}, err
	}
	return params, nil
}

func DefaultConfig(repoRoot string) *Config {
	return &Config{
		RepoRoot: repoRoot,
		DataDir:  "state",
		Log: Log{
			Level:        "info",
			ReportCaller: false,
		},
		Token: Token{
			MaxSupply: 8_000_000_000_000,
			MaxShare:  400_000_000_000,
		},
		Governance: Governance{
			Quorum:               1_300_000_000,
			VoteMethod:           "linear",
			VotePeriodDays:       5,
			WaitPeriodDays:       2,
			EscrowAmount:         300_000_000,
			EscrowReturn:         40,
			MinAmount:            1,
			Supermajority:        70,
			RepresentativesShare: 30,
			QuorumUpdatePeriod:   10,
			QuorumUpdate:         20,
			QuorumMaxChange:      20,
			MinQuorum:            1_300_000_000,
			MaxQuorum:            1_300_000_000_000,
		},
		Accounts: Accounts{
			Administrator: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb",
			Guardians:     "KT1XprVSbSAFk873Bf6AVTvyDbo6RpyF8A6d",
			Representatives: []Representative{
				{Address: "tz1fzLQzbZybPNppzdbYjFAJVLFzfKTE9NvF", Community: "UK"},
				{Address: "tz1g6qHFMQVmPHEbBFk9zpHVEMTRn89CUGq2", Community: "Brazil"},
			},
		},
	}
}
