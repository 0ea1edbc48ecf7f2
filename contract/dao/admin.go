package dao

import "github.com/teia-community/teia-dao/sdk"

// requireDAOOrAdmin gates the self-amendment entry points: they can be
// reached through an executed lambda proposal (the DAO calling itself) or
// directly by the administrator as an emergency escape hatch.
func requireDAOOrAdmin(ctx *sdk.Context, cfg *Config) error {
	if ctx.Sender == ctx.Self || ctx.Sender == cfg.Administrator {
		return nil
	}
	return sdk.Fail(sdk.ErrAuthorization, ErrNotDAOOrAdmin)
}

// SetTreasury points the DAO at a new treasury contract.
func (c *Contract) SetTreasury(ctx *sdk.Context, treasury sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	cfg.Treasury = treasury
	c.saveConfig(cfg)
	return nil
}

// SetRepresentatives points the DAO at a new representatives registry.
func (c *Contract) SetRepresentatives(ctx *sdk.Context, representatives sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	cfg.Representatives = representatives
	c.saveConfig(cfg)
	return nil
}

// SetGuardians replaces the guardians role holder.
func (c *Contract) SetGuardians(ctx *sdk.Context, guardians sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	cfg.Guardians = guardians
	c.saveConfig(cfg)
	return nil
}

// SetQuorum overrides the current quorum. The value must respect the
// configured absolute bounds.
func (c *Contract) SetQuorum(ctx *sdk.Context, quorum uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	if quorum < cfg.Parameters.MinQuorum || quorum > cfg.Parameters.MaxQuorum {
		return sdk.Fail(sdk.ErrValidation, ErrWrongParameters)
	}
	cfg.Quorum = quorum
	c.saveConfig(cfg)
	return nil
}

// SetGovernanceParameters replaces the governance parameter record.
// Proposals created before the change keep their snapshot.
func (c *Contract) SetGovernanceParameters(ctx *sdk.Context, parameters GovernanceParameters) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	if err := parameters.Validate(); err != nil {
		return err
	}
	cfg.Parameters = parameters
	c.saveConfig(cfg)
	return nil
}

// TransferAdministrator proposes a new administrator.
func (c *Contract) TransferAdministrator(ctx *sdk.Context, proposed sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	cfg.ProposedAdministrator = proposed
	c.saveConfig(cfg)
	return nil
}

// AcceptAdministrator completes a pending administrator handover.
func (c *Contract) AcceptAdministrator(ctx *sdk.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if cfg.ProposedAdministrator == "" {
		return sdk.Fail(sdk.ErrState, ErrNoNewAdmin)
	}
	if ctx.Sender != cfg.ProposedAdministrator {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotProposedAdmin)
	}
	cfg.Administrator = cfg.ProposedAdministrator
	cfg.ProposedAdministrator = ""
	c.saveConfig(cfg)
	return nil
}

// SetMetadata writes one contract metadata entry.
func (c *Contract) SetMetadata(ctx *sdk.Context, key, value string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireDAOOrAdmin(ctx, cfg); err != nil {
		return err
	}
	c.state.Set(metadataKey(key), value)
	return nil
}
