package token

import (
	"github.com/teia-community/teia-dao/sdk"
)

// Error codes returned by the token contract. They mirror the usual FA2
// failure vocabulary so callers can match on them.
const (
	ErrNotAdmin            = "FA2_NOT_ADMIN"
	ErrTokenUndefined      = "FA2_TOKEN_UNDEFINED"
	ErrNotOperator         = "FA2_NOT_OPERATOR"
	ErrInsufficientBalance = "FA2_INSUFFICIENT_BALANCE"
	ErrSenderIsNotOwner    = "FA2_SENDER_IS_NOT_OWNER"
	ErrWrongLevel          = "FA2_WRONG_LEVEL"
	ErrWrongMaxCheckpoints = "FA2_WRONG_MAX_CHECKPOINTS"
	ErrShareExcess         = "FA2_SHARE_EXCESS"
	ErrSupplyExceeded      = "FA2_SUPPLY_EXCEEDED"
	ErrNoNewAdmin          = "FA_NO_NEW_ADMIN"
	ErrNotProposedAdmin    = "FA_NOT_PROPOSED_ADMIN"
	ErrInvalidEntrypoint   = "FA2_INVALID_ENTRYPOINT"
)

// TokenID is the single token class the contract manages.
const TokenID uint64 = 0

// Config is the contract-level configuration record.
type Config struct {
	Administrator sdk.Address
	// ProposedAdministrator is empty while no handover is pending.
	ProposedAdministrator sdk.Address
	Supply                uint64
	MaxSupply             uint64
	// MaxShare caps any single balance below it. Exempted owners and a
	// zero value disable the cap.
	MaxShare uint64
}

// Checkpoint records an owner's balance as of a block level.
type Checkpoint struct {
	Level   uint64
	Balance uint64
}

// MintItem credits Amount of the token to To.
type MintItem struct {
	To      sdk.Address
	TokenID uint64
	Amount  uint64
}

// TransferItem moves token amounts out of one owner, FA2 batch style.
type TransferItem struct {
	From sdk.Address
	Txs  []TransferTx
}

type TransferTx struct {
	To      sdk.Address
	TokenID uint64
	Amount  uint64
}

// OperatorUpdate adds or removes one (owner, operator, token) approval.
type OperatorUpdate struct {
	Add      bool
	Owner    sdk.Address
	Operator sdk.Address
	TokenID  uint64
}

// BalanceRequest and BalanceResponse form the batch balance_of view.
type BalanceRequest struct {
	Owner   sdk.Address
	TokenID uint64
}

type BalanceResponse struct {
	Request BalanceRequest
	Balance uint64
}

// Contract is the checkpointed FA2 governance token.
type Contract struct {
	state sdk.State
}

// New wraps an already originated token state.
func New(state sdk.State) *Contract {
	return &Contract{state: state}
}

// Originate writes the initial configuration and returns the contract.
func Originate(state sdk.State, administrator sdk.Address, maxSupply, maxShare uint64) *Contract {
	c := &Contract{state: state}
	c.saveConfig(&Config{
		Administrator: administrator,
		MaxSupply:     maxSupply,
		MaxShare:      maxShare,
	})
	return c
}

// Mint credits new token amounts. Only the administrator can mint, and the
// total supply can never exceed the configured maximum.
func (c *Contract) Mint(ctx *sdk.Context, mints []MintItem) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Administrator {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotAdmin)
	}
	for _, m := range mints {
		if m.TokenID != TokenID {
			return sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
		}
		if m.Amount == 0 {
			continue
		}
		if cfg.Supply+m.Amount > cfg.MaxSupply {
			return sdk.Fail(sdk.ErrValidation, ErrSupplyExceeded)
		}
		cfg.Supply += m.Amount
		balance := c.balance(m.To) + m.Amount
		c.setBalance(m.To, balance)
		c.recordCheckpoint(m.To, balance, ctx.Level)
	}
	c.saveConfig(cfg)
	return nil
}

// Transfer executes an FA2 transfer batch. The sender must be each source
// owner or one of its approved operators.
func (c *Contract) Transfer(ctx *sdk.Context, batch []TransferItem) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	for _, item := range batch {
		owner := item.From
		for _, tx := range item.Txs {
			if tx.TokenID != TokenID {
				return sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
			}
			if ctx.Sender != owner && !c.IsOperator(owner, ctx.Sender, tx.TokenID) {
				return sdk.Fail(sdk.ErrAuthorization, ErrNotOperator)
			}
			if tx.Amount == 0 {
				continue
			}
			fromBalance := c.balance(owner)
			if fromBalance < tx.Amount {
				return sdk.Fail(sdk.ErrValidation, ErrInsufficientBalance)
			}
			if owner == tx.To {
				continue
			}
			toBalance := c.balance(tx.To) + tx.Amount
			if cfg.MaxShare > 0 && toBalance >= cfg.MaxShare && !c.isShareException(tx.To) {
				return sdk.Fail(sdk.ErrValidation, ErrShareExcess)
			}
			c.setBalance(owner, fromBalance-tx.Amount)
			c.setBalance(tx.To, toBalance)
			c.recordCheckpoint(owner, fromBalance-tx.Amount, ctx.Level)
			c.recordCheckpoint(tx.To, toBalance, ctx.Level)
		}
	}
	return nil
}

// UpdateOperators applies a batch of operator approvals. Only the owner of a
// slot can change it.
func (c *Contract) UpdateOperators(ctx *sdk.Context, updates []OperatorUpdate) error {
	for _, u := range updates {
		if ctx.Sender != u.Owner {
			return sdk.Fail(sdk.ErrAuthorization, ErrSenderIsNotOwner)
		}
		key := operatorKey(u.Owner, u.Operator, u.TokenID)
		if u.Add {
			c.state.Set(key, "1")
		} else {
			c.state.Delete(key)
		}
	}
	return nil
}

// AddMaxShareException exempts an owner from the max share cap.
func (c *Contract) AddMaxShareException(ctx *sdk.Context, owner sdk.Address) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	c.state.Set(shareExceptionKey(owner), "1")
	return nil
}

// RemoveMaxShareException puts an owner back under the max share cap.
func (c *Contract) RemoveMaxShareException(ctx *sdk.Context, owner sdk.Address) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	c.state.Delete(shareExceptionKey(owner))
	return nil
}

// TransferAdministrator proposes a new administrator. The handover completes
// when the proposed address calls AcceptAdministrator.
func (c *Contract) TransferAdministrator(ctx *sdk.Context, proposed sdk.Address) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Administrator {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotAdmin)
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
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	c.state.Set(metadataKey(key), value)
	return nil
}

func (c *Contract) requireAdmin(ctx *sdk.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Administrator {
		return sdk.Fail(sdk.ErrAuthorization, ErrNotAdmin)
	}
	return nil
}

// GetBalance returns an owner's current balance.
func (c *Contract) GetBalance(owner sdk.Address, tokenID uint64) (uint64, error) {
	if tokenID != TokenID {
		return 0, sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
	}
	return c.balance(owner), nil
}

// BalanceOf answers a batch of balance requests.
func (c *Contract) BalanceOf(requests []BalanceRequest) ([]BalanceResponse, error) {
	out := make([]BalanceResponse, 0, len(requests))
	for _, r := range requests {
		if r.TokenID != TokenID {
			return nil, sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
		}
		out = append(out, BalanceResponse{Request: r, Balance: c.balance(r.Owner)})
	}
	return out, nil
}

// TotalSupply returns the minted supply.
func (c *Contract) TotalSupply() (uint64, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	return cfg.Supply, nil
}

// IsOperator reports whether operator may move owner's tokens.
func (c *Contract) IsOperator(owner, operator sdk.Address, tokenID uint64) bool {
	return c.state.Get(operatorKey(owner, operator, tokenID)) != nil
}

// TokenExists reports whether the token id is defined.
func (c *Contract) TokenExists(tokenID uint64) bool {
	return tokenID == TokenID
}

// CountTokens returns how many token classes exist. Always one.
func (c *Contract) CountTokens() uint64 {
	return 1
}

// AllTokens lists the defined token ids.
func (c *Contract) AllTokens() []uint64 {
	return []uint64{TokenID}
}

// TokenMetadataRecord is the token_metadata view result.
type TokenMetadataRecord struct {
	TokenID uint64
	Info    map[string]string
}

// TokenMetadata returns the static metadata of the token.
func (c *Contract) TokenMetadata(tokenID uint64) (TokenMetadataRecord, error) {
	if tokenID != TokenID {
		return TokenMetadataRecord{}, sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
	}
	return TokenMetadataRecord{
		TokenID: TokenID,
		Info: map[string]string{
			"name":     "Teia DAO token",
			"symbol":   "TEIA",
			"decimals": "6",
		},
	}, nil
}

// Administrator returns the current administrator address.
func (c *Contract) Administrator() (sdk.Address, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Administrator, nil
}

// Metadata reads one contract metadata entry.
func (c *Contract) Metadata(key string) (string, bool) {
	raw := c.state.Get(metadataKey(key))
	if raw == nil {
		return "", false
	}
	return *raw, true
}

func (c *Contract) balance(owner sdk.Address) uint64 {
	raw := c.state.Get(ledgerKey(owner))
	if raw == nil {
		return 0
	}
	r := sdk.NewReader([]byte(*raw))
	balance := r.Uint64()
	if r.Err() != nil {
		return 0
	}
	return balance
}

func (c *Contract) setBalance(owner sdk.Address, balance uint64) {
	w := sdk.NewWriter()
	w.Uint64(balance)
	c.state.Set(ledgerKey(owner), string(w.Bytes()))
}

func (c *Contract) isShareException(owner sdk.Address) bool {
	return c.state.Get(shareExceptionKey(owner)) != nil
}
