package token

import "github.com/teia-community/teia-dao/sdk"

func (c *Contract) loadConfig() (*Config, error) {
	raw := c.state.Get(configKey())
	if raw == nil {
		return nil, sdk.Fail(sdk.ErrState, ErrTokenUndefined)
	}
	r := sdk.NewReader([]byte(*raw))
	cfg := &Config{
		Administrator:         r.Address(),
		ProposedAdministrator: r.Address(),
		Supply:                r.Uint64(),
		MaxSupply:             r.Uint64(),
		MaxShare:              r.Uint64(),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Contract) saveConfig(cfg *Config) {
	w := sdk.NewWriter()
	w.Address(cfg.Administrator)
	w.Address(cfg.ProposedAdministrator)
	w.Uint64(cfg.Supply)
	w.Uint64(cfg.MaxSupply)
	w.Uint64(cfg.MaxShare)
	c.state.Set(configKey(), string(w.Bytes()))
}

// EncodeMintBatch packs a mint batch for the mint entry point.
func EncodeMintBatch(mints []MintItem) []byte {
	w := sdk.NewWriter()
	w.VarUint(uint64(len(mints)))
	for _, m := range mints {
		w.Address(m.To)
		w.Uint64(m.TokenID)
		w.Uint64(m.Amount)
	}
	return w.Bytes()
}

func DecodeMintBatch(data []byte) ([]MintItem, error) {
	r := sdk.NewReader(data)
	n := r.Count()
	mints := make([]MintItem, 0, n)
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		mints = append(mints, MintItem{
			To:      r.Address(),
			TokenID: r.Uint64(),
			Amount:  r.Uint64(),
		})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return mints, nil
}

// EncodeTransferBatch packs an FA2 transfer batch for the transfer entry
// point. Other contracts use it to build token moving operations.
func EncodeTransferBatch(batch []TransferItem) []byte {
	w := sdk.NewWriter()
	w.VarUint(uint64(len(batch)))
	for _, item := range batch {
		w.Address(item.From)
		w.VarUint(uint64(len(item.Txs)))
		for _, tx := range item.Txs {
			w.Address(tx.To)
			w.Uint64(tx.TokenID)
			w.Uint64(tx.Amount)
		}
	}
	return w.Bytes()
}

func DecodeTransferBatch(data []byte) ([]TransferItem, error) {
	r := sdk.NewReader(data)
	n := r.Count()
	batch := make([]TransferItem, 0, n)
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		item := TransferItem{From: r.Address()}
		txs := r.Count()
		for j := uint64(0); j < txs && r.Err() == nil; j++ {
			item.Txs = append(item.Txs, TransferTx{
				To:      r.Address(),
				TokenID: r.Uint64(),
				Amount:  r.Uint64(),
			})
		}
		batch = append(batch, item)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

// EncodeOperatorUpdates packs an operator update batch.
func EncodeOperatorUpdates(updates []OperatorUpdate) []byte {
	w := sdk.NewWriter()
	w.VarUint(uint64(len(updates)))
	for _, u := range updates {
		w.Bool(u.Add)
		w.Address(u.Owner)
		w.Address(u.Operator)
		w.Uint64(u.TokenID)
	}
	return w.Bytes()
}

func DecodeOperatorUpdates(data []byte) ([]OperatorUpdate, error) {
	r := sdk.NewReader(data)
	n := r.Count()
	updates := make([]OperatorUpdate, 0, n)
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		updates = append(updates, OperatorUpdate{
			Add:      r.Bool(),
			Owner:    r.Address(),
			Operator: r.Address(),
			TokenID:  r.Uint64(),
		})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return updates, nil
}

// EncodeAddress packs a single address payload, used by the administrator
// handover and share exception entry points.
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

// EncodeMetadataEntry packs one metadata key value pair.
func EncodeMetadataEntry(key, value string) []byte {
	w := sdk.NewWriter()
	w.String(key)
	w.String(value)
	return w.Bytes()
}

func DecodeMetadataEntry(data []byte) (string, string, error) {
	r := sdk.NewReader(data)
	key := r.String()
	value := r.String()
	if err := r.Err(); err != nil {
		return "", "", err
	}
	return key, value, nil
}
