package treasury

import "github.com/teia-community/teia-dao/sdk"

// EncodeMutezDistributions packs the transfer_mutez payload.
func EncodeMutezDistributions(distributions []MutezDistribution) []byte {
	w := sdk.NewWriter()
	w.VarUint(uint64(len(distributions)))
	for _, d := range distributions {
		w.Mutez(d.Amount)
		w.Address(d.Destination)
	}
	return w.Bytes()
}

func DecodeMutezDistributions(data []byte) ([]MutezDistribution, error) {
	r := sdk.NewReader(data)
	n := r.Count()
	distributions := make([]MutezDistribution, 0, n)
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		distributions = append(distributions, MutezDistribution{
			Amount:      r.Mutez(),
			Destination: r.Address(),
		})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return distributions, nil
}

// EncodeTokenTransfer packs the transfer_token payload.
func EncodeTokenTransfer(transfer TokenTransfer) []byte {
	w := sdk.NewWriter()
	w.Address(transfer.Token)
	w.Uint64(transfer.TokenID)
	w.VarUint(uint64(len(transfer.Distributions)))
	for _, d := range transfer.Distributions {
		w.Uint64(d.Amount)
		w.Address(d.Destination)
	}
	return w.Bytes()
}

func DecodeTokenTransfer(data []byte) (TokenTransfer, error) {
	r := sdk.NewReader(data)
	transfer := TokenTransfer{
		Token:   r.Address(),
		TokenID: r.Uint64(),
	}
	n := r.Count()
	for i := uint64(0); i < n && r.Err() == nil; i++ {
		transfer.Distributions = append(transfer.Distributions, TokenDistribution{
			Amount:      r.Uint64(),
			Destination: r.Address(),
		})
	}
	if err := r.Err(); err != nil {
		return TokenTransfer{}, err
	}
	return transfer, nil
}

// EncodeDAOAddress packs the set_dao payload.
func EncodeDAOAddress(dao sdk.Address) []byte {
	w := sdk.NewWriter()
	w.Address(dao)
	return w.Bytes()
}

func DecodeDAOAddress(data []byte) (sdk.Address, error) {
	r := sdk.NewReader(data)
	dao := r.Address()
	if err := r.Err(); err != nil {
		return "", err
	}
	return dao, nil
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
