package dao

import "github.com/teia-community/teia-dao/sdk"

// Payload codecs for the entry points reachable through Invoke. Lambda
// proposals and the representatives registry build their call payloads with
// the encode half.

func EncodeCreateProposal(req ProposalRequest) []byte {
	w := sdk.NewWriter()
	w.String(req.Title)
	w.String(req.Description)
	w.Byte(byte(req.Kind))
	encodeMutezTransfers(w, req.MutezTransfers)
	encodeTokenTransfers(w, req.TokenTransfers)
	sdk.EncodeOperations(w, req.LambdaOps)
	return w.Bytes()
}

func DecodeCreateProposal(data []byte) (ProposalRequest, error) {
	r := sdk.NewReader(data)
	req := ProposalRequest{
		Title:          r.String(),
		Description:    r.String(),
		Kind:           ProposalKind(r.Byte()),
		MutezTransfers: decodeMutezTransfers(r),
		TokenTransfers: decodeTokenTransfers(r),
		LambdaOps:      sdk.DecodeOperations(r),
	}
	if err := r.Err(); err != nil {
		return ProposalRequest{}, err
	}
	return req, nil
}

func EncodeTokenVote(id uint64, vote VoteKind, maxCheckpoints *uint64) []byte {
	w := sdk.NewWriter()
	w.Uint64(id)
	w.Byte(byte(vote))
	if maxCheckpoints != nil {
		w.Bool(true)
		w.Uint64(*maxCheckpoints)
	} else {
		w.Bool(false)
	}
	return w.Bytes()
}

func DecodeTokenVote(data []byte) (uint64, VoteKind, *uint64, error) {
	r := sdk.NewReader(data)
	id := r.Uint64()
	vote := VoteKind(r.Byte())
	var maxCheckpoints *uint64
	if r.Bool() {
		v := r.Uint64()
		maxCheckpoints = &v
	}
	if err := r.Err(); err != nil {
		return 0, 0, nil, err
	}
	return id, vote, maxCheckpoints, nil
}

func EncodeRepresentativesVote(id uint64, vote VoteKind, representative sdk.Address) []byte {
	w := sdk.NewWriter()
	w.Uint64(id)
	w.Byte(byte(vote))
	w.Address(representative)
	return w.Bytes()
}

func DecodeRepresentativesVote(data []byte) (uint64, VoteKind, sdk.Address, error) {
	r := sdk.NewReader(data)
	id := r.Uint64()
	vote := VoteKind(r.Byte())
	representative := r.Address()
	if err := r.Err(); err != nil {
		return 0, 0, "", err
	}
	return id, vote, representative, nil
}

func EncodeCancelProposal(id uint64, returnEscrow bool) []byte {
	w := sdk.NewWriter()
	w.Uint64(id)
	w.Bool(returnEscrow)
	return w.Bytes()
}

func DecodeCancelProposal(data []byte) (uint64, bool, error) {
	r := sdk.NewReader(data)
	id := r.Uint64()
	returnEscrow := r.Bool()
	if err := r.Err(); err != nil {
		return 0, false, err
	}
	return id, returnEscrow, nil
}

func EncodeProposalID(id uint64) []byte {
	w := sdk.NewWriter()
	w.Uint64(id)
	return w.Bytes()
}

func DecodeProposalID(data []byte) (uint64, error) {
	r := sdk.NewReader(data)
	id := r.Uint64()
	if err := r.Err(); err != nil {
		return 0, err
	}
	return id, nil
}

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

func EncodeQuorum(quorum uint64) []byte {
	return EncodeProposalID(quorum)
}

func DecodeQuorum(data []byte) (uint64, error) {
	return DecodeProposalID(data)
}

func EncodeGovernanceParameters(parameters GovernanceParameters) []byte {
	w := sdk.NewWriter()
	encodeParameters(w, parameters)
	return w.Bytes()
}

func DecodeGovernanceParameters(data []byte) (GovernanceParameters, error) {
	r := sdk.NewReader(data)
	parameters := decodeParameters(r)
	if err := r.Err(); err != nil {
		return GovernanceParameters{}, err
	}
	return parameters, nil
}

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
