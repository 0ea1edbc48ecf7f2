package dao

import "github.com/teia-community/teia-dao/sdk"

const (
	kConfig   byte = 0x01
	kProposal byte = 0x02
	// kTokenVote is keyed by proposal id and voter address.
	kTokenVote byte = 0x03
	// kRepresentativeVote is keyed by proposal id and community name.
	kRepresentativeVote byte = 0x04
	kMetadata           byte = 0x05
)

func packU64(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

func configKey() string {
	return string([]byte{kConfig})
}

func proposalKey(id uint64) string {
	buf := make([]byte, 0, 9)
	buf = append(buf, kProposal)
	buf = packU64(id, buf)
	return string(buf)
}

func tokenVoteKey(id uint64, voter sdk.Address) string {
	buf := make([]byte, 0, 9+len(voter))
	buf = append(buf, kTokenVote)
	buf = packU64(id, buf)
	return string(append(buf, voter.String()...))
}

func representativeVoteKey(id uint64, community string) string {
	buf := make([]byte, 0, 9+len(community))
	buf = append(buf, kRepresentativeVote)
	buf = packU64(id, buf)
	return string(append(buf, community...))
}

func metadataKey(k string) string {
	buf := make([]byte, 0, 1+len(k))
	buf = append(buf, kMetadata)
	return string(append(buf, k...))
}
