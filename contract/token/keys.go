package token

import "github.com/teia-community/teia-dao/sdk"

const (
	// kConfig stores the encoded contract configuration record.
	kConfig byte = 0x01
	// kLedger stores one balance per token owner.
	kLedger byte = 0x02
	// kOperator flags (owner, operator, token id) approvals.
	kOperator byte = 0x03
	// kCheckpoint stores Checkpoint records indexed by owner and position.
	kCheckpoint byte = 0x04
	// kCheckpointCount tracks how many checkpoints an owner has.
	kCheckpointCount byte = 0x05
	// kShareException flags owners exempt from the max share cap.
	kShareException byte = 0x06
	// kMetadata stores contract metadata entries.
	kMetadata byte = 0x07
)

// packU64 appends the number to dst in little-endian order so keys stay compact.
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

// packAddr length-prefixes the address so keys built from several variable
// parts cannot collide.
func packAddr(addr sdk.Address, dst []byte) []byte {
	s := addr.String()
	dst = append(dst, byte(len(s)))
	return append(dst, s...)
}

func configKey() string {
	return string([]byte{kConfig})
}

// ledgerKey builds the storage key for an owner's balance.
func ledgerKey(owner sdk.Address) string {
	buf := make([]byte, 0, 2+len(owner))
	buf = append(buf, kLedger)
	buf = packAddr(owner, buf)
	return string(buf)
}

// operatorKey mixes owner, operator and token id into one approval key.
func operatorKey(owner, operator sdk.Address, tokenID uint64) string {
	buf := make([]byte, 0, 4+len(owner)+len(operator)+8)
	buf = append(buf, kOperator)
	buf = packAddr(owner, buf)
	buf = packAddr(operator, buf)
	buf = packU64(tokenID, buf)
	return string(buf)
}

// checkpointKey addresses one checkpoint in an owner's history.
func checkpointKey(owner sdk.Address, index uint64) string {
	buf := make([]byte, 0, 2+len(owner)+8)
	buf = append(buf, kCheckpoint)
	buf = packAddr(owner, buf)
	buf = packU64(index, buf)
	return string(buf)
}

func checkpointCountKey(owner sdk.Address) string {
	buf := make([]byte, 0, 2+len(owner))
	buf = append(buf, kCheckpointCount)
	buf = packAddr(owner, buf)
	return string(buf)
}

func shareExceptionKey(owner sdk.Address) string {
	buf := make([]byte, 0, 2+len(owner))
	buf = append(buf, kShareException)
	buf = packAddr(owner, buf)
	return string(buf)
}

func metadataKey(k string) string {
	buf := make([]byte, 0, 1+len(k))
	buf = append(buf, kMetadata)
	return string(append(buf, k...))
}
