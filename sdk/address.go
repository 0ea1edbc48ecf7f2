package sdk

import "strings"

type AddressKind string

const (
	AddressKindWallet   AddressKind = "wallet"
	AddressKindContract AddressKind = "contract"
	AddressKindUnknown  AddressKind = "unknown"
)

// Address is a Tezos account identifier. Implicit (wallet) accounts use the
// tz1/tz2/tz3 prefixes, originated contracts use KT1.
type Address string

// String returns the literal representation (like tz1abc...) of the address.
func (a Address) String() string {
	return string(a)
}

// Kind inspects the prefix to decide if the address is a wallet or a contract.
func (a Address) Kind() AddressKind {
	s := a.String()
	switch {
	case strings.HasPrefix(s, "tz1"), strings.HasPrefix(s, "tz2"), strings.HasPrefix(s, "tz3"):
		return AddressKindWallet
	case strings.HasPrefix(s, "KT1"):
		return AddressKindContract
	default:
		return AddressKindUnknown
	}
}

// IsValid returns false if the prefix detection failed, used as a light sanity check.
func (a Address) IsValid() bool {
	return a.Kind() != AddressKindUnknown
}

// Mutez is an amount of the chain's native currency in its smallest unit
// (one millionth of a tez). Amounts are never negative.
type Mutez uint64
