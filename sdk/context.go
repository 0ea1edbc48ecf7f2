package sdk

import "time"

// Context is the execution environment of one entry-point invocation: who is
// calling, which contract is running, and where the chain head currently is.
// The host guarantees Level and Now only move forward between transactions.
type Context struct {
	// Sender is the account that sent the current internal or external call.
	Sender Address
	// Self is the address the executing contract is deployed at.
	Self Address
	// Level is the current block level.
	Level uint64
	// Now is the current block timestamp.
	Now time.Time
	// Amount is the mutez attached to the call.
	Amount Mutez
}

// At returns a copy of the context rebased onto another executing contract,
// with the previous contract as sender. Used when dispatching internal calls.
func (c *Context) At(self Address) *Context {
	return &Context{
		Sender: c.Self,
		Self:   self,
		Level:  c.Level,
		Now:    c.Now,
	}
}

// Contract is the invocation surface the runtime dispatches scheduled
// operations through. Entry names and payload layouts form a closed
// vocabulary; unknown entries must be rejected.
type Contract interface {
	Invoke(ctx *Context, entry string, payload []byte) ([]Operation, error)
}
