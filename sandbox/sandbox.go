// Package sandbox runs the DAO contracts in process: it registers contracts
// under addresses, executes entry points as atomic transactions and
// dispatches their scheduled operations, mirroring the host chain semantics
// the contracts were written against.
package sandbox

import (
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/teia-community/teia-dao/sdk"
)

// Error codes raised by the runtime itself.
const (
	ErrUnknownContract     = "SANDBOX_UNKNOWN_CONTRACT"
	ErrInsufficientBalance = "SANDBOX_INSUFFICIENT_BALANCE"
)

// Factory builds a contract instance bound to the transaction's state
// overlay so every write stays uncommitted until the transaction succeeds.
type Factory func(state sdk.State, views *Views) sdk.Contract

// Chain is the in-process runtime.
type Chain struct {
	log       *logrus.Logger
	clock     clockwork.Clock
	state     sdk.State
	level     uint64
	factories map[sdk.Address]Factory
}

// Option configures a Chain.
type Option func(*Chain)

// WithClock injects the time source. Tests use a clockwork fake clock and
// advance it by days.
func WithClock(clock clockwork.Clock) Option {
	return func(ch *Chain) { ch.clock = clock }
}

// WithLogger injects the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(ch *Chain) { ch.log = log }
}

// New creates a runtime over the given base state.
func New(state sdk.State, opts ...Option) *Chain {
	ch := &Chain{
		log:       logrus.New(),
		clock:     clockwork.NewRealClock(),
		state:     state,
		level:     1,
		factories: make(map[sdk.Address]Factory),
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Register deploys a contract factory at an address.
func (ch *Chain) Register(addr sdk.Address, factory Factory) {
	ch.factories[addr] = factory
	ch.log.WithField("address", addr).Debug("contract registered")
}

// Level returns the current block level.
func (ch *Chain) Level() uint64 {
	return ch.level
}

// Clock returns the runtime's time source.
func (ch *Chain) Clock() clockwork.Clock {
	return ch.clock
}

// StateFor returns the committed state namespace of a registered contract.
// Callers use it to build read-only contract wrappers between transactions.
func (ch *Chain) StateFor(addr sdk.Address) sdk.State {
	return contractState(ch.state, addr)
}

// Views returns view adapters over the committed state.
func (ch *Chain) Views() *Views {
	return &Views{state: ch.state}
}

// Fund credits mutez to an address outside any transaction, like a faucet.
func (ch *Chain) Fund(addr sdk.Address, amount sdk.Mutez) {
	setBalance(ch.state, addr, getBalance(ch.state, addr)+amount)
}

// BalanceOf returns an address's committed mutez balance.
func (ch *Chain) BalanceOf(addr sdk.Address) sdk.Mutez {
	return getBalance(ch.state, addr)
}

// Call executes one entry point as an atomic transaction: the call runs over
// a staged overlay, its scheduled operations are dispatched depth-first, and
// only a fully successful run commits. Every call consumes one block level.
func (ch *Chain) Call(sender, target sdk.Address, entry string, payload []byte, amount sdk.Mutez) error {
	ch.level++
	staged := sdk.NewStaged(ch.state)
	t := &tx{chain: ch, staged: staged}
	t.views = &Views{state: staged}

	err := t.dispatch(sender, sdk.Operation{
		Target:  target,
		Entry:   entry,
		Payload: payload,
		Amount:  amount,
	})
	fields := logrus.Fields{
		"level":  ch.level,
		"sender": sender,
		"target": target,
		"entry":  entry,
	}
	if err != nil {
		staged.Discard()
		ch.log.WithFields(fields).WithError(err).Warn("transaction aborted")
		return err
	}
	staged.Commit()
	ch.log.WithFields(fields).Debug("transaction applied")
	return nil
}

// tx is the in-flight transaction.
type tx struct {
	chain  *Chain
	staged *sdk.Staged
	views  *Views
}

func (t *tx) dispatch(sender sdk.Address, op sdk.Operation) error {
	if op.Amount > 0 {
		if err := t.move(sender, op.Target, op.Amount); err != nil {
			return err
		}
	}

	factory, registered := t.chain.factories[op.Target]
	if !registered {
		if op.Entry != "" {
			return sdk.Fail(sdk.ErrNotFound, ErrUnknownContract)
		}
		// Plain mutez send to a wallet.
		return nil
	}

	entry := op.Entry
	if entry == "" {
		entry = "default"
	}
	contract := factory(contractState(t.staged, op.Target), t.views)
	ctx := &sdk.Context{
		Sender: sender,
		Self:   op.Target,
		Level:  t.chain.level,
		Now:    t.chain.clock.Now(),
		Amount: op.Amount,
	}
	ops, err := contract.Invoke(ctx, entry, op.Payload)
	if err != nil {
		return err
	}
	// Scheduled operations run after the caller's writes, each one with
	// the scheduling contract as sender.
	for _, next := range ops {
		if err := t.dispatch(op.Target, next); err != nil {
			return err
		}
	}
	return nil
}

func (t *tx) move(from, to sdk.Address, amount sdk.Mutez) error {
	balance := getBalance(t.staged, from)
	if balance < amount {
		return sdk.Fail(sdk.ErrValidation, ErrInsufficientBalance)
	}
	setBalance(t.staged, from, balance-amount)
	setBalance(t.staged, to, getBalance(t.staged, to)+amount)
	return nil
}

// contractState namespaces a contract's keys inside the shared store.
func contractState(base sdk.State, addr sdk.Address) sdk.State {
	return sdk.NewPrefixed(base, "c/"+addr.String()+"/")
}

func balanceKey(addr sdk.Address) string {
	return "m/" + addr.String()
}

func getBalance(state sdk.State, addr sdk.Address) sdk.Mutez {
	raw := state.Get(balanceKey(addr))
	if raw == nil {
		return 0
	}
	r := sdk.NewReader([]byte(*raw))
	balance := r.Mutez()
	if r.Err() != nil {
		return 0
	}
	return balance
}

func setBalance(state sdk.State, addr sdk.Address, balance sdk.Mutez) {
	w := sdk.NewWriter()
	w.Mutez(balance)
	state.Set(balanceKey(addr), string(w.Bytes()))
}
