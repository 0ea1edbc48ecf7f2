package sdk

// Operation is an outbound call scheduled by an entry point. Operations are
// not executed inline: the runtime dispatches them after the scheduling
// transaction's storage writes are staged, and a failure anywhere aborts the
// whole transaction. An operation with an empty entry is a plain mutez send.
//
// Because operations are plain data they can be persisted, which is how
// lambda proposals store their call list.
type Operation struct {
	// Target is the contract (or wallet, for plain sends) being called.
	Target Address
	// Entry is the target entry-point name, empty for a plain mutez send.
	Entry string
	// Payload is the entry-specific binary argument.
	Payload []byte
	// Amount is the mutez attached to the call.
	Amount Mutez
}

// Send builds a plain mutez transfer to a wallet or a contract's default
// entry point.
func Send(to Address, amount Mutez) Operation {
	return Operation{Target: to, Amount: amount}
}

// Call builds an internal contract call with no attached mutez.
func Call(target Address, entry string, payload []byte) Operation {
	return Operation{Target: target, Entry: entry, Payload: payload}
}

// EncodeOperation appends the operation's wire form to the writer.
func EncodeOperation(w *Writer, op Operation) {
	w.Address(op.Target)
	w.String(op.Entry)
	w.VarUint(uint64(len(op.Payload)))
	for _, b := range op.Payload {
		w.Byte(b)
	}
	w.Mutez(op.Amount)
}

// DecodeOperation reads one operation from the reader.
func DecodeOperation(r *Reader) Operation {
	op := Operation{
		Target: r.Address(),
		Entry:  r.String(),
	}
	if n := r.Count(); n > 0 {
		op.Payload = make([]byte, 0, n)
		for i := uint64(0); i < n; i++ {
			op.Payload = append(op.Payload, r.Byte())
		}
	}
	op.Amount = r.Mutez()
	return op
}

// EncodeOperations writes a length-prefixed operation list.
func EncodeOperations(w *Writer, ops []Operation) {
	w.VarUint(uint64(len(ops)))
	for _, op := range ops {
		EncodeOperation(w, op)
	}
}

// DecodeOperations reads a length-prefixed operation list.
func DecodeOperations(r *Reader) []Operation {
	n := r.Count()
	if r.Err() != nil {
		return nil
	}
	ops := make([]Operation, 0, n)
	for i := uint64(0); i < n; i++ {
		ops = append(ops, DecodeOperation(r))
	}
	return ops
}
