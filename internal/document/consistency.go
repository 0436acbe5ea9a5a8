package document

// Changed records a mutation. Outside a property transaction the document is
// marked as needing save and the change hook fires; inside one the
// notification waits for the outermost transaction to close.
func (d *Document) Changed() {
	if d.txDepth > 0 {
		d.txChanged = true
		return
	}
	d.notify()
}

// Commit reports a whole command's worth of changes as one document change.
// Transactions do not defer it.
func (d *Document) Commit() {
	d.notify()
}

func (d *Document) notify() {
	d.needsSave = true
	d.logger.Debug().Msg("document changed")
	if d.hook != nil {
		d.hook.NotifyChanged()
	}
}

// NeedsSave reports whether the document changed since the last MarkSaved.
func (d *Document) NeedsSave() bool {
	return d.needsSave
}

// MarkSaved clears the needs-save flag.
func (d *Document) MarkSaved() {
	d.needsSave = false
}

// InTransaction reports whether a property transaction is open.
func (d *Document) InTransaction() bool {
	return d.txDepth > 0
}

// Transaction batches property edits so the change hook fires once.
type Transaction struct {
	doc    *Document
	closed bool
}

// BeginPropertyTransaction opens a transaction. Transactions nest; closing
// the outermost one fires the deferred notification exactly once, whether
// or not any property was set inside it.
//
//	tx := doc.BeginPropertyTransaction()
//	defer tx.Close()
func (d *Document) BeginPropertyTransaction() *Transaction {
	d.txDepth++
	return &Transaction{doc: d}
}

// Close ends the transaction. Closing twice is a no-op.
func (t *Transaction) Close() {
	if t.closed {
		return
	}
	t.closed = true
	d := t.doc
	d.txDepth--
	if d.txDepth > 0 {
		return
	}
	d.logger.Debug().Bool("changed", d.txChanged).Msg("property transaction closed")
	d.txChanged = false
	d.notify()
}
