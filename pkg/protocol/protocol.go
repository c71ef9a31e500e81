// Package protocol defines the request/response shapes a node exchanges
// with external callers: fetching a wallet's spendable outputs and
// submitting a new transaction for mempool admission.
package protocol

import (
	"github.com/ledgerchain/ledger/internal/chain"
	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/tx"
)

// FetchUTXOs requests every UTXO paying out to Pubkey.
type FetchUTXOs struct {
	Pubkey crypto.PublicKey
}

// UTXOEntryView is the wire shape of a single UTXO, including whether a
// pending mempool transaction already reserves it.
type UTXOEntryView struct {
	Output   tx.TransactionOutput
	Reserved bool
}

// UTXOList answers a FetchUTXOs request.
type UTXOList struct {
	Entries []UTXOEntryView
}

// Handle walks the blockchain's UTXO set and returns every entry paying
// out to the requested public key.
func (req FetchUTXOs) Handle(bc *chain.Blockchain) UTXOList {
	var list UTXOList
	for _, entry := range bc.UTXOsForPubkey(req.Pubkey) {
		list.Entries = append(list.Entries, UTXOEntryView{Output: entry.Output, Reserved: entry.Reserved})
	}
	return list
}

// SubmitTransaction requests admission of Tx into the mempool.
type SubmitTransaction struct {
	Tx tx.Transaction
}

// Handle admits the transaction into the blockchain's mempool.
func (req SubmitTransaction) Handle(bc *chain.Blockchain) error {
	return bc.AddToMempool(req.Tx)
}
