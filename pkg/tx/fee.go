package tx

import "github.com/ledgerchain/ledger/pkg/crypto"

// EstimateTxFee returns an estimated fee for a transaction with the given
// number of inputs and outputs at the given fee rate (base units per byte
// of SigningBytes).
func EstimateTxFee(numInputs, numOutputs int, feeRate uint64) uint64 {
	const overhead = 4 + 4 // input count + output count
	const perInput = 32    // PrevOutputHash
	const perOutput = 8 + UniqueIDSize + crypto.PublicKeySize

	size := overhead + perInput*numInputs + perOutput*numOutputs
	return uint64(size) * feeRate
}

// RequiredFee returns the exact fee for a fully built transaction at the
// given fee rate (base units per byte of SigningBytes).
func RequiredFee(transaction *Transaction, feeRate uint64) uint64 {
	return uint64(len(transaction.SigningBytes())) * feeRate
}
