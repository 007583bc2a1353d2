package payload

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// CommitmentTag seeds the BIP340 tagged hash over the payload bytes.
const CommitmentTag = "segop:commitment"

// CommitmentPrefix precedes the commitment hash in the OP_RETURN blob.
const CommitmentPrefix = "P2SOP"

// Commitment returns TaggedHash("segop:commitment", payload).
func Commitment(payload []byte) chainhash.Hash {
	return *chainhash.TaggedHash([]byte(CommitmentTag), payload)
}

// CommitmentBlob returns "P2SOP" || Commitment(payload), the data pushed by
// the commitment output script.
func CommitmentBlob(payload []byte) []byte {
	h := Commitment(payload)
	blob := make([]byte, 0, len(CommitmentPrefix)+chainhash.HashSize)
	blob = append(blob, CommitmentPrefix...)

	return append(blob, h[:]...)
}
