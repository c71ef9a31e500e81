// Package storage persists confirmed blocks to disk as an append-only,
// height-keyed log, so a chain can be driven against a large history
// without holding every block in memory at once.
package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/zeebo/blake3"

	"github.com/ledgerchain/ledger/pkg/block"
	"github.com/ledgerchain/ledger/pkg/persist"
)

const checksumSize = 32

// BlockStore is an append-only log of encoded blocks keyed by height,
// backed by Badger. Each record is a blake3 checksum of the encoded block
// followed by the encoding itself, letting Load detect on-disk corruption
// independent of the consensus hash.
type BlockStore struct {
	db *badger.DB
}

// OpenBlockStore opens (creating if necessary) a block store at path.
func OpenBlockStore(path string) (*BlockStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("block store at %s is locked by another process: %w", path, err)
		}
		return nil, fmt.Errorf("open block store at %s: %w", path, err)
	}
	return &BlockStore{db: db}, nil
}

func heightKey(height uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, height)
	return buf
}

// Append writes b as the block at the given height, overwriting any block
// previously stored at that height.
func (s *BlockStore) Append(height uint64, b *block.Block) error {
	data, err := persist.EncodeBlock(b)
	if err != nil {
		return fmt.Errorf("encode block at height %d: %w", height, err)
	}
	sum := blake3.Sum256(data)
	record := make([]byte, 0, checksumSize+len(data))
	record = append(record, sum[:]...)
	record = append(record, data...)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(heightKey(height), record)
	})
	if err != nil {
		return fmt.Errorf("append block at height %d: %w", height, err)
	}
	return nil
}

// Load reads and decodes the block at the given height, verifying its
// checksum first.
func (s *BlockStore) Load(height uint64) (*block.Block, error) {
	var record []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(heightKey(height))
		if err != nil {
			return err
		}
		record, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("no block stored at height %d", height)
	}
	if err != nil {
		return nil, fmt.Errorf("load block at height %d: %w", height, err)
	}
	if len(record) < checksumSize {
		return nil, fmt.Errorf("block record at height %d is truncated", height)
	}

	sum, data := record[:checksumSize], record[checksumSize:]
	got := blake3.Sum256(data)
	if !bytes.Equal(got[:], sum) {
		return nil, fmt.Errorf("block record at height %d failed checksum verification", height)
	}
	return persist.DecodeBlock(data)
}

// Height returns the highest height with a stored block, and whether the
// store holds any blocks at all.
func (s *BlockStore) Height() (height uint64, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if !it.Valid() {
			return nil
		}
		key := it.Item().KeyCopy(nil)
		if len(key) != 8 {
			return fmt.Errorf("unexpected key length %d in block store", len(key))
		}
		height = binary.BigEndian.Uint64(key)
		ok = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return height, ok, nil
}

// Close releases the store's underlying resources.
func (s *BlockStore) Close() error {
	return s.db.Close()
}
