// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/lib/common"
	"github.com/tidwall/btree"
)

// activationDelay is the number of epochs between the announcement of an
// authority set and the epoch it produces blocks in.
const activationDelay = 2

type epochDescriptor struct {
	descriptor types.NextEpochDescriptor
	hash       common.Hash
}

// EpochDescriptors stores the next epoch descriptors imported from block headers,
// keyed by the epoch that announced them, and the authorities disabled in each epoch.
// It is safe for concurrent use.
type EpochDescriptors struct {
	codec *types.DigestCodec

	mutex     sync.RWMutex
	genesis   types.NextEpochDescriptor
	announced btree.Map[uint64, epochDescriptor]
	disabled  map[uint64]map[types.AuthorityIndex]struct{}
}

// NewEpochDescriptors returns a store whose first two epochs use the genesis authorities.
func NewEpochDescriptors(codec *types.DigestCodec, genesis types.NextEpochDescriptor) (
	*EpochDescriptors, error) {
	err := types.ValidateNextEpochDescriptor(codec.Config(), genesis)
	if err != nil {
		return nil, fmt.Errorf("genesis descriptor: %w", err)
	}

	return &EpochDescriptors{
		codec:    codec,
		genesis:  genesis.Clone(),
		disabled: make(map[uint64]map[types.AuthorityIndex]struct{}),
	}, nil
}

// Import records a copy of the descriptor announced during epoch. Importing the same
// descriptor again is a no-op; importing a different one fails with
// ErrConflictingDescriptor.
func (e *EpochDescriptors) Import(epoch uint64, descriptor types.NextEpochDescriptor) error {
	err := types.ValidateNextEpochDescriptor(e.codec.Config(), descriptor)
	if err != nil {
		return err
	}

	enc, err := e.codec.EncodeNextEpochDescriptor(descriptor)
	if err != nil {
		return err
	}
	hash, err := common.Blake2bHash(enc)
	if err != nil {
		return fmt.Errorf("hashing next epoch descriptor: %w", err)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	existing, ok := e.announced.Get(epoch)
	if ok {
		if existing.hash != hash {
			return fmt.Errorf("%w: epoch %d already announced %s, got %s",
				ErrConflictingDescriptor, epoch, existing.hash.Short(), hash.Short())
		}
		return nil
	}

	e.announced.Set(epoch, epochDescriptor{
		descriptor: descriptor.Clone(),
		hash:       hash,
	})
	logger.Debugf("imported next epoch descriptor %s announced in epoch %d with %d authorities",
		hash.Short(), epoch, len(descriptor.Authorities))
	return nil
}

// Active returns a copy of the descriptor of the authorities producing blocks
// in epoch, which is the one announced two epochs earlier.
func (e *EpochDescriptors) Active(epoch uint64) (types.NextEpochDescriptor, error) {
	if epoch < activationDelay {
		return e.genesis.Clone(), nil
	}

	e.mutex.RLock()
	defer e.mutex.RUnlock()

	announced, ok := e.announced.Get(epoch - activationDelay)
	if !ok {
		return types.NextEpochDescriptor{}, fmt.Errorf("%w: %d (announced in epoch %d)",
			ErrNoDescriptor, epoch, epoch-activationDelay)
	}
	return announced.descriptor.Clone(), nil
}

// Disable marks the authority at index disabled for the rest of epoch.
func (e *EpochDescriptors) Disable(epoch uint64, index types.AuthorityIndex) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	disabled, ok := e.disabled[epoch]
	if !ok {
		disabled = make(map[types.AuthorityIndex]struct{})
		e.disabled[epoch] = disabled
	}
	disabled[index] = struct{}{}
}

// IsDisabled returns true if the authority at index is disabled in epoch.
func (e *EpochDescriptors) IsDisabled(epoch uint64, index types.AuthorityIndex) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	_, disabled := e.disabled[epoch][index]
	return disabled
}

// Prune removes the data of epochs before the given epoch.
// Descriptors still active in epoch or later are kept.
func (e *EpochDescriptors) Prune(epoch uint64) (pruned int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	for {
		announcedIn, _, ok := e.announced.Min()
		if !ok || announcedIn+activationDelay >= epoch {
			break
		}
		e.announced.Delete(announcedIn)
		pruned++
	}

	for disabledIn := range e.disabled {
		if disabledIn < epoch {
			delete(e.disabled, disabledIn)
		}
	}
	return pruned
}
