package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// CommitStore wraps the persistent store of the chain. Transactions are
// never written to it directly. DeliverTx writes into a deliver cache that
// is flushed on Commit, CheckTx writes into a check cache that is thrown
// away on Commit, and queries read a fresh cache of the committed state.
type CommitStore struct {
	committed barter.CommitKVStore
	deliver   barter.KVCacheWrap
	check     barter.KVCacheWrap
}

// NewCommitStore loads the latest version of store. It panics if the
// store cannot be loaded, as there is nothing the node can do without it.
func NewCommitStore(store barter.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "load latest version"))
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and the hash of the last commit.
func (cs *CommitStore) CommitInfo() (barter.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists all changes delivered since the last commit and returns
// the new version. Pending check state is dropped.
func (cs *CommitStore) Commit() (barter.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return barter.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore is the store CheckTx must use.
func (cs *CommitStore) CheckStore() barter.CacheableKVStore {
	return cs.check
}

// DeliverStore is the store DeliverTx, InitChain and the block hooks must
// use.
func (cs *CommitStore) DeliverStore() barter.CacheableKVStore {
	return cs.deliver
}

// QueryStore returns a view of the committed state. Any write to it is
// lost, the caller must Discard it when done.
func (cs *CommitStore) QueryStore() barter.KVCacheWrap {
	return cs.committed.CacheWrap()
}

// Internal keys of the application. They never collide with an orm bucket
// name as those cannot contain a colon.
const chainIDKey = "_bt:chainID"

// loadChainID returns the chain id saved at genesis, or an empty string on
// a chain that was not initialized yet.
func loadChainID(kv barter.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID saves the chain id. It can be done only once.
func saveChainID(kv barter.KVStore, chainID string) error {
	if !barter.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch current, err := loadChainID(kv); {
	case err != nil:
		return err
	case current != "":
		return errors.Wrapf(errors.ErrUnauthorized, "chain id already set to %q", current)
	}
	if err := kv.Set([]byte(chainIDKey), []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
