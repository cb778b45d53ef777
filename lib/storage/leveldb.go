package storage

import (
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
)

// LevelDBCore is satisfied by both `*leveldb.DB` and `*leveldb.Transaction`.
type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.StorageCoreError.Clone().SetData("error", err.Error())
}

func NewStorage(config *Config) (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		db, err = leveldb.OpenFile(config.Path, nil)
	case "memory":
		db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	default:
		return errors.InvalidStorageConfig.Clone().SetData("scheme", config.Scheme)
	}
	if err != nil {
		return setLevelDBCoreError(err)
	}

	st.DB = db
	st.Core = db

	log.Debug("storage opened", "config", config.String())

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

// OpenTransaction opens a new leveldb transaction. Only one transaction can be
// opened at a time; the others writes are blocked until it is committed or
// discarded.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, errors.StorageCoreError.Clone().SetData("error", "already in transaction")
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageCoreError.Clone().SetData("error", "not in transaction")
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageCoreError.Clone().SetData("error", "not in transaction")
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) ([]byte, error) {
	b, err := st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	} else if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return b, nil
}

func (st *LevelDBBackend) Get(k string, i interface{}) error {
	b, err := st.GetRaw(k)
	if err != nil {
		return err
	}

	return setLevelDBCoreError(json.Unmarshal(b, i))
}

func encodeValue(v interface{}) ([]byte, error) {
	var encoded []byte
	var err error
	if serializable, ok := v.(common.Serializable); ok {
		encoded, err = serializable.Serialize()
	} else {
		encoded, err = common.EncodeJSONValue(v)
	}

	return encoded, setLevelDBCoreError(err)
}

// New stores a new record; it fails when the key already exists.
func (st *LevelDBBackend) New(k string, v interface{}) error {
	if exists, err := st.Has(k); err != nil {
		return err
	} else if exists {
		return errors.StorageRecordAlreadyExists.Clone().SetData("key", k)
	}

	return st.Put(k, v)
}

// Set updates the existing record; it fails when the key does not exist.
func (st *LevelDBBackend) Set(k string, v interface{}) error {
	if exists, err := st.Has(k); err != nil {
		return err
	} else if !exists {
		return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	}

	return st.Put(k, v)
}

// Put stores the record whether the key exists or not.
func (st *LevelDBBackend) Put(k string, v interface{}) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return err
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

// Puts stores all the items in one batch.
func (st *LevelDBBackend) Puts(vs ...Item) error {
	batch := new(leveldb.Batch)
	for _, v := range vs {
		encoded, err := encodeValue(v.Value)
		if err != nil {
			return err
		}

		batch.Put(st.makeKey(v.Key), encoded)
	}

	return setLevelDBCoreError(st.Core.Write(batch, nil))
}

func (st *LevelDBBackend) Remove(k string) error {
	if exists, err := st.Has(k); err != nil {
		return err
	} else if !exists {
		return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	}

	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

// Removes deletes the keys in one batch; missing keys are ignored.
func (st *LevelDBBackend) Removes(ks ...string) error {
	batch := new(leveldb.Batch)
	for _, k := range ks {
		batch.Delete(st.makeKey(k))
	}

	return setLevelDBCoreError(st.Core.Write(batch, nil))
}

// GetIterator returns the iterator function of the keys under `prefix` and the
// release function. The iterator function returns false when there are no
// more items or the limit is reached.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse bool
	var cursor []byte
	var limit uint64
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var first func() bool
	var next func() bool
	switch {
	case cursor != nil:
		first = func() bool { return iter.Seek(cursor) }
		if reverse {
			first = func() bool {
				// the cursor itself or the key just before
				if !iter.Seek(cursor) {
					return iter.Last()
				}
				if string(iter.Key()) != string(cursor) {
					return iter.Prev()
				}
				return true
			}
		}
	case reverse:
		first = iter.Last
	default:
		first = iter.First
	}

	next = iter.Next
	if reverse {
		next = iter.Prev
	}

	var n uint64
	var started, released bool
	release := func() {
		if !released {
			iter.Release()
			released = true
		}
	}

	return func() (IterItem, bool) {
		if released {
			return IterItem{}, false
		}
		if limit > 0 && n >= limit {
			release()
			return IterItem{}, false
		}

		var ok bool
		if !started {
			started = true
			ok = first()
		} else {
			ok = next()
		}

		if !ok {
			release()
			return IterItem{}, false
		}

		n++

		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)
		return IterItem{N: n, Key: key, Value: value}, true
	}, release
}

type WalkFunc func(key, value []byte) (bool, error)

// Walk calls `walkFunc` for every record under `prefix` until it returns
// false or an error.
func (st *LevelDBBackend) Walk(prefix string, option ListOptions, walkFunc WalkFunc) error {
	iterFunc, closeFunc := st.GetIterator(prefix, option)
	defer closeFunc()

	for {
		item, ok := iterFunc()
		if !ok {
			return nil
		}

		if next, err := walkFunc(item.Key, item.Value); err != nil {
			return err
		} else if !next {
			return nil
		}
	}
}

// Keys returns every key under `prefix`.
func (st *LevelDBBackend) Keys(prefix string) ([]string, error) {
	var keys []string
	err := st.Walk(prefix, nil, func(key, _ []byte) (bool, error) {
		keys = append(keys, string(key))
		return true, nil
	})

	return keys, err
}
