// Package index records which formulas occur in which documents and which
// documents have already been processed. It is backed by badger.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/KWARC/llamapun/internal/c14n"
)

// Key prefixes. Formula occurrence keys are frm/<digest>/<doc>/<address>,
// so a prefix scan over one digest lists its occurrences by document.
const (
	formulaPrefix   = "frm/"
	canonicalPrefix = "frc/"
	documentPrefix  = "doc/"
)

// ErrClosed is returned by operations on a closed index.
var ErrClosed = errors.New("index: closed")

// FormulaEntry is one occurrence of a canonical formula.
type FormulaEntry struct {
	Digest  c14n.Digest `json:"digest"`
	DocID   string      `json:"doc_id"`
	Address string      `json:"address"`
	Text    string      `json:"text,omitempty"`
}

// Index wraps a badger database.
type Index struct {
	db  *badger.DB
	log *slog.Logger
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	log *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, args ...any)   { l.log.Error(fmt.Sprintf(msg, args...)) }
func (l *badgerLogger) Warningf(msg string, args ...any) { l.log.Warn(fmt.Sprintf(msg, args...)) }
func (l *badgerLogger) Infof(msg string, args ...any)    { l.log.Debug(fmt.Sprintf(msg, args...)) }
func (l *badgerLogger) Debugf(msg string, args ...any)   { l.log.Debug(fmt.Sprintf(msg, args...)) }

// Open opens the index stored in dir, creating the directory if needed.
// An empty dir opens an in-memory index.
func Open(dir string, log *slog.Logger) (*Index, error) {
	if log == nil {
		log = slog.Default()
	}
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &badgerLogger{log: log.With("component", "index")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return &Index{db: db, log: log}, nil
}

// OpenInMemory opens a throwaway index.
func OpenInMemory() (*Index, error) {
	return Open("", nil)
}

// Close flushes and closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

func (x *Index) view(fn func(txn *badger.Txn) error) error {
	if x.db.IsClosed() {
		return ErrClosed
	}
	return x.db.View(fn)
}

func (x *Index) update(fn func(txn *badger.Txn) error) error {
	if x.db.IsClosed() {
		return ErrClosed
	}
	return x.db.Update(fn)
}

func formulaKey(e FormulaEntry) []byte {
	return []byte(formulaPrefix + e.Digest.String() + "/" + e.DocID + "/" + e.Address)
}

func formulaScan(d c14n.Digest) []byte {
	return []byte(formulaPrefix + d.String() + "/")
}

// PutFormula records an occurrence. Recording the same occurrence twice
// is a no-op. The canonical form is stored once per digest.
func (x *Index) PutFormula(e FormulaEntry, canonical []byte) error {
	if e.Digest.IsZero() || e.DocID == "" {
		return fmt.Errorf("index: formula entry needs a digest and a document id")
	}
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal formula entry: %w", err)
	}
	return x.update(func(txn *badger.Txn) error {
		if err := txn.Set(formulaKey(e), val); err != nil {
			return err
		}
		ck := []byte(canonicalPrefix + e.Digest.String())
		if _, err := txn.Get(ck); errors.Is(err, badger.ErrKeyNotFound) {
			return txn.Set(ck, canonical)
		} else if err != nil {
			return err
		}
		return nil
	})
}

// Formulas lists up to limit occurrences of d, ordered by document id.
// A limit of zero or less lists all of them.
func (x *Index) Formulas(d c14n.Digest, limit int) ([]FormulaEntry, error) {
	var out []FormulaEntry
	err := x.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = formulaScan(d)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var e FormulaEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// CountFormula returns the number of recorded occurrences of d.
func (x *Index) CountFormula(d c14n.Digest) (int, error) {
	return x.count(formulaScan(d))
}

// DistinctFormulas returns the number of distinct digests seen.
func (x *Index) DistinctFormulas() (int, error) {
	return x.count([]byte(canonicalPrefix))
}

func (x *Index) count(prefix []byte) (int, error) {
	n := 0
	err := x.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Canonical returns the canonical form stored for d.
func (x *Index) Canonical(d c14n.Digest) ([]byte, bool, error) {
	var out []byte
	err := x.view(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(canonicalPrefix + d.String()))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// MarkDocument remembers that the content with the given hash was
// processed as docID. If the hash was marked before it returns the earlier
// document id and true, and leaves the mark unchanged.
func (x *Index) MarkDocument(contentHash, docID string) (string, bool, error) {
	var (
		prev string
		seen bool
	)
	key := []byte(documentPrefix + contentHash)
	err := x.update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			prev, seen = string(v), true
			return nil
		case errors.Is(err, badger.ErrKeyNotFound):
			return txn.Set(key, []byte(docID))
		default:
			return err
		}
	})
	return prev, seen, err
}

// SeenDocument reports the document id recorded for contentHash.
func (x *Index) SeenDocument(contentHash string) (string, bool, error) {
	var id string
	err := x.view(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(documentPrefix + contentHash))
		if err != nil {
			return err
		}
		v, err := item.ValueCopy(nil)
		id = string(v)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// ForgetDocument removes the processed mark for contentHash, so the same
// content can be processed again.
func (x *Index) ForgetDocument(contentHash string) error {
	return x.update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(documentPrefix + contentHash))
	})
}
