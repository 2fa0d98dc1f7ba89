package allocation

import (
	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Source is one independent sequence of credits, such as the community
// allocation or the validator stash credits.
type Source struct {
	Name    string
	Entries []inter.AllocationEntry
}

// Uniform credits amount to every id.
func Uniform(name string, ids []inter.AccountID, amount num.Balance) Source {
	entries := make([]inter.AllocationEntry, len(ids))
	for i, id := range ids {
		entries[i] = inter.AllocationEntry{Account: id, Balance: amount}
	}
	return Source{Name: name, Entries: entries}
}

// Ledger is the merged balances table and account index.
//
// Entries naming the same account are kept as separate records; the
// account's effective balance is their sum. The index keeps accounts in source
// order with duplicates, since registering an account twice is a no-op.
type Ledger struct {
	Balances []inter.AllocationEntry
	Index    []inter.AccountID
	Total    num.Balance

	indexed map[inter.AccountID]struct{}
}

// Merge concatenates sources in order. It fails if the total overflows.
func Merge(sources ...Source) (*Ledger, error) {
	l := &Ledger{
		indexed: make(map[inter.AccountID]struct{}),
	}
	for _, src := range sources {
		for _, e := range src.Entries {
			total, err := l.Total.Add(e.Balance)
			if err != nil {
				return nil, genesis.NewError(genesis.ErrInvariantViolation, genesis.ErrIssuanceOverflow,
					src.Name+" "+e.Account.Hex(), err)
			}
			l.Total = total
			l.Balances = append(l.Balances, e)
			l.Index = append(l.Index, e.Account)
			l.indexed[e.Account] = struct{}{}
		}
	}
	return l, nil
}

// Effective sums the entries per account.
func (l *Ledger) Effective() (map[inter.AccountID]num.Balance, error) {
	return genesis.EffectiveBalances(l.Balances)
}

// Indexed reports whether id is in the index.
func (l *Ledger) Indexed(id inter.AccountID) bool {
	_, ok := l.indexed[id]
	return ok
}

// EnsureIndexed appends the ids not yet in the index, in argument order.
func (l *Ledger) EnsureIndexed(ids ...inter.AccountID) {
	if l.indexed == nil {
		l.indexed = make(map[inter.AccountID]struct{}, len(l.Index))
		for _, id := range l.Index {
			l.indexed[id] = struct{}{}
		}
	}
	for _, id := range ids {
		if _, ok := l.indexed[id]; ok {
			continue
		}
		l.Index = append(l.Index, id)
		l.indexed[id] = struct{}{}
	}
}
