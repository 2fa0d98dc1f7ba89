// Package allocation loads the participant allocation file and merges
// independent allocation sources into one genesis ledger.
package allocation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/network"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// DefaultPath is the allocation file name, resolved against the working directory.
const DefaultPath = "lockdrop_allocations.json"

// DefaultEqualizedBalance is the uniform amount used when equalizing.
var DefaultEqualizedBalance = network.Dollars(1000)

// Allocation is the typed content of an allocation file, in file order.
type Allocation struct {
	Balances   []inter.AllocationEntry
	Vesting    []inter.VestingEntry
	Validators []inter.ValidatorRecord
}

// Loader reads allocation files.
type Loader struct {
	// Path of the file. Empty means DefaultPath.
	Path string
	// Equalize replaces every balance and vesting amount with EqualizedBalance,
	// keeping vesting start and duration.
	Equalize bool
	// EqualizedBalance defaults to DefaultEqualizedBalance when zero.
	EqualizedBalance num.Balance
	// Log defaults to the standard logrus logger.
	Log logrus.FieldLogger
}

type fileFormat struct {
	Balances   *[][]json.RawMessage `json:"balances"`
	Vesting    *[][]json.RawMessage `json:"vesting"`
	Validators [][]json.RawMessage  `json:"validators"`
}

func (l Loader) path() string {
	if l.Path == "" {
		return DefaultPath
	}
	return l.Path
}

func (l Loader) log() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

func (l Loader) equalized() num.Balance {
	if l.EqualizedBalance.IsZero() {
		return DefaultEqualizedBalance
	}
	return l.EqualizedBalance
}

// Load reads and decodes the allocation file.
// A missing file yields genesis.ErrAllocationFileNotFound under genesis.ErrAllocationIO.
func (l Loader) Load() (*Allocation, error) {
	path := l.path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, genesis.NewError(genesis.ErrAllocationIO, genesis.ErrAllocationFileNotFound, path, err)
		}
		return nil, genesis.NewError(genesis.ErrAllocationIO, nil, path, err)
	}
	return l.decode(path, data)
}

// Decode reads an allocation document from r.
func (l Loader) Decode(r io.Reader) (*Allocation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, genesis.NewError(genesis.ErrAllocationIO, nil, "<input>", err)
	}
	return l.decode("<input>", data)
}

func (l Loader) decode(name string, data []byte) (*Allocation, error) {
	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, parseError(name, data, err)
	}
	if raw.Balances == nil {
		return nil, genesis.NewError(genesis.ErrAllocationDecode, genesis.ErrAllocationParse, name, fmt.Errorf("missing %q", "balances"))
	}
	if raw.Vesting == nil {
		return nil, genesis.NewError(genesis.ErrAllocationDecode, genesis.ErrAllocationParse, name, fmt.Errorf("missing %q", "vesting"))
	}

	var err error
	d := fieldDecoder{file: name}
	out := &Allocation{
		Balances:   make([]inter.AllocationEntry, 0, len(*raw.Balances)),
		Vesting:    make([]inter.VestingEntry, 0, len(*raw.Vesting)),
		Validators: make([]inter.ValidatorRecord, 0, len(raw.Validators)),
	}

	for i, rec := range *raw.Balances {
		d.section, d.row = "balances", i
		if err = d.arity(rec, 2); err != nil {
			return nil, err
		}
		var e inter.AllocationEntry
		if e.Account, err = d.account(rec, 0); err != nil {
			return nil, err
		}
		if e.Balance, err = d.balance(rec, 1); err != nil {
			return nil, err
		}
		if l.Equalize {
			e.Balance = l.equalized()
		}
		out.Balances = append(out.Balances, e)
	}

	for i, rec := range *raw.Vesting {
		d.section, d.row = "vesting", i
		if err = d.arity(rec, 4); err != nil {
			return nil, err
		}
		var e inter.VestingEntry
		if e.Account, err = d.account(rec, 0); err != nil {
			return nil, err
		}
		if e.Start, err = d.block(rec, 1); err != nil {
			return nil, err
		}
		if e.Duration, err = d.block(rec, 2); err != nil {
			return nil, err
		}
		if e.Locked, err = d.balance(rec, 3); err != nil {
			return nil, err
		}
		if l.Equalize {
			e.Locked = l.equalized()
		}
		out.Vesting = append(out.Vesting, e)
	}

	for i, rec := range raw.Validators {
		d.section, d.row = "validators", i
		if err = d.arity(rec, 4); err != nil {
			return nil, err
		}
		var v inter.ValidatorRecord
		if v.Stash, err = d.account(rec, 0); err != nil {
			return nil, err
		}
		if v.Controller, err = d.account(rec, 1); err != nil {
			return nil, err
		}
		if v.Keys, err = d.sessionKeys(rec, 2); err != nil {
			return nil, err
		}
		if v.Stake, err = d.balance(rec, 3); err != nil {
			return nil, err
		}
		out.Validators = append(out.Validators, v)
	}

	l.log().WithFields(logrus.Fields{
		"file":       name,
		"balances":   len(out.Balances),
		"vesting":    len(out.Vesting),
		"validators": len(out.Validators),
		"equalized":  l.Equalize,
	}).Debug("Loaded allocation")

	return out, nil
}

// fieldDecoder decodes tuple fields and names them in errors.
type fieldDecoder struct {
	file    string
	section string
	row     int
}

func (d fieldDecoder) record(col int) string {
	return fmt.Sprintf("%s: %s[%d][%d]", d.file, d.section, d.row, col)
}

func (d fieldDecoder) fail(col int, cause error) error {
	return genesis.NewError(genesis.ErrAllocationDecode, genesis.ErrAllocationFieldDecode, d.record(col), cause)
}

func (d fieldDecoder) arity(rec []json.RawMessage, want int) error {
	if len(rec) != want {
		return genesis.NewError(genesis.ErrAllocationDecode, genesis.ErrAllocationFieldDecode,
			fmt.Sprintf("%s: %s[%d]", d.file, d.section, d.row),
			fmt.Errorf("want %d fields, got %d", want, len(rec)))
	}
	return nil
}

func (d fieldDecoder) str(rec []json.RawMessage, col int) (string, error) {
	var s string
	if err := json.Unmarshal(rec[col], &s); err != nil {
		return "", d.fail(col, fmt.Errorf("want a string, got %s", rec[col]))
	}
	return s, nil
}

func (d fieldDecoder) account(rec []json.RawMessage, col int) (inter.AccountID, error) {
	s, err := d.str(rec, col)
	if err != nil {
		return inter.AccountID{}, err
	}
	id, err := inter.HexToAccountID(s)
	if err != nil {
		return inter.AccountID{}, d.fail(col, err)
	}
	return id, nil
}

func (d fieldDecoder) balance(rec []json.RawMessage, col int) (num.Balance, error) {
	s, err := d.str(rec, col)
	if err != nil {
		return num.Balance{}, err
	}
	b, err := num.ParseBalance(s)
	if err != nil {
		return num.Balance{}, d.fail(col, err)
	}
	return b, nil
}

// block accepts a JSON string or an integral JSON number.
func (d fieldDecoder) block(rec []json.RawMessage, col int) (inter.BlockNumber, error) {
	text := string(bytes.TrimSpace(rec[col]))
	if len(text) > 0 && text[0] == '"' {
		var s string
		if err := json.Unmarshal(rec[col], &s); err != nil {
			return 0, d.fail(col, err)
		}
		text = s
	}
	n, err := inter.ParseBlockNumber(text)
	if err != nil {
		return 0, d.fail(col, err)
	}
	return n, nil
}

func (d fieldDecoder) sessionKeys(rec []json.RawMessage, col int) (inter.SessionKeys, error) {
	s, err := d.str(rec, col)
	if err != nil {
		return inter.SessionKeys{}, err
	}
	if len(s) < 2 || (s[:2] != "0x" && s[:2] != "0X") {
		s = "0x" + s
	}
	blob, err := hexutil.Decode(s)
	if err != nil {
		return inter.SessionKeys{}, d.fail(col, err)
	}
	keys, err := inter.SessionKeysFromBytes(blob)
	if err != nil {
		return inter.SessionKeys{}, d.fail(col, err)
	}
	return keys, nil
}

// parseError reports a structural JSON error at its line and column.
func parseError(name string, data []byte, err error) error {
	var offset int64 = -1
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	}
	record := name
	if offset >= 0 {
		line, col := position(data, offset)
		record = name + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
	}
	return genesis.NewError(genesis.ErrAllocationDecode, genesis.ErrAllocationParse, record, err)
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	if col == 0 {
		col = 1
	}
	return line, col
}
