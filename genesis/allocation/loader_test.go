package allocation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/network"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

const one = "0x0000000000000000000000000000000000000000000000000000000000000001"

func TestLoadEqualized(t *testing.T) {
	require := require.New(t)

	l := Loader{
		Path:             filepath.Join("testdata", "equalize.json"),
		Equalize:         true,
		EqualizedBalance: num.NewBalance(1000),
	}
	alloc, err := l.Load()
	require.NoError(err)

	id, err := inter.HexToAccountID(one)
	require.NoError(err)

	require.Equal([]inter.AllocationEntry{{Account: id, Balance: num.NewBalance(1000)}}, alloc.Balances)
	require.Equal([]inter.VestingEntry{{Account: id, Start: 100, Duration: 200, Locked: num.NewBalance(1000)}}, alloc.Vesting)
	require.Empty(alloc.Validators)
}

func TestLoadNotEqualized(t *testing.T) {
	require := require.New(t)

	alloc, err := Loader{Path: filepath.Join("testdata", "equalize.json")}.Load()
	require.NoError(err)
	require.Equal("500", alloc.Balances[0].Balance.String())
	// the locked amount is the fourth field, not the start block
	require.Equal("500", alloc.Vesting[0].Locked.String())
	require.Equal(inter.BlockNumber(100), alloc.Vesting[0].Start)
}

func TestLoadEqualizedDefaultAmount(t *testing.T) {
	alloc, err := Loader{Path: filepath.Join("testdata", "equalize.json"), Equalize: true}.Load()
	require.NoError(t, err)
	require.Equal(t, 0, alloc.Balances[0].Balance.Cmp(network.Dollars(1000)))
	require.Equal(t, 0, alloc.Vesting[0].Locked.Cmp(network.Dollars(1000)))
}

func TestLoadLockdrop(t *testing.T) {
	require := require.New(t)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	alloc, err := Loader{Path: filepath.Join("testdata", "lockdrop_allocations.json"), Log: logger}.Load()
	require.NoError(err)
	require.Len(alloc.Balances, 9)
	require.Len(alloc.Vesting, 2)
	require.Len(alloc.Validators, 2)

	v := alloc.Validators[0]
	require.Equal("0x4dd13d3074ad7c04c3af66bc7e94d6f6543282f193846aa970cd60094b24a80c", v.Stash.Hex())
	require.NotEqual(v.Stash, v.Controller)
	require.NoError(v.Keys.Validate())
	require.Equal(0, v.Stake.Cmp(network.Dollars(250_000)))

	require.Equal(inter.BlockNumber(864000), alloc.Vesting[0].Start)
	require.Equal(inter.BlockNumber(2592000), alloc.Vesting[0].Duration)

	require.Len(hook.Entries, 1)
	require.Equal("Loaded allocation", hook.LastEntry().Message)
	require.Equal(9, hook.LastEntry().Data["balances"])
}

func TestLoadMissingFile(t *testing.T) {
	require := require.New(t)

	alloc, err := Loader{Path: filepath.Join("testdata", "does-not-exist.json")}.Load()
	require.Nil(alloc)
	require.ErrorIs(err, genesis.ErrAllocationIO)
	require.ErrorIs(err, genesis.ErrAllocationFileNotFound)
	require.Contains(err.Error(), "does-not-exist.json")
}

func TestLoadDefaultPath(t *testing.T) {
	require.Equal(t, DefaultPath, Loader{}.path())
	require.Equal(t, "x.json", Loader{Path: "x.json"}.path())
}

func TestLoadSyntaxErrorPosition(t *testing.T) {
	require := require.New(t)

	_, err := Loader{Path: filepath.Join("testdata", "malformed.json")}.Load()
	require.ErrorIs(err, genesis.ErrAllocationDecode)
	require.ErrorIs(err, genesis.ErrAllocationParse)

	var gerr *genesis.Error
	require.True(errors.As(err, &gerr))
	require.Equal(filepath.Join("testdata", "malformed.json")+":4:3", gerr.Record)
}

func TestDecodeErrors(t *testing.T) {
	short := "0x" + strings.Repeat("00", 31)

	tests := []struct {
		name   string
		doc    string
		reason error
		record string
	}{
		{
			name:   "not an object",
			doc:    `[]`,
			reason: genesis.ErrAllocationParse,
			record: "<input>:1:",
		},
		{
			name:   "missing balances",
			doc:    `{"vesting": []}`,
			reason: genesis.ErrAllocationParse,
			record: "<input>",
		},
		{
			name:   "missing vesting",
			doc:    `{"balances": []}`,
			reason: genesis.ErrAllocationParse,
			record: "<input>",
		},
		{
			name:   "wrong balances type",
			doc:    `{"balances": {"a": 1}, "vesting": []}`,
			reason: genesis.ErrAllocationParse,
			record: "<input>:1:",
		},
		{
			name:   "short key",
			doc:    `{"balances": [["` + short + `", "1"]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0][0]",
		},
		{
			name:   "key not a string",
			doc:    `{"balances": [[1, "1"]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0][0]",
		},
		{
			name:   "bad decimal",
			doc:    `{"balances": [["` + one + `", "12a"]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0][1]",
		},
		{
			name:   "balance overflow",
			doc:    `{"balances": [["` + one + `", "340282366920938463463374607431768211456"]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0][1]",
		},
		{
			name:   "balance as number",
			doc:    `{"balances": [["` + one + `", 5]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0][1]",
		},
		{
			name:   "balance arity",
			doc:    `{"balances": [["` + one + `"]], "vesting": []}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "balances[0]",
		},
		{
			name:   "block out of range",
			doc:    `{"balances": [], "vesting": [["` + one + `", "4294967296", "1", "1"]]}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "vesting[0][1]",
		},
		{
			name:   "negative duration",
			doc:    `{"balances": [], "vesting": [["` + one + `", 1, -5, "1"]]}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "vesting[0][2]",
		},
		{
			name:   "fractional block",
			doc:    `{"balances": [], "vesting": [["` + one + `", 1.5, 5, "1"]]}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "vesting[0][1]",
		},
		{
			name:   "session keys too short",
			doc:    `{"balances": [], "vesting": [], "validators": [["` + one + `", "` + one + `", "0x0102", "1"]]}`,
			reason: genesis.ErrAllocationFieldDecode,
			record: "validators[0][2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := Loader{}.Decode(strings.NewReader(tt.doc))
			require.Nil(t, alloc)
			require.ErrorIs(t, err, genesis.ErrAllocationDecode)
			require.ErrorIs(t, err, tt.reason)

			var gerr *genesis.Error
			require.True(t, errors.As(err, &gerr))
			require.Contains(t, gerr.Record, tt.record)
		})
	}
}

func TestDecodeBlockNumbersAsNumbers(t *testing.T) {
	require := require.New(t)

	doc := `{"balances": [["` + one + `", "10"]], "vesting": [["` + one + `", 100, "200", "5"]]}`
	alloc, err := Loader{}.Decode(strings.NewReader(doc))
	require.NoError(err)
	require.Equal(inter.BlockNumber(100), alloc.Vesting[0].Start)
	require.Equal(inter.BlockNumber(200), alloc.Vesting[0].Duration)
	require.Equal("5", alloc.Vesting[0].Locked.String())
}

func TestDecodeKeepsOrderAndDuplicates(t *testing.T) {
	require := require.New(t)

	two := "0x" + strings.Repeat("00", 31) + "02"
	doc := `{"balances": [["` + two + `", "1"], ["` + one + `", "2"], ["` + two + `", "3"]], "vesting": []}`
	alloc, err := Loader{}.Decode(strings.NewReader(doc))
	require.NoError(err)
	require.Len(alloc.Balances, 3)
	require.Equal(two, alloc.Balances[0].Account.Hex())
	require.Equal(one, alloc.Balances[1].Account.Hex())
	require.Equal("3", alloc.Balances[2].Balance.String())
}
