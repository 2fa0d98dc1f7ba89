package inter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-edgeware-genesis/inter/validatorpk"
)

func TestHexToAccountID(t *testing.T) {
	full := "0x" + strings.Repeat("00", 31) + "01"

	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"prefixed", full, true},
		{"bare", full[2:], true},
		{"upper prefix", "0X" + full[2:], true},
		{"short", "0x" + strings.Repeat("00", 31), false},
		{"long", full + "00", false},
		{"odd length", full[:len(full)-1], false},
		{"not hex", "0x" + strings.Repeat("zz", 32), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := HexToAccountID(tt.in)
			if !tt.valid {
				require.ErrorIs(t, err, ErrInvalidAccountID)
				return
			}
			require.NoError(t, err)
			require.Equal(t, byte(1), id[31])
			require.Equal(t, full, id.Hex())
		})
	}
}

func TestAccountIDText(t *testing.T) {
	require := require.New(t)

	var id AccountID
	id[0] = 0xab
	data, err := json.Marshal(map[string]AccountID{"who": id})
	require.NoError(err)
	require.Equal(`{"who":"0xab`+strings.Repeat("00", 31)+`"}`, string(data))

	var out map[string]AccountID
	require.NoError(json.Unmarshal(data, &out))
	require.Equal(id, out["who"])
	require.False(out["who"].IsZero())
	require.True(AccountID{}.IsZero())
	require.True(AccountID{}.Less(id))
}

func TestParseBlockNumber(t *testing.T) {
	tests := []struct {
		in    string
		want  BlockNumber
		valid bool
	}{
		{"0", 0, true},
		{"864000", 864000, true},
		{"4294967295", MaxBlockNumber, true},
		{"4294967296", 0, false},
		{"-1", 0, false},
		{"0x10", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBlockNumber(tt.in)
			if !tt.valid {
				require.ErrorIs(t, err, ErrInvalidBlockNumber)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.in, FormatBlockNumber(got))
		})
	}
}

func TestSessionKeysFromBytes(t *testing.T) {
	require := require.New(t)

	blob := common.FromHex("0x03b61d2dafbd0eaee322d7e118b1b039042c444deafc06cfddacb09c39a6b6eca7f989d5d66611c60b7c7e1c35e63e2438b6499c356bee8d3ae0a508371d3cbe11dacc403bb2e04dfda4da43c19d030ab6d1970e53f0f0e10ffb362ab785b821ff")
	require.Len(blob, SessionKeysLength)

	keys, err := SessionKeysFromBytes(blob)
	require.NoError(err)
	require.Equal(validatorpk.Types.Secp256k1, keys.Consensus.Type)
	require.Equal(validatorpk.Types.Ed25519, keys.Finality.Type)
	require.Equal(validatorpk.Types.Ed25519, keys.Online.Type)
	require.Equal(blob, keys.Bytes())

	_, err = SessionKeysFromBytes(blob[:96])
	require.ErrorIs(err, ErrInvalidSessionKeys)

	bad := common.CopyBytes(blob)
	bad[0] = 0x07
	_, err = SessionKeysFromBytes(bad)
	require.ErrorIs(err, ErrInvalidSessionKeys)
}

func TestPerbill(t *testing.T) {
	require.Equal(t, Perbill(100_000_000), PerbillFromPercent(10))
	require.Equal(t, Perbill(0), PerbillFromPercent(0))
	require.Equal(t, PerbillOne, PerbillFromPercent(250))
}

func TestStakerStatusText(t *testing.T) {
	require := require.New(t)

	for _, s := range []StakerStatus{StakerIdle, StakerValidator, StakerNominator} {
		text, err := s.MarshalText()
		require.NoError(err)
		var back StakerStatus
		require.NoError(back.UnmarshalText(text))
		require.Equal(s, back)
	}

	_, err := StakerStatus(9).MarshalText()
	require.Error(err)
	var s StakerStatus
	require.Error(s.UnmarshalText([]byte("chill")))
}
