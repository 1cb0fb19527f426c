package storage

import (
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	Owner string `json:"owner" msgpack:"owner"`
	Limit uint64 `json:"limit" msgpack:"limit"`
}

func TestItem(t *testing.T) {
	codecs := map[string]Codec[config]{
		"json":    JSON[config]{},
		"msgpack": Msgpack[config]{},
	}
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			db := dbm.NewMemDB()
			item := NewItem("config", codec)

			_, err := item.Load(db)
			require.ErrorIs(t, err, ErrNotFound)
			_, ok, err := item.MayLoad(db)
			require.NoError(t, err)
			assert.False(t, ok)

			cfg := config{Owner: "alice", Limit: 7}
			require.NoError(t, item.Save(db, cfg))
			got, err := item.Load(db)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)

			got, err = item.Update(db, func(c config, found bool) (config, error) {
				assert.True(t, found)
				c.Limit++
				return c, nil
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(8), got.Limit)

			require.NoError(t, item.Remove(db))
			exists, err := item.Exists(db)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestItemCorruptValue(t *testing.T) {
	db := dbm.NewMemDB()
	require.NoError(t, db.Set([]byte("config"), []byte("{not json")))
	_, err := NewItem("config", JSON[config]{}).Load(db)
	require.ErrorIs(t, err, ErrCodec)
}

func TestMapRange(t *testing.T) {
	db := dbm.NewMemDB()
	counts := NewMap("counts", Uint64Key{}, JSON[uint64]{})
	// shares a prefix with "counts" but not its length-prefixed namespace
	other := NewMap("count", StringKey{}, JSON[uint64]{})

	for _, k := range []uint64{300, 2, 1 << 40, 17} {
		require.NoError(t, counts.Save(db, k, k*10))
	}
	require.NoError(t, other.Save(db, "s", 1))

	var keys []uint64
	require.NoError(t, counts.Range(db, func(k, v uint64) (bool, error) {
		assert.Equal(t, k*10, v)
		keys = append(keys, k)
		return true, nil
	}))
	assert.Equal(t, []uint64{2, 17, 300, 1 << 40}, keys)

	keys = nil
	require.NoError(t, counts.Range(db, func(k, _ uint64) (bool, error) {
		keys = append(keys, k)
		return len(keys) < 2, nil
	}))
	assert.Equal(t, []uint64{2, 17}, keys)

	ok, err := counts.Has(db, 17)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, counts.Remove(db, 17))
	_, err = counts.Load(db, 17)
	require.ErrorIs(t, err, ErrNotFound)

	v, err := other.Load(db, "s")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestMapBytesKey(t *testing.T) {
	db := dbm.NewMemDB()
	m := NewMap("raw", BytesKey{}, Msgpack[string]{})
	require.NoError(t, m.Save(db, []byte{0xFF, 0x01}, "b"))
	require.NoError(t, m.Save(db, []byte{0x00}, "a"))

	var values []string
	require.NoError(t, m.Range(db, func(_ []byte, v string) (bool, error) {
		values = append(values, v)
		return true, nil
	}))
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestReadOnly(t *testing.T) {
	db := dbm.NewMemDB()
	item := NewItem("k", JSON[string]{})
	require.NoError(t, item.Save(db, "v"))

	ro := ReadOnly(db)
	assert.Equal(t, ro, ReadOnly(ro))

	got, err := item.Load(ro)
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.ErrorIs(t, item.Save(ro, "w"), ErrReadOnly)
	require.ErrorIs(t, item.Remove(ro), ErrReadOnly)
	got, err = item.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestPrefixEnd(t *testing.T) {
	specs := map[string]struct {
		in, exp []byte
	}{
		"simple":   {in: []byte{0x01, 0x02}, exp: []byte{0x01, 0x03}},
		"carry":    {in: []byte{0x01, 0xFF}, exp: []byte{0x02}},
		"all ones": {in: []byte{0xFF, 0xFF}, exp: nil},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.exp, prefixEnd(spec.in))
		})
	}
}

func TestUint64KeyDecode(t *testing.T) {
	_, err := Uint64Key{}.Decode([]byte{1, 2})
	require.ErrorIs(t, err, ErrCodec)
	v, err := Uint64Key{}.Decode(Uint64Key{}.Encode(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}

func TestPrefix(t *testing.T) {
	db := dbm.NewMemDB()
	a := Prefix(db, "contract_a")
	b := Prefix(db, "contract_a1")
	item := NewItem("config", JSON[string]{})

	require.NoError(t, item.Save(a, "from a"))
	_, ok, err := item.MayLoad(b)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := item.Load(ReadOnly(a))
	require.NoError(t, err)
	assert.Equal(t, "from a", got)

	raw, err := db.Get(append(namespaceKey("contract_a"), "config"...))
	require.NoError(t, err)
	assert.Equal(t, `"from a"`, string(raw))
}
