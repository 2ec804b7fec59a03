package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	file, err := database.New(database.Config{Path: filepath.Join(t.TempDir(), "assets.txt"), Name: "assets"})
	require.NoError(t, err)
	return NewStore(file, zerolog.Nop())
}

func asset(category, name, value string) domain.Asset {
	return domain.Asset{Category: category, Name: name, Value: decimal.RequireFromString(value)}
}

func assertSameAssets(t *testing.T, expected, actual []domain.Asset) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(actual[i]), "asset %d: expected %+v, got %+v", i, expected[i], actual[i])
	}
}

func TestLoad_MissingStore(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	collection := []domain.Asset{
		asset("Stocks", "AAPL", "1000"),
		asset("Bonds", "T-Bill", "1000"),
		asset("Real Estate", "Flat in Cairo", "1250.5"),
		asset("Crypto", "BTC", "0.00000001"),
		asset("Art", "Sculpture", "99999999999.99"),
		asset("Stocks", "AAPL", "1000"), // duplicates are distinct records
	}

	require.NoError(t, store.Save(collection))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, collection, loaded)
}

func TestSaveLoad_SingleDecimal(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save([]domain.Asset{asset("Stocks", "X", "100.5")}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "Stocks,X,100.5\n", string(data))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Stocks", loaded[0].Category)
	assert.Equal(t, "X", loaded[0].Name)
	assert.True(t, loaded[0].Value.Equal(decimal.RequireFromString("100.5")))
}

func TestLoad_LenientParse(t *testing.T) {
	store := newTestStore(t)
	content := strings.Join([]string{
		"Stocks,X,100",
		"BadLine",
		"Gold,Y,-5",
		"Bonds,Z,0",
		"Crypto,W,abc",
		"Gold,Too,Many,5",
		"",
		"Gold, Bar ,250.75",
		"Crypto,ETH,NaN",
		"Stocks,,10",
		"Bonds,Gov,1e2",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{
		asset("Stocks", "X", "100"),
		asset("Gold", "Bar", "250.75"),
		asset("Bonds", "Gov", "100"),
	}, loaded)
}

func TestLoad_ScenarioD(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("Stocks,X,100\nBadLine\nGold,Y,-5\n"), 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Stocks", "X", "100")}, loaded)
}

func TestLoad_NameWithDelimiterIsDropped(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save([]domain.Asset{
		asset("Stocks", "Acme, Inc.", "10"),
		asset("Gold", "Bar", "5"),
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Gold", "Bar", "5")}, loaded)
}

func TestAppend_RejectsLineBreakInName(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(asset("Gold", "Bar", "5")))

	err := store.Append(asset("Stocks", "evil\nCrypto,BTC", "100"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "Gold,Bar,5\n", string(data))
}

func TestSave_RejectsRecordBreakingCategory(t *testing.T) {
	store := newTestStore(t)

	for _, category := range []string{"Stocks\nCrypto", "Real,Estate"} {
		err := store.Save([]domain.Asset{asset(category, "X", "1")})
		assert.True(t, domain.IsValidation(err), category)
	}
	assert.False(t, store.file.Exists())
}

func TestLoad_ExtremeValueIsDropped(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("Stocks,ok,100\nGold,big,1e2000000\nBonds,tiny,1e-2000000\n"), 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Stocks", "ok", "100")}, loaded)
}

func TestLoad_OversizedRecordIsDropped(t *testing.T) {
	store := newTestStore(t)
	content := "Stocks,ok,100\nGold,big," + strings.Repeat("9", 2<<20) + "\nBonds,gov,5\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Stocks", "ok", "100"), asset("Bonds", "gov", "5")}, loaded)
}

func TestSave_OverwritesPreviousContent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save([]domain.Asset{asset("Stocks", "A", "1"), asset("Stocks", "B", "2")}))
	require.NoError(t, store.Save([]domain.Asset{asset("Gold", "C", "3")}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Gold", "C", "3")}, loaded)
}

func TestSave_RejectsInvalidWithoutWriting(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save([]domain.Asset{asset("Stocks", "A", "1")}))

	err := store.Save([]domain.Asset{asset("Stocks", "B", "2"), asset("Gold", "C", "0")})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Stocks", "A", "1")}, loaded)
}

func TestAppend(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(asset("Stocks", "A", "1")))
	require.NoError(t, store.Append(asset("Crypto", "B", "2.5")))

	loaded, err := store.Load()
	require.NoError(t, err)
	assertSameAssets(t, []domain.Asset{asset("Stocks", "A", "1"), asset("Crypto", "B", "2.5")}, loaded)

	assert.Error(t, store.Append(asset("Stocks", " ", "1")))
}

func TestAppend_DoesNotRewriteExistingLines(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage line\n"), 0644))

	require.NoError(t, store.Append(asset("Gold", "Bar", "3")))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "garbage line\nGold,Bar,3\n", string(data))
}

func TestStorageErrorOnUnreadableStore(t *testing.T) {
	store := newTestStore(t)
	// A directory at the file path makes every read and write fail
	require.NoError(t, os.Mkdir(store.Path(), 0755))

	_, err := store.Load()
	assert.True(t, domain.IsStorage(err))

	err = store.Save([]domain.Asset{asset("Stocks", "A", "1")})
	assert.True(t, domain.IsStorage(err))

	err = store.Append(asset("Stocks", "A", "1"))
	assert.True(t, domain.IsStorage(err))
}

func TestParseLine(t *testing.T) {
	a, ok := ParseLine("Mutual Funds,Vanguard,12.30")
	require.True(t, ok)
	assert.Equal(t, "Mutual Funds", a.Category)
	assert.Equal(t, "12.3", FormatLine(a)[len("Mutual Funds,Vanguard,"):])

	for _, line := range []string{"", "a,b", "a,b,c,d", "Stocks,X,", "Stocks,X,Inf", "Stocks,X,1,000"} {
		_, ok := ParseLine(line)
		assert.False(t, ok, line)
	}
}
