package queryer

import (
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabq/tabq/internal/config"
	"github.com/tabq/tabq/internal/engine"
	"github.com/tabq/tabq/internal/fetch"
	"github.com/tabq/tabq/internal/testutil"
	"github.com/tabq/tabq/internal/translate"
)

func runQuery(t *testing.T, sql string) (*engine.Dataset, error) {
	t.Helper()
	return New(nil).Query(context.Background(), sql)
}

// assertGoldenCSV compares the result's CSV serialization against
// testdata/<name>.golden. Regenerate with go test ./internal/queryer -update.
func assertGoldenCSV(t *testing.T, name string, ds *engine.Dataset) {
	t.Helper()
	csv, err := ds.ToCSV()
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, name, []byte(csv))
}

func TestQuery_FilterAndOrder(t *testing.T) {
	src := testutil.WriteSourceFile(t, "covid.csv", testutil.CovidCSV)
	sql := fmt.Sprintf("SELECT location, new_deaths FROM %q WHERE new_deaths >= 500 ORDER BY new_deaths DESC", src)

	ds, err := runQuery(t, sql)
	require.NoError(t, err)
	assertGoldenCSV(t, "covid_filter_order", ds)
}

func TestQuery_WildcardSliced(t *testing.T) {
	src := testutil.WriteSourceFile(t, "covid.csv", testutil.CovidCSV)
	sql := fmt.Sprintf("SELECT * FROM %q LIMIT 2 OFFSET 1", src)

	ds, err := runQuery(t, sql)
	require.NoError(t, err)
	assertGoldenCSV(t, "covid_wildcard_slice", ds)
}

func TestQuery_AliasProjection(t *testing.T) {
	src := testutil.WriteSourceFile(t, "covid.csv", testutil.CovidCSV)
	sql := fmt.Sprintf("SELECT location AS place, total_cases FROM %q WHERE total_cases > 5000000 ORDER BY location", src)

	ds, err := runQuery(t, sql)
	require.NoError(t, err)
	assert.Equal(t, []string{"place", "total_cases"}, ds.Names())
	assertGoldenCSV(t, "covid_alias", ds)
}

func TestQuery_HTTPSource(t *testing.T) {
	url := testutil.ServeContent(t, testutil.CovidCSV)
	sql := fmt.Sprintf("SELECT location FROM %q WHERE new_deaths > 600", url)

	ds, err := runQuery(t, sql)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Nrow())

	records := ds.Records()
	assert.Equal(t, "Brazil", records[1][0])
	assert.Equal(t, "France", records[2][0])
}

func TestQuery_JSONSource(t *testing.T) {
	src := testutil.WriteSourceFile(t, "data.json",
		`[{"name": "a", "n": 1}, {"name": "b", "n": 5}, {"name": "c", "n": 3}]`)
	sql := fmt.Sprintf("SELECT name FROM %q WHERE n > 2 ORDER BY n DESC", src)

	ds, err := runQuery(t, sql)
	require.NoError(t, err)

	records := ds.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "b", records[1][0])
	assert.Equal(t, "c", records[2][0])
}

func TestQuery_SourceAlias(t *testing.T) {
	src := testutil.WriteSourceFile(t, "covid.csv", testutil.CovidCSV)
	cfg := config.Default()
	cfg.Sources["covid"] = src

	ds, err := New(cfg).Query(context.Background(), "SELECT location FROM covid LIMIT 1")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Nrow())
}

func TestQuery_UnsupportedScheme(t *testing.T) {
	// The scheme is rejected during source resolution, before any
	// fetch happens.
	_, err := runQuery(t, `SELECT * FROM "ftp://host/file"`)
	require.Error(t, err)
	assert.True(t, fetch.IsSchemeError(err))
}

func TestQuery_TranslationErrorStopsEarly(t *testing.T) {
	_, err := runQuery(t, `SELECT * FROM "file://x.csv" GROUP BY a`)
	require.Error(t, err)
	assert.Equal(t, translate.CodeUnsupportedStatement, translate.CodeOf(err))
}

func TestQuery_FetchError(t *testing.T) {
	url := testutil.ServeStatus(t, 500)
	_, err := runQuery(t, fmt.Sprintf("SELECT * FROM %q", url))
	require.Error(t, err)

	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fetch.CodeHTTP, fe.Code)
}

func TestQuery_LoadError(t *testing.T) {
	src := testutil.WriteSourceFile(t, "broken.json", "[{bad json")
	_, err := runQuery(t, fmt.Sprintf("SELECT * FROM %q", src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load json")
}

func TestDescribe(t *testing.T) {
	src := testutil.WriteSourceFile(t, "covid.csv", testutil.CovidCSV)

	ds, err := New(nil).Describe(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"location", "continent", "total_cases", "new_deaths"}, ds.Names())
	assert.Equal(t, 6, ds.Nrow())
}

func TestExampleSQL_Translates(t *testing.T) {
	q, err := translate.SQL(ExampleSQL())
	require.NoError(t, err)
	assert.Contains(t, q.Source, "owid")
}
