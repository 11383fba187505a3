package migrations_test

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_core/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTable = regexp.MustCompile(`(?i)CREATE TABLE IF NOT EXISTS (\w+)`)
	dropTable   = regexp.MustCompile(`(?i)DROP TABLE IF EXISTS (\w+)`)
)

func tablesIn(t *testing.T, name string, re *regexp.Regexp) []string {
	t.Helper()
	body, err := fs.ReadFile(migrations.FS, name)
	require.NoError(t, err)
	var out []string
	for _, m := range re.FindAllStringSubmatch(string(body), -1) {
		out = append(out, m[1])
	}
	return out
}

func TestEveryUpHasMatchingDown(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	createdIn := map[string]string{}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		created := tablesIn(t, up, createTable)
		assert.NotEmpty(t, created, up)
		assert.ElementsMatch(t, created, tablesIn(t, down, dropTable), down)
		for _, table := range created {
			prev, dup := createdIn[table]
			assert.False(t, dup, "%s created in %s and %s", table, prev, up)
			createdIn[table] = up
		}
	}
}

func TestExchangeRatesHaveTheirOwnMigration(t *testing.T) {
	const up = "000005_create_exchange_rates.up.sql"
	assert.Equal(t, []string{"exchange_rates"}, tablesIn(t, up, createTable))
	assert.Equal(t, []string{"companies"}, tablesIn(t, "000001_create_companies.up.sql", createTable))
	assert.Equal(t, []string{"companies"}, tablesIn(t, "000001_create_companies.down.sql", dropTable))
}
