package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/throwables/pkg/taxonomy"
)

func TestTree_IOBranch(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	out, err := Tree(reg, taxonomy.IOException, Options{Plain: true})
	require.NoError(t, err)

	want := "io_exception\n" +
		"├── nbt_read_error\n" +
		"└── json_read_error\n"
	assert.Equal(t, want, out)
}

func TestTree_NestedWithDescriptions(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)
	_, err = reg.Register("quota_error", taxonomy.UserException)
	require.NoError(t, err)
	_, err = reg.Register("disk_quota_error", "quota_error")
	require.NoError(t, err)

	describe := func(id string) (string, bool) {
		if id == "quota_error" {
			return "Player exceeded a quota", true
		}
		return "", false
	}

	out, err := Tree(reg, taxonomy.UserException, Options{Plain: true, Describe: describe})
	require.NoError(t, err)

	want := "user_exception\n" +
		"└── quota_error - Player exceeded a quota\n" +
		"    └── disk_quota_error\n"
	assert.Equal(t, want, out)
}

func TestTree_WholeTaxonomy(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	out, err := Tree(reg, "", Options{Plain: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, len(taxonomy.Builtins()))
	assert.Equal(t, "exception", lines[0])
	assert.Contains(t, out, "├── value_exception\n│   ├── unknown_item\n")
	assert.Contains(t, out, "└── user_exception\n")
}

func TestTree_Errors(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	_, err = Tree(reg, "bogus", Options{Plain: true})
	assert.ErrorIs(t, err, taxonomy.ErrUnknownExceptionType)

	empty, err := taxonomy.New(taxonomy.WithoutBuiltins())
	require.NoError(t, err)
	out, err := Tree(empty, "", Options{Plain: true})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMatch(t *testing.T) {
	filters := []string{taxonomy.IOException, taxonomy.ValueException, taxonomy.Exception}

	out := Match(taxonomy.UnknownBlock, filters, 1, Options{Plain: true})
	want := "throw unknown_block\n" +
		"  ✗ catch io_exception\n" +
		"  ✓ catch value_exception\n" +
		"  - catch exception (not reached)\n"
	assert.Equal(t, want, out)

	out = Match(taxonomy.UnknownBlock, filters[:1], -1, Options{Plain: true})
	assert.True(t, strings.HasSuffix(out, "  uncaught\n"))
}

func TestSummary(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)
	_, err = reg.Register("quota_error", taxonomy.UserException)
	require.NoError(t, err)

	assert.Equal(t, "16 exception types (15 built-in, 1 declared)", Summary(reg, Options{Plain: true}))
	assert.Contains(t, Summary(reg, Options{}), "16 exception types")
}
