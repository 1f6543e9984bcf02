package keypath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndStringRoundTrip(t *testing.T) {
	cases := []string{
		"m",
		"m/44'/0'/0'/0/0",
		"m/0'/1/2'/2/1000000000",
		"/44'/0'",
		"/0/1/2",
	}
	for _, c := range cases {
		p, err := Parse(c)
		require.NoError(t, err, c)
		require.Equal(t, c, p.String())
	}
}

func TestParseRejectsUppercaseM(t *testing.T) {
	_, err := Parse("M/0")
	require.Error(t, err)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, ErrInvalidSyntax, pErr.Kind)
}

func TestParseRejectsEmptySegment(t *testing.T) {
	_, err := Parse("m/0//1")
	require.Error(t, err)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, ErrInvalidSyntax, pErr.Kind)
}

func TestParseRejectsLeadingApostrophe(t *testing.T) {
	_, err := Parse("m/'0")
	require.Error(t, err)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, ErrInvalidSyntax, pErr.Kind)
}

func TestParseRejectsStrayCharacters(t *testing.T) {
	_, err := Parse("m/abc")
	require.Error(t, err)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, ErrInvalidSyntax, pErr.Kind)
}

func TestLengthStepParentTruncate(t *testing.T) {
	p, err := Parse("m/44'/0'/0'/0/0")
	require.NoError(t, err)
	require.Equal(t, 5, p.Length())

	step1, err := p.Step(1)
	require.NoError(t, err)
	require.Equal(t, uint32(44)|HardenedBit, step1)

	step5, err := p.Step(5)
	require.NoError(t, err)
	require.Equal(t, uint32(0), step5)

	_, err = p.Step(0)
	require.Error(t, err)
	_, err = p.Step(6)
	require.Error(t, err)

	parent := p.Parent()
	require.Equal(t, 4, parent.Length())
	require.Equal(t, "m/44'/0'/0'/0", parent.String())

	truncated, err := p.Truncate(3)
	require.NoError(t, err)
	require.Equal(t, "m/44'/0'/0'", truncated.String())

	_, err = p.Truncate(6)
	require.Error(t, err)
}

func TestRootParentIsItself(t *testing.T) {
	root := Root(true)
	require.Equal(t, 0, root.Length())
	require.Same(t, root, root.Parent())
}

func TestAppendProducesLongerPath(t *testing.T) {
	root := Root(true)
	child := root.Append(44 | HardenedBit)
	grandchild := child.Append(0)
	require.Equal(t, 1, child.Length())
	require.Equal(t, 2, grandchild.Length())
	require.Equal(t, "m/44'/0", grandchild.String())
	// root is untouched: persistent structure.
	require.Equal(t, 0, root.Length())
}

func TestPrefixesShortestFirst(t *testing.T) {
	p, err := Parse("m/1/2/3")
	require.NoError(t, err)
	prefixes := p.Prefixes()
	require.Len(t, prefixes, 3)
	require.Equal(t, "m/1", prefixes[0].String())
	require.Equal(t, "m/1/2", prefixes[1].String())
	require.Equal(t, "m/1/2/3", prefixes[2].String())
}

func TestCompareHardenedSortsBeforePlain(t *testing.T) {
	hardened, err := Parse("m/2/4'")
	require.NoError(t, err)
	plain, err := Parse("m/2/4")
	require.NoError(t, err)
	require.Negative(t, Compare(hardened, plain))
	require.Positive(t, Compare(plain, hardened))
	require.Zero(t, Compare(hardened, hardened))
}

func TestCompareByPlainValueThenLength(t *testing.T) {
	a, _ := Parse("m/1")
	b, _ := Parse("m/2")
	require.Negative(t, Compare(a, b))

	prefix, _ := Parse("m/1")
	longer, _ := Parse("m/1/0")
	require.Negative(t, Compare(prefix, longer))
}
