package regexparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Delimited(t *testing.T) {
	p, err := Parse("/abc/gi")
	require.NoError(t, err)

	assert.Equal(t, "abc", p.Source())
	assert.Equal(t, "gi", p.Flags())
	assert.True(t, p.Global())
	assert.True(t, p.Test("xx ABC xx"))
	assert.Equal(t, 3, p.Count("abc Abc aBC"))
}

func TestParse_InvalidFlagsFallBackToLiteralInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "repeated flag", input: "/abc/gg"},
		{name: "unknown flag", input: "/abc/gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.input, p.Source())
			assert.Empty(t, p.Flags())
			assert.False(t, p.Global())
			assert.True(t, p.Test("see "+tt.input+" here"))
			assert.False(t, p.Test("abc"))
		})
	}
}

func TestParse_Split(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSource string
		wantFlags  string
	}{
		{name: "no delimiters", input: "abc", wantSource: "abc"},
		{name: "no flags", input: "/abc/", wantSource: "abc"},
		{name: "unclosed delimiter", input: "/abc", wantSource: "/abc"},
		{name: "inner slash", input: "/a/b/m", wantSource: "a/b", wantFlags: "m"},
		{name: "trailing junk after flags", input: "/abc/g1", wantSource: "abc", wantFlags: "g"},
		{name: "uppercase flags", input: "/abc/UA", wantSource: "abc", wantFlags: "UA"},
		{name: "bare body stops at newline", input: "abc\ndef", wantSource: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, p.Source())
			assert.Equal(t, tt.wantFlags, p.Flags())
		})
	}
}

func TestParse_FlagSemantics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		subject string
		want    bool
	}{
		{name: "case sensitive by default", input: "/abc/", subject: "ABC", want: false},
		{name: "i", input: "/abc/i", subject: "ABC", want: true},
		{name: "m", input: "/^b$/m", subject: "a\nb\nc", want: true},
		{name: "without m", input: "/^b$/", subject: "a\nb\nc", want: false},
		{name: "s", input: "/a.b/s", subject: "a\nb", want: true},
		{name: "without s", input: "/a.b/", subject: "a\nb", want: false},
		{name: "x strips whitespace", input: "/a b c/x", subject: "abc", want: true},
		{name: "x strips comments", input: "/ab # letters/x", subject: "ab", want: true},
		{name: "x keeps class whitespace", input: "/a[ ]b/x", subject: "a b", want: true},
		{name: "x keeps escaped whitespace", input: `/a\ b/x`, subject: "a b", want: true},
		{name: "A anchors", input: "/abc/A", subject: "xabc", want: false},
		{name: "A matches at start", input: "/abc/A", subject: "abcx", want: true},
		{name: "u is accepted", input: "/é/u", subject: "café", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Test(tt.subject))
		})
	}
}

func TestParse_DelimitersOnFirstLineOnly(t *testing.T) {
	p, err := Parse("/a # letter a\nb/x")
	require.NoError(t, err)

	// The body stops at the first line, so the closing slash is never seen.
	assert.Equal(t, "/a # letter a", p.Source())
}

func TestParse_InvalidInput(t *testing.T) {
	for _, in := range []any{42, nil, []string{"a"}, ""} {
		_, err := Parse(in)
		require.Error(t, err)

		var iie *InvalidInputError
		assert.True(t, errors.As(err, &iie), "input %v", in)
	}

	_, err := Parse(42)
	assert.EqualError(t, err, "Invalid input. Input must be a string")
}

func TestParse_CompileError(t *testing.T) {
	_, err := Parse("/(?<=a)b/")
	require.Error(t, err)

	var iie *InvalidInputError
	assert.False(t, errors.As(err, &iie))
}

func TestPattern_FindAll(t *testing.T) {
	p := MustParse(`/(\w+)-(\d+)/g`)

	got := p.FindAll("A-1, BB-22 and C-x")
	require.Len(t, got, 2)
	assert.Equal(t, Match{Text: "A-1", Index: 0, Groups: []string{"A", "1"}}, got[0])
	assert.Equal(t, Match{Text: "BB-22", Index: 5, Groups: []string{"BB", "22"}}, got[1])

	// Repeated calls see the same matches; there is no cursor to reset.
	assert.Equal(t, got, p.FindAll("A-1, BB-22 and C-x"))
	assert.Nil(t, p.FindAll("nothing"))
}

func TestPattern_FindAllWithoutGlobal(t *testing.T) {
	p := MustParse("/a/")
	assert.Equal(t, 1, p.Count("aaa"))
}

func TestPattern_UnmatchedGroup(t *testing.T) {
	p := MustParse("/(a)|(b)/g")

	got := p.FindAll("b")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"", "b"}, got[0].Groups)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}
