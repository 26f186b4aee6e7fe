package cidr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsOversizedPrefix(t *testing.T) {
	_, err := New(0, 33)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestNewRejectsHostBitsSet(t *testing.T) {
	// 10.0.0.1/8 has host bits set: address must be aligned to its prefix.
	_, err := New(0x0A000001, 8)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestNewAcceptsAlignedNetwork(t *testing.T) {
	c, err := New(0x0A000000, 8)
	assert.NoError(t, err)
	assert.Equal(t, uint8(8), c.Prefix())
	assert.Equal(t, uint32(0x0A000000), c.Network())
}

func TestDefaultIsFullRange(t *testing.T) {
	var c Cidr
	assert.Equal(t, "0.0.0.0/0", c.String())
	_, ok := c.Parent()
	assert.False(t, ok, "Cidr.default().parent() is none")
}

func TestParseRoundTrip(t *testing.T) {
	testCases := []string{
		"0.0.0.0/0",
		"10.0.0.0/8",
		"10.128.0.0/9",
		"255.255.255.255/32",
	}
	for _, tc := range testCases {
		c, err := Parse(tc)
		assert.NoError(t, err)
		assert.Equal(t, tc, c.String())
	}
}

func TestParseMissingSlash(t *testing.T) {
	_, err := Parse("10.0.0.0")
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "missing network prefix delimiter")
}

func TestParseBadOctet(t *testing.T) {
	_, err := Parse("10.0.0.0.0/8")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseBadPrefix(t *testing.T) {
	_, err := Parse("10.0.0.0/abc")
	assert.ErrorIs(t, err, ErrParse)
}

func TestFirstLastMid(t *testing.T) {
	c, err := Parse("10.0.0.0/8")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x0A000000), c.First())
	assert.Equal(t, uint32(0x0AFFFFFF), c.Last())
	assert.Equal(t, uint32(0x0A800000), c.Mid())

	single, err := Parse("1.2.3.4/32")
	assert.NoError(t, err)
	assert.Equal(t, single.First(), single.Last())
	assert.Equal(t, single.First(), single.Mid())
}

func TestParentLeftRightSplit(t *testing.T) {
	c, _ := Parse("10.0.128.0/17")
	left, right, ok := c.Split()
	assert.True(t, ok)
	assert.Equal(t, "10.0.128.0/18", left.String())
	assert.Equal(t, "10.0.192.0/18", right.String())

	parent, ok := left.Parent()
	assert.True(t, ok)
	assert.True(t, parent.Equal(c))
}

func TestParentAtPrefixOneIsDefault(t *testing.T) {
	c, _ := Parse("128.0.0.0/1")
	parent, ok := c.Parent()
	assert.True(t, ok)
	assert.Equal(t, Cidr{}, parent)
}

func TestSplitUndefinedAtSlash32(t *testing.T) {
	c, _ := Parse("1.2.3.4/32")
	_, _, ok := c.Split()
	assert.False(t, ok)
	_, ok = c.LeftSubnet()
	assert.False(t, ok)
	_, ok = c.RightSubnet()
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	outer, _ := Parse("10.0.0.0/8")
	inner, _ := Parse("10.0.0.0/24")
	sibling, _ := Parse("11.0.0.0/24")

	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.False(t, outer.Contains(sibling))
	assert.True(t, outer.Contains(outer))
}

func TestFromAddressIsSlash32(t *testing.T) {
	addr := uint32(0x01020304)
	c := FromAddress(addr)
	assert.Equal(t, uint8(32), c.Prefix())
	assert.Equal(t, "1.2.3.4/32", c.String())
}

func TestMarshalUnmarshalText(t *testing.T) {
	c, _ := Parse("192.168.0.0/16")
	text, err := c.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "192.168.0.0/16", string(text))

	var decoded Cidr
	assert.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, decoded.Equal(c))
}

func TestUnmarshalTextPropagatesParseError(t *testing.T) {
	var decoded Cidr
	err := decoded.UnmarshalText([]byte("not-a-cidr"))
	assert.True(t, errors.Is(err, ErrParse))
}
