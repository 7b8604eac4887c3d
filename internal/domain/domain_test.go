package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizeTag("#abc123"))
	assert.Equal(t, "ABC123", NormalizeTag("ABC123"))
	assert.Equal(t, "ABC123", NormalizeTag("abc123"))
	assert.Equal(t, "ABC123", NormalizeTag(" #abc123 "))
	assert.Equal(t, "", NormalizeTag(""))

	// idempotent
	assert.Equal(t, NormalizeTag("#abc123"), NormalizeTag(NormalizeTag("#abc123")))
}

func TestFallbackKey(t *testing.T) {
	assert.Equal(t, "NON-sali", FallbackKey("sali"))
	assert.Equal(t, "NON-?", FallbackKey(""))
}

func TestParseGameTime(t *testing.T) {
	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, ParseGameTime("20200101T000000.000Z"))
	assert.Equal(t, want, ParseGameTime("20200101T000000Z"))
	assert.True(t, ParseGameTime("2020-01-01").IsZero())
	assert.True(t, ParseGameTime("").IsZero())
}

func TestFirstGameTime(t *testing.T) {
	want := time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)
	got := FirstGameTime("", "garbage", "20230615T123000.000Z", "20200101T000000.000Z")
	assert.Equal(t, want, got)
	assert.True(t, FirstGameTime("", "nope").IsZero())
}
