package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow(t *testing.T, value string) {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	orig := now
	now = func() time.Time { return parsed }
	t.Cleanup(func() { now = orig })
}

func TestExperienceYearsSumsEntries(t *testing.T) {
	p := &Profile{Experience: []ExperienceEntry{
		{Start: "2015-01-01", End: "2017-01-01"},
		{Start: "2018-01-01", End: "2019-07-01"},
	}}

	assert.InDelta(t, 3.5, ExperienceYears(p), 0.11)
}

func TestExperienceYearsMissingEndUsesNow(t *testing.T) {
	fixedNow(t, "2024-01-01")

	p := &Profile{Experience: []ExperienceEntry{{Start: "2022-01-01"}}}

	assert.InDelta(t, 2.0, ExperienceYears(p), 0.05)
}

func TestExperienceYearsSkipsInvalidEntries(t *testing.T) {
	p := &Profile{Experience: []ExperienceEntry{
		{End: "2020-01-01"},                         // no start
		{Start: "2020-01-01", End: "2019-01-01"},    // inverted
		{Start: "2020-01-01", End: "2020-01-01"},    // zero-length
		{Start: "not a date", End: "2021-01-01"},    // unparseable
	}}

	assert.Zero(t, ExperienceYears(p))
}

func TestBucketThresholds(t *testing.T) {
	assert.Equal(t, BucketNone, BucketForYears(0))
	assert.Equal(t, BucketNone, BucketForYears(0.9))
	assert.Equal(t, BucketJunior, BucketForYears(1))
	assert.Equal(t, BucketJunior, BucketForYears(2.9))
	assert.Equal(t, BucketMiddle, BucketForYears(3))
	assert.Equal(t, BucketMiddle, BucketForYears(5.9))
	assert.Equal(t, BucketSenior, BucketForYears(6))
	assert.Equal(t, BucketSenior, BucketForYears(25))
}

func TestBucketIsMonotonicInExperience(t *testing.T) {
	prev := 0
	for _, years := range []float64{0, 0.5, 1, 2, 3, 4, 6, 10} {
		rank := bucketRank[BucketForYears(years)]
		assert.GreaterOrEqual(t, rank, prev, "years %.1f", years)
		prev = rank
	}
}

func TestBucketDistance(t *testing.T) {
	d, ok := BucketDistance(BucketNone, BucketSenior)
	assert.True(t, ok)
	assert.Equal(t, 3, d)

	d, ok = BucketDistance(BucketJunior, BucketJunior)
	assert.True(t, ok)
	assert.Zero(t, d)

	_, ok = BucketDistance(BucketJunior, Bucket("whatever"))
	assert.False(t, ok)
}

func TestEmptyProfileBucketsToNone(t *testing.T) {
	assert.Equal(t, BucketNone, ExperienceBucket(&Profile{}))
}
