package profile

import (
	"math"
	"time"
)

// Bucket is the coarse experience scale. The values are the hh.ru experience
// identifiers, so profile-side bucketing and vacancy-side classification
// compare directly.
type Bucket string

const (
	BucketNone   Bucket = "noExperience"
	BucketJunior Bucket = "between1And3"
	BucketMiddle Bucket = "between3And6"
	BucketSenior Bucket = "moreThan6"
)

var bucketRank = map[Bucket]int{
	BucketNone:   0,
	BucketJunior: 1,
	BucketMiddle: 2,
	BucketSenior: 3,
}

// now is swapped in tests.
var now = time.Now

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
}

// ExperienceYears sums the durations of experience entries and converts them
// to years, rounded to one decimal, never negative. Entries without a start
// date are skipped; a missing end date means "still employed"; inverted
// ranges contribute nothing.
func ExperienceYears(p *Profile) float64 {
	var total time.Duration

	for _, e := range p.Experience {
		start, ok := parseDate(e.Start)
		if !ok {
			continue
		}

		end := now()
		if e.End != "" {
			if parsed, ok := parseDate(e.End); ok {
				end = parsed
			}
		}

		if !end.After(start) {
			continue
		}

		total += end.Sub(start)
	}

	years := total.Hours() / 24 / 365.25
	years = math.Round(years*10) / 10
	if years < 0 {
		years = 0
	}
	return years
}

// ExperienceBucket maps the profile's accumulated experience onto the scale.
func ExperienceBucket(p *Profile) Bucket {
	return BucketForYears(ExperienceYears(p))
}

func BucketForYears(years float64) Bucket {
	switch {
	case years < 1:
		return BucketNone
	case years < 3:
		return BucketJunior
	case years < 6:
		return BucketMiddle
	default:
		return BucketSenior
	}
}

// BucketDistance returns the distance between two buckets on the ordered
// scale. The second return is false when either bucket is unknown.
func BucketDistance(a, b Bucket) (int, bool) {
	ra, okA := bucketRank[a]
	rb, okB := bucketRank[b]
	if !okA || !okB {
		return 0, false
	}

	d := ra - rb
	if d < 0 {
		d = -d
	}
	return d, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
