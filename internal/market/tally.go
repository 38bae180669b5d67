package market

import "sort"

// tally counts skill frequencies while remembering first-seen insertion
// order, which breaks ranking ties deterministically.
type tally struct {
	counts map[string]int
	order  map[string]int
	seq    []string
}

func newTally() *tally {
	return &tally{
		counts: make(map[string]int),
		order:  make(map[string]int),
	}
}

func (t *tally) add(skill string) {
	if _, seen := t.counts[skill]; !seen {
		t.order[skill] = len(t.seq)
		t.seq = append(t.seq, skill)
	}
	t.counts[skill]++
}

func (t *tally) len() int {
	return len(t.seq)
}

// ranked returns up to n skills by descending frequency, ties broken by
// first-seen order.
func (t *tally) ranked(n int) []SkillGap {
	out := make([]SkillGap, 0, len(t.seq))
	for _, skill := range t.seq {
		out = append(out, SkillGap{Skill: skill, Demand: t.counts[skill]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Demand != out[j].Demand {
			return out[i].Demand > out[j].Demand
		}
		return t.order[out[i].Skill] < t.order[out[j].Skill]
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// top returns the skill names of ranked(n).
func (t *tally) top(n int) []string {
	ranked := t.ranked(n)
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.Skill)
	}
	return names
}
