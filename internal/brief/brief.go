// Package brief derives the one-sentence session summary from a set of selections.
package brief

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inajphotography/visionboard/internal/models"
)

const topN = 2

// Brief is never stored; compute it from the selections wherever it is needed.
type Brief struct {
	Moods    []string `json:"moods"`
	Settings []string `json:"settings"`
	Style    string   `json:"style"`
}

// Compute returns the top moods and settings by count and the style descriptor.
// Ties keep the order in which the tag was first seen.
func Compute(selections []models.Selection) Brief {
	moods := make([]string, 0, len(selections))
	settings := make([]string, 0, len(selections))
	styles := make([]string, 0, len(selections))
	for _, s := range selections {
		moods = append(moods, s.Mood)
		settings = append(settings, s.Setting)
		styles = append(styles, s.Style)
	}

	return Brief{
		Moods:    top(moods, topN),
		Settings: top(settings, topN),
		Style:    StyleDescriptor(styles),
	}
}

// StyleDescriptor classifies style texts as candid, posed, both, or artistic
func StyleDescriptor(styles []string) string {
	var candid, posed bool
	for _, s := range styles {
		s = strings.ToLower(s)
		if strings.Contains(s, "candid") {
			candid = true
		}
		if strings.Contains(s, "posed") {
			posed = true
		}
	}

	switch {
	case candid && posed:
		return "candid and posed"
	case candid:
		return "candid"
	case posed:
		return "posed"
	default:
		return "artistic"
	}
}

// Sentence renders the brief the way it appears on the board
func (b Brief) Sentence() string {
	return fmt.Sprintf("Your vision focuses on a %s mood in %s settings, capturing a mix of %s moments.",
		strings.Join(b.Moods, " and "),
		strings.Join(b.Settings, " and "),
		b.Style)
}

type tagCount struct {
	tag   string
	count int
}

func top(tags []string, n int) []string {
	index := make(map[string]int)
	var counts []tagCount
	for _, t := range tags {
		if i, ok := index[t]; ok {
			counts[i].count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, tagCount{tag: t, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, strings.ToLower(c.tag))
	}
	return out
}
