package numerals

import (
	"sort"
	"strconv"
	"strings"
)

// Phrase is a two-word spoken numeral ("tens units") and its decimal value.
type Phrase struct {
	Text     string
	Value    int
	Digits   string
	Language string
}

// CompoundTable is an immutable phrase list ordered longest-text-first.
// Phrases of equal length keep their insertion order.
type CompoundTable struct {
	phrases []Phrase
	index   map[string]int
}

// CompoundSet describes how one language builds its two-word numerals.
type CompoundSet struct {
	Language string
	Tens     []Entry
	Units    []Entry
}

// CompoundSets are combined in this order; the first language to produce a
// phrase owns it.
var CompoundSets = []CompoundSet{
	{
		Language: Telugu,
		Tens: []Entry{
			{"iravai", 20}, {"iravayi", 20}, {"iravei", 20},
			{"mubbhai", 30}, {"muppai", 30}, {"mubhai", 30}, {"mupphai", 30},
			{"nalabhai", 40}, {"nalabai", 40}, {"nalbhai", 40},
			{"yabhai", 50}, {"yabbai", 50}, {"abhai", 50},
			{"aravai", 60}, {"aravei", 60},
			{"yebhai", 70}, {"debhai", 70},
			{"tombhai", 80}, {"tombai", 80}, {"thombhai", 80},
			{"navvai", 90}, {"navai", 90},
		},
		Units: []Entry{
			{"okati", 1}, {"okka", 1}, {"rendu", 2}, {"madu", 3}, {"mudu", 3},
			{"nalugu", 4}, {"ayidu", 5}, {"aidu", 5}, {"aaru", 6}, {"edu", 7}, {"enimidi", 8}, {"tommidi", 9},
		},
	},
	{
		Language: Hindi,
		Tens: []Entry{
			{"das", 10}, {"bees", 20}, {"bis", 20}, {"tees", 30}, {"tis", 30}, {"chalis", 40}, {"chalees", 40},
			{"pachas", 50}, {"panchas", 50}, {"saath", 60}, {"sattar", 70}, {"assi", 80}, {"nabbe", 90},
		},
		Units: []Entry{
			{"ek", 1}, {"do", 2}, {"teen", 3}, {"char", 4}, {"paanch", 5}, {"chhe", 6}, {"che", 6},
			{"saat", 7}, {"aath", 8}, {"nau", 9},
		},
	},
	{
		Language: Tamil,
		Tens: []Entry{
			{"pathu", 10}, {"patthu", 10}, {"irupathu", 20}, {"muppathu", 30}, {"naarpathu", 40},
			{"narpathu", 40}, {"aimpathu", 50}, {"ampathu", 50}, {"aruvathu", 60}, {"ezhuvathu", 70},
			{"enpathu", 80}, {"thonnuru", 90},
		},
		Units: []Entry{
			{"onru", 1}, {"ondru", 1}, {"irandu", 2}, {"moondru", 3}, {"mundru", 3}, {"naangu", 4},
			{"nangu", 4}, {"ainthu", 5}, {"aindhu", 5}, {"aaru", 6}, {"ezhu", 7}, {"ettu", 8}, {"onbathu", 9}, {"ombathu", 9},
		},
	},
	{
		Language: Malayalam,
		Tens: []Entry{
			{"pathu", 10}, {"iruppathu", 20}, {"muppatu", 30}, {"muppathu", 30}, {"nalppathu", 40},
			{"nalpathu", 40}, {"anpathu", 50}, {"ampathu", 50}, {"arupathu", 60}, {"ezhupathu", 70},
			{"enpathu", 80}, {"thonnuru", 90},
		},
		Units: []Entry{
			{"onnu", 1}, {"randu", 2}, {"moonnu", 3}, {"naalu", 4}, {"anchu", 5},
			{"aaru", 6}, {"ezhu", 7}, {"ettu", 8}, {"onpathu", 9}, {"onnpathu", 9},
		},
	},
}

// BuildCompoundTable combines the default CompoundSets.
func BuildCompoundTable() CompoundTable {
	return NewCompoundTable(CompoundSets...)
}

// NewCompoundTable forms every tens x units phrase of each set.
func NewCompoundTable(sets ...CompoundSet) CompoundTable {
	var phrases []Phrase
	seen := make(map[string]struct{})

	for _, set := range sets {
		for _, tens := range set.Tens {
			for _, unit := range set.Units {
				text := tens.Word + " " + unit.Word
				if _, dup := seen[text]; dup {
					continue
				}
				seen[text] = struct{}{}
				value := tens.Value + unit.Value
				phrases = append(phrases, Phrase{
					Text:     text,
					Value:    value,
					Digits:   strconv.Itoa(value),
					Language: set.Language,
				})
			}
		}
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i].Text) > len(phrases[j].Text)
	})

	index := make(map[string]int, len(phrases))
	for i, p := range phrases {
		index[p.Text] = i
	}
	return CompoundTable{phrases: phrases, index: index}
}

// Phrases returns a copy of the table in match order.
func (t CompoundTable) Phrases() []Phrase {
	out := make([]Phrase, len(t.phrases))
	copy(out, t.phrases)
	return out
}

// Len returns the number of phrases.
func (t CompoundTable) Len() int {
	return len(t.phrases)
}

// Lookup returns the phrase with exactly this text.
func (t CompoundTable) Lookup(text string) (Phrase, bool) {
	i, ok := t.index[text]
	if !ok {
		return Phrase{}, false
	}
	return t.phrases[i], true
}

// FirstIn returns the first phrase, in match order, that occurs as a plain
// substring of text. text is expected to be lower-cased already.
func (t CompoundTable) FirstIn(text string, accept func(Phrase) bool) (Phrase, bool) {
	for _, p := range t.phrases {
		if !strings.Contains(text, p.Text) {
			continue
		}
		if accept == nil || accept(p) {
			return p, true
		}
	}
	return Phrase{}, false
}
