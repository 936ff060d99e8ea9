// Package numerals turns spoken number words in English, Hindi, Telugu, Tamil
// and Malayalam transcripts into digit strings.
package numerals

import (
	"sort"
	"strings"
)

// Language names used to scope the word tables.
const (
	English   = "English"
	Hindi     = "Hindi"
	Telugu    = "Telugu"
	Tamil     = "Tamil"
	Malayalam = "Malayalam"
)

// Entry is a single spoken word and its value (0-99).
type Entry struct {
	Word  string
	Value int
}

// WordTable is the ordered vocabulary of one language.
type WordTable struct {
	Language string
	Entries  []Entry
}

// Lexicon is the flattened, read-only word index across languages.
// Words are stored lower-cased; on a collision the earlier language wins.
type Lexicon struct {
	values map[string]int
	origin map[string]string
	order  []string
}

// NewLexicon flattens tables in the order given.
func NewLexicon(tables ...WordTable) *Lexicon {
	l := &Lexicon{
		values: make(map[string]int),
		origin: make(map[string]string),
	}
	for _, table := range tables {
		for _, e := range table.Entries {
			word := strings.ToLower(strings.TrimSpace(e.Word))
			if word == "" {
				continue
			}
			if _, exists := l.values[word]; exists {
				continue
			}
			l.values[word] = e.Value
			l.origin[word] = table.Language
			l.order = append(l.order, word)
		}
	}
	return l
}

// Lookup returns the value of a single word, case-insensitively.
func (l *Lexicon) Lookup(word string) (int, bool) {
	v, ok := l.values[strings.ToLower(word)]
	return v, ok
}

// LanguageOf reports which table contributed word.
func (l *Lexicon) LanguageOf(word string) (string, bool) {
	lang, ok := l.origin[strings.ToLower(word)]
	return lang, ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.order)
}

// Words returns the words in insertion order.
func (l *Lexicon) Words() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// wordsLongestFirst is used to build the single-word alternation.
func (l *Lexicon) wordsLongestFirst() []string {
	words := l.Words()
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i]) > len(words[j])
	})
	return words
}

// UnitTables holds every single-word numeral, in flattening order.
var UnitTables = []WordTable{
	{Language: English, Entries: []Entry{
		{"zero", 0}, {"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
		{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10}, {"eleven", 11},
		{"twelve", 12}, {"thirteen", 13}, {"fourteen", 14}, {"fifteen", 15}, {"sixteen", 16},
		{"seventeen", 17}, {"eighteen", 18}, {"nineteen", 19},
	}},
	{Language: Hindi, Entries: []Entry{
		{"shunya", 0}, {"ek", 1}, {"do", 2}, {"teen", 3}, {"char", 4}, {"paanch", 5},
		{"chhe", 6}, {"che", 6}, {"saat", 7}, {"aath", 8}, {"nau", 9},
		{"das", 10}, {"gyarah", 11}, {"barah", 12}, {"terah", 13}, {"chaudah", 14},
		{"pandrah", 15}, {"solah", 16}, {"satrah", 17}, {"atharah", 18}, {"unnis", 19},
		{"bees", 20}, {"ikkis", 21}, {"baais", 22}, {"teis", 23}, {"chaubis", 24},
		{"pachchis", 25}, {"pachis", 25}, {"chhabbis", 26}, {"sattais", 27}, {"atthaais", 28}, {"unnatis", 29},
		{"tees", 30}, {"iktis", 31}, {"battis", 32}, {"taintis", 33}, {"chautis", 34},
		{"paintis", 35}, {"chhattis", 36}, {"saintis", 37}, {"artis", 38}, {"untalees", 39},
		{"chalis", 40}, {"iktalis", 41}, {"bayalis", 42}, {"tentalis", 43}, {"chaualis", 44},
		{"paintalis", 45}, {"chhiyalis", 46}, {"saintalis", 47}, {"artalis", 48}, {"unchas", 49},
		{"pachas", 50}, {"ikyavan", 51}, {"bavan", 52}, {"tirpan", 53}, {"chauvan", 54},
		{"pachpan", 55}, {"chhappan", 56}, {"sattavan", 57}, {"attavan", 58}, {"unsath", 59},
		{"saath", 60}, {"eksath", 61}, {"barsath", 62}, {"tirsath", 63}, {"chausath", 64},
		{"painsath", 65}, {"chhiyasath", 66}, {"sarsath", 67}, {"arsath", 68}, {"unhattar", 69},
		{"sattar", 70}, {"ikhattar", 71}, {"bahattar", 72}, {"tihattar", 73}, {"chauhattar", 74},
		{"pachattar", 75}, {"chhihattar", 76}, {"satahattar", 77}, {"atthattar", 78}, {"unasi", 79},
		{"assi", 80}, {"ikyasi", 81}, {"bayasi", 82}, {"tirasi", 83}, {"chaurasi", 84},
		{"pachasi", 85}, {"chhiyasi", 86}, {"satasi", 87}, {"athasi", 88},
		{"nabbe", 90}, {"navve", 90},
		// spoken tens used in two-word compounds
		{"bis", 20}, {"tis", 30}, {"chalees", 40}, {"panchas", 50},
	}},
	{Language: Telugu, Entries: []Entry{
		{"sunna", 0}, {"okati", 1}, {"okka", 1}, {"rendu", 2}, {"madu", 3}, {"mudu", 3},
		{"nalugu", 4}, {"ayidu", 5}, {"aidu", 5}, {"aaru", 6}, {"edu", 7}, {"enimidi", 8}, {"tommidi", 9},
		{"padakorta", 11}, {"padakortha", 11}, {"pannendu", 12}, {"padimadu", 13}, {"padamadu", 13},
		{"padunalugu", 14}, {"padayaidu", 15}, {"padaaaru", 16}, {"padaaru", 16},
		{"padadeddu", 17}, {"padededdu", 17}, {"padenendu", 18}, {"pantommidi", 19},
		{"padi", 10}, {"iravai", 20}, {"iravayi", 20}, {"iravei", 20},
		{"mubbhai", 30}, {"muppai", 30}, {"mubhai", 30}, {"mupphai", 30}, {"muphai", 30},
		{"nalabhai", 40}, {"nalabai", 40}, {"nalbhai", 40},
		{"yabhai", 50}, {"yabbai", 50}, {"abhai", 50},
		{"aravai", 60}, {"aravei", 60}, {"araavai", 60},
		{"yebhai", 70}, {"yabbhai", 70}, {"debhai", 70},
		{"tombhai", 80}, {"tombai", 80}, {"thombhai", 80},
		{"navvai", 90}, {"navai", 90}, {"nabbhai", 90},
	}},
	{Language: Tamil, Entries: []Entry{
		{"poojiyam", 0}, {"onru", 1}, {"ondru", 1}, {"irandu", 2}, {"moondru", 3}, {"mundru", 3},
		{"naangu", 4}, {"nangu", 4}, {"ainthu", 5}, {"aindhu", 5}, {"aaru", 6}, {"ezhu", 7},
		{"ettu", 8}, {"onbathu", 9}, {"ombathu", 9},
		{"pathinonru", 11}, {"pannirendu", 12}, {"pathinmoondru", 13}, {"pathinaangu", 14},
		{"pathinainthu", 15}, {"pathinaaru", 16}, {"pathinezhu", 17}, {"pathinettu", 18}, {"pathonpathu", 19},
		{"pathu", 10}, {"patthu", 10}, {"irupathu", 20}, {"muppathu", 30}, {"naarpathu", 40}, {"narpathu", 40},
		{"aimpathu", 50}, {"ampathu", 50}, {"aruvathu", 60}, {"ezhuvathu", 70}, {"enpathu", 80}, {"thonnuru", 90},
	}},
	{Language: Malayalam, Entries: []Entry{
		{"poojyam", 0}, {"onnu", 1}, {"randu", 2}, {"moonnu", 3}, {"naalu", 4},
		{"anchu", 5}, {"aaru", 6}, {"ezhu", 7}, {"ettu", 8}, {"onpathu", 9}, {"onnpathu", 9},
		{"pathinonnu", 11}, {"pannirandu", 12}, {"pathinoonnu", 13}, {"pathinaalu", 14},
		{"pathinanchu", 15}, {"pathinaaru", 16}, {"pathinezhu", 17}, {"pathinettu", 18}, {"pathombathu", 19},
		{"pathu", 10}, {"iruppathu", 20}, {"muppatu", 30}, {"muppathu", 30}, {"nalppathu", 40}, {"nalpathu", 40},
		{"anpathu", 50}, {"ampathu", 50}, {"arupathu", 60}, {"ezhupathu", 70}, {"enpathu", 80}, {"thonnuru", 90},
	}},
}

// DefaultLexicon is built from UnitTables at init and never mutated.
var DefaultLexicon = NewLexicon(UnitTables...)
