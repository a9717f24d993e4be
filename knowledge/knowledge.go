package knowledge

import (
	"strings"

	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/templates"
)

// DefaultSource labels entries added without a source.
const DefaultSource = "Conhecimento Customizado"

// Entry is one knowledge-base excerpt.
type Entry struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// Table is an ordered, read-only topic table. Lookups fold case and accents.
type Table struct {
	entries []Entry
	folded  []string
	index   map[string]int
}

// NewTable builds a table from entries in order. A later entry with the same
// folded topic replaces the earlier one in place.
func NewTable(entries ...Entry) *Table {
	t := &Table{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		t.put(e)
	}
	return t
}

func (t *Table) put(e Entry) {
	e.Content = strings.TrimSpace(e.Content)
	if e.Source == "" {
		e.Source = DefaultSource
	}
	key := fold(e.Topic)
	if i, ok := t.index[key]; ok {
		t.entries[i] = e
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, e)
	t.folded = append(t.folded, key)
}

// WithTopic returns a copy of the table with a custom topic added or replaced.
func (t *Table) WithTopic(topic, content, source string) *Table {
	out := NewTable(t.entries...)
	out.put(Entry{Topic: topic, Content: content, Source: source})
	return out
}

// Topics lists the table keys in order.
func (t *Table) Topics() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Topic
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Resolve finds the entry for one topic: an exact folded match first, then
// the key sharing the largest fraction of characters among keys that
// contain the topic or are contained in it. Ties go to table order.
func (t *Table) Resolve(topic string) (Entry, bool) {
	q := fold(topic)
	if q == "" {
		return Entry{}, false
	}
	if i, ok := t.index[q]; ok {
		return t.entries[i], true
	}

	best, bestScore := -1, 0.0
	for i, key := range t.folded {
		if !strings.Contains(key, q) && !strings.Contains(q, key) {
			continue
		}
		if s := overlapScore(key, q); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return t.entries[best], true
}

// Lookup resolves each topic and returns the matched entries, deduplicated
// by key, in query order. Unknown topics are dropped.
func (t *Table) Lookup(topics []string) []Entry {
	out := make([]Entry, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		e, ok := t.Resolve(topic)
		if !ok {
			continue
		}
		key := fold(e.Topic)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// CollectTopics returns the topics of every criterion in the warning or
// danger tier, deduplicated in first-seen order. Criteria at acceptable or
// better are skipped, and so are informative-only criteria whatever their
// tier.
func CollectTopics(r *classify.Result) []string {
	if r == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, c := range r.Classifications {
		if c.Tier.OK() || c.InformativeOnly {
			continue
		}
		for _, topic := range c.RAGTopics {
			if seen[topic] {
				continue
			}
			seen[topic] = true
			out = append(out, topic)
		}
	}
	return out
}

// Retrieve collects the result's topics and looks them up.
func (t *Table) Retrieve(r *classify.Result) []Entry {
	return t.Lookup(CollectTopics(r))
}

// overlapScore is the shorter string's length over the longer one's, in
// runes. Callers guarantee one contains the other.
func overlapScore(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

func fold(s string) string {
	return strings.Join(strings.Fields(templates.FoldAccents(s)), " ")
}
