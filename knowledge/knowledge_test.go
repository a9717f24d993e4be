package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/pose"
	"github.com/lucasjlepore/form-analyzer/templates"
)

func topicsOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Topic
	}
	return out
}

func TestLookupExactAndUnknown(t *testing.T) {
	t.Parallel()

	table := DefaultTable()

	got := table.Lookup([]string{"valgo dinâmico"})
	require.Len(t, got, 1)
	assert.Equal(t, "valgo dinâmico", got[0].Topic)
	assert.Equal(t, "Análise de Movimento - Vulnerabilidades do Joelho", got[0].Source)
	assert.Contains(t, got[0].Content, "Valgo Dinâmico do Joelho")

	assert.Empty(t, table.Lookup([]string{"xyz123"}))
	assert.Empty(t, table.Lookup(nil))
}

func TestLookupFoldsCaseAndAccents(t *testing.T) {
	t.Parallel()

	got := DefaultTable().Lookup([]string{"  VALGO   Dinamico "})
	require.Len(t, got, 1)
	assert.Equal(t, "valgo dinâmico", got[0].Topic)
}

func TestResolvePrefersClosestSubstringMatch(t *testing.T) {
	t.Parallel()

	table := DefaultTable()

	e, ok := table.Resolve("flexão")
	require.True(t, ok)
	assert.Equal(t, "flexão lombar", e.Topic, "shorter key shares more of the query")

	e, ok = table.Resolve("queda pélvica contralateral")
	require.True(t, ok)
	assert.Equal(t, "queda pélvica", e.Topic)

	_, ok = table.Resolve("valgo de joelho")
	assert.False(t, ok)
}

func TestResolveTieGoesToTableOrder(t *testing.T) {
	t.Parallel()

	table := NewTable(
		Entry{Topic: "xa", Content: "first"},
		Entry{Topic: "ax", Content: "second"},
	)
	e, ok := table.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, "first", e.Content)
}

func TestLookupDeduplicatesByKey(t *testing.T) {
	t.Parallel()

	got := DefaultTable().Lookup([]string{"butt wink", "Butt Wink", "butt", "flexão lombar"})
	assert.Equal(t, []string{"butt wink", "flexão lombar"}, topicsOf(got))
}

func TestWithTopicDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := DefaultTable()
	extended := base.WithTopic("mobilidade tornozelo", "  Dorsiflexão  ", "")

	assert.Empty(t, base.Lookup([]string{"mobilidade tornozelo"}))
	got := extended.Lookup([]string{"mobilidade tornozelo"})
	require.Len(t, got, 1)
	assert.Equal(t, "Dorsiflexão", got[0].Content)
	assert.Equal(t, DefaultSource, got[0].Source)
	assert.Equal(t, base.Len()+1, extended.Len())

	replaced := extended.WithTopic("Mobilidade Tornozelo", "novo", "x")
	assert.Equal(t, extended.Len(), replaced.Len())
}

func TestCollectTopicsSkipsPassingAndInformative(t *testing.T) {
	t.Parallel()

	tmpl := templates.Default().Template(pose.CategorySquat)
	metrics := []pose.MetricValue{
		{Metric: pose.MetricHipAngleAtBottom, Value: 130},
		{Metric: pose.MetricKneeMedialDisplacement, Value: 4.2},
		{Metric: pose.MetricLumbarFlexionChange, Value: 25},
		{Metric: pose.MetricTrunkInclination, Value: 20},
	}

	bars := classify.Classify(metrics, tmpl, "", templates.ConstraintSafetyBars)
	assert.Equal(t, []string{
		"valgo dinâmico",
		"insuficiência glúteo médio",
		"ativação VMO",
		"valgo de joelho",
		"retroversão pélvica agachamento",
		"butt wink",
		"flexão lombar",
	}, CollectTopics(bars))

	free := classify.Classify(metrics, tmpl, "", templates.ConstraintNone)
	assert.Equal(t, "profundidade agachamento", CollectTopics(free)[0])

	got := DefaultTable().Retrieve(bars)
	assert.Equal(t, []string{
		"valgo dinâmico",
		"insuficiência glúteo médio",
		"ativação VMO",
		"retroversão pélvica agachamento",
		"butt wink",
		"flexão lombar",
	}, topicsOf(got))

	assert.Nil(t, CollectTopics(nil))
}

func TestTopicsByCategory(t *testing.T) {
	t.Parallel()

	assert.Contains(t, TopicsByCategory("SQUAT"), "valgo dinâmico")
	assert.Empty(t, TopicsByCategory("juggling"))
	assert.Equal(t, 17, len(DefaultTable().Topics()))
}
