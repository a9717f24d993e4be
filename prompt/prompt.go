package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/knowledge"
	"github.com/lucasjlepore/form-analyzer/templates"
)

// SystemPrompt is the fixed instruction set for the report writer.
const SystemPrompt = `Você é um especialista em biomecânica do movimento humano com formação em cinesiologia, fisioterapia e análise de movimento. Sua função é interpretar dados numéricos estruturados extraídos de landmarks corporais e gerar relatórios biomecânicos precisos e acionáveis.

REGRAS ABSOLUTAS:
1. NUNCA invente dados - analise APENAS os números fornecidos
2. NUNCA afirme algo que os dados numéricos não suportem explicitamente
3. Se uma métrica estiver ausente ou inconclusiva, indique "não foi possível avaliar"
4. NUNCA liste problemas contraditórios (ex: cifose E lordose excessivas no MESMO segmento)
5. Use a base de conhecimento para fundamentar cada recomendação
6. Cite a fonte/tópico quando usar informação da base de conhecimento
7. Priorize segurança - qualquer problema em zona vermelha (danger) deve ser sinalizado claramente
8. Estruture o relatório de forma clara e acionável para um coach ou fisioterapeuta

FORMATO DE RESPOSTA:
Sempre estruture assim:
- **Resumo Geral**: 1 frase sobre a qualidade geral
- **Score**: Baseado nas métricas
- **Problemas Identificados**: Apenas aqueles com dados numéricos de suporte
- **Pontos Positivos**: O que está bem
- **Recomendações**: Máximo 3 prioridades com exercícios específicos
`

// Video describes the capture the frames came from. Zero fields are omitted.
type Video struct {
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	FrameCount      int     `json:"frame_count,omitempty"`
	FPS             float64 `json:"fps,omitempty"`
}

// Input is everything the brief is rendered from.
type Input struct {
	Result       *classify.Result
	Template     *templates.CategoryTemplate
	ExerciseName string
	Knowledge    []knowledge.Entry
	Constraint   templates.Constraint
	Video        Video
	// AnalyzedAt is printed when set; leave zero for byte-stable output.
	AnalyzedAt time.Time
}

// Metadata summarizes what went into a prompt.
type Metadata struct {
	ExerciseName   string `json:"exercise_name"`
	Category       string `json:"category"`
	CriteriaCount  int    `json:"criteria_count"`
	DangerCount    int    `json:"danger_count"`
	WarningCount   int    `json:"warning_count"`
	RAGTopicsCount int    `json:"rag_topics_count"`
}

// BuiltPrompt is handed verbatim to the report-writing model.
type BuiltPrompt struct {
	SystemPrompt string   `json:"system_prompt"`
	UserPrompt   string   `json:"user_prompt"`
	Metadata     Metadata `json:"metadata"`
}

// Build renders the full analysis brief.
func Build(in Input) BuiltPrompt {
	r, tmpl := in.Result, in.Template
	constraint := in.Constraint
	if constraint == "" {
		constraint = r.Constraint
	}

	var b strings.Builder
	b.WriteString("# ANÁLISE BIOMECÂNICA DO EXERCÍCIO\n\n")
	fmt.Fprintf(&b, "**Exercício**: %s\n", in.ExerciseName)
	fmt.Fprintf(&b, "**Categoria**: %s\n", tmpl.DisplayLabel())
	if !in.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "**Data/Hora**: %s\n", in.AnalyzedAt.UTC().Format(time.RFC3339))
	}
	if in.Video.DurationSeconds > 0 {
		fmt.Fprintf(&b, "**Duração do Vídeo**: %.1fs\n", in.Video.DurationSeconds)
	}
	if in.Video.FrameCount > 0 {
		fmt.Fprintf(&b, "**Frames Analisados**: %d\n", in.Video.FrameCount)
	}
	b.WriteString("\n")

	if constraint.Active() {
		b.WriteString("## CONTEXTO DE EQUIPAMENTO\n\n")
		fmt.Fprintf(&b, "Exercício realizado com **%s**.\n", constraint.Label())
		b.WriteString("Amplitude reduzida pode ser resultado do equipamento/condição, não de limitação técnica do praticante.\n")
		b.WriteString("Critérios de profundidade e mobilidade são INFORMATIVOS neste contexto e não penalizam o score.\n")
		b.WriteString("Avalie apenas critérios de SEGURANÇA (valgo, lombar, tronco, assimetria) como definitivos.\n\n")
	}

	fmt.Fprintf(&b, "## Score Geral: %s/10\n\n", classify.FormatValue(r.OverallScore, ""))
	if r.HasDanger {
		b.WriteString("⚠️ **ATENÇÃO**: Existem critérios em zona crítica!\n\n")
	}

	writeCriteriaSection(&b, tmpl, in.ExerciseName)
	writeClassificationsSection(&b, r)
	writeKnowledgeSection(&b, in.Knowledge)
	writeInstructions(&b, r, constraint)
	writeResponseSchema(&b, r)

	return BuiltPrompt{
		SystemPrompt: SystemPrompt,
		UserPrompt:   b.String(),
		Metadata:     metadata(r, tmpl, in.ExerciseName, len(in.Knowledge)),
	}
}

// BuildMinimal renders a short brief without knowledge excerpts.
func BuildMinimal(r *classify.Result, tmpl *templates.CategoryTemplate, exerciseName string) BuiltPrompt {
	var b strings.Builder
	b.WriteString("# ANÁLISE BIOMECÂNICA\n\n")
	fmt.Fprintf(&b, "Exercício: %s (%s)\n", exerciseName, tmpl.DisplayLabel())
	fmt.Fprintf(&b, "Score: %s/10\n\n", classify.FormatValue(r.OverallScore, ""))

	if critical := r.ByTier(classify.TierDanger, classify.TierWarning); len(critical) > 0 {
		b.WriteString("### Problemas Identificados:\n\n")
		for _, c := range critical {
			fmt.Fprintf(&b, "- %s: %s\n", c.Label, classify.FormatValue(c.Value, c.Unit))
			if c.Tier == classify.TierDanger {
				fmt.Fprintf(&b, "  PERIGOSO: %s\n", c.RangeFor(c.Level))
			} else {
				fmt.Fprintf(&b, "  Alerta: %s\n", c.RangeFor(c.Level))
			}
		}
		b.WriteString("\n")
	}
	if ok := r.OK(); len(ok) > 0 {
		b.WriteString("### Dentro dos Limites:\n\n")
		for i, c := range ok {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s ✓\n", c.Label, classify.FormatValue(c.Value, c.Unit))
		}
	}
	b.WriteString("\nGere um relatório breve identificando problemas e recomendações.")

	return BuiltPrompt{
		SystemPrompt: SystemPrompt,
		UserPrompt:   b.String(),
		Metadata:     metadata(r, tmpl, exerciseName, 0),
	}
}

// Debug lays out a prompt and its metadata for inspection.
func Debug(p BuiltPrompt) string {
	rule := strings.Repeat("═", 60)
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "%s\n%s\n%s\n%s\n\n", rule, title, rule, body)
	}
	section("PROMPT DE SISTEMA", p.SystemPrompt)
	section("PROMPT DO USUÁRIO", p.UserPrompt)
	fmt.Fprintf(&b, "%s\nMETADADOS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Exercício: %s\n", p.Metadata.ExerciseName)
	fmt.Fprintf(&b, "Categoria: %s\n", p.Metadata.Category)
	fmt.Fprintf(&b, "Critérios: %d\n", p.Metadata.CriteriaCount)
	fmt.Fprintf(&b, "  - Danger: %d\n", p.Metadata.DangerCount)
	fmt.Fprintf(&b, "  - Warning: %d\n", p.Metadata.WarningCount)
	fmt.Fprintf(&b, "Tópicos RAG: %d", p.Metadata.RAGTopicsCount)
	return b.String()
}

func metadata(r *classify.Result, tmpl *templates.CategoryTemplate, exerciseName string, topics int) Metadata {
	return Metadata{
		ExerciseName:   exerciseName,
		Category:       tmpl.Category,
		CriteriaCount:  len(r.Classifications),
		DangerCount:    r.Summary.Danger,
		WarningCount:   r.Summary.Warning,
		RAGTopicsCount: topics,
	}
}
