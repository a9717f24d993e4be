package prompt

import (
	"fmt"
	"strings"

	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/knowledge"
	"github.com/lucasjlepore/form-analyzer/templates"
)

func writeCriteriaSection(b *strings.Builder, tmpl *templates.CategoryTemplate, exerciseName string) {
	fmt.Fprintf(b, "## Critérios de Avaliação para %s\n\n", exerciseName)
	fmt.Fprintf(b, "Categoria: **%s**\n\n", tmpl.DisplayLabel())
	fmt.Fprintf(b, "Articulações monitoradas: %s\n\n", strings.Join(tmpl.KeyJoints, ", "))
	fmt.Fprintf(b, "Fases do movimento: %s\n\n", strings.Join(tmpl.Phases, ", "))
}

func writeClassificationsSection(b *strings.Builder, r *classify.Result) {
	b.WriteString("## Dados Coletados\n\n")

	if danger := r.ByTier(classify.TierDanger); len(danger) > 0 {
		b.WriteString("### 🔴 ZONA CRÍTICA (Perigo)\n\n")
		for _, c := range danger {
			tag := ""
			if c.InformativeOnly {
				tag = " [INFORMATIVO]"
			}
			fmt.Fprintf(b, "- **%s**%s (%s)\n", c.Label, tag, c.Metric)
			fmt.Fprintf(b, "  - Valor: %s | Range Perigoso: %s\n", classify.FormatValue(c.Value, c.Unit), dangerRange(c))
			if c.Note != "" {
				fmt.Fprintf(b, "  - Nota: %s\n", c.Note)
			}
			if c.SafetyCritical {
				b.WriteString("  - ⚠️ CRITÉRIO DE SEGURANÇA\n")
			}
			if c.InformativeOnly {
				b.WriteString("  - ℹ️ Classificação informativa, amplitude limitada por equipamento/condição\n")
			}
			b.WriteString("\n")
		}
	}

	if warnings := r.ByTier(classify.TierWarning); len(warnings) > 0 {
		b.WriteString("### 🟡 ZONA DE ALERTA\n\n")
		for _, c := range warnings {
			tag := ""
			if c.InformativeOnly {
				tag = " [INFORMATIVO]"
			}
			fmt.Fprintf(b, "- **%s**%s (%s)\n", c.Label, tag, c.Metric)
			fmt.Fprintf(b, "  - Valor: %s | Range de Alerta: %s\n", classify.FormatValue(c.Value, c.Unit), c.RangeFor(c.Level))
			if c.Note != "" {
				fmt.Fprintf(b, "  - Nota: %s\n", c.Note)
			}
			if c.SafetyCritical {
				b.WriteString("  - ⚠️ CRITÉRIO DE SEGURANÇA\n")
			}
			b.WriteString("\n")
		}
	}

	if ok := r.OK(); len(ok) > 0 {
		b.WriteString("### 🟢 DENTRO DOS LIMITES (Aceitável/Bom/Excelente)\n\n")
		for _, c := range ok {
			fmt.Fprintf(b, "- **%s**: %s (%s)\n", c.Label, classify.FormatValue(c.Value, c.Unit), c.RangeFor(c.Level))
		}
		b.WriteString("\n")
	}
}

// dangerRange prefers the matched level's range; a fallback match may land
// on a level whose expression was never parsed.
func dangerRange(c classify.CriteriaClassification) string {
	if expr := c.RangeFor(c.Level); expr != "" {
		return expr
	}
	return c.WorstRange()
}

// writeKnowledgeSection groups excerpts by topic in first-seen order.
func writeKnowledgeSection(b *strings.Builder, entries []knowledge.Entry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("## Base de Conhecimento\n\n")

	var order []string
	byTopic := make(map[string][]knowledge.Entry)
	for _, e := range entries {
		if _, ok := byTopic[e.Topic]; !ok {
			order = append(order, e.Topic)
		}
		byTopic[e.Topic] = append(byTopic[e.Topic], e)
	}
	for _, topic := range order {
		fmt.Fprintf(b, "### %s\n", topic)
		for _, e := range byTopic[topic] {
			fmt.Fprintf(b, "%s\n", e.Content)
			if e.Source != "" {
				fmt.Fprintf(b, "_Fonte: %s_\n", e.Source)
			}
		}
		b.WriteString("\n")
	}
}

func writeInstructions(b *strings.Builder, r *classify.Result, constraint templates.Constraint) {
	b.WriteString("## INSTRUÇÕES PARA ANÁLISE\n\n")
	b.WriteString("Ao analisar os dados acima:\n\n")

	if constraint.Active() {
		fmt.Fprintf(b, "0. **CONTEXTO**: Exercício com %s. Critérios marcados como INFORMATIVOS não devem ser interpretados como problemas reais, a amplitude pode estar limitada externamente.\n\n", constraint.Label())
	}
	if r.Summary.Danger > 0 {
		b.WriteString("1. **PRIORIDADE MÁXIMA**: Identifique os critérios em ZONA CRÍTICA e explique POR QUÊ são perigosos\n")
		b.WriteString("   - Qual a causa biomecânica do problema?\n")
		b.WriteString("   - Qual é o risco específico de lesão?\n\n")
	}
	if r.Summary.Warning > 0 {
		b.WriteString("2. **PRIORIDADE ALTA**: Analise critérios em ZONA DE ALERTA\n")
		b.WriteString("   - Como podem evoluir para problema crítico?\n")
		b.WriteString("   - Qual é a progressão esperada se não corrigido?\n\n")
	}

	b.WriteString("3. Gere relatório estruturado em português com:\n")
	b.WriteString("   - Resumo geral (1 sentença)\n")
	fmt.Fprintf(b, "   - Score (já calculado: %s/10)\n", classify.FormatValue(r.OverallScore, ""))
	b.WriteString("   - Análise detalhada dos problemas encontrados\n")
	b.WriteString("   - Recomendações específicas e exercícios corretivos\n")
	b.WriteString("   - Sequência de correção (qual problema corrigir primeiro)\n\n")
}

func writeResponseSchema(b *strings.Builder, r *classify.Result) {
	b.WriteString("## ⚠️ RETORNE EXATAMENTE NESTE JSON (sem texto antes/depois):\n\n")
	b.WriteString(`{
  "resumo_executivo": "2-3 frases, mencionar constraint se houver",
  "analise_cadeia_movimento": {
    "fase_excentrica": "Descrição dados numéricos + relações entre articulações",
    "fase_concentrica": "Descrição retorno, controle, alinhamento",
    "relacoes_proporcionais": "Análise de coerência entre ângulos"
  },
  "pontos_positivos": [
    "Critério aceitável/superior com explicação do significado",
    "Critério aceitável/superior com explicação do significado"
  ],
  "pontos_atencao": [
    {
      "criterio": "Nome",
      "valor": "valor com unidade",
      "o_que_indica": "Explicação baseada em dados",
      "possivel_causa": "Baseado na base de conhecimento",
      "corretivo_sugerido": "Exercício específico"
    }
  ],
  "conclusao_cientifica": "2-3 frases fundamentadas. Se constraint: recomendar reavaliação.",
  "recomendacoes_top3": [
    {"prioridade": 1, "descricao": "Mais impactante"},
    {"prioridade": 2, "descricao": "Segunda prioridade"},
    {"prioridade": 3, "descricao": "Terceira prioridade"}
  ],
`)
	fmt.Fprintf(b, "  \"score_geral\": %s,\n", classify.FormatValue(r.OverallScore, ""))
	b.WriteString("  \"classificacao\": \"EXCELENTE|BOM|REGULAR|NECESSITA_CORRECAO\"\n}")
}
