package knowledge

import (
	"strings"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// DefaultTable returns the built-in biomechanics knowledge base.
func DefaultTable() *Table {
	return NewTable(defaultEntries()...)
}

var topicsByCategory = map[string][]string{
	pose.CategorySquat: {
		"profundidade agachamento",
		"valgo dinâmico",
		"insuficiência glúteo médio",
		"ativação VMO",
		"butt wink",
		"inclinação anterior tronco agachamento",
		"controle core",
		"retroversão pélvica agachamento",
		"flexão lombar",
	},
	pose.CategoryHinge: {
		"flexão lombar levantamento terra",
		"neutro coluna deadlift",
		"padrão hip hinge",
		"dominância quadril",
		"posterior chain",
		"glute involvement",
	},
	pose.CategoryHorizontalPress: {
		"impingement subacromial",
		"retração escapular",
		"estabilidade escapular supino",
		"assimetria bilateral",
	},
	pose.CategoryVerticalPress: {
		"mobilidade overhead",
		"compensação lombar overhead",
		"core stability overhead",
	},
	pose.CategoryPull: {
		"retração escapular",
		"estabilidade escapular",
		"momentum cheating row",
	},
	pose.CategoryUnilateral: {
		"sinal Trendelenburg",
		"queda pélvica",
		"assimetria bilateral",
		"compensação asimétrica",
		"valgo unilateral",
	},
	pose.CategoryCore: {
		"controle core",
		"estabilidade pélvica",
		"alinhamento neutro prancha",
	},
}

// TopicsByCategory lists the topics usually relevant to a category.
func TopicsByCategory(category string) []string {
	return append([]string(nil), topicsByCategory[strings.ToLower(category)]...)
}

func defaultEntries() []Entry {
	return []Entry{
		{
			Topic:  "profundidade agachamento",
			Source: "Biomecânica do Movimento Humano",
			Content: `**Profundidade do Agachamento**

A profundidade do agachamento é determinada pelo ângulo do quadril na posição mais baixa:
- **Abaixo da paralela**: quadril abaixo da linha dos joelhos (ângulo < 80°)
  - Máxima ativação muscular, maior demanda de mobilidade
  - Recomendado para: powerlifting, hipertrofia
- **Paralela**: quadril alinhado com joelho (ângulo ~90°)
  - Ponto de referência comum em competições
  - Bom compromisso entre amplitude e segurança
- **Acima da paralela**: quadril acima da linha dos joelhos (ângulo > 90°)
  - Menor demanda de mobilidade de tornozelo
  - Menos ativação de glúteo máximo
  - Comum em iniciantes com limitações de mobilidade`,
		},
		{
			Topic:  "valgo dinâmico",
			Source: "Análise de Movimento - Vulnerabilidades do Joelho",
			Content: `**Valgo Dinâmico do Joelho**

Valgo é o colapso medial do joelho durante o movimento ("knee cave").

**Causas Biomecânicas:**
1. Insuficiência do glúteo médio, principal causa; abdutor fraco não estabiliza a pelve
2. Fraqueza de rotadores externos do quadril e desequilíbrio VMO vs vasto lateral
3. Limitação de dorsiflexão do tornozelo, compensada com rotação interna de tíbia

**Risco de Lesão:**
- Aumento de cisalhamento no ligamento cruzado anterior (LCA)
- Sobrecarga de estruturas mediais (menisco medial, ligamento colateral)
- Dor patelofemoral

**Correção Prioritária:**
1. Fortalecer glúteo médio (clams, abdução lateral em pé, step-ups)
2. Mobilizar tornozelo (flexão dorsal)
3. Melhorar propriocepção (apoio unipodal, mini band walks)
4. Regressões de movimento (goblet squat com foco no rastreamento do joelho)`,
		},
		{
			Topic:  "insuficiência glúteo médio",
			Source: "Estabilidade Pélvica e Controle de Movimento",
			Content: `**Insuficiência do Glúteo Médio**

O glúteo médio é o abdutor primário do quadril e estabilizador fundamental da pelve.

**Sinais de Fraqueza:**
- Queda pélvica contralateral durante agachamento unilateral
- Valgo de joelho
- Inclinação lateral do tronco
- Dor lateral de quadril

**Testes Diagnósticos:**
- Teste de Trendelenburg
- Abdução contra resistência
- Queda pélvica > 5° em exercícios unilaterais

**Exercícios Corretivos:**
- Clams com mini band
- Abdução lateral em pé com controle
- Step-ups, monster walks, lateral band walks
- Ponte de glúteo unilateral`,
		},
		{
			Topic:  "ativação VMO",
			Source: "Análise Muscular - Quadríceps",
			Content: `**Vasto Medial Oblíquo (VMO) - Ativação e Função**

O VMO é a porção medial do quadríceps, crítica para a estabilização patelofemoral.

**Função Específica:**
- Rastreamento medial da patela
- Extensão terminal (últimos 30°)
- Prevenção de subluxação patelar lateral

**Desequilíbrio VMO vs Vasto Lateral:**
- Vasto lateral dominante puxa a patela lateralmente
- Dor patelofemoral anterior
- Valgo dinâmico do joelho

**Exercícios de Preferência:**
- Step-ups
- Terminal knee extensions com banda
- Adução isométrica (Copenhagen)`,
		},
		{
			Topic:  "butt wink",
			Source: "Lisca Lombar e Integridade Discal",
			Content: `**Butt Wink - Retroversão Pélvica no Agachamento**

Inclinação pélvica posterior que ocorre no fundo do agachamento, com flexão adicional da coluna lombar.

**Causas:**
1. Limitação de mobilidade (isquiotibiais, glúteos, dorsiflexão de tornozelo)
2. Fraqueza de controle de core sob carga
3. Proporções antropométricas (fêmur longo, tronco longo)

**Risco de Lesão:**
- Aumento de pressão intradiscal em L4-L5
- Flexão repetida sob carga acelera degeneração discal

**Progressão de Melhoria:**
1. Priorizar mobilidade de tornozelo e isquiotibiais
2. Reduzir a profundidade até o limite antes do butt wink
3. Fortalecer core em isometria (pranchas)
4. Elevar o calcanhar temporariamente
5. Aumentar a profundidade gradualmente conforme a mobilidade melhora`,
		},
		{
			Topic:  "inclinação anterior tronco agachamento",
			Source: "Análise de Padrão de Movimento - Agachamento",
			Content: `**Inclinação Anterior do Tronco no Agachamento**

**Referências Esperadas:**
- Back squat: 45° ± 10°
- Front squat: < 30°
- Goblet squat: < 35°

**Biomecânica:**
- Maior inclinação aumenta o momento no quadril e a demanda de glúteo
- Menor inclinação aumenta a demanda de quadríceps

**Problemas com Excesso:**
- Transferência de carga para a coluna lombar
- Possível ligação com butt wink
- Redução de ativação de quadríceps`,
		},
		{
			Topic:  "controle core",
			Source: "Estabilidade Espinhal e Core Training",
			Content: `**Controle de Core - Fundamentos para Estabilidade**

O core é um sistema integrado de estabilização: reto abdominal, oblíquos, eretores, multífidos, quadrado lombar, transverso, assoalho pélvico e diafragma.

**Déficit de Controle - Sinais:**
- Extensão ou flexão excessiva da coluna durante o exercício
- Incapacidade de manter alinhamento neutro
- Colapso postural sob fadiga

**Progressão:**
1. Isométricos básicos: prancha frontal, prancha lateral, dead bug
2. Dinâmica com restrição: Pallof press, suitcase carry, bird dog
3. Movimento livre: ab wheel rollout, hanging leg raise, Turkish getup`,
		},
		{
			Topic:   "retroversão pélvica agachamento",
			Source:  "Cruzamento - Veja butt wink",
			Content: "**Retroversão Pélvica no Agachamento (Butt Wink)**\n\nVeja tópico: 'butt wink'",
		},
		{
			Topic:  "flexão lombar",
			Source: "Integridade Discal e Movimento Seguro",
			Content: `**Flexão Lombar - Biomecânica e Risco**

**Em Contexto de Agachamento:**
- Pequeno aumento esperado no fundo (até 10°)
- > 20° indica potencial problema (butt wink excessivo)
- Deve retornar ao neutro na subida

**Estratégias de Proteção:**
- Manter lordose fisiológica
- Trabalhar mobilidade de quadril
- Fortalecer extensores lombares
- Não forçar profundidade além da capacidade de manter neutro`,
		},
		{
			Topic:  "flexão lombar levantamento terra",
			Source: "Técnica Segura em Levantamentos Pesados",
			Content: `**Flexão Lombar no Levantamento Terra**

**Setup:** coluna em neutro com lordose fisiológica (10-30° é normal), ombros sobre a barra.

**Primeira Tração:** manter neutro (0-10° de flexão adicional no máximo); qualquer arredondamento adicional aumenta o risco discal em L5-S1 e L4-L5.

**Causas de Arredondamento (> 40°):**
1. Fraqueza de extensores lombares
2. Limitação de mobilidade de quadril
3. Técnica inadequada (puxar com as costas antes das pernas)
4. Carga acima da força atual

**Progressão Segura:** carga leve com vídeo, good mornings, back extensions, RDL.`,
		},
		{
			Topic:  "neutro coluna deadlift",
			Source: "Biomecânica de Levantamento Terra",
			Content: `**Manutenção de Coluna Neutra no Deadlift**

Coluna neutra mantém as curvas naturais e distribui a carga entre os discos.

**Aplicação Prática:**
1. Cervical em linha com o tronco
2. Torácica com leve cifose natural
3. Lombar com lordose natural mantida

**Checklist:**
- Escápulas posicionadas
- Core engajado antes de puxar
- Lats ativos ("puxar a barra contra as pernas")`,
		},
		{
			Topic:  "impingement subacromial",
			Source: "Patologia de Ombro e Prevenção",
			Content: `**Síndrome de Impingement Subacromial**

Compressão do tendão do supraespinal e da bolsa no espaço entre o acrômio e a cabeça do úmero.

**Provocadores:**
- Cifose excessiva
- Rotação interna e abdução excessiva do cotovelo no press
- Falta de estabilização escapular

**Prevenção:**
1. Cotovelo em ~60-75° de abdução (não > 85°)
2. Mobilidade de rotação externa e extensão torácica
3. Fortalecer manguito rotador e estabilizadores escapulares`,
		},
		{
			Topic:  "retração escapular",
			Source: "Estabilidade e Posicionamento de Ombro",
			Content: `**Retração Escapular - Posicionamento e Função**

Retração é o movimento posterior das escápulas; cria base estável para o braço e reduz impingement.

**No Supino:** retrair ao deitar no banco e manter durante todo o movimento.
**No Deadlift:** "puxar os lats para baixo" prepara a tração.

**Exercícios de Ativação:** face pulls, band pull-aparts, scapular push-ups, prone Y-raises.`,
		},
		{
			Topic:  "sinal Trendelenburg",
			Source: "Diagnóstico e Correção de Assimetrias",
			Content: `**Sinal de Trendelenburg - Indicador de Fraqueza**

Em apoio unipodal, a pelve desce do lado oposto, indicando fraqueza do abdutor do lado de apoio.

**Interpretação:**
- Queda > 5° sugere glúteo médio insuficiente
- Aumenta o risco de valgo e compensações

**Correção:**
1. Exercícios de isolamento: clams, abduções
2. Exercícios funcionais: afundos, step-ups, agachamento unilateral
3. Reavaliação após 2-3 semanas`,
		},
		{
			Topic:  "queda pélvica",
			Source: "Simetria e Equilíbrio no Movimento",
			Content: `**Queda Pélvica - Assimetria de Estabilidade**

**Normal vs Patológico:**
- < 5°: normal
- 5-10°: Trendelenburg leve
- > 10°: Trendelenburg positivo clinicamente significativo

**Causas:** glúteo médio fraco, dor de quadril contralateral, diferença de comprimento de membros, desequilíbrio de força bilateral.

**Correção:** isolamento do lado fraco com alto volume e baixa intensidade, depois movimento funcional progressivo.`,
		},
		{
			Topic:  "assimetria bilateral",
			Source: "Equilibração de Força e Padrão",
			Content: `**Assimetria Bilateral - Identificação e Correção**

Diferenças entre os lados em amplitude, força, padrão ou ativação muscular.

**Impactos:** maior risco de lesão no lado fraco, compensação postural crônica, movimento ineficiente.

**Progressão de Correção:**
1. Conscientização com feedback de vídeo
2. Trabalho unilateral no lado fraco
3. Equalização de volume e intensidade
4. Reintegração bilateral
5. Reavaliação regular`,
		},
		{
			Topic:  "compensação asimétrica",
			Source: "Padrão de Movimento e Aprendizagem Motora",
			Content: `**Compensação Assimétrica - Padrão de Substituição**

Quando um lado é fraco, o corpo compensa com padrões anormais: inclinação pélvica lateral, valgo contralateral, rotação excessiva.

**Efeito Cascata:** fraqueza local leva a compensação regional, que se fixa como padrão e aumenta o risco estrutural.

**Estratégia:** intervir cedo (primeiras 4-6 semanas), regressão de movimento quando necessário, foco no padrão antes da carga.`,
		},
	}
}
