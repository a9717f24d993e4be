package templates

import "github.com/lucasjlepore/form-analyzer/pose"

func th(pairs ...string) []Threshold {
	out := make([]Threshold, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Threshold{Level: pairs[i], Expr: pairs[i+1]})
	}
	return out
}

func squatTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategorySquat,
		Label:          "Agachamento",
		KeyJoints:      []string{"knee", "hip", "ankle", "trunk", "lumbar", "thoracic"},
		KeyAlignments:  []string{"knee_valgus", "bar_tilt", "hip_level", "shoulder_level"},
		KeyPositions:   []string{"heel_contact", "hip_below_knee", "weight_distribution"},
		Phases:         []string{"eccentric_descent", "bottom_position", "concentric_ascent"},
		SafetyCritical: []string{"knee_valgus", "lumbar_control"},
		ROMDependent:   []string{"depth", "ankle_mobility", "tempo"},
		Criteria: []Criterion{
			{
				Name:       "depth",
				Metric:     pose.MetricHipAngleAtBottom,
				Label:      "Profundidade",
				Thresholds: th("excellent", "< 70°", "good", "70-90°", "acceptable", "90-100°", "warning", "100-120°", "danger", "> 120°"),
				Note:       "Quadril abaixo da linha do joelho = ângulo quadril < ~80°",
				RAGTopics:  []string{"profundidade agachamento", "amplitude de movimento agachamento", "ângulo do quadril"},
			},
			{
				Name:       "knee_valgus",
				Metric:     pose.MetricKneeMedialDisplacement,
				Label:      "Valgo de Joelho",
				Thresholds: th("acceptable", "< 3cm", "warning", "3-6cm", "danger", "> 6cm"),
				Note:       "Deslocamento medial do joelho em cm (projeção frontal)",
				RAGTopics:  []string{"valgo dinâmico", "insuficiência glúteo médio", "ativação VMO", "valgo de joelho"},
			},
			{
				Name:       "trunk_control",
				Metric:     pose.MetricTrunkInclination,
				Label:      "Controle de Tronco",
				Thresholds: th("acceptable", "< 45° (back squat) / < 30° (front squat)", "warning", "45-55° (back squat)", "danger", "> 55° (back squat)"),
				Note:       "Ângulo do tronco em relação à vertical",
				RAGTopics:  []string{"inclinação anterior tronco agachamento", "controle core", "ângulo do tronco agachamento"},
			},
			{
				Name:       "ankle_mobility",
				Metric:     pose.MetricAnkleDorsiflexion,
				Label:      "Mobilidade de Tornozelo",
				Thresholds: th("excellent", "> 35°", "good", "30-35°", "acceptable", "25-30°", "warning", "20-25°", "danger", "< 20°"),
				Note:       "Dorsiflexão do tornozelo em graus",
				RAGTopics:  []string{"mobilidade tornozelo", "dorsiflexão", "limitação gastrocnêmio"},
			},
			{
				Name:       "lumbar_control",
				Metric:     pose.MetricLumbarFlexionChange,
				Label:      "Controle Lombar",
				Thresholds: th("acceptable", "< 10°", "warning", "10-20°", "danger", "> 20°"),
				Note:       "Mudança de flexão lombar do início até o fundo (butt wink)",
				RAGTopics:  []string{"retroversão pélvica agachamento", "butt wink", "flexão lombar"},
			},
			{
				Name:       "asymmetry",
				Metric:     pose.MetricBilateralAngleDifference,
				Label:      "Assimetria Bilateral",
				Thresholds: th("acceptable", "< 5°", "warning", "5-10°", "danger", "> 10°"),
				Note:       "Diferença entre ângulos de joelho/quadril direito e esquerdo",
				RAGTopics:  []string{"assimetria bilateral", "desequilíbrio muscular", "compensação assimétrica"},
			},
			{
				Name:       "tempo",
				Metric:     pose.MetricEccentricConcentricRatio,
				Label:      "Tempo do Movimento",
				Thresholds: th("excellent", "> 1.5:1", "acceptable", "1:1 a 1.5:1", "warning", "0.8:1 a 1:1", "danger", "< 0.8:1"),
				Note:       "Razão entre tempo excêntrico e concêntrico",
				RAGTopics:  []string{"controle excêntrico", "tempo agachamento", "velocidade movimento"},
			},
		},
	}
}

func hingeTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryHinge,
		Label:          "Levantamento Terra / Posterior",
		KeyJoints:      []string{"hip", "knee", "lumbar", "thoracic", "shoulder"},
		KeyAlignments:  []string{"bar_path_deviation", "hip_level", "shoulder_over_bar"},
		KeyPositions:   []string{"bar_contact_shins", "lockout_complete", "neutral_spine"},
		Phases:         []string{"setup", "pull_floor_to_knee", "pull_knee_to_lockout", "eccentric_return"},
		SafetyCritical: []string{"lumbar_neutrality", "bar_path"},
		ROMDependent:   []string{"lockout"},
		Criteria: []Criterion{
			{
				Name:       "lumbar_neutrality",
				Metric:     pose.MetricLumbarFlexion,
				Label:      "Neutralidade Lombar",
				Thresholds: th("acceptable", "10-30°", "warning", "30-40°", "danger", "> 40°"),
				Note:       "Lordose fisiológica mantida (10-30°) = bom. Acima disso = risco de lesão",
				RAGTopics:  []string{"flexão lombar levantamento terra", "coluna neutra levantamento terra", "proteção disco"},
			},
			{
				Name:       "hip_hinge_dominance",
				Metric:     pose.MetricHipVsKneeRatio,
				Label:      "Dominância de Quadril",
				Thresholds: th("excellent", "> 2:1", "good", "1.5:1 a 2:1", "acceptable", "1:1 a 1.5:1", "warning", "0.8:1 a 1:1", "danger", "< 0.8:1"),
				Note:       "Quadril deve fechar muito mais que joelho. Ratio < 1 = está agachando",
				RAGTopics:  []string{"padrão dobradiça de quadril", "dominância quadril", "cadeia posterior", "ativação glúteo"},
			},
			{
				Name:       "bar_path",
				Metric:     "horizontal_bar_deviation_cm",
				Label:      "Trajetória da Barra",
				Thresholds: th("excellent", "< 2cm", "acceptable", "2-4cm", "warning", "4-6cm", "danger", "> 6cm"),
				Note:       "Desvio horizontal da barra em relação à linha vertical",
				RAGTopics:  []string{"trajetória barra levantamento terra", "eficiência mecânica", "posição da barra"},
			},
			{
				Name:       "thoracic_extension",
				Metric:     pose.MetricThoracicFlexion,
				Label:      "Extensão Torácica",
				Thresholds: th("good", "< 30°", "warning", "30-45°", "danger", "> 45°"),
				Note:       "Cifose torácica - deve manter extensão torácica",
				RAGTopics:  []string{"cifose torácica levantamento terra", "extensão torácica", "posição escapular"},
			},
			{
				Name:       "lockout",
				Metric:     pose.MetricHipExtensionAtTop,
				Label:      "Lockout (Extensão Final)",
				Thresholds: th("complete", "> 170°", "partial", "160-170°", "incomplete", "< 160°"),
				Note:       "Extensão completa do quadril no topo = lockout",
				RAGTopics:  []string{"lockout levantamento terra", "extensão quadril completa", "ativação glúteo máximo"},
			},
		},
	}
}

func horizontalPressTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryHorizontalPress,
		Label:          "Supino / Press Horizontal",
		KeyJoints:      []string{"shoulder", "elbow", "wrist", "thoracic"},
		KeyAlignments:  []string{"bar_path", "elbow_flare", "wrist_alignment", "shoulder_retraction"},
		KeyPositions:   []string{"scapula_retracted", "arch_maintained", "feet_flat"},
		Phases:         []string{"setup", "eccentric_descent", "bottom_position", "concentric_press"},
		SafetyCritical: []string{"wrist_alignment", "elbow_flare"},
		ROMDependent:   []string{"elbow_angle_bottom"},
		Criteria: []Criterion{
			{
				Name:       "elbow_angle_bottom",
				Metric:     pose.MetricElbowAngleAtChest,
				Label:      "Ângulo do Cotovelo (Base)",
				Thresholds: th("excellent", "< 80°", "good", "80-90°", "acceptable", "90-110°", "warning", "110-130°", "danger", "> 130°"),
				Note:       "Ângulo do cotovelo na base do supino",
				RAGTopics:  []string{"amplitude supino", "ROM completo supino", "ângulo cotovelo supino"},
			},
			{
				Name:       "elbow_flare",
				Metric:     pose.MetricElbowAbduction,
				Label:      "Abdução do Cotovelo",
				Thresholds: th("optimal", "45-60°", "acceptable", "60-75°", "warning", "75-85°", "danger", "> 85°"),
				Note:       "Ângulo de abdução do cotovelo (afastamento do corpo)",
				RAGTopics:  []string{"abdução ombro supino", "impacto subacromial", "saúde ombro supino"},
			},
			{
				Name:       "wrist_alignment",
				Metric:     pose.MetricWristExtension,
				Label:      "Alinhamento do Punho",
				Thresholds: th("neutral", "< 10°", "warning", "10-25°", "danger", "> 25°"),
				Note:       "Extensão do punho - deve ficar neutra (< 10°)",
				RAGTopics:  []string{"posição punho supino", "alinhamento punho barra", "estabilidade punho"},
			},
			{
				Name:       "bar_path",
				Metric:     "bar_path_efficiency",
				Label:      "Trajetória da Barra",
				Thresholds: th("excellent", "Arco suave, atinge mid-chest", "acceptable", "Trajetória consistente", "warning", "Desvios laterais 3-5cm", "danger", "> 5cm desvio"),
				RAGTopics:  []string{"trajetória barra supino", "eficiência mecânica supino"},
			},
		},
	}
}

func verticalPressTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryVerticalPress,
		Label:          "Desenvolvimento / Press Vertical",
		KeyJoints:      []string{"shoulder", "elbow", "wrist", "lumbar", "thoracic"},
		KeyAlignments:  []string{"bar_over_midfoot", "elbow_under_wrist", "lumbar_extension"},
		KeyPositions:   []string{"full_lockout", "rib_cage_down", "glutes_engaged"},
		Phases:         []string{"setup", "press_to_forehead", "press_to_lockout", "eccentric_return"},
		SafetyCritical: []string{"lumbar_compensation", "overhead_lockout"},
		ROMDependent:   []string{"overhead_lockout"},
		Criteria: []Criterion{
			{
				Name:       "overhead_lockout",
				Metric:     pose.MetricShoulderFlexionAtTop,
				Label:      "Lockout Overhead",
				Thresholds: th("complete", "> 170°", "partial", "150-170°", "incomplete", "< 150°"),
				Note:       "Flexão de ombro no lockout final",
				RAGTopics:  []string{"mobilidade overhead", "flexão ombro overhead", "lockout desenvolvimento"},
			},
			{
				Name:       "lumbar_compensation",
				Metric:     pose.MetricLumbarExtensionIncrease,
				Label:      "Compensação Lombar",
				Thresholds: th("controlled", "< 5°", "warning", "5-15°", "danger", "> 15°"),
				Note:       "Aumento de extensão lombar durante press (hiperextensão = risco)",
				RAGTopics:  []string{"hiperextensão lombar desenvolvimento", "compensação lombar overhead", "estabilidade core overhead"},
			},
			{
				Name:       "rib_flare",
				Metric:     pose.MetricRibCageAngleChange,
				Label:      "Abertura de Costelas",
				Thresholds: th("controlled", "< 5°", "warning", "5-15°", "danger", "> 15°"),
				Note:       "Abertura de costelas (rib flare) durante movimento",
				RAGTopics:  []string{"abertura costelas overhead", "controle costelas", "core desenvolvimento"},
			},
			{
				Name:       "elbow_position",
				Metric:     "elbow_under_wrist_alignment",
				Label:      "Posição do Cotovelo",
				Thresholds: th("optimal", "Cotovelo diretamente abaixo do punho", "forward", "Cotovelo à frente (perde força)", "behind", "Cotovelo atrás (estresse ombro)"),
				Note:       "Alinhamento cotovelo-punho no plano sagital",
				RAGTopics:  []string{"posição cotovelo desenvolvimento", "momento de força ombro overhead"},
			},
		},
	}
}

func pullTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryPull,
		Label:          "Remada / Puxada",
		KeyJoints:      []string{"shoulder", "elbow", "scapula", "lumbar", "thoracic"},
		KeyAlignments:  []string{"scapular_movement", "elbow_path", "torso_stability"},
		KeyPositions:   []string{"full_stretch", "full_contraction", "neutral_spine"},
		Phases:         []string{"start_position", "concentric_pull", "peak_contraction", "eccentric_return"},
		SafetyCritical: []string{"torso_stability_row", "lumbar_position_row"},
		ROMDependent:   []string{"rom_pull"},
		Criteria: []Criterion{
			{
				Name:       "scapular_retraction",
				Metric:     "scapular_distance_change_cm",
				Label:      "Retração Escapular",
				Thresholds: th("excellent", "> 4cm", "good", "2-4cm", "acceptable", "1-2cm", "warning", "< 1cm", "danger", "0cm"),
				Note:       "Aproximação das escápulas durante movimento (distância em cm)",
				RAGTopics:  []string{"retração escapular remada", "ativação romboides trapézio", "movimento escapular"},
			},
			{
				Name:       "rom_pull",
				Metric:     pose.MetricElbowAngleAtContraction,
				Label:      "Amplitude da Puxada",
				Thresholds: th("excellent", "< 90°", "good", "90-110°", "acceptable", "110-130°", "warning", "> 130°", "danger", "Sem contração (ROM zero)"),
				Note:       "Ângulo do cotovelo na contração máxima",
				RAGTopics:  []string{"amplitude remada", "ROM puxada completo"},
			},
			{
				Name:       "torso_stability_row",
				Metric:     pose.MetricTrunkAngleVariation,
				Label:      "Estabilidade do Tronco",
				Thresholds: th("stable", "< 5°", "good", "5-10°", "warning", "10-15°", "danger", "> 15°"),
				Note:       "Variação do ângulo do tronco durante série (indica momentum)",
				RAGTopics:  []string{"estabilidade tronco remada", "uso de impulso remada"},
			},
			{
				Name:       "lumbar_position_row",
				Metric:     pose.MetricLumbarFlexion,
				Label:      "Posição Lombar",
				Thresholds: th("neutral", "15-30°", "warning", "30-40°", "danger", "> 40°"),
				Note:       "Flexão lombar mantendo lordose fisiológica",
				RAGTopics:  []string{"posição lombar remada", "coluna neutra puxada"},
			},
		},
	}
}

func unilateralTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryUnilateral,
		Label:          "Unilateral (Afundo / Step-up)",
		KeyJoints:      []string{"knee", "hip", "ankle", "trunk", "pelvis"},
		KeyAlignments:  []string{"knee_over_toe", "pelvic_drop", "trunk_lateral_lean", "knee_valgus"},
		KeyPositions:   []string{"front_knee_tracking", "rear_knee_position", "weight_distribution"},
		Phases:         []string{"setup", "eccentric_descent", "bottom_position", "concentric_ascent"},
		SafetyCritical: []string{"knee_valgus_unilateral", "pelvic_stability"},
		Criteria: []Criterion{
			{
				Name:       "knee_valgus_unilateral",
				Metric:     pose.MetricKneeMedialDisplacement,
				Label:      "Valgo de Joelho (Unilateral)",
				Thresholds: th("acceptable", "< 2cm", "warning", "2-4cm", "danger", "> 4cm"),
				Note:       "Threshold menor que bilateral - base menor amplifica valgo",
				RAGTopics:  []string{"valgo unilateral", "estabilidade joelho perna única", "valgo de joelho"},
			},
			{
				Name:       "pelvic_stability",
				Metric:     pose.MetricContralateralPelvicDrop,
				Label:      "Estabilidade Pélvica",
				Thresholds: th("stable", "< 5°", "warning", "5-10°", "danger", "> 10°"),
				Note:       "Queda pélvica do lado oposto (Trendelenburg positivo)",
				RAGTopics:  []string{"sinal Trendelenburg", "queda pélvica", "fraqueza glúteo médio"},
			},
			{
				Name:       "trunk_lateral_lean",
				Metric:     pose.MetricTrunkLateralDeviation,
				Label:      "Inclinação Lateral do Tronco",
				Thresholds: th("stable", "< 5°", "compensating", "5-10°", "significant", "> 10°"),
				Note:       "Inclinação lateral do tronco (compensação de fraqueza)",
				RAGTopics:  []string{"inclinação lateral tronco", "compensação Duchenne", "estabilidade lateral"},
			},
			{
				Name:       "knee_tracking",
				Metric:     "knee_over_foot_alignment",
				Label:      "Alinhamento do Joelho",
				Thresholds: th("aligned", "Joelho sobre 2º-3º dedo", "medial", "Joelho medial (valgo)", "lateral", "Joelho lateral (varo)", "beyond_toe", "Muito além do pé"),
				Note:       "Alinhamento joelho em relação ao pé no plano frontal",
				RAGTopics:  []string{"alinhamento joelho afundo", "rastreamento joelho"},
			},
		},
	}
}

func coreTemplate() *CategoryTemplate {
	return &CategoryTemplate{
		Category:       pose.CategoryCore,
		Label:          "Core / Estabilização",
		KeyJoints:      []string{"lumbar", "thoracic", "hip", "pelvis"},
		KeyAlignments:  []string{"spinal_neutral", "pelvic_tilt", "rib_position"},
		KeyPositions:   []string{"alignment_head_to_heel", "hip_sag", "hip_pike"},
		Phases:         []string{"setup", "hold_or_movement", "fatigue_compensation"},
		SafetyCritical: []string{"spinal_alignment", "pelvic_control"},
		Criteria: []Criterion{
			{
				Name:       "spinal_alignment",
				Metric:     pose.MetricDeviationFromNeutralLine,
				Label:      "Alinhamento Espinal",
				Thresholds: th("neutral", "< 5°", "warning", "5-10°", "danger", "> 10°"),
				Note:       "Desvio da linha neutra (sagging = extensão, piking = flexão)",
				RAGTopics:  []string{"alinhamento neutro prancha", "estabilidade lombar core"},
			},
			{
				Name:       "pelvic_control",
				Metric:     "anterior_posterior_tilt_change",
				Label:      "Controle Pélvico",
				Thresholds: th("stable", "< 5°", "warning", "5-10°", "unstable", "> 10°"),
				Note:       "Mudança de inclinação pélvica durante exercício",
				RAGTopics:  []string{"controle pélvico", "inclinação pélvica", "estabilidade core"},
			},
			{
				Name:       "rib_cage_control",
				Metric:     "rib_flare_angle",
				Label:      "Controle de Costelas",
				Thresholds: th("controlled", "< 5° abertura", "warning", "5-15°", "danger", "> 15°"),
				Note:       "Abertura de costelas (rib flare)",
				RAGTopics:  []string{"abertura costelas core", "controle costelas", "zona de aposição"},
			},
		},
	}
}

func builtinTemplates() []*CategoryTemplate {
	return []*CategoryTemplate{
		squatTemplate(),
		hingeTemplate(),
		horizontalPressTemplate(),
		verticalPressTemplate(),
		pullTemplate(),
		unilateralTemplate(),
		coreTemplate(),
	}
}
