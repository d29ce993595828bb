package config

import (
	"github.com/yungbote/sleepintake-backend/internal/catalog"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/standardize"
)

// Defaults returns the built-in 15-day intake configuration: the master
// question list, module definitions, the static day plan and the gateway
// registry.
func Defaults() *Config {
	return &Config{
		RawQuestions:   defaultQuestions(),
		Modules:        defaultModules(),
		DayAssignments: dayAssignments(defaultDayPlan()),
		Gateways:       defaultGateways(),
	}
}

func defaultQuestions() []standardize.RawQuestion {
	yes := func(id, text, pillar, tier string) standardize.RawQuestion {
		return standardize.RawQuestion{ID: id, Text: text, Pillar: pillar, Tier: tier, ScaleType: "Yes/No"}
	}

	questions := []standardize.RawQuestion{
		// D1 is free text and gets reported as skipped by the
		// standardizer; names are collected by the enrollment flow.
		{ID: "D1", Text: "What is your name?", Pillar: "Demographics", Tier: "CORE", ScaleType: "Text"},
		{ID: "D2", Text: "What is your date of birth?", Pillar: "Demographics", Tier: "CORE", ScaleType: "Date"},
		{ID: "D3", Text: "What is your height?", Pillar: "Demographics", Tier: "CORE", ScaleType: "Number"},
		{ID: "D4", Text: "What is your sex?", Pillar: "Demographics", Tier: "CORE", ScaleType: "Multiple choice", Options: []string{"Female", "Male", "Other"}},
		{ID: "D5", Text: "What is your weight?", Pillar: "Demographics", Tier: "CORE", ScaleType: "Number"},

		{ID: "1", Text: "How would you rate your overall sleep quality?", Pillar: "Sleep Quality", Tier: "CORE", ScaleType: "1-10 scale (quality)"},
		{ID: "2", Text: "How refreshed do you feel when you wake up?", Pillar: "Sleep Quality", Tier: "CORE", ScaleType: "1-10 scale (quality)"},
		yes("3", "Do you have trouble falling asleep, staying asleep, or waking too early?", "Sleep Quality", "GATEWAY"),

		{ID: "4", Text: "How many hours of sleep do you usually get on a typical night?", Pillar: "Sleep Quantity", Tier: "CORE", ScaleType: "Number (hours)"},
		{ID: "5", Text: "How long does it usually take you to fall asleep?", Pillar: "Sleep Quantity", Tier: "CORE", ScaleType: "Number (minutes)"},
		{ID: "6", Text: "How many times do you typically wake up during the night?", Pillar: "Sleep Quantity", Tier: "CORE", ScaleType: "Number"},

		{ID: "7", Text: "What time do you usually go to bed on weekdays?", Pillar: "Sleep Timing", Tier: "CORE", ScaleType: "Time"},
		{ID: "8", Text: "What time do you usually wake up on weekdays?", Pillar: "Sleep Timing", Tier: "CORE", ScaleType: "Time"},
		{ID: "9", Text: "What time do you usually go to bed on weekends?", Pillar: "Sleep Timing", Tier: "CORE", ScaleType: "Time"},
		{ID: "10", Text: "What time do you usually wake up on weekends?", Pillar: "Sleep Timing", Tier: "CORE", ScaleType: "Time"},

		yes("11", "Do you keep a regular sleep schedule?", "Sleep Regularity", "CORE"),
		{ID: "12", Text: "How many naps do you take in a typical week?", Pillar: "Sleep Regularity", Tier: "CORE", ScaleType: "Number"},

		{ID: "15", Text: "In the past 2 weeks, how often have you felt down, depressed, or hopeless?", Pillar: "Mental Health", Tier: "GATEWAY", ScaleType: "0-3 scale (frequency)"},
		{ID: "16", Text: "In the past 2 weeks, how often have you felt nervous, anxious, or on edge?", Pillar: "Mental Health", Tier: "GATEWAY", ScaleType: "0-3 scale (frequency)"},

		{ID: "17", Text: "Do you feel excessively tired or sleepy during the day?", Pillar: "Cognitive", Tier: "GATEWAY", ScaleType: "0-4 scale (severity)"},
		yes("18", "Do you experience memory problems, difficulty concentrating, or mental fog?", "Cognitive", "GATEWAY"),

		yes("19", "Do you snore loudly?", "Physical", "GATEWAY"),
		yes("20", "Has anyone observed you stop breathing during sleep?", "Physical", "GATEWAY"),
		yes("21", "Do you wake up with headaches?", "Physical", "CORE"),
		yes("22", "Do you have pain that affects your sleep?", "Physical", "GATEWAY"),
		{
			ID: "23", Text: "How severe is that pain on a typical night?", Pillar: "Physical", Tier: "GATEWAY",
			ScaleType: "0-10 scale (severity)",
			Condition: &standardize.ShowCondition{QuestionID: "22", Equals: "Yes"},
		},
		yes("24", "Do you exercise regularly?", "Physical", "CORE"),

		yes("29", "Do you drink caffeinated beverages?", "Nutritional", "CORE"),
		yes("32", "Do you drink alcohol?", "Nutritional", "CORE"),
		yes("34", "Do you notice your diet affects your sleep quality?", "Nutritional", "CORE"),

		yes("35", "Do you share your bed with a partner?", "Social", "CORE"),
		yes("37", "Do you have children living at home?", "Social", "CORE"),

		{ID: "40", Text: "How many nights per week do you have trouble falling asleep?", Pillar: "Sleep Quality", Tier: "EXPANSION", ScaleType: "0-7 scale (frequency)"},
		{ID: "41", Text: "How long have you had trouble sleeping?", Pillar: "Sleep Quality", Tier: "EXPANSION", ScaleType: "Multiple choice", Options: []string{"Less than 1 month", "1-6 months", "More than 6 months"}},
		{ID: "42", Text: "How worried are you about your sleep?", Pillar: "Sleep Quality", Tier: "EXPANSION", ScaleType: "1-10 scale (severity)"},

		{ID: "43", Text: "In the past 2 weeks, how often have you had little interest or pleasure in doing things?", Pillar: "Mental Health", Tier: "EXPANSION", ScaleType: "0-3 scale (frequency)"},
		{ID: "44", Text: "In the past 2 weeks, how often were you unable to stop or control worrying?", Pillar: "Mental Health", Tier: "EXPANSION", ScaleType: "0-3 scale (frequency)"},

		{ID: "45", Text: "How often do you doze off while reading or watching TV?", Pillar: "Cognitive", Tier: "EXPANSION", ScaleType: "0-3 scale (frequency)"},
		yes("46", "Have you ever dozed off while driving?", "Cognitive", "EXPANSION"),

		{ID: "47", Text: "How often do you wake up gasping or choking?", Pillar: "Physical", Tier: "EXPANSION", ScaleType: "0-4 scale (frequency)"},
		yes("48", "Has your bed partner noticed restless legs or kicking during sleep?", "Physical", "EXPANSION"),

		{ID: "49", Text: "On free days, how many hours later do you sleep compared to work days?", Pillar: "Sleep Timing", Tier: "EXPANSION", ScaleType: "Number (hours)"},
		{ID: "50", Text: "Do you consider yourself a morning or evening person?", Pillar: "Sleep Timing", Tier: "EXPANSION", ScaleType: "Multiple choice", Options: []string{"Morning", "Evening", "Neither"}},

		{ID: "51", Text: "How many caffeinated drinks do you have per day?", Pillar: "Nutritional", Tier: "EXPANSION", ScaleType: "Number"},
		yes("52", "Do you eat within two hours of bedtime?", "Nutritional", "EXPANSION"),
	}
	return questions
}

func defaultModules() []catalog.Module {
	core := func(id, name, pillar string, minutes float64, questionIDs ...string) catalog.Module {
		return catalog.Module{ModuleID: id, Name: name, Pillar: pillar, Tier: "CORE", Type: catalog.ModuleTypeCore, EstimatedMinutes: minutes, QuestionIDs: questionIDs}
	}
	gateway := func(id, name, pillar string, minutes float64, questionIDs ...string) catalog.Module {
		return catalog.Module{ModuleID: id, Name: name, Pillar: pillar, Tier: "GATEWAY", Type: catalog.ModuleTypeGateway, EstimatedMinutes: minutes, QuestionIDs: questionIDs}
	}
	expansion := func(id, name, pillar string, minutes float64, questionIDs ...string) catalog.Module {
		return catalog.Module{ModuleID: id, Name: name, Pillar: pillar, Tier: "EXPANSION", Type: catalog.ModuleTypeExpansion, EstimatedMinutes: minutes, QuestionIDs: questionIDs}
	}

	return []catalog.Module{
		core("core_social", "Social & Household", "Social", 2, "D4", "35", "37"),
		core("core_metabolic", "Body Measurements", "Metabolic", 3, "D2", "D3", "D5"),
		core("core_sleep_quality", "Sleep Quality", "Sleep Quality", 2, "1", "2"),
		core("core_sleep_quantity", "Sleep Quantity", "Sleep Quantity", 3, "4", "5", "6"),
		core("core_sleep_regularity", "Sleep Regularity", "Sleep Regularity", 2, "11", "12"),
		core("core_sleep_timing", "Sleep Timing", "Sleep Timing", 3, "7", "8", "9", "10"),
		gateway("gateway_sleep_quality", "Sleep Quality Screening", "Sleep Quality", 1, "3"),
		gateway("gateway_mental_health", "Mental Health Screening", "Mental Health", 2, "15", "16"),
		gateway("gateway_cognitive", "Daytime Function Screening", "Cognitive", 2, "17", "18"),
		gateway("gateway_physical", "Physical Screening", "Physical", 3, "19", "20", "22", "23"),
		core("core_physical", "Physical Health", "Physical", 2, "21", "24"),
		core("core_nutritional", "Nutrition & Substances", "Nutritional", 2, "29", "32", "34"),
		expansion("expansion_sleep_quality", "Sleep Quality Deep Dive", "Sleep Quality", 4, "40", "41", "42"),
		expansion("expansion_mental_health", "Mental Health Deep Dive", "Mental Health", 3, "43", "44"),
		expansion("expansion_cognitive", "Daytime Sleepiness Deep Dive", "Cognitive", 3, "45", "46"),
		expansion("expansion_physical", "Physical Symptoms Deep Dive", "Physical", 3, "47", "48"),
		expansion("expansion_sleep_timing", "Sleep Timing Deep Dive", "Sleep Timing", 3, "49", "50"),
		expansion("expansion_nutritional", "Nutrition Deep Dive", "Nutritional", 3, "51", "52"),
	}
}

// defaultDayPlan is the 15-day intake. Days 6, 8, 11 and 14 are sleep
// diary days with no assessment modules; day 15 is report generation.
func defaultDayPlan() []daySpec {
	return []daySpec{
		{Day: 1, Modules: []string{"core_social", "core_metabolic", "core_sleep_quality"}},
		{Day: 2, Modules: []string{"core_sleep_quantity", "core_sleep_regularity", "core_sleep_timing"}},
		{Day: 3, Modules: []string{"gateway_sleep_quality", "gateway_mental_health", "gateway_cognitive", "gateway_physical"}},
		{Day: 4, Modules: []string{"core_physical", "core_nutritional"}},
		{Day: 5, Modules: []string{"expansion_sleep_quality"}},
		{Day: 6, Modules: nil},
		{Day: 7, Modules: []string{"expansion_mental_health"}},
		{Day: 8, Modules: nil},
		{Day: 9, Modules: []string{"expansion_cognitive"}},
		{Day: 10, Modules: []string{"expansion_physical"}},
		{Day: 11, Modules: nil},
		{Day: 12, Modules: []string{"expansion_sleep_timing"}},
		{Day: 13, Modules: []string{"expansion_nutritional"}},
		{Day: 14, Modules: nil},
		{Day: 15, Modules: nil},
	}
}

func defaultGateways() []engine.Gateway {
	return []engine.Gateway{
		{
			GatewayID:          "insomnia",
			Name:               "Insomnia Gateway",
			TriggerQuestionIDs: []string{"3"},
			Condition:          engine.Equals{QuestionID: "3", Value: "Yes"},
			TargetModules:      []string{"expansion_sleep_quality"},
			Description:        "Trouble falling asleep, staying asleep, or waking too early",
		},
		{
			GatewayID:          "depression",
			Name:               "Depression Gateway",
			TriggerQuestionIDs: []string{"15"},
			Condition:          engine.GreaterThanOrEqual{QuestionID: "15", Value: 2},
			TargetModules:      []string{"expansion_mental_health"},
			Description:        "Felt down, depressed, or hopeless in the past 2 weeks",
		},
		{
			GatewayID:          "anxiety",
			Name:               "Anxiety Gateway",
			TriggerQuestionIDs: []string{"16"},
			Condition:          engine.GreaterThanOrEqual{QuestionID: "16", Value: 2},
			TargetModules:      []string{"expansion_mental_health"},
			Description:        "Felt nervous, anxious, or on edge in the past 2 weeks",
		},
		{
			GatewayID:          "excessive_sleepiness",
			Name:               "Excessive Daytime Sleepiness",
			TriggerQuestionIDs: []string{"17"},
			Condition:          engine.GreaterThanOrEqual{QuestionID: "17", Value: 3},
			TargetModules:      []string{"expansion_cognitive"},
			Description:        "Excessively tired or sleepy during the day",
		},
		{
			GatewayID:          "cognitive",
			Name:               "Cognitive Gateway",
			TriggerQuestionIDs: []string{"18"},
			Condition:          engine.Equals{QuestionID: "18", Value: "Yes"},
			TargetModules:      []string{"expansion_cognitive"},
			Description:        "Memory problems, difficulty concentrating, or mental fog",
		},
		{
			GatewayID:          "osa",
			Name:               "OSA Gateway",
			TriggerQuestionIDs: []string{"19", "20"},
			Condition: engine.Or{Conditions: []engine.Condition{
				engine.Equals{QuestionID: "19", Value: "Yes"},
				engine.Equals{QuestionID: "20", Value: "Yes"},
			}},
			TargetModules: []string{"expansion_physical"},
			Description:   "Loud snoring or observed breathing pauses during sleep",
		},
		{
			GatewayID:          "pain",
			Name:               "Pain Gateway",
			TriggerQuestionIDs: []string{"22", "23"},
			Condition: engine.And{Conditions: []engine.Condition{
				engine.Equals{QuestionID: "22", Value: "Yes"},
				engine.GreaterThanOrEqual{QuestionID: "23", Value: 4},
			}},
			TargetModules: []string{"expansion_physical"},
			Description:   "Pain that affects sleep with severity of 4 or more",
		},
		{
			GatewayID:          "sleep_timing",
			Name:               "Sleep Timing Gateway",
			TriggerQuestionIDs: []string{"7", "8", "9", "10"},
			Condition:          engine.Calculated{Function: engine.FuncWeekdayWeekendDifference, Threshold: 1},
			TargetModules:      []string{"expansion_sleep_timing"},
			Description:        "Weekday-weekend sleep duration difference above 1 hour",
		},
		{
			GatewayID:          "diet_impact",
			Name:               "Diet Impact Gateway",
			TriggerQuestionIDs: []string{"34"},
			Condition:          engine.Equals{QuestionID: "34", Value: "Yes"},
			TargetModules:      []string{"expansion_nutritional"},
			Description:        "Diet noticeably affects sleep quality",
			Optional:           true,
		},
		{
			GatewayID:          "poor_sleep_quality",
			Name:               "Poor Sleep Quality",
			TriggerQuestionIDs: []string{"1", "3"},
			Condition: engine.Or{Conditions: []engine.Condition{
				engine.LessThanOrEqual{QuestionID: "1", Value: 5},
				engine.Equals{QuestionID: "3", Value: "Yes"},
			}},
			TargetModules: []string{"expansion_sleep_quality"},
			Description:   "Overall sleep quality of 5 or less, or insomnia screening positive",
		},
	}
}
