package insights

import "github.com/Krosebrook/lifesync-sub000/internal/ai"

var moodReportSchema = ai.Schema{
	Name: "mood_report",
	Properties: map[string]any{
		"overall_mood_trend":  ai.EnumProp("direction of the mood trend", "improving", "stable", "declining"),
		"mood_description":    ai.Prop("string", "2-3 sentence description of the emotional period"),
		"positive_highlights": ai.ArrayProp("moments or patterns that went well", ai.Prop("string", "highlight"), 4),
		"areas_of_concern":    ai.ArrayProp("patterns that may need attention", ai.Prop("string", "concern"), 3),
		"recommendations":     ai.ArrayProp("concrete next steps", ai.Prop("string", "recommendation"), 4),
		"gratitude_moments":   ai.ArrayProp("gratitude themes found in the entries", ai.Prop("string", "moment"), 3),
		"energy_level":        ai.EnumProp("overall energy level", "high", "moderate", "low"),
	},
	Required: []string{"overall_mood_trend", "mood_description", "recommendations"},
}

var coachingSchema = ai.Schema{
	Name: "personalized_coaching",
	Properties: map[string]any{
		"status_assessment":    ai.Prop("string", "honest assessment of where the user stands"),
		"strengths":            ai.ArrayProp("what the user is doing well", ai.Prop("string", "strength"), 3),
		"growth_opportunities": ai.ArrayProp("where the user can improve", ai.Prop("string", "opportunity"), 3),
		"action_plan":          ai.ArrayProp("ordered steps for the coming weeks", ai.Prop("string", "step"), 5),
		"motivation":           ai.Prop("string", "a short motivating message"),
		"immediate_action":     ai.Prop("string", "one thing to do today"),
	},
	Required: []string{"status_assessment", "action_plan", "immediate_action"},
}

var premiumReportSchema = ai.Schema{
	Name: "premium_coaching_report",
	Properties: map[string]any{
		"executive_summary":   ai.Prop("string", "one-paragraph summary of the period"),
		"progress_analysis":   ai.Prop("string", "detailed analysis of progress across all areas"),
		"behavioral_insights": ai.ArrayProp("patterns observed in the data", ai.Prop("string", "insight"), 5),
		"strategic_plan":      ai.ArrayProp("longer-horizon steps", ai.Prop("string", "step"), 5),
		"risk_factors":        ai.ArrayProp("risks to sustained progress", ai.Prop("string", "risk"), 3),
		"projected_outcomes":  ai.Prop("string", "where current trends lead"),
		"personalized_advice": ai.Prop("string", "advice specific to this user's situation"),
		"recommended_content": ai.ArrayProp("meditation or practice categories to explore", ai.Prop("string", "category"), 3),
	},
	Required: []string{"executive_summary", "progress_analysis", "strategic_plan"},
}

var weeklyNarrativeSchema = ai.Schema{
	Name: "weekly_summary",
	Properties: map[string]any{
		"headline":       ai.Prop("string", "one-line headline for the week"),
		"wins":           ai.ArrayProp("what went well", ai.Prop("string", "win"), 3),
		"challenges":     ai.ArrayProp("what was hard", ai.Prop("string", "challenge"), 3),
		"next_week_tips": ai.ArrayProp("suggestions for next week", ai.Prop("string", "tip"), 3),
	},
	Required: []string{"headline", "wins"},
}

var goalSuggestionsSchema = ai.Schema{
	Name: "goal_suggestions",
	Properties: map[string]any{
		"suggestions": ai.ArrayProp("suggested goals", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":       ai.Prop("string", "short goal title"),
				"description": ai.Prop("string", "what achieving it looks like"),
				"category":    ai.Prop("string", "life area, e.g. health, career, relationships"),
				"reason":      ai.Prop("string", "why this goal fits the user"),
			},
			"required": []string{"title", "reason"},
		}, 3),
	},
	Required: []string{"suggestions"},
}

var habitSuggestionsSchema = ai.Schema{
	Name: "habit_suggestions",
	Properties: map[string]any{
		"suggestions": ai.ArrayProp("suggested daily habits", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":     ai.Prop("string", "short habit name"),
				"category": ai.Prop("string", "habit category"),
				"reason":   ai.Prop("string", "why this habit helps the user"),
			},
			"required": []string{"name", "reason"},
		}, 3),
	},
	Required: []string{"suggestions"},
}
