package service

import (
	"strings"

	"github.com/nagrik-seva/backend/internal/models"
)

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type classificationRule struct {
	category   string
	keywords   []string
	department string
	importance string
	helpline   string
	actions    []string
	riskLevel  string
	advice     string
}

// classificationRules is checked in order and the first keyword hit wins, so
// a complaint mentioning both water and road keywords lands on Water. Do not
// reorder.
var classificationRules = []classificationRule{
	{
		category:   "Waste",
		keywords:   []string{"garbage", "waste", "trash", "dump", "smell", "dirty", "clean"},
		department: "Sanitation Department",
		importance: "Garbage accumulation can spread disease and attract pests.",
		helpline:   "1800-WASTE-MGT",
		actions:    []string{"Avoid the area if possible", "Report to local sanitation", "Take a photo"},
		riskLevel:  RiskMedium,
		advice:     "Proper waste management is key to urban hygiene. Avoid physical contact with waste.",
	},
	{
		category:   "Water",
		keywords:   []string{"water", "leak", "pipe", "sewage", "flood", "supply", "drain"},
		department: "Water Board (Jal Board)",
		importance: "Water leaks waste resources and can cause structural damage.",
		helpline:   "1800-WATER-FIX",
		actions:    []string{"Close main valve if possible", "Do not drink contaminated water"},
		riskLevel:  RiskHigh,
		advice:     "Standing water is a breeding ground for mosquitoes. Report leaks immediately to save water.",
	},
	{
		category:   "Air",
		keywords:   []string{"air", "smoke", "pollution", "dust", "burn", "fumes"},
		department: "Pollution Control Board",
		importance: "Poor air quality affects respiratory health.",
		helpline:   "1800-AIR-CARE",
		actions:    []string{"Wear a mask", "Keep windows closed"},
		riskLevel:  RiskHigh,
		advice:     "High pollution levels detected. Vulnerable groups should stay indoors.",
	},
	{
		category:   "Transport",
		keywords:   []string{"road", "pothole", "traffic", "bus", "transport", "street", "signal", "light"},
		department: "Roads & Transport Authority",
		importance: "Damaged roads cause accidents and traffic delays.",
		helpline:   "1800-ROAD-SAFE",
		actions:    []string{"Drive slowly", "Report exact location"},
		riskLevel:  RiskMedium,
		advice:     "Road safety is a shared responsibility. Alert others to the hazard.",
	},
	{
		category:   "Energy",
		keywords:   []string{"energy", "power", "electric", "outage", "pole", "wire", "shock"},
		department: "Electricity Department",
		importance: "Exposed wires or outages can be dangerous.",
		helpline:   "1800-POWER-OFF",
		actions:    []string{"Stay away from wires", "Report immediately"},
		riskLevel:  RiskHigh,
		advice:     "Electrical hazards can be fatal. Do not attempt to fix wires yourself.",
	},
}

var generalRule = classificationRule{
	category:   "General",
	department: "Civic Help Center",
	importance: "Important for community well-being.",
	helpline:   "1800-CIVIC-HELP",
	actions:    []string{"Provide clear details", "Upload a photo if possible"},
	riskLevel:  RiskLow,
	advice:     "Your feedback helps improve our city services.",
}

// Classify maps free-form complaint text to a department guidance bundle.
// It is pure and total: every input yields exactly one result.
func Classify(text string) models.ClassificationResult {
	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.result()
			}
		}
	}
	return generalRule.result()
}

func (r classificationRule) result() models.ClassificationResult {
	return models.ClassificationResult{
		Category:   r.category,
		Department: r.department,
		Importance: r.importance,
		Helpline:   r.helpline,
		Actions:    append([]string(nil), r.actions...),
		RiskLevel:  r.riskLevel,
		Advice:     r.advice,
	}
}
