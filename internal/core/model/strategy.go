package model

// StrategyType classifies a coping strategy.
type StrategyType string

const (
	StrategyBreathing   StrategyType = "breathing"
	StrategyMindfulness StrategyType = "mindfulness"
	StrategyCognitive   StrategyType = "cognitive"
	StrategyPhysical    StrategyType = "physical"
	StrategySocial      StrategyType = "social"
	StrategyCreative    StrategyType = "creative"
	StrategyCoding      StrategyType = "coding"
	StrategyPlanning    StrategyType = "planning"
)

// StrategyTypes lists every strategy type in display order.
func StrategyTypes() []StrategyType {
	return []StrategyType{
		StrategyBreathing,
		StrategyMindfulness,
		StrategyCognitive,
		StrategyPhysical,
		StrategySocial,
		StrategyCreative,
		StrategyCoding,
		StrategyPlanning,
	}
}

// Label returns the user-facing label for the strategy type.
func (strategyType StrategyType) Label() string {
	switch strategyType {
	case StrategyBreathing:
		return "Breathing Exercise"
	case StrategyMindfulness:
		return "Mindfulness Practice"
	case StrategyCognitive:
		return "Cognitive Reframing"
	case StrategyPhysical:
		return "Physical Activity"
	case StrategySocial:
		return "Social Connection"
	case StrategyCreative:
		return "Creative Expression"
	case StrategyCoding:
		return "Coding Integration"
	case StrategyPlanning:
		return "Planning / Organization"
	default:
		return string(strategyType)
	}
}

// Strategy is a coping strategy recommended by the platform.
type Strategy struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Type             StrategyType   `json:"strategy_type"`
	TargetEmotions   []Emotion      `json:"target_emotions"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Difficulty       int            `json:"difficulty_level"`
	Tried            bool           `json:"tried"`
}

// StrategyFilter narrows a strategy recommendation query.
// Zero values mean "any".
type StrategyFilter struct {
	Type       StrategyType
	Emotion    Emotion
	MaxMinutes int
}
