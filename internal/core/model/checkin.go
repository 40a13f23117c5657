package model

import "time"

// Emotion is one of the platform's primary emotion labels.
type Emotion string

const (
	EmotionAnxious     Emotion = "anxious"
	EmotionOverwhelmed Emotion = "overwhelmed"
	EmotionDoubtful    Emotion = "doubtful"
	EmotionFatigued    Emotion = "fatigued"
	EmotionCalm        Emotion = "calm"
	EmotionFocused     Emotion = "focused"
	EmotionHopeful     Emotion = "hopeful"
	EmotionFrustrated  Emotion = "frustrated"
	EmotionExcited     Emotion = "excited"
	EmotionNeutral     Emotion = "neutral"
)

// Emotions lists every primary emotion in display order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionAnxious,
		EmotionOverwhelmed,
		EmotionDoubtful,
		EmotionFatigued,
		EmotionCalm,
		EmotionFocused,
		EmotionHopeful,
		EmotionFrustrated,
		EmotionExcited,
		EmotionNeutral,
	}
}

// Label returns the user-facing label for the emotion.
func (emotion Emotion) Label() string {
	switch emotion {
	case EmotionAnxious:
		return "Anxious / Worried"
	case EmotionOverwhelmed:
		return "Overwhelmed / Stressed"
	case EmotionDoubtful:
		return "Self-doubting / Insecure"
	case EmotionFatigued:
		return "Tired / Fatigued"
	case EmotionCalm:
		return "Calm / Peaceful"
	case EmotionFocused:
		return "Focused / Concentrated"
	case EmotionHopeful:
		return "Hopeful / Optimistic"
	case EmotionFrustrated:
		return "Frustrated / Stuck"
	case EmotionExcited:
		return "Excited / Motivated"
	case EmotionNeutral:
		return "Neutral / Balanced"
	default:
		return string(emotion)
	}
}

// Valid reports whether the emotion belongs to the closed set.
func (emotion Emotion) Valid() bool {
	for _, known := range Emotions() {
		if emotion == known {
			return true
		}
	}
	return false
}

// Intensity grades how strongly an emotion is felt, 1 through 5.
type Intensity int

const (
	IntensityVeryLow  Intensity = 1
	IntensityLow      Intensity = 2
	IntensityModerate Intensity = 3
	IntensityHigh     Intensity = 4
	IntensityVeryHigh Intensity = 5
)

// Valid reports whether the intensity is within range.
func (intensity Intensity) Valid() bool {
	return intensity >= IntensityVeryLow && intensity <= IntensityVeryHigh
}

// Label returns the user-facing label for the intensity.
func (intensity Intensity) Label() string {
	switch intensity {
	case IntensityVeryLow:
		return "Very Low"
	case IntensityLow:
		return "Low"
	case IntensityModerate:
		return "Moderate"
	case IntensityHigh:
		return "High"
	case IntensityVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

// PhysicalSymptoms lists the symptom tags a check-in may carry.
var PhysicalSymptoms = []string{
	"headache",
	"stomach",
	"fatigue",
	"tension",
	"sleep",
	"appetite",
	"breathing",
	"heart",
}

// CheckIn is a user-submitted emotional-state record.
type CheckIn struct {
	ClientID          string
	Emotion           Emotion
	SecondaryEmotions []Emotion
	Intensity         Intensity
	PhysicalSymptoms  []string
	Note              string
	Page              string
	CreatedAt         time.Time
}
