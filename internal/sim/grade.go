package sim

import (
	"fmt"
	"math"
	"strings"
)

// Grading thresholds.
const (
	gradeMinShots = 20
	gradeMinTicks = 300
)

// PilotGrade scores one run on 0-100. A sub-score of -1 means the run
// did not produce enough data to grade that area.
type PilotGrade struct {
	Score float64
	Grade string

	Gunnery   float64
	Survival  float64
	Objective float64
	Economy   float64

	GoodTraits []string
	BadTraits  []string
}

// GradePilot grades a mission report.
func GradePilot(r MissionReport) PilotGrade {
	g := PilotGrade{Gunnery: -1, Survival: -1, Economy: -1}
	destroyed := r.Reason == ReasonPlayerDestroyed

	// Gunnery: hit rate, less attempts made on an empty magazine.
	if r.ShotsFired >= gradeMinShots {
		s := 40.0 + 60.0*math.Min(1, r.Accuracy())
		s -= 20.0 * gradeFrac(r.FireDenied, r.ShotsFired+r.FireDenied)
		g.Gunnery = gradeClamp(s)
	}

	// Survival: hull left, plus how much of the punishment the shield took.
	if r.Ticks >= gradeMinTicks || destroyed {
		if destroyed {
			g.Survival = 10
		} else {
			absorbed := 1.0
			if total := r.DamageTaken + r.ShieldAbsorbed; total > 0 {
				absorbed = r.ShieldAbsorbed / total
			}
			hull := 1.0
			if r.MaxHealth > 0 {
				hull = r.FinalHealth / r.MaxHealth
			}
			g.Survival = gradeClamp(30 + 60*hull + 10*absorbed)
		}
	}

	switch {
	case r.State == MissionSucceeded:
		g.Objective = 100
	case r.Reason == ReasonAborted:
		g.Objective = 0
	case r.Required > 0:
		g.Objective = gradeClamp(90 * gradeFrac(r.Kills, r.Required))
	default:
		g.Objective = 20
	}

	if r.Drops > 0 {
		g.Economy = gradeClamp(40 + 60*math.Min(1, gradeFrac(r.Pickups, r.Drops)))
	}

	type scoredWeight struct {
		score  float64
		weight float64
	}
	items := []scoredWeight{{g.Objective, 0.30}}
	if g.Gunnery >= 0 {
		items = append(items, scoredWeight{g.Gunnery, 0.30})
	}
	if g.Survival >= 0 {
		items = append(items, scoredWeight{g.Survival, 0.30})
	}
	if g.Economy >= 0 {
		items = append(items, scoredWeight{g.Economy, 0.10})
	}
	totalW, totalS := 0.0, 0.0
	for _, it := range items {
		totalW += it.weight
		totalS += it.score * it.weight
	}
	g.Score = totalS / totalW

	if r.State == MissionSucceeded && !destroyed {
		g.Score = math.Min(100, g.Score+5)
	}

	g.Grade = LetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = pilotTraits(r)
	return g
}

func pilotTraits(r MissionReport) (good, bad []string) {
	acc := r.Accuracy()
	if r.ShotsFired >= gradeMinShots && acc >= 0.5 {
		good = append(good, "sharpshooter")
	}
	if r.Ticks >= gradeMinTicks && r.DamageTaken == 0 && r.ShieldAbsorbed == 0 {
		good = append(good, "untouched")
	}
	if r.ShieldAbsorbed > 0 && r.ShieldAbsorbed >= r.DamageTaken {
		good = append(good, "shield_tank")
	}
	if r.Pickups >= 3 {
		good = append(good, "scavenger")
	}

	if r.ShotsFired >= 50 && acc < 0.15 {
		bad = append(bad, "spray_and_pray")
	}
	if r.FireDenied >= 10 {
		bad = append(bad, "dry_magazine")
	}
	if r.Rammed >= 3 {
		bad = append(bad, "rammer")
	}
	switch r.Reason {
	case ReasonPlayerDestroyed:
		bad = append(bad, "shot_down")
	case ReasonAborted:
		bad = append(bad, "abandoned")
	}
	return good, bad
}

// Format renders the grade as report lines.
func (g PilotGrade) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grade: %s (%.1f)  gunnery=%s survival=%s objective=%s economy=%s\n",
		g.Grade, g.Score, subScore(g.Gunnery), subScore(g.Survival), subScore(g.Objective), subScore(g.Economy))
	if len(g.GoodTraits) > 0 || len(g.BadTraits) > 0 {
		fmt.Fprintf(&sb, "Traits: +[%s] -[%s]\n", strings.Join(g.GoodTraits, ","), strings.Join(g.BadTraits, ","))
	}
	return sb.String()
}

func subScore(s float64) string {
	if s < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", s)
}

// LetterGrade maps a 0-100 score to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func gradeFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func gradeClamp(s float64) float64 {
	return clamp(s, 0, 100)
}
