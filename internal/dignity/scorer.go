package dignity

import (
	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// Dignity score anchors on the 0-100 scale.
const (
	ScoreExaltation   = 100
	ScoreMoolatrikona = 90
	ScoreOwnSign      = 75
	ScoreGreatFriend  = 65
	ScoreFriend       = 50
	ScoreNeutral      = 40
	ScoreEnemy        = 25
	ScoreGreatEnemy   = 10
	ScoreDebilitation = 5
)

// Type names the dignity rule that produced a base score.
type Type string

const (
	Exalted          Type = "Exalted"
	Debilitated      Type = "Debilitated"
	Moolatrikona     Type = "Moolatrikona"
	OwnSign          Type = "Own Sign"
	FriendlySign     Type = "Friendly Sign"
	NeutralSign      Type = "Neutral Sign"
	EnemySign        Type = "Enemy Sign"
)

// Result is a full dignity evaluation for one planet.
type Result struct {
	Planet        vedic.Planet     `json:"planet"`
	Longitude     float64          `json:"longitude"`
	Sign          vedic.ZodiacSign `json:"sign"`
	DegreesInSign float64          `json:"degrees_in_sign"`
	BaseScore     float64          `json:"base_score"`
	FinalScore    float64          `json:"final_score"`
	DignityType   Type             `json:"dignity_type"`
	SignLord      vedic.Planet     `json:"sign_lord"`
	Friendship    Friendship       `json:"-"`
	FriendshipStr string           `json:"friendship"`
	Status        string           `json:"status"`
	Retrograde    bool             `json:"retrograde"`
	Combust       bool             `json:"combust"`
	Explanation   string           `json:"explanation"`
}

// BaseScore evaluates the placement rules in strict priority order and
// returns the score of the first rule that fires along with its dignity
// type. Exaltation and debilitation are degree-based (2 degree orb), the
// rest are range or sign based; a planet matching none of the essential
// dignities is scored by its natural friendship with the sign lord.
func BaseScore(p vedic.Planet, longitude float64) (float64, Type) {
	switch {
	case InExaltation(longitude, p):
		return ScoreExaltation, Exalted
	case InDebilitation(longitude, p):
		return ScoreDebilitation, Debilitated
	case InMoolatrikona(longitude, p):
		return ScoreMoolatrikona, Moolatrikona
	case InOwnSign(longitude, p):
		return ScoreOwnSign, OwnSign
	}

	sign, _ := zodiac.SignOf(longitude)
	lord, ok := vedic.SignLord(sign)
	if !ok {
		return ScoreNeutral, NeutralSign
	}
	switch NaturalFriendship(p, lord) {
	case Friend:
		return ScoreFriend, FriendlySign
	case Enemy:
		return ScoreEnemy, EnemySign
	}
	return ScoreNeutral, NeutralSign
}

// Score evaluates a planet's dignity at a sidereal longitude with the given
// positional modifiers.
func Score(p vedic.Planet, longitude float64, m Modifiers) *Result {
	base, typ := BaseScore(p, longitude)
	final := applyModifiers(base, p, longitude, m)

	sign, deg := zodiac.SignOf(longitude)
	lord, _ := vedic.SignLord(sign)
	friendship := NaturalFriendship(p, lord)

	return &Result{
		Planet:        p,
		Longitude:     zodiac.Normalize(longitude),
		Sign:          sign,
		DegreesInSign: deg,
		BaseScore:     base,
		FinalScore:    final,
		DignityType:   typ,
		SignLord:      lord,
		Friendship:    friendship,
		FriendshipStr: friendship.String(),
		Status:        StatusFor(final),
		Retrograde:    m.Retrograde,
		Combust:       m.Combust,
		Explanation:   explainModifiers(base, final, p, longitude, m),
	}
}

// StatusFor maps a score to its descriptive band.
func StatusFor(score float64) string {
	switch {
	case score >= 90:
		return "Exalted/Excellent"
	case score >= 75:
		return "Very Strong"
	case score >= 60:
		return "Strong"
	case score >= 45:
		return "Moderate"
	case score >= 25:
		return "Weak"
	case score >= 10:
		return "Very Weak"
	}
	return "Debilitated/Critical"
}

// Distribution counts planets by score band in a comparison.
type Distribution struct {
	Excellent int `json:"excellent"` // >= 90
	Strong    int `json:"strong"`    // 75-89
	Moderate  int `json:"moderate"`  // 45-74
	Weak      int `json:"weak"`      // 25-44
	Poor      int `json:"poor"`      // < 25
}

// Comparison summarizes the dignity scores of a set of planets.
type Comparison struct {
	Strongest    []vedic.Planet `json:"strongest_planets"`
	Weakest      []vedic.Planet `json:"weakest_planets"`
	HighestScore float64        `json:"highest_score"`
	LowestScore  float64        `json:"lowest_score"`
	AverageScore float64        `json:"average_score"`
	Distribution Distribution   `json:"distribution"`
}

// Compare builds a comparison across planet scores. Returns nil for an
// empty input.
func Compare(scores map[vedic.Planet]float64) *Comparison {
	if len(scores) == 0 {
		return nil
	}

	c := &Comparison{HighestScore: -1, LowestScore: 101}
	var sum float64
	for _, s := range scores {
		sum += s
		if s > c.HighestScore {
			c.HighestScore = s
		}
		if s < c.LowestScore {
			c.LowestScore = s
		}
		switch {
		case s >= 90:
			c.Distribution.Excellent++
		case s >= 75:
			c.Distribution.Strong++
		case s >= 45:
			c.Distribution.Moderate++
		case s >= 25:
			c.Distribution.Weak++
		default:
			c.Distribution.Poor++
		}
	}
	c.AverageScore = sum / float64(len(scores))

	// Iterate in canonical order so ties come out deterministic.
	for _, p := range vedic.Planets {
		s, ok := scores[p]
		if !ok {
			continue
		}
		if s == c.HighestScore {
			c.Strongest = append(c.Strongest, p)
		}
		if s == c.LowestScore {
			c.Weakest = append(c.Weakest, p)
		}
	}
	return c
}
