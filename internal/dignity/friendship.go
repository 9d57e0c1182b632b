package dignity

import "github.com/ssanyal/graha/internal/vedic"

// Friendship is the natural (Naisargika) relationship between two planets.
type Friendship int

const (
	Enemy Friendship = iota - 1
	Neutral
	Friend
)

func (f Friendship) String() string {
	switch f {
	case Friend:
		return "Natural Friend"
	case Enemy:
		return "Natural Enemy"
	}
	return "Natural Neutral"
}

// Compound is the five-grade relationship obtained by combining natural and
// temporal friendship.
type Compound int

const (
	GreatEnemy Compound = iota - 2
	CompoundEnemy
	CompoundNeutral
	CompoundFriend
	GreatFriend
)

func (c Compound) String() string {
	switch c {
	case GreatFriend:
		return "Great Friend"
	case CompoundFriend:
		return "Friend"
	case CompoundEnemy:
		return "Enemy"
	case GreatEnemy:
		return "Great Enemy"
	}
	return "Neutral"
}

// naturalMatrix holds the classical relationships, indexed [from][to].
// Rahu mirrors Saturn's row, Ketu mirrors Mars's, and the two nodes are
// mutual enemies. Self-relationships are neutral.
var naturalMatrix = map[vedic.Planet]map[vedic.Planet]Friendship{
	vedic.Sun: {
		vedic.Moon: Friend, vedic.Mars: Friend, vedic.Mercury: Neutral,
		vedic.Jupiter: Friend, vedic.Venus: Enemy, vedic.Saturn: Enemy,
		vedic.Rahu: Enemy, vedic.Ketu: Enemy,
	},
	vedic.Moon: {
		vedic.Sun: Friend, vedic.Mars: Enemy, vedic.Mercury: Friend,
		vedic.Jupiter: Friend, vedic.Venus: Friend, vedic.Saturn: Enemy,
		vedic.Rahu: Enemy, vedic.Ketu: Enemy,
	},
	vedic.Mars: {
		vedic.Sun: Friend, vedic.Moon: Enemy, vedic.Mercury: Friend,
		vedic.Jupiter: Enemy, vedic.Venus: Friend, vedic.Saturn: Friend,
		vedic.Rahu: Friend, vedic.Ketu: Friend,
	},
	vedic.Mercury: {
		vedic.Sun: Neutral, vedic.Moon: Friend, vedic.Mars: Friend,
		vedic.Jupiter: Friend, vedic.Venus: Enemy, vedic.Saturn: Enemy,
		vedic.Rahu: Enemy, vedic.Ketu: Enemy,
	},
	vedic.Jupiter: {
		vedic.Sun: Friend, vedic.Moon: Friend, vedic.Mars: Enemy,
		vedic.Mercury: Friend, vedic.Venus: Friend, vedic.Saturn: Enemy,
		vedic.Rahu: Enemy, vedic.Ketu: Enemy,
	},
	vedic.Venus: {
		vedic.Sun: Enemy, vedic.Moon: Friend, vedic.Mars: Friend,
		vedic.Mercury: Enemy, vedic.Jupiter: Friend, vedic.Saturn: Friend,
		vedic.Rahu: Friend, vedic.Ketu: Friend,
	},
	vedic.Saturn: {
		vedic.Sun: Enemy, vedic.Moon: Enemy, vedic.Mars: Friend,
		vedic.Mercury: Enemy, vedic.Jupiter: Enemy, vedic.Venus: Friend,
		vedic.Rahu: Friend, vedic.Ketu: Friend,
	},
	vedic.Rahu: {
		vedic.Sun: Enemy, vedic.Moon: Enemy, vedic.Mars: Friend,
		vedic.Mercury: Enemy, vedic.Jupiter: Enemy, vedic.Venus: Friend,
		vedic.Saturn: Friend, vedic.Ketu: Enemy,
	},
	vedic.Ketu: {
		vedic.Sun: Friend, vedic.Moon: Enemy, vedic.Mars: Friend,
		vedic.Mercury: Friend, vedic.Jupiter: Enemy, vedic.Venus: Friend,
		vedic.Saturn: Friend, vedic.Rahu: Enemy,
	},
}

// NaturalFriendship returns the classical relationship between two planets.
// Undefined pairs (including a planet with itself) are neutral.
func NaturalFriendship(a, b vedic.Planet) Friendship {
	return naturalMatrix[a][b]
}

// temporalFriendOffsets are the sign distances, counted from a planet's own
// sign, that make another planet a temporary friend: the 2nd, 3rd, 4th,
// 10th, 11th and 12th signs from it.
var temporalFriendOffsets = map[int]bool{1: true, 2: true, 3: true, 9: true, 10: true, 11: true}

// TemporalFriendship returns the Tatkalika relationship implied by the two
// planets' sign placements in a chart.
func TemporalFriendship(from, to vedic.ZodiacSign) Friendship {
	diff := (int(to) - int(from)) % 12
	if diff < 0 {
		diff += 12
	}
	if temporalFriendOffsets[diff] {
		return Friend
	}
	return Enemy
}

// CompoundFriendship combines natural and temporal relationships into the
// five-grade scale: agreement amplifies, disagreement cancels to neutral.
func CompoundFriendship(natural, temporal Friendship) Compound {
	sum := int(natural) + int(temporal)
	switch {
	case sum >= 2:
		return GreatFriend
	case sum == 1:
		return CompoundFriend
	case sum == -1:
		return CompoundEnemy
	case sum <= -2:
		return GreatEnemy
	}
	return CompoundNeutral
}

// FriendsOf lists the natural friends of a planet in standard order.
func FriendsOf(p vedic.Planet) []vedic.Planet {
	var friends []vedic.Planet
	for _, other := range vedic.Planets {
		if other != p && NaturalFriendship(p, other) == Friend {
			friends = append(friends, other)
		}
	}
	return friends
}
