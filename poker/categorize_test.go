package poker

import (
	"testing"
)

func TestCategorizeHoleCards(t *testing.T) {
	tests := []struct {
		name     string
		card1    string
		card2    string
		expected HoleCardCategory
	}{
		{"Pocket Aces", "As", "Ah", CategoryPremium},
		{"Pocket Jacks", "Jh", "Jd", CategoryPremium},
		{"Ace King offsuit", "Ac", "Kh", CategoryPremium},

		{"Pocket Tens", "Tc", "Th", CategoryStrong},
		{"Ace Queen suited", "As", "Qs", CategoryStrong},
		{"Ace Jack offsuit", "Ad", "Jc", CategoryStrong},

		{"Pocket Sevens", "7h", "7c", CategoryMedium},
		{"King Queen suited", "Ks", "Qs", CategoryMedium},
		{"Queen Jack suited", "Qd", "Jd", CategoryMedium},

		{"Pocket Twos", "2c", "2h", CategoryWeak},
		{"Suited connectors 76s", "7h", "6h", CategoryWeak},
		{"Suited one-gapper 64s", "6d", "4d", CategoryWeak},

		{"Seven Two offsuit", "7c", "2h", CategoryTrash},
		{"King Queen offsuit", "Kc", "Qh", CategoryTrash},
		{"Jack Four offsuit", "Jh", "4c", CategoryTrash},

		{"Same card twice", "Jh", "Jh", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card1, err1 := ParseCard(tt.card1)
			card2, err2 := ParseCard(tt.card2)
			if err1 != nil || err2 != nil {
				t.Fatalf("Failed to parse cards: %v, %v", err1, err2)
			}

			result := CategorizeHoleCards(card1, card2)
			if result != tt.expected {
				t.Errorf("CategorizeHoleCards(%s, %s) = %s, want %s",
					tt.card1, tt.card2, result, tt.expected)
			}
		})
	}
}
