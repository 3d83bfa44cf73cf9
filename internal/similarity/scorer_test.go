package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIdenticalText(t *testing.T) {
	item := ItemText{
		Title:       "Black Wallet",
		Description: "Leather wallet with student ID inside",
		Location:    "Marston Library",
	}

	assert.Equal(t, 1.0, Score(item, item))
}

func TestScoreDisjointText(t *testing.T) {
	lost := ItemText{Title: "Red Bicycle"}
	found := ItemText{Title: "Math Textbook"}

	assert.Equal(t, 0.0, Score(lost, found))
}

func TestScoreSymmetry(t *testing.T) {
	pairs := []struct {
		a, b ItemText
	}{
		{
			ItemText{Title: "Black Wallet", Description: "lost near library", Location: "Library"},
			ItemText{Title: "Black Wallet", Description: "found near library", Location: "Library"},
		},
		{
			ItemText{Title: "Water bottle", Location: "Gym"},
			ItemText{Title: "Blue hydro flask", Location: "Southwest Rec"},
		},
		{
			ItemText{Title: "AirPods"},
			ItemText{Title: "airpods case", Description: "white"},
		},
	}

	for _, p := range pairs {
		assert.Equal(t, Score(p.a, p.b), Score(p.b, p.a))
	}
}

func TestScoreBounds(t *testing.T) {
	items := []ItemText{
		{},
		{Title: "a"},
		{Title: "Umbrella", Description: "black, broken handle", Location: "Turlington Hall"},
		{Title: "Keys", Description: "three keys on a gator lanyard"},
		{Title: "Keys", Description: "Set of keys, orange lanyard"},
	}

	for _, a := range items {
		for _, b := range items {
			s := Score(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestScoreEmptyText(t *testing.T) {
	assert.Equal(t, 0.0, Score(ItemText{}, ItemText{}))
	assert.Equal(t, 0.0, Score(ItemText{Title: "Wallet"}, ItemText{}))
}

func TestScoreSimilarItemsAboveThreshold(t *testing.T) {
	lost := ItemText{Title: "Black Wallet", Description: "lost near library", Location: "Library"}
	found := ItemText{Title: "Black Wallet", Description: "found near library", Location: "Library"}

	assert.GreaterOrEqual(t, Score(lost, found), 0.3)
}

func TestScoreIgnoresCaseAndSpacing(t *testing.T) {
	a := ItemText{Title: "BLACK   WALLET", Location: "library"}
	b := ItemText{Title: "black wallet", Location: "Library"}

	assert.Equal(t, 1.0, Score(a, b))
}
