package zones

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassify_MatchesZone(t *testing.T) {
	zone, ok := Classify("Aperitivo sui Navigli stasera", "")

	assert.Equal(t, true, ok)
	assert.Equal(t, "navigli", zone)
}

func TestClassify_NotRelevant(t *testing.T) {
	zone, ok := Classify("Juventus batte Milan 2-1", "cronaca sportiva della serata")

	assert.Equal(t, false, ok)
	assert.Equal(t, "", zone)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	zone, ok := Classify("GRANDE FESTA IN DARSENA", "")

	assert.Equal(t, true, ok)
	assert.Equal(t, "darsena", zone)
}

func TestClassify_UsesDescription(t *testing.T) {
	zone, ok := Classify("Weekend di design", "mostre e mercatini in via Tortona")

	assert.Equal(t, true, ok)
	assert.Equal(t, "via_tortona", zone)
}

func TestClassify_FirstZoneWins(t *testing.T) {
	// "ripa ticinese" belongs to navigli, "ticinese" to porta_ticinese;
	// the text matches both zones but navigli comes first in the taxonomy.
	for i := 0; i < 100; i++ {
		zone, ok := Classify("Eventi in ripa ticinese questo weekend", "")

		assert.Equal(t, true, ok)
		assert.Equal(t, "navigli", zone)
	}
}

func TestClassify_LaterZoneMatchesWhenEarlierDoesNot(t *testing.T) {
	// "darsena" alone is a darsena phrase; navigli only lists the longer
	// "darsena navigli", which this text does not contain.
	zone, ok := Classify("Concerto alla darsena", "")

	assert.Equal(t, true, ok)
	assert.Equal(t, "darsena", zone)
}

func TestNames_DefinitionOrder(t *testing.T) {
	names := Names()

	assert.Equal(t, 9, len(names))
	assert.Equal(t, "navigli", names[0])
	assert.Equal(t, "darsena", names[1])
	assert.Equal(t, "via_giuseppe_meda", names[8])
}

func TestPhrasesFor(t *testing.T) {
	phrases := PhrasesFor("navigli")

	assert.NotEqual(t, 0, len(phrases))
	assert.Equal(t, "navigli", phrases[0])

	assert.Equal(t, 0, len(PhrasesFor("brera")))
}
