package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	cols := []string{"Price", "Prices", "Region", "Ship Date", "Profit"}

	assert.Equal(t, []string{"Price", "Prices"}, Suggest("price", cols))
	assert.Equal(t, []string{"Region"}, Suggest("regoin", cols))
	assert.Equal(t, []string{"Ship Date"}, Suggest("ShipDate", cols))
	assert.Equal(t, []string{"Ship Date"}, Suggest("SHIP-DATE", cols))
	assert.Equal(t, "shipdate", normalizeName("Ship_ Date"))
	assert.Empty(t, Suggest("Quantity", cols))
	assert.Empty(t, Suggest("x", nil))
}

func TestSuggest_CountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	cols := []string{"価額", "数量", "Größe"}

	assert.Equal(t, []string{"価額"}, Suggest("価格", cols))
	assert.Equal(t, []string{"Größe"}, Suggest("Grösse", cols))
	assert.Empty(t, Suggest("売上", cols))
}
