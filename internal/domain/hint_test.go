package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trailfinder/internal/domain"
)

func TestHintPrefixLongEnough(t *testing.T) {
	assert.False(t, domain.HintPrefixLongEnough(""))
	assert.False(t, domain.HintPrefixLongEnough("Kr"))
	assert.False(t, domain.HintPrefixLongEnough("Łó"), "two characters, four bytes")
	assert.True(t, domain.HintPrefixLongEnough("Kra"))
	assert.True(t, domain.HintPrefixLongEnough("Łód"))
}

func TestParseHintType(t *testing.T) {
	typ, err := domain.ParseHintType("place")
	assert.NoError(t, err)
	assert.Equal(t, domain.HintPlace, typ)

	typ, err = domain.ParseHintType("polygon")
	assert.NoError(t, err)
	assert.Equal(t, domain.HintPolygon, typ)

	_, err = domain.ParseHintType("Polygon")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdminPrefixes_Rank(t *testing.T) {
	p := domain.DefaultAdminPrefixes

	assert.Equal(t, 1, p.Rank("Kraków"))
	assert.Equal(t, 2, p.Rank("Gmina Zielonki"))
	assert.Equal(t, 3, p.Rank("powiat krakowski"))
	assert.Equal(t, 4, p.Rank("WOJEWÓDZTWO MAŁOPOLSKIE"))
}

func TestAdminPrefixes_CustomTable(t *testing.T) {
	p := domain.AdminPrefixes{"district", "county"}

	assert.Equal(t, 1, p.Rank("Gmina Zielonki"))
	assert.Equal(t, 3, p.Rank("County Durham"))
}
