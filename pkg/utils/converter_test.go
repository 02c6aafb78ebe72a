package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 2.6, utils.Round2(2.6000000000000005))
	assert.Equal(t, 1.24, utils.Round2(1.235))
	assert.Equal(t, 0.1235, utils.Round4(0.12345))
	assert.Equal(t, 120001.0, utils.RoundWhole(120000.5))
	assert.Equal(t, 0.0, utils.Round2(0))
}

func TestRound_HalfBoundaries(t *testing.T) {
	assert.Equal(t, 1.01, utils.Round2(1.005))
	assert.Equal(t, 2.68, utils.Round2(2.675))
	assert.Equal(t, -1.01, utils.Round2(-1.005))
	assert.Equal(t, 1.0, utils.Round2(1.0049999))
}

func TestStringToInt(t *testing.T) {
	assert.Equal(t, 7, utils.StringToInt("7", 5))
	assert.Equal(t, 5, utils.StringToInt("", 5))
	assert.Equal(t, 5, utils.StringToInt("abc", 5))
	assert.Equal(t, -3, utils.StringToInt(" -3 ", 5))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, utils.ClampInt(0, 1, 20))
	assert.Equal(t, 20, utils.ClampInt(50, 1, 20))
	assert.Equal(t, 7, utils.ClampInt(7, 1, 20))
}

func TestSortedKeys(t *testing.T) {
	keys := utils.SortedKeys(map[string]int{"usa": 1, "china": 2, "germany": 3})
	assert.Equal(t, []string{"china", "germany", "usa"}, keys)
}
