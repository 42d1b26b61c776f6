package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarNaming(t *testing.T) {
	assert.Equal(t, "x_3_2", VarX(3, 2))
	assert.Equal(t, "xi_3", VarXi(3))
	assert.Equal(t, "D", VarD)
	assert.Equal(t, "DL", VarDL)
}
