package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBMI(t *testing.T) {
	weight, height := 70.0, 175.0
	v := Vitals{Weight: &weight, Height: &height}

	v.ComputeBMI()
	require.NotNil(t, v.BMI)
	assert.Equal(t, 22.9, *v.BMI)
}

func TestComputeBMIRequiresBothInputs(t *testing.T) {
	weight := 70.0
	v := Vitals{Weight: &weight}
	v.ComputeBMI()
	assert.Nil(t, v.BMI)

	height := 175.0
	v = Vitals{Height: &height}
	v.ComputeBMI()
	assert.Nil(t, v.BMI)
}

func TestComputeBMIZeroHeight(t *testing.T) {
	weight, height := 70.0, 0.0
	v := Vitals{Weight: &weight, Height: &height}
	v.ComputeBMI()
	assert.Nil(t, v.BMI)
}

func TestBloodSugarTypeValid(t *testing.T) {
	assert.True(t, BloodSugarFasting.Valid())
	assert.True(t, BloodSugarRandom.Valid())
	assert.True(t, BloodSugarPostMeal.Valid())
	assert.False(t, BloodSugarType("before_bed").Valid())
}
