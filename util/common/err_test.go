package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	err := Combine(nil, errors.New("first"), nil, errors.New("second"))
	assert.EqualError(t, err, "first, second")
}

func TestRecoverStopsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		func() {
			defer Recover("")
			panic("boom")
		}()
	})
}
