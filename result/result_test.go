package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/result"
)

func TestNewSuccess(t *testing.T) {
	value := "success value"
	successResult := result.NewSuccess(&value)

	assert.True(t, successResult.IsSuccess())
	assert.False(t, successResult.IsError())

	val, err := successResult.Value()
	assert.Nil(t, err)
	assert.Equal(t, value, *val)
}

func TestNewFailure(t *testing.T) {
	testErr := blame.NewBasicBlame("test-error")
	errorResult := result.NewFailure[any](testErr)

	assert.False(t, errorResult.IsSuccess())
	assert.True(t, errorResult.IsError())

	_, err := errorResult.Value()
	assert.Error(t, err)
	assert.Equal(t, testErr, err)

	assert.Equal(t, testErr, errorResult.Error())
	assert.Nil(t, errorResult.ToValue())
}

func TestToResult(t *testing.T) {
	value := "success value"
	successResult := result.ToResult(&value, nil)

	assert.IsType(t, &result.Success[string]{}, successResult)

	errorResult := result.ToResult[string](nil, blame.NewBasicBlame("test-error"))
	assert.IsType(t, &result.Failure[string]{}, errorResult)
}
