package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("record: %w", ErrPersistence.Wrap(cause))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, "PERSISTENCE_FAILED", CodeOf(err))
	assert.Equal(t, "record: failed to store fee record: connection refused", err.Error())
	assert.Equal(t, "", CodeOf(cause))
}
