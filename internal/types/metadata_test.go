package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Not specified", FormatTimestamp(nil))

	ts := time.Date(2021, 12, 31, 23, 59, 8, 0, time.UTC)
	assert.Equal(t, "31/12/2021 23:59:08", FormatTimestamp(&ts))
}

func TestContainerErrorWrapping(t *testing.T) {
	err := NewContainerError("/tmp/a.wim", ErrAccessDenied)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, err.Error(), "/tmp/a.wim")
}
