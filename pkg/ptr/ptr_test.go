package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	p := Ptr("city")
	require.NotNil(t, p)
	assert.Equal(t, "city", *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 42, Deref(Ptr(42)))

	var missing *string
	assert.Equal(t, "", Deref(missing))
}
