package targets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/targets"
)

func TestRegistry_Lookup(t *testing.T) {
	r := targets.NewRegistry()

	target, err := r.Lookup("dlib")
	require.NoError(t, err)
	assert.Equal(t, "dlib", target.Name())

	target, err = r.Lookup("OpenBLAS")
	require.NoError(t, err)
	assert.Equal(t, "OpenBLAS", target.Name())
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := targets.NewRegistry()
	_, err := r.Lookup("zlib")
	require.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := targets.NewRegistry()
	assert.Equal(t, []string{"OpenBLAS", "dlib"}, r.Names())
}
