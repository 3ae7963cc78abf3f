package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.PackagesCreated.WithLabelValues("post").Inc()
	m.VideoTransitions.WithLabelValues("engaged").Add(2)
	m.PackagesCompleted.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PackagesCreated.WithLabelValues("post")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.VideoTransitions.WithLabelValues("engaged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PackagesCompleted))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// a second set on a separate registry must not collide
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
