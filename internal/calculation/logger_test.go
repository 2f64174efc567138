package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPrefix_KeepsPercentInName(t *testing.T) {
	rec := &recordingLogger{}
	withPrefix(rec, "TFR 100%").Warnf("year %d", 2030)

	assert.Equal(t, []string{"[TFR 100%] year 2030"}, rec.warns)
}

func TestWithPrefix_EmptyNameIsUnwrapped(t *testing.T) {
	rec := &recordingLogger{}
	assert.Same(t, rec, withPrefix(rec, ""))
}
