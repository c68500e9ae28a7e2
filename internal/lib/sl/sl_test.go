package sl_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

func TestErr(t *testing.T) {
	attr := sl.Err(errors.New("parcel not found"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("parcel not found"), attr.Value)
}

func TestErr_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestDiscard(t *testing.T) {
	log := sl.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
}
