package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func TestUpstream_UsesRootMessage(t *testing.T) {
	err := Upstream("Failed to create user", fmt.Errorf("put item: %w", errors.New("ProvisionedThroughputExceeded")))

	assert.Equal(t, "ProvisionedThroughputExceeded", err.Error())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestUpstream_FallbackWhenNoMessage(t *testing.T) {
	err := Upstream("Failed to create user", emptyErr{})
	assert.Equal(t, "Failed to create user", err.Error())
}

func TestUpstream_PassesThroughClassified(t *testing.T) {
	nf := NotFound("Product not found")
	err := Upstream("Failed to update product", fmt.Errorf("update: %w", nf))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Nil(t, Upstream("x", nil))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, "Resolver not found for Query.nope", Routing("Query", "nope").Error())
	assert.ErrorIs(t, Routing("Query", "nope"), ErrRouting)
	assert.ErrorIs(t, Invalid("Invalid plan: %s", "GOLD"), ErrInvalidInput)
	assert.Equal(t, "Invalid plan: GOLD", Invalid("Invalid plan: %s", "GOLD").Error())

	assert.Equal(t, "NotFound", KindNotFound.String())
	assert.Equal(t, "InvalidInput", KindInvalidInput.String())
	assert.Equal(t, "ResolverNotFound", KindRouting.String())
	assert.Equal(t, "UpstreamFailure", KindUpstream.String())
	assert.Equal(t, KindUpstream, KindOf(errors.New("plain")))
}
