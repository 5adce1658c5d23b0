package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlead/leadgen-cli/internal/model"
)

func mustCompany(t *testing.T, name string) *model.Company {
	t.Helper()
	c, err := model.NewCompany(name, model.SourceManual)
	require.NoError(t, err)
	return c
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	src := NewStatic("seed", model.SourceManual, nil)
	reg.Register(src)

	assert.Equal(t, src, reg.Get("seed"))
	assert.Nil(t, reg.Get("missing"))
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewStatic("c", model.SourceManual, nil))
	reg.Register(NewStatic("a", model.SourceManual, nil))
	reg.Register(NewStatic("b", model.SourceManual, nil))

	assert.Equal(t, []string{"c", "a", "b"}, reg.Names())

	list := reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Name())
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewStatic("a", model.SourceManual, nil))
	reg.Register(NewStatic("b", model.SourceManual, nil))

	replacement := NewStatic("a", model.SourceOther, nil)
	reg.Register(replacement)

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Equal(t, replacement, reg.Get("a"))
}

func TestStatic_ReturnsConfiguredBatch(t *testing.T) {
	companies := []*model.Company{mustCompany(t, "Acme"), mustCompany(t, "Globex")}
	src := NewStatic("seed", model.SourceManual, companies)

	res := src.Scrape(context.Background())
	assert.True(t, res.Succeeded)
	assert.Len(t, res.Companies, 2)
	assert.Equal(t, model.SourceManual, res.Source)
}

func TestStatic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewStatic("seed", model.SourceManual, []*model.Company{mustCompany(t, "Acme")})
	res := src.Scrape(ctx)
	assert.False(t, res.Succeeded)
	assert.Empty(t, res.Companies)
}
