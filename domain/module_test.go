package domain

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dci/di"
	"dci/errors"
)

type greeting string

type testModule struct {
	name string
	err  error
}

func (m testModule) Name() string { return m.name }

func (m testModule) RegisterParts(catalog *di.Catalog) error {
	if m.err != nil {
		return m.err
	}
	return catalog.Provide(func() greeting { return greeting("hello from " + m.name) })
}

func TestBuildCatalog(t *testing.T) {
	catalog, err := BuildCatalog(testModule{name: "banking"})
	require.NoError(t, err)
	assert.True(t, catalog.Has(di.ContractOf[greeting]()))

	got, err := di.Compose[greeting](di.NewComposer(catalog))
	require.NoError(t, err)
	assert.Equal(t, greeting("hello from banking"), got)
}

func TestBuildCatalog_DuplicateModule(t *testing.T) {
	_, err := BuildCatalog(testModule{name: "banking"}, testModule{name: "banking"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetErrorCode(err))
}

func TestBuildCatalog_RegisterFailure(t *testing.T) {
	cause := stdErrors.New("boom")
	_, err := BuildCatalog(testModule{name: "broken", err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "broken", err.(errors.IError).Details()["module"])
}

func TestBuildCatalog_NilModule(t *testing.T) {
	_, err := BuildCatalog(nil)
	require.Error(t, err)
}
