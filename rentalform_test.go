package rentalform_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rentalform "github.com/ezhumalaisanjay/go-rentalform"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/testsupport"
)

func TestDefaultRegistryHasAllBackends(t *testing.T) {
	registry := rentalform.DefaultRegistry()
	assert.Equal(t, []string{"html", "pdf", "text"}, registry.List())
}

func TestGeneratePDF(t *testing.T) {
	artifact, err := rentalform.GeneratePDF(context.Background(),
		testsupport.ValidApplication(), render.DefaultLetterhead)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(artifact.Bytes, []byte("%PDF-")))
	assert.Equal(t, "rental-application-rivera-2024-03-15.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.ContentType)
}

func TestNewWizardStartsFresh(t *testing.T) {
	wiz := rentalform.NewWizard()
	assert.Equal(t, 1, wiz.Step())
}
