package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Codigo", "Nombre"},
		Rows: []map[string]string{
			{"Codigo": "MAT101", "Nombre": "Calculo, Parte I"},
			{"Codigo": "FIS201"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Codigo,Nombre\nMAT101,\"Calculo, Parte I\"\nFIS201,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
