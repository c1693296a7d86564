package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDF_Accepts(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"contract.pdf", true},
		{"CONTRACT.PDF", true},
		{"contract.docx", false},
		{"pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, PDF{}.Accepts(tt.filename))
		})
	}
}

func TestPDF_Extract_NotAPDF(t *testing.T) {
	text, err := PDF{}.Extract(context.Background(), []byte("Monthly fee: 100 EUR"))

	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestPDF_Extract_Empty(t *testing.T) {
	_, err := PDF{}.Extract(context.Background(), nil)

	assert.Error(t, err)
}
