package textquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ct   string
		want Category
	}{
		{"application/json", JSON},
		{"application/vnd.api+json; charset=utf-8", JSON},
		{"TEXT/HTML; charset=UTF-8", HTML},
		{"application/xhtml+xml", HTML},
		{"application/atom+xml", XML},
		{"text/xml", XML},
		{"application/x-yaml", YAML},
		{"application/x-www-form-urlencoded", Form},
		{"text/plain", Text},
		{"application/javascript", Text},
		{"image/png", Binary},
		{"", Binary},
	}
	for _, tt := range tests {
		t.Run(tt.ct, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ct))
		})
	}
}

func TestDetectMode(t *testing.T) {
	assert.Equal(t, ModeJQ, DetectMode("application/json"))
	assert.Equal(t, ModeJQ, DetectMode("application/yaml"))
	assert.Equal(t, ModeCSS, DetectMode("text/html"))
	assert.Equal(t, ModeXPath, DetectMode("application/xml"))
	assert.Equal(t, ModeForm, DetectMode("application/x-www-form-urlencoded"))
	assert.Equal(t, ModeRegex, DetectMode("text/plain"))
	assert.Equal(t, ModeRegex, DetectMode(""))
}
