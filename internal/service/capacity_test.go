package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencampus/registrar-api/internal/models"
)

func TestDefaultCapacity(t *testing.T) {
	cases := []struct {
		classification models.CourseClassification
		expected       int
	}{
		{models.ClassificationUndergraduate, 4},
		{models.ClassificationGraduate, 3},
		{models.ClassificationMasters, 2},
		{models.ClassificationDoctorate, 1},
		{models.CourseClassification("CERTIFICATE"), 4},
		{models.CourseClassification(""), 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, DefaultCapacity(tc.classification), "classification %q", tc.classification)
	}
}

func TestDefaultCapacityStable(t *testing.T) {
	first := DefaultCapacity(models.ClassificationMasters)
	second := DefaultCapacity(models.ClassificationMasters)
	assert.Equal(t, first, second)
}
