package service

import "github.com/opencampus/registrar-api/internal/models"

// DefaultCapacity maps a course classification to its default enrollment
// capacity. Unrecognised classifications fall back to the undergraduate
// capacity instead of failing; callers are expected to validate upstream.
func DefaultCapacity(classification models.CourseClassification) int {
	switch classification {
	case models.ClassificationUndergraduate:
		return 4
	case models.ClassificationGraduate:
		return 3
	case models.ClassificationMasters:
		return 2
	case models.ClassificationDoctorate:
		return 1
	default:
		return 4
	}
}
