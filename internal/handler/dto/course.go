package dto

import "github.com/coursekeep/coursekeep/internal/model"

// CourseRequest represents the request body for creating or replacing a course.
type CourseRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	EstimatedTime   *string `json:"estimatedTime,omitempty"`
	MaterialsNeeded *string `json:"materialsNeeded,omitempty"`
}

// Changes converts the request into a course update.
func (r CourseRequest) Changes() model.CourseChanges {
	return model.CourseChanges{
		Title:           r.Title,
		Description:     r.Description,
		EstimatedTime:   r.EstimatedTime,
		MaterialsNeeded: r.MaterialsNeeded,
	}
}

// CourseListResponse lists courses.
type CourseListResponse struct {
	Courses []*model.Course `json:"courses"`
}

// CourseResponse wraps a single course.
type CourseResponse struct {
	Course *model.Course `json:"course"`
}
