package model

import "time"

// Course represents a course record owned by a single user.
type Course struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// OwnedBy reports whether the course belongs to the user with the given ID.
// Ownership is decided on the numeric user ID only.
func (c *Course) OwnedBy(userID int64) bool {
	return c != nil && c.UserID == userID
}

// CourseChanges describes a full update of a course's editable fields.
// Nil optional fields leave the stored value untouched.
type CourseChanges struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// Apply copies the changes onto the course.
func (ch CourseChanges) Apply(c *Course) {
	c.Title = ch.Title
	c.Description = ch.Description
	if ch.EstimatedTime != nil {
		c.EstimatedTime = ch.EstimatedTime
	}
	if ch.MaterialsNeeded != nil {
		c.MaterialsNeeded = ch.MaterialsNeeded
	}
}
