package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lms/core"
)

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// MaterialType is the kind of content a Material points to.
type MaterialType string

const (
	MaterialVideo MaterialType = "video"
	MaterialPDF   MaterialType = "pdf"
	MaterialLink  MaterialType = "link"
)

var MaterialTypes = []MaterialType{MaterialVideo, MaterialPDF, MaterialLink}

func (mt MaterialType) IsValid() bool {
	return mt == MaterialVideo || mt == MaterialPDF || mt == MaterialLink
}

// Label is the human-facing name used by the material form.
func (mt MaterialType) Label() string {
	switch mt {
	case MaterialVideo:
		return "Video URL (e.g., YouTube/Vimeo)"
	case MaterialPDF:
		return "File/PDF Link"
	case MaterialLink:
		return "External Link/Reading"
	default:
		return string(mt)
	}
}

type Material struct {
	ID    int64        `json:"id"`
	Type  MaterialType `json:"type"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
}

type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Instructor  string     `json:"instructor"`
	Duration    string     `json:"duration"`
	Level       Level      `json:"level"`
	Status      Status     `json:"status"`
	Materials   []Material `json:"materials"`
}

// Copy returns a deep copy of c, so callers never share the materials backing array.
func (c Course) Copy() Course {
	materials := make([]Material, len(c.Materials))
	copy(materials, c.Materials)
	c.Materials = materials
	return c
}

// NewCourse is the course creation form.
type NewCourse struct {
	Title       string `json:"title" form:"title" validate:"notblank"`
	Description string `json:"description" form:"description"`
	Duration    string `json:"duration" form:"duration"`
	Level       Level  `json:"level" form:"level" validate:"oneof=Beginner Intermediate Advanced"`
	Instructor  string `json:"instructor" form:"instructor" validate:"notblank"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Duration = core.CleanString(nc.Duration)
	nc.Instructor = core.CleanString(nc.Instructor)
	if nc.Level == "" {
		nc.Level = LevelBeginner
	}
	return validate.Struct(nc)
}

// NewMaterial is the material form of the content manager.
type NewMaterial struct {
	Type  MaterialType `json:"type" form:"type" validate:"oneof=video pdf link"`
	Title string       `json:"title" form:"title" validate:"notblank"`
	URL   string       `json:"url" form:"url" validate:"notblank"`
}

func (nm *NewMaterial) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	nm.URL = core.CleanString(nm.URL)
	if nm.Type == "" {
		nm.Type = MaterialVideo
	}
	return validate.Struct(nm)
}

type QueryFilter struct {
	Instructor string `query:"instructor"`
	Status     Status `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Instructor == "" && qf.Status == ""
}

// Match applies AND on the set filter fields; Instructor is a plain equality match.
func (qf *QueryFilter) Match(c Course) bool {
	if qf.Instructor != "" && c.Instructor != qf.Instructor {
		return false
	}
	if qf.Status != "" && c.Status != qf.Status {
		return false
	}
	return true
}
