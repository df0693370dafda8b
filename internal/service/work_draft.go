package service

import (
	"strings"
	"unicode/utf8"

	"atelier/internal/models"
)

// WorkDraft collects a work submission field by field and validates it as a
// whole before anything is persisted. Tag and image rules apply at entry
// time: tags are trimmed, deduplicated and capped, images accumulate up to
// the maximum and excess ones are silently dropped.
type WorkDraft struct {
	title       string
	description string
	tags        []string
	images      []string
	submitting  bool
}

func NewWorkDraft() *WorkDraft {
	return &WorkDraft{}
}

func (d *WorkDraft) SetTitle(title string) {
	d.title = strings.TrimSpace(title)
}

func (d *WorkDraft) SetDescription(desc string) {
	d.description = strings.TrimSpace(desc)
}

// AddTag adds a normalized tag. Empty, overlong and duplicate tags are
// no-ops, as is adding past the tag cap.
func (d *WorkDraft) AddTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || utf8.RuneCountInString(tag) > models.MaxWorkTagLen {
		return false
	}
	if len(d.tags) >= models.MaxWorkTags {
		return false
	}
	for _, existing := range d.tags {
		if existing == tag {
			return false
		}
	}
	d.tags = append(d.tags, tag)
	return true
}

func (d *WorkDraft) RemoveTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, existing := range d.tags {
		if existing == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return
		}
	}
}

// AddImages appends image URLs to the draft, truncating the total to the
// image cap. Adding 4 images to a draft holding 3 keeps the first 5.
func (d *WorkDraft) AddImages(urls []string) {
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if len(d.images) >= models.MaxWorkImages {
			return
		}
		d.images = append(d.images, u)
	}
}

func (d *WorkDraft) RemoveImage(index int) {
	if index < 0 || index >= len(d.images) {
		return
	}
	d.images = append(d.images[:index], d.images[index+1:]...)
}

func (d *WorkDraft) Tags() []string {
	return append([]string(nil), d.tags...)
}

func (d *WorkDraft) Images() []string {
	return append([]string(nil), d.images...)
}

// Validate checks the draft in field order: title, then description, then
// images. The first failing field produces the error the user sees.
func (d *WorkDraft) Validate() error {
	if d.title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(d.title) > models.MaxWorkTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	if d.description == "" {
		return models.NewValidationError("Description is required")
	}
	if utf8.RuneCountInString(d.description) > models.MaxWorkDescLen {
		return models.NewValidationError("Description too long (max 500 characters)")
	}
	if len(d.images) < models.MinWorkImages {
		return models.NewValidationError("At least one image is required")
	}
	return nil
}

// BeginSubmit marks the draft as in flight. It returns false when a
// submission is already running, so repeated submits are serialized.
func (d *WorkDraft) BeginSubmit() bool {
	if d.submitting {
		return false
	}
	d.submitting = true
	return true
}

// EndSubmit clears the in-flight flag once the submission settles.
func (d *WorkDraft) EndSubmit() {
	d.submitting = false
}

// Reset clears every field so the draft can be reused after a successful
// submission. Failed submissions keep the entered data.
func (d *WorkDraft) Reset() {
	*d = WorkDraft{}
}

// Build materializes the draft into a Work owned by userID.
func (d *WorkDraft) Build(userID uint) *models.Work {
	work := &models.Work{
		Title:       d.title,
		Description: d.description,
		UserID:      userID,
		IsActive:    true,
	}
	for i, u := range d.images {
		work.Images = append(work.Images, models.WorkImage{URL: u, Position: i})
	}
	for _, t := range d.tags {
		work.Tags = append(work.Tags, models.WorkTag{Tag: t})
	}
	return work
}
