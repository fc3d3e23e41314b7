package pages

import (
	"context"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// StudentDetailPage is the student detail page, which can also add enrollments.
type StudentDetailPage struct {
	*DetailPage[models.Student]
	enrollModalOpen bool
}

// CourseDetailPage is the course detail page.
type CourseDetailPage = DetailPage[models.Course]

// EnrollModalOpen reports whether the add-enrollment modal is shown.
func (p *StudentDetailPage) EnrollModalOpen() bool { return p.enrollModalOpen }

// OpenEnrollModal shows the add-enrollment modal.
func (p *StudentDetailPage) OpenEnrollModal() { p.enrollModalOpen = true }

// AddEnrollments enrolls the student into courseIDs, then re-fetches the student.
// A failed POST keeps the modal open with the backend's message; a failed
// re-fetch closes it, since the enrollments exist, and is reported as
// *RefreshError.
func (p *StudentDetailPage) AddEnrollments(ctx context.Context, courseIDs []int64) error {
	if err := p.ready(); err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		p.enrollModalOpen = true
		return apperrors.NewValidationGap("course_ids", "Please enter at least one course ID")
	}

	if err := p.enrollments.Enroll(ctx, p.id, courseIDs); err != nil {
		if dropped(ctx, err) {
			return err
		}
		p.logger.Error().Err(err).Int64("studentID", p.id).Ints64("courseIDs", courseIDs).Msg("Failed to add enrollments")
		p.enrollModalOpen = true
		p.notifier.Error(apperrors.Message(err, "Could not add enrollment"))
		return err
	}

	if err := p.refresh(ctx); err != nil {
		p.enrollModalOpen = false
		return p.refreshFailed(ctx, "add enrollment", err)
	}

	p.enrollModalOpen = false
	p.notifier.Success("Enrollment added")
	return nil
}
