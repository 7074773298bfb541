package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const listingHTML = `
<html><body>
<div class="course-item" data-course-code="CS101">
  <span class="course-name">Intro to Computing</span>
  <span class="course-time">MWF 10:00-11:30</span>
  <span class="enrollment">45/50</span>
</div>
<div class="course-item">
  <span class="course-name">Linear Algebra</span>
  <span class="course-code">MATH204</span>
  <span class="schedule">TR 2:00pm-3:15pm</span>
  <span class="students">38 of 40</span>
</div>
<div class="course-item">
  <span class="course-name">Seminar</span>
</div>
<div class="course-item">
  <span class="course-time">orphan row without a name</span>
</div>
</body></html>`

func TestExtractCourses(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	rows := ExtractCourses(doc, SelectorsFromEnv())
	if len(rows) != 3 {
		t.Fatalf("ExtractCourses() returned %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.CourseCode != "CS101" || first.CourseName != "Intro to Computing" ||
		first.ScheduleRaw != "MWF 10:00-11:30" || first.EnrollmentRaw != "45/50" {
		t.Errorf("first row = %+v", first)
	}

	second := rows[1]
	if second.CourseCode != "MATH204" || second.ScheduleRaw != "TR 2:00pm-3:15pm" ||
		second.EnrollmentRaw != "38 of 40" {
		t.Errorf("second row = %+v", second)
	}

	// No code anywhere falls back to UNKNOWN; empty schedule text is kept
	// raw and dropped later at slot creation.
	third := rows[2]
	if third.CourseCode != "UNKNOWN" || third.ScheduleRaw != "" {
		t.Errorf("third row = %+v", third)
	}
}
