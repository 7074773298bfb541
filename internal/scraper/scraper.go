// Package scraper logs into the university portal and extracts course
// rows (name, code, raw schedule text, raw enrollment text). Parsing the
// raw text into structured slots lives in internal/schedule.
package scraper

import (
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CourseRow is one course as found on the portal's course listing page.
type CourseRow struct {
	CourseName    string
	CourseCode    string
	ScheduleRaw   string
	EnrollmentRaw string
}

// Selectors locate course data in the portal DOM. Portals differ, so
// every selector can be overridden via environment variables.
type Selectors struct {
	Row        string
	Name       string
	Code       string
	Schedule   string
	Enrollment string
}

func selectorEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SelectorsFromEnv reads PORTAL_*_SELECTOR overrides with defaults that
// match the common portal layout.
func SelectorsFromEnv() Selectors {
	return Selectors{
		Row:        selectorEnv("PORTAL_ROW_SELECTOR", ".course-item"),
		Name:       selectorEnv("PORTAL_NAME_SELECTOR", ".course-name"),
		Code:       selectorEnv("PORTAL_CODE_SELECTOR", ".course-code"),
		Schedule:   selectorEnv("PORTAL_SCHEDULE_SELECTOR", ".course-time, .time, .schedule"),
		Enrollment: selectorEnv("PORTAL_ENROLLMENT_SELECTOR", ".enrollment, .enrolled, .students"),
	}
}

type Scraper struct {
	PortalURL string
	Username  string
	Password  string
	Selectors Selectors
	client    *http.Client
}

func New(portalURL, username, password string, selectors Selectors) (*Scraper, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}
	return &Scraper{
		PortalURL: strings.TrimRight(portalURL, "/"),
		Username:  username,
		Password:  password,
		Selectors: selectors,
		client:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// Login fetches the portal login page to pick up session cookies, then
// posts the credential form.
func (s *Scraper) Login() error {
	loginURL := s.PortalURL + "/login"

	req, err := http.NewRequest("GET", loginURL, nil)
	if err != nil {
		return fmt.Errorf("error creating login page request: %w", err)
	}
	s.addBrowserHeaders(req, loginURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching login page: %w", err)
	}
	resp.Body.Close()

	formData := url.Values{
		"username": {s.Username},
		"password": {s.Password},
	}
	postReq, err := http.NewRequest("POST", loginURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return fmt.Errorf("error creating login request: %w", err)
	}
	s.addBrowserHeaders(postReq, loginURL)
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	postResp, err := s.client.Do(postReq)
	if err != nil {
		return fmt.Errorf("error submitting login form: %w", err)
	}
	defer postResp.Body.Close()

	if postResp.StatusCode >= 400 {
		return fmt.Errorf("login failed with status %d", postResp.StatusCode)
	}
	log.Printf("Logged into portal at %s", s.PortalURL)
	return nil
}

// FetchCourses downloads the course listing page and extracts its rows.
func (s *Scraper) FetchCourses() ([]CourseRow, error) {
	coursesURL := s.PortalURL + "/courses"

	req, err := http.NewRequest("GET", coursesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating courses request: %w", err)
	}
	s.addBrowserHeaders(req, coursesURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching courses page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courses page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing courses page: %w", err)
	}
	return ExtractCourses(doc, s.Selectors), nil
}

// ExtractCourses pulls course rows out of a parsed listing page. Rows
// missing a name are skipped; a missing code falls back to "UNKNOWN" so
// schedule data is not lost over a cosmetic field.
func ExtractCourses(doc *goquery.Document, selectors Selectors) []CourseRow {
	var rows []CourseRow
	doc.Find(selectors.Row).Each(func(i int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(selectors.Name).First().Text())
		if name == "" {
			return
		}

		code, ok := sel.Attr("data-course-code")
		if !ok || strings.TrimSpace(code) == "" {
			code = sel.Find(selectors.Code).First().Text()
		}
		code = strings.TrimSpace(code)
		if code == "" {
			code = "UNKNOWN"
		}

		rows = append(rows, CourseRow{
			CourseName:    name,
			CourseCode:    code,
			ScheduleRaw:   strings.TrimSpace(sel.Find(selectors.Schedule).First().Text()),
			EnrollmentRaw: strings.TrimSpace(sel.Find(selectors.Enrollment).First().Text()),
		})
	})
	return rows
}

func (s *Scraper) addBrowserHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", referer)
}
