package usecase

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

var (
	linkedInProfileRe = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/(in|pub)/[\w-]+/?$`)
	linkedInAnyRe     = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/.*$`)
	githubRe          = regexp.MustCompile(`^https?://(www\.)?github\.com/.*$`)
)

const maxSkillRating = 5

// ValidateLinkedInURL reports whether s is a LinkedIn profile URL.
func ValidateLinkedInURL(s string) bool {
	return linkedInProfileRe.MatchString(strings.TrimSpace(s))
}

// ValidateExtraServices checks the cover letter and LinkedIn add-ons of an order.
// Content of disabled services is not inspected.
func ValidateExtraServices(o *model.Order) error {
	verr := domainErrors.NewValidationError()
	if o.RequireCoverLetter && strings.TrimSpace(o.CoverLetterDetails) == "" {
		verr.Add("coverLetterDetails", "Cover letter details are required")
	}
	if o.RequireLinkedInOptimization {
		switch {
		case strings.TrimSpace(o.LinkedInURL) == "":
			verr.Add("linkedInUrl", "LinkedIn URL is required")
		case !ValidateLinkedInURL(o.LinkedInURL):
			verr.Add("linkedInUrl", "Invalid LinkedIn URL")
		}
	}
	return verr.OrNil()
}

// maxPasswordBytes matches the bcrypt input limit.
const maxPasswordBytes = 72

// ValidateRegistration checks sign-up input.
func ValidateRegistration(r model.Registration) error {
	verr := domainErrors.NewValidationError()
	if !validEmail(r.Email) {
		verr.Add("email", "Email is invalid")
	}
	switch {
	case len(r.Password) < 6:
		verr.Add("password", "Password should be at least 6 characters")
	case len(r.Password) > maxPasswordBytes:
		verr.Add("password", "Password should be at most 72 characters")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		verr.Add("firstName", "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		verr.Add("lastName", "Last name is required")
	}
	return verr.OrNil()
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ValidateWorkHistory checks a work history entry.
func ValidateWorkHistory(w *model.WorkHistory) error {
	verr := domainErrors.NewValidationError()
	if strings.TrimSpace(w.Employer) == "" {
		verr.Add("employer", "Employer is required")
	}
	if strings.TrimSpace(w.JobTitle) == "" {
		verr.Add("jobTitle", "Job title is required")
	}
	return verr.OrNil()
}

// ValidateEducation checks an education entry.
func ValidateEducation(e *model.Education) error {
	verr := domainErrors.NewValidationError()
	if strings.TrimSpace(e.School) == "" {
		verr.Add("school", "School is required")
	}
	return verr.OrNil()
}

// ValidateSkill checks a skill entry.
func ValidateSkill(s *model.Skill) error {
	verr := domainErrors.NewValidationError()
	if strings.TrimSpace(s.Skill) == "" {
		verr.Add("skill", "Skill is required")
	}
	if s.Rating < 0 || s.Rating > maxSkillRating {
		verr.Add("rating", "Rating must be between 0 and 5")
	}
	return verr.OrNil()
}

// ValidateSummary checks profile links of a professional summary. Empty links are allowed.
func ValidateSummary(s *model.ProfessionalSummary) error {
	verr := domainErrors.NewValidationError()
	if s.LinkedIn != "" && !linkedInAnyRe.MatchString(s.LinkedIn) {
		verr.Add("linkedIn", "LinkedIn URL must be a valid LinkedIn profile")
	}
	if s.GitHub != "" && !githubRe.MatchString(s.GitHub) {
		verr.Add("github", "GitHub URL must be a valid GitHub profile")
	}
	if s.OtherWebsite != "" && !validOtherWebsite(s.OtherWebsite) {
		verr.Add("otherWebsite", "Website URL must be a valid URL not on GitHub or LinkedIn")
	}
	return verr.OrNil()
}

func validOtherWebsite(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	lower := strings.ToLower(raw)
	return !strings.Contains(lower, "github.com") && !strings.Contains(lower, "linkedin.com")
}
