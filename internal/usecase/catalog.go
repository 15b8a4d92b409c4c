package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

var defaultCurrency = model.Currency{Symbol: "KES", Rate: 1}

var packages = []model.Package{
	{
		Title:         "Standard CV Writing",
		Price:         1500,
		Currency:      defaultCurrency,
		OrderRevision: 1,
		Description:   "A professional CV writing service designed to showcase your skills and experience effectively",
		Features: []string{
			"Custom CV by a professional writer",
			"One revision round",
			"ATS optimization",
			"Download in PDF/DOCX",
			"Professional formatting",
		},
	},
	{
		Title:         "Premium CV Writing",
		Price:         3000,
		Currency:      defaultCurrency,
		OrderRevision: 3,
		Description:   "A comprehensive CV and cover letter writing service tailored for career advancement.",
		Features: []string{
			"Bespoke CV by a senior writer",
			"Three revision rounds",
			"ATS optimization",
			"Download in PDF/DOCX",
			"Professional formatting",
			"Custom cover letter",
			"Priority support",
			"LinkedIn profile optimization",
		},
	},
	{
		Title:         "Executive CV Writing",
		Price:         5000,
		Currency:      defaultCurrency,
		OrderRevision: 10,
		Description:   "An elite CV writing service for executives, highlighting leadership and strategic vision.",
		Features: []string{
			"Tailored CV by an executive writer",
			"Unlimited revisions",
			"ATS optimization",
			"Download in PDF/DOCX",
			"Professional formatting",
			"Custom cover letter",
			"Priority support",
			"LinkedIn profile optimization",
			"Executive biography",
		},
	},
}

const templateCDN = "https://cdn-images.zety.com/templates/zety/"

var templates = []model.Template{
	{Name: "Cascade", URL: templateCDN + "cascade-3-duo-blue-navy-21@1x.png", Description: "This professional resume template is the most popular one. It shows your info clearly and neatly."},
	{Name: "Concept", URL: templateCDN + "concept-10-classic-blue-navy-312@1x.png", Description: "A modern resume template that offers a sleek design with an eye-catching timeline."},
	{Name: "Crisp", URL: templateCDN + "crisp-15-classic-silver-dark-388@1x.png", Description: "A unique resume template designed to showcase your creativity yet maintain the emphasis on your experience."},
	{Name: "Cubic", URL: templateCDN + "cubic-20-trio-silver-dark-19@1x.png", Description: "A perfect resume template for anyone hunting for a job, regardless of the industry or experience level."},
	{Name: "Diamond", URL: templateCDN + "diamond-21-duo-silver-dark-999@1x.png", Description: "If you want to highlight your extensive work history, this single-column resume template is an ideal choice."},
	{Name: "Enfold", URL: templateCDN + "enfold-18-duo-blue-navy-1165@1x.png", Description: "The best resume template for those seeking a two-column resume. It clearly separates your experience from other resume sections."},
	{Name: "Iconic", URL: templateCDN + "iconic-9-classic-silver-dark-276@1x.png", Description: "A basic yet effective resume template that uses unique icons to highlight each section."},
	{Name: "Influx", URL: templateCDN + "influx-8-duo-silver-dark-971@1x.png", Description: "An elegant resume template equally suited for executives and entry-level applicants."},
	{Name: "Initials", URL: templateCDN + "initials-5-classic-blue-navy-228@1x.png", Description: "This vibrant resume template is a popular pick among creatives who need resumes with an eye-catching design."},
	{Name: "Minimo", URL: templateCDN + "minimo-4-classic-blue-navy-200@1x.png", Description: "A minimalist resume template for those who want to highlight their experiences above all."},
	{Name: "Modern", URL: templateCDN + "modern-57-classic-blue-navy-3568@1x.png", Description: "This modern resume template is a perfect fit for cutting-edge industries such as IT, Marketing, or Entertainment."},
	{Name: "Muse", URL: templateCDN + "muse-2-classic-blue-navy-172@1x.png", Description: "A clean resume template that uses accent colors to underline important sections."},
	{Name: "Nanica", URL: templateCDN + "nanica-16-classic-silver-dark-416@1x.png", Description: "This resume template is a perfect fit for seasoned professionals in traditional industries."},
	{Name: "Newcast", URL: templateCDN + "newcast-14-classic-blue-navy-368@1x.png", Description: "A simple resume template with a modern twist to ensure your application gets noticed."},
	{Name: "Primo", URL: templateCDN + "primo-6-classic-silver-dark-248@1x.png", Description: "A basic resume template that blends a two-column structure with a timeline."},
	{Name: "Simple", URL: templateCDN + "simple-1-classic-blue-navy-144@1x.png", Description: "This resume template organizes the content of your resume in a clean and easy-to-read way."},
	{Name: "Valera", URL: templateCDN + "valera-11-classic-silver-dark-332@1x.png", Description: "We recommend sharing both an email address and a phone number for seamless communication."},
	{Name: "Vibes", URL: templateCDN + "vibes-19-classic-blue-navy-452@1x.png", Description: "A sleek resume template with a crisp two-column layout designed for the modern business professionals."},
}

// CatalogUseCase serves the fixed package and template catalogs.
type CatalogUseCase struct {
	packages  []model.Package
	templates []model.Template
}

// NewCatalogUseCase constructs CatalogUseCase with the built-in catalog.
func NewCatalogUseCase() *CatalogUseCase {
	return &CatalogUseCase{packages: packages, templates: templates}
}

// Packages lists pricing packages.
func (c *CatalogUseCase) Packages() []model.Package {
	out := make([]model.Package, len(c.packages))
	for i, p := range c.packages {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// Templates lists visual templates.
func (c *CatalogUseCase) Templates() []model.Template {
	return append([]model.Template(nil), c.templates...)
}

// Package finds a package by title, case-insensitively.
func (c *CatalogUseCase) Package(title string) (model.Package, error) {
	title = strings.TrimSpace(title)
	for _, p := range c.packages {
		if strings.EqualFold(p.Title, title) {
			p.Features = append([]string(nil), p.Features...)
			return p, nil
		}
	}
	return model.Package{}, domainErrors.ErrUnknownPackage
}

// Template finds a template by name, case-insensitively.
func (c *CatalogUseCase) Template(name string) (model.Template, error) {
	name = strings.TrimSpace(name)
	for _, t := range c.templates {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return model.Template{}, domainErrors.ErrUnknownTemplate
}
