package service

import (
	"context"
	"log"

	"specanalyzer/internal/model"
	"specanalyzer/internal/repository"
)

// TemplateService serves the catalog of pre-defined compatibility
// checks
type TemplateService struct {
	templates repository.TemplateRepo
}

// NewTemplateService creates a new template service
func NewTemplateService(templates repository.TemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

// SeedDefaults inserts the built-in templates that are not already
// stored
func (s *TemplateService) SeedDefaults(ctx context.Context) error {
	return s.templates.Seed(ctx, defaultTemplates())
}

// List returns all stored templates
func (s *TemplateService) List(ctx context.Context) ([]*model.AnalysisTemplate, error) {
	return s.templates.List(ctx)
}

// Get returns one template by name and counts the lookup as a usage
func (s *TemplateService) Get(ctx context.Context, templateName string) (*model.AnalysisTemplate, error) {
	t, err := s.templates.GetByName(ctx, templateName)
	if err != nil || t == nil {
		return t, err
	}
	if err := s.templates.IncrementUsage(ctx, templateName); err != nil {
		log.Printf("failed to count template usage for %s: %v", templateName, err)
	}
	return t, nil
}

func defaultTemplates() []model.AnalysisTemplate {
	return []model.AnalysisTemplate{
		{
			TemplateName:  "psu_led_compatibility",
			DisplayName:   "PSU and LED Compatibility Check",
			Description:   "Check whether a power supply can safely power LED components",
			QueryTemplate: "Can the power supply safely power the LED strip, considering voltage and current?",
			ExampleDocument: `Power Supply Unit Model: PSU-12V-5A
Output Voltage: 12V DC
Max Output Current: 5 Amps
Input: 100-240V AC

LED Strip Model: RGB-5M
Required Input Voltage: 12V DC
Current Draw: 4 Amps
Power Consumption: 48W`,
		},
		{
			TemplateName:  "general_component_analysis",
			DisplayName:   "General Component Analysis",
			Description:   "Extract all technical parameters from any component documentation",
			QueryTemplate: "Extract all technical parameters and specifications from the provided documentation",
			ExampleDocument: `Component Datasheet
Operating Voltage: 5V DC
Current Consumption: 100mA
Operating Temperature: -20°C to 85°C
Certifications: CE, RoHS`,
		},
	}
}
