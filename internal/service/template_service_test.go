package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specanalyzer/internal/model"
)

type fakeTemplateRepo struct {
	templates map[string]*model.AnalysisTemplate
	usage     map[string]int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: make(map[string]*model.AnalysisTemplate),
		usage:     make(map[string]int),
	}
}

func (f *fakeTemplateRepo) Seed(_ context.Context, templates []model.AnalysisTemplate) error {
	for i := range templates {
		t := templates[i]
		if _, exists := f.templates[t.TemplateName]; !exists {
			f.templates[t.TemplateName] = &t
		}
	}
	return nil
}

func (f *fakeTemplateRepo) List(_ context.Context) ([]*model.AnalysisTemplate, error) {
	out := make([]*model.AnalysisTemplate, 0, len(f.templates))
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateRepo) GetByName(_ context.Context, name string) (*model.AnalysisTemplate, error) {
	return f.templates[name], nil
}

func (f *fakeTemplateRepo) IncrementUsage(_ context.Context, name string) error {
	f.usage[name]++
	return nil
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	first := len(repo.templates)
	assert.Greater(t, first, 0)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	assert.Len(t, repo.templates, first)
}

func TestGetTemplateCountsUsage(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	require.NoError(t, svc.SeedDefaults(context.Background()))

	tpl, err := svc.Get(context.Background(), "psu_led_compatibility")
	require.NoError(t, err)
	require.NotNil(t, tpl)
	assert.Equal(t, "psu_led_compatibility", tpl.TemplateName)
	assert.Equal(t, 1, repo.usage["psu_led_compatibility"])
}

func TestGetUnknownTemplate(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	tpl, err := svc.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, tpl)
}

func TestDefaultTemplateDocumentsAreAnalyzable(t *testing.T) {
	for _, tpl := range defaultTemplates() {
		assert.NotEmpty(t, tpl.TemplateName)
		assert.NotEmpty(t, tpl.QueryTemplate)
		assert.NotEmpty(t, tpl.ExampleDocument)
	}
}
