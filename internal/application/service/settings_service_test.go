package service

import (
	"context"
	"testing"

	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
)

type stubSettingsRepo struct {
	settings *entity.BusinessSettings
	creates  int
}

func (r *stubSettingsRepo) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Create(ctx context.Context, settings *entity.BusinessSettings) error {
	r.creates++
	r.settings = settings
	return nil
}

func (r *stubSettingsRepo) Update(ctx context.Context, settings *entity.BusinessSettings) error {
	r.settings = settings
	return nil
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo)

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}

	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
	if settings.BusinessName != "Print Arts" {
		t.Errorf("business name = %q, want Print Arts", settings.BusinessName)
	}
	if settings.Currency != "INR" {
		t.Errorf("currency = %q, want INR", settings.Currency)
	}
	if settings.DefaultTaxClass != enum.TaxClassNone {
		t.Errorf("default tax class = %v, want none", settings.DefaultTaxClass)
	}
}

func TestUpdateSettingsSwapsProfileSnapshot(t *testing.T) {
	repo := &stubSettingsRepo{settings: &entity.BusinessSettings{
		BusinessName: "Print Arts",
		Currency:     "INR",
	}}
	svc := NewSettingsService(repo)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := svc.Profile()

	name := "Asha Digital Press"
	footer := "Thank you, visit again"
	if _, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		BusinessName:  &name,
		ReceiptFooter: &footer,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	after := svc.Profile()
	if after.BusinessName != name {
		t.Errorf("profile business name = %q, want %q", after.BusinessName, name)
	}
	if after.Footer != footer {
		t.Errorf("profile footer = %q, want %q", after.Footer, footer)
	}
	// The pre-update snapshot must be untouched
	if before.BusinessName != "Print Arts" {
		t.Errorf("earlier snapshot mutated: %q", before.BusinessName)
	}
}
