package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

func TestAddTemperatureCheck(t *testing.T) {
	store := &fakeTemperatureStore{}
	svc := NewTemperatureCheckService(store, time.UTC)
	svc.now = func() time.Time { return fixedNow }
	fzr := -5.0

	check, err := svc.Add(context.Background(), yardUser, models.AddTemperatureCheckRequest{TrailerID: " TRL100 ", FzrTemp: &fzr, Email: "ignored@example.com"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if check.ID == "" || check.TrailerID != "TRL100" || check.Timestamp != "2024-03-01T12:00:00Z" {
		t.Errorf("check = %+v", check)
	}
	if check.UserID != "u1" || check.Email != "driver@example.com" {
		t.Errorf("caller not recorded: %+v", check)
	}
	if len(store.checks) != 1 || store.checks[0].ClrTemp != nil {
		t.Errorf("stored = %+v", store.checks)
	}
}

func TestAddTemperatureCheckValidation(t *testing.T) {
	svc := NewTemperatureCheckService(&fakeTemperatureStore{}, time.UTC)
	clr := 35.0
	ctx := context.Background()

	if _, err := svc.Add(ctx, yardUser, models.AddTemperatureCheckRequest{ClrTemp: &clr}); !errors.Is(err, ErrValidation) {
		t.Errorf("no trailer: err = %v", err)
	}
	if _, err := svc.Add(ctx, yardUser, models.AddTemperatureCheckRequest{TrailerID: "TRL100"}); !errors.Is(err, ErrValidation) {
		t.Errorf("no readings: err = %v", err)
	}
}
