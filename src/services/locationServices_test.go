package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

type fakeLocationStore struct {
	locations []models.LocationModel
	err       error
}

func (s fakeLocationStore) ListLocations(ctx context.Context) ([]models.LocationModel, error) {
	return s.locations, s.err
}

func TestLocationNames(t *testing.T) {
	fallback := []string{"FRZ", "CLR"}
	cases := []struct {
		name  string
		store fakeLocationStore
		want  []string
	}{
		{"stored active names sorted", fakeLocationStore{locations: []models.LocationModel{
			{Name: "YARD", Active: true}, {Name: "CLR", Active: true}, {Name: "OLD", Active: false}, {Name: "", Active: true},
		}}, []string{"CLR", "YARD"}},
		{"empty store", fakeLocationStore{}, fallback},
		{"store error", fakeLocationStore{err: errors.New("timeout")}, fallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewLocationService(tc.store, fallback).Names(context.Background())
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Names() = %v, want %v", got, tc.want)
			}
		})
	}
}
