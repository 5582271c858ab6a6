package tracker

import (
	"reflect"
	"testing"

	"github.com/workplan/workplan/pkg/model"
)

func TestRollup(t *testing.T) {
	epics := []model.Epic{
		{Key: "WP-1", Department: "platform", Team: "core", Status: model.EpicOpen, EstimatedHours: 40},
		{Key: "WP-2", Department: "platform", Team: "core", Status: model.EpicInProgress, EstimatedHours: 16},
		{Key: "WP-3", Department: "platform", Team: "infra", Status: model.EpicOpen, EstimatedHours: 24},
		{Key: "WP-4", Department: "design", Team: "ux", Status: model.EpicOpen, EstimatedHours: 8},
		// Done epics are excluded from outstanding work.
		{Key: "WP-5", Department: "platform", Team: "core", Status: model.EpicDone, EstimatedHours: 100},
	}

	got := Rollup(epics)
	want := []TeamEstimate{
		{Department: "design", Team: "ux", OpenEpics: 1, EstimatedHours: 8},
		{Department: "platform", Team: "core", OpenEpics: 2, EstimatedHours: 56},
		{Department: "platform", Team: "infra", OpenEpics: 1, EstimatedHours: 24},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rollup() = %+v, want %+v", got, want)
	}
}

func TestRollupEmpty(t *testing.T) {
	if got := Rollup(nil); len(got) != 0 {
		t.Errorf("Rollup(nil) = %+v, want empty", got)
	}
}
