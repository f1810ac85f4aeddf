package appointments

import (
	"testing"
	"time"

	"vetsched/backend/internal/domain"
)

var validateNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	out := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidateCreate_HappyPathNormalizes(t *testing.T) {
	in := validCreateInput()
	in.PetName = "  Bella  "
	in.OwnerName = " Sam Rivera "
	in.Notes = "  likes treats  "

	draft, err := validateCreate(in, validateNow)
	if err != nil {
		t.Fatalf("validateCreate error: %v", err)
	}
	if draft.PetName != "Bella" || draft.OwnerName != "Sam Rivera" || draft.Notes != "likes treats" {
		t.Fatalf("fields not trimmed: %+v", draft)
	}
	if draft.Status != domain.AppointmentStatusPending {
		t.Fatalf("status = %q, want pending default", draft.Status)
	}
	if draft.StartAt.Location() != time.UTC {
		t.Fatalf("start_at not normalized to UTC: %v", draft.StartAt)
	}
	if want := draft.StartAt.Add(30 * time.Minute); !draft.EndAt.Equal(want) {
		t.Fatalf("end_at = %v, want derived %v", draft.EndAt, want)
	}
}

func TestValidateCreate_CollectsAllFailures(t *testing.T) {
	_, err := validateCreate(CreateInput{
		PetName:   " ",
		OwnerName: "",
		Type:      "boarding",
		Duration:  5,
		StartAt:   "not-a-time",
	}, validateNow)

	fields := fieldMessages(t, err)
	for _, want := range []string{"petName", "ownerName", "type", "duration", "startAt"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("missing field error %q in %v", want, fields)
		}
	}
	if fields["petName"] != "Pet name is required" {
		t.Fatalf("petName message = %q", fields["petName"])
	}
	if fields["type"] != "Please select type" {
		t.Fatalf("type message = %q", fields["type"])
	}
}

func TestValidateCreate_DurationBoundsInclusive(t *testing.T) {
	for _, d := range []int{15, 480} {
		in := validCreateInput()
		in.Duration = d
		if _, err := validateCreate(in, validateNow); err != nil {
			t.Fatalf("duration %d should be accepted: %v", d, err)
		}
	}
	for d, wantMsg := range map[int]string{
		14:  "Duration must be at least 15 minutes",
		481: "Duration cannot exceed 8 hours",
		0:   "Duration must be at least 15 minutes",
	} {
		in := validCreateInput()
		in.Duration = d
		fields := fieldMessages(t, errOf(validateCreate(in, validateNow)))
		if fields["duration"] != wantMsg {
			t.Fatalf("duration %d message = %q, want %q", d, fields["duration"], wantMsg)
		}
	}
}

func TestValidateCreate_RejectsPastStart(t *testing.T) {
	in := validCreateInput()
	in.StartAt = validateNow.Add(-time.Second).Format(time.RFC3339)

	fields := fieldMessages(t, errOf(validateCreate(in, validateNow)))
	if fields["startAt"] != "Cannot schedule appointments in the past. Please select a future date and time." {
		t.Fatalf("startAt message = %q", fields["startAt"])
	}
}

func TestValidateCreate_RejectsMoreThanOneYearOut(t *testing.T) {
	in := validCreateInput()
	in.StartAt = validateNow.Add(366 * 24 * time.Hour).Format(time.RFC3339)

	fields := fieldMessages(t, errOf(validateCreate(in, validateNow)))
	if fields["startAt"] != "Cannot schedule appointments more than 1 year in advance." {
		t.Fatalf("startAt message = %q", fields["startAt"])
	}

	// Exactly one year out is still allowed.
	in.StartAt = validateNow.AddDate(1, 0, 0).Format(time.RFC3339)
	if _, err := validateCreate(in, validateNow); err != nil {
		t.Fatalf("one year out should be accepted: %v", err)
	}
}

func TestValidateCreate_ResourceReferences(t *testing.T) {
	in := validCreateInput()
	in.VetID = ""
	in.RoomID = ""
	if _, err := validateCreate(in, validateNow); err != nil {
		t.Fatalf("unassigned resources should be accepted: %v", err)
	}

	in = validCreateInput()
	in.VetID = "vet-7"
	fields := fieldMessages(t, errOf(validateCreate(in, validateNow)))
	if fields["vetId"] != "Invalid vet reference" {
		t.Fatalf("vetId message = %q", fields["vetId"])
	}
}

func TestValidateCreate_RejectsUnknownStatus(t *testing.T) {
	in := validCreateInput()
	in.Status = "snoozed"
	fields := fieldMessages(t, errOf(validateCreate(in, validateNow)))
	if fields["status"] != "Invalid status" {
		t.Fatalf("status message = %q", fields["status"])
	}
}

func TestValidateUpdate_MergesOverExisting(t *testing.T) {
	existing := domain.Appointment{
		PetName:   "Bella",
		OwnerName: "Sam Rivera",
		Type:      domain.AppointmentTypeCheckup,
		Status:    domain.AppointmentStatusPending,
		Duration:  30,
		StartAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		VetID:     testVetID.String(),
	}

	newDuration := 60
	newType := "dental"
	draft, err := validateUpdate(existing, UpdateInput{
		Duration: &newDuration,
		Type:     &newType,
	})
	if err != nil {
		t.Fatalf("validateUpdate error: %v", err)
	}
	if draft.PetName != "Bella" || draft.VetID != testVetID.String() {
		t.Fatalf("untouched fields changed: %+v", draft)
	}
	if draft.Type != domain.AppointmentTypeDental {
		t.Fatalf("type = %q, want dental", draft.Type)
	}
	if want := draft.StartAt.Add(time.Hour); !draft.EndAt.Equal(want) {
		t.Fatalf("end_at = %v, want re-derived %v", draft.EndAt, want)
	}
}

func TestValidateUpdate_AllowsPastStart(t *testing.T) {
	existing := domain.Appointment{
		PetName:   "Bella",
		OwnerName: "Sam Rivera",
		Type:      domain.AppointmentTypeCheckup,
		Status:    domain.AppointmentStatusPending,
		Duration:  30,
		StartAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	past := "2020-01-01T09:00:00Z"
	if _, err := validateUpdate(existing, UpdateInput{StartAt: &past}); err != nil {
		t.Fatalf("past start on update should be accepted: %v", err)
	}
}

func TestValidateUpdate_CanUnassignResources(t *testing.T) {
	existing := domain.Appointment{
		PetName:   "Bella",
		OwnerName: "Sam Rivera",
		Type:      domain.AppointmentTypeCheckup,
		Status:    domain.AppointmentStatusPending,
		Duration:  30,
		StartAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		VetID:     testVetID.String(),
		RoomID:    testRoomID.String(),
	}

	empty := ""
	draft, err := validateUpdate(existing, UpdateInput{VetID: &empty, RoomID: &empty})
	if err != nil {
		t.Fatalf("validateUpdate error: %v", err)
	}
	if draft.VetID != "" || draft.RoomID != "" {
		t.Fatalf("resources not cleared: %+v", draft)
	}
}

func TestValidateUpdate_RejectsClearedRequiredFields(t *testing.T) {
	existing := domain.Appointment{
		PetName:   "Bella",
		OwnerName: "Sam Rivera",
		Type:      domain.AppointmentTypeCheckup,
		Status:    domain.AppointmentStatusPending,
		Duration:  30,
		StartAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	blank := "   "
	fields := fieldMessages(t, errOf(validateUpdate(existing, UpdateInput{OwnerName: &blank})))
	if fields["ownerName"] != "Owner name is required" {
		t.Fatalf("ownerName message = %q", fields["ownerName"])
	}
}

// errOf discards the draft so a validate call can be forwarded straight into
// fieldMessages, which fails the test if the error is absent or mistyped.
func errOf(_ domain.Appointment, err error) error {
	return err
}
