package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// SlotGranularityMinutes is the fixed step between bookable time points.
// A window narrower than this yields no slots.
const SlotGranularityMinutes = 30

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// User-facing booking failure messages
const (
	msgSlotTaken      = "This time slot is no longer available. Please select another time."
	msgOutsideWindows = "The selected time is outside the doctor's available hours."
)

// BookingRequest is a student's appointment booking request
type BookingRequest struct {
	StudentID string `json:"student_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Symptoms  string `json:"symptoms"`
}

// SchedulingService implements slot allocation, booking validation and
// availability-change propagation.
type SchedulingService struct {
	appointments  repositories.AppointmentRepository
	availability  repositories.AvailabilityRepository
	staff         repositories.StaffRepository
	notifications *NotificationService
	eventBus      providers.EventBus
}

// NewSchedulingService creates a new scheduling service. The event bus is
// optional; when nil, domain events are not published.
func NewSchedulingService(
	appointments repositories.AppointmentRepository,
	availability repositories.AvailabilityRepository,
	staff repositories.StaffRepository,
	notifications *NotificationService,
	eventBus providers.EventBus,
) *SchedulingService {
	return &SchedulingService{
		appointments:  appointments,
		availability:  availability,
		staff:         staff,
		notifications: notifications,
		eventBus:      eventBus,
	}
}

// ComputeAvailableSlots returns the bookable HH:MM time points for a doctor
// on a date: every 30-minute step inside an Available window, strictly
// before the window's end, minus times held by non-cancelled appointments.
// The result is sorted ascending. Overlapping windows may contribute the
// same time point more than once; duplicates are kept.
func (s *SchedulingService) ComputeAvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctor id is required")
	}
	if date == "" {
		return nil, apperrors.NewValidationError("date is required")
	}

	windows, err := s.availability.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.ListActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{}, len(booked))
	for _, appt := range booked {
		occupied[appt.Time] = struct{}{}
	}

	slots := []string{}
	for _, window := range windows {
		if window.Status != entities.AvailabilityStatusAvailable {
			continue
		}

		start, err := time.Parse(clockLayout, window.StartTime)
		if err != nil {
			log.Warn().Str("window_id", window.ID).Str("start_time", window.StartTime).
				Msg("skipping window with malformed start time")
			continue
		}
		end, err := time.Parse(clockLayout, window.EndTime)
		if err != nil {
			log.Warn().Str("window_id", window.ID).Str("end_time", window.EndTime).
				Msg("skipping window with malformed end time")
			continue
		}

		for cur := start; cur.Before(end); cur = cur.Add(SlotGranularityMinutes * time.Minute) {
			point := cur.Format(clockLayout)
			if _, taken := occupied[point]; taken {
				continue
			}
			slots = append(slots, point)
		}
	}

	// HH:MM strings sort chronologically byte-wise.
	sort.Strings(slots)
	return slots, nil
}

// BookAppointment validates a booking against double-booking and the
// doctor's Available windows, then commits it with status Pending.
func (s *SchedulingService) BookAppointment(ctx context.Context, req BookingRequest) (*entities.Appointment, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	// Fast conflict check. The repository re-checks inside the insert
	// transaction, so a concurrent booking still cannot slip through.
	taken, err := s.appointments.CountActiveAt(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperrors.NewConflictError(msgSlotTaken)
	}

	windows, err := s.availability.ListByDoctorDate(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	inWindow := false
	for _, window := range windows {
		if window.Status != entities.AvailabilityStatusAvailable || !window.Contains(req.Time) {
			continue
		}
		// The time must also be a slot the window actually generates:
		// a whole number of slot steps after the window start.
		if !onSlotBoundary(window.StartTime, req.Time) {
			continue
		}
		inWindow = true
		break
	}
	if !inWindow {
		return nil, apperrors.NewUnavailableError(msgOutsideWindows)
	}

	now := time.Now().UTC()
	appointment := &entities.Appointment{
		ID:        uuid.New().String(),
		StudentID: req.StudentID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
		Status:    entities.AppointmentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.appointments.CreateIfSlotFree(ctx, appointment); err != nil {
		return nil, err
	}

	s.publish(ctx, providers.EventChannelScheduling, &entities.ClinicEvent{
		ID:            uuid.New().String(),
		Type:          entities.EventAppointmentCreated,
		AppointmentID: appointment.ID,
		StudentID:     appointment.StudentID,
		DoctorID:      appointment.DoctorID,
		Date:          appointment.Date,
		Time:          appointment.Time,
		OccurredAt:    now,
	})

	s.notify(ctx, entities.ForUser(req.StudentID), "Appointment Submitted",
		fmt.Sprintf("Your appointment for %s at %s is pending confirmation.", req.Date, req.Time))
	s.notify(ctx, entities.ForUser(req.DoctorID), "New Appointment Booked",
		fmt.Sprintf("A new appointment was booked by student %s for %s at %s.", req.StudentID, req.Date, req.Time))

	return appointment, nil
}

// CancelAppointment moves an appointment to Cancelled, freeing its slot.
// Cancelled and Completed appointments are immutable.
func (s *SchedulingService) CancelAppointment(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("appointment id is required")
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Status == entities.AppointmentStatusCancelled ||
		appointment.Status == entities.AppointmentStatusCompleted {
		return apperrors.NewConflictError(fmt.Sprintf("appointment is already %s", appointment.Status))
	}

	if err := s.appointments.UpdateStatus(ctx, id, entities.AppointmentStatusCancelled); err != nil {
		return err
	}

	s.notify(ctx, entities.ForUser(appointment.StudentID), "Appointment Cancelled",
		fmt.Sprintf("Your appointment for %s has been cancelled.", appointment.Date))
	return nil
}

// UpdateAppointmentStatus is the staff action that confirms or completes a
// pending appointment.
func (s *SchedulingService) UpdateAppointmentStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	switch status {
	case entities.AppointmentStatusConfirmed, entities.AppointmentStatusCompleted, entities.AppointmentStatusCancelled:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("cannot move an appointment to status %q", status))
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Status == entities.AppointmentStatusCancelled ||
		appointment.Status == entities.AppointmentStatusCompleted {
		return apperrors.NewConflictError(fmt.Sprintf("appointment is already %s", appointment.Status))
	}

	return s.appointments.UpdateStatus(ctx, id, status)
}

// GetAppointment retrieves a single appointment
func (s *SchedulingService) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// ListAppointments retrieves appointments matching the filter
func (s *SchedulingService) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return s.appointments.List(ctx, filter)
}

// ListStudentAppointments retrieves a student's appointments
func (s *SchedulingService) ListStudentAppointments(ctx context.Context, studentID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.appointments.ListByStudent(ctx, studentID, filter)
}

// OnAvailabilityChanged reacts to a window leaving the Available status
// (oldWindow was Available, newWindow is nil for a delete or carries the
// new state for an update). Confirmed appointments inside the former
// [start, end) interval each produce a reschedule-required event; the
// appointments themselves are left untouched so staff decide remediation.
// Pending appointments are not scanned.
func (s *SchedulingService) OnAvailabilityChanged(ctx context.Context, oldWindow, newWindow *entities.AvailabilityWindow) ([]*entities.ClinicEvent, error) {
	if oldWindow == nil || oldWindow.Status != entities.AvailabilityStatusAvailable {
		return nil, nil
	}
	if newWindow != nil && newWindow.Status == entities.AvailabilityStatusAvailable {
		return nil, nil
	}

	booked, err := s.appointments.ListActiveByDoctorDate(ctx, oldWindow.DoctorID, oldWindow.Date)
	if err != nil {
		return nil, err
	}

	doctorName := oldWindow.DoctorID
	if s.staff != nil {
		if doctor, err := s.staff.GetByID(ctx, oldWindow.DoctorID); err == nil {
			doctorName = doctor.Name
		}
	}

	now := time.Now().UTC()
	var events []*entities.ClinicEvent
	for _, appointment := range booked {
		if appointment.Status != entities.AppointmentStatusConfirmed {
			continue
		}
		if !oldWindow.Contains(appointment.Time) {
			continue
		}

		event := &entities.ClinicEvent{
			ID:            uuid.New().String(),
			Type:          entities.EventRescheduleRequired,
			AppointmentID: appointment.ID,
			StudentID:     appointment.StudentID,
			DoctorID:      appointment.DoctorID,
			Date:          appointment.Date,
			Time:          appointment.Time,
			Detail: fmt.Sprintf("Dr. %s's availability has changed. Please reschedule your appointment for %s at %s.",
				doctorName, appointment.Date, appointment.Time),
			OccurredAt: now,
		}
		events = append(events, event)
		s.publish(ctx, providers.EventChannelScheduling, event)
	}

	return events, nil
}

// CreateAvailability declares a new availability window for a doctor
func (s *SchedulingService) CreateAvailability(ctx context.Context, window *entities.AvailabilityWindow) error {
	if err := validateWindow(window); err != nil {
		return err
	}

	now := time.Now().UTC()
	window.ID = uuid.New().String()
	window.CreatedAt = now
	window.UpdatedAt = now
	return s.availability.Create(ctx, window)
}

// UpdateAvailability edits a window and propagates the change to any
// confirmed appointments orphaned by it.
func (s *SchedulingService) UpdateAvailability(ctx context.Context, window *entities.AvailabilityWindow) ([]*entities.ClinicEvent, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	old, err := s.availability.GetByID(ctx, window.ID)
	if err != nil {
		return nil, err
	}

	window.DoctorID = old.DoctorID
	window.CreatedAt = old.CreatedAt
	window.UpdatedAt = time.Now().UTC()
	if err := s.availability.Update(ctx, window); err != nil {
		return nil, err
	}

	return s.OnAvailabilityChanged(ctx, old, window)
}

// DeleteAvailability removes a window and propagates the change
func (s *SchedulingService) DeleteAvailability(ctx context.Context, id string) ([]*entities.ClinicEvent, error) {
	old, err := s.availability.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.availability.Delete(ctx, id); err != nil {
		return nil, err
	}

	return s.OnAvailabilityChanged(ctx, old, nil)
}

// ListDoctorAvailability retrieves a doctor's declared windows
func (s *SchedulingService) ListDoctorAvailability(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error) {
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctor id is required")
	}
	return s.availability.ListByDoctor(ctx, doctorID)
}

func (s *SchedulingService) publish(ctx context.Context, channel string, event *entities.ClinicEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).Str("event_type", string(event.Type)).Msg("failed to publish clinic event")
	}
}

func (s *SchedulingService) notify(ctx context.Context, recipient entities.Recipient, title, message string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, recipient, title, message); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to record notification")
	}
}

// onSlotBoundary reports whether tm lies on a slot point generated from
// the window start, i.e. a whole number of slot steps after it.
func onSlotBoundary(startTime, tm string) bool {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return false
	}
	at, err := time.Parse(clockLayout, tm)
	if err != nil {
		return false
	}
	return int(at.Sub(start).Minutes())%SlotGranularityMinutes == 0
}

func validateBookingRequest(req BookingRequest) error {
	if req.StudentID == "" {
		return apperrors.NewValidationError("student id is required")
	}
	if req.DoctorID == "" {
		return apperrors.NewValidationError("doctor id is required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse(clockLayout, req.Time); err != nil {
		return apperrors.NewValidationError("time must be formatted HH:MM")
	}
	return nil
}

func validateWindow(window *entities.AvailabilityWindow) error {
	if window.DoctorID == "" && window.ID == "" {
		return apperrors.NewValidationError("doctor id is required")
	}
	if _, err := time.Parse(dateLayout, window.Date); err != nil {
		return apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse(clockLayout, window.StartTime); err != nil {
		return apperrors.NewValidationError("start time must be formatted HH:MM")
	}
	if _, err := time.Parse(clockLayout, window.EndTime); err != nil {
		return apperrors.NewValidationError("end time must be formatted HH:MM")
	}
	if window.StartTime >= window.EndTime {
		return apperrors.NewValidationError("start time must be before end time")
	}
	switch window.Status {
	case entities.AvailabilityStatusAvailable, entities.AvailabilityStatusUnavailable, entities.AvailabilityStatusBusy:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown availability status %q", window.Status))
	}
	return nil
}
