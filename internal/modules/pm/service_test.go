package pm

import (
	"context"
	"testing"
	"time"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPMRepository struct {
	mock.Mock
}

func (m *MockPMRepository) Create(ctx context.Context, s *domain.PMSchedule) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 401
	}
	return args.Error(0)
}

func (m *MockPMRepository) Save(ctx context.Context, s *domain.PMSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPMRepository) GetByID(ctx context.Context, id int64) (*domain.PMSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PMSchedule), args.Error(1)
}

func (m *MockPMRepository) List(ctx context.Context, f repository.PMFilter) ([]domain.PMSchedule, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.PMSchedule), args.Get(1).(int64), args.Error(2)
}

func (m *MockPMRepository) FindDueBefore(ctx context.Context, now time.Time) ([]domain.PMSchedule, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.PMSchedule), args.Error(1)
}

func (m *MockPMRepository) ExistsForEquipment(ctx context.Context, equipmentID int64, freq domain.PMFrequency) (bool, error) {
	args := m.Called(ctx, equipmentID, freq)
	return args.Bool(0), args.Error(1)
}

type MockEquipmentStore struct {
	mock.Mock
}

func (m *MockEquipmentStore) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentStore) ListActiveByType(ctx context.Context, t domain.EquipmentType) ([]domain.Equipment, error) {
	args := m.Called(ctx, t)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentStore) AddMaintenanceCost(ctx context.Context, id int64, cost float64, at time.Time) error {
	args := m.Called(ctx, id, cost, at)
	return args.Error(0)
}

type MockSequenceAllocator struct {
	mock.Mock
}

func (m *MockSequenceAllocator) NextCode(ctx context.Context, name, prefix string, width int) (string, error) {
	args := m.Called(ctx, name, prefix, width)
	return args.String(0), args.Error(1)
}

type fixture struct {
	schedules *MockPMRepository
	equipment *MockEquipmentStore
	seq       *MockSequenceAllocator
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		schedules: new(MockPMRepository),
		equipment: new(MockEquipmentStore),
		seq:       new(MockSequenceAllocator),
	}
	f.svc = NewService(f.schedules, f.equipment, f.seq, events.Nop{})
	return f
}

func TestCreate_UnknownFrequencyRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateScheduleRequest{
		EquipmentID: 7,
		Title:       "Fortnightly Service",
		Frequency:   "Fortnightly",
	}, 3)

	assert.ErrorIs(t, err, ErrValidation)
	f.schedules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComplete_RollsScheduleForward(t *testing.T) {
	f := newFixture()

	sched := &domain.PMSchedule{
		ID:            1,
		EquipmentID:   7,
		Frequency:     domain.FrequencyMonthly,
		Status:        domain.PMOverdue,
		EstimatedCost: 2500,
	}
	f.schedules.On("GetByID", mock.Anything, int64(1)).Return(sched, nil)
	f.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.equipment.On("AddMaintenanceCost", mock.Anything, int64(7), float64(3100), mock.Anything).Return(nil)

	out, err := f.svc.Complete(context.Background(), 1, CompleteScheduleRequest{
		ActualCost: 3100,
		Findings:   "Replaced belt",
	}, 5)

	assert.NoError(t, err)
	assert.Equal(t, domain.PMScheduled, out.Status)
	assert.NotNil(t, out.LastPerformed)
	assert.Len(t, out.CompletionHistory, 1)
	assert.Equal(t, int64(5), out.CompletionHistory[0].CompletedBy)
	assert.Equal(t, float64(3100), out.CompletionHistory[0].ActualCost)
	assert.True(t, out.NextDue.After(*out.LastPerformed))
	f.equipment.AssertExpectations(t)
}

func TestComplete_ZeroCostFallsBackToEstimate(t *testing.T) {
	f := newFixture()

	sched := &domain.PMSchedule{
		ID:            1,
		EquipmentID:   7,
		Frequency:     domain.FrequencyWeekly,
		Status:        domain.PMScheduled,
		EstimatedCost: 1000,
	}
	f.schedules.On("GetByID", mock.Anything, int64(1)).Return(sched, nil)
	f.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.equipment.On("AddMaintenanceCost", mock.Anything, int64(7), float64(1000), mock.Anything).Return(nil)

	out, err := f.svc.Complete(context.Background(), 1, CompleteScheduleRequest{}, 5)

	assert.NoError(t, err)
	assert.Equal(t, float64(1000), out.ActualCost)
	f.equipment.AssertExpectations(t)
}

func TestAutoGenerate_SkipsExistingSchedules(t *testing.T) {
	f := newFixture()

	f.equipment.On("ListActiveByType", mock.Anything, domain.EquipmentEquipment).Return([]domain.Equipment{
		{ID: 7, Name: "Feed Pump A"},
		{ID: 8, Name: "Feed Pump B"},
	}, nil)
	f.schedules.On("ExistsForEquipment", mock.Anything, int64(7), domain.FrequencyMonthly).Return(true, nil)
	f.schedules.On("ExistsForEquipment", mock.Anything, int64(8), domain.FrequencyMonthly).Return(false, nil)
	f.seq.On("NextCode", mock.Anything, "pm", "PM", 6).Return("PM-000002", nil)
	f.schedules.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.AutoGenerate(context.Background(), AutoGenerateRequest{
		EquipmentType: domain.EquipmentEquipment,
		Frequency:     domain.FrequencyMonthly,
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, "Monthly Maintenance - Feed Pump B", out.Schedules[0].Title)
	assert.Len(t, out.Schedules[0].Checklist, 5)
	assert.Equal(t, float64(2500), out.Schedules[0].EstimatedCost)
	f.schedules.AssertNumberOfCalls(t, "Create", 1)
}

func TestSweepOverdue_FlipsDueSchedules(t *testing.T) {
	f := newFixture()

	now := time.Now()
	f.schedules.On("FindDueBefore", mock.Anything, now).Return([]domain.PMSchedule{
		{ID: 1, Status: domain.PMScheduled},
		{ID: 2, Status: domain.PMScheduled},
	}, nil)
	f.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)

	flipped, err := f.svc.SweepOverdue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 2, flipped)
	f.schedules.AssertNumberOfCalls(t, "Save", 2)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	f := newFixture()

	f.schedules.On("GetByID", mock.Anything, int64(1)).Return(&domain.PMSchedule{
		ID:     1,
		Status: domain.PMScheduled,
	}, nil)

	bogus := domain.PMStatus("Paused")
	_, err := f.svc.Update(context.Background(), 1, UpdateScheduleRequest{Status: &bogus})

	assert.ErrorIs(t, err, ErrValidation)
	f.schedules.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_FrequencyChangeRecomputesDueDate(t *testing.T) {
	f := newFixture()

	last := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sched := &domain.PMSchedule{
		ID:            1,
		Frequency:     domain.FrequencyMonthly,
		LastPerformed: &last,
		NextDue:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	f.schedules.On("GetByID", mock.Anything, int64(1)).Return(sched, nil)
	f.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)

	quarterly := domain.FrequencyQuarterly
	out, err := f.svc.Update(context.Background(), 1, UpdateScheduleRequest{Frequency: &quarterly})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), out.NextDue)
}
