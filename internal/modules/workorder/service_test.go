package workorder

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

type MockWorkOrderRepository struct {
	mock.Mock
}

func (m *MockWorkOrderRepository) Create(ctx context.Context, w *domain.WorkOrder) error {
	args := m.Called(ctx, w)
	if w != nil {
		w.ID = 301
	}
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Save(ctx context.Context, w *domain.WorkOrder) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) List(ctx context.Context, f repository.WorkOrderFilter) ([]domain.WorkOrder, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.WorkOrder), args.Get(1).(int64), args.Error(2)
}

type MockBacklogStore struct {
	mock.Mock
}

func (m *MockBacklogStore) GetByID(ctx context.Context, id int64) (*domain.Backlog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Backlog), args.Error(1)
}

func (m *MockBacklogStore) Save(ctx context.Context, b *domain.Backlog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
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

func (m *MockEquipmentStore) ApplyMaintenance(ctx context.Context, id int64, lastMaintenanceHours float64, at time.Time) error {
	args := m.Called(ctx, id, lastMaintenanceHours, at)
	return args.Error(0)
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
	workorders *MockWorkOrderRepository
	backlogs   *MockBacklogStore
	equipment  *MockEquipmentStore
	seq        *MockSequenceAllocator
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		workorders: new(MockWorkOrderRepository),
		backlogs:   new(MockBacklogStore),
		equipment:  new(MockEquipmentStore),
		seq:        new(MockSequenceAllocator),
	}
	f.svc = NewService(f.workorders, f.backlogs, f.equipment, f.seq, events.Nop{})
	return f
}

func TestCreateFromBacklog_Defaults(t *testing.T) {
	f := newFixture()

	f.seq.On("NextCode", mock.Anything, "workorder", "WO", 6).Return("WO-000001", nil)
	f.workorders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, int64(4)).Return(&domain.Backlog{ID: 4, Status: domain.BacklogOpen}, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	b := &domain.Backlog{
		ID:             4,
		EquipmentID:    7,
		Issue:          "Seal weeping on drive end",
		Priority:       domain.PriorityP2,
		Status:         domain.BacklogOpen,
		EstimatedHours: 4,
	}

	w, err := f.svc.CreateFromBacklog(context.Background(), b, domain.OriginUser, 3)

	assert.NoError(t, err)
	assert.Equal(t, "WO-000001", w.Code)
	assert.Equal(t, "P2 Work: Seal weeping on drive end", w.Title)
	assert.Equal(t, domain.WorkCorrective, w.Type)
	assert.Equal(t, float64(2000), w.EstimatedCost) // 4h at the standard rate
	assert.Equal(t, int64(4), *w.BacklogID)
}

func TestCreateFromBacklog_TruncatesLongIssue(t *testing.T) {
	f := newFixture()

	f.seq.On("NextCode", mock.Anything, "workorder", "WO", 6).Return("WO-000002", nil)
	f.workorders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Backlog{ID: 4, Status: domain.BacklogOpen}, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	issue := "Severe vibration detected across the entire drive train during routine rounds"
	b := &domain.Backlog{ID: 4, EquipmentID: 7, Issue: issue, Priority: domain.PriorityP1}

	w, err := f.svc.CreateFromBacklog(context.Background(), b, domain.OriginUser, 3)

	assert.NoError(t, err)
	assert.Equal(t, "P1 Work: "+issue[:50]+"...", w.Title)
}

func TestCreateFromBacklog_DueDateBecomesSchedule(t *testing.T) {
	f := newFixture()

	f.seq.On("NextCode", mock.Anything, "workorder", "WO", 6).Return("WO-000003", nil)
	f.workorders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Backlog{ID: 4, Status: domain.BacklogOpen}, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	b := &domain.Backlog{ID: 4, EquipmentID: 7, Issue: "Worn belt", Priority: domain.PriorityP3, DueDate: &due}

	w, err := f.svc.CreateFromBacklog(context.Background(), b, domain.OriginUser, 3)

	assert.NoError(t, err)
	assert.Equal(t, due, w.ScheduledDate)
}

func TestCreateFromBacklog_LinksBacklog(t *testing.T) {
	f := newFixture()

	linked := &domain.Backlog{ID: 4, Status: domain.BacklogOpen}
	f.seq.On("NextCode", mock.Anything, "workorder", "WO", 6).Return("WO-000004", nil)
	f.workorders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, int64(4)).Return(linked, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	b := &domain.Backlog{ID: 4, EquipmentID: 7, Issue: "Worn belt", Priority: domain.PriorityP3}
	w, err := f.svc.CreateFromBacklog(context.Background(), b, domain.OriginUser, 3)

	assert.NoError(t, err)
	assert.Equal(t, w.ID, *linked.WorkOrderID)
	assert.Equal(t, domain.BacklogPlanned, linked.Status)
}

func TestUpdate_CompletionRollsUpCosts(t *testing.T) {
	f := newFixture()

	w := &domain.WorkOrder{
		ID:          1,
		EquipmentID: 7,
		Status:      domain.WorkOrderInProgress,
		Materials: []domain.Material{
			{Item: "Seal kit", Quantity: 1, UnitCost: 350, TotalCost: 350, Status: domain.MaterialUsed},
		},
		Labor: []domain.Labor{
			{TechnicianID: 5, Hours: 4, Rate: 100, Total: 400},
		},
		ActualHours: 4,
	}
	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	f.workorders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.equipment.On("GetByID", mock.Anything, int64(7)).Return(&domain.Equipment{ID: 7, RunningHours: 4200}, nil)
	f.equipment.On("ApplyMaintenance", mock.Anything, int64(7), float64(4200), mock.Anything).Return(nil)
	f.equipment.On("AddMaintenanceCost", mock.Anything, int64(7), float64(750), mock.Anything).Return(nil)

	completed := domain.WorkOrderCompleted
	out, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Status: &completed})

	assert.NoError(t, err)
	assert.Equal(t, float64(750), out.ActualCost)
	assert.Equal(t, 100, out.Progress)
	assert.NotNil(t, out.CompletionDate)
	f.equipment.AssertExpectations(t)
}

func TestUpdate_CompletionWithoutHoursSkipsBaselineReset(t *testing.T) {
	f := newFixture()

	w := &domain.WorkOrder{
		ID:          1,
		EquipmentID: 7,
		Status:      domain.WorkOrderInProgress,
		Materials: []domain.Material{
			{Item: "Gasket", TotalCost: 120},
		},
	}
	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	f.workorders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.equipment.On("AddMaintenanceCost", mock.Anything, int64(7), float64(120), mock.Anything).Return(nil)

	completed := domain.WorkOrderCompleted
	_, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Status: &completed})

	assert.NoError(t, err)
	f.equipment.AssertNotCalled(t, "ApplyMaintenance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_CompletionMirrorsBacklog(t *testing.T) {
	f := newFixture()

	backlogID := int64(4)
	w := &domain.WorkOrder{ID: 1, EquipmentID: 7, BacklogID: &backlogID, Status: domain.WorkOrderInProgress}
	b := &domain.Backlog{ID: 4, Status: domain.BacklogInProgress}

	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	f.workorders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, backlogID).Return(b, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	completed := domain.WorkOrderCompleted
	_, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Status: &completed})

	assert.NoError(t, err)
	assert.Equal(t, domain.BacklogCompleted, b.Status)
	assert.Equal(t, 100, b.Progress)
}

func TestUpdate_InProgressStampsStartDateOnce(t *testing.T) {
	f := newFixture()

	started := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	w := &domain.WorkOrder{ID: 1, EquipmentID: 7, Status: domain.WorkOrderOnHold, StartDate: &started}
	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	f.workorders.On("Save", mock.Anything, mock.Anything).Return(nil)

	inProgress := domain.WorkOrderInProgress
	out, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Status: &inProgress})

	assert.NoError(t, err)
	assert.Equal(t, started, *out.StartDate)
}

func TestUpdate_CompletedIsTerminal(t *testing.T) {
	f := newFixture()

	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(&domain.WorkOrder{
		ID:     1,
		Status: domain.WorkOrderCompleted,
	}, nil)

	progress := 50
	_, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Progress: &progress})

	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	f.workorders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	f := newFixture()

	bogus := domain.WorkOrderStatus("Totally Bogus")
	_, err := f.svc.Update(context.Background(), 1, UpdateWorkOrderRequest{Status: &bogus})

	assert.ErrorIs(t, err, ErrValidation)
	f.workorders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.backlogs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDelete_ReleasesBacklog(t *testing.T) {
	f := newFixture()

	backlogID := int64(4)
	woID := int64(1)
	w := &domain.WorkOrder{ID: 1, BacklogID: &backlogID, Status: domain.WorkOrderPlanned}
	b := &domain.Backlog{ID: 4, Status: domain.BacklogPlanned, WorkOrderID: &woID}

	f.workorders.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	f.workorders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.backlogs.On("GetByID", mock.Anything, backlogID).Return(b, nil)
	f.backlogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Delete(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, w.IsDeleted)
	assert.Nil(t, b.WorkOrderID)
	assert.Equal(t, domain.BacklogOpen, b.Status)
}

func TestCreateFromRule_RecordsTrigger(t *testing.T) {
	f := newFixture()

	f.seq.On("NextCode", mock.Anything, "workorder", "WO", 6).Return("WO-000005", nil)
	f.workorders.On("Create", mock.Anything, mock.Anything).Return(nil)

	rule := &domain.AutoWorkOrderRule{
		ID:          2,
		EquipmentID: 7,
		TriggerType: domain.TriggerRunningHours,
		Template: domain.WorkOrderTemplate{
			Title:          "500h Service",
			Type:           domain.WorkPreventive,
			EstimatedHours: 6,
		},
		Priority:  domain.PriorityP2,
		CreatedBy: 3,
	}
	trigger := domain.TriggerCondition{
		Type:         domain.TriggerRunningHours,
		Threshold:    500,
		CurrentValue: 520,
	}

	w, err := f.svc.CreateFromRule(context.Background(), rule, trigger)

	assert.NoError(t, err)
	assert.Equal(t, domain.OriginAuto, w.Origin)
	assert.Equal(t, float64(3000), w.EstimatedCost)
	assert.Equal(t, int64(2), *w.AutoGenerationRuleID)
	assert.Equal(t, float64(520), w.TriggerCondition.CurrentValue)
}
