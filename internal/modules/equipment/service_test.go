package equipment

import (
	"context"
	"testing"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	if e != nil {
		e.ID = 101
	}
	return args.Error(0)
}

func (m *MockEquipmentRepository) Save(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEquipmentRepository) SaveVersioned(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEquipmentRepository) FindByParent(ctx context.Context, parentID *int64) ([]domain.Equipment, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) HasActiveChildren(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockSequenceAllocator struct {
	mock.Mock
}

func (m *MockSequenceAllocator) NextCode(ctx context.Context, name, prefix string, width int) (string, error) {
	args := m.Called(ctx, name, prefix, width)
	return args.String(0), args.Error(1)
}

func newTestService(repo *MockEquipmentRepository, seq *MockSequenceAllocator) *Service {
	return NewService(repo, seq, events.Nop{})
}

func TestCreate_GeneratesCodeAndDefaults(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	seq.On("NextCode", mock.Anything, "equipment:plant", "PLA", 4).Return("PLA-0001", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	e, err := svc.Create(context.Background(), CreateEquipmentRequest{
		Name:        "Main Plant",
		Type:        domain.EquipmentPlant,
		Level:       1,
		Criticality: domain.CriticalityA,
		Location:    "Site North",
	}, 1)

	assert.NoError(t, err)
	assert.Equal(t, "PLA-0001", e.Code)
	assert.Equal(t, 100, e.HealthScore)
	assert.Equal(t, float64(1000), e.NextMaintenanceHours)
	assert.Equal(t, domain.EquipmentActive, e.Status)
	repo.AssertExpectations(t)
	seq.AssertExpectations(t)
}

func TestCreate_Level1WithParentRejected(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	parentID := int64(5)
	_, err := svc.Create(context.Background(), CreateEquipmentRequest{
		Name:        "Main Plant",
		Type:        domain.EquipmentPlant,
		Level:       1,
		ParentID:    &parentID,
		Criticality: domain.CriticalityA,
		Location:    "Site North",
	}, 1)

	assert.ErrorIs(t, err, ErrHierarchyViolation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ParentLevelMismatchRejected(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	parentID := int64(5)
	repo.On("GetByID", mock.Anything, parentID).Return(&domain.Equipment{ID: 5, Level: 1}, nil)

	_, err := svc.Create(context.Background(), CreateEquipmentRequest{
		Name:        "Component X",
		Type:        domain.EquipmentComponent,
		Level:       5,
		ParentID:    &parentID,
		Criticality: domain.CriticalityC,
		Location:    "Line 2",
	}, 1)

	assert.ErrorIs(t, err, ErrHierarchyViolation)
}

func TestCreate_DeletedParentRejected(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	parentID := int64(5)
	repo.On("GetByID", mock.Anything, parentID).Return(&domain.Equipment{ID: 5, Level: 1, IsDeleted: true}, nil)

	_, err := svc.Create(context.Background(), CreateEquipmentRequest{
		Name:        "Pump",
		Type:        domain.EquipmentEquipment,
		Level:       2,
		ParentID:    &parentID,
		Criticality: domain.CriticalityB,
		Location:    "Pump House",
	}, 1)

	assert.ErrorIs(t, err, ErrHierarchyViolation)
}

func TestDelete_RefusedWithActiveChildren(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Equipment{ID: 7, Level: 2}, nil)
	repo.On("HasActiveChildren", mock.Anything, int64(7)).Return(true, nil)

	err := svc.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrHasActiveChildren)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSetParent_SelfParentRejected(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	self := int64(7)
	repo.On("GetByID", mock.Anything, self).Return(&domain.Equipment{ID: 7, Level: 2, Version: 1}, nil)

	_, err := svc.SetParent(context.Background(), 7, &self)

	assert.ErrorIs(t, err, ErrHierarchyViolation)
}

func TestSetParent_RetriesOnceOnVersionConflict(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Equipment{ID: 7, Level: 1, Version: 1}, nil)
	repo.On("SaveVersioned", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict)

	_, err := svc.SetParent(context.Background(), 7, nil)

	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNumberOfCalls(t, "SaveVersioned", 2)
}

func TestGet_NotFoundForDeleted(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Equipment{ID: 9, IsDeleted: true}, nil)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_NotFoundWraps(t *testing.T) {
	repo := new(MockEquipmentRepository)
	seq := new(MockSequenceAllocator)
	svc := newTestService(repo, seq)

	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
}
