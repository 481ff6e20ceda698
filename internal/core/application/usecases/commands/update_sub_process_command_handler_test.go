package commands_test

import (
	"context"
	"testing"
	"time"

	"platetrack/internal/core/application/usecases/commands"
	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/core/ports"
	"platetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type WashoutOrderRepo struct{ mock.Mock }

func (m *WashoutOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *WashoutOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *WashoutOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type WashoutLedgerRepo struct{ mock.Mock }

func (m *WashoutLedgerRepo) Get(ctx context.Context) (*ledger.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Ledger), args.Error(1)
}

func (m *WashoutLedgerRepo) Add(ctx context.Context, l *ledger.Ledger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *WashoutLedgerRepo) Save(ctx context.Context, l *ledger.Ledger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *WashoutLedgerRepo) AddUsageEvent(ctx context.Context, event *ledger.UsageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *WashoutLedgerRepo) GetUsageEventByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.UsageEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.UsageEvent), args.Error(1)
}

func (m *WashoutLedgerRepo) GetUsageEventsSince(ctx context.Context, since time.Time) ([]*ledger.UsageEvent, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.UsageEvent), args.Error(1)
}

type WashoutUnitOfWork struct{ mock.Mock }

func (m *WashoutUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *WashoutUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *WashoutUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *WashoutUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *WashoutUnitOfWork) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type WashoutUoWFactory struct{ mock.Mock }

func (m *WashoutUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// createOrderWithGeometry builds an order whose washout completion must
// trigger solvent metering: 50x70 cm with a 2x1 repeat is 0.7 m².
func createOrderWithGeometry(t *testing.T) *order.Order {
	t.Helper()

	dims, err := order.NewDimensions(50, 70, 2, 1)
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), order.TemplateStandard, &dims)
	require.NoError(t, err)
	return testOrder
}

func TestUpdateSubProcessCommandHandler_Handle_WashoutTriggersMetering(t *testing.T) {
	ctx := t.Context()
	testOrder := createOrderWithGeometry(t)
	stock := newTestLedger(t, 3)
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	// Set up mocks
	orderRepo := new(WashoutOrderRepo)
	ledgerRepo := new(WashoutLedgerRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetUsageEventByOrder", ctx, testOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("usageEvent", testOrder.ID().String())).Once(),
		ledgerRepo.On("Get", ctx).Return(stock, nil).Once(),
		ledgerRepo.On("AddUsageEvent", ctx, mock.AnythingOfType("*ledger.UsageEvent")).Return(nil).Once(),
		ledgerRepo.On("Save", ctx, stock).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	require.NotNil(t, result.UsageEvent)
	assert.True(t, result.UsageEvent.OrderID().IsEqual(testOrder.ID()))
	assert.InDelta(t, 0.7, result.UsageEvent.AreaM2(), 1e-9)
	assert.InDelta(t, 7.0, result.UsageEvent.LitersConsumed(), 1e-9)
	assert.True(t, testOrder.UsageRecorded())
	assert.InDelta(t, 593.0, stock.CurrentLiters(), 1e-9)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_NonWashoutSkipsMetering(t *testing.T) {
	ctx := t.Context()
	testOrder := createOrderWithGeometry(t)
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessMainExposure, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, result.UsageEvent)
	assert.False(t, testOrder.UsageRecorded())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_WashoutWithoutGeometry(t *testing.T) {
	ctx := t.Context()
	testOrder, err := order.NewOrder(kernel.NewUUID(), order.TemplateStandard, nil)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, result.UsageEvent)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_LatchPreventsSecondEvent(t *testing.T) {
	ctx := t.Context()
	testOrder := createOrderWithGeometry(t)
	testOrder.MarkUsageRecorded() // washout already charged once
	require.NoError(t, testOrder.UpdateSubProcess(order.SubProcessWashout, order.SubProcessCompleted, time.Now()))
	require.NoError(t, testOrder.UpdateSubProcess(order.SubProcessWashout, order.SubProcessPending, time.Now()))

	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, result.UsageEvent, "toggling washout must not charge the order twice")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_ExistingEventIsIdempotent(t *testing.T) {
	ctx := t.Context()
	testOrder := createOrderWithGeometry(t)
	existing, err := ledger.NewUsageEvent(testOrder.ID(), 0.7, 7, 297.11, time.Now())
	require.NoError(t, err)
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	ledgerRepo := new(WashoutLedgerRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetUsageEventByOrder", ctx, testOrder.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, result.UsageEvent)
	assert.Empty(t, result.Warning)
	assert.True(t, testOrder.UsageRecorded())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_LedgerNotInitialized(t *testing.T) {
	ctx := t.Context()
	testOrder := createOrderWithGeometry(t)
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	ledgerRepo := new(WashoutLedgerRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetUsageEventByOrder", ctx, testOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("usageEvent", testOrder.ID().String())).Once(),
		ledgerRepo.On("Get", ctx).
			Return(nil, errs.NewObjectNotFoundError("solventLedger", 1)).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err, "workflow progress must not block on the ledger")
	assert.Nil(t, result.UsageEvent)
	assert.Contains(t, result.Warning, "ledger is not initialized")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_OverdrawWarning(t *testing.T) {
	ctx := t.Context()
	dims, err := order.NewDimensions(100, 100, 5, 5) // 25 m², needs 250 L
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), order.TemplateStandard, &dims)
	require.NoError(t, err)
	stock := newTestLedger(t, 1) // 200 L available
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessWashout, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	ledgerRepo := new(WashoutLedgerRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetUsageEventByOrder", ctx, testOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("usageEvent", testOrder.ID().String())).Once(),
		ledgerRepo.On("Get", ctx).Return(stock, nil).Once(),
		ledgerRepo.On("AddUsageEvent", ctx, mock.AnythingOfType("*ledger.UsageEvent")).Return(nil).Once(),
		ledgerRepo.On("Save", ctx, stock).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result.UsageEvent)
	assert.InDelta(t, 250.0, result.UsageEvent.LitersConsumed(), 1e-9)
	assert.Contains(t, result.Warning, "insufficient inventory")
	assert.True(t, stock.IsOverdrawn())
	assert.True(t, testOrder.UsageRecorded())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_UnknownSubProcess(t *testing.T) {
	ctx := t.Context()
	testOrder, err := order.NewOrder(kernel.NewUUID(), order.TemplateCompact, nil)
	require.NoError(t, err)
	// laserImaging is not part of the compact template
	cmd, err := commands.NewUpdateSubProcessCommand(testOrder.ID(), order.SubProcessLaserImaging, order.SubProcessCompleted)
	require.NoError(t, err)

	orderRepo := new(WashoutOrderRepo)
	uow := new(WashoutUnitOfWork)
	factory := new(WashoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrUnknownSubProcess)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateSubProcessCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateSubProcessCommand{} // not constructed properly
	factory := new(WashoutUoWFactory)

	handler := commands.NewUpdateSubProcessCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewUpdateSubProcessCommand constructor")
}
