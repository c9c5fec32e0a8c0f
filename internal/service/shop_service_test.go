package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/service"
	"wooltrace/mocks"
)

func newShopService() (service.ShopService, *mocks.MockBatchRepo, *mocks.MockOrderRepo, *mocks.MockEmailSender, *mocks.MockObjectStorage) {
	batchRepo := new(mocks.MockBatchRepo)
	orderRepo := new(mocks.MockOrderRepo)
	email := new(mocks.MockEmailSender)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewShopService(batchRepo, orderRepo, email, storage, testS3Config())
	return svc, batchRepo, orderRepo, email, storage
}

func sellableBatch(id uuid.UUID, gross float64) *domain.Batch {
	b := &domain.Batch{
		ID:            id,
		WoolType:      domain.WoolMerino,
		Weight:        100,
		CurrentStage:  domain.StageFinished,
		QualityStatus: domain.QualityApproved,
	}
	if gross > 0 {
		b.Financials = &domain.Financials{GrossRevenue: gross}
	}
	return b
}

func testBuyer() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Bo Weaver",
		Email: "buyer@test.com",
		Role:  domain.RoleBuyer,
	}
}

func TestShopService_Product_PresignsImageURLs(t *testing.T) {
	svc, batchRepo, _, _, storage := newShopService()

	batchID := uuid.New()
	key := "batches/" + batchID.String() + "/photo.jpg"
	product := sellableBatch(batchID, 5000)
	product.Images = domain.StringList{key}
	batchRepo.On("GetByID", mock.Anything, batchID).Return(product, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", key, int64(900)).
		Return("https://signed/photo.jpg", nil)

	got, err := svc.Product(context.Background(), batchID)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://signed/photo.jpg"}, got.ImageURLs)
	storage.AssertExpectations(t)
}

func TestShopService_PlaceOrder_TotalsListingPrices(t *testing.T) {
	svc, batchRepo, orderRepo, email, _ := newShopService()

	priced := uuid.New()
	unpriced := uuid.New()
	batchRepo.On("GetByID", mock.Anything, priced).Return(sellableBatch(priced, 13000), nil)
	// No financials yet: falls back to weight times the default base price.
	batchRepo.On("GetByID", mock.Anything, unpriced).Return(sellableBatch(unpriced, 0), nil)

	orderRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Order"), []uuid.UUID{priced, unpriced}).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = uuid.New()
		}).
		Return(nil)
	email.On("SendOrderConfirmation", mock.Anything, "buyer@test.com", "Bo Weaver", mock.AnythingOfType("*domain.Order")).
		Return(nil)

	buyer := testBuyer()
	order, err := svc.PlaceOrder(context.Background(), buyer, service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{priced, unpriced},
	})

	require.NoError(t, err)
	assert.Equal(t, buyer.ID, order.BuyerID)
	assert.Equal(t, 14000.0, order.TotalAmount)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)

	orderRepo.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestShopService_PlaceOrder_EmptyOrder(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	_, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{})

	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_PlaceOrder_RejectsSoldBatch(t *testing.T) {
	svc, batchRepo, orderRepo, _, _ := newShopService()

	batchID := uuid.New()
	sold := sellableBatch(batchID, 5000)
	sold.IsSold = true
	batchRepo.On("GetByID", mock.Anything, batchID).Return(sold, nil)

	_, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{batchID},
	})

	assert.ErrorIs(t, err, domain.ErrBatchAlreadySold)
	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_PlaceOrder_RejectsUnfinishedBatch(t *testing.T) {
	svc, batchRepo, _, _, _ := newShopService()

	batchID := uuid.New()
	batch := sellableBatch(batchID, 5000)
	batch.CurrentStage = domain.StageSpinning
	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)

	_, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{batchID},
	})

	assert.ErrorIs(t, err, domain.ErrBatchNotSellable)
}

func TestShopService_PlaceOrder_RejectsUnapprovedBatch(t *testing.T) {
	svc, batchRepo, _, _, _ := newShopService()

	batchID := uuid.New()
	batch := sellableBatch(batchID, 5000)
	batch.QualityStatus = domain.QualityPending
	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)

	_, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{batchID},
	})

	assert.ErrorIs(t, err, domain.ErrBatchNotSellable)
}

func TestShopService_PlaceOrder_PropagatesConcurrentSale(t *testing.T) {
	svc, batchRepo, orderRepo, email, _ := newShopService()

	batchID := uuid.New()
	batchRepo.On("GetByID", mock.Anything, batchID).Return(sellableBatch(batchID, 5000), nil)
	// The conditional sold-flag update inside the transaction lost the race.
	orderRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Order"), []uuid.UUID{batchID}).
		Return(domain.ErrBatchAlreadySold)

	_, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{batchID},
	})

	assert.ErrorIs(t, err, domain.ErrBatchAlreadySold)
	email.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_PlaceOrder_EmailFailureDoesNotFailOrder(t *testing.T) {
	svc, batchRepo, orderRepo, email, _ := newShopService()

	batchID := uuid.New()
	batchRepo.On("GetByID", mock.Anything, batchID).Return(sellableBatch(batchID, 5000), nil)
	orderRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Order"), []uuid.UUID{batchID}).
		Return(nil)
	email.On("SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	order, err := svc.PlaceOrder(context.Background(), testBuyer(), service.PlaceOrderInput{
		BatchIDs: []uuid.UUID{batchID},
	})

	require.NoError(t, err)
	assert.Equal(t, 5000.0, order.TotalAmount)
}

func TestShopService_DeleteOrder_RejectsOtherBuyer(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	owner := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, BuyerID: owner, Status: domain.OrderPending}, nil)

	err := svc.DeleteOrder(context.Background(), orderID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrForbidden)
	orderRepo.AssertNotCalled(t, "DeletePending", mock.Anything, orderID)
}

func TestShopService_DeleteOrder_Owner(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	owner := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, BuyerID: owner, Status: domain.OrderPending}, nil)
	orderRepo.On("DeletePending", mock.Anything, orderID).Return(nil)

	err := svc.DeleteOrder(context.Background(), orderID, owner)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestShopService_PayOrder_MarksPaidAndCompleted(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	buyerID := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{
			ID:            orderID,
			BuyerID:       buyerID,
			Status:        domain.OrderPending,
			PaymentStatus: domain.PaymentPending,
		}, nil)
	orderRepo.On("UpdatePayment", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	paid, err := svc.PayOrder(context.Background(), orderID, buyerID, service.PayOrderInput{PaymentMethod: "Card"})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, paid.Status)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, "Card", paid.PaymentMethod)
	assert.True(t, strings.HasPrefix(paid.TransactionID, "TXN-"))
}

func TestShopService_PayOrder_DefaultsMethodToOnline(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	buyerID := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, BuyerID: buyerID, Status: domain.OrderPending}, nil)
	orderRepo.On("UpdatePayment", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	paid, err := svc.PayOrder(context.Background(), orderID, buyerID, service.PayOrderInput{})

	require.NoError(t, err)
	assert.Equal(t, "Online", paid.PaymentMethod)
}

func TestShopService_PayOrder_RejectsNonPending(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	buyerID := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, BuyerID: buyerID, Status: domain.OrderCompleted}, nil)

	_, err := svc.PayOrder(context.Background(), orderID, buyerID, service.PayOrderInput{})

	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	orderRepo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
}

func TestShopService_PayOrder_RejectsOtherBuyer(t *testing.T) {
	svc, _, orderRepo, _, _ := newShopService()

	orderID := uuid.New()
	orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, BuyerID: uuid.New(), Status: domain.OrderPending}, nil)

	_, err := svc.PayOrder(context.Background(), orderID, uuid.New(), service.PayOrderInput{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
